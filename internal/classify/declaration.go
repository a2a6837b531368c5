package classify

import (
	"github.com/rezonia/tariffmill/internal/model"
)

// CodeTable resolves a material to its customs declaration code. The
// mapping is externally maintained data; a missing entry for a
// qualifying material is a configuration error, not a data typo.
type CodeTable interface {
	Code(m model.Material) (model.DeclarationCode, bool)
}

// Declaration is the resolved declaration for one material of one part.
type Declaration struct {
	Code   model.DeclarationCode
	Origin model.OriginFlag

	// MissingOrigin reports that the origin fields the material needs
	// were absent. The line proceeds with OriginFlag unknown and is
	// flagged for manual review.
	MissingOrigin bool
}

// ResolveDeclaration determines the declaration code and origin flag
// for one qualifying material of a part.
//
// Origin rules: steel requires melt, cast and primary smelt country to
// all equal the domestic country; aluminum and copper use the primary
// smelt country only; wood and automotive fall back to the part's
// country of origin.
func ResolveDeclaration(part model.PartRecord, m model.Material, table CodeTable, domestic string) (Declaration, error) {
	code, ok := table.Code(m)
	if !ok {
		return Declaration{}, model.NewConfigError(m, "no declaration code configured for qualifying material")
	}

	d := Declaration{Code: code}
	d.Origin, d.MissingOrigin = originFlag(part, m, domestic)
	return d, nil
}

func originFlag(part model.PartRecord, m model.Material, domestic string) (model.OriginFlag, bool) {
	switch m {
	case model.MaterialSteel:
		if part.MeltCountry == "" || part.CastCountry == "" || part.SmeltCountry == "" {
			return model.OriginUnknown, true
		}
		if part.MeltCountry == domestic && part.CastCountry == domestic && part.SmeltCountry == domestic {
			return model.OriginDomestic, false
		}
		return model.OriginForeign, false

	case model.MaterialAluminum, model.MaterialCopper:
		if part.SmeltCountry == "" {
			return model.OriginUnknown, true
		}
		if part.SmeltCountry == domestic {
			return model.OriginDomestic, false
		}
		return model.OriginForeign, false

	default:
		if part.CountryOfOrigin == "" {
			return model.OriginUnknown, true
		}
		if part.CountryOfOrigin == domestic {
			return model.OriginDomestic, false
		}
		return model.OriginForeign, false
	}
}

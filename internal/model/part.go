package model

import "github.com/shopspring/decimal"

// PartRecord is an immutable reference entity keyed by part number.
// Records are created and maintained by external import tooling; this
// core only reads them. Material ratios are fractions in [0,1], set
// independently; they need not sum to 1, and the unaccounted remainder
// is non-classified.
type PartRecord struct {
	PartNumber      string          `json:"part_number"`
	Description     string          `json:"description,omitempty"`
	HTSCode         string          `json:"hts_code"`
	CountryOfOrigin string          `json:"country_of_origin,omitempty"`
	MID             string          `json:"mid,omitempty"`
	SteelRatio      decimal.Decimal `json:"steel_ratio"`
	AluminumRatio   decimal.Decimal `json:"aluminum_ratio"`
	CopperRatio     decimal.Decimal `json:"copper_ratio"`
	WoodRatio       decimal.Decimal `json:"wood_ratio"`
	AutomotiveRatio decimal.Decimal `json:"automotive_ratio"`

	// Origin sub-fields required for steel/aluminum declarations.
	MeltCountry  string `json:"melt_country,omitempty"`
	CastCountry  string `json:"cast_country,omitempty"`
	SmeltCountry string `json:"smelt_country,omitempty"`
}

// Ratio returns the material ratio for the given tag, zero for
// MaterialNone or an unknown tag.
func (p PartRecord) Ratio(m Material) decimal.Decimal {
	switch m {
	case MaterialSteel:
		return p.SteelRatio
	case MaterialAluminum:
		return p.AluminumRatio
	case MaterialCopper:
		return p.CopperRatio
	case MaterialWood:
		return p.WoodRatio
	case MaterialAutomotive:
		return p.AutomotiveRatio
	default:
		return decimal.Zero
	}
}

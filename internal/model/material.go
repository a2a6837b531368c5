package model

// Material identifies a tariff-relevant material category.
type Material string

const (
	MaterialSteel      Material = "steel"
	MaterialAluminum   Material = "aluminum"
	MaterialCopper     Material = "copper"
	MaterialWood       Material = "wood"
	MaterialAutomotive Material = "automotive"

	// MaterialNone marks the non-classified remainder of a line.
	MaterialNone Material = ""
)

// MaterialPriority is the fixed ordering used both for tie-breaking the
// primary material and for the emit order of derivative lines. Changing
// this order changes regulatory classification output; it is not an
// implementation detail.
var MaterialPriority = []Material{
	MaterialSteel,
	MaterialAluminum,
	MaterialCopper,
	MaterialWood,
	MaterialAutomotive,
}

// String returns the material tag, or "none" for the remainder.
func (m Material) String() string {
	if m == MaterialNone {
		return "none"
	}
	return string(m)
}

// OriginFlag classifies the origin of a derivative line for declaration
// purposes.
type OriginFlag string

const (
	OriginDomestic OriginFlag = "domestic"
	OriginForeign  OriginFlag = "foreign"

	// OriginUnknown is used when the origin fields needed for the
	// material are missing; the line proceeds flagged for review.
	OriginUnknown OriginFlag = "unknown"
)

// DeclarationCode is one entry of the externally maintained material to
// customs declaration code mapping.
type DeclarationCode struct {
	Material    Material `json:"material"`
	Code        string   `json:"code"`
	Description string   `json:"description,omitempty"`
}

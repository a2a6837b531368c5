package model

import "github.com/shopspring/decimal"

// LineItem is one row of a commercial invoice as supplied by the column
// mapper. It is never mutated; each pipeline stage produces a new
// derived record.
type LineItem struct {
	// Number is the 1-based position of the line on the invoice.
	Number      int             `json:"number"`
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	NetWeight   decimal.Decimal `json:"net_weight"`
	Value       decimal.Decimal `json:"value"`
}

// Validate checks the structural requirements of a line. A failing line
// is isolated and flagged; it never aborts the batch.
func (li LineItem) Validate() error {
	if li.PartNumber == "" {
		return NewLineError(li.Number, "part_number", "missing part identifier", nil)
	}
	if li.Value.IsNegative() {
		return NewLineError(li.Number, "value", "declared value is negative", nil)
	}
	return nil
}

// MaterialRatio pairs a qualifying material with its ratio.
type MaterialRatio struct {
	Material Material        `json:"material"`
	Ratio    decimal.Decimal `json:"ratio"`
}

// ClassifiedLine is a LineItem augmented with its resolved part record
// and classification outcome.
type ClassifiedLine struct {
	Item LineItem `json:"item"`

	// Part is nil when no reference record matched; that is an
	// expected outcome, not an error.
	Part    *PartRecord `json:"part,omitempty"`
	Matched bool        `json:"matched"`

	// Qualifying holds the materials with ratio > 0, in priority
	// order. Primary is the maximal-ratio material, ties broken by
	// MaterialPriority; MaterialNone when nothing qualifies.
	Qualifying []MaterialRatio `json:"qualifying,omitempty"`
	Primary    Material        `json:"primary"`

	// Excluded marks the whole line as Section 301 excluded; exclusion
	// is a property of the HTS code, independent of splitting.
	Excluded bool `json:"excluded"`
}

// DerivativeLine is one output row: either the non-classified remainder
// of an original line (Material == MaterialNone) or one material split.
// It carries enough structured fields for presentation and export to
// work without re-deriving any logic.
type DerivativeLine struct {
	LineNumber  int    `json:"line_number"`
	PartNumber  string `json:"part_number"`
	Description string `json:"description,omitempty"`
	HTSCode     string `json:"hts_code,omitempty"`
	MID         string `json:"mid,omitempty"`

	Material        Material   `json:"material"`
	DeclarationCode string     `json:"declaration_code,omitempty"`
	Origin          OriginFlag `json:"origin,omitempty"`

	Value     decimal.Decimal `json:"value"`
	Quantity  decimal.Decimal `json:"quantity"`
	NetWeight decimal.Decimal `json:"net_weight"`

	CountryOfOrigin string `json:"country_of_origin,omitempty"`
	MeltCountry     string `json:"melt_country,omitempty"`
	CastCountry     string `json:"cast_country,omitempty"`
	SmeltCountry    string `json:"smelt_country,omitempty"`

	Excluded    bool `json:"excluded,omitempty"`
	Unmatched   bool `json:"unmatched,omitempty"`
	NeedsReview bool `json:"needs_review,omitempty"`

	// Failed marks a line whose processing hit a structural or
	// configuration error. The row carries the original declared
	// value so nothing is ever dropped from a financial document.
	Failed     bool   `json:"failed,omitempty"`
	FailReason string `json:"fail_reason,omitempty"`
}

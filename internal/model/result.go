package model

import "github.com/shopspring/decimal"

// WarningKind enumerates the data-quality warnings a run can report.
// Warnings are accumulated into the run result and never thrown as
// control flow.
type WarningKind string

const (
	WarnUnmatchedPart     WarningKind = "unmatched_part"
	WarnMissingOrigin     WarningKind = "missing_origin"
	WarnNegativeRemainder WarningKind = "negative_remainder"
	WarnDiscrepancy       WarningKind = "reconciliation_discrepancy"
	WarnLineFailed        WarningKind = "line_failed"

	// WarnMissingDeclarationCode indicates a reference-data gap that
	// needs operator action, not a data typo.
	WarnMissingDeclarationCode WarningKind = "missing_declaration_code"
)

// Warning is a structured, per-line (or run-level, Line == 0) report.
type Warning struct {
	Line     int         `json:"line,omitempty"`
	Kind     WarningKind `json:"kind"`
	Material Material    `json:"material,omitempty"`
	Message  string      `json:"message"`
}

// LineContribution is one entry of the reconciliation breakdown: the
// computed value a single invoice line contributes to the run total.
type LineContribution struct {
	Line          int             `json:"line"`
	PartNumber    string          `json:"part_number"`
	ComputedValue decimal.Decimal `json:"computed_value"`
}

// ReconciliationResult compares the computed run total against the
// user-entered invoice total. It is advisory: export is never blocked
// on a discrepancy.
type ReconciliationResult struct {
	ComputedTotal decimal.Decimal `json:"computed_total"`
	DeclaredTotal decimal.Decimal `json:"declared_total"`

	// Discrepancy is computed minus declared.
	Discrepancy         decimal.Decimal `json:"discrepancy"`
	RelativeDiscrepancy decimal.Decimal `json:"relative_discrepancy"`

	Matched   bool            `json:"matched"`
	Tolerance decimal.Decimal `json:"tolerance"`

	// Breakdown lists per-line computed values sorted by absolute
	// contribution descending, so the largest-impact corrections
	// surface first. Populated only on discrepancy.
	Breakdown []LineContribution `json:"breakdown,omitempty"`
}

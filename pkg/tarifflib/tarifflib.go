// Package tarifflib provides a public API for tariff classification of
// commercial invoice lines.
//
// This package exposes the core types for matching invoice lines to a
// parts reference database, splitting them into per-material derivative
// lines with prorated values, and reconciling the result against the
// declared invoice total.
//
// Example usage:
//
//	proc, err := tarifflib.OpenProcessor("parts.db", tarifflib.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := proc.ProcessInvoice(items, declaredTotal, "")
//	fmt.Println(result.Reconciliation.ComputedTotal)
package tarifflib

import "github.com/rezonia/tariffmill/internal/model"

// Re-export core types for public API
type (
	LineItem        = model.LineItem
	PartRecord      = model.PartRecord
	DerivativeLine  = model.DerivativeLine
	DeclarationCode = model.DeclarationCode
	Material        = model.Material
	OriginFlag      = model.OriginFlag
	Warning         = model.Warning
	WarningKind     = model.WarningKind
	Reconciliation  = model.ReconciliationResult
)

// Re-export material tags
const (
	MaterialSteel      = model.MaterialSteel
	MaterialAluminum   = model.MaterialAluminum
	MaterialCopper     = model.MaterialCopper
	MaterialWood       = model.MaterialWood
	MaterialAutomotive = model.MaterialAutomotive
	MaterialNone       = model.MaterialNone
)

// Re-export origin flags
const (
	OriginDomestic = model.OriginDomestic
	OriginForeign  = model.OriginForeign
	OriginUnknown  = model.OriginUnknown
)

// Re-export warning kinds
const (
	WarnUnmatchedPart          = model.WarnUnmatchedPart
	WarnMissingOrigin          = model.WarnMissingOrigin
	WarnNegativeRemainder      = model.WarnNegativeRemainder
	WarnDiscrepancy            = model.WarnDiscrepancy
	WarnLineFailed             = model.WarnLineFailed
	WarnMissingDeclarationCode = model.WarnMissingDeclarationCode
)

// Re-export error types
type (
	LineError     = model.LineError
	ConfigError   = model.ConfigError
	SnapshotError = model.SnapshotError
)

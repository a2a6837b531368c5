// Package pipeline orchestrates enrichment, classification, splitting
// and reconciliation over one invoice's line items. A run is a pure
// function of its inputs and the reference snapshot captured at entry;
// the package does no logging or I/O of its own.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tariffmill/internal/classify"
	"github.com/rezonia/tariffmill/internal/model"
	"github.com/rezonia/tariffmill/internal/reconcile"
	"github.com/rezonia/tariffmill/internal/refdata"
	"github.com/rezonia/tariffmill/internal/split"
)

// Pipeline processes invoices against the current reference snapshot.
type Pipeline struct {
	store    *refdata.Store
	domestic string
	splitOpt split.Options
	reconOpt reconcile.Options
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDomesticCountry sets the country constant used for origin flags.
func WithDomesticCountry(country string) Option {
	return func(p *Pipeline) { p.domestic = country }
}

// WithQuantityPlaces sets the rounding precision for prorated
// quantities. Value precision stays fixed at 2.
func WithQuantityPlaces(places int32) Option {
	return func(p *Pipeline) { p.splitOpt.QuantityPlaces = places }
}

// WithTolerance overrides the reconciliation tolerance.
func WithTolerance(tolerance decimal.Decimal) Option {
	return func(p *Pipeline) { p.reconOpt.Tolerance = tolerance }
}

// NewPipeline creates a pipeline over the given reference store.
func NewPipeline(store *refdata.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:    store,
		domestic: "US",
		splitOpt: split.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the complete output of one invoice run.
type Result struct {
	RunID          uuid.UUID                  `json:"run_id"`
	ProcessedAt    time.Time                  `json:"processed_at"`
	ManufacturerID string                     `json:"manufacturer_id,omitempty"`
	Lines          []model.DerivativeLine     `json:"lines"`
	Reconciliation model.ReconciliationResult `json:"reconciliation"`
	Warnings       []model.Warning            `json:"warnings,omitempty"`
}

// ProcessInvoice runs the full pipeline over an ordered collection of
// line items. Every input line yields at least one output line: data
// loss on a financial document is unacceptable, so unmatched parts pass
// through flagged and lines whose processing errors are emitted as
// flagged failed rows rather than dropped.
func (p *Pipeline) ProcessInvoice(items []model.LineItem, declaredTotal decimal.Decimal, manufacturerID string) *Result {
	snap := p.store.Snapshot()
	return p.processWithSnapshot(snap, items, declaredTotal, manufacturerID)
}

// processWithSnapshot is the snapshot-pinned core shared by single-run
// and batch processing, so a reload mid-batch never mixes snapshots
// within one invoice.
func (p *Pipeline) processWithSnapshot(snap *refdata.Snapshot, items []model.LineItem, declaredTotal decimal.Decimal, manufacturerID string) *Result {
	result := &Result{
		RunID:          uuid.New(),
		ProcessedAt:    time.Now().UTC(),
		ManufacturerID: manufacturerID,
	}

	for _, item := range items {
		lines, warnings := p.processLine(snap, item)
		result.Lines = append(result.Lines, lines...)
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Reconciliation = reconcile.Reconcile(declaredTotal, result.Lines, len(items), p.reconOpt)
	if !result.Reconciliation.Matched {
		result.Warnings = append(result.Warnings, model.Warning{
			Kind: model.WarnDiscrepancy,
			Message: fmt.Sprintf("computed total %s differs from declared total %s by %s",
				result.Reconciliation.ComputedTotal, declaredTotal, result.Reconciliation.Discrepancy),
		})
	}

	return result
}

// processLine isolates one line: any error is converted into a flagged
// failed row and the batch continues.
func (p *Pipeline) processLine(snap *refdata.Snapshot, item model.LineItem) ([]model.DerivativeLine, []model.Warning) {
	if err := item.Validate(); err != nil {
		return failedLine(item, err), []model.Warning{{
			Line:    item.Number,
			Kind:    model.WarnLineFailed,
			Message: err.Error(),
		}}
	}

	var warnings []model.Warning

	cl := model.ClassifiedLine{Item: item, Primary: model.MaterialNone}
	part, ok := snap.Part(item.PartNumber)
	if !ok {
		warnings = append(warnings, model.Warning{
			Line:    item.Number,
			Kind:    model.WarnUnmatchedPart,
			Message: fmt.Sprintf("no reference record for part %q", item.PartNumber),
		})
		result := split.Split(cl, nil, p.splitOpt)
		return result.Lines, warnings
	}

	cl.Part = &part
	cl.Matched = true
	cl.Excluded = snap.Excluded(part.HTSCode)

	classification := classify.Classify(part)
	cl.Qualifying = classification.Qualifying
	cl.Primary = classification.Primary

	decls := make(map[model.Material]classify.Declaration, len(cl.Qualifying))
	for _, q := range cl.Qualifying {
		d, err := classify.ResolveDeclaration(part, q.Material, snap, p.domestic)
		if err != nil {
			// Reference-data gap: fatal to this line, surfaced
			// prominently for operator action.
			warnings = append(warnings, model.Warning{
				Line:     item.Number,
				Kind:     model.WarnMissingDeclarationCode,
				Material: q.Material,
				Message:  err.Error(),
			})
			return failedLine(item, err), warnings
		}
		if d.MissingOrigin {
			warnings = append(warnings, model.Warning{
				Line:     item.Number,
				Kind:     model.WarnMissingOrigin,
				Material: q.Material,
				Message:  fmt.Sprintf("part %q qualifies for %s but origin fields are missing", part.PartNumber, q.Material),
			})
		}
		decls[q.Material] = d
	}

	result := split.Split(cl, decls, p.splitOpt)
	if result.NegativeRemainder {
		warnings = append(warnings, model.Warning{
			Line:    item.Number,
			Kind:    model.WarnNegativeRemainder,
			Message: fmt.Sprintf("material ratios of part %q prorate past the declared value", part.PartNumber),
		})
	}

	return result.Lines, warnings
}

// failedLine emits the single flagged row for a line whose processing
// errored, carrying the original declared value.
func failedLine(item model.LineItem, err error) []model.DerivativeLine {
	return []model.DerivativeLine{{
		LineNumber:  item.Number,
		PartNumber:  item.PartNumber,
		Description: item.Description,
		Material:    model.MaterialNone,
		Value:       item.Value,
		Quantity:    item.Quantity,
		NetWeight:   item.NetWeight,
		Failed:      true,
		FailReason:  err.Error(),
	}}
}

package tarifflib

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/rezonia/tariffmill/internal/mapping"
	"github.com/rezonia/tariffmill/internal/pipeline"
	"github.com/rezonia/tariffmill/internal/refdata"
)

// Options configure a Processor.
type Options struct {
	// DomesticCountry is the country code treated as domestic when
	// deriving origin flags.
	DomesticCountry string

	// QuantityPlaces is the rounding precision for prorated quantities.
	QuantityPlaces int32

	// Tolerance overrides the reconciliation tolerance. Zero means the
	// default of one cent per input line.
	Tolerance decimal.Decimal
}

// DefaultOptions returns the standard processor options.
func DefaultOptions() Options {
	return Options{
		DomesticCountry: "US",
		QuantityPlaces:  2,
	}
}

// Processor is the public entry point around the internal pipeline.
type Processor struct {
	store    *refdata.Store
	pipeline *pipeline.Pipeline
}

// NewProcessor creates a processor over an existing reference store.
func NewProcessor(store *refdata.Store, opts Options) *Processor {
	pipeOpts := []pipeline.Option{
		pipeline.WithQuantityPlaces(opts.QuantityPlaces),
	}
	if opts.DomesticCountry != "" {
		pipeOpts = append(pipeOpts, pipeline.WithDomesticCountry(opts.DomesticCountry))
	}
	if !opts.Tolerance.IsZero() {
		pipeOpts = append(pipeOpts, pipeline.WithTolerance(opts.Tolerance))
	}

	return &Processor{
		store:    store,
		pipeline: pipeline.NewPipeline(store, pipeOpts...),
	}
}

// OpenProcessor opens the reference SQLite database at path and builds
// a processor over it.
func OpenProcessor(path string, opts Options) (*Processor, error) {
	store, err := refdata.OpenStore(path)
	if err != nil {
		return nil, err
	}
	return NewProcessor(store, opts), nil
}

// ProcessInvoice classifies, splits and reconciles one invoice.
func (p *Processor) ProcessInvoice(items []LineItem, declaredTotal decimal.Decimal, manufacturerID string) *pipeline.Result {
	return p.pipeline.ProcessInvoice(items, declaredTotal, manufacturerID)
}

// ProcessCSV reads invoice line items from r using the default column
// profile and processes them. A zero declaredTotal means the sum of
// line values is used.
func (p *Processor) ProcessCSV(r io.Reader, declaredTotal decimal.Decimal, manufacturerID string) (*pipeline.Result, error) {
	items, err := mapping.NewMapper(mapping.DefaultProfile()).Read(r)
	if err != nil {
		return nil, err
	}
	if declaredTotal.IsZero() {
		for _, item := range items {
			declaredTotal = declaredTotal.Add(item.Value)
		}
	}
	return p.ProcessInvoice(items, declaredTotal, manufacturerID), nil
}

// ProcessBatch processes independent invoices concurrently against one
// reference snapshot.
func (p *Processor) ProcessBatch(ctx context.Context, invoices []pipeline.Invoice) ([]*pipeline.Result, error) {
	return p.pipeline.ProcessBatch(ctx, invoices)
}

// Reload loads a fresh snapshot from the database at path and installs
// it. In-flight runs keep the snapshot they started with.
func (p *Processor) Reload(path string) error {
	db, err := refdata.Open(path)
	if err != nil {
		return err
	}
	snap, err := refdata.LoadSnapshot(db)
	if err != nil {
		return err
	}
	p.store.Swap(snap)
	return nil
}

// Part looks up a part record in the current snapshot.
func (p *Processor) Part(partNumber string) (PartRecord, bool) {
	return p.store.Snapshot().Part(partNumber)
}

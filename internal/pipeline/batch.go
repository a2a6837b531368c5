package pipeline

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rezonia/tariffmill/internal/model"
)

// Invoice is one unit of batch work: an ordered line collection with
// its declared total and manufacturer.
type Invoice struct {
	Items          []model.LineItem
	DeclaredTotal  decimal.Decimal
	ManufacturerID string
}

// ProcessBatch processes independent invoices concurrently against a
// single snapshot captured up front; a reload during the batch never
// affects in-flight work. Cancellation stops submitting further
// invoices and discards the partial batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, invoices []Invoice) ([]*Result, error) {
	snap := p.store.Snapshot()
	results := make([]*Result, len(invoices))

	g, ctx := errgroup.WithContext(ctx)
	for i, inv := range invoices {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.processWithSnapshot(snap, inv.Items, inv.DeclaredTotal, inv.ManufacturerID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

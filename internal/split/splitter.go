// Package split turns a classified invoice line into its derivative
// lines: the non-classified remainder plus one prorated line per
// qualifying material.
package split

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/tariffmill/internal/classify"
	"github.com/rezonia/tariffmill/internal/model"
	"github.com/rezonia/tariffmill/internal/money"
)

// Options controls output precision.
type Options struct {
	// ValuePlaces is the monetary precision, fixed at 2 for exports.
	ValuePlaces int32
	// QuantityPlaces applies to both quantity dimensions.
	QuantityPlaces int32
}

// DefaultOptions returns the standard output precision.
func DefaultOptions() Options {
	return Options{ValuePlaces: money.ValuePlaces, QuantityPlaces: 2}
}

// Result is the ordered output of splitting one classified line.
type Result struct {
	// Lines holds the remainder line first (material none), then one
	// line per qualifying material in priority order.
	Lines []model.DerivativeLine

	// NegativeRemainder reports that the rounded derivative values
	// exceeded the declared value (ratios summing past 1). The line
	// is flagged, never dropped, and the batch continues.
	NegativeRemainder bool
}

// Split prorates a classified line across its qualifying materials.
//
// Each derivative value is declared value x ratio rounded to the output
// precision; the remainder is declared value minus the sum of the
// rounded derivatives. Computing the remainder from the rounded splits
// (not from 1 - sum of ratios) pins all rounding error in the
// remainder, so the emitted values always reconstruct the declared
// value exactly. Output is deterministic: identical inputs produce
// byte-identical lines.
func Split(cl model.ClassifiedLine, decls map[model.Material]classify.Declaration, opts Options) Result {
	if !cl.Matched {
		line := baseLine(cl)
		line.Unmatched = true
		return Result{Lines: []model.DerivativeLine{line}}
	}

	if len(cl.Qualifying) == 0 {
		// Non-classified: passes through unsplit.
		return Result{Lines: []model.DerivativeLine{baseLine(cl)}}
	}

	item := cl.Item
	derivatives := make([]model.DerivativeLine, 0, len(cl.Qualifying))
	splitValue := decimal.Zero
	splitQuantity := decimal.Zero
	splitWeight := decimal.Zero

	for _, q := range cl.Qualifying {
		line := baseLine(cl)
		line.Material = q.Material
		line.Value = money.Prorate(item.Value, q.Ratio, opts.ValuePlaces)
		line.Quantity = money.Prorate(item.Quantity, q.Ratio, opts.QuantityPlaces)
		line.NetWeight = money.Prorate(item.NetWeight, q.Ratio, opts.QuantityPlaces)

		if d, ok := decls[q.Material]; ok {
			line.DeclarationCode = d.Code.Code
			line.Origin = d.Origin
			line.NeedsReview = line.NeedsReview || d.MissingOrigin
		}

		splitValue = splitValue.Add(line.Value)
		splitQuantity = splitQuantity.Add(line.Quantity)
		splitWeight = splitWeight.Add(line.NetWeight)
		derivatives = append(derivatives, line)
	}

	remainder := baseLine(cl)
	remainder.Value = item.Value.Sub(splitValue)
	remainder.Quantity = item.Quantity.Sub(splitQuantity)
	remainder.NetWeight = item.NetWeight.Sub(splitWeight)

	negative := remainder.Value.IsNegative()
	if negative {
		remainder.NeedsReview = true
	}

	lines := make([]model.DerivativeLine, 0, len(derivatives)+1)
	lines = append(lines, remainder)
	lines = append(lines, derivatives...)

	return Result{Lines: lines, NegativeRemainder: negative}
}

// baseLine copies the fields every derivative of a classified line
// shares. Material defaults to none, value/quantities to the full
// declared amounts.
func baseLine(cl model.ClassifiedLine) model.DerivativeLine {
	item := cl.Item
	line := model.DerivativeLine{
		LineNumber:  item.Number,
		PartNumber:  item.PartNumber,
		Description: item.Description,
		Material:    model.MaterialNone,
		Value:       item.Value,
		Quantity:    item.Quantity,
		NetWeight:   item.NetWeight,
		Excluded:    cl.Excluded,
	}
	if cl.Part != nil {
		line.PartNumber = cl.Part.PartNumber
		line.HTSCode = cl.Part.HTSCode
		line.MID = cl.Part.MID
		line.CountryOfOrigin = cl.Part.CountryOfOrigin
		line.MeltCountry = cl.Part.MeltCountry
		line.CastCountry = cl.Part.CastCountry
		line.SmeltCountry = cl.Part.SmeltCountry
		if line.Description == "" {
			line.Description = cl.Part.Description
		}
	}
	return line
}

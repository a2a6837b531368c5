// Package reconcile compares the computed run total against the
// user-entered invoice total and reports the discrepancy with per-line
// granularity. The result is advisory only; export never blocks on it.
package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rezonia/tariffmill/internal/model"
)

// smallestUnit is one cent, the smallest currency unit at the fixed
// 2-place value precision.
var smallestUnit = decimal.New(1, -2)

// Options configures tolerance behavior.
type Options struct {
	// Tolerance overrides the default matched/discrepant threshold.
	// Zero means use the default: smallest currency unit x number of
	// invoice lines, absorbing per-line rounding.
	Tolerance decimal.Decimal

	// LineThreshold is the minimum absolute computed value for a line
	// to appear in the discrepancy breakdown. Defaults to the
	// smallest currency unit.
	LineThreshold decimal.Decimal
}

// Reconcile sums the values of all derivative lines (remainders and
// splits), compares against the declared invoice total, and on
// discrepancy produces a per-line breakdown sorted by absolute
// contribution descending so the largest-impact corrections surface
// first. lineCount is the number of original invoice lines and scales
// the default tolerance.
func Reconcile(declaredTotal decimal.Decimal, lines []model.DerivativeLine, lineCount int, opts Options) model.ReconciliationResult {
	tolerance := opts.Tolerance
	if tolerance.IsZero() {
		tolerance = smallestUnit.Mul(decimal.NewFromInt(int64(lineCount)))
	}
	lineThreshold := opts.LineThreshold
	if lineThreshold.IsZero() {
		lineThreshold = smallestUnit
	}

	// Per original line: computed value is the sum of its remainder
	// and splits. Line numbers stay in invoice order.
	perLine := make(map[int]*model.LineContribution)
	var order []int
	computed := decimal.Zero
	for _, l := range lines {
		computed = computed.Add(l.Value)
		c, ok := perLine[l.LineNumber]
		if !ok {
			c = &model.LineContribution{Line: l.LineNumber, PartNumber: l.PartNumber}
			perLine[l.LineNumber] = c
			order = append(order, l.LineNumber)
		}
		c.ComputedValue = c.ComputedValue.Add(l.Value)
	}

	discrepancy := computed.Sub(declaredTotal)
	relative := decimal.Zero
	if !declaredTotal.IsZero() {
		relative = discrepancy.Div(declaredTotal).Round(6)
	}

	result := model.ReconciliationResult{
		ComputedTotal:       computed,
		DeclaredTotal:       declaredTotal,
		Discrepancy:         discrepancy,
		RelativeDiscrepancy: relative,
		Tolerance:           tolerance,
		Matched:             discrepancy.Abs().LessThanOrEqual(tolerance),
	}

	if result.Matched {
		return result
	}

	breakdown := make([]model.LineContribution, 0, len(order))
	for _, n := range order {
		c := perLine[n]
		if c.ComputedValue.Abs().GreaterThanOrEqual(lineThreshold) {
			breakdown = append(breakdown, *c)
		}
	}
	// Largest absolute contribution first; line order breaks ties so
	// output stays deterministic.
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].ComputedValue.Abs().GreaterThan(breakdown[j].ComputedValue.Abs())
	})
	result.Breakdown = breakdown

	return result
}

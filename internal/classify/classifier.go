// Package classify determines which tariff-relevant material categories
// apply to a part and resolves the customs declaration for each.
package classify

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/tariffmill/internal/model"
)

// Classification is the outcome of classifying one part record.
type Classification struct {
	// Qualifying lists the materials with ratio strictly greater than
	// zero, in priority order.
	Qualifying []model.MaterialRatio

	// Primary is the qualifying material with the maximum ratio. Ties
	// break on model.MaterialPriority: steel > aluminum > copper >
	// wood > automotive. MaterialNone when nothing qualifies.
	Primary model.Material
}

// Classify determines the qualifying materials and the primary material
// for a part record. Ratios are taken as-is: they are not normalized or
// capped, and several materials may qualify at once; each spawns its
// own derivative line downstream. Only primary selection is sensitive
// to the tie-break.
func Classify(part model.PartRecord) Classification {
	var c Classification
	c.Primary = model.MaterialNone

	maxRatio := decimal.Zero
	for _, m := range model.MaterialPriority {
		ratio := part.Ratio(m)
		if !ratio.IsPositive() {
			continue
		}
		c.Qualifying = append(c.Qualifying, model.MaterialRatio{Material: m, Ratio: ratio})

		// Strict greater-than keeps the earlier material on ties.
		if ratio.GreaterThan(maxRatio) {
			maxRatio = ratio
			c.Primary = m
		}
	}
	return c
}

package money

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// ValuePlaces is the fixed output precision for monetary values.
const ValuePlaces int32 = 2

// FromFloat creates decimal from float with value rounding
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(ValuePlaces)
}

// FromString parses decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Prorate computes total * ratio rounded to the given number of places.
// Rounding happens per derivative so accumulated error lands in the
// remainder, never distributed across splits.
func Prorate(total, ratio decimal.Decimal, places int32) decimal.Decimal {
	return total.Mul(ratio).Round(places)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// ValidRatio reports whether r is a fraction in [0,1].
func ValidRatio(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

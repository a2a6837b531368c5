package split_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tariffmill/internal/classify"
	"github.com/rezonia/tariffmill/internal/model"
	"github.com/rezonia/tariffmill/internal/split"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func classifiedLine(value string, ratios map[model.Material]string) model.ClassifiedLine {
	part := model.PartRecord{
		PartNumber: "BTT-4100",
		HTSCode:    "9401.69.8031",
	}
	for m, r := range ratios {
		switch m {
		case model.MaterialSteel:
			part.SteelRatio = dec(r)
		case model.MaterialAluminum:
			part.AluminumRatio = dec(r)
		case model.MaterialCopper:
			part.CopperRatio = dec(r)
		case model.MaterialWood:
			part.WoodRatio = dec(r)
		case model.MaterialAutomotive:
			part.AutomotiveRatio = dec(r)
		}
	}
	c := classify.Classify(part)
	return model.ClassifiedLine{
		Item: model.LineItem{
			Number:     1,
			PartNumber: "BTT-4100",
			Quantity:   dec("10"),
			NetWeight:  dec("250.00"),
			Value:      dec(value),
		},
		Part:       &part,
		Matched:    true,
		Qualifying: c.Qualifying,
		Primary:    c.Primary,
	}
}

func steelAluminumDecls() map[model.Material]classify.Declaration {
	return map[model.Material]classify.Declaration{
		model.MaterialSteel: {
			Code:   model.DeclarationCode{Material: model.MaterialSteel, Code: "9903.81.91"},
			Origin: model.OriginForeign,
		},
		model.MaterialAluminum: {
			Code:   model.DeclarationCode{Material: model.MaterialAluminum, Code: "9903.85.08"},
			Origin: model.OriginForeign,
		},
	}
}

func TestSplit_SimpleSplit(t *testing.T) {
	cl := classifiedLine("1000.00", map[model.Material]string{
		model.MaterialSteel:    "0.30",
		model.MaterialAluminum: "0.10",
	})

	result := split.Split(cl, steelAluminumDecls(), split.DefaultOptions())

	require.Len(t, result.Lines, 3)
	assert.False(t, result.NegativeRemainder)

	// Remainder first, material none.
	remainder := result.Lines[0]
	assert.Equal(t, model.MaterialNone, remainder.Material)
	assert.True(t, remainder.Value.Equal(dec("600.00")), "remainder value: %s", remainder.Value)
	assert.Empty(t, remainder.DeclarationCode)

	steel := result.Lines[1]
	assert.Equal(t, model.MaterialSteel, steel.Material)
	assert.True(t, steel.Value.Equal(dec("300.00")), "steel value: %s", steel.Value)
	assert.Equal(t, "9903.81.91", steel.DeclarationCode)

	aluminum := result.Lines[2]
	assert.Equal(t, model.MaterialAluminum, aluminum.Material)
	assert.True(t, aluminum.Value.Equal(dec("100.00")), "aluminum value: %s", aluminum.Value)
	assert.Equal(t, "9903.85.08", aluminum.DeclarationCode)

	// Computed total reconstructs the declared value exactly.
	total := remainder.Value.Add(steel.Value).Add(aluminum.Value)
	assert.True(t, total.Equal(dec("1000.00")))
}

func TestSplit_QuantityProration(t *testing.T) {
	cl := classifiedLine("1000.00", map[model.Material]string{
		model.MaterialSteel: "0.30",
	})

	result := split.Split(cl, steelAluminumDecls(), split.DefaultOptions())

	require.Len(t, result.Lines, 2)
	assert.True(t, result.Lines[1].Quantity.Equal(dec("3")))
	assert.True(t, result.Lines[1].NetWeight.Equal(dec("75.00")))
	assert.True(t, result.Lines[0].Quantity.Equal(dec("7")))
	assert.True(t, result.Lines[0].NetWeight.Equal(dec("175.00")))

	qty := result.Lines[0].Quantity.Add(result.Lines[1].Quantity)
	assert.True(t, qty.Equal(dec("10")))
}

func TestSplit_ValueConservation(t *testing.T) {
	// Rounding error must land in the remainder so the sum always
	// reconstructs the declared value exactly.
	tests := []struct {
		name   string
		value  string
		ratios map[model.Material]string
	}{
		{"thirds", "100.00", map[model.Material]string{
			model.MaterialSteel:  "0.333333",
			model.MaterialCopper: "0.333333",
		}},
		{"tiny value", "0.01", map[model.Material]string{
			model.MaterialSteel:    "0.30",
			model.MaterialAluminum: "0.10",
		}},
		{"many materials", "999.97", map[model.Material]string{
			model.MaterialSteel:      "0.17",
			model.MaterialAluminum:   "0.13",
			model.MaterialCopper:     "0.07",
			model.MaterialWood:       "0.29",
			model.MaterialAutomotive: "0.11",
		}},
		{"ratios sum to one", "123.45", map[model.Material]string{
			model.MaterialSteel: "0.5",
			model.MaterialWood:  "0.5",
		}},
		{"zero value", "0", map[model.Material]string{
			model.MaterialSteel: "0.30",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := classifiedLine(tt.value, tt.ratios)
			result := split.Split(cl, nil, split.DefaultOptions())

			sum := decimal.Zero
			for _, line := range result.Lines {
				sum = sum.Add(line.Value)
			}
			assert.True(t, sum.Equal(dec(tt.value)),
				"sum %s != declared %s", sum, tt.value)
		})
	}
}

func TestSplit_NegativeRemainder(t *testing.T) {
	// Ratios summing past 1 are a data anomaly: flag, never abort.
	cl := classifiedLine("100.00", map[model.Material]string{
		model.MaterialSteel:    "0.80",
		model.MaterialAluminum: "0.40",
	})

	result := split.Split(cl, steelAluminumDecls(), split.DefaultOptions())

	assert.True(t, result.NegativeRemainder)
	require.Len(t, result.Lines, 3)
	assert.True(t, result.Lines[0].Value.Equal(dec("-20.00")))
	assert.True(t, result.Lines[0].NeedsReview)

	// Conservation holds even here.
	sum := decimal.Zero
	for _, line := range result.Lines {
		sum = sum.Add(line.Value)
	}
	assert.True(t, sum.Equal(dec("100.00")))
}

func TestSplit_Unmatched(t *testing.T) {
	cl := model.ClassifiedLine{
		Item: model.LineItem{
			Number:     4,
			PartNumber: "X-999",
			Value:      dec("50.00"),
		},
		Matched: false,
	}

	result := split.Split(cl, nil, split.DefaultOptions())

	require.Len(t, result.Lines, 1)
	line := result.Lines[0]
	assert.True(t, line.Unmatched)
	assert.Equal(t, model.MaterialNone, line.Material)
	assert.True(t, line.Value.Equal(dec("50.00")))
	assert.Equal(t, 4, line.LineNumber)
}

func TestSplit_NonClassified(t *testing.T) {
	cl := classifiedLine("75.50", nil)

	result := split.Split(cl, nil, split.DefaultOptions())

	require.Len(t, result.Lines, 1)
	assert.Equal(t, model.MaterialNone, result.Lines[0].Material)
	assert.True(t, result.Lines[0].Value.Equal(dec("75.50")))
	assert.False(t, result.Lines[0].Unmatched)
}

func TestSplit_ExcludedPropagates(t *testing.T) {
	cl := classifiedLine("1000.00", map[model.Material]string{
		model.MaterialSteel: "0.30",
	})
	cl.Excluded = true

	result := split.Split(cl, steelAluminumDecls(), split.DefaultOptions())

	// Exclusion is a property of the whole line, not per derivative.
	for _, line := range result.Lines {
		assert.True(t, line.Excluded)
	}
}

func TestSplit_MissingOriginFlagsReview(t *testing.T) {
	cl := classifiedLine("1000.00", map[model.Material]string{
		model.MaterialSteel: "0.30",
	})
	decls := map[model.Material]classify.Declaration{
		model.MaterialSteel: {
			Code:          model.DeclarationCode{Material: model.MaterialSteel, Code: "9903.81.91"},
			Origin:        model.OriginUnknown,
			MissingOrigin: true,
		},
	}

	result := split.Split(cl, decls, split.DefaultOptions())

	require.Len(t, result.Lines, 2)
	assert.Equal(t, model.OriginUnknown, result.Lines[1].Origin)
	assert.True(t, result.Lines[1].NeedsReview)
	assert.False(t, result.Lines[0].NeedsReview)
}

func TestSplit_Deterministic(t *testing.T) {
	cl := classifiedLine("999.97", map[model.Material]string{
		model.MaterialSteel:      "0.17",
		model.MaterialAluminum:   "0.13",
		model.MaterialCopper:     "0.07",
		model.MaterialWood:       "0.29",
		model.MaterialAutomotive: "0.11",
	})

	first, err := json.Marshal(split.Split(cl, steelAluminumDecls(), split.DefaultOptions()).Lines)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := json.Marshal(split.Split(cl, steelAluminumDecls(), split.DefaultOptions()).Lines)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func BenchmarkSplit(b *testing.B) {
	cl := classifiedLine("1000.00", map[model.Material]string{
		model.MaterialSteel:    "0.30",
		model.MaterialAluminum: "0.10",
	})
	decls := steelAluminumDecls()
	opts := split.DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		split.Split(cl, decls, opts)
	}
}

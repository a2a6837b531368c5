package classify_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tariffmill/internal/classify"
	"github.com/rezonia/tariffmill/internal/model"
)

func ratio(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassify_SingleMaterial(t *testing.T) {
	part := model.PartRecord{SteelRatio: ratio("0.30")}

	c := classify.Classify(part)

	require.Len(t, c.Qualifying, 1)
	assert.Equal(t, model.MaterialSteel, c.Qualifying[0].Material)
	assert.True(t, c.Qualifying[0].Ratio.Equal(ratio("0.30")))
	assert.Equal(t, model.MaterialSteel, c.Primary)
}

func TestClassify_MultipleMaterials(t *testing.T) {
	part := model.PartRecord{
		SteelRatio:    ratio("0.30"),
		AluminumRatio: ratio("0.10"),
		WoodRatio:     ratio("0.45"),
	}

	c := classify.Classify(part)

	require.Len(t, c.Qualifying, 3)
	// Qualifying is always in priority order regardless of ratios.
	assert.Equal(t, model.MaterialSteel, c.Qualifying[0].Material)
	assert.Equal(t, model.MaterialAluminum, c.Qualifying[1].Material)
	assert.Equal(t, model.MaterialWood, c.Qualifying[2].Material)
	// Primary is the maximum ratio.
	assert.Equal(t, model.MaterialWood, c.Primary)
}

func TestClassify_NonClassified(t *testing.T) {
	c := classify.Classify(model.PartRecord{})

	assert.Empty(t, c.Qualifying)
	assert.Equal(t, model.MaterialNone, c.Primary)
}

func TestClassify_ZeroRatioDoesNotQualify(t *testing.T) {
	part := model.PartRecord{
		SteelRatio:  decimal.Zero,
		CopperRatio: ratio("0.05"),
	}

	c := classify.Classify(part)

	require.Len(t, c.Qualifying, 1)
	assert.Equal(t, model.MaterialCopper, c.Qualifying[0].Material)
	assert.Equal(t, model.MaterialCopper, c.Primary)
}

func TestClassify_TieBreak(t *testing.T) {
	tests := []struct {
		name     string
		part     model.PartRecord
		expected model.Material
	}{
		{
			name:     "steel beats aluminum on equal ratio",
			part:     model.PartRecord{SteelRatio: ratio("0.40"), AluminumRatio: ratio("0.40")},
			expected: model.MaterialSteel,
		},
		{
			name:     "aluminum beats copper on equal ratio",
			part:     model.PartRecord{AluminumRatio: ratio("0.25"), CopperRatio: ratio("0.25")},
			expected: model.MaterialAluminum,
		},
		{
			name:     "copper beats wood on equal ratio",
			part:     model.PartRecord{CopperRatio: ratio("0.10"), WoodRatio: ratio("0.10")},
			expected: model.MaterialCopper,
		},
		{
			name:     "wood beats automotive on equal ratio",
			part:     model.PartRecord{WoodRatio: ratio("0.50"), AutomotiveRatio: ratio("0.50")},
			expected: model.MaterialWood,
		},
		{
			name: "five-way tie picks steel",
			part: model.PartRecord{
				SteelRatio:      ratio("0.20"),
				AluminumRatio:   ratio("0.20"),
				CopperRatio:     ratio("0.20"),
				WoodRatio:       ratio("0.20"),
				AutomotiveRatio: ratio("0.20"),
			},
			expected: model.MaterialSteel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classify.Classify(tt.part)
			assert.Equal(t, tt.expected, c.Primary)
		})
	}
}

func BenchmarkClassify(b *testing.B) {
	part := model.PartRecord{
		SteelRatio:    ratio("0.30"),
		AluminumRatio: ratio("0.10"),
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		classify.Classify(part)
	}
}

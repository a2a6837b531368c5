package refdata_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tariffmill/internal/model"
	"github.com/rezonia/tariffmill/internal/refdata"
)

func testSnapshot() *refdata.Snapshot {
	parts := []model.PartRecord{
		{
			PartNumber:      "BTT-4100",
			Description:     "Bench",
			HTSCode:         "9401.69.8031",
			CountryOfOrigin: "CZ",
			SteelRatio:      decimal.RequireFromString("0.30"),
			AluminumRatio:   decimal.RequireFromString("0.10"),
		},
		// Trailing space in reference data must not break lookups.
		{
			PartNumber: "ND-200 ",
			HTSCode:    "7308.90.6000",
			SteelRatio: decimal.RequireFromString("0.85"),
		},
	}
	exclusions := []string{"9401.69.8031"}
	codes := []model.DeclarationCode{
		{Material: model.MaterialSteel, Code: "9903.81.91"},
		{Material: model.MaterialAluminum, Code: "9903.85.08"},
	}
	return refdata.NewSnapshot(parts, exclusions, codes)
}

func TestSnapshot_PartLookup(t *testing.T) {
	snap := testSnapshot()

	p, ok := snap.Part("BTT-4100")
	require.True(t, ok)
	assert.Equal(t, "9401.69.8031", p.HTSCode)

	// Lookup with trailing whitespace must still match.
	p, ok = snap.Part("BTT-4100  ")
	require.True(t, ok)
	assert.Equal(t, "BTT-4100", p.PartNumber)

	// Part stored with trailing whitespace is keyed trimmed.
	p, ok = snap.Part("ND-200")
	require.True(t, ok)
	assert.Equal(t, "ND-200", p.PartNumber)
}

func TestSnapshot_PartLookup_CaseSensitive(t *testing.T) {
	snap := testSnapshot()

	_, ok := snap.Part("btt-4100")
	assert.False(t, ok, "matching is exact and case-sensitive")
}

func TestSnapshot_PartLookup_NotFound(t *testing.T) {
	snap := testSnapshot()

	_, ok := snap.Part("X-999")
	assert.False(t, ok)
}

func TestSnapshot_Excluded(t *testing.T) {
	snap := testSnapshot()

	assert.True(t, snap.Excluded("9401.69.8031"))
	assert.False(t, snap.Excluded("7308.90.6000"))
	// No prefix matching.
	assert.False(t, snap.Excluded("9401.69"))
}

func TestSnapshot_Codes(t *testing.T) {
	snap := testSnapshot()

	c, ok := snap.Code(model.MaterialSteel)
	require.True(t, ok)
	assert.Equal(t, "9903.81.91", c.Code)

	_, ok = snap.Code(model.MaterialWood)
	assert.False(t, ok)

	// Priority order: steel before aluminum.
	codes := snap.Codes()
	require.Len(t, codes, 2)
	assert.Equal(t, model.MaterialSteel, codes[0].Material)
	assert.Equal(t, model.MaterialAluminum, codes[1].Material)
}

func TestSnapshot_SearchParts(t *testing.T) {
	snap := testSnapshot()

	results := snap.SearchParts("bench")
	require.Len(t, results, 1)
	assert.Equal(t, "BTT-4100", results[0].PartNumber)

	assert.Empty(t, snap.SearchParts(""))
}

func TestStore_Swap(t *testing.T) {
	snap1 := testSnapshot()
	store := refdata.NewStore(snap1)

	held := store.Snapshot()
	require.Same(t, snap1, held)

	snap2 := refdata.NewSnapshot(nil, nil, nil)
	store.Swap(snap2)

	// New readers see the new snapshot; the held pointer is untouched.
	assert.Same(t, snap2, store.Snapshot())
	_, ok := held.Part("BTT-4100")
	assert.True(t, ok)
}

func TestStore_SwapNil(t *testing.T) {
	store := refdata.NewStore(testSnapshot())
	store.Swap(nil)
	assert.NotNil(t, store.Snapshot())
}

func TestNewStore_NilSnapshot(t *testing.T) {
	store := refdata.NewStore(nil)
	require.NotNil(t, store.Snapshot())
	assert.Equal(t, 0, store.Snapshot().PartCount())
}

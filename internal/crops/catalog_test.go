package crops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogComplete(t *testing.T) {
	names := Names()

	assert.Len(t, names, 15)
	for _, expect := range []string{"cotton", "wheat", "rice", "grape", "chickpea", "sunflower"} {
		assert.Contains(t, names, expect)
	}
}

func TestInfoCaseInsensitive(t *testing.T) {
	lower, ok := Info("cotton")
	require.True(t, ok)

	upper, ok := Info("Cotton")
	require.True(t, ok)

	assert.Equal(t, lower, upper)
	assert.Equal(t, "Paxta", lower.NameUz)
}

func TestInfoUnknown(t *testing.T) {
	_, ok := Info("dragonfruit")
	assert.False(t, ok)
}

func TestSuitableInAllSentinel(t *testing.T) {
	wheat, ok := Info("wheat")
	require.True(t, ok)
	require.Equal(t, []string{RegionAll}, wheat.SuitableRegions)

	assert.True(t, wheat.SuitableIn("Bukhara"))
	assert.True(t, wheat.SuitableIn("Atlantis"))
}

func TestSuitableInExplicitRegions(t *testing.T) {
	rice, ok := Info("rice")
	require.True(t, ok)

	assert.True(t, rice.SuitableIn("Khorezm"))
	assert.False(t, rice.SuitableIn("Navoiy"))
}

func TestInSeasonWraparound(t *testing.T) {
	wheat, ok := Info("wheat")
	require.True(t, ok)
	require.Equal(t, 10, wheat.SeasonStartMonth)
	require.Equal(t, 6, wheat.SeasonEndMonth)

	for _, month := range []int{10, 11, 12, 1, 2, 3, 4, 5, 6} {
		assert.True(t, wheat.InSeason(month), "month %d", month)
	}
	for _, month := range []int{7, 8, 9} {
		assert.False(t, wheat.InSeason(month), "month %d", month)
	}
}

func TestInSeasonContiguous(t *testing.T) {
	cotton, ok := Info("cotton")
	require.True(t, ok)

	assert.True(t, cotton.InSeason(4))
	assert.True(t, cotton.InSeason(10))
	assert.False(t, cotton.InSeason(1))
	assert.False(t, cotton.InSeason(12))
}

func TestSensitivityScores(t *testing.T) {
	assert.Equal(t, 0.1, DroughtScore(SensitivityVeryLow))
	assert.Equal(t, 0.9, DroughtScore(SensitivityVeryHigh))
	assert.Equal(t, 0.5, DroughtScore(Sensitivity("bogus")))

	assert.Equal(t, 0.2, FrostScore(SensitivityLow))
	assert.Equal(t, 0.8, FrostScore(SensitivityHigh))
	assert.Equal(t, 0.5, FrostScore(Sensitivity("bogus")))
}

func TestByCategory(t *testing.T) {
	vegetables := ByCategory("vegetable")

	assert.Contains(t, vegetables, "tomato")
	assert.Contains(t, vegetables, "potato")
	assert.NotContains(t, vegetables, "cotton")
}

func TestSuitableForRegion(t *testing.T) {
	suited := SuitableForRegion("Fergana")

	// "all" crops always qualify.
	assert.Contains(t, suited, "wheat")
}

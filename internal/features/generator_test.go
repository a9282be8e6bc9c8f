package features

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/crops"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/satellite"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/weather"
)

type stubProvider struct {
	summary weather.Summary
	err     error
}

func (s stubProvider) Fetch(ctx context.Context, lat, lon float64) (weather.Summary, error) {
	return s.summary, s.err
}

func floatPtr(v float64) *float64 { return &v }

func TestClimateZone(t *testing.T) {
	assert.Equal(t, "tashkent", ClimateZone("Tashkent Region"))
	assert.Equal(t, "tashkent", ClimateZone("Tashkent City"))
	assert.Equal(t, "fergana", ClimateZone("Andijan"))
	assert.Equal(t, "south", ClimateZone("Surkhandarya"))
	assert.Equal(t, "other", ClimateZone("Atlantis"))
}

func TestEstimateSoilMoistureBounds(t *testing.T) {
	// Hot and dry pushes toward the floor.
	assert.GreaterOrEqual(t, EstimateSoilMoisture(0, 55, 0), 0.1)
	// Wet and mild pushes toward the ceiling.
	assert.LessOrEqual(t, EstimateSoilMoisture(2000, 10, 0.9), 0.9)

	got := EstimateSoilMoisture(400, 20, 0.4)
	assert.Greater(t, got, 0.1)
	assert.Less(t, got, 0.9)
}

func TestRiskFlags(t *testing.T) {
	cotton, ok := crops.Info("cotton")
	require.True(t, ok)

	// Frost when the minimum temperature drops more than 5 below the
	// optimal minimum.
	frost, _ := RiskFlags(cotton, cotton.OptimalTempMinC-6, 1000, 25)
	assert.Equal(t, 1.0, frost)

	frost, _ = RiskFlags(cotton, cotton.OptimalTempMinC-4, 1000, 25)
	assert.Equal(t, 0.0, frost)

	// Drought requires both low precipitation and heat.
	_, drought := RiskFlags(cotton, 15, 0.5*cotton.WaterNeedMm, cotton.OptimalTempMaxC+1)
	assert.Equal(t, 1.0, drought)

	_, drought = RiskFlags(cotton, 15, 0.5*cotton.WaterNeedMm, cotton.OptimalTempMaxC-1)
	assert.Equal(t, 0.0, drought)

	_, drought = RiskFlags(cotton, 15, 0.7*cotton.WaterNeedMm, cotton.OptimalTempMaxC+1)
	assert.Equal(t, 0.0, drought)
}

func TestMatchScores(t *testing.T) {
	cotton, ok := crops.Info("cotton")
	require.True(t, ok)

	mid := (cotton.OptimalTempMinC + cotton.OptimalTempMaxC) / 2
	assert.Equal(t, 1.0, TempMatch(cotton, mid))
	assert.Equal(t, 0.0, TempMatch(cotton, mid+100))

	assert.Equal(t, 1.0, WaterMatch(cotton, cotton.WaterNeedMm))
	assert.Equal(t, 1.5, WaterMatch(cotton, cotton.WaterNeedMm*10))
	assert.Equal(t, 0.0, WaterMatch(cotton, 0))

	assert.Equal(t, 2.0, NDVIScore(cotton, cotton.NDVIHealthyMin*3))
	assert.Equal(t, 0.0, NDVIScore(cotton, 0))
}

func TestGenerateUnknownCrop(t *testing.T) {
	gen := NewGenerator(nil, nil)

	_, err := gen.Generate(context.Background(), satellite.Snapshot{}, "dragonfruit", 6)

	assert.ErrorIs(t, err, ErrUnknownCrop)
}

func TestGenerateDefaults(t *testing.T) {
	gen := NewGenerator(nil, nil)
	snap := satellite.Snapshot{
		Region:    "Tashkent Region",
		District:  "Chirchiq",
		Latitude:  41.47,
		Longitude: 69.58,
	}

	rec, err := gen.Generate(context.Background(), snap, "cotton", 6)
	require.NoError(t, err)

	assert.Equal(t, "Tashkent Region", rec.Region)
	assert.Equal(t, "tashkent", rec.ClimateZone)
	assert.Equal(t, 6, rec.Month)

	// Absent measurements take the documented defaults.
	assert.Equal(t, 0.3, rec.NDVIMean)
	assert.Equal(t, 0.3, rec.NDVICurrent)
	assert.InDelta(t, 0.285, rec.NDVIForecast, 1e-9)
	assert.Equal(t, 20.0, rec.LSTMeanC)
	assert.Equal(t, 15.0, rec.LSTMinC)
	assert.Equal(t, 25.0, rec.LSTMaxC)
	assert.Equal(t, 200.0, rec.PrecipitationAnnualMm)

	assert.Equal(t, 1.0, rec.RegionSuitable)
	assert.Equal(t, 1.0, rec.SeasonSuitable)
	// lst_min of 15 is above the frost threshold for cotton.
	assert.Equal(t, 0.0, rec.FrostRisk)
}

func TestGenerateObservedMeasurements(t *testing.T) {
	gen := NewGenerator(nil, nil)
	snap := satellite.Snapshot{
		Region:                "Khorezm",
		District:              "Urganch",
		NDVIMean:              floatPtr(0.55),
		LSTMeanC:              floatPtr(28),
		LSTMinC:               floatPtr(12),
		LSTMaxC:               floatPtr(39),
		PrecipitationAnnualMm: floatPtr(120),
	}

	rec, err := gen.Generate(context.Background(), snap, "rice", 7)
	require.NoError(t, err)

	assert.Equal(t, 0.55, rec.NDVIMean)
	assert.Equal(t, 28.0, rec.LSTMeanC)
	assert.Equal(t, 12.0, rec.LSTMinC)
	assert.Equal(t, 120.0, rec.PrecipitationAnnualMm)
	assert.InDelta(t, 0.6, rec.NDVIMax, 1e-9)
	assert.InDelta(t, 0.5, rec.NDVIMin, 1e-9)
}

func TestGenerateWeatherProvider(t *testing.T) {
	summary := weather.Summary{
		HistTempMean7d:      22.5,
		CurrentTempMean:     24.0,
		CurrentPrecip:       3.2,
		CurrentSoilMoisture: 0.41,
		ForecastTemp14d:     26.0,
		ForecastPrecip14d:   1.1,
	}
	gen := NewGenerator(stubProvider{summary: summary}, nil)

	rec, err := gen.Generate(context.Background(), satellite.Snapshot{Region: "Fergana"}, "wheat", 4)
	require.NoError(t, err)

	assert.Equal(t, 22.5, rec.HistTempMean)
	assert.Equal(t, 24.0, rec.CurrentTempMean)
	assert.Equal(t, 3.2, rec.CurrentPrecip)
	assert.Equal(t, 0.41, rec.CurrentSoilMoisture)
	assert.Equal(t, 26.0, rec.ForecastTemp14d)
	assert.Equal(t, 1.1, rec.ForecastPrecip14d)
}

func TestGenerateWeatherFailureUsesProxies(t *testing.T) {
	gen := NewGenerator(stubProvider{err: errors.New("upstream down")}, nil)
	snap := satellite.Snapshot{
		Region:                "Bukhara",
		LSTMeanC:              floatPtr(30),
		PrecipitationAnnualMm: floatPtr(365),
	}

	rec, err := gen.Generate(context.Background(), snap, "melon", 6)
	require.NoError(t, err)

	assert.Equal(t, 30.0, rec.HistTempMean)
	assert.Equal(t, 30.0, rec.CurrentTempMean)
	assert.Equal(t, 30.0, rec.ForecastTemp14d)
	assert.InDelta(t, 30.0, rec.CurrentPrecip, 1e-9)
	assert.InDelta(t, 14.0, rec.ForecastPrecip14d, 1e-9)
}

func TestGenerateInvalidMonthDefaultsToCurrent(t *testing.T) {
	gen := NewGenerator(nil, nil)

	rec, err := gen.Generate(context.Background(), satellite.Snapshot{Region: "Fergana"}, "wheat", 0)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, rec.Month, 1)
	assert.LessOrEqual(t, rec.Month, 12)
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{Region: "Fergana", Crop: "wheat", Latitude: 40.0, Month: 5, FrostRisk: 1}

	v, ok := rec.Numeric("latitude")
	assert.True(t, ok)
	assert.Equal(t, 40.0, v)

	v, ok = rec.Numeric("month")
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	v, ok = rec.Numeric("frost_risk")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = rec.Numeric("no_such_column")
	assert.False(t, ok)

	s, ok := rec.Categorical("region")
	assert.True(t, ok)
	assert.Equal(t, "Fergana", s)

	_, ok = rec.Categorical("latitude")
	assert.False(t, ok)
}

func TestCanonicalOrderEndsWithEncodedColumns(t *testing.T) {
	require.GreaterOrEqual(t, len(CanonicalOrder), len(CategoricalColumns))

	tail := CanonicalOrder[len(CanonicalOrder)-len(CategoricalColumns):]
	for i, col := range CategoricalColumns {
		assert.Equal(t, col+"_encoded", tail[i])
	}
}

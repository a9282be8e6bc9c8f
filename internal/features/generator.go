// Package features turns a satellite snapshot, a crop and a month into the
// fixed-schema record the risk scorer consumes. All clamps and piecewise
// formulas here are model contract, not implementation detail: they bound
// the feature space the trained scorer expects.
package features

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/crops"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/satellite"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/weather"
)

// ErrUnknownCrop is returned when the requested crop is not in the catalog.
var ErrUnknownCrop = errors.New("unknown crop")

// climateZones maps regions to the 8 named climate zones the model was
// trained with. Regions outside the table get the "other" zone.
var climateZones = map[string][]string{
	"tashkent":       {"Tashkent City", "Tashkent Region"},
	"fergana":        {"Fergana", "Andijan", "Namangan"},
	"bukhara":        {"Bukhara", "Navoiy"},
	"karakalpakstan": {"Karakalpakstan"},
	"samarkand":      {"Samarkand", "Jizzakh"},
	"south":          {"Kashkadarya", "Surkhandarya"},
	"khorezm":        {"Khorezm"},
	"sirdaryo":       {"Sirdaryo"},
}

// ClimateZone classifies a region into its climate zone.
func ClimateZone(region string) string {
	for zone, members := range climateZones {
		for _, r := range members {
			if r == region {
				return zone
			}
		}
	}
	return "other"
}

// RiskFlags computes the frost and drought flags for a crop. Frost risk
// fires when the minimum land surface temperature drops more than 5°C below
// the crop's optimal minimum. Drought risk requires water stress AND heat
// stress together; low precipitation alone is not drought.
func RiskFlags(crop crops.Profile, lstMin, precip, tempMean float64) (frost, drought float64) {
	if lstMin < crop.OptimalTempMinC-5 {
		frost = 1
	}
	waterStress := precip < crop.WaterNeedMm*0.6
	heatStress := tempMean > crop.OptimalTempMaxC
	if waterStress && heatStress {
		drought = 1
	}
	return frost, drought
}

// TempMatch scores how well a mean temperature fits the crop's optimal
// range, 1 at the midpoint falling off linearly, clamped to [0, 1].
func TempMatch(crop crops.Profile, lstMean float64) float64 {
	mid := (crop.OptimalTempMinC + crop.OptimalTempMaxC) / 2
	span := math.Max(1, crop.OptimalTempMaxC-crop.OptimalTempMinC)
	return clamp(1-math.Abs(lstMean-mid)/(span/2+5), 0, 1)
}

// WaterMatch scores annual precipitation against the crop's water need.
// Values above 1 represent surplus water, capped at 150%.
func WaterMatch(crop crops.Profile, precip float64) float64 {
	return clamp(precip/math.Max(1, crop.WaterNeedMm), 0, 1.5)
}

// NDVIScore scores observed vegetation against the crop's healthy minimum,
// clamped to [0, 2].
func NDVIScore(crop crops.Profile, ndviMean float64) float64 {
	return clamp(ndviMean/math.Max(0.1, crop.NDVIHealthyMin), 0, 2)
}

// EstimateSoilMoisture derives a soil moisture estimate from precipitation,
// temperature and vegetation. 500mm of precipitation saturates the base
// term; heat above 15°C dries the soil; vegetation retains moisture. The
// result is always within [0.1, 0.9].
func EstimateSoilMoisture(precipMm, tempMeanC, ndviMean float64) float64 {
	precipFactor := math.Min(precipMm/500, 1.0)
	tempPenalty := math.Max(0, (tempMeanC-15)/40)
	ndviBoost := ndviMean * 0.5

	base := 0.3 + precipFactor*0.4
	adjusted := base * (1 - tempPenalty*0.3) * (1 + ndviBoost)
	return clamp(adjusted, 0.1, 0.9)
}

// Generator builds feature records. It owns the weather provider and the
// degradation policy when that provider is unavailable.
type Generator struct {
	weather weather.Provider
	log     *zap.Logger
}

// NewGenerator builds a Generator. The weather provider may be nil, in
// which case every record uses snapshot-derived weather proxies.
func NewGenerator(wx weather.Provider, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{weather: wx, log: log}
}

// Generate produces the complete feature record for a snapshot, crop and
// month. Month 0 means the current month. The only failure mode is an
// unknown crop; weather and satellite gaps degrade to documented defaults.
func (g *Generator) Generate(ctx context.Context, snap satellite.Snapshot, cropName string, month int) (Record, error) {
	crop, ok := crops.Info(cropName)
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownCrop, cropName)
	}
	if month <= 0 || month > 12 {
		month = int(time.Now().Month())
	}

	// Satellite measurements with the documented defaults for absent values.
	ndviMean := deref(snap.NDVIMean, satellite.DefaultNDVIMean)
	ndviMax := deref(snap.NDVIMax, ndviMean+0.05)
	ndviMin := deref(snap.NDVIMin, math.Max(0, ndviMean-0.05))
	ndviStd := deref(snap.NDVIStd, 0.05)
	lstMean := deref(snap.LSTMeanC, satellite.DefaultLSTMeanC)
	lstMin := deref(snap.LSTMinC, lstMean-5)
	lstMax := deref(snap.LSTMaxC, lstMean+5)
	precipAnnual := deref(snap.PrecipitationAnnualMm, satellite.DefaultPrecipAnnualMm)

	frost, drought := RiskFlags(crop, lstMin, precipAnnual, lstMean)
	soilMoisture := EstimateSoilMoisture(precipAnnual, lstMean, ndviMean)

	rec := Record{
		Region:      snap.Region,
		District:    snap.District,
		Latitude:    snap.Latitude,
		Longitude:   snap.Longitude,
		ClimateZone: ClimateZone(snap.Region),
		Month:       month,

		HistPrecipAnnual: precipAnnual,
		HistSoilMoisture: soilMoisture,

		FrostRisk:   frost,
		DroughtRisk: drought,

		NDVICurrent:  ndviMean,
		NDVIForecast: ndviMean * 0.95,
		NDVIMean:     ndviMean,
		NDVIMax:      ndviMax,
		NDVIMin:      ndviMin,
		NDVIStd:      ndviStd,

		Crop:            crop.Name,
		CropCategory:    crop.Category,
		CropTempMin:     crop.OptimalTempMinC,
		CropTempMax:     crop.OptimalTempMaxC,
		CropWaterNeed:   crop.WaterNeedMm,
		CropMoistureMin: crop.SoilMoistureMin,
		CropNDVIMin:     crop.NDVIHealthyMin,
		CropDroughtSens: crops.DroughtScore(crop.DroughtSens),
		CropFrostSens:   crops.FrostScore(crop.FrostSens),

		RegionSuitable: boolFlag(crop.SuitableIn(snap.Region)),
		SeasonSuitable: boolFlag(crop.InSeason(month)),
		TempMatch:      TempMatch(crop, lstMean),
		WaterMatch:     WaterMatch(crop, precipAnnual),
		NDVIScore:      NDVIScore(crop, ndviMean),

		LSTMeanC:              lstMean,
		LSTMaxC:               lstMax,
		LSTMinC:               lstMin,
		PrecipitationAnnualMm: precipAnnual,
	}

	g.applyWeather(ctx, &rec, lstMean, precipAnnual, soilMoisture)
	return rec, nil
}

// applyWeather fills the live-weather fields, degrading to snapshot-derived
// proxies when the provider is absent or failing. A weather outage never
// surfaces as a request failure.
func (g *Generator) applyWeather(ctx context.Context, rec *Record, lstMean, precipAnnual, soilMoisture float64) {
	if g.weather != nil {
		summary, err := g.weather.Fetch(ctx, rec.Latitude, rec.Longitude)
		if err == nil {
			rec.HistTempMean = summary.HistTempMean7d
			rec.CurrentTempMean = summary.CurrentTempMean
			rec.CurrentPrecip = summary.CurrentPrecip
			rec.CurrentSoilMoisture = summary.CurrentSoilMoisture
			rec.ForecastTemp14d = summary.ForecastTemp14d
			rec.ForecastPrecip14d = summary.ForecastPrecip14d
			return
		}
		g.log.Warn("weather fetch failed, using snapshot proxies",
			zap.Float64("lat", rec.Latitude),
			zap.Float64("lon", rec.Longitude),
			zap.Error(err))
	}

	rec.HistTempMean = lstMean
	rec.CurrentTempMean = lstMean
	rec.CurrentPrecip = precipAnnual / 365 * 30
	rec.CurrentSoilMoisture = soilMoisture
	rec.ForecastTemp14d = lstMean
	rec.ForecastPrecip14d = precipAnnual / 365 * 14
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func deref(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func boolFlag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Package crops is the agronomic reference catalog: per-crop growing
// requirements matched against satellite data, weather and seasonal timing.
// Parameters follow FAO guidance and local agricultural practice and are
// immutable at runtime.
package crops

import "strings"

// Sensitivity is an ordinal tolerance tier mapped to a numeric score
// consumed by the risk model.
type Sensitivity string

const (
	SensitivityVeryLow  Sensitivity = "very_low"
	SensitivityLow      Sensitivity = "low"
	SensitivityMedium   Sensitivity = "medium"
	SensitivityHigh     Sensitivity = "high"
	SensitivityVeryHigh Sensitivity = "very_high"
)

// droughtScores and frostScores translate sensitivity tiers to the numeric
// values the model was trained on. Unknown tiers fall back to 0.5.
var droughtScores = map[Sensitivity]float64{
	SensitivityVeryLow:  0.1,
	SensitivityLow:      0.3,
	SensitivityMedium:   0.5,
	SensitivityHigh:     0.7,
	SensitivityVeryHigh: 0.9,
}

var frostScores = map[Sensitivity]float64{
	SensitivityLow:    0.2,
	SensitivityMedium: 0.5,
	SensitivityHigh:   0.8,
}

// DroughtScore returns the numeric drought-sensitivity score for a tier.
func DroughtScore(s Sensitivity) float64 {
	if v, ok := droughtScores[s]; ok {
		return v
	}
	return 0.5
}

// FrostScore returns the numeric frost-sensitivity score for a tier.
func FrostScore(s Sensitivity) float64 {
	if v, ok := frostScores[s]; ok {
		return v
	}
	return 0.5
}

// RegionAll is the suitable-regions sentinel meaning a crop grows anywhere
// in the country.
const RegionAll = "all"

// Profile describes one crop's growing requirements.
type Profile struct {
	Name              string      `json:"name"`
	NameUz            string      `json:"name_uz"`
	Category          string      `json:"category"`
	OptimalTempMinC   float64     `json:"optimal_temp_min"`
	OptimalTempMaxC   float64     `json:"optimal_temp_max"`
	CriticalTempMinC  float64     `json:"critical_temp_min"`
	CriticalTempMaxC  float64     `json:"critical_temp_max"`
	WaterNeedMm       float64     `json:"water_need_mm"`
	SeasonStartMonth  int         `json:"growing_season_start"`
	SeasonEndMonth    int         `json:"growing_season_end"`
	GrowingDays       int         `json:"growing_days"`
	SoilMoistureMin   float64     `json:"soil_moisture_min"`
	SoilMoistureOpt   float64     `json:"soil_moisture_optimal"`
	NDVIHealthyMin    float64     `json:"ndvi_healthy_min"`
	DroughtSens       Sensitivity `json:"drought_sensitivity"`
	FrostSens         Sensitivity `json:"frost_sensitivity"`
	SuitableRegions   []string    `json:"suitable_regions"`
}

// SuitableIn reports whether the crop is suited to a region, honoring the
// "all" sentinel.
func (p Profile) SuitableIn(region string) bool {
	for _, r := range p.SuitableRegions {
		if r == RegionAll || r == region {
			return true
		}
	}
	return false
}

// InSeason reports whether a month (1-12) falls inside the growing season.
// Seasons with start > end wrap the calendar year: October-June means months
// >= October or <= June.
func (p Profile) InSeason(month int) bool {
	if p.SeasonStartMonth <= p.SeasonEndMonth {
		return month >= p.SeasonStartMonth && month <= p.SeasonEndMonth
	}
	return month >= p.SeasonStartMonth || month <= p.SeasonEndMonth
}

var catalog = []Profile{
	{
		Name: "cotton", NameUz: "Paxta", Category: "industrial",
		OptimalTempMinC: 20, OptimalTempMaxC: 35, CriticalTempMinC: 15, CriticalTempMaxC: 40,
		WaterNeedMm: 700, SeasonStartMonth: 4, SeasonEndMonth: 10, GrowingDays: 150,
		SoilMoistureMin: 0.3, SoilMoistureOpt: 0.5, NDVIHealthyMin: 0.4,
		DroughtSens: SensitivityMedium, FrostSens: SensitivityHigh,
		SuitableRegions: []string{"Tashkent Region", "Fergana", "Andijan", "Namangan", "Sirdaryo", "Jizzakh", "Kashkadarya", "Surkhandarya", "Bukhara", "Khorezm"},
	},
	{
		Name: "wheat", NameUz: "Bug'doy", Category: "grain",
		OptimalTempMinC: 12, OptimalTempMaxC: 25, CriticalTempMinC: -5, CriticalTempMaxC: 35,
		WaterNeedMm: 450, SeasonStartMonth: 10, SeasonEndMonth: 6, GrowingDays: 240,
		SoilMoistureMin: 0.25, SoilMoistureOpt: 0.4, NDVIHealthyMin: 0.35,
		DroughtSens: SensitivityLow, FrostSens: SensitivityLow,
		SuitableRegions: []string{RegionAll},
	},
	{
		Name: "rice", NameUz: "Sholi", Category: "grain",
		OptimalTempMinC: 22, OptimalTempMaxC: 32, CriticalTempMinC: 15, CriticalTempMaxC: 38,
		WaterNeedMm: 1200, SeasonStartMonth: 5, SeasonEndMonth: 9, GrowingDays: 120,
		SoilMoistureMin: 0.6, SoilMoistureOpt: 0.8, NDVIHealthyMin: 0.45,
		DroughtSens: SensitivityVeryHigh, FrostSens: SensitivityHigh,
		SuitableRegions: []string{"Tashkent Region", "Fergana", "Khorezm", "Karakalpakstan"},
	},
	{
		Name: "corn", NameUz: "Makkajo'xori", Category: "grain",
		OptimalTempMinC: 18, OptimalTempMaxC: 30, CriticalTempMinC: 10, CriticalTempMaxC: 38,
		WaterNeedMm: 500, SeasonStartMonth: 4, SeasonEndMonth: 9, GrowingDays: 100,
		SoilMoistureMin: 0.35, SoilMoistureOpt: 0.5, NDVIHealthyMin: 0.4,
		DroughtSens: SensitivityMedium, FrostSens: SensitivityHigh,
		SuitableRegions: []string{RegionAll},
	},
	{
		Name: "tomato", NameUz: "Pomidor", Category: "vegetable",
		OptimalTempMinC: 18, OptimalTempMaxC: 27, CriticalTempMinC: 10, CriticalTempMaxC: 35,
		WaterNeedMm: 600, SeasonStartMonth: 4, SeasonEndMonth: 9, GrowingDays: 90,
		SoilMoistureMin: 0.4, SoilMoistureOpt: 0.6, NDVIHealthyMin: 0.35,
		DroughtSens: SensitivityHigh, FrostSens: SensitivityHigh,
		SuitableRegions: []string{"Tashkent Region", "Samarkand", "Fergana", "Surkhandarya"},
	},
	{
		Name: "melon", NameUz: "Qovun", Category: "fruit",
		OptimalTempMinC: 24, OptimalTempMaxC: 35, CriticalTempMinC: 15, CriticalTempMaxC: 42,
		WaterNeedMm: 400, SeasonStartMonth: 5, SeasonEndMonth: 9, GrowingDays: 85,
		SoilMoistureMin: 0.25, SoilMoistureOpt: 0.4, NDVIHealthyMin: 0.3,
		DroughtSens: SensitivityLow, FrostSens: SensitivityHigh,
		SuitableRegions: []string{"Bukhara", "Samarkand", "Khorezm", "Kashkadarya", "Surkhandarya", "Navoiy"},
	},
	{
		Name: "watermelon", NameUz: "Tarvuz", Category: "fruit",
		OptimalTempMinC: 24, OptimalTempMaxC: 35, CriticalTempMinC: 15, CriticalTempMaxC: 40,
		WaterNeedMm: 450, SeasonStartMonth: 5, SeasonEndMonth: 9, GrowingDays: 80,
		SoilMoistureMin: 0.25, SoilMoistureOpt: 0.4, NDVIHealthyMin: 0.3,
		DroughtSens: SensitivityLow, FrostSens: SensitivityHigh,
		SuitableRegions: []string{RegionAll},
	},
	{
		Name: "grape", NameUz: "Uzum", Category: "fruit",
		OptimalTempMinC: 15, OptimalTempMaxC: 30, CriticalTempMinC: -15, CriticalTempMaxC: 38,
		WaterNeedMm: 500, SeasonStartMonth: 4, SeasonEndMonth: 10, GrowingDays: 150,
		SoilMoistureMin: 0.3, SoilMoistureOpt: 0.45, NDVIHealthyMin: 0.35,
		DroughtSens: SensitivityMedium, FrostSens: SensitivityMedium,
		SuitableRegions: []string{"Samarkand", "Bukhara", "Tashkent Region", "Fergana", "Surkhandarya"},
	},
	{
		Name: "apple", NameUz: "Olma", Category: "fruit",
		OptimalTempMinC: 10, OptimalTempMaxC: 25, CriticalTempMinC: -25, CriticalTempMaxC: 35,
		WaterNeedMm: 600, SeasonStartMonth: 3, SeasonEndMonth: 10, GrowingDays: 180,
		SoilMoistureMin: 0.35, SoilMoistureOpt: 0.5, NDVIHealthyMin: 0.4,
		DroughtSens: SensitivityMedium, FrostSens: SensitivityLow,
		SuitableRegions: []string{"Tashkent Region", "Samarkand", "Fergana", "Namangan"},
	},
	{
		Name: "potato", NameUz: "Kartoshka", Category: "vegetable",
		OptimalTempMinC: 15, OptimalTempMaxC: 22, CriticalTempMinC: 5, CriticalTempMaxC: 30,
		WaterNeedMm: 500, SeasonStartMonth: 3, SeasonEndMonth: 9, GrowingDays: 100,
		SoilMoistureMin: 0.4, SoilMoistureOpt: 0.6, NDVIHealthyMin: 0.35,
		DroughtSens: SensitivityHigh, FrostSens: SensitivityMedium,
		SuitableRegions: []string{"Tashkent Region", "Samarkand", "Jizzakh", "Fergana"},
	},
	{
		Name: "onion", NameUz: "Piyoz", Category: "vegetable",
		OptimalTempMinC: 12, OptimalTempMaxC: 25, CriticalTempMinC: -5, CriticalTempMaxC: 35,
		WaterNeedMm: 350, SeasonStartMonth: 3, SeasonEndMonth: 8, GrowingDays: 120,
		SoilMoistureMin: 0.3, SoilMoistureOpt: 0.5, NDVIHealthyMin: 0.3,
		DroughtSens: SensitivityMedium, FrostSens: SensitivityLow,
		SuitableRegions: []string{RegionAll},
	},
	{
		Name: "carrot", NameUz: "Sabzi", Category: "vegetable",
		OptimalTempMinC: 15, OptimalTempMaxC: 22, CriticalTempMinC: 5, CriticalTempMaxC: 30,
		WaterNeedMm: 400, SeasonStartMonth: 3, SeasonEndMonth: 10, GrowingDays: 90,
		SoilMoistureMin: 0.35, SoilMoistureOpt: 0.55, NDVIHealthyMin: 0.3,
		DroughtSens: SensitivityMedium, FrostSens: SensitivityLow,
		SuitableRegions: []string{RegionAll},
	},
	{
		Name: "alfalfa", NameUz: "Beda", Category: "fodder",
		OptimalTempMinC: 15, OptimalTempMaxC: 30, CriticalTempMinC: -10, CriticalTempMaxC: 38,
		WaterNeedMm: 800, SeasonStartMonth: 3, SeasonEndMonth: 10, GrowingDays: 200,
		SoilMoistureMin: 0.3, SoilMoistureOpt: 0.5, NDVIHealthyMin: 0.4,
		DroughtSens: SensitivityLow, FrostSens: SensitivityLow,
		SuitableRegions: []string{RegionAll},
	},
	{
		Name: "chickpea", NameUz: "No'xat", Category: "legume",
		OptimalTempMinC: 15, OptimalTempMaxC: 28, CriticalTempMinC: 5, CriticalTempMaxC: 35,
		WaterNeedMm: 300, SeasonStartMonth: 3, SeasonEndMonth: 7, GrowingDays: 100,
		SoilMoistureMin: 0.2, SoilMoistureOpt: 0.35, NDVIHealthyMin: 0.25,
		DroughtSens: SensitivityVeryLow, FrostSens: SensitivityMedium,
		SuitableRegions: []string{"Kashkadarya", "Surkhandarya", "Jizzakh", "Samarkand"},
	},
	{
		Name: "sunflower", NameUz: "Kungaboqar", Category: "industrial",
		OptimalTempMinC: 18, OptimalTempMaxC: 30, CriticalTempMinC: 5, CriticalTempMaxC: 38,
		WaterNeedMm: 450, SeasonStartMonth: 4, SeasonEndMonth: 9, GrowingDays: 110,
		SoilMoistureMin: 0.25, SoilMoistureOpt: 0.4, NDVIHealthyMin: 0.35,
		DroughtSens: SensitivityLow, FrostSens: SensitivityHigh,
		SuitableRegions: []string{"Tashkent Region", "Jizzakh", "Sirdaryo", "Samarkand"},
	},
}

var catalogIndex = buildIndex()

func buildIndex() map[string]*Profile {
	idx := make(map[string]*Profile, len(catalog))
	for i := range catalog {
		idx[catalog[i].Name] = &catalog[i]
	}
	return idx
}

// All returns every crop profile in catalog order. The order is stable and
// doubles as the tie-break order for recommendations.
func All() []Profile {
	out := make([]Profile, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the crop names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, p := range catalog {
		names[i] = p.Name
	}
	return names
}

// Info looks up a crop by name (case-insensitive). The second return value
// reports whether the crop exists.
func Info(name string) (Profile, bool) {
	p, ok := catalogIndex[strings.ToLower(name)]
	if !ok {
		return Profile{}, false
	}
	return *p, true
}

// SuitableForRegion returns the names of all crops suited to a region.
func SuitableForRegion(region string) []string {
	var out []string
	for _, p := range catalog {
		if p.SuitableIn(region) {
			out = append(out, p.Name)
		}
	}
	return out
}

// ByCategory returns crop names belonging to a category, in catalog order.
func ByCategory(category string) []string {
	var out []string
	for _, p := range catalog {
		if p.Category == category {
			out = append(out, p.Name)
		}
	}
	return out
}

package features

// Record is the fixed-schema feature vector produced by the generator and
// the only input type the risk scorer accepts. Field set and meaning must
// stay stable across training and inference; the scorer treats a missing
// numeric column as a schema violation rather than defaulting it.
type Record struct {
	// Geospatial
	Region      string  `json:"region"`
	District    string  `json:"district"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ClimateZone string  `json:"climate_zone"`
	Month       int     `json:"month"`

	// Historical climate
	HistTempMean     float64 `json:"hist_temp_mean"`
	HistPrecipAnnual float64 `json:"hist_precip_annual"`
	HistSoilMoisture float64 `json:"hist_soil_moisture"`

	// Current conditions
	CurrentTempMean     float64 `json:"current_temp_mean"`
	CurrentPrecip       float64 `json:"current_precip"`
	CurrentSoilMoisture float64 `json:"current_soil_moisture"`

	// Forecast
	ForecastTemp14d   float64 `json:"forecast_temp_14d"`
	ForecastPrecip14d float64 `json:"forecast_precip_14d"`

	// Risk flags (0 or 1)
	FrostRisk   float64 `json:"frost_risk"`
	DroughtRisk float64 `json:"drought_risk"`

	// Vegetation
	NDVICurrent  float64 `json:"ndvi_current"`
	NDVIForecast float64 `json:"ndvi_forecast"`
	NDVIMean     float64 `json:"ndvi_mean"`
	NDVIMax      float64 `json:"ndvi_max"`
	NDVIMin      float64 `json:"ndvi_min"`
	NDVIStd      float64 `json:"ndvi_std"`

	// Crop statics
	Crop            string  `json:"crop"`
	CropCategory    string  `json:"crop_category"`
	CropTempMin     float64 `json:"crop_temp_min"`
	CropTempMax     float64 `json:"crop_temp_max"`
	CropWaterNeed   float64 `json:"crop_water_need"`
	CropMoistureMin float64 `json:"crop_moisture_min"`
	CropNDVIMin     float64 `json:"crop_ndvi_min"`
	CropDroughtSens float64 `json:"crop_drought_sens"`
	CropFrostSens   float64 `json:"crop_frost_sens"`

	// Derived suitability
	RegionSuitable float64 `json:"region_suitable"`
	SeasonSuitable float64 `json:"season_suitable"`
	TempMatch      float64 `json:"temp_match"`
	WaterMatch     float64 `json:"water_match"`
	NDVIScore      float64 `json:"ndvi_score"`

	// Raw climate fields kept for model artifacts trained on them
	LSTMeanC              float64 `json:"lst_mean_c"`
	LSTMaxC               float64 `json:"lst_max_c"`
	LSTMinC               float64 `json:"lst_min_c"`
	PrecipitationAnnualMm float64 `json:"precipitation_annual_mm"`
}

// CategoricalColumns lists the columns that go through label encoding, in
// the order the trainer fits its encoders.
var CategoricalColumns = []string{"region", "district", "crop", "crop_category", "climate_zone"}

// CanonicalOrder is the feature column order used at training time. It is
// the fallback when a persisted artifact carries no feature-name metadata.
var CanonicalOrder = []string{
	"latitude", "longitude", "month",
	"hist_temp_mean", "hist_precip_annual", "hist_soil_moisture",
	"current_temp_mean", "current_precip", "current_soil_moisture",
	"forecast_temp_14d", "forecast_precip_14d",
	"frost_risk", "drought_risk",
	"ndvi_current", "ndvi_forecast",
	"crop_temp_min", "crop_temp_max", "crop_water_need",
	"crop_moisture_min", "crop_drought_sens", "crop_frost_sens",
	"region_suitable", "season_suitable",
	"region_encoded", "district_encoded", "crop_encoded",
	"crop_category_encoded", "climate_zone_encoded",
}

// Numeric returns the named numeric feature. The second return value is
// false for unknown or categorical column names.
func (r *Record) Numeric(name string) (float64, bool) {
	switch name {
	case "latitude":
		return r.Latitude, true
	case "longitude":
		return r.Longitude, true
	case "month":
		return float64(r.Month), true
	case "hist_temp_mean":
		return r.HistTempMean, true
	case "hist_precip_annual":
		return r.HistPrecipAnnual, true
	case "hist_soil_moisture":
		return r.HistSoilMoisture, true
	case "current_temp_mean":
		return r.CurrentTempMean, true
	case "current_precip":
		return r.CurrentPrecip, true
	case "current_soil_moisture":
		return r.CurrentSoilMoisture, true
	case "forecast_temp_14d":
		return r.ForecastTemp14d, true
	case "forecast_precip_14d":
		return r.ForecastPrecip14d, true
	case "frost_risk":
		return r.FrostRisk, true
	case "drought_risk":
		return r.DroughtRisk, true
	case "ndvi_current":
		return r.NDVICurrent, true
	case "ndvi_forecast":
		return r.NDVIForecast, true
	case "ndvi_mean":
		return r.NDVIMean, true
	case "ndvi_max":
		return r.NDVIMax, true
	case "ndvi_min":
		return r.NDVIMin, true
	case "ndvi_std":
		return r.NDVIStd, true
	case "crop_temp_min":
		return r.CropTempMin, true
	case "crop_temp_max":
		return r.CropTempMax, true
	case "crop_water_need":
		return r.CropWaterNeed, true
	case "crop_moisture_min":
		return r.CropMoistureMin, true
	case "crop_ndvi_min":
		return r.CropNDVIMin, true
	case "crop_drought_sens":
		return r.CropDroughtSens, true
	case "crop_frost_sens":
		return r.CropFrostSens, true
	case "region_suitable":
		return r.RegionSuitable, true
	case "season_suitable":
		return r.SeasonSuitable, true
	case "temp_match":
		return r.TempMatch, true
	case "water_match":
		return r.WaterMatch, true
	case "ndvi_score":
		return r.NDVIScore, true
	case "lst_mean_c":
		return r.LSTMeanC, true
	case "lst_max_c":
		return r.LSTMaxC, true
	case "lst_min_c":
		return r.LSTMinC, true
	case "precipitation_annual_mm":
		return r.PrecipitationAnnualMm, true
	}
	return 0, false
}

// Categorical returns the named categorical feature. The second return
// value is false for unknown column names.
func (r *Record) Categorical(name string) (string, bool) {
	switch name {
	case "region":
		return r.Region, true
	case "district":
		return r.District, true
	case "crop":
		return r.Crop, true
	case "crop_category":
		return r.CropCategory, true
	case "climate_zone":
		return r.ClimateZone, true
	}
	return "", false
}

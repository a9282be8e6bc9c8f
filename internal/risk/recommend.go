package risk

import (
	"sort"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/crops"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
)

const maxRecommendations = 5

// Recommendation is one alternative crop with its predicted risk for the
// same location snapshot.
type Recommendation struct {
	Crop         string   `json:"crop"`
	CropUz       string   `json:"crop_uz"`
	Category     string   `json:"category"`
	RiskScore    float64  `json:"risk_score"`
	RiskCategory Category `json:"risk_category"`
}

// RescoreForCrop rebuilds a feature record for a candidate crop, holding
// geospatial, weather and NDVI-observation fields fixed and recomputing
// every crop-dependent field. It is a pure function; the recommendation
// loop composes it with the scorer once per candidate.
func RescoreForCrop(base features.Record, crop crops.Profile) features.Record {
	rec := base

	rec.Crop = crop.Name
	rec.CropCategory = crop.Category
	rec.CropTempMin = crop.OptimalTempMinC
	rec.CropTempMax = crop.OptimalTempMaxC
	rec.CropWaterNeed = crop.WaterNeedMm
	rec.CropMoistureMin = crop.SoilMoistureMin
	rec.CropNDVIMin = crop.NDVIHealthyMin
	rec.CropDroughtSens = crops.DroughtScore(crop.DroughtSens)
	rec.CropFrostSens = crops.FrostScore(crop.FrostSens)

	if crop.SuitableIn(base.Region) {
		rec.RegionSuitable = 1
	} else {
		rec.RegionSuitable = 0
	}
	if crop.InSeason(base.Month) {
		rec.SeasonSuitable = 1
	} else {
		rec.SeasonSuitable = 0
	}

	rec.TempMatch = features.TempMatch(crop, base.LSTMeanC)
	rec.WaterMatch = features.WaterMatch(crop, base.PrecipitationAnnualMm)
	rec.NDVIScore = features.NDVIScore(crop, base.NDVIMean)
	rec.FrostRisk, rec.DroughtRisk = features.RiskFlags(crop, base.LSTMinC, base.PrecipitationAnnualMm, base.LSTMeanC)

	return rec
}

// Recommend scores every catalog crop except the current one against the
// base record's location and returns the best five, sorted by descending
// score with catalog order breaking ties. The search is exhaustive; the
// catalog is small and each re-score is O(1).
func (s *Scorer) Recommend(base features.Record, currentCrop string) ([]Recommendation, error) {
	var recs []Recommendation
	for _, crop := range crops.All() {
		if crop.Name == currentCrop {
			continue
		}

		pred, err := s.PredictOne(RescoreForCrop(base, crop))
		if err != nil {
			return nil, err
		}

		recs = append(recs, Recommendation{
			Crop:         crop.Name,
			CropUz:       crop.NameUz,
			Category:     crop.Category,
			RiskScore:    pred.RiskScore,
			RiskCategory: pred.RiskCategory,
		})
	}

	sort.SliceStable(recs, func(a, b int) bool {
		return recs[a].RiskScore > recs[b].RiskScore
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs, nil
}

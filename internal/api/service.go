package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/crops"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/geo"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/loans"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/risk"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/satellite"
)

// ErrLocationNotFound marks an unknown region or district.
var ErrLocationNotFound = errors.New("location not found")

const responseRecommendations = 3

// CurrentConditions summarizes live weather for the response payload.
type CurrentConditions struct {
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	NDVI          float64 `json:"ndvi"`
}

// Forecast summarizes the outlook window for the response payload.
type Forecast struct {
	Temp14d     float64 `json:"temp_14d"`
	Precip14d   float64 `json:"precip_14d"`
	FrostRisk   bool    `json:"frost_risk"`
	DroughtRisk bool    `json:"drought_risk"`
}

// LocationInfo describes where the assessment was made.
type LocationInfo struct {
	Region            string            `json:"region"`
	District          string            `json:"district"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	ClimateZone       string            `json:"climate_zone"`
	CurrentConditions CurrentConditions `json:"current_conditions"`
	Forecast          Forecast          `json:"forecast"`
}

// CropInfo describes the assessed crop.
type CropInfo struct {
	Name             string `json:"name"`
	NameUz           string `json:"name_uz"`
	Category         string `json:"category"`
	OptimalTempRange string `json:"optimal_temp_range"`
	WaterNeed        string `json:"water_need"`
	RegionSuitable   bool   `json:"region_suitable"`
	SeasonSuitable   bool   `json:"season_suitable"`
}

// PredictResponse is the full assessment payload.
type PredictResponse struct {
	AssessmentID    uint                  `json:"assessment_id,omitempty"`
	RiskScore       float64               `json:"risk_score"`
	RiskCategory    risk.Category         `json:"risk_category"`
	Confidence      string                `json:"confidence"`
	TopFactors      []risk.Factor         `json:"top_factors"`
	Recommendations []risk.Recommendation `json:"recommendations"`
	LocationInfo    LocationInfo          `json:"location_info"`
	CropInfo        CropInfo              `json:"crop_info"`
}

// DistrictScore is one row of a batch prediction.
type DistrictScore struct {
	District     string        `json:"district"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	RiskScore    float64       `json:"risk_score"`
	RiskCategory risk.Category `json:"risk_category"`
}

// AssessmentService runs the prediction pipeline end to end: location
// lookup, satellite snapshot, feature generation, scoring, crop
// recommendation and persistence of the assessment.
type AssessmentService struct {
	source satellite.Source
	gen    *features.Generator
	scorer *risk.Scorer
	loans  *loans.Service
	log    *zap.Logger
}

// NewAssessmentService wires the pipeline. The scorer may be nil when no
// model artifact could be loaded; predictions then fail with
// risk.ErrModelUnavailable while reference endpoints stay available. The
// loans service may be nil to disable persistence.
func NewAssessmentService(source satellite.Source, gen *features.Generator, scorer *risk.Scorer, loanSvc *loans.Service, log *zap.Logger) *AssessmentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssessmentService{source: source, gen: gen, scorer: scorer, loans: loanSvc, log: log}
}

// ModelLoaded reports whether a scoring model is available.
func (s *AssessmentService) ModelLoaded() bool {
	return s.scorer != nil
}

// Predict scores one (region, district, crop) triple and persists the
// assessment. farmerID links the assessment to an existing farmer when set.
func (s *AssessmentService) Predict(ctx context.Context, region, district, cropName string, farmerID *uint) (*PredictResponse, error) {
	if s.scorer == nil {
		return nil, risk.ErrModelUnavailable
	}

	resp, rec, err := s.assess(ctx, region, district, cropName)
	if err != nil {
		return nil, err
	}

	assessment := &loans.RiskAssessment{
		FarmerID:     farmerID,
		Region:       region,
		District:     district,
		Crop:         rec.Crop,
		RiskScore:    resp.RiskScore,
		RiskCategory: string(resp.RiskCategory),
		Confidence:   resp.Confidence,
	}
	assessment.TopFactors = mustJSON(resp.TopFactors)
	assessment.LocationInfo = mustJSON(resp.LocationInfo)
	assessment.CropInfo = mustJSON(resp.CropInfo)
	assessment.Recommendations = mustJSON(resp.Recommendations)

	if s.loans != nil {
		if err := s.loans.SaveAssessment(ctx, assessment); err != nil {
			return nil, fmt.Errorf("save assessment: %w", err)
		}
		resp.AssessmentID = assessment.ID
	}

	s.log.Info("risk assessed",
		zap.String("region", region),
		zap.String("district", district),
		zap.String("crop", rec.Crop),
		zap.Float64("risk_score", resp.RiskScore),
		zap.String("risk_category", string(resp.RiskCategory)))

	return resp, nil
}

// BatchPredict scores every district of a region for one crop. Districts
// whose prediction fails are skipped; nothing is persisted.
func (s *AssessmentService) BatchPredict(ctx context.Context, region, cropName string) ([]DistrictScore, error) {
	if s.scorer == nil {
		return nil, risk.ErrModelUnavailable
	}
	districts := geo.DistrictsOf(region)
	if districts == nil {
		return nil, fmt.Errorf("%w: region %q", ErrLocationNotFound, region)
	}

	results := make([]DistrictScore, 0, len(districts))
	for _, district := range districts {
		resp, _, err := s.assess(ctx, region, district, cropName)
		if err != nil {
			if errors.Is(err, features.ErrUnknownCrop) {
				return nil, err
			}
			s.log.Warn("district prediction skipped",
				zap.String("region", region),
				zap.String("district", district),
				zap.Error(err))
			continue
		}
		results = append(results, DistrictScore{
			District:     district,
			Latitude:     resp.LocationInfo.Latitude,
			Longitude:    resp.LocationInfo.Longitude,
			RiskScore:    resp.RiskScore,
			RiskCategory: resp.RiskCategory,
		})
	}
	return results, nil
}

func (s *AssessmentService) assess(ctx context.Context, region, district, cropName string) (*PredictResponse, *features.Record, error) {
	coords, ok := geo.CoordinatesOf(region, district)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s/%s", ErrLocationNotFound, region, district)
	}

	snap, err := s.source.Fetch(ctx, region, district, coords.Latitude, coords.Longitude)
	if err != nil {
		return nil, nil, fmt.Errorf("satellite snapshot: %w", err)
	}

	rec, err := s.gen.Generate(ctx, snap, strings.ToLower(cropName), 0)
	if err != nil {
		return nil, nil, err
	}

	pred, err := s.scorer.PredictOne(rec)
	if err != nil {
		return nil, nil, err
	}

	recommendations, err := s.scorer.Recommend(rec, rec.Crop)
	if err != nil {
		return nil, nil, fmt.Errorf("recommendations: %w", err)
	}
	if len(recommendations) > responseRecommendations {
		recommendations = recommendations[:responseRecommendations]
	}

	crop, _ := crops.Info(rec.Crop)

	resp := &PredictResponse{
		RiskScore:       pred.RiskScore,
		RiskCategory:    pred.RiskCategory,
		Confidence:      pred.Confidence,
		TopFactors:      pred.TopFactors,
		Recommendations: recommendations,
		LocationInfo: LocationInfo{
			Region:      region,
			District:    district,
			Latitude:    coords.Latitude,
			Longitude:   coords.Longitude,
			ClimateZone: rec.ClimateZone,
			CurrentConditions: CurrentConditions{
				Temperature:   round1(rec.CurrentTempMean),
				Precipitation: round1(rec.CurrentPrecip),
				NDVI:          round3(rec.NDVICurrent),
			},
			Forecast: Forecast{
				Temp14d:     round1(rec.ForecastTemp14d),
				Precip14d:   round1(rec.ForecastPrecip14d),
				FrostRisk:   rec.FrostRisk == 1,
				DroughtRisk: rec.DroughtRisk == 1,
			},
		},
		CropInfo: CropInfo{
			Name:             rec.Crop,
			NameUz:           crop.NameUz,
			Category:         crop.Category,
			OptimalTempRange: fmt.Sprintf("%g-%g°C", crop.OptimalTempMinC, crop.OptimalTempMaxC),
			WaterNeed:        fmt.Sprintf("%gmm/year", crop.WaterNeedMm),
			RegionSuitable:   rec.RegionSuitable == 1,
			SeasonSuitable:   rec.SeasonSuitable == 1,
		},
	}
	return resp, &rec, nil
}

func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(data)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/crops"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
)

func mustCrop(t *testing.T, name string) crops.Profile {
	t.Helper()
	crop, ok := crops.Info(name)
	require.True(t, ok)
	return crop
}

// sumModel predicts the sum of the feature vector.
type sumModel struct{ n int }

func (m sumModel) PredictSingle(fvals []float64, _ int) float64 {
	sum := 0.0
	for _, v := range fvals {
		sum += v
	}
	return sum
}

func (m sumModel) NFeatures() int { return m.n }

// constModel predicts a fixed score.
type constModel struct{ score float64 }

func (m constModel) PredictSingle([]float64, int) float64 { return m.score }
func (m constModel) NFeatures() int                       { return 0 }

// firstFeatureModel predicts a scaled copy of the first feature.
type firstFeatureModel struct{ scale float64 }

func (m firstFeatureModel) PredictSingle(fvals []float64, _ int) float64 {
	return fvals[0] * m.scale
}

func (m firstFeatureModel) NFeatures() int { return 1 }

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, CategoryGreen, CategoryFor(70.0))
	assert.Equal(t, CategoryGreen, CategoryFor(100))
	assert.Equal(t, CategoryYellow, CategoryFor(69.999))
	assert.Equal(t, CategoryYellow, CategoryFor(40.0))
	assert.Equal(t, CategoryRed, CategoryFor(39.999))
	assert.Equal(t, CategoryRed, CategoryFor(0))
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, "high", ConfidenceFor(90))
	assert.Equal(t, "high", ConfidenceFor(85))
	assert.Equal(t, "high", ConfidenceFor(25))
	assert.Equal(t, "high", ConfidenceFor(10))
	assert.Equal(t, "medium", ConfidenceFor(80))
	assert.Equal(t, "medium", ConfidenceFor(75))
	assert.Equal(t, "medium", ConfidenceFor(35))
	assert.Equal(t, "medium", ConfidenceFor(30))
	assert.Equal(t, "low", ConfidenceFor(50))
	assert.Equal(t, "low", ConfidenceFor(60))
}

func TestLabelEncoderKnownValues(t *testing.T) {
	enc := NewLabelEncoder([]string{"cotton", "rice", "wheat"})

	assert.Equal(t, 0, enc.Encode("cotton"))
	assert.Equal(t, 1, enc.Encode("rice"))
	assert.Equal(t, 2, enc.Encode("wheat"))
}

func TestLabelEncoderUnknownBucketAppended(t *testing.T) {
	enc := NewLabelEncoder([]string{"cotton", "rice"})

	// The bucket is appended after the training vocabulary so original
	// codes stay valid.
	assert.Equal(t, []string{"cotton", "rice", UnknownLabel}, enc.Classes())
	assert.Equal(t, 2, enc.Encode("dragonfruit"))
	assert.Equal(t, 2, enc.Encode(UnknownLabel))
}

func TestLabelEncoderExistingUnknownPreserved(t *testing.T) {
	enc := NewLabelEncoder([]string{"cotton", UnknownLabel, "rice"})

	assert.Equal(t, []string{"cotton", UnknownLabel, "rice"}, enc.Classes())
	assert.Equal(t, 1, enc.Encode("dragonfruit"))
	assert.Equal(t, 2, enc.Encode("rice"))
}

func TestPredictNoModel(t *testing.T) {
	scorer := NewScorer(&Artifact{}, nil)

	_, err := scorer.Predict([]features.Record{{}})

	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredictVectorizesAndScores(t *testing.T) {
	artifact := &Artifact{
		Model:        sumModel{n: 3},
		FeatureNames: []string{"latitude", "month", "crop_encoded"},
		Encoders: map[string]*LabelEncoder{
			"crop": NewLabelEncoder([]string{"cotton", "rice", "wheat"}),
		},
	}
	scorer := NewScorer(artifact, nil)

	rec := features.Record{Latitude: 40, Month: 5, Crop: "wheat"}
	pred, err := scorer.PredictOne(rec)
	require.NoError(t, err)

	// 40 + 5 + 2
	assert.Equal(t, 47.0, pred.RiskScore)
	assert.Equal(t, CategoryYellow, pred.RiskCategory)
	assert.Equal(t, "low", pred.Confidence)
}

func TestPredictUnknownCategoryUsesBucket(t *testing.T) {
	artifact := &Artifact{
		Model:        sumModel{n: 1},
		FeatureNames: []string{"crop_encoded"},
		Encoders: map[string]*LabelEncoder{
			"crop": NewLabelEncoder([]string{"cotton", "rice"}),
		},
	}
	scorer := NewScorer(artifact, nil)

	pred, err := scorer.PredictOne(features.Record{Crop: "quinoa"})
	require.NoError(t, err)

	assert.Equal(t, 2.0, pred.RiskScore)
}

func TestPredictLegacyArtifactEncodesZero(t *testing.T) {
	// Without persisted encoders every categorical column encodes to 0.
	artifact := &Artifact{
		Model:        sumModel{n: 2},
		FeatureNames: []string{"crop_encoded", "region_encoded"},
		Legacy:       true,
	}
	scorer := NewScorer(artifact, nil)

	pred, err := scorer.PredictOne(features.Record{Crop: "rice", Region: "Khorezm"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, pred.RiskScore)
}

func TestPredictSchemaError(t *testing.T) {
	artifact := &Artifact{
		Model:        sumModel{n: 1},
		FeatureNames: []string{"no_such_column"},
	}
	scorer := NewScorer(artifact, nil)

	_, err := scorer.Predict([]features.Record{{}})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "no_such_column", schemaErr.Column)
}

func TestPredictClampsScore(t *testing.T) {
	high := NewScorer(&Artifact{Model: constModel{score: 150}, FeatureNames: []string{"month"}}, nil)
	pred, err := high.PredictOne(features.Record{Month: 1})
	require.NoError(t, err)
	assert.Equal(t, 100.0, pred.RiskScore)

	low := NewScorer(&Artifact{Model: constModel{score: -12}, FeatureNames: []string{"month"}}, nil)
	pred, err = low.PredictOne(features.Record{Month: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred.RiskScore)
}

func TestPredictDefaultsToCanonicalOrder(t *testing.T) {
	artifact := &Artifact{Model: constModel{score: 55}}
	scorer := NewScorer(artifact, nil)

	assert.Equal(t, features.CanonicalOrder, scorer.FeatureOrder())

	// A fully populated record vectorizes without schema errors.
	pred, err := scorer.PredictOne(features.Record{Crop: "cotton", Region: "Fergana"})
	require.NoError(t, err)
	assert.Equal(t, 55.0, pred.RiskScore)
}

func TestAttributionExplainer(t *testing.T) {
	names := []string{"temp_match", "water_match", "frost_risk"}
	baselines := map[string]float64{"temp_match": 1, "water_match": 1}
	explainer := newAttributionExplainer(sumModel{n: 3}, names, baselines)

	factors := explainer.Explain([]float64{0.2, 1.5, 1})

	// frost_risk has no baseline and is skipped. temp_match fell 0.8
	// below baseline, water_match rose 0.5 above it.
	require.Len(t, factors, 2)
	assert.Equal(t, "temp_match", factors[0].Feature)
	assert.InDelta(t, -0.8, factors[0].Contribution, 1e-9)
	assert.Equal(t, DirectionDecreases, factors[0].Direction)
	assert.Equal(t, 0.2, factors[0].Value)

	assert.Equal(t, "water_match", factors[1].Feature)
	assert.InDelta(t, 0.5, factors[1].Contribution, 1e-9)
	assert.Equal(t, DirectionIncreases, factors[1].Direction)
}

func TestAttributionExplainerSkipsBaselineMatches(t *testing.T) {
	names := []string{"a", "b"}
	baselines := map[string]float64{"a": 3, "b": 7}
	explainer := newAttributionExplainer(sumModel{n: 2}, names, baselines)

	factors := explainer.Explain([]float64{3, 7})

	assert.Empty(t, factors)
}

func TestImportanceExplainer(t *testing.T) {
	importance := map[string]float64{
		"water_match": 60,
		"temp_match":  30,
		"ndvi_score":  10,
		"month":       0,
	}
	names := []string{"month", "temp_match", "water_match", "ndvi_score"}
	explainer := newImportanceExplainer(importance, names)

	factors := explainer.Explain([]float64{4, 0.8, 1.2, 1.0})

	require.Len(t, factors, 3)
	assert.Equal(t, "water_match", factors[0].Feature)
	assert.Equal(t, 60.0, factors[0].Contribution)
	assert.Equal(t, 1.2, factors[0].Value)
	assert.Equal(t, DirectionIncreases, factors[0].Direction)

	assert.Equal(t, "temp_match", factors[1].Feature)
	assert.Equal(t, 30.0, factors[1].Contribution)

	assert.Equal(t, "ndvi_score", factors[2].Feature)
	assert.Equal(t, 10.0, factors[2].Contribution)
}

func TestImportanceExplainerTopFive(t *testing.T) {
	importance := map[string]float64{
		"a": 10, "b": 20, "c": 30, "d": 40, "e": 50, "f": 60, "g": 70,
	}
	explainer := newImportanceExplainer(importance, []string{"a", "b", "c", "d", "e", "f", "g"})

	factors := explainer.Explain(make([]float64, 7))

	require.Len(t, factors, 5)
	assert.Equal(t, "g", factors[0].Feature)
	assert.Equal(t, "c", factors[4].Feature)
}

func TestRecommend(t *testing.T) {
	// Score each candidate by its water need so results differ per crop.
	artifact := &Artifact{
		Model:        firstFeatureModel{scale: 0.1},
		FeatureNames: []string{"crop_water_need"},
	}
	scorer := NewScorer(artifact, nil)

	base := features.Record{
		Region:                "Fergana",
		Month:                 6,
		Crop:                  "cotton",
		LSTMeanC:              25,
		LSTMinC:               15,
		PrecipitationAnnualMm: 400,
		NDVIMean:              0.4,
	}

	recs, err := scorer.Recommend(base, "cotton")
	require.NoError(t, err)

	require.Len(t, recs, maxRecommendations)
	for _, rec := range recs {
		assert.NotEqual(t, "cotton", rec.Crop)
		assert.NotEmpty(t, rec.CropUz)
	}
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].RiskScore, recs[i].RiskScore)
	}

	// Rice has the highest water need in the catalog.
	assert.Equal(t, "rice", recs[0].Crop)
}

func TestRescoreForCropRecomputesCropFields(t *testing.T) {
	base := features.Record{
		Region:                "Khorezm",
		District:              "Urganch",
		Month:                 7,
		Crop:                  "cotton",
		LSTMeanC:              28,
		LSTMinC:               16,
		PrecipitationAnnualMm: 300,
		NDVIMean:              0.5,
		Latitude:              41.5,
	}

	rice := mustCrop(t, "rice")
	rec := RescoreForCrop(base, rice)

	assert.Equal(t, "rice", rec.Crop)
	assert.Equal(t, rice.WaterNeedMm, rec.CropWaterNeed)
	assert.Equal(t, 1.0, rec.RegionSuitable)
	assert.Equal(t, 1.0, rec.SeasonSuitable)
	// Location fields are untouched.
	assert.Equal(t, base.Latitude, rec.Latitude)
	assert.Equal(t, base.District, rec.District)
	assert.Equal(t, base.LSTMeanC, rec.LSTMeanC)
}

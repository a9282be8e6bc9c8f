package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/report"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/risk"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/satellite"
)

type constModel struct{ score float64 }

func (m constModel) PredictSingle([]float64, int) float64 { return m.score }
func (m constModel) NFeatures() int                       { return 0 }

func newTestRouter(t *testing.T, scorer *risk.Scorer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := satellite.NewChainSource(nil, satellite.StaticSource{})
	gen := features.NewGenerator(nil, nil)
	svc := NewAssessmentService(source, gen, scorer, nil, nil)
	handler := NewHandler(svc, nil, report.NewGenerator(), nil)
	return NewRouter(handler, zap.NewNop())
}

func testScorer(score float64) *risk.Scorer {
	return risk.NewScorer(&risk.Artifact{Model: constModel{score: score}}, nil)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthWithoutModel(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["model_loaded"])
}

func TestListRegions(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/api/regions", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Regions []string `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Regions, 14)
}

func TestListDistricts(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/api/districts/Fergana", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Region    string   `json:"region"`
		Districts []string `json:"districts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Fergana", body.Region)
	assert.NotEmpty(t, body.Districts)
}

func TestListDistrictsUnknownRegion(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/api/districts/Atlantis", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCrops(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/api/crops", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Crops []cropSummary `json:"crops"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Crops, 15)
	for _, crop := range body.Crops {
		assert.NotEmpty(t, crop.Name)
		assert.NotEmpty(t, crop.NameUz)
		assert.NotEmpty(t, crop.GrowingSeason)
	}
}

func TestPredictWithoutModel(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodPost, "/api/predict",
		`{"region":"Fergana","district":"Quva","crop":"cotton"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPredictMissingFields(t *testing.T) {
	router := newTestRouter(t, testScorer(55))

	w := doRequest(router, http.MethodPost, "/api/predict", `{"region":"Fergana"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictUnknownLocation(t *testing.T) {
	router := newTestRouter(t, testScorer(55))

	w := doRequest(router, http.MethodPost, "/api/predict",
		`{"region":"Atlantis","district":"Nowhere","crop":"cotton"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPredictUnknownCrop(t *testing.T) {
	router := newTestRouter(t, testScorer(55))

	w := doRequest(router, http.MethodPost, "/api/predict",
		`{"region":"Fergana","district":"Quva","crop":"dragonfruit"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictSuccess(t *testing.T) {
	router := newTestRouter(t, testScorer(55))

	w := doRequest(router, http.MethodPost, "/api/predict",
		`{"region":"Fergana","district":"Quva","crop":"cotton"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 55.0, body.RiskScore)
	assert.Equal(t, risk.CategoryYellow, body.RiskCategory)
	assert.Equal(t, "low", body.Confidence)
	assert.LessOrEqual(t, len(body.Recommendations), 3)
	for _, rec := range body.Recommendations {
		assert.NotEqual(t, "cotton", rec.Crop)
	}

	assert.Equal(t, "Fergana", body.LocationInfo.Region)
	assert.Equal(t, "Quva", body.LocationInfo.District)
	assert.Equal(t, "fergana", body.LocationInfo.ClimateZone)
	assert.NotZero(t, body.LocationInfo.Latitude)

	assert.Equal(t, "cotton", body.CropInfo.Name)
	assert.Equal(t, "Paxta", body.CropInfo.NameUz)
	assert.Contains(t, body.CropInfo.WaterNeed, "mm/year")
	assert.True(t, body.CropInfo.RegionSuitable)
}

func TestBatchPredictMissingParams(t *testing.T) {
	router := newTestRouter(t, testScorer(55))

	w := doRequest(router, http.MethodGet, "/api/batch-predict?region=Fergana", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchPredictUnknownRegion(t *testing.T) {
	router := newTestRouter(t, testScorer(55))

	w := doRequest(router, http.MethodGet, "/api/batch-predict?region=Atlantis&crop=cotton", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBatchPredict(t *testing.T) {
	router := newTestRouter(t, testScorer(72))

	w := doRequest(router, http.MethodGet, "/api/batch-predict?region=Fergana&crop=cotton", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Region    string          `json:"region"`
		Crop      string          `json:"crop"`
		Districts []DistrictScore `json:"districts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "Fergana", body.Region)
	assert.NotEmpty(t, body.Districts)
	for _, d := range body.Districts {
		assert.Equal(t, 72.0, d.RiskScore)
		assert.Equal(t, risk.CategoryGreen, d.RiskCategory)
		assert.NotZero(t, d.Latitude)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}

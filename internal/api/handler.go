package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/crops"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/geo"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/loans"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/report"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/risk"
)

// Handler handles HTTP requests for the risk scoring service
type Handler struct {
	assessments *AssessmentService
	loans       *loans.Service
	reports     *report.Generator
	logger      *zap.Logger
}

// NewHandler creates the API handler
func NewHandler(assessments *AssessmentService, loanSvc *loans.Service, reports *report.Generator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		assessments: assessments,
		loans:       loanSvc,
		reports:     reports,
		logger:      logger,
	}
}

// RegisterRoutes registers all routes on the engine. Reference endpoints
// stay available even when no model is loaded; only prediction and loan
// routes depend on it.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.GET("/regions", h.listRegions)
		api.GET("/districts/:region", h.listDistricts)
		api.GET("/crops", h.listCrops)

		api.POST("/predict", h.predict)
		api.GET("/batch-predict", h.batchPredict)

		loan := api.Group("/loan")
		{
			loan.POST("/submit", h.submitLoan)
			loan.GET("/download/:id", h.downloadReport)
		}
	}
}

// health handles GET /health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": h.assessments.ModelLoaded(),
		"database":     "connected",
	})
}

// listRegions handles GET /api/regions
func (h *Handler) listRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": geo.Regions()})
}

// listDistricts handles GET /api/districts/:region
func (h *Handler) listDistricts(c *gin.Context) {
	region := c.Param("region")
	districts := geo.DistrictsOf(region)
	if districts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Region '%s' not found", region)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": region, "districts": districts})
}

type cropSummary struct {
	Name          string  `json:"name"`
	NameUz        string  `json:"name_uz"`
	Category      string  `json:"category"`
	GrowingSeason string  `json:"growing_season"`
	WaterNeedMm   float64 `json:"water_need_mm"`
}

// listCrops handles GET /api/crops
func (h *Handler) listCrops(c *gin.Context) {
	all := crops.All()
	list := make([]cropSummary, 0, len(all))
	for _, crop := range all {
		list = append(list, cropSummary{
			Name:          crop.Name,
			NameUz:        crop.NameUz,
			Category:      crop.Category,
			GrowingSeason: fmt.Sprintf("%d-%d", crop.SeasonStartMonth, crop.SeasonEndMonth),
			WaterNeedMm:   crop.WaterNeedMm,
		})
	}
	c.JSON(http.StatusOK, gin.H{"crops": list})
}

type predictRequest struct {
	Region   string `json:"region" binding:"required"`
	District string `json:"district" binding:"required"`
	Crop     string `json:"crop" binding:"required"`
	FarmerID *uint  `json:"farmer_id"`
}

// predict handles POST /api/predict
func (h *Handler) predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	resp, err := h.assessments.Predict(c.Request.Context(), req.Region, req.District, req.Crop, req.FarmerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// batchPredict handles GET /api/batch-predict
func (h *Handler) batchPredict(c *gin.Context) {
	region := c.Query("region")
	crop := c.Query("crop")
	if region == "" || crop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing region or crop"})
		return
	}

	results, err := h.assessments.BatchPredict(c.Request.Context(), region, crop)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": region, "crop": crop, "districts": results})
}

// submitLoan handles POST /api/loan/submit
func (h *Handler) submitLoan(c *gin.Context) {
	var req loans.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.loans.Submit(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// downloadReport handles GET /api/loan/download/:id
func (h *Handler) downloadReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	record, err := h.loans.DecisionRecordByApplication(c.Request.Context(), uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	pdf, err := h.reports.RenderBytes(report.DecisionReport{
		Farmer:      record.Farmer,
		Assessment:  record.Assessment,
		Application: record.Application,
		Decision:    record.Decision,
	})
	if err != nil {
		h.logger.Error("report generation failed", zap.Uint64("application_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("loan_decision_%d.pdf", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// respondError maps service errors onto HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, risk.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model not loaded"})
	case errors.Is(err, ErrLocationNotFound), errors.Is(err, loans.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, features.ErrUnknownCrop):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var schemaErr *risk.SchemaError
		if errors.As(err, &schemaErr) {
			h.logger.Error("feature schema mismatch", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

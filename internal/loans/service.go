package loans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/finance"
)

// SubmitRequest carries a loan application for an existing assessment.
type SubmitRequest struct {
	AssessmentID uint   `json:"assessment_id" binding:"required"`
	FarmerName   string `json:"farmer_name" binding:"required"`
	PassportID   string `json:"passport_id" binding:"required"`
	Phone        string `json:"phone" binding:"required"`

	YearsFarming  int     `json:"years_farming"`
	LandAreaHa    float64 `json:"land_area"`
	LandOwnership string  `json:"land_ownership"`

	LoanAmount       float64 `json:"loan_amount" binding:"required"`
	LoanTermMonths   int     `json:"loan_term"`
	AnnualRevenue    float64 `json:"annual_revenue" binding:"required"`
	NetProfit        float64 `json:"net_profit" binding:"required"`
	TotalAssets      float64 `json:"total_assets" binding:"required"`
	TotalDebt        float64 `json:"total_debt"`
	CollateralValue  float64 `json:"collateral_value"`
	PreviousDefaults bool    `json:"previous_defaults"`
}

// SubmitResult is the decision returned for a submitted application.
type SubmitResult struct {
	ApplicationID  uint               `json:"application_id"`
	DecisionID     uint               `json:"decision_id"`
	FarmerID       uint               `json:"farmer_id"`
	AgroScore      float64            `json:"agro_score"`
	FinancialScore float64            `json:"financial_score"`
	FinalScore     int                `json:"final_score"`
	Decision       string             `json:"decision"`
	Factors        map[string]float64 `json:"factors"`
}

// Service implements the loan submission flow.
type Service struct {
	repo Repository
	log  *zap.Logger
}

// NewService builds a loan service over a repository.
func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// Submit records the application, scores it financially, combines the agro
// and financial scores and persists the decision.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	assessment, err := s.repo.AssessmentByID(ctx, req.AssessmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("assessment %d: %w", req.AssessmentID, ErrNotFound)
		}
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	farmer, err := s.getOrCreateFarmer(ctx, req)
	if err != nil {
		return nil, err
	}

	if assessment.FarmerID == nil {
		assessment.FarmerID = &farmer.ID
		if err := s.repo.UpdateAssessment(ctx, assessment); err != nil {
			return nil, fmt.Errorf("link assessment to farmer: %w", err)
		}
	}

	app := &LoanApplication{
		FarmerID:         farmer.ID,
		AssessmentID:     assessment.ID,
		LoanAmount:       req.LoanAmount,
		LoanTermMonths:   defaultTerm(req.LoanTermMonths),
		LandAreaHa:       req.LandAreaHa,
		LandOwnership:    defaultOwnership(req.LandOwnership),
		YearsFarming:     req.YearsFarming,
		AnnualRevenue:    req.AnnualRevenue,
		NetProfit:        req.NetProfit,
		TotalAssets:      req.TotalAssets,
		TotalDebt:        req.TotalDebt,
		CollateralValue:  req.CollateralValue,
		PreviousDefaults: req.PreviousDefaults,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	finScore, ratios := finance.Score(finance.Inputs{
		LoanAmount:       app.LoanAmount,
		LoanTermMonths:   app.LoanTermMonths,
		AnnualRevenue:    app.AnnualRevenue,
		NetProfit:        app.NetProfit,
		TotalAssets:      app.TotalAssets,
		TotalDebt:        app.TotalDebt,
		CollateralValue:  app.CollateralValue,
		PreviousDefaults: app.PreviousDefaults,
		YearsFarming:     app.YearsFarming,
		LandOwnership:    app.LandOwnership,
	})

	finalScore := finance.Combine(assessment.RiskScore, finScore)
	decision := finance.DecisionFor(finalScore)

	// Ratios reported as percentages, one decimal.
	factors := map[string]float64{
		"debt_to_asset_ratio": roundPct(ratios.DebtToAsset),
		"profit_margin":       roundPct(ratios.ProfitMargin),
		"collateral_coverage": roundPct(ratios.CollateralCoverage),
	}
	factorsJSON, _ := json.Marshal(factors)

	record := &CreditDecision{
		ApplicationID:   app.ID,
		AgroScore:       assessment.RiskScore,
		FinancialScore:  finScore,
		FinalScore:      finalScore,
		Decision:        decision,
		DecisionFactors: datatypes.JSON(factorsJSON),
	}
	if err := s.repo.CreateDecision(ctx, record); err != nil {
		return nil, fmt.Errorf("create decision: %w", err)
	}

	s.log.Info("loan decision recorded",
		zap.Uint("application_id", app.ID),
		zap.Float64("agro_score", assessment.RiskScore),
		zap.Float64("financial_score", finScore),
		zap.Int("final_score", finalScore),
		zap.String("decision", decision))

	return &SubmitResult{
		ApplicationID:  app.ID,
		DecisionID:     record.ID,
		FarmerID:       farmer.ID,
		AgroScore:      assessment.RiskScore,
		FinancialScore: finScore,
		FinalScore:     finalScore,
		Decision:       decision,
		Factors:        factors,
	}, nil
}

// DecisionRecord bundles an application with its related rows for reporting.
type DecisionRecord struct {
	Farmer      *Farmer
	Assessment  *RiskAssessment
	Application *LoanApplication
	Decision    *CreditDecision
}

// DecisionRecordByApplication loads the full decision record for an
// application. The farmer and assessment are optional; a missing decision
// is ErrNotFound since the report cannot render without one.
func (s *Service) DecisionRecordByApplication(ctx context.Context, applicationID uint) (*DecisionRecord, error) {
	app, err := s.repo.ApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	decision, err := s.repo.DecisionByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	record := &DecisionRecord{Application: app, Decision: decision}

	if farmer, err := s.repo.FarmerByID(ctx, app.FarmerID); err == nil {
		record.Farmer = farmer
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if assessment, err := s.repo.AssessmentByID(ctx, app.AssessmentID); err == nil {
		record.Assessment = assessment
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return record, nil
}

// SaveAssessment persists a prediction result so loan applications can
// reference it.
func (s *Service) SaveAssessment(ctx context.Context, assessment *RiskAssessment) error {
	return s.repo.CreateAssessment(ctx, assessment)
}

func (s *Service) getOrCreateFarmer(ctx context.Context, req SubmitRequest) (*Farmer, error) {
	farmer, err := s.repo.FarmerByPassport(ctx, req.PassportID)
	if err == nil {
		return farmer, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("lookup farmer: %w", err)
	}

	farmer = &Farmer{Name: req.FarmerName, PassportID: req.PassportID, Phone: req.Phone}
	if err := s.repo.CreateFarmer(ctx, farmer); err != nil {
		return nil, fmt.Errorf("create farmer: %w", err)
	}
	return farmer, nil
}

func defaultTerm(months int) int {
	if months <= 0 {
		return 12
	}
	return months
}

func defaultOwnership(ownership string) string {
	if ownership == "" {
		return "unknown"
	}
	return ownership
}

func roundPct(ratio float64) float64 {
	return math.Round(ratio*100*10) / 10
}

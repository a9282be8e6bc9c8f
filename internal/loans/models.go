// Package loans persists farmers, risk assessments, loan applications and
// credit decisions, and implements the loan submission flow that combines
// the agronomic and financial scores into a decision.
package loans

import (
	"time"

	"gorm.io/datatypes"
)

// Farmer is a loan applicant identified by passport ID.
type Farmer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:200;not null"`
	PassportID string    `json:"passport_id" gorm:"size:50;uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"size:20"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// RiskAssessment is a persisted crop risk prediction for a location.
type RiskAssessment struct {
	ID       uint  `json:"id" gorm:"primaryKey"`
	FarmerID *uint `json:"farmer_id" gorm:"index"`

	Region   string `json:"region" gorm:"size:100;not null"`
	District string `json:"district" gorm:"size:100;not null"`
	Crop     string `json:"crop" gorm:"size:50;not null"`

	RiskScore    float64 `json:"risk_score" gorm:"not null"`
	RiskCategory string  `json:"risk_category" gorm:"size:20;not null"`
	Confidence   string  `json:"confidence" gorm:"size:20"`

	TopFactors      datatypes.JSON `json:"top_factors" gorm:"default:'[]'"`
	LocationInfo    datatypes.JSON `json:"location_info" gorm:"default:'{}'"`
	CropInfo        datatypes.JSON `json:"crop_info" gorm:"default:'{}'"`
	Recommendations datatypes.JSON `json:"recommendations" gorm:"default:'[]'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// LoanApplication is a submitted loan request linked to an assessment.
type LoanApplication struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	FarmerID     uint `json:"farmer_id" gorm:"not null;index"`
	AssessmentID uint `json:"assessment_id" gorm:"not null;index"`

	LoanAmount     float64 `json:"loan_amount" gorm:"not null"`
	LoanTermMonths int     `json:"loan_term"`

	LandAreaHa    float64 `json:"land_area"`
	LandOwnership string  `json:"land_ownership" gorm:"size:20"`
	YearsFarming  int     `json:"years_farming"`

	AnnualRevenue    float64 `json:"annual_revenue" gorm:"not null"`
	NetProfit        float64 `json:"net_profit" gorm:"not null"`
	TotalAssets      float64 `json:"total_assets" gorm:"not null"`
	TotalDebt        float64 `json:"total_debt"`
	CollateralValue  float64 `json:"collateral_value"`
	PreviousDefaults bool    `json:"previous_defaults" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// CreditDecision is the combined scoring outcome for an application.
type CreditDecision struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	ApplicationID uint `json:"application_id" gorm:"not null;index"`

	AgroScore      float64 `json:"agro_score" gorm:"not null"`
	FinancialScore float64 `json:"financial_score" gorm:"not null"`
	FinalScore     int     `json:"final_score" gorm:"not null"`

	Decision        string         `json:"decision" gorm:"size:20;not null"`
	DecisionFactors datatypes.JSON `json:"decision_factors" gorm:"default:'{}'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Package finance holds the rule-based credit-health score and the final
// loan decision. It is independent of the ML scorer; the two are only
// combined at decision time.
package finance

import "math"

// Land tenure tiers. Short leases carry the risk of losing the land
// mid-season and are penalized.
const (
	OwnershipOwned       = "owned"
	OwnershipLeasedLong  = "leased_long"
	OwnershipLeasedShort = "leased_short"
)

// Decision outcomes for the combined credit score.
const (
	DecisionApproved     = "APPROVED"
	DecisionManualReview = "MANUAL_REVIEW"
	DecisionRejected     = "REJECTED"
)

// Weights of the two score components in the final credit score.
const (
	agroWeight      = 0.4
	financialWeight = 0.6
)

// Inputs are the applicant's loan and financial figures. Amounts are in
// UZS; ratios are computed with denominators guarded to a minimum of 1 so
// zero or negative figures can never cause a division error.
type Inputs struct {
	LoanAmount       float64 `json:"loan_amount"`
	LoanTermMonths   int     `json:"loan_term"`
	AnnualRevenue    float64 `json:"annual_revenue"`
	NetProfit        float64 `json:"net_profit"`
	TotalAssets      float64 `json:"total_assets"`
	TotalDebt        float64 `json:"total_debt"`
	CollateralValue  float64 `json:"collateral_value"`
	PreviousDefaults bool    `json:"previous_defaults"`
	YearsFarming     int     `json:"years_farming"`
	LandOwnership    string  `json:"land_ownership"`
}

// Ratios are the three named ratios reported alongside the score for
// downstream reporting, as fractions (not percentages).
type Ratios struct {
	DebtToAsset        float64 `json:"debt_to_asset_ratio"`
	ProfitMargin       float64 `json:"profit_margin"`
	CollateralCoverage float64 `json:"collateral_coverage"`
}

// Score computes the 0-100 financial health score and its ratios. Base 70,
// adjusted by fixed deltas on ratio thresholds, experience, tenure and the
// prior-default flag, then clamped.
func Score(in Inputs) (float64, Ratios) {
	ratios := Ratios{
		DebtToAsset:        (in.TotalDebt + in.LoanAmount) / math.Max(in.TotalAssets, 1),
		ProfitMargin:       in.NetProfit / math.Max(in.AnnualRevenue, 1),
		CollateralCoverage: in.CollateralValue / math.Max(in.LoanAmount, 1),
	}

	score := 70.0

	switch {
	case ratios.DebtToAsset > 0.7:
		score -= 30
	case ratios.DebtToAsset > 0.5:
		score -= 15
	default:
		score += 10
	}

	if ratios.ProfitMargin < 0.1 {
		score -= 10
	} else if ratios.ProfitMargin > 0.3 {
		score += 10
	}

	if ratios.CollateralCoverage < 1.0 {
		score -= 20
	} else if ratios.CollateralCoverage > 1.5 {
		score += 10
	}

	if in.PreviousDefaults {
		score -= 50
	}
	if in.YearsFarming < 2 {
		score -= 10
	}
	if in.LandOwnership == OwnershipLeasedShort {
		score -= 10
	}

	return clamp(score, 0, 100), ratios
}

// Combine produces the final credit score from the agronomic and financial
// components: round(0.4*agro + 0.6*financial).
func Combine(agroScore, financialScore float64) int {
	return int(math.Round(agroScore*agroWeight + financialScore*financialWeight))
}

// DecisionFor maps a final credit score to the loan decision.
func DecisionFor(finalScore int) string {
	switch {
	case finalScore >= 70:
		return DecisionApproved
	case finalScore >= 50:
		return DecisionManualReview
	default:
		return DecisionRejected
	}
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

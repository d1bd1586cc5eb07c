package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/internal/payout"
)

// Decider derives the final claim status from the accumulated risk signals
// and payout outcome. First matching rule wins.
type Decider struct {
	highRiskScore   float64 // at or above: reject outright
	mediumRiskScore float64 // at or above (or needs_review): manual review
	logger          *zap.Logger
}

// NewDecider creates a new decision aggregator
func NewDecider(highRiskScore, mediumRiskScore float64, logger *zap.Logger) *Decider {
	return &Decider{
		highRiskScore:   highRiskScore,
		mediumRiskScore: mediumRiskScore,
		logger:          logger,
	}
}

// Decide applies the status precedence rules:
//  1. indicators present and high risk: rejected
//  2. indicators present and review needed or medium risk: requires_review
//  3. indicators present but payable: approved with a warning
//  4. no indicators and payable: approved
//  5. anything else: requires_review (no usable payout)
func (d *Decider) Decide(result *models.ClaimResult, analysis *models.FraudAnalysis, outcome payout.Outcome) {
	indicators := analysis.FraudIndicators
	riskScore := analysis.RiskScore

	var estimate *models.PayoutEstimate
	if outcome.Code == payout.OutcomePayable {
		estimate = outcome.Estimate
	}

	switch {
	case len(indicators) > 0 && riskScore >= d.highRiskScore:
		result.Status = models.StatusRejected
		result.Error = fmt.Sprintf("Claim rejected due to high fraud risk (score: %s). Indicators: %s",
			formatScore(riskScore), strings.Join(indicators, ", "))

	case len(indicators) > 0 && (analysis.NeedsReview || riskScore >= d.mediumRiskScore):
		result.Status = models.StatusRequiresReview
		result.Error = fmt.Sprintf("Claim requires manual review due to potential fraud indicators (score: %s). Indicators: %s",
			formatScore(riskScore), strings.Join(indicators, ", "))

	case len(indicators) > 0 && estimate != nil && estimate.ApprovedAmount > 0:
		result.Status = models.StatusApproved
		result.ApprovedAmount = &estimate.ApprovedAmount
		result.Currency = estimate.Currency
		appendWarning(result, fmt.Sprintf("Claim approved but with fraud indicators (score: %s). Indicators: %s",
			formatScore(riskScore), strings.Join(indicators, ", ")))

	case len(indicators) == 0 && estimate != nil && estimate.ApprovedAmount > 0:
		result.Status = models.StatusApproved
		result.ApprovedAmount = &estimate.ApprovedAmount
		result.Currency = estimate.Currency

	default:
		result.Status = models.StatusRequiresReview
		result.Error = "Payout estimation failed or resulted in zero amount"
	}

	d.logger.Info("Final claim decision",
		zap.String("claim_id", result.ClaimID),
		zap.String("status", result.Status),
		zap.Float64("risk_score", riskScore),
		zap.Int("indicator_count", len(indicators)))
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

func appendWarning(result *models.ClaimResult, warning string) {
	if result.Warning != "" {
		result.Warning += "; " + warning
		return
	}
	result.Warning = warning
}

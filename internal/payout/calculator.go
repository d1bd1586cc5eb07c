package payout

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/config"
	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/pkg/utils"
)

// OutcomeCode distinguishes the payout calculation variants. NotCovered and
// NeedsReview are business outcomes, not errors.
type OutcomeCode int

const (
	// OutcomePayable carries a payout estimate
	OutcomePayable OutcomeCode = iota
	// OutcomeNotCovered means the policy is invalid or the claim type uncovered
	OutcomeNotCovered
	// OutcomeNeedsReview means fraud analysis demands human adjudication
	OutcomeNeedsReview
)

// Outcome is the tagged result of a payout calculation. Exactly one variant
// applies: Estimate is set only for OutcomePayable; RiskScore and Indicators
// are set only for OutcomeNeedsReview.
type Outcome struct {
	Code       OutcomeCode
	Estimate   *models.PayoutEstimate
	Reason     string
	RiskScore  float64
	Indicators []string
}

// Calculator computes bounded payouts for valid, non-reviewed claims
type Calculator struct {
	cfg    config.Payout
	logger *zap.Logger
}

// NewCalculator creates a new payout calculator
func NewCalculator(cfg config.Payout, logger *zap.Logger) *Calculator {
	return &Calculator{
		cfg:    cfg,
		logger: logger,
	}
}

// Estimate applies the coverage limit and deductible for the claim type.
// Claims on invalid or uncovering policies yield OutcomeNotCovered; claims
// flagged for review yield OutcomeNeedsReview with the fraud context passed
// through.
func (c *Calculator) Estimate(claim *models.CanonicalClaim, validation *models.PolicyValidationResult, analysis *models.FraudAnalysis) Outcome {
	if !validation.IsValid || !validation.ClaimTypeCovered {
		c.logger.Info("Claim not covered by policy",
			zap.String("claim_id", claim.ClaimID),
			zap.Bool("is_valid", validation.IsValid),
			zap.Bool("claim_type_covered", validation.ClaimTypeCovered))
		return Outcome{
			Code:   OutcomeNotCovered,
			Reason: fmt.Sprintf("claim not covered by policy %s", claim.PolicyNumber),
		}
	}

	if analysis.NeedsReview {
		c.logger.Info("Claim withheld from payout pending review",
			zap.String("claim_id", claim.ClaimID),
			zap.Float64("risk_score", analysis.RiskScore))
		return Outcome{
			Code:       OutcomeNeedsReview,
			Reason:     "potential fraud detected, requires manual review",
			RiskScore:  analysis.RiskScore,
			Indicators: analysis.FraudIndicators,
		}
	}

	limit, ok := c.cfg.Limits[claim.ClaimType]
	if !ok {
		limit = c.cfg.DefaultLimit
	}

	payable := math.Min(claim.ClaimAmount, limit)
	approved := utils.Round2(math.Max(0, payable-c.cfg.Deductible))

	estimate := &models.PayoutEstimate{
		ClaimID:             claim.ClaimID,
		OriginalClaimAmount: claim.ClaimAmount,
		ApprovedAmount:      approved,
		DeductibleApplied:   math.Min(c.cfg.Deductible, claim.ClaimAmount),
		Currency:            c.cfg.Currency,
	}

	c.logger.Info("Payout estimated",
		zap.String("claim_id", claim.ClaimID),
		zap.Float64("original_amount", estimate.OriginalClaimAmount),
		zap.Float64("approved_amount", estimate.ApprovedAmount),
		zap.String("currency", estimate.Currency))

	return Outcome{Code: OutcomePayable, Estimate: estimate}
}

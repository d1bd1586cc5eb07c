package fraud

import (
	"math"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/config"
	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/pkg/utils"
)

// reviewTriggers are the indicators that force manual review regardless of
// the overall risk score.
var reviewTriggers = map[string]bool{
	"very_high_claim_for_minor_damage": true,
	"high_risk_new_policy_claim":       true,
	"claim_within_first_week":          true,
	"suspicious_pattern_detected":      true,
}

// Scorer computes a bounded fraud risk score and indicator set for a
// canonical claim. Scoring is deterministic for a fixed reference time.
type Scorer struct {
	cfg    config.Fraud
	logger *zap.Logger
}

// NewScorer creates a new fraud scorer
func NewScorer(cfg config.Fraud, logger *zap.Logger) *Scorer {
	return &Scorer{
		cfg:    cfg,
		logger: logger,
	}
}

// Analyze runs all fraud checks over the claim and combines their partial
// scores. The check fails closed: any internal fault yields a maximum-risk
// analysis flagged for review rather than an error, since an unreviewable
// claim must never silently auto-approve.
func (s *Scorer) Analyze(claim *models.CanonicalClaim, now time.Time) (analysis *models.FraudAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Fraud check failed, failing closed",
				zap.Any("panic", r))
			analysis = FailClosed()
		}
	}()

	if claim == nil {
		return FailClosed()
	}

	s.logger.Info("Starting fraud analysis",
		zap.String("claim_id", claim.ClaimID),
		zap.String("claim_type", claim.ClaimType),
		zap.Float64("claim_amount", claim.ClaimAmount))

	var indicators []string
	riskScore := 0.0
	riskFactors := make(map[string]float64)

	// Checks 1-3 each force the floor upward; one disqualifying factor is
	// enough on its own.
	amountIndicators, amountRisk := s.checkClaimAmount(claim, now)
	indicators = append(indicators, amountIndicators...)
	riskScore = math.Max(riskScore, amountRisk)
	riskFactors["claim_amount_risk"] = utils.Round4(amountRisk)

	incidentIndicators, incidentRisk := s.checkIncidentDetails(claim)
	indicators = append(indicators, incidentIndicators...)
	riskScore = math.Max(riskScore, incidentRisk)
	riskFactors["incident_details_risk"] = utils.Round4(incidentRisk)

	timingIndicators, timingRisk := s.checkClaimTiming(claim, now)
	indicators = append(indicators, timingIndicators...)
	riskScore = math.Max(riskScore, timingRisk)
	riskFactors["timing_risk"] = utils.Round4(timingRisk)

	// Prior-claims history is additive on top of the floor
	historyIndicator, historyRisk := s.checkPreviousClaims(claim)
	if historyIndicator != "" {
		indicators = append(indicators, historyIndicator)
		riskScore = math.Min(1.0, riskScore+historyRisk)
	}
	riskFactors["previous_claims_risk"] = utils.Round4(historyRisk)

	// Minor damage claimed over the extreme amount is always high risk
	if slices.Contains(indicators, "minor_damage_indicated") && claim.ClaimAmount > s.cfg.ExtremeAmount {
		riskScore = math.Max(riskScore, 0.95)
		if !slices.Contains(indicators, "extremely_high_claim_for_minor_damage") {
			indicators = append(indicators, "extremely_high_claim_for_minor_damage")
		}
	}

	riskScore = utils.Round4(math.Min(1.0, riskScore))
	indicators = dedupeSorted(indicators)

	vehicleValue := estimateVehicleValue(claim.Vehicle, now)
	claimToValueRatio := 0.0
	if vehicleValue > 0 {
		claimToValueRatio = utils.Round2(claim.ClaimAmount / vehicleValue)
	}

	needsReview := riskScore >= s.cfg.NeedsReviewScore
	for _, ind := range indicators {
		if reviewTriggers[ind] {
			needsReview = true
			break
		}
	}

	result := &models.FraudAnalysis{
		RiskScore:         riskScore,
		FraudIndicators:   indicators,
		RiskFactors:       riskFactors,
		Recommendation:    s.recommend(riskScore),
		NeedsReview:       needsReview,
		VehicleValue:      vehicleValue,
		ClaimToValueRatio: claimToValueRatio,
	}

	s.logger.Info("Fraud analysis completed",
		zap.String("claim_id", claim.ClaimID),
		zap.Float64("risk_score", result.RiskScore),
		zap.Bool("needs_review", result.NeedsReview),
		zap.String("recommendation", result.Recommendation),
		zap.Strings("fraud_indicators", result.FraudIndicators))

	return result
}

// checkPreviousClaims scores prior claim history: 0.1 per previous claim,
// capped at 0.5.
func (s *Scorer) checkPreviousClaims(claim *models.CanonicalClaim) (string, float64) {
	if claim.PreviousClaims <= 0 {
		return "", 0
	}
	counted := claim.PreviousClaims
	if counted > s.cfg.PreviousClaimsCap {
		counted = s.cfg.PreviousClaimsCap
	}
	risk := math.Min(0.5, s.cfg.PreviousClaimsRate*float64(counted))
	return previousClaimsTag(claim.PreviousClaims), risk
}

// recommend maps the final risk score onto a recommendation
func (s *Scorer) recommend(riskScore float64) string {
	switch {
	case riskScore >= s.cfg.RejectScore:
		return models.RecommendationReject
	case riskScore >= s.cfg.ReviewRequired:
		return models.RecommendationReviewRequired
	case riskScore >= s.cfg.ReviewRecommended:
		return models.RecommendationReviewRecommended
	default:
		return models.RecommendationApprove
	}
}

// FailClosed is the maximum-risk analysis substituted when the fraud check
// itself fails. It always forces manual review.
func FailClosed() *models.FraudAnalysis {
	return &models.FraudAnalysis{
		RiskScore:       1.0,
		FraudIndicators: []string{"error_processing_fraud_check"},
		RiskFactors:     map[string]float64{},
		Recommendation:  models.RecommendationReject,
		NeedsReview:     true,
	}
}

func previousClaimsTag(n int) string {
	return "previous_claims_" + strconv.Itoa(n)
}

// dedupeSorted returns the sorted, deduplicated indicator set
func dedupeSorted(indicators []string) []string {
	if len(indicators) == 0 {
		return []string{}
	}
	slices.Sort(indicators)
	return slices.Compact(indicators)
}

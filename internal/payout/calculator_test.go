package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/config"
	"github.com/garyjia/claims-pipeline/internal/models"
)

func testPayoutConfig() config.Payout {
	return config.Payout{
		Limits: map[string]float64{
			"auto":   50000,
			"home":   500000,
			"health": 100000,
		},
		DefaultLimit: 10000,
		Deductible:   500,
		Currency:     "USD",
	}
}

func newTestCalculator() *Calculator {
	return NewCalculator(testPayoutConfig(), zap.NewNop())
}

func payableClaim(claimType string, amount float64) *models.CanonicalClaim {
	return &models.CanonicalClaim{
		ClaimID:      "CLAIM-TEST0001",
		PolicyNumber: "POL-12345",
		ClaimType:    claimType,
		ClaimAmount:  amount,
	}
}

func coveredValidation() *models.PolicyValidationResult {
	return &models.PolicyValidationResult{
		PolicyNumber:     "POL-12345",
		IsValid:          true,
		ClaimTypeCovered: true,
		ValidationDate:   "2025-06-13",
	}
}

func cleanAnalysis() *models.FraudAnalysis {
	return &models.FraudAnalysis{
		RiskScore:       0,
		FraudIndicators: []string{},
		Recommendation:  models.RecommendationApprove,
	}
}

func TestEstimatePayable(t *testing.T) {
	calculator := newTestCalculator()

	tests := []struct {
		name           string
		claimType      string
		amount         float64
		wantApproved   float64
		wantDeductible float64
	}{
		{
			name:           "amount under the type limit",
			claimType:      "auto",
			amount:         3500,
			wantApproved:   3000,
			wantDeductible: 500,
		},
		{
			name:           "amount over the type limit is capped first",
			claimType:      "auto",
			amount:         80000,
			wantApproved:   49500,
			wantDeductible: 500,
		},
		{
			name:           "unlisted type uses the default limit",
			claimType:      "pet",
			amount:         25000,
			wantApproved:   9500,
			wantDeductible: 500,
		},
		{
			name:           "amount below the deductible floors at zero",
			claimType:      "auto",
			amount:         300,
			wantApproved:   0,
			wantDeductible: 300,
		},
		{
			name:           "fractional amounts round to cents",
			claimType:      "auto",
			amount:         1234.567,
			wantApproved:   734.57,
			wantDeductible: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := payableClaim(tt.claimType, tt.amount)

			outcome := calculator.Estimate(claim, coveredValidation(), cleanAnalysis())

			require.Equal(t, OutcomePayable, outcome.Code)
			require.NotNil(t, outcome.Estimate)
			assert.Equal(t, claim.ClaimID, outcome.Estimate.ClaimID)
			assert.Equal(t, tt.amount, outcome.Estimate.OriginalClaimAmount)
			assert.InDelta(t, tt.wantApproved, outcome.Estimate.ApprovedAmount, 1e-9)
			assert.InDelta(t, tt.wantDeductible, outcome.Estimate.DeductibleApplied, 1e-9)
			assert.Equal(t, "USD", outcome.Estimate.Currency)
		})
	}
}

func TestEstimateNotCovered(t *testing.T) {
	calculator := newTestCalculator()

	t.Run("invalid policy", func(t *testing.T) {
		validation := coveredValidation()
		validation.IsValid = false

		outcome := calculator.Estimate(payableClaim("auto", 3500), validation, cleanAnalysis())

		assert.Equal(t, OutcomeNotCovered, outcome.Code)
		assert.Nil(t, outcome.Estimate)
		assert.Contains(t, outcome.Reason, "not covered by policy")
	})

	t.Run("uncovered claim type", func(t *testing.T) {
		validation := coveredValidation()
		validation.ClaimTypeCovered = false

		outcome := calculator.Estimate(payableClaim("boat", 3500), validation, cleanAnalysis())

		assert.Equal(t, OutcomeNotCovered, outcome.Code)
		assert.Nil(t, outcome.Estimate)
	})
}

func TestEstimateNeedsReview(t *testing.T) {
	calculator := newTestCalculator()

	analysis := &models.FraudAnalysis{
		RiskScore:       0.85,
		FraudIndicators: []string{"claim_within_7_days_of_policy_start", "weekend_incident"},
		Recommendation:  models.RecommendationReviewRequired,
		NeedsReview:     true,
	}

	outcome := calculator.Estimate(payableClaim("auto", 3500), coveredValidation(), analysis)

	assert.Equal(t, OutcomeNeedsReview, outcome.Code)
	assert.Nil(t, outcome.Estimate)
	assert.Equal(t, 0.85, outcome.RiskScore)
	assert.Equal(t, analysis.FraudIndicators, outcome.Indicators)
	assert.Contains(t, outcome.Reason, "manual review")
}

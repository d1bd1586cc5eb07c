package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/internal/payout"
)

func newTestDecider() *Decider {
	return NewDecider(0.7, 0.4, zap.NewNop())
}

func payableOutcome(approved float64) payout.Outcome {
	return payout.Outcome{
		Code: payout.OutcomePayable,
		Estimate: &models.PayoutEstimate{
			ClaimID:        "CLAIM-TEST0001",
			ApprovedAmount: approved,
			Currency:       "USD",
		},
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		analysis    *models.FraudAnalysis
		outcome     payout.Outcome
		wantStatus  string
		wantError   string
		wantWarning string
		wantAmount  *float64
	}{
		{
			name: "high risk with indicators rejects",
			analysis: &models.FraudAnalysis{
				RiskScore:       0.85,
				FraudIndicators: []string{"incident_before_policy_start"},
				NeedsReview:     true,
			},
			outcome:    payout.Outcome{Code: payout.OutcomeNeedsReview},
			wantStatus: models.StatusRejected,
			wantError:  "high fraud risk",
		},
		{
			name: "medium risk with indicators requires review",
			analysis: &models.FraudAnalysis{
				RiskScore:       0.5,
				FraudIndicators: []string{"claim_within_30_days_of_policy_start"},
			},
			outcome:    payout.Outcome{Code: payout.OutcomeNeedsReview},
			wantStatus: models.StatusRequiresReview,
			wantError:  "manual review",
		},
		{
			name: "review flag alone requires review even at low risk",
			analysis: &models.FraudAnalysis{
				RiskScore:       0.3,
				FraudIndicators: []string{"suspicious_pattern_detected"},
				NeedsReview:     true,
			},
			outcome:    payableOutcome(3000),
			wantStatus: models.StatusRequiresReview,
			wantError:  "manual review",
		},
		{
			name: "weak indicators with a payable estimate approve with warning",
			analysis: &models.FraudAnalysis{
				RiskScore:       0.2,
				FraudIndicators: []string{"weekend_incident"},
			},
			outcome:     payableOutcome(3000),
			wantStatus:  models.StatusApproved,
			wantWarning: "fraud indicators",
			wantAmount:  floatPtr(3000),
		},
		{
			name: "clean claim with a payable estimate approves",
			analysis: &models.FraudAnalysis{
				RiskScore:       0,
				FraudIndicators: []string{},
			},
			outcome:    payableOutcome(3000),
			wantStatus: models.StatusApproved,
			wantAmount: floatPtr(3000),
		},
		{
			name: "clean claim without a payable estimate requires review",
			analysis: &models.FraudAnalysis{
				RiskScore:       0,
				FraudIndicators: []string{},
			},
			outcome:    payout.Outcome{Code: payout.OutcomeNotCovered},
			wantStatus: models.StatusRequiresReview,
			wantError:  "Payout estimation failed or resulted in zero amount",
		},
		{
			name: "zero approved amount is not payable",
			analysis: &models.FraudAnalysis{
				RiskScore:       0,
				FraudIndicators: []string{},
			},
			outcome:    payableOutcome(0),
			wantStatus: models.StatusRequiresReview,
			wantError:  "Payout estimation failed or resulted in zero amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &models.ClaimResult{ClaimID: "CLAIM-TEST0001"}

			newTestDecider().Decide(result, tt.analysis, tt.outcome)

			assert.Equal(t, tt.wantStatus, result.Status)
			if tt.wantError != "" {
				assert.Contains(t, result.Error, tt.wantError)
			} else {
				assert.Empty(t, result.Error)
			}
			if tt.wantWarning != "" {
				assert.Contains(t, result.Warning, tt.wantWarning)
			}
			if tt.wantAmount != nil {
				require.NotNil(t, result.ApprovedAmount)
				assert.Equal(t, *tt.wantAmount, *result.ApprovedAmount)
				assert.Equal(t, "USD", result.Currency)
			} else {
				assert.Nil(t, result.ApprovedAmount)
			}
		})
	}
}

func TestDecideReportsScoreAndIndicators(t *testing.T) {
	result := &models.ClaimResult{ClaimID: "CLAIM-TEST0001"}
	analysis := &models.FraudAnalysis{
		RiskScore:       0.95,
		FraudIndicators: []string{"incident_before_policy_start", "weekend_incident"},
		NeedsReview:     true,
	}

	newTestDecider().Decide(result, analysis, payout.Outcome{Code: payout.OutcomeNeedsReview})

	assert.Contains(t, result.Error, "0.95")
	assert.Contains(t, result.Error, "incident_before_policy_start, weekend_incident")
}

func TestAppendWarning(t *testing.T) {
	result := &models.ClaimResult{}

	appendWarning(result, "first")
	assert.Equal(t, "first", result.Warning)

	appendWarning(result, "second")
	assert.Equal(t, "first; second", result.Warning)
}

func floatPtr(v float64) *float64 { return &v }

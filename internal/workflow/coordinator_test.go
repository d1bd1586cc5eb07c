package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/config"
	"github.com/garyjia/claims-pipeline/internal/fraud"
	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/internal/policy"
)

func newTestCoordinator(t *testing.T, directory policy.Directory) *Coordinator {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)

	logger := zap.NewNop()
	if directory == nil {
		directory = policy.NewStaticDirectory(cfg.Policy.NumberPrefix, cfg.Policy.CoveredTypes)
	}

	return NewCoordinator(
		policy.NewValidator(directory, logger),
		fraud.NewScorer(cfg.Fraud, logger),
		logger,
	)
}

func coordinatorClaim() *models.CanonicalClaim {
	return &models.CanonicalClaim{
		ClaimID:         "CLAIM-TEST0001",
		PolicyNumber:    "POL-12345",
		ClaimType:       "auto",
		ClaimAmount:     3500,
		IncidentDate:    "2025-05-14",
		PolicyStartDate: "2024-09-10",
		IncidentDetails: "Collision with another vehicle at an intersection",
	}
}

func TestCoordinatorRunsBothChecks(t *testing.T) {
	coordinator := newTestCoordinator(t, nil)

	validation, analysis, err := coordinator.Run(context.Background(), coordinatorClaim(), testNow)

	require.NoError(t, err)
	require.NotNil(t, validation)
	require.NotNil(t, analysis)
	assert.True(t, validation.IsValid)
	assert.True(t, validation.ClaimTypeCovered)
	assert.Equal(t, 0.0, analysis.RiskScore)
}

func TestCoordinatorDirectoryErrorIsValidationError(t *testing.T) {
	coordinator := newTestCoordinator(t, failingDirectory{})

	validation, analysis, err := coordinator.Run(context.Background(), coordinatorClaim(), testNow)

	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Nil(t, validation)
	assert.Nil(t, analysis)
}

func TestCoordinatorDirectoryPanicBecomesError(t *testing.T) {
	coordinator := newTestCoordinator(t, panicDirectory{})

	_, _, err := coordinator.Run(context.Background(), coordinatorClaim(), testNow)

	require.Error(t, err)
	assert.False(t, models.IsValidationError(err))
	assert.Contains(t, err.Error(), "policy validation panic")
}

func TestCoordinatorNilClaimFailsClosed(t *testing.T) {
	coordinator := newTestCoordinator(t, nil)

	validation, analysis, err := coordinator.Run(context.Background(), nil, testNow)

	// Policy validation rejects the missing claim before fraud scoring matters
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Nil(t, validation)
	assert.Nil(t, analysis)
}

package policy

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/models"
)

// Validator checks claim coverage against the policy directory
type Validator struct {
	directory Directory
	logger    *zap.Logger
}

// NewValidator creates a new policy validator
func NewValidator(directory Directory, logger *zap.Logger) *Validator {
	return &Validator{
		directory: directory,
		logger:    logger,
	}
}

// Validate checks policy validity and claim-type coverage for the canonical
// claim. The result is a business record, never an error: an invalid policy
// is a valid outcome. Errors are reserved for a missing claim or a failing
// directory lookup.
func (v *Validator) Validate(ctx context.Context, claim *models.CanonicalClaim, now time.Time) (*models.PolicyValidationResult, error) {
	if claim == nil {
		return nil, models.ErrMissingClaim
	}

	record, err := v.directory.Lookup(ctx, claim.PolicyNumber)
	if err != nil {
		return nil, fmt.Errorf("policy directory lookup: %w", err)
	}

	result := &models.PolicyValidationResult{
		PolicyNumber:     claim.PolicyNumber,
		IsValid:          record.Active,
		ClaimTypeCovered: record.Covers(claim.ClaimType),
		ValidationDate:   now.Format("2006-01-02"),
	}

	v.logger.Info("Policy validation completed",
		zap.String("claim_id", claim.ClaimID),
		zap.String("policy_number", claim.PolicyNumber),
		zap.Bool("is_valid", result.IsValid),
		zap.Bool("claim_type_covered", result.ClaimTypeCovered))

	return result, nil
}

package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/pkg/utils"
)

// Normalizer turns a raw claim submission into the canonical claim record
// consumed by the rest of the pipeline.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a new normalizer
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize produces the canonical claim for one submission. Amount coercion
// failure is not fatal: the amount is reset to 0 and a warning is returned
// for the caller-visible trace.
func (n *Normalizer) Normalize(input models.ClaimInput) (*models.CanonicalClaim, string) {
	var warning string

	amount, err := utils.CoerceAmount(input.ClaimAmount)
	if err != nil {
		warning = fmt.Sprintf("invalid claim amount, reset to 0: %v", err)
		n.logger.Warn("Invalid claim amount format, setting to 0",
			zap.String("policy_number", input.PolicyNumber),
			zap.Float64("submitted_amount", input.ClaimAmount),
			zap.Error(err))
	}

	claimID := input.ClaimID
	if claimID == "" {
		claimID = GenerateClaimID()
	}

	claimType := strings.ToLower(strings.TrimSpace(input.ClaimType))
	if claimType == "" {
		claimType = "auto"
	}

	docs := input.SupportingDocuments
	if docs == nil {
		docs = []string{}
	}

	claim := &models.CanonicalClaim{
		ClaimID:             claimID,
		PolicyNumber:        input.PolicyNumber,
		ClaimType:           claimType,
		ClaimAmount:         amount,
		IncidentDate:        input.IncidentDate,
		PolicyStartDate:     input.PolicyStartDate,
		IncidentDetails:     utils.SanitizeString(input.IncidentDetails),
		SupportingDocuments: docs,
		Vehicle:             input.Vehicle,
		PreviousClaims:      input.PreviousClaims,
	}

	n.logger.Debug("Claim normalized",
		zap.String("claim_id", claim.ClaimID),
		zap.String("claim_type", claim.ClaimType),
		zap.Float64("claim_amount", claim.ClaimAmount))

	return claim, warning
}

// GenerateClaimID returns a fresh claim identifier of the form
// CLAIM-XXXXXXXX with 8 uppercase hex characters.
func GenerateClaimID() string {
	return "CLAIM-" + strings.ToUpper(uuid.NewString()[:8])
}

package models

// Claim processing status constants
const (
	StatusApproved       = "approved"
	StatusRejected       = "rejected"
	StatusRequiresReview = "requires_review"
	StatusError          = "error"
)

// StepResults collects the intermediate records of one pipeline run.
// Each slot is written exactly once by its stage and never modified after.
type StepResults struct {
	DataIngestion    *CanonicalClaim         `json:"data_ingestion,omitempty"`
	PolicyValidation *PolicyValidationResult `json:"policy_validation,omitempty"`
	FraudCheck       *FraudAnalysis          `json:"fraud_check,omitempty"`
	PayoutEstimation *PayoutEstimate         `json:"payout_estimation,omitempty"`
}

// ClaimResult is the single output record of a pipeline run
type ClaimResult struct {
	Status         string      `json:"status"`
	ClaimID        string      `json:"claim_id"`
	Steps          StepResults `json:"steps"`
	ApprovedAmount *float64    `json:"approved_amount,omitempty"`
	Currency       string      `json:"currency,omitempty"`
	Error          string      `json:"error,omitempty"`
	Warning        string      `json:"warning,omitempty"`
}

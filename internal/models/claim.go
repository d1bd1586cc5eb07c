package models

// Vehicle describes the insured vehicle on an auto claim
type Vehicle struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// ClaimInput is the raw claim submission handed to the pipeline by the caller.
// It is never mutated once submitted.
type ClaimInput struct {
	ClaimID             string   `json:"claim_id,omitempty"`
	PolicyNumber        string   `json:"policy_number"`
	ClaimType           string   `json:"claim_type,omitempty"`
	ClaimAmount         float64  `json:"claim_amount"`
	IncidentDate        string   `json:"incident_date,omitempty"`
	PolicyStartDate     string   `json:"policy_start_date,omitempty"`
	IncidentDetails     string   `json:"incident_details"`
	SupportingDocuments []string `json:"supporting_documents"`
	Vehicle             *Vehicle `json:"vehicle,omitempty"`
	PreviousClaims      int      `json:"previous_claims,omitempty"`
}

// CanonicalClaim is the normalized, pipeline-internal representation of a
// claim. Produced once by the ingest stage and read-only afterwards.
type CanonicalClaim struct {
	ClaimID             string   `json:"claim_id"`
	PolicyNumber        string   `json:"policy_number"`
	ClaimType           string   `json:"claim_type"` // lower-cased
	ClaimAmount         float64  `json:"claim_amount"`
	IncidentDate        string   `json:"incident_date"`
	PolicyStartDate     string   `json:"policy_start_date"`
	IncidentDetails     string   `json:"incident_details"`
	SupportingDocuments []string `json:"supporting_documents"`
	Vehicle             *Vehicle `json:"vehicle,omitempty"`
	PreviousClaims      int      `json:"previous_claims"`
}

// PolicyValidationResult holds the coverage check outcome for one claim
type PolicyValidationResult struct {
	PolicyNumber     string `json:"policy_number"`
	IsValid          bool   `json:"is_valid"`
	ClaimTypeCovered bool   `json:"claim_type_covered"`
	ValidationDate   string `json:"validation_date"`
}

// FraudAnalysis is the aggregate output of the fraud scoring stage
type FraudAnalysis struct {
	RiskScore         float64            `json:"risk_score"` // [0,1], 4 decimal places
	FraudIndicators   []string           `json:"fraud_indicators"`
	RiskFactors       map[string]float64 `json:"risk_factors"`
	Recommendation    string             `json:"recommendation"`
	NeedsReview       bool               `json:"needs_review"`
	VehicleValue      float64            `json:"vehicle_value,omitempty"`
	ClaimToValueRatio float64            `json:"claim_to_value_ratio,omitempty"`
}

// Recommendation values emitted by the fraud scorer
const (
	RecommendationApprove           = "approve"
	RecommendationReviewRecommended = "review_recommended"
	RecommendationReviewRequired    = "review_required"
	RecommendationReject            = "reject"
)

// PayoutEstimate is produced only for valid, covered, non-reviewed claims
type PayoutEstimate struct {
	ClaimID             string  `json:"claim_id"`
	OriginalClaimAmount float64 `json:"original_claim_amount"`
	ApprovedAmount      float64 `json:"approved_amount"`
	DeductibleApplied   float64 `json:"deductible_applied"`
	Currency            string  `json:"currency"`
}

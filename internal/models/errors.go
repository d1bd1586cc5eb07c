package models

import "errors"

// Domain errors for the claim assessment pipeline
var (
	// ErrMissingClaim aborts a run: downstream stages require the
	// canonical claim produced by ingestion
	ErrMissingClaim = errors.New("no canonical claim available")
)

// ValidationError marks a recognized validation failure. The pipeline
// boundary maps these to a rejected or requires_review status instead of
// a hard error.
type ValidationError struct {
	Stage string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Stage + " validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps err as a validation failure for the given stage
func NewValidationError(stage string, err error) *ValidationError {
	return &ValidationError{Stage: stage, Err: err}
}

// IsValidationError reports whether err is a recognized validation failure
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

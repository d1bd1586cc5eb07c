package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/garyjia/claims-pipeline/internal/fraud"
	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/internal/policy"
)

// Coordinator runs policy validation and fraud scoring concurrently over the
// same immutable canonical claim. The two tasks never write shared state;
// each fills only its own result slot, and the coordinator joins both before
// returning. A failing sibling is never cancelled.
type Coordinator struct {
	validator *policy.Validator
	scorer    *fraud.Scorer
	logger    *zap.Logger
}

// NewCoordinator creates a new validation coordinator
func NewCoordinator(validator *policy.Validator, scorer *fraud.Scorer, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		validator: validator,
		scorer:    scorer,
		logger:    logger,
	}
}

// Run executes both validations and returns the pair once both complete.
// A policy validation failure aborts the claim; a fraud scoring failure is
// downgraded to the fail-closed analysis instead, since an unreviewable
// claim must never silently auto-approve.
func (c *Coordinator) Run(ctx context.Context, claim *models.CanonicalClaim, now time.Time) (*models.PolicyValidationResult, *models.FraudAnalysis, error) {
	var (
		validation *models.PolicyValidationResult
		analysis   *models.FraudAnalysis
	)

	// Plain group, not WithContext: one task failing must not cancel the
	// sibling mid-flight.
	var g errgroup.Group

	g.Go(func() (err error) {
		// Faults here run on a different goroutine than the engine's
		// recovery boundary, so they must be converted to errors in place.
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("Policy validation panicked", zap.Any("panic", r))
				err = fmt.Errorf("policy validation panic: %v", r)
			}
		}()

		result, verr := c.validator.Validate(ctx, claim, now)
		if verr != nil {
			c.logger.Error("Policy validation failed", zap.Error(verr))
			return models.NewValidationError("policy", verr)
		}
		validation = result
		return nil
	})

	g.Go(func() error {
		// Analyze recovers its own panics and fails closed
		analysis = c.scorer.Analyze(claim, now)
		if analysis == nil {
			analysis = fraud.FailClosed()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return validation, analysis, nil
}

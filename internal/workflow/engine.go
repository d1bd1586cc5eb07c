package workflow

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/ingest"
	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/internal/payout"
)

// RunContext is the per-claim pipeline state: one slot per stage output,
// each written exactly once in stage order and immutable afterwards. The
// reference time is captured once per run so every stage observes the same
// clock.
type RunContext struct {
	Input      models.ClaimInput
	Now        time.Time
	Canonical  *models.CanonicalClaim
	Validation *models.PolicyValidationResult
	Analysis   *models.FraudAnalysis
	Outcome    *payout.Outcome
}

// Engine sequences the claim assessment pipeline:
// normalize, validate and score concurrently, estimate payout, decide.
type Engine struct {
	normalizer  *ingest.Normalizer
	coordinator *Coordinator
	calculator  *payout.Calculator
	decider     *Decider
	logger      *zap.Logger
	clock       func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the engine's time source. Used by tests and by callers
// that need reproducible runs.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine creates a new pipeline engine
func NewEngine(
	normalizer *ingest.Normalizer,
	coordinator *Coordinator,
	calculator *payout.Calculator,
	decider *Decider,
	logger *zap.Logger,
	opts ...Option,
) *Engine {
	e := &Engine{
		normalizer:  normalizer,
		coordinator: coordinator,
		calculator:  calculator,
		decider:     decider,
		logger:      logger,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process runs one claim through the full pipeline and returns its result.
// Each invocation owns its entire run state; concurrent invocations share
// nothing mutable. Expected business outcomes surface as statuses; only
// truly unexpected faults reach the recovery boundary, where they become
// status=error with the cause preserved.
func (e *Engine) Process(ctx context.Context, input models.ClaimInput) (result *models.ClaimResult) {
	now := e.clock().UTC()

	result = &models.ClaimResult{ClaimID: input.ClaimID}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Unexpected fault processing claim",
				zap.String("claim_id", result.ClaimID),
				zap.Any("panic", r))
			result.Status = models.StatusError
			result.Error = fmt.Sprintf("Unexpected error: %v\n\n%s", r, debug.Stack())
		}
	}()

	run := &RunContext{Input: input, Now: now}

	// Stage 1: normalize. Amount coercion failure downgrades to a warning.
	canonical, warning := e.normalizer.Normalize(input)
	run.Canonical = canonical
	result.ClaimID = canonical.ClaimID
	result.Steps.DataIngestion = canonical
	if warning != "" {
		appendWarning(result, warning)
	}

	// Stage 2: policy validation and fraud scoring in parallel, joined
	// before anything downstream runs.
	validation, analysis, err := e.coordinator.Run(ctx, canonical, now)
	if err != nil {
		e.fail(result, err)
		return result
	}
	run.Validation = validation
	run.Analysis = analysis
	result.Steps.PolicyValidation = validation
	result.Steps.FraudCheck = analysis

	// Stage 3: payout estimation. Non-payable outcomes are statuses, not
	// errors.
	outcome := e.calculator.Estimate(canonical, validation, analysis)
	run.Outcome = &outcome
	if outcome.Code == payout.OutcomePayable {
		result.Steps.PayoutEstimation = outcome.Estimate
	}

	// Stage 4: final decision from the accumulated signals
	e.decider.Decide(result, analysis, outcome)

	return result
}

// fail maps a pipeline-aborting error onto the result status: recognized
// validation failures become rejected or requires_review depending on
// whether the message cites validation; anything else is a hard error.
func (e *Engine) fail(result *models.ClaimResult, err error) {
	if models.IsValidationError(err) {
		if strings.Contains(strings.ToLower(err.Error()), "validation") {
			result.Status = models.StatusRejected
		} else {
			result.Status = models.StatusRequiresReview
		}
		result.Error = err.Error()
		return
	}

	result.Status = models.StatusError
	result.Error = fmt.Sprintf("Unexpected error: %v", err)
}

package worker

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/garyjia/claims-pipeline/internal/models"
)

// Processor runs one claim through the assessment pipeline. Satisfied by
// workflow.Engine.
type Processor interface {
	Process(ctx context.Context, input models.ClaimInput) *models.ClaimResult
}

// BatchProcessor fans a set of claims across a bounded number of concurrent
// pipeline runs. Each claim gets its own independent run; one claim failing
// never affects another.
type BatchProcessor struct {
	pipeline    Processor
	concurrency int
	logger      *zap.Logger
}

// NewBatchProcessor creates a batch processor with the given concurrency
func NewBatchProcessor(pipeline Processor, concurrency int, logger *zap.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		pipeline:    pipeline,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessAll processes every claim and returns results in input order.
// Pipeline runs never return errors; failures are encoded in each result's
// status, so the whole batch always completes.
func (b *BatchProcessor) ProcessAll(ctx context.Context, inputs []models.ClaimInput) []*models.ClaimResult {
	results := make([]*models.ClaimResult, len(inputs))

	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			results[i] = b.pipeline.Process(ctx, input)
			return nil
		})
	}

	// Workers only write their own slot; Wait is the join barrier
	_ = g.Wait()

	b.logger.Info("Batch processing completed",
		zap.Int("claims", len(inputs)),
		zap.Int("concurrency", b.concurrency))

	return results
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/config"
	"github.com/garyjia/claims-pipeline/internal/fraud"
	"github.com/garyjia/claims-pipeline/internal/ingest"
	"github.com/garyjia/claims-pipeline/internal/models"
	"github.com/garyjia/claims-pipeline/internal/payout"
	"github.com/garyjia/claims-pipeline/internal/policy"
	"github.com/garyjia/claims-pipeline/internal/worker"
	"github.com/garyjia/claims-pipeline/internal/workflow"
	"github.com/garyjia/claims-pipeline/pkg/utils"
)

func main() {
	// Load configuration; defaults reproduce the standard rule set when no
	// config file is given
	cfg, err := config.Load(os.Getenv("CLAIMSD_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: claimsd <claim.json> [claim.json ...]\n")
		os.Exit(2)
	}

	logger.Info("Starting claim assessment",
		zap.Int("claims", len(os.Args)-1),
		zap.Int("concurrency", cfg.Worker.Concurrency))

	// Wire the pipeline: static policy source behind a TTL cache, fraud
	// scorer, payout calculator, decision aggregator
	directory := policy.NewCachedDirectory(
		policy.NewStaticDirectory(cfg.Policy.NumberPrefix, cfg.Policy.CoveredTypes),
		cfg.Policy.CacheTTL,
		cfg.Policy.CacheSweep,
		logger,
	)

	engine := workflow.NewEngine(
		ingest.NewNormalizer(logger),
		workflow.NewCoordinator(
			policy.NewValidator(directory, logger),
			fraud.NewScorer(cfg.Fraud, logger),
			logger,
		),
		payout.NewCalculator(cfg.Payout, logger),
		workflow.NewDecider(cfg.Fraud.ReviewRequired, cfg.Fraud.ReviewRecommended, logger),
		logger,
	)

	inputs := make([]models.ClaimInput, 0, len(os.Args)-1)
	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("Failed to read claim file", zap.String("path", path), zap.Error(err))
		}
		var input models.ClaimInput
		if err := json.Unmarshal(data, &input); err != nil {
			logger.Fatal("Failed to parse claim file", zap.String("path", path), zap.Error(err))
		}
		inputs = append(inputs, input)
	}

	batch := worker.NewBatchProcessor(engine, cfg.Worker.Concurrency, logger)
	results := batch.ProcessAll(context.Background(), inputs)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	for _, result := range results {
		if err := encoder.Encode(result); err != nil {
			logger.Fatal("Failed to encode result", zap.Error(err))
		}
	}
}

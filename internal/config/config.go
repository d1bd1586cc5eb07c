package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Policy Policy `mapstructure:"policy"`
	Fraud  Fraud  `mapstructure:"fraud"`
	Payout Payout `mapstructure:"payout"`
	Worker Worker `mapstructure:"worker"`
	Logger Logger `mapstructure:"logger"`
}

// Policy holds coverage validation configuration
type Policy struct {
	NumberPrefix string        `mapstructure:"number_prefix"`
	CoveredTypes []string      `mapstructure:"covered_types"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	CacheSweep   time.Duration `mapstructure:"cache_sweep"`
}

// Fraud holds fraud scoring configuration. Defaults reproduce the standard
// rule set; phrase and vehicle tables live in the fraud package itself.
type Fraud struct {
	AmountThresholds   map[string]float64 `mapstructure:"amount_thresholds"`
	DefaultThreshold   float64            `mapstructure:"default_threshold"`
	ExtremeAmount      float64            `mapstructure:"extreme_amount"`
	RoundNumberWeight  float64            `mapstructure:"round_number_weight"`
	NeedsReviewScore   float64            `mapstructure:"needs_review_score"`
	RejectScore        float64            `mapstructure:"reject_score"`
	ReviewRequired     float64            `mapstructure:"review_required_score"`
	ReviewRecommended  float64            `mapstructure:"review_recommended_score"`
	NewPolicyWindow    int                `mapstructure:"new_policy_window_days"`
	FirstWeekWindow    int                `mapstructure:"first_week_window_days"`
	PolicyTermDays     int                `mapstructure:"policy_term_days"`
	ExpiryWindow       int                `mapstructure:"expiry_window_days"`
	LargeClaimAmount   float64            `mapstructure:"large_claim_amount"`
	MinorDamageAmount  float64            `mapstructure:"minor_damage_amount"`
	ParkingLotAmount   float64            `mapstructure:"parking_lot_amount"`
	PreviousClaimsCap  int                `mapstructure:"previous_claims_cap"`
	PreviousClaimsRate float64            `mapstructure:"previous_claims_rate"`
}

// Payout holds payout calculation configuration
type Payout struct {
	Limits       map[string]float64 `mapstructure:"limits"`
	DefaultLimit float64            `mapstructure:"default_limit"`
	Deductible   float64            `mapstructure:"deductible"`
	Currency     string             `mapstructure:"currency"`
}

// Worker holds batch processing configuration
type Worker struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Logger holds logger configuration
type Logger struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables. An empty
// path runs on defaults only, which reproduce the standard rule set.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Policy defaults
	v.SetDefault("policy.number_prefix", "POL-")
	v.SetDefault("policy.covered_types", []string{"auto", "home", "health"})
	v.SetDefault("policy.cache_ttl", 5*time.Minute)
	v.SetDefault("policy.cache_sweep", 10*time.Minute)

	// Fraud defaults
	v.SetDefault("fraud.amount_thresholds", map[string]float64{
		"auto":      15000,
		"home":      50000,
		"health":    100000,
		"jewelry":   10000,
		"theft":     25000,
		"vandalism": 15000,
	})
	v.SetDefault("fraud.default_threshold", 25000)
	v.SetDefault("fraud.extreme_amount", 100000)
	v.SetDefault("fraud.round_number_weight", 0.3)
	v.SetDefault("fraud.needs_review_score", 0.8)
	v.SetDefault("fraud.reject_score", 0.9)
	v.SetDefault("fraud.review_required_score", 0.7)
	v.SetDefault("fraud.review_recommended_score", 0.4)
	v.SetDefault("fraud.new_policy_window_days", 30)
	v.SetDefault("fraud.first_week_window_days", 7)
	v.SetDefault("fraud.policy_term_days", 365)
	v.SetDefault("fraud.expiry_window_days", 30)
	v.SetDefault("fraud.large_claim_amount", 20000)
	v.SetDefault("fraud.minor_damage_amount", 2000)
	v.SetDefault("fraud.parking_lot_amount", 5000)
	v.SetDefault("fraud.previous_claims_cap", 5)
	v.SetDefault("fraud.previous_claims_rate", 0.1)

	// Payout defaults
	v.SetDefault("payout.limits", map[string]float64{
		"auto":   50000,
		"home":   500000,
		"health": 100000,
	})
	v.SetDefault("payout.default_limit", 10000)
	v.SetDefault("payout.deductible", 500)
	v.SetDefault("payout.currency", "USD")

	// Worker defaults
	v.SetDefault("worker.concurrency", 4)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Policy.NumberPrefix == "" {
		return fmt.Errorf("policy.number_prefix is required")
	}
	if len(c.Policy.CoveredTypes) == 0 {
		return fmt.Errorf("policy.covered_types must not be empty")
	}

	if c.Fraud.RejectScore <= c.Fraud.ReviewRequired {
		return fmt.Errorf("fraud.reject_score must be greater than fraud.review_required_score")
	}
	if c.Fraud.ReviewRequired <= c.Fraud.ReviewRecommended {
		return fmt.Errorf("fraud.review_required_score must be greater than fraud.review_recommended_score")
	}
	for _, s := range []float64{c.Fraud.NeedsReviewScore, c.Fraud.RejectScore, c.Fraud.ReviewRequired, c.Fraud.ReviewRecommended} {
		if s < 0 || s > 1 {
			return fmt.Errorf("fraud score cutoffs must be between 0.0 and 1.0, got %.2f", s)
		}
	}
	if c.Fraud.NewPolicyWindow <= 0 || c.Fraud.PolicyTermDays <= 0 {
		return fmt.Errorf("fraud timing windows must be positive")
	}

	if c.Payout.Deductible < 0 {
		return fmt.Errorf("payout.deductible must not be negative")
	}
	if c.Payout.DefaultLimit <= 0 {
		return fmt.Errorf("payout.default_limit must be positive")
	}
	if c.Payout.Currency == "" {
		return fmt.Errorf("payout.currency is required")
	}

	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker.concurrency must be positive")
	}

	return nil
}

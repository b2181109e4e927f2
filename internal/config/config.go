package config

import (
	"os"
	"strconv"
	"time"

	"adlens/domain/activation"
	"adlens/domain/baseline"
	"adlens/domain/gates"
	"adlens/domain/learning"
	"adlens/domain/recommendation"
	"adlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Engine    EngineConfig
	Alerting  AlertingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EngineConfig bundles the threshold configuration for every evaluator.
// Each block starts from its domain default and applies env overrides.
type EngineConfig struct {
	Gates       gates.GateConfig
	Eligibility activation.EligibilityConfig
	Health      activation.HealthConfig
	Fatigue     activation.FatigueConfig
	Anomaly     activation.TrackingAnomalyConfig
	Baseline    baseline.Config
	Efficiency  baseline.EfficiencyConfig
	Validator   recommendation.ValidatorConfig
	Outcome     recommendation.OutcomeConfig
	Learning    learning.Config
}

// AlertingConfig holds alert debounce settings
type AlertingConfig struct {
	DebounceWindow time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:     dbURL,
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Engine: loadEngineConfig(),
		Alerting: AlertingConfig{
			DebounceWindow: getEnvDurationOrDefault("ALERT_DEBOUNCE_WINDOW", 6*time.Hour),
		},
	}
	return cfg, nil
}

func loadEngineConfig() EngineConfig {
	engine := EngineConfig{
		Gates:       gates.DefaultGateConfig(),
		Eligibility: activation.DefaultEligibilityConfig(),
		Health:      activation.DefaultHealthConfig(),
		Fatigue:     activation.DefaultFatigueConfig(),
		Anomaly:     activation.DefaultTrackingAnomalyConfig(),
		Baseline:    baseline.DefaultConfig(),
		Efficiency:  baseline.DefaultEfficiencyConfig(),
		Validator:   recommendation.DefaultValidatorConfig(),
		Outcome:     recommendation.DefaultOutcomeConfig(),
		Learning:    learning.DefaultConfig(),
	}

	engine.Gates.SpendThreshold = getEnvFloatOrDefault("GATE_SPEND_THRESHOLD", engine.Gates.SpendThreshold)
	engine.Gates.MinAge = getEnvDurationOrDefault("GATE_MIN_AGE", engine.Gates.MinAge)
	engine.Eligibility.MinConversions = getEnvInt64OrDefault("NARRATIVE_MIN_CONVERSIONS", engine.Eligibility.MinConversions)
	engine.Baseline.PromoSpendMultiplier = getEnvFloatOrDefault("BASELINE_PROMO_MULTIPLIER", engine.Baseline.PromoSpendMultiplier)
	engine.Learning.MinSamples = getEnvIntOrDefault("LEARNING_MIN_SAMPLES", engine.Learning.MinSamples)

	return engine
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"strings"

	"powersim/internal/errors"
)

// Config represents the complete study configuration
type Config struct {
	Study    StudyConfig
	Driver   DriverConfig
	Database DatabaseConfig
}

// StudyConfig holds the design and effect assumptions for the planned study
type StudyConfig struct {
	GroupSize   int
	Topics      int
	Repetitions int
	Effects     []float64 // four cell means, canonical order
	SD          float64
	Alpha       float64
}

// DriverConfig holds simulation batch settings
type DriverConfig struct {
	Simulations int
	Workers     int // 1 = sequential
}

// DatabaseConfig holds optional result persistence settings
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	effects, err := parseEffects(getEnvOrDefault("POWERSIM_EFFECTS", "-0.4,-0.2,-0.2,0"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse POWERSIM_EFFECTS")
	}

	config := &Config{
		Study: StudyConfig{
			GroupSize:   getEnvIntOrDefault("POWERSIM_GROUPSIZE", 20),
			Topics:      getEnvIntOrDefault("POWERSIM_TOPICS", 3),
			Repetitions: getEnvIntOrDefault("POWERSIM_REPETITIONS", 4),
			Effects:     effects,
			SD:          getEnvFloatOrDefault("POWERSIM_SD", 1.0),
			Alpha:       getEnvFloatOrDefault("POWERSIM_ALPHA", 0.05),
		},
		Driver: DriverConfig{
			Simulations: getEnvIntOrDefault("POWERSIM_NSIM", 1000),
			Workers:     getEnvIntOrDefault("POWERSIM_WORKERS", 1),
		},
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.Database = DatabaseConfig{URL: url, Enabled: true}
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Driver.Simulations <= 0 {
		return errors.ConfigInvalid("POWERSIM_NSIM must be a positive integer")
	}
	if config.Driver.Workers <= 0 {
		return errors.ConfigInvalid("POWERSIM_WORKERS must be a positive integer")
	}
	if config.Study.Alpha <= 0 || config.Study.Alpha >= 1 {
		return errors.ConfigInvalid("POWERSIM_ALPHA must be in (0, 1)")
	}
	return nil
}

func parseEffects(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	effects := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.ConfigInvalid("effects must be comma-separated floats: " + raw)
		}
		effects = append(effects, value)
	}
	return effects, nil
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

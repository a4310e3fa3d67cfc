package config

import (
	"os"
	"strconv"
	"strings"

	"fbmlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Numerics   NumericsConfig
}

// SimulationConfig holds grid and sweep settings
type SimulationConfig struct {
	GridSize    int
	GridStart   float64
	GridEnd     float64
	Alphas      []float64
	BatchSize   int
	Seed        int64
	Parallelism int
}

// NumericsConfig holds the accuracy/cost settings for the
// Riemann-Liouville kernel integration and the factorizer recovery policy
type NumericsConfig struct {
	Tolerance  float64
	MaxPanels  int
	PanelOrder int
	// Jitter, when positive, enables the explicit diagonal-regularization
	// retry on factorization failure. Disabled by default.
	Jitter float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	simConfig, err := loadSimulationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load simulation configuration")
	}
	config.Simulation = *simConfig

	numConfig, err := loadNumericsConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load numerics configuration")
	}
	config.Numerics = *numConfig

	return config, nil
}

func loadSimulationConfig() (*SimulationConfig, error) {
	gridSize, err := getEnvInt("FBMLAB_GRID_SIZE", 512)
	if err != nil {
		return nil, err
	}
	if gridSize < 2 {
		return nil, errors.ConfigInvalid("FBMLAB_GRID_SIZE must be >= 2")
	}

	gridStart, err := getEnvFloat("FBMLAB_GRID_START", 1e-5)
	if err != nil {
		return nil, err
	}
	gridEnd, err := getEnvFloat("FBMLAB_GRID_END", 10)
	if err != nil {
		return nil, err
	}
	if gridStart <= 0 || gridStart >= gridEnd {
		return nil, errors.ConfigInvalid("grid bounds must satisfy 0 < start < end")
	}

	alphas, err := getEnvFloats("FBMLAB_ALPHAS", []float64{0.2, 0.5, 0.8})
	if err != nil {
		return nil, err
	}
	for _, a := range alphas {
		if a <= 0 || a >= 1 {
			return nil, errors.ConfigInvalid("FBMLAB_ALPHAS entries must lie in (0,1)")
		}
	}

	batchSize, err := getEnvInt("FBMLAB_BATCH_SIZE", 100)
	if err != nil {
		return nil, err
	}
	if batchSize < 1 {
		return nil, errors.ConfigInvalid("FBMLAB_BATCH_SIZE must be positive")
	}

	seed, err := getEnvInt64("FBMLAB_SEED", 42)
	if err != nil {
		return nil, err
	}
	parallelism, err := getEnvInt("FBMLAB_PARALLELISM", 0)
	if err != nil {
		return nil, err
	}

	return &SimulationConfig{
		GridSize:    gridSize,
		GridStart:   gridStart,
		GridEnd:     gridEnd,
		Alphas:      alphas,
		BatchSize:   batchSize,
		Seed:        seed,
		Parallelism: parallelism,
	}, nil
}

func loadNumericsConfig() (*NumericsConfig, error) {
	tolerance, err := getEnvFloat("FBMLAB_QUAD_TOLERANCE", 1e-9)
	if err != nil {
		return nil, err
	}
	if tolerance <= 0 {
		return nil, errors.ConfigInvalid("FBMLAB_QUAD_TOLERANCE must be positive")
	}

	maxPanels, err := getEnvInt("FBMLAB_QUAD_MAX_PANELS", 20000)
	if err != nil {
		return nil, err
	}
	panelOrder, err := getEnvInt("FBMLAB_QUAD_PANEL_ORDER", 15)
	if err != nil {
		return nil, err
	}
	jitter, err := getEnvFloat("FBMLAB_CHOLESKY_JITTER", 0)
	if err != nil {
		return nil, err
	}
	if jitter < 0 {
		return nil, errors.ConfigInvalid("FBMLAB_CHOLESKY_JITTER must be non-negative")
	}

	return &NumericsConfig{
		Tolerance:  tolerance,
		MaxPanels:  maxPanels,
		PanelOrder: panelOrder,
		Jitter:     jitter,
	}, nil
}

// Environment variable helpers

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return parsed, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number")
	}
	return parsed, nil
}

func getEnvFloats(key string, fallback []float64) ([]float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.ConfigInvalid(key + " must be a comma-separated list of numbers")
		}
		out = append(out, parsed)
	}
	return out, nil
}

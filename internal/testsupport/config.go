package testsupport

import (
	"path/filepath"
	"testing"

	"vendormatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithFuzzyThreshold overrides the matcher's fuzzy threshold on the test config.
func WithFuzzyThreshold(threshold float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.FuzzyThreshold = threshold
	}
}

// WithFuzzyDisabled turns off the fuzzy phase on the test config.
func WithFuzzyDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.FuzzyEnabled = false
	}
}

package config

import (
	"runtime"
	"time"
)

// Config represents the complete symextract configuration.
// It can be loaded from .symextract/config.yml with environment variable overrides.
type Config struct {
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ExtractConfig configures per-file extraction.
type ExtractConfig struct {
	Fallback string `yaml:"fallback" mapstructure:"fallback"` // "python" or "none"
}

// ScanConfig configures batch extraction over many files.
type ScanConfig struct {
	Ignore      []string `yaml:"ignore" mapstructure:"ignore"`           // glob patterns pruned from directory walks
	Concurrency int      `yaml:"concurrency" mapstructure:"concurrency"` // parallel workers, at least 1
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// LogConfig configures diagnostics written to stderr.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Extract: ExtractConfig{
			Fallback: "python",
		},
		Scan: ScanConfig{
			Ignore: []string{
				".git/**",
				"node_modules/**",
				"vendor/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
			},
			Concurrency: runtime.NumCPU(),
		},
		Watch: WatchConfig{
			DebounceMS: 300,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Debounce returns the watch debounce as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

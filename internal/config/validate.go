package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/symextract/internal/extractor"
)

var (
	// ErrInvalidFallback indicates an unknown fallback policy
	ErrInvalidFallback = errors.New("invalid fallback policy")

	// ErrInvalidConcurrency indicates a worker count below one
	ErrInvalidConcurrency = errors.New("invalid concurrency")

	// ErrInvalidIgnorePattern indicates an ignore glob that does not compile
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Validate checks that the configuration is valid and complete.
// Every problem is reported; each wraps one of the sentinel errors above.
func Validate(cfg *Config) error {
	var errs []error

	if !extractor.FallbackPolicy(cfg.Extract.Fallback).Valid() {
		errs = append(errs, fmt.Errorf("%w: must be 'python' or 'none', got '%s'", ErrInvalidFallback, cfg.Extract.Fallback))
	}

	errs = append(errs, validateScan(&cfg.Scan)...)

	if cfg.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMS))
	}

	errs = append(errs, validateLog(&cfg.Log)...)

	return errors.Join(errs...)
}

func validateScan(cfg *ScanConfig) []error {
	var errs []error

	if cfg.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConcurrency, cfg.Concurrency))
	}

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidIgnorePattern, pattern, err))
		}
	}

	return errs
}

func validateLog(cfg *LogConfig) []error {
	var errs []error

	switch strings.ToLower(cfg.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'text' or 'json', got '%s'", ErrInvalidLogFormat, cfg.Format))
	}

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: got '%s'", ErrInvalidLogLevel, cfg.Level))
	}

	return errs
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() reads .symextract/config.yml and .symextract/config.yaml
// - Partial config files merge with defaults
// - Environment variables override config file values and defaults
// - Explicit config files must exist
// - Malformed YAML and invalid values are errors
// - Validate() reports every problem, each matching its sentinel error

func writeConfig(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, ".symextract")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "python", cfg.Extract.Fallback)
	assert.Equal(t, runtime.NumCPU(), cfg.Scan.Concurrency)
	assert.Contains(t, cfg.Scan.Ignore, "node_modules/**")
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFiles(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"config.yml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeConfig(t, root, name, `
extract:
  fallback: none
scan:
  ignore:
    - "third_party/**"
  concurrency: 3
log:
  level: debug
  format: json
`)

			cfg, err := NewLoader(root).Load()
			require.NoError(t, err)

			assert.Equal(t, "none", cfg.Extract.Fallback)
			assert.Equal(t, []string{"third_party/**"}, cfg.Scan.Ignore)
			assert.Equal(t, 3, cfg.Scan.Concurrency)
			assert.Equal(t, "debug", cfg.Log.Level)
			assert.Equal(t, "json", cfg.Log.Format)

			// Not in the file, so defaults apply.
			assert.Equal(t, Default().Watch.DebounceMS, cfg.Watch.DebounceMS)
		})
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	root := t.TempDir()
	writeConfig(t, root, "config.yml", `
extract:
  fallback: none
scan:
  concurrency: 2
`)

	t.Setenv("SYMEXTRACT_EXTRACT_FALLBACK", "python")
	t.Setenv("SYMEXTRACT_SCAN_CONCURRENCY", "6")
	t.Setenv("SYMEXTRACT_WATCH_DEBOUNCE_MS", "50")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, "python", cfg.Extract.Fallback)
	assert.Equal(t, 6, cfg.Scan.Concurrency)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce())
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvironmentIgnoreList(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	t.Setenv("SYMEXTRACT_SCAN_IGNORE", "gen/**,*.pb.go")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"gen/**", "*.pb.go"}, cfg.Scan.Ignore)
}

func TestNewFileLoader(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0o644))

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)

	_, err = NewFileLoader(filepath.Join(root, "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestLoad_ReturnsErrorForMalformedYaml(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, "config.yml", "scan:\n  concurrency: [unterminated\n")

	_, err := NewLoader(root).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_ReturnsErrorForInvalidValues(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, "config.yml", "extract:\n  fallback: ruby\n")

	_, err := NewLoader(root).Load()
	require.ErrorIs(t, err, ErrInvalidFallback)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown fallback", func(c *Config) { c.Extract.Fallback = "java" }, ErrInvalidFallback},
		{"empty fallback", func(c *Config) { c.Extract.Fallback = "" }, ErrInvalidFallback},
		{"zero concurrency", func(c *Config) { c.Scan.Concurrency = 0 }, ErrInvalidConcurrency},
		{"bad ignore glob", func(c *Config) { c.Scan.Ignore = []string{"[oops"} }, ErrInvalidIgnorePattern},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, ErrInvalidDebounce},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Extract.Fallback = "java"
	cfg.Scan.Concurrency = -2
	cfg.Log.Format = "xml"

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFallback)
	assert.ErrorIs(t, err, ErrInvalidConcurrency)
	assert.ErrorIs(t, err, ErrInvalidLogFormat)
	assert.NotErrorIs(t, err, ErrInvalidLogLevel)
}

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/symextract/internal/config"
	"github.com/mvp-joe/symextract/internal/extractor"
	"github.com/mvp-joe/symextract/internal/logging"
	"github.com/mvp-joe/symextract/internal/scan"
)

var (
	cfgFile string
	verbose bool

	// appConfig is populated by initConfig before any command runs.
	appConfig *config.Config
	configErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "symextract",
	Short: "Extract symbols from source code with tree-sitter",
	Long: `symextract parses C, C++, Python, JavaScript, TypeScript and Go sources and
reports the functions, classes, structs, variables and other declarations they
contain, with line ranges.

It runs as a command-line tool or as an MCP server for coding assistants.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .symextract/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newExtractSymbolsCmd())
}

// initConfig loads configuration from the --config file or from
// .symextract/config.yml, with SYMEXTRACT_* environment overrides.
func initConfig() {
	if cfgFile != "" {
		appConfig, configErr = config.NewFileLoader(cfgFile).Load()
	} else {
		appConfig, configErr = config.LoadConfig()
	}
	if configErr != nil {
		configErr = fmt.Errorf("failed to load configuration: %w", configErr)
	}
}

// runtimeConfig returns the loaded configuration, falling back to defaults
// when commands run without cobra initialization (as in tests).
func runtimeConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	if appConfig == nil {
		return config.Default(), nil
	}
	return appConfig, nil
}

// newLogger builds the stderr logger for cfg. --verbose forces debug level.
func newLogger(cfg *config.Config) *slog.Logger {
	logCfg := logging.DefaultConfig("symextract")
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format
	if verbose {
		logCfg.Level = slog.LevelDebug
	}
	return logging.New(logCfg)
}

// scanOptions maps configuration onto batch options.
func scanOptions(cfg *config.Config, logger *slog.Logger) scan.Options {
	return scan.Options{
		Fallback:    extractor.FallbackPolicy(cfg.Extract.Fallback),
		Ignore:      cfg.Scan.Ignore,
		Concurrency: cfg.Scan.Concurrency,
		Logger:      logger,
	}
}

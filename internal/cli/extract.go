package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/symextract/internal/scan"
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
	"github.com/mvp-joe/symextract/internal/watcher"
)

// extractOptions holds the extract-symbols flags.
type extractOptions struct {
	filePath  string
	kinds     string
	nameRegex string
	startLine int
	endLine   int
	pretty    bool
	watch     bool
	quiet     bool
	grammar   string
}

func newExtractSymbolsCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract-symbols",
		Short: "Extract symbols from files, directories or glob patterns",
		Long: `Extract symbols from source files.

The --file-path argument may be a single file, a directory (searched
recursively) or a glob pattern with ** and brace expansion.

Examples:
  symextract extract-symbols -f src/main.cpp --pretty
  symextract extract-symbols -f 'src/**/*.{h,hpp,cpp}' -s class,struct
  symextract extract-symbols -f . --name-regex '^Test' --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtractSymbols(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.filePath, "file-path", "f", "", "file, directory or glob pattern to extract from")
	flags.StringVarP(&opts.kinds, "symbols", "s", "", "comma-separated kinds to keep: "+kindList())
	flags.StringVar(&opts.nameRegex, "name-regex", "", "keep symbols whose name matches this regular expression")
	flags.IntVar(&opts.startLine, "start-line", 0, "keep symbols starting on or after this line")
	flags.IntVar(&opts.endLine, "end-line", 0, "keep symbols starting on or before this line")
	flags.BoolVarP(&opts.pretty, "pretty", "p", false, "human-readable output instead of JSON")
	flags.BoolVar(&opts.watch, "watch", false, "re-extract changed files until interrupted")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")
	flags.StringVar(&opts.grammar, "grammar", "", "parse every file with this grammar: "+strings.Join(grammarNames(), ", "))
	_ = cmd.MarkFlagRequired("file-path")

	return cmd
}

func runExtractSymbols(cmd *cobra.Command, opts *extractOptions) error {
	req, err := opts.request(cmd)
	if err != nil {
		return err
	}

	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	progress := newProgressReporter(cmd.ErrOrStderr(), opts.quiet || opts.watch)
	scanOpts := scanOptions(cfg, logger)
	scanOpts.Progress = progress.Func()
	scanner := scan.New(scanOpts)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := scanner.Run(ctx, req)
	progress.Finish()
	if err != nil {
		return err
	}
	if err := opts.write(cmd, report); err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndExtract(ctx, cmd, opts, scanner, req, cfg.Scan.Ignore, cfg.Watch.Debounce())
}

// request validates flags and converts them into a scan request.
func (o *extractOptions) request(cmd *cobra.Command) (scan.Request, error) {
	req := scan.Request{
		PathPattern: o.filePath,
		NameRegex:   o.nameRegex,
		Grammar:     o.grammar,
	}

	filter, err := symbols.ParseKindSet(strings.ToLower(o.kinds))
	if err != nil {
		return req, fmt.Errorf("invalid --symbols value: %w (valid: %s)", err, kindList())
	}
	req.Filter = filter

	if cmd.Flags().Changed("start-line") {
		if o.startLine < 1 {
			return req, fmt.Errorf("--start-line must be at least 1")
		}
		req.StartLine = &o.startLine
	}
	if cmd.Flags().Changed("end-line") {
		if o.endLine < 1 {
			return req, fmt.Errorf("--end-line must be at least 1")
		}
		req.EndLine = &o.endLine
	}
	if req.StartLine != nil && req.EndLine != nil && *req.StartLine > *req.EndLine {
		return req, fmt.Errorf("--start-line (%d) must not exceed --end-line (%d)", *req.StartLine, *req.EndLine)
	}

	return req, nil
}

func (o *extractOptions) write(cmd *cobra.Command, report *scan.Report) error {
	writeFileErrors(cmd.ErrOrStderr(), report.Errors)
	if o.pretty {
		return writePretty(cmd.OutOrStdout(), report.Files)
	}
	return writeJSON(cmd.OutOrStdout(), report.Files)
}

// watchAndExtract re-runs extraction for changed files that the request's
// pattern still selects, until ctx is cancelled.
func watchAndExtract(ctx context.Context, cmd *cobra.Command, opts *extractOptions, scanner *scan.Scanner, req scan.Request, ignore []string, debounce time.Duration) error {
	extensions := syntax.Extensions()
	if opts.grammar != "" {
		extensions = nil
	}

	fw, err := watcher.NewFileWatcher([]string{watchRoot(req.PathPattern)}, watcher.Options{
		Extensions: extensions,
		Ignore:     ignore,
		Debounce:   debounce,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fw.Stop()

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Watching %s for changes (Ctrl+C to stop)\n", req.PathPattern)

	err = fw.Start(ctx, func(changed []string) {
		selected, err := selectChanged(req.PathPattern, ignore, changed)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: %v\n", err)
			return
		}
		if len(selected) == 0 {
			return
		}

		report, err := scanner.RunFiles(ctx, selected, req)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: %v\n", err)
			return
		}
		if err := opts.write(cmd, report); err != nil {
			fmt.Fprintf(errOut, "Warning: %v\n", err)
		}
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

// watchRoot is the directory to watch for pattern: the directory itself, a
// file's parent, or the static prefix of a glob.
func watchRoot(pattern string) string {
	if info, err := os.Stat(pattern); err == nil {
		if info.IsDir() {
			return pattern
		}
		return filepath.Dir(pattern)
	}
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

// selectChanged keeps the changed files that pattern currently resolves to.
func selectChanged(pattern string, ignore, changed []string) ([]string, error) {
	resolved, err := scan.Resolve(pattern, ignore)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(resolved))
	for _, path := range resolved {
		if abs, err := filepath.Abs(path); err == nil {
			wanted[abs] = true
		}
	}

	var out []string
	for _, path := range changed {
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if wanted[abs] {
			out = append(out, path)
		}
	}
	return out, nil
}

func kindList() string {
	kinds := symbols.AllKinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func grammarNames() []string {
	return []string{
		syntax.GrammarC,
		syntax.GrammarCpp,
		syntax.GrammarPython,
		syntax.GrammarJavaScript,
		syntax.GrammarTypeScript,
		syntax.GrammarGo,
		syntax.GrammarRust,
	}
}

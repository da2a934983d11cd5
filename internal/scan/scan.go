// Package scan resolves path patterns and extracts symbols from every matched
// file in parallel, producing the per-file projection served by the CLI and
// the MCP tool.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/symextract/internal/extractor"
	"github.com/mvp-joe/symextract/internal/logging"
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// ErrInvalidRegex is returned when a request's name regex does not compile.
var ErrInvalidRegex = errors.New("invalid name regex")

// Request selects files and narrows the symbols reported for them.
type Request struct {
	PathPattern string
	Filter      symbols.KindSet
	StartLine   *int
	EndLine     *int
	NameRegex   string

	// Grammar, when set, parses every resolved file with the named grammar.
	Grammar string
}

// FileSymbols groups the symbols found in one file.
type FileSymbols struct {
	Filename string         `json:"filename"`
	Symbols  []symbols.View `json:"symbols"`
}

// FileError records a file that could not be read or parsed.
type FileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// Report is the result of a scan.
type Report struct {
	Files  []FileSymbols `json:"files"`
	Errors []FileError   `json:"errors,omitempty"`
}

// ProgressFunc is called after each file with the number processed so far.
// Calls are serialized.
type ProgressFunc func(done, total int)

// Options configures a Scanner.
type Options struct {
	Fallback    extractor.FallbackPolicy
	Ignore      []string
	Concurrency int
	Logger      *slog.Logger
	Progress    ProgressFunc
}

// Scanner runs symbol extraction across many files.
type Scanner struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Scanner. Concurrency below one means one worker.
func New(opts Options) *Scanner {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Scanner{opts: opts, logger: logger}
}

// Run resolves req.PathPattern and extracts symbols from every file found.
func (s *Scanner) Run(ctx context.Context, req Request) (*Report, error) {
	paths, err := resolve(req.PathPattern, s.opts.Ignore, s.logger)
	if err != nil {
		return nil, err
	}
	return s.RunFiles(ctx, paths, req)
}

// RunFiles extracts symbols from paths, ignoring req.PathPattern.
//
// Files without a grammar are skipped. A file that cannot be read or parsed
// is recorded in Report.Errors and never aborts the batch. Files with no
// remaining symbols are omitted.
func (s *Scanner) RunFiles(ctx context.Context, paths []string, req Request) (*Report, error) {
	var nameRe *regexp.Regexp
	if req.NameRegex != "" {
		re, err := regexp.Compile(req.NameRegex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
		}
		nameRe = re
	}

	if req.Grammar != "" {
		if _, ok := syntax.GrammarByName(req.Grammar); !ok {
			return nil, fmt.Errorf("%w: %q", extractor.ErrUnknownGrammar, req.Grammar)
		}
	}

	candidates := s.candidates(paths, req.Grammar)
	s.logger.Debug("scanning files", "pattern", req.PathPattern, "resolved", len(paths), "candidates", len(candidates))

	var (
		mu     sync.Mutex
		report = &Report{Files: []FileSymbols{}}
		done   int
	)

	record := func(fs *FileSymbols, fe *FileError) {
		mu.Lock()
		defer mu.Unlock()
		if fs != nil {
			report.Files = append(report.Files, *fs)
		}
		if fe != nil {
			report.Errors = append(report.Errors, *fe)
		}
		done++
		if s.opts.Progress != nil {
			s.opts.Progress(done, len(candidates))
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan string)

	g.Go(func() error {
		defer close(jobs)
		for _, path := range candidates {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	workers := min(s.opts.Concurrency, max(len(candidates), 1))
	for range workers {
		g.Go(func() error {
			// Parsers are not safe for concurrent use; each worker owns one extractor.
			ex := extractor.New(extractor.Options{Fallback: s.opts.Fallback, Logger: s.logger})
			defer ex.Close()

			for path := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				fs, err := s.scanFile(ex, path, req, nameRe)
				if err != nil {
					s.logger.Warn("failed to extract symbols", "path", path, "error", err)
					record(nil, &FileError{Filename: path, Error: err.Error()})
					continue
				}
				record(fs, nil)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Filename < report.Files[j].Filename
	})
	sort.Slice(report.Errors, func(i, j int) bool {
		return report.Errors[i].Filename < report.Errors[j].Filename
	})
	return report, nil
}

// candidates keeps the paths that a grammar can parse.
func (s *Scanner) candidates(paths []string, grammar string) []string {
	if grammar != "" {
		return paths
	}
	var out []string
	for _, path := range paths {
		if _, ok := syntax.GrammarFor(filepath.Ext(path)); ok {
			out = append(out, path)
		}
	}
	return out
}

// scanFile extracts and projects one file. A nil result means no symbols survived.
func (s *Scanner) scanFile(ex *extractor.Extractor, path string, req Request, nameRe *regexp.Regexp) (*FileSymbols, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var result *extractor.Result
	if req.Grammar != "" {
		result, err = ex.ExtractAs(source, path, req.Grammar, req.Filter)
	} else {
		result, err = ex.Extract(source, path, req.Filter)
	}
	if err != nil {
		return nil, err
	}

	syms := symbols.FilterLines(result.Symbols, req.StartLine, req.EndLine)

	views := make([]symbols.View, 0, len(syms))
	for _, sym := range syms {
		if nameRe != nil && !nameRe.MatchString(sym.Name) {
			continue
		}
		views = append(views, sym.View())
	}

	if len(views) == 0 {
		return nil, nil
	}
	return &FileSymbols{Filename: path, Symbols: views}, nil
}

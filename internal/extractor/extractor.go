// Package extractor selects a grammar and a language extractor for a file,
// runs one parse-and-walk cycle, and applies the kind filter.
package extractor

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mvp-joe/symextract/internal/extractor/languages"
	"github.com/mvp-joe/symextract/internal/logging"
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// FallbackPolicy decides what happens when a file has a grammar but no
// dedicated extractor.
type FallbackPolicy string

const (
	// FallbackPython walks the tree with the Python extractor.
	FallbackPython FallbackPolicy = "python"
	// FallbackNone reports no symbols.
	FallbackNone FallbackPolicy = "none"
)

// Valid reports whether p is a known policy.
func (p FallbackPolicy) Valid() bool {
	return p == FallbackPython || p == FallbackNone
}

// Options configures an Extractor.
type Options struct {
	Fallback FallbackPolicy
	Logger   *slog.Logger
}

// Result is the outcome of extracting one file.
type Result struct {
	Path    string
	Grammar string
	Symbols []symbols.Symbol

	// FallbackUsed is set when no dedicated extractor exists for the grammar.
	FallbackUsed bool

	// Unsupported is set when no grammar exists for the extension.
	Unsupported bool
}

// Extractor turns source files into symbols.
// It keeps one parser per grammar and is not safe for concurrent use.
type Extractor struct {
	fallback FallbackPolicy
	logger   *slog.Logger
	parsers  map[string]*syntax.Parser
}

// New creates an extractor. Zero options mean the Python fallback and a
// discarding logger.
func New(opts Options) *Extractor {
	if opts.Fallback == "" {
		opts.Fallback = FallbackPython
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Extractor{
		fallback: opts.Fallback,
		logger:   opts.Logger,
		parsers:  make(map[string]*syntax.Parser),
	}
}

// Extract parses source with the grammar chosen by path's extension and
// returns the symbols whose kind is in filter. A nil filter keeps everything.
func (e *Extractor) Extract(source []byte, path string, filter symbols.KindSet) (*Result, error) {
	g, ok := syntax.GrammarFor(filepath.Ext(path))
	if !ok {
		e.logger.Debug("unsupported file extension", "path", path)
		return &Result{Path: path, Unsupported: true}, nil
	}
	return e.extract(source, path, g, filter)
}

// ExtractAs parses and walks source as the named grammar regardless of
// path's extension.
func (e *Extractor) ExtractAs(source []byte, path, grammar string, filter symbols.KindSet) (*Result, error) {
	g, ok := syntax.GrammarByName(grammar)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, grammar)
	}
	return e.extract(source, path, g, filter)
}

func (e *Extractor) extract(source []byte, path string, g syntax.Grammar, filter symbols.KindSet) (*Result, error) {
	result := &Result{Path: path, Grammar: g.Name}

	visitor, ok := VisitorForGrammar(g.Name)
	if !ok {
		result.FallbackUsed = true
		e.logger.Debug("no dedicated extractor, using fallback",
			"path", path, "grammar", g.Name, "policy", string(e.fallback))
		if e.fallback == FallbackNone {
			return result, nil
		}
		visitor = languages.NewPythonExtractor()
	}

	parser, err := e.parser(g)
	if err != nil {
		return nil, err
	}

	syms, err := ExtractWith(parser, visitor, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result.Symbols = symbols.Filter(syms, filter)
	return result, nil
}

func (e *Extractor) parser(g syntax.Grammar) (*syntax.Parser, error) {
	if p, ok := e.parsers[g.Name]; ok {
		return p, nil
	}
	p, err := syntax.NewParser(g)
	if err != nil {
		return nil, err
	}
	e.parsers[g.Name] = p
	return p, nil
}

// Close releases every cached parser.
func (e *Extractor) Close() {
	for name, p := range e.parsers {
		p.Close()
		delete(e.parsers, name)
	}
}

// ExtractWith runs one parse-and-walk cycle: parse source, walk the whole
// tree with visitor and return what it collected.
func ExtractWith(parser *syntax.Parser, visitor languages.Visitor, source []byte) ([]symbols.Symbol, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	visitor.Visit(tree.Root(), source)
	return visitor.Symbols(), nil
}

// VisitorFor returns a fresh dedicated extractor for ext, if one exists.
// Extensions are matched case-sensitively.
func VisitorFor(ext string) (languages.Visitor, bool) {
	g, ok := syntax.GrammarFor(ext)
	if !ok {
		return nil, false
	}
	return VisitorForGrammar(g.Name)
}

// VisitorForGrammar returns a fresh dedicated extractor for the named
// grammar. Grammars without one (rust) report false.
func VisitorForGrammar(name string) (languages.Visitor, bool) {
	switch name {
	case syntax.GrammarC, syntax.GrammarCpp:
		return languages.NewCppExtractor(), true
	case syntax.GrammarPython:
		return languages.NewPythonExtractor(), true
	case syntax.GrammarJavaScript:
		return languages.NewJavaScriptExtractor(), true
	case syntax.GrammarTypeScript:
		return languages.NewTypeScriptExtractor(), true
	case syntax.GrammarGo:
		return languages.NewGoExtractor(), true
	}
	return nil, false
}

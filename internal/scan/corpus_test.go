package scan

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/symextract/internal/extractor"
	"github.com/mvp-joe/symextract/internal/symbols"
)

// Test Plan for the testdata corpus:
// - Every supported language in testdata/code yields the expected symbols
// - Brace globs select a subset of the corpus
// - Files handled by the fallback (Rust) are parsed but contribute nothing

var corpusRoot = filepath.Join("..", "..", "testdata", "code")

func view(name string, kind symbols.Kind, start, end int) symbols.View {
	return symbols.View{Name: name, Kind: kind, StartLine: start, EndLine: end}
}

func TestScanner_Corpus(t *testing.T) {
	t.Parallel()

	report, err := New(Options{Concurrency: 4}).Run(context.Background(), Request{PathPattern: corpusRoot})
	require.NoError(t, err)
	require.Empty(t, report.Errors)

	got := make(map[string][]symbols.View)
	for _, f := range report.Files {
		r, err := filepath.Rel(corpusRoot, f.Filename)
		require.NoError(t, err)
		got[filepath.ToSlash(r)] = f.Symbols
	}

	want := map[string][]symbols.View{
		"cpp/shapes.cpp": {
			view("Shape", symbols.KindClass, 3, 6),
			view("Point", symbols.KindStruct, 8, 11),
			view("distance", symbols.KindFunction, 13, 13),
			view("distance", symbols.KindFunction, 15, 17),
			view("shapeCount", symbols.KindVariable, 19, 19),
		},
		"go/simple.go": {
			view("globalConfig", symbols.KindVariable, 13, 13),
			view("Config", symbols.KindStruct, 15, 18),
			view("Handler", symbols.KindStruct, 20, 22),
			view("NewHandler", symbols.KindFunction, 24, 26),
			view("ServeHTTP", symbols.KindFunction, 28, 30),
		},
		"javascript/widget.js": {
			view("DEFAULT_COLOR", symbols.KindVariable, 1, 1),
			view("Widget", symbols.KindClass, 3, 7),
			view("render", symbols.KindMethod, 4, 6),
			view("createWidget", symbols.KindFunction, 9, 11),
		},
		"python/app.py": {
			view("Application", symbols.KindClass, 4, 9),
			view("__init__", symbols.KindFunction, 5, 6),
			view("run", symbols.KindFunction, 8, 9),
			view("main", symbols.KindFunction, 12, 13),
		},
		"typescript/types.ts": {
			view("Shape", symbols.KindInterface, 1, 3),
			view("Color", symbols.KindEnum, 5, 8),
			view("Id", symbols.KindType, 10, 10),
			view("describe", symbols.KindFunction, 12, 14),
		},
	}
	assert.Equal(t, want, got)
}

func TestScanner_CorpusBraceGlob(t *testing.T) {
	t.Parallel()

	pattern := filepath.ToSlash(corpusRoot) + "/**/*.{py,ts}"
	report, err := New(Options{}).Run(context.Background(), Request{
		PathPattern: pattern,
		Filter:      symbols.NewKindSet(symbols.KindFunction),
	})
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, "app.py", filepath.Base(report.Files[0].Filename))
	assert.Equal(t, "types.ts", filepath.Base(report.Files[1].Filename))
	assert.Len(t, report.Files[0].Symbols, 3)
	assert.Equal(t, []symbols.View{view("describe", symbols.KindFunction, 12, 14)}, report.Files[1].Symbols)
}

func TestScanner_CorpusFallbackFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(corpusRoot, "rust", "lib.rs")
	for _, policy := range []extractor.FallbackPolicy{extractor.FallbackPython, extractor.FallbackNone} {
		report, err := New(Options{Fallback: policy}).Run(context.Background(), Request{PathPattern: path})
		require.NoError(t, err, policy)
		assert.Empty(t, report.Files, policy)
		assert.Empty(t, report.Errors, policy)
	}
}

package languages

import (
	"testing"

	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
	"github.com/stretchr/testify/require"
)

// walk parses source with the grammar registered for ext and runs v over it.
func walk(t *testing.T, ext string, v Visitor, source string) []symbols.Symbol {
	t.Helper()

	g, ok := syntax.GrammarFor(ext)
	require.True(t, ok, "no grammar for %s", ext)

	p, err := syntax.NewParser(g)
	require.NoError(t, err)
	defer p.Close()

	tree, err := p.Parse([]byte(source))
	require.NoError(t, err)
	defer tree.Close()

	v.Visit(tree.Root(), []byte(source))
	return v.Symbols()
}

func ofKind(syms []symbols.Symbol, kind symbols.Kind) []symbols.Symbol {
	var out []symbols.Symbol
	for _, s := range syms {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func names(syms []symbols.Symbol) []string {
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		out = append(out, s.Name)
	}
	return out
}

func find(t *testing.T, syms []symbols.Symbol, name string) symbols.Symbol {
	t.Helper()
	for _, s := range syms {
		if s.Name == name {
			return s
		}
	}
	require.Failf(t, "symbol not found", "no symbol named %q in %v", name, names(syms))
	return symbols.Symbol{}
}

func textOf(source string, r *symbols.Range) string {
	if r == nil {
		return ""
	}
	return source[r.Start:r.End]
}

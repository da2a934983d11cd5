package languages

import (
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// PythonExtractor extracts functions and classes from Python syntax trees.
// Methods are reported as functions. It is also the fallback extractor for
// grammars without a dedicated one.
type PythonExtractor struct {
	walker
}

// NewPythonExtractor creates a Python extractor.
func NewPythonExtractor() *PythonExtractor {
	e := &PythonExtractor{}
	e.match = matchPython
	return e
}

func matchPython(n syntax.Node, source []byte) (symbols.Symbol, bool) {
	switch n.Kind() {
	case "function_definition":
		return extractNamed(n, source, symbols.KindFunction, "body")
	case "class_definition":
		return extractNamed(n, source, symbols.KindClass, "body")
	}
	return symbols.Symbol{}, false
}

package languages

import (
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// JavaScriptExtractor extracts symbols from JavaScript syntax trees.
type JavaScriptExtractor struct {
	walker
}

// NewJavaScriptExtractor creates a JavaScript extractor.
func NewJavaScriptExtractor() *JavaScriptExtractor {
	e := &JavaScriptExtractor{}
	e.match = matchJavaScript
	return e
}

func matchJavaScript(n syntax.Node, source []byte) (symbols.Symbol, bool) {
	switch n.Kind() {
	case "function_declaration", "generator_function_declaration":
		return extractNamed(n, source, symbols.KindFunction, "body")
	case "function_expression", "function":
		// Anonymous expressions have no name field and are skipped; the
		// binding they are assigned to is reported as a variable.
		return extractNamed(n, source, symbols.KindFunction, "body")
	case "class_declaration":
		return extractNamed(n, source, symbols.KindClass, "body")
	case "method_definition":
		return extractNamed(n, source, symbols.KindMethod, "body")
	case "variable_declarator":
		return extractNamed(n, source, symbols.KindVariable, "value")
	}
	return symbols.Symbol{}, false
}

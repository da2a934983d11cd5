package languages

import (
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// GoExtractor extracts functions, methods, struct types and variables from Go
// syntax trees. Methods are reported as functions.
type GoExtractor struct {
	walker
}

// NewGoExtractor creates a Go extractor.
func NewGoExtractor() *GoExtractor {
	e := &GoExtractor{}
	e.match = matchGo
	return e
}

func matchGo(n syntax.Node, source []byte) (symbols.Symbol, bool) {
	switch n.Kind() {
	case "function_declaration", "method_declaration":
		return extractNamed(n, source, symbols.KindFunction, "body")
	case "type_spec":
		return extractStructType(n, source)
	case "var_spec":
		return extractNamed(n, source, symbols.KindVariable, "")
	}
	return symbols.Symbol{}, false
}

// extractStructType reports a type_spec only when its type is a struct;
// `type ID int` and friends produce nothing. The struct type is the body.
func extractStructType(n syntax.Node, source []byte) (symbols.Symbol, bool) {
	typeNode, ok := n.Field("type")
	if !ok || typeNode.Kind() != "struct_type" {
		return symbols.Symbol{}, false
	}
	sym, ok := extractNamed(n, source, symbols.KindStruct, "")
	if !ok {
		return symbols.Symbol{}, false
	}
	body := rangeOf(typeNode)
	sym.BodyRange = &body
	return sym, true
}

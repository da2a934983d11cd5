package languages

import (
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// TypeScriptExtractor extends the JavaScript rules with TypeScript's
// declaration-only constructs.
type TypeScriptExtractor struct {
	walker
}

// NewTypeScriptExtractor creates a TypeScript extractor.
func NewTypeScriptExtractor() *TypeScriptExtractor {
	e := &TypeScriptExtractor{}
	e.match = matchTypeScript
	return e
}

func matchTypeScript(n syntax.Node, source []byte) (symbols.Symbol, bool) {
	switch n.Kind() {
	case "abstract_class_declaration":
		return extractNamed(n, source, symbols.KindClass, "body")
	case "function_signature":
		return extractNamed(n, source, symbols.KindFunction, "")
	case "interface_declaration":
		return extractNamed(n, source, symbols.KindInterface, "body")
	case "type_alias_declaration":
		return extractNamed(n, source, symbols.KindType, "")
	case "enum_declaration":
		return extractNamed(n, source, symbols.KindEnum, "body")
	}
	return matchJavaScript(n, source)
}

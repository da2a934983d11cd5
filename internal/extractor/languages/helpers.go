package languages

import (
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// rangeOf returns the byte span of n.
func rangeOf(n syntax.Node) symbols.Range {
	return symbols.Range{Start: n.StartByte(), End: n.EndByte()}
}

// fieldRange returns the byte span of the named field, or nil when absent.
func fieldRange(n syntax.Node, field string) *symbols.Range {
	child, ok := n.Field(field)
	if !ok {
		return nil
	}
	r := rangeOf(child)
	return &r
}

// newSymbol anchors the line and full ranges on decl and the name range on nameNode.
func newSymbol(kind symbols.Kind, name string, decl, nameNode syntax.Node) symbols.Symbol {
	nameRange := rangeOf(nameNode)
	return symbols.Symbol{
		Kind:      kind,
		Name:      name,
		StartLine: decl.StartRow() + 1,
		EndLine:   decl.EndRow() + 1,
		FullRange: rangeOf(decl),
		NameRange: &nameRange,
	}
}

// extractNamed builds a symbol from the node's "name" field and optional body field.
// Nodes without a name, or whose name is not valid text, are skipped.
func extractNamed(n syntax.Node, source []byte, kind symbols.Kind, bodyField string) (symbols.Symbol, bool) {
	nameNode, ok := n.Field("name")
	if !ok {
		return symbols.Symbol{}, false
	}
	name, err := syntax.Text(nameNode, source)
	if err != nil {
		return symbols.Symbol{}, false
	}

	sym := newSymbol(kind, name, n, nameNode)
	if bodyField != "" {
		sym.BodyRange = fieldRange(n, bodyField)
	}
	return sym, true
}

package languages

import (
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// CppExtractor extracts symbols from C and C++ syntax trees.
type CppExtractor struct {
	walker
}

// NewCppExtractor creates an extractor for the C-family grammars.
func NewCppExtractor() *CppExtractor {
	e := &CppExtractor{}
	e.match = e.matchNode
	return e
}

func (e *CppExtractor) matchNode(n syntax.Node, source []byte) (symbols.Symbol, bool) {
	switch n.Kind() {
	case "function_definition":
		return e.extractFunction(n, source)
	case "class_specifier":
		return extractNamed(n, source, symbols.KindClass, "body")
	case "struct_specifier":
		return extractNamed(n, source, symbols.KindStruct, "body")
	case "declaration":
		if isPrototype(n) {
			return e.extractFunction(n, source)
		}
		return e.extractVariable(n, source)
	}
	return symbols.Symbol{}, false
}

// extractFunction names a function by its declarator, unwrapping exactly one
// level: `void ns::f()` has a function_declarator whose inner declarator is the
// qualified identifier `ns::f`, which is kept verbatim. Pointer and reference
// return types (`char *dup(...)`) are looked through first.
func (e *CppExtractor) extractFunction(n syntax.Node, source []byte) (symbols.Symbol, bool) {
	declarator, ok := n.Field("declarator")
	if !ok {
		return symbols.Symbol{}, false
	}
	if fn, ok := functionDeclarator(declarator); ok {
		declarator = fn
	}
	nameNode := declarator
	if inner, ok := declarator.Field("declarator"); ok {
		nameNode = inner
	}

	name, err := syntax.Text(nameNode, source)
	if err != nil {
		return symbols.Symbol{}, false
	}

	sym := newSymbol(symbols.KindFunction, name, n, nameNode)
	sym.BodyRange = fieldRange(n, "body")
	return sym, true
}

// isPrototype reports whether a declaration declares a function without a body.
// Function pointers (`int (*fp)(int);`) are variables, not prototypes.
func isPrototype(n syntax.Node) bool {
	declarator, ok := n.Field("declarator")
	if !ok {
		return false
	}
	fn, ok := functionDeclarator(declarator)
	if !ok {
		return false
	}
	inner, ok := fn.Field("declarator")
	return !ok || inner.Kind() != "parenthesized_declarator"
}

// functionDeclarator finds the function_declarator under any number of
// pointer or reference declarators.
func functionDeclarator(d syntax.Node) (syntax.Node, bool) {
	for d != nil {
		switch d.Kind() {
		case "function_declarator":
			return d, true
		case "pointer_declarator", "reference_declarator":
			d = innerDeclarator(d)
		default:
			return nil, false
		}
	}
	return nil, false
}

// innerDeclarator returns the declarator wrapped by d. reference_declarator
// has no field for it, so the last child is used.
func innerDeclarator(d syntax.Node) syntax.Node {
	if inner, ok := d.Field("declarator"); ok {
		return inner
	}
	if n := d.ChildCount(); n > 0 {
		return d.Child(n - 1)
	}
	return nil
}

// extractVariable names a declaration, degrading through progressively
// looser shapes so that a declaration never goes unreported:
//  1. a nested "declarator" field (`int x = 1`, `auto v = ...`)
//  2. a bare identifier declarator (`double y;`)
//  3. the first identifier child of the declarator; the name range is that
//     child but the line range stays on the whole declaration
//  4. the raw declarator text
func (e *CppExtractor) extractVariable(n syntax.Node, source []byte) (symbols.Symbol, bool) {
	declarator, ok := n.Field("declarator")
	if !ok {
		return symbols.Symbol{}, false
	}

	if inner, ok := declarator.Field("declarator"); ok {
		return variableNamedBy(n, inner, source)
	}
	if declarator.Kind() == "identifier" {
		return variableNamedBy(n, declarator, source)
	}
	for i := 0; i < declarator.ChildCount(); i++ {
		child := declarator.Child(i)
		if child != nil && child.Kind() == "identifier" {
			return variableNamedBy(n, child, source)
		}
	}
	return variableNamedBy(n, declarator, source)
}

func variableNamedBy(decl, nameNode syntax.Node, source []byte) (symbols.Symbol, bool) {
	name, err := syntax.Text(nameNode, source)
	if err != nil {
		return symbols.Symbol{}, false
	}
	return newSymbol(symbols.KindVariable, name, decl, nameNode), true
}

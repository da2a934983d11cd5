// Package languages holds one symbol extractor per supported language family.
//
// Every extractor implements Visitor: it inspects a node, possibly emits a
// Symbol, and always descends into the node's children. Only the node kinds
// and field names differ between languages; the descent is shared.
package languages

import (
	"github.com/mvp-joe/symextract/internal/symbols"
	"github.com/mvp-joe/symextract/internal/syntax"
)

// Visitor is the tree walker protocol implemented by each extractor.
type Visitor interface {
	// Visit examines node, records a symbol if it is a recognized construct,
	// then visits every child depth-first, left to right.
	Visit(node syntax.Node, source []byte)

	// Symbols returns the accumulated symbols in traversal order.
	// It is called once, after traversal; the visitor is not reused.
	Symbols() []symbols.Symbol
}

// matchFunc inspects a single node and reports the symbol it declares, if any.
type matchFunc func(n syntax.Node, source []byte) (symbols.Symbol, bool)

// walker owns the accumulator and the pre-order descent.
// The descent uses an explicit stack so deeply nested sources cannot overflow
// the goroutine stack.
type walker struct {
	match   matchFunc
	symbols []symbols.Symbol
}

func (w *walker) Visit(node syntax.Node, source []byte) {
	if node == nil {
		return
	}

	stack := []syntax.Node{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if sym, ok := w.match(n, source); ok {
			w.symbols = append(w.symbols, sym)
		}

		// Push in reverse so the leftmost child is visited first.
		for i := n.ChildCount() - 1; i >= 0; i-- {
			if child := n.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
}

func (w *walker) Symbols() []symbols.Symbol {
	syms := w.symbols
	w.symbols = nil
	return syms
}

// Package syntax adapts tree-sitter syntax trees to the small node contract
// the extractors consume, and owns the extension to grammar table.
package syntax

import (
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrTextDecoding indicates a node's byte span is not valid UTF-8 text.
var ErrTextDecoding = errors.New("node text is not valid utf-8")

// Node is one syntax-tree node. Field performs the optional named-field
// lookup every grammar exposes; absence is normal grammar variability.
type Node interface {
	Kind() string
	Field(name string) (Node, bool)
	ChildCount() int
	Child(i int) Node

	// Zero-based rows.
	StartRow() int
	EndRow() int

	StartByte() int
	EndByte() int
}

// Text returns the source text spanned by n.
func Text(n Node, source []byte) (string, error) {
	start, end := n.StartByte(), n.EndByte()
	if start < 0 || end > len(source) || start > end {
		return "", fmt.Errorf("%w: span [%d,%d) outside %d-byte source", ErrTextDecoding, start, end, len(source))
	}
	span := source[start:end]
	if !utf8.Valid(span) {
		return "", fmt.Errorf("%w: span [%d,%d)", ErrTextDecoding, start, end)
	}
	return string(span), nil
}

// treeNode wraps a tree-sitter node.
type treeNode struct {
	n *sitter.Node
}

func wrap(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return treeNode{n: n}
}

func (t treeNode) Kind() string { return t.n.Kind() }

func (t treeNode) Field(name string) (Node, bool) {
	child := t.n.ChildByFieldName(name)
	if child == nil {
		return nil, false
	}
	return treeNode{n: child}, true
}

func (t treeNode) ChildCount() int { return int(t.n.ChildCount()) }

func (t treeNode) Child(i int) Node { return wrap(t.n.Child(uint(i))) }

func (t treeNode) StartRow() int { return int(t.n.StartPosition().Row) }
func (t treeNode) EndRow() int   { return int(t.n.EndPosition().Row) }

func (t treeNode) StartByte() int { return int(t.n.StartByte()) }
func (t treeNode) EndByte() int   { return int(t.n.EndByte()) }

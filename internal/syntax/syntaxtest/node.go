// Package syntaxtest builds synthetic syntax trees for exercising extractors
// against node shapes a real grammar rarely produces.
package syntaxtest

import "github.com/mvp-joe/symextract/internal/syntax"

// Node is an in-memory syntax.Node.
type Node struct {
	NodeKind string
	Start    int
	End      int
	Row      int
	LastRow  int
	Fields   map[string]*Node
	Children []*Node
}

var _ syntax.Node = (*Node)(nil)

// Leaf returns a childless node covering [start, end) on a single row.
func Leaf(kind string, start, end, row int) *Node {
	return &Node{NodeKind: kind, Start: start, End: end, Row: row, LastRow: row}
}

// WithField registers child under the field name and appends it to the children.
func (n *Node) WithField(name string, child *Node) *Node {
	if n.Fields == nil {
		n.Fields = map[string]*Node{}
	}
	n.Fields[name] = child
	n.Children = append(n.Children, child)
	return n
}

// WithChildren appends unnamed children.
func (n *Node) WithChildren(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) Kind() string { return n.NodeKind }

func (n *Node) Field(name string) (syntax.Node, bool) {
	child, ok := n.Fields[name]
	if !ok {
		return nil, false
	}
	return child, true
}

func (n *Node) ChildCount() int { return len(n.Children) }

func (n *Node) Child(i int) syntax.Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) StartRow() int  { return n.Row }
func (n *Node) EndRow() int    { return n.LastRow }
func (n *Node) StartByte() int { return n.Start }
func (n *Node) EndByte() int   { return n.End }

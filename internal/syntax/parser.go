package syntax

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrParseFailure indicates the grammar produced no tree at all.
var ErrParseFailure = errors.New("failed to parse source")

// Parser parses source text with a single grammar.
// A Parser is not safe for concurrent use; give each goroutine its own.
type Parser struct {
	grammar Grammar
	parser  *sitter.Parser
}

// NewParser creates a parser bound to g.
func NewParser(g Grammar) (*Parser, error) {
	p := sitter.NewParser()
	if err := p.SetLanguage(g.Language); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set %s language: %w", g.Name, err)
	}
	return &Parser{grammar: g, parser: p}, nil
}

// Grammar returns the grammar the parser was built with.
func (p *Parser) Grammar() Grammar {
	return p.grammar
}

// Parse produces a syntax tree. Malformed but recoverable input still yields
// a tree containing error nodes; only a total failure returns ErrParseFailure.
func (p *Parser) Parse(source []byte) (*Tree, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s grammar produced no tree", ErrParseFailure, p.grammar.Name)
	}
	return &Tree{tree: tree}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.parser.Close()
}

// Tree is a parsed syntax tree.
type Tree struct {
	tree *sitter.Tree
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return wrap(t.tree.RootNode())
}

// Close releases the tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Package ast holds the node types produced by the parser for one fragment.
package ast

// Node is one of *Statement, *Rule or *Block.
type Node interface {
	node()
	// Pos is the byte offset of the node within its fragment.
	Pos() int
}

// Declaration is a single property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Custom reports whether the declaration sets a custom property.
func (d Declaration) Custom() bool {
	return len(d.Property) > 1 && d.Property[0] == '-' && d.Property[1] == '-'
}

// Statement is a top-level "@identifier rule;" directive.
type Statement struct {
	Offset     int
	Identifier string // lowercased, always starts with '@'
	Rule       string // value with quotes and semicolons trimmed
	Raw        string // value with only whitespace trimmed
}

// Rule is a selector with a flat declaration body.
type Rule struct {
	Offset       int
	Selector     string
	Declarations []Declaration
}

// Block is a selector wrapping nested nodes, e.g. an @media query.
type Block struct {
	Offset   int
	Selector string
	Children []Node
}

func (*Statement) node() {}
func (*Rule) node()      {}
func (*Block) node()     {}

func (n *Statement) Pos() int { return n.Offset }
func (n *Rule) Pos() int      { return n.Offset }
func (n *Block) Pos() int     { return n.Offset }

// Walk calls fn for every node in depth-first order. Returning false from
// fn stops descent into that node's children.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if b, ok := n.(*Block); ok {
			Walk(b.Children, fn)
		}
	}
}

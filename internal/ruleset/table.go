// Package ruleset holds the rule table every compiler stage writes into:
// an insertion-ordered selector → declarations map with nested tables for
// block rules, plus the registry of top-level directives.
package ruleset

import (
	"fmt"
	"iter"
	"strings"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/yacobolo/stylesheet/internal/ast"
	"github.com/yacobolo/stylesheet/internal/diag"
)

// Entry is the content stored under one selector. Flat rules only carry
// Declarations; blocks carry Children and may carry both.
type Entry struct {
	Declarations *Declarations
	Children     *Table
}

func newEntry() *Entry {
	return &Entry{Declarations: NewDeclarations()}
}

// Empty reports whether the entry would serialize to nothing.
func (e *Entry) Empty() bool {
	return e.Declarations.Len() == 0 && (e.Children == nil || e.Children.Len() == 0)
}

// Directive is an at-rule statement other than @charset and @import,
// e.g. "@layer base, components".
type Directive struct {
	Identifier string
	Rule       string
}

// Table is the selector → Entry map. Only the root table carries
// directives; statements met inside blocks are recorded on the root.
type Table struct {
	entries *orderedmap.OrderedMap[string, *Entry]
	root    *Table

	charset    string
	hasCharset bool
	imports    []string
	directives []Directive
	dropped    []Directive
}

// New returns an empty root table.
func New() *Table {
	return newTable()
}

func newTable() *Table {
	t := &Table{entries: orderedmap.NewOrderedMap[string, *Entry]()}
	t.root = t
	return t
}

func (t *Table) child() *Table {
	c := newTable()
	c.root = t.root
	return c
}

// Len returns the number of selectors at this level.
func (t *Table) Len() int {
	return t.entries.Len()
}

// All iterates selectors and entries in order.
func (t *Table) All() iter.Seq2[string, *Entry] {
	return t.entries.AllFromFront()
}

// Selectors returns the selectors at this level in order.
func (t *Table) Selectors() []string {
	out := make([]string, 0, t.entries.Len())
	for sel := range t.entries.Keys() {
		out = append(out, sel)
	}
	return out
}

// Lookup returns the entry for selector.
func (t *Table) Lookup(selector string) (*Entry, bool) {
	return t.entries.Get(selector)
}

// Entry returns the entry for selector, creating it at the end of the
// table when missing.
func (t *Table) Entry(selector string) *Entry {
	if e, ok := t.entries.Get(selector); ok {
		return e
	}
	e := newEntry()
	t.entries.Set(selector, e)
	return e
}

// Set assigns property on selector's declarations.
func (t *Table) Set(selector, property, value string) {
	t.Entry(selector).Declarations.Set(property, value)
}

// Block returns the nested table under selector, creating it when missing.
func (t *Table) Block(selector string) *Table {
	e := t.Entry(selector)
	if e.Children == nil {
		e.Children = t.child()
	}
	return e.Children
}

// Charset returns the registered @charset value.
func (t *Table) Charset() (string, bool) {
	return t.root.charset, t.root.hasCharset
}

// Imports returns @import values in registration order, duplicates included.
func (t *Table) Imports() []string {
	return t.root.imports
}

// Directives returns the other registered at-rule statements in order.
func (t *Table) Directives() []Directive {
	return t.root.directives
}

// Dropped returns @charset statements ignored because an earlier value won.
func (t *Table) Dropped() []Directive {
	return t.root.dropped
}

// Merge folds the nodes of one parsed source into the table. key identifies
// the source in errors. Under strict mode a second @charset with a
// different value fails with diag.ErrConflictingDirective; otherwise the
// first value wins and the later one is recorded in Dropped.
func (t *Table) Merge(key string, nodes []ast.Node, strict bool) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.Statement:
			if err := t.root.statement(key, n, strict); err != nil {
				return err
			}
		case *ast.Rule:
			decls := t.Entry(n.Selector).Declarations
			for _, d := range n.Declarations {
				decls.Set(d.Property, d.Value)
			}
		case *ast.Block:
			if err := t.Block(n.Selector).Merge(key, n.Children, strict); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Table) statement(key string, s *ast.Statement, strict bool) error {
	switch s.Identifier {
	case "@charset":
		return t.setCharset(key, s, strict)
	case "@import":
		t.imports = append(t.imports, s.Rule)
	default:
		t.addDirective(Directive{Identifier: s.Identifier, Rule: s.Raw})
	}
	return nil
}

func (t *Table) setCharset(key string, s *ast.Statement, strict bool) error {
	// Charset labels are case-insensitive.
	charset := strings.ToLower(s.Rule)
	if !t.hasCharset {
		t.charset, t.hasCharset = charset, true
		return nil
	}
	if charset == t.charset {
		return nil
	}
	if strict {
		return &diag.Error{
			Key:     key,
			Offset:  s.Offset,
			Snippet: s.Identifier + " " + s.Raw,
			Err: fmt.Errorf("%w: @charset %q conflicts with earlier %q",
				diag.ErrConflictingDirective, charset, t.charset),
		}
	}
	t.dropped = append(t.dropped, Directive{Identifier: s.Identifier, Rule: charset})
	return nil
}

func (t *Table) addDirective(d Directive) {
	for _, existing := range t.directives {
		if existing == d {
			return
		}
	}
	t.directives = append(t.directives, d)
}

// MergeTable folds other into t: directives go to t's root, entries merge
// selector by selector with values from other winning.
func (t *Table) MergeTable(other *Table) {
	if other.root == other {
		r := t.root
		if other.hasCharset && !r.hasCharset {
			r.charset, r.hasCharset = other.charset, true
		}
		r.imports = append(r.imports, other.imports...)
		for _, d := range other.directives {
			r.addDirective(d)
		}
	}

	for sel, e := range other.All() {
		existing, ok := t.entries.Get(sel)
		if !ok {
			existing = newEntry()
			t.entries.Set(sel, existing)
		}
		existing.mergeInto(t, e)
	}
}

// mergeInto merges other into e, creating nested tables owned by parent's root.
func (e *Entry) mergeInto(parent *Table, other *Entry) {
	e.Declarations.Merge(other.Declarations)
	if other.Children != nil {
		if e.Children == nil {
			e.Children = parent.child()
		}
		e.Children.MergeTable(other.Children)
	}
}

// Package parser turns one stylesheet fragment into an AST.
//
// The accepted dialect is plain CSS structure: top-level "@identifier rule;"
// statements, flat "selector{prop:value;...}" rules and blocks whose bodies
// contain further rules (media queries, supports, theme scopes). Nested
// groups are extracted with a depth-counting scan, never by pattern matching.
package parser

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/stylesheet/internal/ast"
	"github.com/yacobolo/stylesheet/internal/diag"
)

// DefaultIterationLimit bounds the number of extraction steps for one
// fragment, summed over every nesting depth.
const DefaultIterationLimit = 4096

var (
	// leadingZero matches "0." before a digit at value start or after a
	// separator, so "0.5rem 0.25rem" becomes ".5rem .25rem" but "10.5" is kept.
	leadingZero = regexp.MustCompile(`(^|[^0-9.])0\.([0-9])`)
	// plusCombinator matches whitespace around a '+' combinator.
	plusCombinator = regexp.MustCompile(`\s*\+\s*`)
)

// Option configures a Parser.
type Option func(*Parser)

// WithIterationLimit overrides DefaultIterationLimit. Non-positive values are ignored.
func WithIterationLimit(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.limit = n
		}
	}
}

// Parser converts fragments to AST nodes. A Parser holds no per-fragment
// state and may be shared between goroutines.
type Parser struct {
	log   *zap.Logger
	limit int
}

// New creates a parser. A nil logger disables logging.
func New(log *zap.Logger, opts ...Option) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{log: log.Named("parser"), limit: DefaultIterationLimit}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IterationLimit returns the configured extraction budget.
func (p *Parser) IterationLimit() int {
	return p.limit
}

// fragment carries the state of one Parse call.
type fragment struct {
	key    string
	text   string
	budget int
}

// Parse parses text, identified by key in errors, into a list of nodes.
// The fragment is either fully parsed or rejected: any failure returns a
// *diag.Error and no nodes.
func (p *Parser) Parse(key, text string) ([]ast.Node, error) {
	if err := checkBalance(key, text); err != nil {
		return nil, err
	}

	f := &fragment{key: key, text: text, budget: p.limit}
	nodes, err := f.parse(0, len(text), 0)
	if err != nil {
		return nil, err
	}

	p.log.Debug("Parsed fragment", zap.String("key", key), zap.Int("nodes", len(nodes)))
	return nodes, nil
}

// checkBalance verifies that braces pair up before any extraction starts.
func checkBalance(key, text string) error {
	depth := 0
	lastOpen := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
			lastOpen = i
		case '}':
			depth--
			if depth < 0 {
				return diag.Errorf(key, text, i, diag.ErrMalformedInput, "unexpected '}'")
			}
		}
	}
	if depth > 0 {
		return diag.Errorf(key, text, lastOpen, diag.ErrMalformedInput, "%d unclosed '{'", depth)
	}
	return nil
}

// parse consumes text[start:end] and returns its nodes. depth is only used
// for logging.
func (f *fragment) parse(start, end, depth int) ([]ast.Node, error) {
	var nodes []ast.Node
	pos := start

	for {
		pos = skipSpace(f.text, pos, end)
		if pos >= end {
			return nodes, nil
		}

		f.budget--
		if f.budget < 0 {
			return nil, diag.Errorf(f.key, f.text, pos, diag.ErrRecursionLimit,
				"exceeded iteration limit at depth %d", depth)
		}

		next := nextSignificant(f.text, pos, end)
		if next < 0 {
			return nil, diag.Errorf(f.key, f.text, pos, diag.ErrMalformedInput,
				"unterminated text")
		}

		switch f.text[next] {
		case ';':
			stmt, err := f.statement(pos, next)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, stmt)
			pos = next + 1

		case '}':
			// Balanced input never closes before it opens within a span.
			return nil, diag.Errorf(f.key, f.text, next, diag.ErrMalformedInput, "unexpected '}'")

		case '{':
			closing := matchBrace(f.text, next, end)
			if closing < 0 {
				return nil, diag.Errorf(f.key, f.text, next, diag.ErrMalformedInput, "unclosed '{'")
			}
			node, err := f.group(pos, next, closing, depth)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			pos = closing + 1
		}
	}
}

// nextSignificant returns the index of the first ';', '{' or '}' in
// text[pos:end], or -1. '@' only marks statements and carries no structure
// of its own, so it is not a stop character.
func nextSignificant(text string, pos, end int) int {
	i := strings.IndexAny(text[pos:end], ";{}")
	if i < 0 {
		return -1
	}
	return pos + i
}

// matchBrace walks from the '{' at open and returns the index of the brace
// that brings the depth back to zero, or -1.
func matchBrace(text string, open, end int) int {
	depth := 0
	for i := open; i < end; i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func skipSpace(text string, pos, end int) int {
	for pos < end && isSpace(text[pos]) {
		pos++
	}
	return pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// statement parses "identifier rule" from text[start:semi].
func (f *fragment) statement(start, semi int) (*ast.Statement, error) {
	raw := strings.TrimSpace(f.text[start:semi])

	identifier, rule, _ := strings.Cut(raw, " ")
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	if !strings.HasPrefix(identifier, "@") {
		return nil, diag.Errorf(f.key, f.text, start, diag.ErrInvalidDirective,
			"statement %q does not start with '@'", raw)
	}

	return &ast.Statement{
		Offset:     start,
		Identifier: identifier,
		Rule:       trimRule(rule),
		Raw:        strings.TrimSpace(rule),
	}, nil
}

// trimRule strips whitespace and quote characters from both ends of a
// statement value.
func trimRule(s string) string {
	return strings.Trim(s, " \t\n\r\f\v\x00\"';")
}

// group builds a Rule or Block from the selector text[start:open] and the
// body text[open+1:closing].
func (f *fragment) group(start, open, closing, depth int) (ast.Node, error) {
	selector := NormalizeSelector(f.text[start:open])
	bodyStart, bodyEnd := open+1, closing

	if strings.IndexByte(f.text[bodyStart:bodyEnd], '{') >= 0 {
		children, err := f.parse(bodyStart, bodyEnd, depth+1)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Offset: start, Selector: selector, Children: children}, nil
	}

	decls, err := f.declarations(bodyStart, bodyEnd)
	if err != nil {
		return nil, err
	}
	return &ast.Rule{Offset: start, Selector: selector, Declarations: decls}, nil
}

// declarations splits a flat body on ';' and each clause on its first ':'.
func (f *fragment) declarations(start, end int) ([]ast.Declaration, error) {
	var decls []ast.Declaration

	clauseStart := start
	for i := start; i <= end; i++ {
		if i < end && f.text[i] != ';' {
			continue
		}

		clause := f.text[clauseStart:i]
		offset := clauseStart
		clauseStart = i + 1

		if strings.TrimSpace(clause) == "" {
			continue
		}

		property, value, ok := strings.Cut(clause, ":")
		if !ok {
			return nil, diag.Errorf(f.key, f.text, offset+leadingSpace(clause), diag.ErrMalformedInput,
				"declaration %q has no ':'", strings.TrimSpace(clause))
		}

		decls = append(decls, ast.Declaration{
			Property: strings.TrimSpace(property),
			Value:    NormalizeValue(value),
		})
	}

	return decls, nil
}

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t\n\r\f\v"))
}

// NormalizeSelector trims s, collapses internal whitespace and removes
// whitespace around '+' combinators.
func NormalizeSelector(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return plusCombinator.ReplaceAllString(s, "+")
}

// NormalizeValue trims v and drops the zero in a leading "0." before a digit.
func NormalizeValue(v string) string {
	v = strings.TrimSpace(v)
	return leadingZero.ReplaceAllString(v, "$1.$2")
}

package ruleset

import (
	"strings"
)

// Assembler serializes a Table to CSS text.
type Assembler struct {
	// Pretty emits one declaration per line with tab indentation.
	Pretty bool
	// Coalesce joins selectors whose bodies are identical into one
	// "a, b" group placed at the first selector's position.
	Coalesce bool
}

// Assemble renders directives first (@charset, @import, then any other
// statements) followed by the entries in table order.
func (a Assembler) Assemble(t *Table) string {
	var b strings.Builder

	if charset, ok := t.Charset(); ok {
		a.statement(&b, "@charset", quote(charset))
	}
	for _, imp := range t.Imports() {
		a.statement(&b, "@import", importTarget(imp))
	}
	for _, d := range t.Directives() {
		a.statement(&b, d.Identifier, d.Rule)
	}

	a.rules(&b, t, 0)
	return b.String()
}

func (a Assembler) statement(b *strings.Builder, identifier, rule string) {
	b.WriteString(identifier)
	if rule != "" {
		b.WriteByte(' ')
		b.WriteString(rule)
	}
	b.WriteByte(';')
	if a.Pretty {
		b.WriteByte('\n')
	}
}

// group is one output rule: a body shared by one or more selectors.
type group struct {
	selectors  []string
	body       string
	properties map[string]bool
	nested     bool
}

// blocks reports whether g sits between an earlier group and a selector
// that would join it, so joining would move the selector ahead of g.
func (g *group) blocks(properties map[string]bool) bool {
	if g.nested {
		return true
	}
	for p := range properties {
		if g.properties[p] {
			return true
		}
	}
	return false
}

// rules writes the entries of t in order. With Coalesce, a selector joins
// an earlier group with the same body only when no group in between sets
// one of its properties, so the cascade is unchanged.
func (a Assembler) rules(b *strings.Builder, t *Table, depth int) {
	var groups []*group
	byBody := make(map[string]int)

	for sel, e := range t.All() {
		body := a.body(e, depth)
		properties := make(map[string]bool, e.Declarations.Len())
		for p := range e.Declarations.All() {
			properties[p] = true
		}
		nested := e.Children != nil && e.Children.Len() > 0
		mergeable := a.Coalesce && coalescable(sel) && !nested

		if mergeable {
			if i, ok := byBody[body]; ok && !interposed(groups[i+1:], properties) {
				groups[i].selectors = append(groups[i].selectors, sel)
				continue
			}
		}

		groups = append(groups, &group{
			selectors:  []string{sel},
			body:       body,
			properties: properties,
			nested:     nested,
		})
		if mergeable {
			byBody[body] = len(groups) - 1
		}
	}

	for _, g := range groups {
		selector := strings.Join(g.selectors, ", ")
		if a.Pretty {
			indent(b, depth)
			b.WriteString(selector)
			b.WriteString(" {\n")
			b.WriteString(g.body)
			indent(b, depth)
			b.WriteString("}\n")
			continue
		}
		b.WriteString(selector)
		b.WriteByte('{')
		b.WriteString(g.body)
		b.WriteByte('}')
	}
}

func interposed(between []*group, properties map[string]bool) bool {
	for _, g := range between {
		if g.blocks(properties) {
			return true
		}
	}
	return false
}

func (a Assembler) body(e *Entry, depth int) string {
	var b strings.Builder
	for p, v := range e.Declarations.All() {
		if a.Pretty {
			indent(&b, depth+1)
			b.WriteString(p)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString(";\n")
			continue
		}
		b.WriteString(p)
		b.WriteByte(':')
		b.WriteString(v)
		b.WriteByte(';')
	}
	if e.Children != nil {
		a.rules(&b, e.Children, depth+1)
	}
	return b.String()
}

// coalescable excludes at-rules, whose preludes cannot be comma-joined,
// and vendor-prefixed pseudo selectors, which invalidate a whole group in
// browsers that do not know them.
func coalescable(selector string) bool {
	return !strings.HasPrefix(selector, "@") && !strings.Contains(selector, ":-")
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
}

func quote(s string) string {
	return `"` + s + `"`
}

// importTarget restores the quoting that statement trimming removed.
// url(...) targets are left alone; a target that still holds a closing
// quote (followed by media queries) gets its opening quote back.
func importTarget(rule string) string {
	switch {
	case strings.HasPrefix(rule, "url("):
		return rule
	case strings.Contains(rule, `"`):
		return `"` + rule
	case strings.Contains(rule, `'`):
		return `'` + rule
	default:
		return quote(rule)
	}
}

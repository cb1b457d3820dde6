// Package utility synthesizes rules for the atomic class names harvested
// from templates.
//
// Every scanned element contributes one Group of tokens. A token whose
// trigger (the text before the first ':' or '-') appears in the builder
// registry is handed to that builder together with its group, so composite
// builders such as flex can look at the classes it shares an element with.
package utility

import "strings"

// Token is one class name from a template, e.g. "m-x:small".
type Token struct {
	Raw      string // m-x:small
	Name     string // m-x
	Trigger  string // m
	Variant  string // x
	Modifier string // small
}

// ParseToken splits raw into its parts. A trailing ':' with nothing after
// it counts as no modifier.
func ParseToken(raw string) Token {
	name, modifier, _ := strings.Cut(raw, ":")
	trigger, variant, _ := strings.Cut(name, "-")
	return Token{
		Raw:      raw,
		Name:     name,
		Trigger:  trigger,
		Variant:  variant,
		Modifier: modifier,
	}
}

// HasModifier reports whether the token carries a ":value" part.
func (t Token) HasModifier() bool {
	return t.Modifier != ""
}

// Group is the token list of one scanned element.
type Group struct {
	Tokens []Token
	names  map[string]struct{}
}

// NewGroup parses every raw class name, skipping empty strings.
func NewGroup(raw []string) Group {
	g := Group{
		Tokens: make([]Token, 0, len(raw)),
		names:  make(map[string]struct{}, len(raw)),
	}
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		t := ParseToken(r)
		g.Tokens = append(g.Tokens, t)
		g.names[t.Name] = struct{}{}
	}
	return g
}

// Has reports whether the element carries a class named name, ignoring
// modifiers: a group with "flow:large" has "flow".
func (g Group) Has(name string) bool {
	_, ok := g.names[name]
	return ok
}

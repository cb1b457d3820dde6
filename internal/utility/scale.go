package utility

import (
	"strings"

	"github.com/yacobolo/stylesheet/internal/ast"
)

// Size is one entry of the spacing scale.
type Size struct {
	Key   string
	Value string
}

// Scale is the fixed spacing scale in lookup order. Read-only.
var Scale = []Size{
	{"auto", "auto"},
	{"null", "0"},
	{"tiny", ".125rem"},
	{"small", ".25rem"},
	{"base", "1rem"},
	{"medium", "1.5rem"},
	{"large", "2rem"},
	{"full", "100%"},
}

// Keys that resolve to their literal value instead of a variable.
var literalSizes = map[string]bool{"auto": true, "null": true, "full": true}

// ResolveSize maps a modifier onto the scale. The first key the modifier
// is a prefix of wins, so "s" and "small" both give "var(--small, .25rem)".
// auto, null and full resolve to their plain values. Anything off the
// scale, such as "3px", is returned unchanged.
func ResolveSize(modifier string) string {
	if modifier == "" {
		return ""
	}
	for _, s := range Scale {
		if !strings.HasPrefix(s.Key, modifier) {
			continue
		}
		if literalSizes[s.Key] {
			return s.Value
		}
		return "var(--" + s.Key + ", " + s.Value + ")"
	}
	return modifier
}

// RootVariables returns the scale as custom properties for :root, skipping
// the keywords auto and null.
func RootVariables() []ast.Declaration {
	out := make([]ast.Declaration, 0, len(Scale))
	for _, s := range Scale {
		if s.Key == "auto" || s.Key == "null" {
			continue
		}
		out = append(out, ast.Declaration{Property: "--" + s.Key, Value: s.Value})
	}
	return out
}

var colorKeywords = map[string]bool{
	"currentcolor": true,
	"transparent":  true,
	"inherit":      true,
	"initial":      true,
	"unset":        true,
}

// ResolveColor maps a color modifier to a CSS value:
//
//	#0af       → #0af
//	300        → hsla(var(--baseline-300))
//	primary    → hsla(var(--primary))
//	--accent   → hsla(var(--accent))
//
// The CSS-wide keywords and currentColor pass through. An empty modifier
// resolves to nothing.
func ResolveColor(modifier string) (string, bool) {
	switch {
	case modifier == "":
		return "", false
	case strings.HasPrefix(modifier, "#"):
		return modifier, true
	case colorKeywords[strings.ToLower(modifier)]:
		return modifier, true
	case isDigits(modifier):
		return "hsla(var(--baseline-" + modifier + "))", true
	case strings.HasPrefix(modifier, "--"):
		return "hsla(var(" + modifier + "))", true
	}
	return "hsla(var(--" + modifier + "))", true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

package utility

import (
	"strings"

	"github.com/yacobolo/stylesheet/internal/ast"
)

// Rule is one synthesized rule. Its selector is the compound of Classes
// followed by Suffix, e.g. Classes{"flow", "reverse"} and Suffix " > * + *"
// give ".flow.reverse > * + *".
type Rule struct {
	Classes      []string
	Suffix       string
	Declarations []ast.Declaration
}

// Selector renders the escaped selector.
func (r Rule) Selector() string {
	var b strings.Builder
	for _, c := range r.Classes {
		b.WriteByte('.')
		b.WriteString(Escape(c))
	}
	b.WriteString(r.Suffix)
	return b.String()
}

func rule(class string, decls ...ast.Declaration) Rule {
	return Rule{Classes: []string{class}, Declarations: decls}
}

func decl(property, value string) ast.Declaration {
	return ast.Declaration{Property: property, Value: value}
}

// Escape makes a class name usable in a selector by backslash-escaping
// every ASCII character other than letters, digits, '-' and '_'.
// "m-x:small" becomes `m-x\:small`, "w:0.5" becomes `w\:0\.5`.
func Escape(class string) string {
	var b strings.Builder
	b.Grow(len(class) + 4)
	for _, r := range class {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r >= 0x80:
		default:
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

package parser

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Minify strips comments and collapses whitespace in a fragment before it
// is parsed. Whitespace next to braces and semicolons is dropped entirely;
// any other run becomes a single space. Strings are copied verbatim.
func Minify(text string) string {
	lexer := css.NewLexer(parse.NewInputString(text))

	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	var last byte

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		if tt == css.WhitespaceToken || tt == css.CommentToken {
			pendingSpace = true
			continue
		}

		if pendingSpace && b.Len() > 0 && !isStructural(last) && !isStructuralToken(tt) {
			b.WriteByte(' ')
		}
		pendingSpace = false

		b.Write(data)
		if len(data) > 0 {
			last = data[len(data)-1]
		}
	}

	return b.String()
}

func isStructural(c byte) bool {
	return c == '{' || c == '}' || c == ';'
}

func isStructuralToken(tt css.TokenType) bool {
	return tt == css.LeftBraceToken || tt == css.RightBraceToken || tt == css.SemicolonToken
}

package token

import (
	"fmt"

	"cronac/internal/source"
)

// Token represents a single source token with its location and, for
// identifiers and literals, the text the lexer matched.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether t is an integer, string, or boolean literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether t is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether t is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// String renders t the way the -t token dump does: "KIND [line,col]" for
// bare tokens, "KIND:text [line,col]" for identifiers and literals.
func (t Token) String(line, col uint32) string {
	if t.IsIdent() || t.IsLiteral() {
		return fmt.Sprintf("%s:%s [%d,%d]", t.Kind, t.Text, line, col)
	}
	return fmt.Sprintf("%s [%d,%d]", t.Kind, line, col)
}

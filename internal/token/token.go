package token

import (
	"busguard/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, CharLit, StringLit, BoolLit, NullLit:
		return true
	default:
		return false
	}
}

// IsModifier reports whether the token is a modifier keyword.
// non-sealed and sealed are contextual and handled by the parser.
func (t Token) IsModifier() bool {
	return t.Kind >= KwPublic && t.Kind <= KwStrictfp
}

// IsPrimitive reports whether the token names a primitive type (void excluded).
func (t Token) IsPrimitive() bool {
	return t.Kind >= KwBoolean && t.Kind <= KwDouble
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return (t.Kind >= KwPackage && t.Kind <= Keyword) || t.Kind == BoolLit || t.Kind == NullLit
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentText reports whether the token is the identifier s.
func (t Token) IsIdentText(s string) bool { return t.Kind == Ident && t.Text == s }

// DocComment returns the closest /** */ block in the leading trivia, or "".
func (t Token) DocComment() string {
	for i := len(t.Leading) - 1; i >= 0; i-- {
		if t.Leading[i].Kind == TriviaDocBlock {
			return t.Leading[i].Text
		}
	}
	return ""
}

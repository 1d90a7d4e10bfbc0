package token_test

import (
	"testing"

	"busguard/internal/source"
	"busguard/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.IntLit, token.FloatLit, token.CharLit,
		token.StringLit, token.BoolLit, token.NullLit,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwClass, token.Operator, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestModifiersAndPrimitives(t *testing.T) {
	for _, word := range []string{"public", "protected", "private", "static", "final", "abstract",
		"synchronized", "native", "transient", "volatile", "strictfp"} {
		k, ok := token.LookupKeyword(word)
		if !ok || !tok(k).IsModifier() {
			t.Errorf("%s should be a modifier", word)
		}
	}
	for _, word := range []string{"boolean", "byte", "short", "char", "int", "long", "float", "double"} {
		k, ok := token.LookupKeyword(word)
		if !ok || !tok(k).IsPrimitive() {
			t.Errorf("%s should be primitive", word)
		}
	}
	if tok(token.KwVoid).IsPrimitive() {
		t.Errorf("void is not a primitive type token")
	}
	if tok(token.KwDefault).IsModifier() {
		t.Errorf("default is handled separately from modifiers")
	}
}

func TestContextualWordsAreIdents(t *testing.T) {
	for _, word := range []string{"record", "sealed", "permits", "var", "yield", "module"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Errorf("%s must lex as identifier", word)
		}
	}
	if k, _ := token.LookupKeyword("Class"); k != token.Invalid {
		t.Errorf("keywords are case sensitive")
	}
}

func TestDocComment(t *testing.T) {
	tk := token.Token{Kind: token.KwPublic, Leading: []token.Trivia{
		{Kind: token.TriviaDocBlock, Text: "/** first */"},
		{Kind: token.TriviaNewline, Text: "\n"},
		{Kind: token.TriviaDocBlock, Text: "/** second */"},
		{Kind: token.TriviaSpace, Text: " "},
	}}
	if got := tk.DocComment(); got != "/** second */" {
		t.Fatalf("DocComment = %q", got)
	}
}

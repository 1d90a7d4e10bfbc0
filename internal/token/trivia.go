package token

import "busguard/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocBlock // /** ... */
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

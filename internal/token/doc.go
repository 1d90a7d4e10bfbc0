// Package token defines lexical token kinds and trivia for Java sources.
// Invariants:
//   - Token.Text is the source text of the token; identifiers are NFC-normalised.
//   - Token.Span covers the token bytes exactly (Start..End).
//   - Annotations are lexed as '@' (Kind: At) + Ident; no per-annotation token kinds.
//   - Contextual words (record, sealed, permits, var, yield) are identifiers.
//     The parser recognises them by text.
//   - '>' is always a single token so nested generics close cleanly;
//     '>>' and '>=' appear as consecutive Gt/Assign tokens.
package token

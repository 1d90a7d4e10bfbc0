package lexer

import (
	"busguard/internal/diag"
	"busguard/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// '<' и '>' всегда отдельные токены: парсеру так проще закрывать вложенные generics,
// а тела методов он всё равно пропускает.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try3('.', '.', '.'):
		return emit(token.Ellipsis)
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '='), lx.try2('!', '='),
		lx.try2('&', '&'), lx.try2('|', '|'),
		lx.try2('+', '+'), lx.try2('-', '-'),
		lx.try2('+', '='), lx.try2('-', '='), lx.try2('*', '='), lx.try2('/', '='),
		lx.try2('%', '='), lx.try2('&', '='), lx.try2('|', '='), lx.try2('^', '='):
		return emit(token.Operator)
	}

	b := lx.cursor.Bump()
	switch b {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '@':
		return emit(token.At)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '?':
		return emit(token.Question)
	case '=':
		return emit(token.Assign)
	case ':':
		return emit(token.Colon)
	case '&':
		return emit(token.Amp)
	case '+', '-', '*', '/', '%', '!', '~', '^', '|':
		return emit(token.Operator)
	}

	// неизвестный символ: съедаем руну целиком
	lx.cursor.Reset(start)
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteText(lx.text(sp)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func quoteText(s string) string {
	return "'" + s + "'"
}

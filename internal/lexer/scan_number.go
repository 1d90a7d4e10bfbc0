package lexer

import (
	"busguard/internal/diag"
	"busguard/internal/token"
)

// Поддержка: 0, 123, 0b..., 0x..., 017, 1.0, .5, 1e-3, 1.0e+10, 0x1p3,
// суффиксы L/l (int) и f/F/d/D (float). Подчёркивания внутри цифр разрешены.
// Неверные формы - репорт, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	bad := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	digits := func(ok func(byte) bool) int {
		n := 0
		for b := lx.cursor.Peek(); ok(b) || b == '_'; b = lx.cursor.Peek() {
			lx.cursor.Bump()
			n++
		}
		return n
	}

	// ведущая точка - формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		digits(isDec)
		return lx.finishDecimal(start, kind, bad)
	}

	if lx.cursor.Peek() == '0' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '0' {
			switch b1 {
			case 'x', 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				n := digits(isHex)
				if lx.cursor.Peek() == '.' {
					lx.cursor.Bump()
					n += digits(isHex)
					kind = token.FloatLit
				}
				if n == 0 {
					return bad("expected hex digits after 0x")
				}
				if p := lx.cursor.Peek(); p == 'p' || p == 'P' {
					kind = token.FloatLit
					lx.cursor.Bump()
					if s := lx.cursor.Peek(); s == '+' || s == '-' {
						lx.cursor.Bump()
					}
					if digits(isDec) == 0 {
						return bad("expected digit after binary exponent")
					}
				}
				return lx.finishSuffix(start, kind)
			case 'b', 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				if digits(func(b byte) bool { return b == '0' || b == '1' }) == 0 {
					return bad("expected binary digits after 0b")
				}
				return lx.finishSuffix(start, kind)
			}
		}
	}

	digits(isDec)
	if lx.cursor.Peek() == '.' {
		b0, b1, ok := lx.cursor.Peek2()
		// 1.foo() и 1..2 не бывают в Java, но "1." - валидный double
		if !(ok && b0 == '.' && (isIdentStartByte(b1) || b1 == '.')) {
			lx.cursor.Bump()
			kind = token.FloatLit
			digits(isDec)
		}
	}
	return lx.finishDecimal(start, kind, bad)
}

func (lx *Lexer) finishDecimal(start Mark, kind token.Kind, bad func(string) token.Token) token.Token {
	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return bad("expected digit after exponent")
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}
	return lx.finishSuffix(start, kind)
}

func (lx *Lexer) finishSuffix(start Mark, kind token.Kind) token.Token {
	switch lx.cursor.Peek() {
	case 'l', 'L':
		if kind == token.IntLit {
			lx.cursor.Bump()
		}
	case 'f', 'F', 'd', 'D':
		lx.cursor.Bump()
		kind = token.FloatLit
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

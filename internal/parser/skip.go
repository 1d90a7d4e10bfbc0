package parser

import (
	"busguard/internal/diag"
	"busguard/internal/token"
)

// skipBalanced съедает сбалансированную группу open ... close.
// Ожидает, что текущий токен - open. Вложенные скобки других видов не считает.
func (p *Parser) skipBalanced(open, closing token.Kind) bool {
	start := p.advance().Span
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case token.EOF:
			code := diag.SynUnclosedBrace
			msg := "unclosed '{'"
			if open == token.LParen {
				code, msg = diag.SynUnclosedParen, "unclosed '('"
			} else if open != token.LBrace {
				code, msg = diag.SynUnclosedDelimiter, "unclosed delimiter"
			}
			p.report(code, diag.SevError, start, msg)
			return false
		case open:
			depth++
		case closing:
			depth--
		}
		p.advance()
	}
	return true
}

// skipExpression пропускает выражение до ',' / ';' / закрывающей скобки
// на нулевой глубине (сам разделитель не съедается) и возвращает его токены.
func (p *Parser) skipExpression() []token.Token {
	start := p.pos
	depth := 0
	for {
		t := p.peek()
		switch t.Kind {
		case token.EOF:
			return p.toks[start:p.pos]
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return p.toks[start:p.pos]
			}
			depth--
		case token.Comma, token.Semicolon:
			if depth == 0 {
				return p.toks[start:p.pos]
			}
		}
		p.advance()
	}
}

// skipAngles пропускает <...> с учётом вложенности и возвращает текст.
func (p *Parser) skipAngles() string {
	start := p.pos
	depth := 0
	for {
		switch p.peek().Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.EOF, token.LBrace, token.Semicolon:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, p.toks[start].Span, "unclosed '<'")
			return joinTokens(p.toks[start:p.pos])
		}
		p.advance()
		if depth == 0 {
			return joinTokens(p.toks[start:p.pos])
		}
	}
}

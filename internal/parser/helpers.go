package parser

import (
	"busguard/internal/diag"
	"busguard/internal/source"
	"busguard/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan - возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

func (p *Parser) expectIdent(what string) (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	return p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+what+", got "+describe(p.peek()))
}

func (p *Parser) expectSemi() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';', got "+describe(p.peek()))
	return ok
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

// репортует warning и передает текущий спан
func (p *Parser) warn(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevWarning, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + t.Text + "'"
	default:
		return "'" + t.Text + "'"
	}
}

// isWordish - токены, между которыми при склейке текста нужен пробел
func isWordish(t token.Token) bool {
	return t.Kind == token.Ident || t.IsKeyword() || t.Kind == token.Question || t.IsLiteral()
}

// joinTokens склеивает текст токенов в нормализованную строку:
// пробел между словами и после запятых.
func joinTokens(toks []token.Token) string {
	buf := make([]byte, 0, 32)
	for i, t := range toks {
		if i > 0 {
			prev := toks[i-1]
			if prev.Kind == token.Comma || (isWordish(prev) && isWordish(t)) ||
				prev.Kind == token.Operator || t.Kind == token.Operator {
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, t.Text...)
	}
	return string(buf)
}

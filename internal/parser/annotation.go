package parser

import (
	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/token"
)

// parseAnnotation: '@' QualifiedName [ '(' [ pairs | value ] ')' ]
// Имя остаётся в написанном виде; каноническое имя проставляет резолвер.
func (p *Parser) parseAnnotation() (*decl.Annotation, bool) {
	at := p.advance() // '@'
	if !p.at(token.Ident) {
		p.err(diag.SynExpectAnnotation, "expected annotation name after '@'")
		return nil, false
	}
	name, _ := p.parseQualifiedName("annotation name")
	a := &decl.Annotation{Name: name, Written: name}

	if p.at(token.LParen) {
		p.advance()
		switch {
		case p.at(token.RParen):
		case p.at(token.Ident) && p.peekN(1).Kind == token.Assign:
			for {
				key, ok := p.expectIdent("annotation element name")
				if !ok {
					break
				}
				if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after annotation element name"); !ok {
					break
				}
				a.Args = append(a.Args, decl.Arg{Key: key.Text, Value: p.parseElementValue()})
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
		default:
			a.Args = append(a.Args, decl.Arg{Key: "value", Value: p.parseElementValue()})
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close annotation arguments"); !ok {
			// пропускаем хвост аргументов, чтобы не сломать разбор объявления
			for !p.atOr(token.RParen, token.EOF, token.Semicolon, token.LBrace) {
				p.advance()
			}
			if p.at(token.RParen) {
				p.advance()
			}
		}
	}
	a.Span = p.cover(at.Span)
	return a, true
}

// parseElementValue: annotation | '{' values '}' | выражение (классифицируется по форме)
func (p *Parser) parseElementValue() decl.Value {
	start := p.peek().Span
	switch {
	case p.at(token.At):
		a, _ := p.parseAnnotation()
		v := decl.Value{Kind: decl.ValOther, Span: p.cover(start)}
		if a != nil {
			v.Text = "@" + a.Written
		}
		return v

	case p.at(token.LBrace):
		p.advance()
		v := decl.Value{Kind: decl.ValArray}
		for !p.atOr(token.RBrace, token.EOF) {
			v.Elems = append(v.Elems, p.parseElementValue())
			if !p.at(token.Comma) {
				break
			}
			p.advance() // допускается висячая запятая
		}
		p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close array value")
		v.Span = p.cover(start)
		v.Text = p.fs.Text(v.Span)
		return v
	}

	toks := p.skipExpression()
	if len(toks) == 0 {
		p.err(diag.SynUnexpectedToken, "expected annotation value, got "+describe(p.peek()))
		return decl.Value{Kind: decl.ValOther, Span: start}
	}
	return classifyValue(toks)
}

func classifyValue(toks []token.Token) decl.Value {
	span := toks[0].Span.Cover(toks[len(toks)-1].Span)
	v := decl.Value{Kind: decl.ValOther, Text: joinTokens(toks), Span: span}

	if len(toks) == 1 {
		switch toks[0].Kind {
		case token.StringLit:
			v.Kind = decl.ValString
		case token.CharLit:
			v.Kind = decl.ValChar
		case token.IntLit, token.FloatLit:
			v.Kind = decl.ValNumber
		case token.BoolLit:
			v.Kind = decl.ValBool
		case token.Ident:
			v.Kind = decl.ValName
		}
		return v
	}

	// -1, +2.5
	if len(toks) == 2 && toks[0].Kind == token.Operator && (toks[0].Text == "-" || toks[0].Text == "+") &&
		(toks[1].Kind == token.IntLit || toks[1].Kind == token.FloatLit) {
		v.Kind = decl.ValNumber
		v.Text = toks[0].Text + toks[1].Text
		return v
	}

	// a.b.C / a.b.C.class / int.class
	last := len(toks) - 1
	isClass := last >= 2 && toks[last].Kind == token.KwClass && toks[last-1].Kind == token.Dot
	nameEnd := len(toks)
	if isClass {
		nameEnd = last - 1
	}
	if nameEnd%2 == 1 && isDottedName(toks[:nameEnd], isClass) {
		v.Text = joinDotted(toks)
		if isClass {
			v.Kind = decl.ValClass
		} else {
			v.Kind = decl.ValName
		}
	}
	return v
}

func isDottedName(toks []token.Token, allowPrimitive bool) bool {
	for i, t := range toks {
		if i%2 == 1 {
			if t.Kind != token.Dot {
				return false
			}
			continue
		}
		if t.Kind == token.Ident {
			continue
		}
		if allowPrimitive && len(toks) == 1 && (t.IsPrimitive() || t.Kind == token.KwVoid) {
			continue
		}
		return false
	}
	return true
}

func joinDotted(toks []token.Token) string {
	buf := make([]byte, 0, 32)
	for _, t := range toks {
		buf = append(buf, t.Text...)
	}
	return string(buf)
}

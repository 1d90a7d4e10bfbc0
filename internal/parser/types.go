package parser

import (
	"strings"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/token"
)

// parseType: [annotations] (primitive | Ident [<args>] {'.' Ident [<args>]}) {'[' ']'}
// Аннотации типа отбрасываются, в Text остаётся только сам тип.
func (p *Parser) parseType() (decl.TypeRef, bool) {
	p.parseAnnotations()
	start := p.peek().Span
	var b strings.Builder

	switch t := p.peek(); {
	case t.IsPrimitive():
		b.WriteString(p.advance().Text)
	case t.Kind == token.Ident:
		for {
			b.WriteString(p.advance().Text)
			if p.at(token.Lt) {
				b.WriteString(p.skipAngles())
			}
			if !p.at(token.Dot) {
				break
			}
			next := p.peekN(1)
			if next.Kind != token.Ident && next.Kind != token.At {
				break
			}
			p.advance()
			b.WriteByte('.')
			p.parseAnnotations()
			if !p.at(token.Ident) {
				p.err(diag.SynExpectType, "expected type name after '.'")
				return decl.TypeRef{}, false
			}
		}
	default:
		p.err(diag.SynExpectType, "expected type, got "+describe(t))
		return decl.TypeRef{}, false
	}

	ref := decl.TypeRef{}
	ref.Dims = p.parseDims()
	ref.Text = b.String() + strings.Repeat("[]", ref.Dims)
	ref.Span = p.cover(start)
	return ref, true
}

// parseDims считает пары '[' ']' (в том числе с аннотациями перед ними).
func (p *Parser) parseDims() int {
	dims := 0
	for {
		if p.at(token.At) {
			save := p.pos
			p.parseAnnotations()
			if !p.at(token.LBracket) {
				p.pos = save
				return dims
			}
		}
		if !p.at(token.LBracket) || p.peekN(1).Kind != token.RBracket {
			return dims
		}
		p.advance()
		p.advance()
		dims++
	}
}

// parseTypeList: Type {',' Type}
func (p *Parser) parseTypeList() []decl.TypeRef {
	var out []decl.TypeRef
	for {
		ref, ok := p.parseType()
		if !ok {
			return out
		}
		out = append(out, ref)
		if !p.at(token.Comma) {
			return out
		}
		p.advance()
	}
}

// parseTypeParams: '<' TypeParam {',' TypeParam} '>'
// TypeParam: [annotations] Ident [extends Type {'&' Type}]
func (p *Parser) parseTypeParams() []decl.TypeParam {
	open := p.advance() // '<'
	var out []decl.TypeParam
	for !p.atOr(token.Gt, token.EOF) {
		p.parseAnnotations()
		name, ok := p.expectIdent("type parameter name")
		if !ok {
			break
		}
		tp := decl.TypeParam{Name: name.Text}
		if p.at(token.KwExtends) {
			p.advance()
			for {
				b, ok := p.parseType()
				if !ok {
					break
				}
				tp.Bounds = append(tp.Bounds, b)
				if !p.at(token.Amp) {
					break
				}
				p.advance()
			}
		}
		tp.Span = p.cover(name.Span)
		out = append(out, tp)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.at(token.Gt) {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '<' of type parameters")
		// пропускаем до '>' или начала тела
		for !p.atOr(token.Gt, token.EOF, token.LBrace, token.LParen) {
			p.advance()
		}
		if !p.at(token.Gt) {
			return out
		}
	}
	p.advance() // '>'
	return out
}

package parser

import (
	"strings"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/source"
	"busguard/internal/token"
)

// parseTypeBody: '{' [enum constants] {member} '}'
func (p *Parser) parseTypeBody(t *decl.Type) {
	open := p.advance() // '{'
	if t.TypeKind == decl.KindEnum {
		p.parseEnumConstants(t)
	}
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		if !p.parseMember(t) {
			p.resyncMember()
			if p.pos == before {
				p.advance()
			}
		}
	}
	if p.at(token.EOF) {
		p.report(diag.SynUnclosedBrace, diag.SevError, open.Span, "unclosed '{' of "+t.TypeKind.String()+" "+t.Name)
		return
	}
	p.advance() // '}'
}

// parseEnumConstants: [Constant {',' Constant}] [','] [';']
func (p *Parser) parseEnumConstants(t *decl.Type) {
	for p.atOr(token.Ident, token.At) {
		start := p.peek().Span
		annots := p.parseAnnotations()
		name, ok := p.expectIdent("enum constant")
		if !ok {
			return
		}
		if p.at(token.LParen) {
			p.skipBalanced(token.LParen, token.RParen)
		}
		if p.at(token.LBrace) {
			p.skipBalanced(token.LBrace, token.RBrace)
		}
		t.AddMember(&decl.Field{
			Header: decl.Header{
				Name:     name.Text,
				Mods:     decl.ModPublic | decl.ModStatic | decl.ModFinal,
				Annots:   annots,
				NameSpan: name.Span,
				Span:     p.cover(start),
			},
			Type:         decl.TypeRef{Text: t.Name, Name: t.Qualified, Span: t.NameSpan},
			EnumConstant: true,
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseMember разбирает одно объявление внутри тела типа.
func (p *Parser) parseMember(owner *decl.Type) bool {
	start := p.peek().Span
	switch {
	case p.at(token.Semicolon):
		p.advance()
		return true
	case p.at(token.LBrace):
		return p.skipBalanced(token.LBrace, token.RBrace) // инициализатор экземпляра
	case p.at(token.KwStatic) && p.peekN(1).Kind == token.LBrace:
		p.advance()
		return p.skipBalanced(token.LBrace, token.RBrace)
	}

	mods, annots := p.parseModifiers(nil)
	if kind, ok := p.typeKeyword(); ok {
		nt, ok := p.parseTypeRest(owner, kind, mods, annots, start)
		if ok {
			owner.AddMember(nt)
		}
		return ok
	}

	var typeParams []decl.TypeParam
	if p.at(token.Lt) {
		typeParams = p.parseTypeParams() // <T> void m(...)
	}

	// конструктор (и компактный конструктор записи)
	if p.atIdent(owner.Name) {
		next := p.peekN(1).Kind
		if next == token.LParen || (owner.TypeKind == decl.KindRecord && next == token.LBrace) {
			name := p.advance()
			return p.parseMethodRest(owner, start, mods, annots, typeParams, decl.TypeRef{}, name, true)
		}
	}

	var result decl.TypeRef
	if p.at(token.KwVoid) {
		v := p.advance()
		result = decl.TypeRef{Text: "void", Span: v.Span}
	} else {
		ref, ok := p.parseType()
		if !ok {
			return false
		}
		result = ref
	}

	name, ok := p.expectIdent("member name")
	if !ok {
		return false
	}
	if p.at(token.LParen) {
		return p.parseMethodRest(owner, start, mods, annots, typeParams, result, name, false)
	}
	return p.parseFieldRest(owner, start, mods, annots, result, name)
}

func (p *Parser) parseMethodRest(owner *decl.Type, start source.Span, mods decl.Modifiers,
	annots []*decl.Annotation, typeParams []decl.TypeParam, result decl.TypeRef, name token.Token, ctor bool,
) bool {
	m := &decl.Method{
		Header: decl.Header{
			Name:     name.Text,
			Mods:     mods,
			Annots:   annots,
			NameSpan: name.Span,
		},
		TypeParams:  typeParams,
		Constructor: ctor,
		Result:      result,
	}
	if p.at(token.LParen) {
		if !p.parseParams(m) {
			return false
		}
	}
	if dims := p.parseDims(); dims > 0 {
		m.Result.Dims += dims
		m.Result.Text += strings.Repeat("[]", dims)
	}
	if p.at(token.KwThrows) {
		p.advance()
		p.parseTypeList()
	}
	if p.at(token.KwDefault) {
		p.advance()
		p.parseElementValue()
	}

	hasBody := false
	switch {
	case p.at(token.LBrace):
		if !p.skipBalanced(token.LBrace, token.RBrace) {
			return false
		}
		hasBody = true
	case p.at(token.Semicolon):
		p.advance()
	default:
		p.err(diag.SynExpectSemicolon, "expected method body or ';', got "+describe(p.peek()))
		return false
	}

	m.Mods |= implicitMethodModifiers(owner, m.Mods, ctor, hasBody)
	m.Span = p.cover(start)
	owner.AddMember(m)
	return true
}

// parseParams: '(' [Param {',' Param}] ')'
// Receiver-параметр (Foo this) в список не попадает.
func (p *Parser) parseParams(m *decl.Method) bool {
	p.advance() // '('
params:
	for !p.atOr(token.RParen, token.EOF) {
		start := p.peek().Span
		mods, annots := p.parseModifiers(nil)
		ref, ok := p.parseType()
		if !ok {
			break params
		}
		varargs := false
		if p.at(token.Ellipsis) {
			p.advance()
			varargs = true
			ref.Dims++
			ref.Text += "..."
		}

		switch {
		case p.at(token.KwThis):
			p.advance()
		case p.at(token.Ident) && p.peekN(1).Kind == token.Dot && p.peekN(2).Kind == token.KwThis:
			p.advance()
			p.advance()
			p.advance()
		default:
			name, ok := p.expectIdent("parameter name")
			if !ok {
				break params
			}
			if dims := p.parseDims(); dims > 0 {
				ref.Dims += dims
				ref.Text += strings.Repeat("[]", dims)
			}
			m.AddParam(&decl.Param{
				Header: decl.Header{
					Name:     name.Text,
					Mods:     mods,
					Annots:   annots,
					NameSpan: name.Span,
					Span:     p.cover(start),
				},
				Type:    ref,
				Varargs: varargs,
			})
		}

		if !p.at(token.Comma) {
			break params
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list, got "+describe(p.peek())); !ok {
		return false
	}
	return true
}

// parseFieldRest: Declarator {',' Declarator} ';'
func (p *Parser) parseFieldRest(owner *decl.Type, start source.Span, mods decl.Modifiers,
	annots []*decl.Annotation, typ decl.TypeRef, name token.Token,
) bool {
	mods |= implicitFieldModifiers(owner)
	for {
		ref := typ
		if dims := p.parseDims(); dims > 0 {
			ref.Dims += dims
			ref.Text += strings.Repeat("[]", dims)
		}
		if p.at(token.Assign) {
			p.advance()
			p.skipExpression()
		}
		owner.AddMember(&decl.Field{
			Header: decl.Header{
				Name:     name.Text,
				Mods:     mods,
				Annots:   annots,
				NameSpan: name.Span,
				Span:     p.cover(start),
			},
			Type: ref,
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		next, ok := p.expectIdent("field name")
		if !ok {
			return false
		}
		name = next
	}
	return p.expectSemi()
}

// resyncMember - пропускаем до ';' (съедаем), до '}' (не съедаем, это конец тела)
// или через сбалансированный блок.
func (p *Parser) resyncMember() {
	for !p.at(token.EOF) {
		switch {
		case p.at(token.Semicolon):
			p.advance()
			return
		case p.at(token.RBrace):
			return
		case p.at(token.LBrace):
			p.skipBalanced(token.LBrace, token.RBrace)
			return
		}
		p.advance()
	}
}

// implicitMethodModifiers: методы интерфейса неявно public (кроме private),
// без тела и не static/default/private - ещё и abstract. Конструкторы enum неявно private.
func implicitMethodModifiers(owner *decl.Type, mods decl.Modifiers, ctor, hasBody bool) decl.Modifiers {
	var m decl.Modifiers
	switch {
	case isInterfaceLike(owner):
		if !mods.Has(decl.ModPrivate) {
			m |= decl.ModPublic
		}
		if !hasBody && mods&(decl.ModStatic|decl.ModDefault|decl.ModPrivate) == 0 {
			m |= decl.ModAbstract
		}
	case owner.TypeKind == decl.KindEnum && ctor:
		m |= decl.ModPrivate
	}
	return m
}

// implicitFieldModifiers: поля интерфейса - public static final.
func implicitFieldModifiers(owner *decl.Type) decl.Modifiers {
	if isInterfaceLike(owner) {
		return decl.ModPublic | decl.ModStatic | decl.ModFinal
	}
	return 0
}

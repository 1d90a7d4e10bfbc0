package parser

import (
	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/source"
	"busguard/internal/token"
)

// typeKeyword определяет вид объявления типа по текущему токену.
// record - контекстное слово: считается ключевым, только если дальше Ident и '(' или '<'.
func (p *Parser) typeKeyword() (decl.Kind, bool) {
	t := p.peek()
	switch {
	case t.Kind == token.KwClass:
		return decl.KindClass, true
	case t.Kind == token.KwInterface:
		return decl.KindInterface, true
	case t.Kind == token.KwEnum:
		return decl.KindEnum, true
	case t.Kind == token.At && p.peekN(1).Kind == token.KwInterface:
		return decl.KindAnnotationType, true
	case t.IsIdentText("record") && p.peekN(1).Kind == token.Ident &&
		(p.peekN(2).Kind == token.LParen || p.peekN(2).Kind == token.Lt):
		return decl.KindRecord, true
	}
	return decl.KindInvalid, false
}

// parseTypeDeclaration: modifiers (class|interface|enum|record|@interface) Name ... body
func (p *Parser) parseTypeDeclaration(outer *decl.Type, annots []*decl.Annotation, start source.Span) (*decl.Type, bool) {
	mods, annots := p.parseModifiers(annots)
	kind, ok := p.typeKeyword()
	if !ok {
		if outer == nil {
			p.err(diag.SynUnexpectedTopLevel, "expected class, interface, enum or record declaration, got "+describe(p.peek()))
		} else {
			p.err(diag.SynUnexpectedToken, "expected member declaration, got "+describe(p.peek()))
		}
		return nil, false
	}
	return p.parseTypeRest(outer, kind, mods, annots, start)
}

func (p *Parser) parseTypeRest(outer *decl.Type, kind decl.Kind, mods decl.Modifiers, annots []*decl.Annotation, start source.Span) (*decl.Type, bool) {
	if kind == decl.KindAnnotationType {
		p.advance() // '@'
	}
	p.advance() // class / interface / enum / record

	nameTok, ok := p.expectIdent("type name")
	if !ok {
		return nil, false
	}

	t := &decl.Type{
		Header: decl.Header{
			Name:     nameTok.Text,
			Mods:     mods | implicitTypeModifiers(outer, kind),
			Annots:   annots,
			NameSpan: nameTok.Span,
		},
		TypeKind:  kind,
		Qualified: qualify(p.unit.Package, outer, nameTok.Text),
		Unit:      p.unit,
	}
	if outer != nil {
		t.Parent = outer
	}

	if p.at(token.Lt) {
		t.TypeParams = p.parseTypeParams()
	}

	var components []*decl.Field
	if kind == decl.KindRecord {
		components = p.parseRecordHeader(t)
	}

	for {
		switch {
		case p.at(token.KwExtends):
			p.advance()
			list := p.parseTypeList()
			if kind == decl.KindInterface {
				t.Interfaces = append(t.Interfaces, list...)
			} else if len(list) > 0 {
				super := list[0]
				t.Super = &super
				if len(list) > 1 {
					p.report(diag.SynUnexpectedToken, diag.SevError, list[1].Span, "class can only extend one class")
				}
			}
			continue
		case p.at(token.KwImplements):
			p.advance()
			t.Interfaces = append(t.Interfaces, p.parseTypeList()...)
			continue
		case p.atIdent("permits"):
			p.advance()
			p.parseTypeList()
			continue
		}
		break
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' to start type body, got "+describe(p.peek()))
		return nil, false
	}
	for _, c := range components {
		t.AddMember(c)
	}
	p.parseTypeBody(t)
	t.Span = p.cover(start)
	return t, true
}

// parseRecordHeader: '(' [Component {',' Component}] ')'
// Компоненты записи становятся private final полями.
func (p *Parser) parseRecordHeader(t *decl.Type) []*decl.Field {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after record name"); !ok {
		return nil
	}
	var out []*decl.Field
	for !p.atOr(token.RParen, token.EOF) {
		start := p.peek().Span
		_, annots := p.parseModifiers(nil)
		ref, ok := p.parseType()
		if !ok {
			break
		}
		if p.at(token.Ellipsis) {
			p.advance()
			ref.Dims++
			ref.Text += "[]"
		}
		name, ok := p.expectIdent("record component name")
		if !ok {
			break
		}
		out = append(out, &decl.Field{
			Header: decl.Header{
				Name:     name.Text,
				Mods:     decl.ModPrivate | decl.ModFinal,
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
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close record header")
	return out
}

func qualify(pkg string, outer *decl.Type, name string) string {
	switch {
	case outer != nil:
		return outer.Qualified + "." + name
	case pkg != "":
		return pkg + "." + name
	default:
		return name
	}
}

// implicitTypeModifiers - неявные модификаторы вложенных типов:
// enum, record, interface и типы внутри interface - static; внутри interface ещё и public.
func implicitTypeModifiers(outer *decl.Type, kind decl.Kind) decl.Modifiers {
	if outer == nil {
		return 0
	}
	var m decl.Modifiers
	switch kind {
	case decl.KindEnum, decl.KindRecord, decl.KindInterface, decl.KindAnnotationType:
		m |= decl.ModStatic
	}
	if isInterfaceLike(outer) {
		m |= decl.ModPublic | decl.ModStatic
	}
	return m
}

func isInterfaceLike(t *decl.Type) bool {
	return t != nil && (t.TypeKind == decl.KindInterface || t.TypeKind == decl.KindAnnotationType)
}

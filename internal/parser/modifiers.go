package parser

import (
	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/source"
	"busguard/internal/token"
)

// parseModifiers читает вперемешку аннотации и модификаторы.
// Контекстные sealed / non-sealed распознаются по следующему токену.
func (p *Parser) parseModifiers(annots []*decl.Annotation) (decl.Modifiers, []*decl.Annotation) {
	var mods decl.Modifiers
	add := func(m decl.Modifiers, sp source.Span, word string) {
		if mods&m != 0 {
			p.warn(diag.SynModifierNotAllowed, sp, "repeated modifier '"+word+"'")
		}
		mods |= m
	}
	for {
		t := p.peek()
		switch {
		case t.Kind == token.At && p.peekN(1).Kind != token.KwInterface:
			if a, ok := p.parseAnnotation(); ok {
				annots = append(annots, a)
			}
		case t.IsModifier():
			p.advance()
			m, _ := decl.ModifierByKeyword(t.Text)
			add(m, t.Span, t.Text)
		case t.Kind == token.KwDefault && p.peekN(1).Kind != token.Colon:
			p.advance()
			add(decl.ModDefault, t.Span, t.Text)
		case t.IsIdentText("sealed") && p.startsDeclAfterContextual(1):
			p.advance()
			add(decl.ModSealed, t.Span, t.Text)
		case t.IsIdentText("non") && p.peekN(1).Kind == token.Operator && p.peekN(1).Text == "-" &&
			p.peekN(2).IsIdentText("sealed"):
			p.advance()
			p.advance()
			last := p.advance()
			add(decl.ModNonSealed, t.Span.Cover(last.Span), "non-sealed")
		default:
			return mods, annots
		}
	}
}

// startsDeclAfterContextual: токен на смещении n продолжает список модификаторов
// или начинает объявление типа.
func (p *Parser) startsDeclAfterContextual(n int) bool {
	t := p.peekN(n)
	switch {
	case t.IsModifier(), t.Kind == token.KwClass, t.Kind == token.KwInterface, t.Kind == token.At:
		return true
	case t.IsIdentText("record"), t.IsIdentText("non"), t.IsIdentText("sealed"):
		return true
	}
	return false
}

// parseAnnotations читает подряд идущие аннотации (без модификаторов).
func (p *Parser) parseAnnotations() []*decl.Annotation {
	var out []*decl.Annotation
	for p.at(token.At) && p.peekN(1).Kind != token.KwInterface {
		a, ok := p.parseAnnotation()
		if !ok {
			break
		}
		out = append(out, a)
	}
	return out
}

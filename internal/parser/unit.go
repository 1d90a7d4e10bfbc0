package parser

import (
	"strings"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/token"
)

// parseUnit - основной цикл: package, imports, затем объявления типов до EOF.
func (p *Parser) parseUnit() {
	// аннотации перед package относятся к пакету (package-info.java), иначе к первому типу
	start := p.peek().Span
	annots := p.parseAnnotations()
	if p.at(token.KwPackage) {
		p.advance()
		name, _ := p.parseQualifiedName("package name")
		p.unit.Package = name
		p.expectSemi()
		annots = nil
		start = p.peek().Span
	}

	for p.at(token.KwImport) {
		p.parseImport()
		start = p.peek().Span
	}

	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			start = p.peek().Span
			continue
		}
		if p.at(token.KwImport) {
			p.err(diag.SynUnexpectedTopLevel, "import must precede type declarations")
			p.parseImport()
			continue
		}
		before := p.pos
		t, ok := p.parseTypeDeclaration(nil, annots, start)
		annots = nil
		if ok {
			p.unit.Types = append(p.unit.Types, t)
		} else {
			p.resyncTop()
			if p.pos == before {
				p.advance() // гарантируем прогресс
			}
		}
		start = p.peek().Span
	}
}

// parseImport: import [static] a.b.C; | import a.b.*;
func (p *Parser) parseImport() {
	kw := p.advance() // import
	imp := decl.Import{}
	if p.at(token.KwStatic) {
		p.advance()
		imp.Static = true
	}
	first, ok := p.expectIdent("import path")
	if !ok {
		p.resyncTop()
		return
	}
	parts := []string{first.Text}
	for p.at(token.Dot) {
		p.advance()
		if p.at(token.Operator) && p.peek().Text == "*" {
			p.advance()
			imp.Wildcard = true
			break
		}
		seg, ok := p.expectIdent("import path segment")
		if !ok {
			break
		}
		parts = append(parts, seg.Text)
	}
	imp.Path = strings.Join(parts, ".")
	p.expectSemi()
	imp.Span = p.cover(kw.Span)
	p.unit.Imports = append(p.unit.Imports, imp)
}

// parseQualifiedName: Ident {'.' Ident}
func (p *Parser) parseQualifiedName(what string) (string, bool) {
	first, ok := p.expectIdent(what)
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString(first.Text)
	for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
		p.advance()
		b.WriteByte('.')
		b.WriteString(p.advance().Text)
	}
	return b.String(), true
}

// resyncTop - восстановление после ошибки на верхнем уровне:
// прокручиваем до стартового токена следующего объявления или EOF,
// перепрыгивая сбалансированные блоки.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		switch {
		case p.at(token.LBrace):
			p.skipBalanced(token.LBrace, token.RBrace)
			return
		case p.at(token.Semicolon):
			p.advance()
			return
		case isTopLevelStarter(p.peek()):
			return
		}
		p.advance()
	}
}

// isTopLevelStarter - принадлежит ли токен стартерам объявления типа.
func isTopLevelStarter(t token.Token) bool {
	switch t.Kind {
	case token.KwClass, token.KwInterface, token.KwEnum, token.At, token.KwImport:
		return true
	}
	return t.IsModifier()
}

package parser

import (
	"slices"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/lexer"
	"busguard/internal/source"
	"busguard/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Unit   *decl.Unit
	Errors uint
}

// Parser - состояние парсера на один файл.
// Токены читаются целиком заранее: для модификаторов вроде `non-sealed`
// нужен просмотр на несколько токенов вперёд.
type Parser struct {
	toks     []token.Token
	pos      int
	fs       *source.FileSet
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	unit     *decl.Unit
}

// ParseFile - входная точка для разбора одного файла.
// Тела методов и инициализаторы пропускаются: нужны только объявления.
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, file *source.File, opts Options) Result {
	p := Parser{
		toks: lx.All(),
		fs:   fs,
		file: file,
		opts: opts,
		unit: &decl.Unit{File: file.ID, Path: file.Path},
	}
	p.lastSpan = source.Span{File: file.ID}

	p.parseUnit()
	return Result{Unit: p.unit, Errors: p.opts.CurrentErrors}
}

// ParseSource лексит и разбирает файл id из fs, отправляя все диагностики в r.
func ParseSource(fs *source.FileSet, id source.FileID, r diag.Reporter) Result {
	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{Reporter: r})
	return ParseFile(fs, lx, file, Options{Reporter: r})
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

func (p *Parser) peekN(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1] // EOF
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) atIdent(text string) bool {
	return p.peek().IsIdentText(text)
}

// cover - span от start до последнего съеденного токена
func (p *Parser) cover(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}

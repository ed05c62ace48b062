package parser

import (
	"slices"

	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/lexer"
	"tether/internal/source"
	"tether/internal/token"
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
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseTopLevel()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// atIdent reports whether the next token is the identifier text (contextual
// keywords like `as` and `of` come through as Ident).
func (p *Parser) atIdent(text string) bool {
	tok := p.lx.Peek()
	return tok.Kind == token.Ident && tok.Text == text
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseTopLevel — основной цикл: пока не EOF — parseStmt.
func (p *Parser) parseTopLevel() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		before := p.lx.Peek().Span
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			// защита от зацикливания на токене, который ничего не начинает
			if p.lx.Peek().Span == before && !p.at(token.EOF) {
				p.advance()
			}
			continue
		}
		p.arenas.PushStmt(p.file, stmt)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lastSpan)
}

// resyncStmt — восстановление после ошибки: прокручиваем до ';', '}' или
// до стартового токена следующего statement.
func (p *Parser) resyncStmt() {
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if k == token.Semicolon {
			p.advance()
			return
		}
		if k == token.RBrace || isStmtStarter(k) {
			return
		}
		p.advance()
	}
}

func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwConst, token.KwLet, token.KwVar, token.KwFunction, token.KwClass,
		token.KwInterface, token.KwIf, token.KwWhile, token.KwDo, token.KwFor,
		token.KwSwitch, token.KwReturn, token.KwBreak, token.KwContinue,
		token.KwThrow, token.KwTry, token.LBrace:
		return true
	default:
		return false
	}
}

// parseIdent — утилита: ожидает Ident и интернирует его.
// На ошибке — репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return source.NoStringID, p.getDiagnosticSpan(), false
}

// parsePropName — имя свойства после '.': идентификатор или зарезервированное
// слово (obj.delete валидно).
func (p *Parser) parsePropName() (source.StringID, source.Span, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.Ident || tok.IsKeyword() {
		p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected property name, got \""+tok.Text+"\"")
	return source.NoStringID, p.getDiagnosticSpan(), false
}

package lexer

import (
	"tether/internal/diag"
	"tether/internal/source"
	"tether/internal/token"
)

// Lexer produces tokens for one TypeScript source file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // буфер для Peek
	look2  *token.Token // второй слот, только для Peek2
	// prev is the kind of the last scanned significant token, used to
	// disambiguate regex literals from division.
	prev token.Kind
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// Next возвращает следующий значимый токен (комментарии и пробелы пропущены).
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = lx.look2
		lx.look2 = nil
		return tok
	}
	return lx.scan()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.scan()
	lx.look = &t
	return t
}

// Peek2 возвращает токен за следующим. Сканирование идёт в порядке потока,
// так что эвристика regex/деление не ломается.
func (lx *Lexer) Peek2() token.Token {
	if lx.look == nil {
		t := lx.scan()
		lx.look = &t
	}
	if lx.look2 == nil {
		t := lx.scan()
		lx.look2 = &t
	}
	return *lx.look2
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch) || (ch == '.' && lx.isNumberAfterDot()):
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		tok = lx.scanTemplate()

	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegex()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	lx.prev = tok.Kind
	return tok
}

// skipTrivia съедает пробелы и комментарии. Неоконченный блочный
// комментарий — диагностика, но курсор доходит до EOF и лексинг продолжается.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			lx.cursor.Bump()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed := false
			for !lx.cursor.EOF() {
				if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
		default:
			return
		}
	}
}

// regexAllowed reports whether a '/' at the current position starts a regex
// literal rather than a division operator, judged from the previous token.
func (lx *Lexer) regexAllowed() bool {
	switch lx.prev {
	case token.Ident, token.NumberLit, token.StringLit, token.RegexLit,
		token.TemplateFull, token.TemplateTail,
		token.KwThis, token.KwSuper, token.KwTrue, token.KwFalse, token.KwNull,
		token.RParen, token.RBracket, token.PlusPlus, token.MinusMinus:
		return false
	default:
		return true
	}
}

// EmptySpan возвращает пустой Span на текущей позиции.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the underlying source file.
func (lx *Lexer) File() *source.File {
	return lx.file
}

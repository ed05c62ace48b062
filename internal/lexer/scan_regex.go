package lexer

import (
	"tether/internal/diag"
	"tether/internal/token"
)

// scanRegex сканирует литерал регулярного выражения /.../flags.
// Внутри классов символов [...] неэкранированный '/' не завершает литерал.
func (lx *Lexer) scanRegex() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	inClass := false
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		switch b {
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.bumpRune()
			}
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				lx.cursor.Bump()
				closed = true
			}
		}
		if closed {
			break
		}
		lx.bumpRune()
	}

	if !closed {
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedRegex, sp, "unterminated regular expression literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// флаги
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.RegexLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

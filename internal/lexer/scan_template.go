package lexer

import (
	"tether/internal/diag"
	"tether/internal/token"
)

// scanTemplate сканирует открытие шаблонного литерала, начиная с '`'.
// Возвращает TemplateFull (без подстановок) или TemplateHead (`...${).
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`'
	return lx.scanTemplateRest(start, token.TemplateFull, token.TemplateHead)
}

// ReScanTemplate continues a template literal after a substitution. The
// parser calls it when, inside a template, the next buffered token is '}':
// the brace is re-interpreted as the start of a TemplateMiddle/TemplateTail
// part. Panics if the lookahead is not '}': that is a parser bug.
func (lx *Lexer) ReScanTemplate() token.Token {
	if lx.look == nil || lx.look.Kind != token.RBrace || lx.look2 != nil {
		panic("lexer: ReScanTemplate without a buffered '}'")
	}
	rbrace := *lx.look
	lx.look = nil
	lx.cursor.Off = rbrace.Span.Start
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '}'
	tok := lx.scanTemplateRest(start, token.TemplateTail, token.TemplateMiddle)
	lx.prev = tok.Kind
	return tok
}

// scanTemplateRest дочитывает часть шаблона до '`' (closedKind) или '${'
// (openKind). Escape-последовательности пропускаются целиком.
func (lx *Lexer) scanTemplateRest(start Mark, closedKind, openKind token.Kind) token.Token {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '`':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: closedKind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.bumpRune()
			}
		case '$':
			if lx.cursor.PeekAt(1) == '{' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: openKind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			lx.cursor.Bump()
		default:
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

package lexer

import (
	"tether/internal/diag"
	"tether/internal/token"
)

// scanNumber сканирует числовые литералы: десятичные (с точкой, экспонентой
// и разделителями '_'), 0x/0o/0b и суффикс BigInt 'n'.
// Значение литерала анализатору не нужно, поэтому текст не разбирается.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(isHex)
			lx.cursor.Eat('n')
			return lx.numberToken(start)
		case 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			lx.cursor.Eat('n')
			return lx.numberToken(start)
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' })
			lx.cursor.Eat('n')
			return lx.numberToken(start)
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		return lx.numberToken(start)
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	} else if lx.cursor.Peek() == '.' && lx.cursor.Off > uint32(start) {
		// "1." — допустимо
		lx.cursor.Bump()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			lx.eatDigits(isDec)
		}
	}
	return lx.numberToken(start)
}

func (lx *Lexer) eatDigits(valid func(byte) bool) {
	seen := false
	for {
		b := lx.cursor.Peek()
		if valid(b) {
			lx.cursor.Bump()
			seen = true
			continue
		}
		// числовой разделитель между цифрами
		if b == '_' && seen && valid(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			continue
		}
		return
	}
}

func (lx *Lexer) numberToken(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	// цифра не может продолжаться идентификатором: "3px" — ошибка
	if isIdentStartByte(lx.cursor.Peek()) {
		bad := lx.cursor.Mark()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(bad), "identifier characters cannot follow a numeric literal")
		sp = lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

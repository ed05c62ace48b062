package lexer

import (
	"fmt"

	"tether/internal/diag"
	"tether/internal/token"
)

// scanOperatorOrPunct сканирует операторы и пунктуацию с жадным матчингом:
// более длинные последовательности проверяются первыми.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	mk := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// 4 байта
	if lx.try4('>', '>', '>', '=') {
		return mk(token.UShrAssign)
	}

	// 3 байта
	switch {
	case lx.try3('=', '=', '='):
		return mk(token.EqEqEq)
	case lx.try3('!', '=', '='):
		return mk(token.NotEqEq)
	case lx.try3('*', '*', '='):
		return mk(token.PowAssign)
	case lx.try3('&', '&', '='):
		return mk(token.AndAndAssign)
	case lx.try3('|', '|', '='):
		return mk(token.OrOrAssign)
	case lx.try3('?', '?', '='):
		return mk(token.CoalesceAssign)
	case lx.try3('>', '>', '>'):
		return mk(token.UShr)
	case lx.try3('<', '<', '='):
		return mk(token.ShlAssign)
	case lx.try3('>', '>', '='):
		return mk(token.ShrAssign)
	case lx.try3('.', '.', '.'):
		return mk(token.Ellipsis)
	}

	// 2 байта
	switch {
	case lx.try2('=', '='):
		return mk(token.EqEq)
	case lx.try2('!', '='):
		return mk(token.NotEq)
	case lx.try2('=', '>'):
		return mk(token.Arrow)
	case lx.try2('+', '='):
		return mk(token.PlusAssign)
	case lx.try2('-', '='):
		return mk(token.MinusAssign)
	case lx.try2('*', '='):
		return mk(token.StarAssign)
	case lx.try2('/', '='):
		return mk(token.SlashAssign)
	case lx.try2('%', '='):
		return mk(token.PercentAssign)
	case lx.try2('&', '='):
		return mk(token.AmpAssign)
	case lx.try2('|', '='):
		return mk(token.PipeAssign)
	case lx.try2('^', '='):
		return mk(token.CaretAssign)
	case lx.try2('*', '*'):
		return mk(token.Pow)
	case lx.try2('&', '&'):
		return mk(token.AndAnd)
	case lx.try2('|', '|'):
		return mk(token.OrOr)
	case lx.try2('?', '?'):
		return mk(token.Coalesce)
	case lx.try2('+', '+'):
		return mk(token.PlusPlus)
	case lx.try2('-', '-'):
		return mk(token.MinusMinus)
	case lx.try2('<', '<'):
		return mk(token.Shl)
	case lx.try2('>', '>'):
		return mk(token.Shr)
	case lx.try2('<', '='):
		return mk(token.LtEq)
	case lx.try2('>', '='):
		return mk(token.GtEq)
	}

	// "?." только если дальше не цифра: "a?.5:b" — тернарник
	if lx.cursor.Peek() == '?' && lx.cursor.PeekAt(1) == '.' && !isDec(lx.cursor.PeekAt(2)) {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return mk(token.QuestionDot)
	}

	// 1 байт
	single := map[byte]token.Kind{
		'(': token.LParen, ')': token.RParen,
		'{': token.LBrace, '}': token.RBrace,
		'[': token.LBracket, ']': token.RBracket,
		';': token.Semicolon, ',': token.Comma, '.': token.Dot,
		'?': token.Question, ':': token.Colon,
		'=': token.Assign, '<': token.Lt, '>': token.Gt,
		'+': token.Plus, '-': token.Minus, '*': token.Star,
		'/': token.Slash, '%': token.Percent,
		'&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde,
		'!': token.Bang,
	}
	b := lx.cursor.Peek()
	if kind, ok := single[b]; ok {
		lx.cursor.Bump()
		return mk(kind)
	}

	// неизвестный символ
	lx.bumpRune()
	tok := mk(token.Invalid)
	lx.report(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", tok.Text))
	return tok
}

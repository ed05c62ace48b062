package lexer

import (
	"tether/internal/diag"
	"tether/internal/source"
)

// Options configures a Lexer. Reporter может быть nil — тогда ошибки
// игнорируем, но продолжаем лексить.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

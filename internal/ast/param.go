package ast

import (
	"tether/internal/source"
)

// Param is a function/method parameter. Destructuring parameters carry Pat
// instead of Name.
type Param struct {
	Name     source.StringID
	NameSpan source.Span
	Pat      PatID
	Type     TypeID // optional annotation
	Default  ExprID // optional
	Rest     bool
	Span     source.Span
}

package ast

import (
	"tether/internal/source"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprThis
	ExprSuper
	ExprMember
	ExprIndex
	ExprCall
	ExprNew
	ExprUnary
	ExprUpdate
	ExprBinary
	ExprLogical
	ExprAssign
	ExprTernary
	ExprArrow
	ExprFunction
	ExprObject
	ExprArray
	ExprTemplate
	ExprTagged
	ExprNonNull
	ExprCast
	ExprSpread
)

// Expr is the arena header for one expression; the payload lives in the
// per-kind arena addressed by Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload uint32
}

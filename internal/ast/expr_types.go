package ast

import (
	"tether/internal/source"
)

// ExprLitKind distinguishes literal expressions.
type ExprLitKind uint8

const (
	LitNumber ExprLitKind = iota
	LitString
	LitRegex
	LitTrue
	LitFalse
	LitNull
)

// UnaryOp enumerates prefix unary operators.
type UnaryOp uint8

const (
	UnaryTypeof UnaryOp = iota // typeof x
	UnaryNot                   // !x
	UnaryVoid                  // void x
	UnaryDelete                // delete x
	UnaryNeg                   // -x
	UnaryPos                   // +x
	UnaryBitNot                // ~x
)

// UpdateOp enumerates ++/--.
type UpdateOp uint8

const (
	UpdateInc UpdateOp = iota
	UpdateDec
)

// BinaryOp enumerates non-logical binary operators.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinUShr
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinIn
	BinInstanceof
	BinEqEq
	BinNotEq
	BinEqEqEq
	BinNotEqEq
)

// IsIdentityCheck reports whether the operator only compares its operands
// (equality, identity, or instance check) without retaining their value.
func (op BinaryOp) IsIdentityCheck() bool {
	switch op {
	case BinEqEq, BinNotEq, BinEqEqEq, BinNotEqEq, BinInstanceof:
		return true
	default:
		return false
	}
}

// LogicalOp enumerates short-circuit operators.
type LogicalOp uint8

const (
	LogicalAnd      LogicalOp = iota // &&
	LogicalOr                        // ||
	LogicalCoalesce                  // ??
)

// AssignOp enumerates assignment operators; only AssignPlain matters for
// classification, the rest are kept for faithful representation.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignCompound
)

type ExprIdentData struct {
	Name source.StringID
}

type ExprLitData struct {
	LitKind ExprLitKind
	Value   source.StringID // raw text
}

type ExprMemberData struct {
	Object   ExprID
	Prop     source.StringID
	PropSpan source.Span
	Optional bool // a?.b
}

type ExprIndexData struct {
	Object   ExprID
	Index    ExprID
	Optional bool // a?.[b]
}

type ExprCallData struct {
	Callee   ExprID
	Args     []ExprID
	Optional bool // a?.()
}

type ExprNewData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprUpdateData struct {
	Op      UpdateOp
	Prefix  bool
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprLogicalData struct {
	Op    LogicalOp
	Left  ExprID
	Right ExprID
}

// ExprAssignData represents both `x = v` (Target) and `({a} = v)` (TargetPat).
// Exactly one of Target/TargetPat is valid.
type ExprAssignData struct {
	Op        AssignOp
	Target    ExprID
	TargetPat PatID
	Value     ExprID
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprArrowData struct {
	Params []ParamID
	// Body is set for expression bodies, BodyBlock for block bodies.
	Body      ExprID
	BodyBlock StmtID
	Async     bool
}

type ExprFunctionData struct {
	Name   source.StringID // optional
	Params []ParamID
	Body   StmtID
	// Explicit `this` parameter, if the list opened with one.
	HasThisParam bool
	ThisTypeVoid bool
}

// PropKind distinguishes object literal property shapes.
type PropKind uint8

const (
	// PropInit is `key: value`.
	PropInit PropKind = iota
	// PropShorthand is `{ key }`.
	PropShorthand
	// PropMethod is `key() { ... }` — a plain function value.
	PropMethod
	// PropSpread is `...expr`.
	PropSpread
)

type ObjectProp struct {
	Kind    PropKind
	Key     source.StringID
	KeySpan source.Span
	Value   ExprID
}

type ExprObjectData struct {
	Props []ObjectProp
}

type ExprArrayData struct {
	Elems []ExprID
}

// ExprTemplateData keeps only substitution expressions; raw text parts are
// not needed by the analysis.
type ExprTemplateData struct {
	Subs []ExprID
}

type ExprTaggedData struct {
	Tag   ExprID
	Quasi ExprID // the ExprTemplate node
}

type ExprNonNullData struct {
	Operand ExprID
}

// ExprCastData is `x as T` / `x satisfies T`.
type ExprCastData struct {
	Operand   ExprID
	Type      TypeID
	Satisfies bool
}

type ExprSpreadData struct {
	Operand ExprID
}

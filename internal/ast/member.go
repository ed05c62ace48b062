package ast

import (
	"tether/internal/source"
)

// MemberKind distinguishes class and interface members.
type MemberKind uint8

const (
	MemberInvalid MemberKind = iota
	// MemberMethod is a class method with a body.
	MemberMethod
	// MemberField is a class property, with or without an initializer.
	MemberField
	// MemberMethodSig is an interface method signature (no body).
	MemberMethodSig
	// MemberPropSig is an interface property signature.
	MemberPropSig
	// MemberCtor is a class constructor.
	MemberCtor
	// MemberAccessor is a get/set accessor.
	MemberAccessor
)

// Member is a flat record covering every member shape; which fields are
// meaningful depends on Kind.
type Member struct {
	Kind     MemberKind
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span

	Static   bool
	Readonly bool

	// HasThisParam is true when the parameter list opens with an explicit
	// `this` parameter; ThisTypeVoid is true when that parameter is typed
	// exactly `void`.
	HasThisParam bool
	ThisTypeVoid bool

	Params []ParamID
	Type   TypeID // field/prop annotation or method return type
	Init   ExprID // field initializer, optional
	Body   StmtID // method/ctor body block
}

package ast

import (
	"tether/internal/source"
)

// PatKind distinguishes binding patterns.
type PatKind uint8

const (
	PatInvalid PatKind = iota
	// PatObject is `{ a, b: c, ...rest }`.
	PatObject
	// PatArray is `[a, , b]`.
	PatArray
)

// PatProp is one property of an object pattern. Key is the property being
// read from the source object; Binding is the introduced name (equal to Key
// for shorthand). Nested patterns use SubPat instead of Binding.
type PatProp struct {
	Key     source.StringID
	KeySpan source.Span
	Binding source.StringID
	SubPat  PatID
	Default ExprID // optional
	Rest    bool
}

// PatElem is one element of an array pattern; a hole leaves everything zero.
type PatElem struct {
	Binding source.StringID
	Span    source.Span
	SubPat  PatID
	Default ExprID
	Rest    bool
}

type Pat struct {
	Kind  PatKind
	Span  source.Span
	Props []PatProp // PatObject
	Elems []PatElem // PatArray
}

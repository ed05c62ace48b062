package ast

import (
	"tether/internal/source"
)

// TypeSynKind classifies type annotations at the granularity the analysis
// needs. Anything beyond named types and function types is TypeSynOther.
type TypeSynKind uint8

const (
	TypeSynInvalid TypeSynKind = iota
	// TypeSynName is a bare type reference like `Foo` or `void`.
	TypeSynName
	// TypeSynFn is `(a: T) => R`.
	TypeSynFn
	// TypeSynOther covers unions, generics, literals and everything else.
	TypeSynOther
)

type TypeSyn struct {
	Kind TypeSynKind
	Span source.Span
	Name source.StringID // TypeSynName
}

// IsVoid reports whether the annotation is exactly the `void` type.
func (t *TypeSyn) IsVoid(interner *source.Interner) bool {
	if t == nil || t.Kind != TypeSynName {
		return false
	}
	return interner.MustLookup(t.Name) == "void"
}

package sema

import (
	"tether/internal/ast"
	"tether/internal/source"
)

type SymbolID uint32

const NoSymbolID SymbolID = 0

func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolFunction
	SymbolClass
	SymbolInterface
	SymbolTypeAlias
	SymbolParam
	SymbolCatch
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolInterface:
		return "interface"
	case SymbolTypeAlias:
		return "type-alias"
	case SymbolParam:
		return "param"
	case SymbolCatch:
		return "catch"
	default:
		return "invalid"
	}
}

// Symbol — одно объявление в файле. Для классов и интерфейсов Decl указывает
// на statement объявления, для переменных Init/Annot описывают, чем её
// типизировать.
type Symbol struct {
	Name source.StringID
	Kind SymbolKind
	Span source.Span

	Decl  ast.StmtID // class / interface / function decl
	Init  ast.ExprID // инициализатор переменной, если был
	Annot ast.TypeID // аннотация типа переменной, если была
}

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeFile
	ScopeFunction
	ScopeBlock
)

// Scope models a lexical scope with a parent-child hierarchy.
// Value and type declarations live in separate namespaces: an interface does
// not shadow a value of the same name.
type Scope struct {
	Kind   ScopeKind
	Parent int // индекс в Info.scopes, -1 у корня
	Values map[source.StringID]SymbolID
	Types  map[source.StringID]SymbolID
}

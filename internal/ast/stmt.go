package ast

import (
	"tether/internal/source"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtExpr
	StmtVarDecl
	StmtFunc
	StmtClass
	StmtInterface
	StmtTypeAlias
	StmtReturn
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtForIn
	StmtForOf
	StmtSwitch
	StmtBlock
	StmtBreak
	StmtContinue
	StmtThrow
	StmtTry
	StmtEmpty
)

// Stmt is the arena header for one statement.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload uint32
}

// DeclMode is const/let/var.
type DeclMode uint8

const (
	DeclConst DeclMode = iota
	DeclLet
	DeclVar
)

type StmtExprData struct {
	Expr ExprID
}

// Declarator is one binding in a var statement. Name is set for simple
// bindings, Pat for destructuring.
type Declarator struct {
	Name     source.StringID
	NameSpan source.Span
	Pat      PatID
	Type     TypeID // optional annotation
	Init     ExprID // optional
}

type StmtVarDeclData struct {
	Mode  DeclMode
	Decls []Declarator
}

type StmtFuncData struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []ParamID
	Body     StmtID // block
}

type StmtClassData struct {
	Name        source.StringID
	NameSpan    source.Span
	Extends     source.StringID // optional superclass name
	ExtendsSpan source.Span
	Members     []MemberID
}

type StmtInterfaceData struct {
	Name     source.StringID
	NameSpan source.Span
	Extends  []source.StringID
	Members  []MemberID
}

type StmtTypeAliasData struct {
	Name source.StringID
	Type TypeID
}

type StmtReturnData struct {
	Value ExprID // optional
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID // optional
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtDoWhileData struct {
	Body StmtID
	Cond ExprID
}

// StmtForData is the classic three-clause for. Init is either a statement
// (var decl) or an expression wrapped in StmtExpr; any clause may be absent.
type StmtForData struct {
	Init StmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

// StmtForInOfData covers for-in and for-of; the header binding is either a
// fresh declaration (Decl) or an existing target expression (Target).
type StmtForInOfData struct {
	Decl   StmtID // var decl with exactly one declarator, optional
	Target ExprID // optional
	Seq    ExprID
	Body   StmtID
}

type SwitchCase struct {
	Test ExprID // NoExprID for default
	Body []StmtID
}

type StmtSwitchData struct {
	Disc  ExprID
	Cases []SwitchCase
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtThrowData struct {
	Value ExprID
}

type StmtTryData struct {
	Body       StmtID
	CatchParam source.StringID // optional binding
	CatchBody  StmtID          // optional
	Finally    StmtID          // optional
}

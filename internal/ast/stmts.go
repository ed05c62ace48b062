package ast

import (
	"tether/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena      *Arena[Stmt]
	ExprStmts  *Arena[StmtExprData]
	VarDecls   *Arena[StmtVarDeclData]
	Funcs      *Arena[StmtFuncData]
	Classes    *Arena[StmtClassData]
	Interfaces *Arena[StmtInterfaceData]
	Aliases    *Arena[StmtTypeAliasData]
	Returns    *Arena[StmtReturnData]
	Ifs        *Arena[StmtIfData]
	Whiles     *Arena[StmtWhileData]
	DoWhiles   *Arena[StmtDoWhileData]
	Fors       *Arena[StmtForData]
	ForInOfs   *Arena[StmtForInOfData]
	Switches   *Arena[StmtSwitchData]
	Blocks     *Arena[StmtBlockData]
	Throws     *Arena[StmtThrowData]
	Tries      *Arena[StmtTryData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		ExprStmts:  NewArena[StmtExprData](capHint),
		VarDecls:   NewArena[StmtVarDeclData](capHint),
		Funcs:      NewArena[StmtFuncData](capHint),
		Classes:    NewArena[StmtClassData](capHint),
		Interfaces: NewArena[StmtInterfaceData](capHint),
		Aliases:    NewArena[StmtTypeAliasData](capHint),
		Returns:    NewArena[StmtReturnData](capHint),
		Ifs:        NewArena[StmtIfData](capHint),
		Whiles:     NewArena[StmtWhileData](capHint),
		DoWhiles:   NewArena[StmtDoWhileData](capHint),
		Fors:       NewArena[StmtForData](capHint),
		ForInOfs:   NewArena[StmtForInOfData](capHint),
		Switches:   NewArena[StmtSwitchData](capHint),
		Blocks:     NewArena[StmtBlockData](capHint),
		Throws:     NewArena[StmtThrowData](capHint),
		Tries:      NewArena[StmtTryData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) Kind(id StmtID) StmtKind {
	st := s.Get(id)
	if st == nil {
		return StmtInvalid
	}
	return st.Kind
}

func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	payload := s.ExprStmts.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, payload)
}

func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(st.Payload), true
}

func (s *Stmts) NewVarDecl(span source.Span, mode DeclMode, decls []Declarator) StmtID {
	payload := s.VarDecls.Allocate(StmtVarDeclData{Mode: mode, Decls: decls})
	return s.new(StmtVarDecl, span, payload)
}

func (s *Stmts) VarDecl(id StmtID) (*StmtVarDeclData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtVarDecl {
		return nil, false
	}
	return s.VarDecls.Get(st.Payload), true
}

func (s *Stmts) NewFunc(span source.Span, data StmtFuncData) StmtID {
	payload := s.Funcs.Allocate(data)
	return s.new(StmtFunc, span, payload)
}

func (s *Stmts) Func(id StmtID) (*StmtFuncData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFunc {
		return nil, false
	}
	return s.Funcs.Get(st.Payload), true
}

func (s *Stmts) NewClass(span source.Span, data StmtClassData) StmtID {
	payload := s.Classes.Allocate(data)
	return s.new(StmtClass, span, payload)
}

func (s *Stmts) Class(id StmtID) (*StmtClassData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtClass {
		return nil, false
	}
	return s.Classes.Get(st.Payload), true
}

func (s *Stmts) NewInterface(span source.Span, data StmtInterfaceData) StmtID {
	payload := s.Interfaces.Allocate(data)
	return s.new(StmtInterface, span, payload)
}

func (s *Stmts) Interface(id StmtID) (*StmtInterfaceData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtInterface {
		return nil, false
	}
	return s.Interfaces.Get(st.Payload), true
}

func (s *Stmts) NewTypeAlias(span source.Span, name source.StringID, typ TypeID) StmtID {
	payload := s.Aliases.Allocate(StmtTypeAliasData{Name: name, Type: typ})
	return s.new(StmtTypeAlias, span, payload)
}

func (s *Stmts) TypeAlias(id StmtID) (*StmtTypeAliasData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtTypeAlias {
		return nil, false
	}
	return s.Aliases.Get(st.Payload), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, payload)
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(st.Payload), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, payload)
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(st.Payload), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, payload)
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(st.Payload), true
}

func (s *Stmts) NewDoWhile(span source.Span, body StmtID, cond ExprID) StmtID {
	payload := s.DoWhiles.Allocate(StmtDoWhileData{Body: body, Cond: cond})
	return s.new(StmtDoWhile, span, payload)
}

func (s *Stmts) DoWhile(id StmtID) (*StmtDoWhileData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtDoWhile {
		return nil, false
	}
	return s.DoWhiles.Get(st.Payload), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	payload := s.Fors.Allocate(data)
	return s.new(StmtFor, span, payload)
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(st.Payload), true
}

func (s *Stmts) NewForInOf(span source.Span, kind StmtKind, data StmtForInOfData) StmtID {
	if kind != StmtForIn && kind != StmtForOf {
		panic("NewForInOf: kind must be StmtForIn or StmtForOf")
	}
	payload := s.ForInOfs.Allocate(data)
	return s.new(kind, span, payload)
}

func (s *Stmts) ForInOf(id StmtID) (*StmtForInOfData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtForIn && st.Kind != StmtForOf) {
		return nil, false
	}
	return s.ForInOfs.Get(st.Payload), true
}

func (s *Stmts) NewSwitch(span source.Span, disc ExprID, cases []SwitchCase) StmtID {
	payload := s.Switches.Allocate(StmtSwitchData{Disc: disc, Cases: cases})
	return s.new(StmtSwitch, span, payload)
}

func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtSwitch {
		return nil, false
	}
	return s.Switches.Get(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, payload)
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(st.Payload), true
}

func (s *Stmts) NewBreak(span source.Span) StmtID    { return s.new(StmtBreak, span, 0) }
func (s *Stmts) NewContinue(span source.Span) StmtID { return s.new(StmtContinue, span, 0) }
func (s *Stmts) NewEmpty(span source.Span) StmtID    { return s.new(StmtEmpty, span, 0) }

func (s *Stmts) NewThrow(span source.Span, value ExprID) StmtID {
	payload := s.Throws.Allocate(StmtThrowData{Value: value})
	return s.new(StmtThrow, span, payload)
}

func (s *Stmts) Throw(id StmtID) (*StmtThrowData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtThrow {
		return nil, false
	}
	return s.Throws.Get(st.Payload), true
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	payload := s.Tries.Allocate(data)
	return s.new(StmtTry, span, payload)
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtTry {
		return nil, false
	}
	return s.Tries.Get(st.Payload), true
}

package ast

import (
	"tether/internal/source"
)

type Hints struct{ Files, Stmts, Exprs, Members uint }

// Builder aggregates the arenas for one parse. All IDs handed out by its
// allocators are only meaningful against this builder. StringsInterner may
// be shared between builders of different files.
type Builder struct {
	Files           *Files
	Stmts           *Stmts
	Exprs           *Exprs
	Members         *Arena[Member]
	Params          *Arena[Param]
	Pats            *Arena[Pat]
	Types           *Arena[TypeSyn]
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if interner == nil {
		interner = source.NewInterner()
	}
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Members == 0 {
		hints.Members = 1 << 5
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Members:         NewArena[Member](hints.Members),
		Params:          NewArena[Param](hints.Members),
		Pats:            NewArena[Pat](hints.Members),
		Types:           NewArena[TypeSyn](hints.Members),
		StringsInterner: interner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Stmts = append(f.Stmts, stmt)
}

func (b *Builder) NewMember(m Member) MemberID {
	return MemberID(b.Members.Allocate(m))
}

func (b *Builder) Member(id MemberID) *Member {
	return b.Members.Get(uint32(id))
}

func (b *Builder) NewParam(p Param) ParamID {
	return ParamID(b.Params.Allocate(p))
}

func (b *Builder) Param(id ParamID) *Param {
	return b.Params.Get(uint32(id))
}

func (b *Builder) NewPat(p Pat) PatID {
	return PatID(b.Pats.Allocate(p))
}

func (b *Builder) Pat(id PatID) *Pat {
	return b.Pats.Get(uint32(id))
}

func (b *Builder) NewType(t TypeSyn) TypeID {
	return TypeID(b.Types.Allocate(t))
}

func (b *Builder) Type(id TypeID) *TypeSyn {
	return b.Types.Get(uint32(id))
}

package ast

// Parents maps every expression to the node that owns it. Built in one pass
// after parsing; classification walks up through it.
type Parents struct {
	refs []NodeRef // индекс = ExprID, refs[0] не используется
}

// Get returns the parent of the expression, or the zero NodeRef for a root
// or unknown expression.
func (p *Parents) Get(id ExprID) NodeRef {
	if id == NoExprID || int(id) >= len(p.refs) {
		return NodeRef{}
	}
	return p.refs[id]
}

// BuildParents walks the file and records the owner of every expression.
func BuildParents(b *Builder, file FileID) *Parents {
	w := &parentWalker{
		b:    b,
		refs: make([]NodeRef, b.Exprs.Arena.Len()+1),
	}
	f := b.Files.Get(file)
	if f != nil {
		for _, st := range f.Stmts {
			w.walkStmt(st)
		}
	}
	return &Parents{refs: w.refs}
}

type parentWalker struct {
	b    *Builder
	refs []NodeRef
}

// claim records parent for child and descends into it.
func (w *parentWalker) claim(child ExprID, parent NodeRef) {
	if !child.IsValid() {
		return
	}
	if int(child) < len(w.refs) {
		w.refs[child] = parent
	}
	w.walkExpr(child)
}

func (w *parentWalker) walkStmt(id StmtID) {
	if !id.IsValid() {
		return
	}
	b := w.b
	ref := StmtRef(id)
	switch b.Stmts.Kind(id) {
	case StmtExpr:
		data, _ := b.Stmts.ExprStmt(id)
		w.claim(data.Expr, ref)
	case StmtVarDecl:
		data, _ := b.Stmts.VarDecl(id)
		for _, d := range data.Decls {
			w.claim(d.Init, ref)
			w.walkPat(d.Pat)
		}
	case StmtFunc:
		data, _ := b.Stmts.Func(id)
		w.walkParams(data.Params, ref)
		w.walkStmt(data.Body)
	case StmtClass:
		data, _ := b.Stmts.Class(id)
		for _, mid := range data.Members {
			w.walkMember(mid)
		}
	case StmtInterface:
		data, _ := b.Stmts.Interface(id)
		for _, mid := range data.Members {
			w.walkMember(mid)
		}
	case StmtReturn:
		data, _ := b.Stmts.Return(id)
		w.claim(data.Value, ref)
	case StmtIf:
		data, _ := b.Stmts.If(id)
		w.claim(data.Cond, ref)
		w.walkStmt(data.Then)
		w.walkStmt(data.Else)
	case StmtWhile:
		data, _ := b.Stmts.While(id)
		w.claim(data.Cond, ref)
		w.walkStmt(data.Body)
	case StmtDoWhile:
		data, _ := b.Stmts.DoWhile(id)
		w.walkStmt(data.Body)
		w.claim(data.Cond, ref)
	case StmtFor:
		data, _ := b.Stmts.For(id)
		w.walkStmt(data.Init)
		w.claim(data.Cond, ref)
		w.claim(data.Post, ref)
		w.walkStmt(data.Body)
	case StmtForIn, StmtForOf:
		data, _ := b.Stmts.ForInOf(id)
		w.walkStmt(data.Decl)
		w.claim(data.Target, ref)
		w.claim(data.Seq, ref)
		w.walkStmt(data.Body)
	case StmtSwitch:
		data, _ := b.Stmts.Switch(id)
		w.claim(data.Disc, ref)
		for _, c := range data.Cases {
			w.claim(c.Test, ref)
			for _, st := range c.Body {
				w.walkStmt(st)
			}
		}
	case StmtBlock:
		data, _ := b.Stmts.Block(id)
		for _, st := range data.Stmts {
			w.walkStmt(st)
		}
	case StmtThrow:
		data, _ := b.Stmts.Throw(id)
		w.claim(data.Value, ref)
	case StmtTry:
		data, _ := b.Stmts.Try(id)
		w.walkStmt(data.Body)
		w.walkStmt(data.CatchBody)
		w.walkStmt(data.Finally)
	}
}

func (w *parentWalker) walkMember(id MemberID) {
	m := w.b.Member(id)
	if m == nil {
		return
	}
	ref := MemberRef(id)
	w.walkParams(m.Params, ref)
	w.claim(m.Init, ref)
	w.walkStmt(m.Body)
}

func (w *parentWalker) walkParams(params []ParamID, owner NodeRef) {
	for _, pid := range params {
		p := w.b.Param(pid)
		if p == nil {
			continue
		}
		w.claim(p.Default, owner)
		w.walkPat(p.Pat)
	}
}

func (w *parentWalker) walkPat(id PatID) {
	p := w.b.Pat(id)
	if p == nil {
		return
	}
	ref := PatRef(id)
	for _, prop := range p.Props {
		w.claim(prop.Default, ref)
		w.walkPat(prop.SubPat)
	}
	for _, el := range p.Elems {
		w.claim(el.Default, ref)
		w.walkPat(el.SubPat)
	}
}

func (w *parentWalker) walkExpr(id ExprID) {
	b := w.b
	ref := ExprRef(id)
	switch b.Exprs.Kind(id) {
	case ExprMember:
		data, _ := b.Exprs.Member(id)
		w.claim(data.Object, ref)
	case ExprIndex:
		data, _ := b.Exprs.Index(id)
		w.claim(data.Object, ref)
		w.claim(data.Index, ref)
	case ExprCall:
		data, _ := b.Exprs.Call(id)
		w.claim(data.Callee, ref)
		for _, arg := range data.Args {
			w.claim(arg, ref)
		}
	case ExprNew:
		data, _ := b.Exprs.New(id)
		w.claim(data.Callee, ref)
		for _, arg := range data.Args {
			w.claim(arg, ref)
		}
	case ExprUnary:
		data, _ := b.Exprs.Unary(id)
		w.claim(data.Operand, ref)
	case ExprUpdate:
		data, _ := b.Exprs.Update(id)
		w.claim(data.Operand, ref)
	case ExprBinary:
		data, _ := b.Exprs.Binary(id)
		w.claim(data.Left, ref)
		w.claim(data.Right, ref)
	case ExprLogical:
		data, _ := b.Exprs.Logical(id)
		w.claim(data.Left, ref)
		w.claim(data.Right, ref)
	case ExprAssign:
		data, _ := b.Exprs.Assign(id)
		w.claim(data.Target, ref)
		w.walkPat(data.TargetPat)
		w.claim(data.Value, ref)
	case ExprTernary:
		data, _ := b.Exprs.Ternary(id)
		w.claim(data.Cond, ref)
		w.claim(data.Then, ref)
		w.claim(data.Else, ref)
	case ExprArrow:
		data, _ := b.Exprs.Arrow(id)
		w.walkParams(data.Params, ref)
		w.claim(data.Body, ref)
		w.walkStmt(data.BodyBlock)
	case ExprFunction:
		data, _ := b.Exprs.Function(id)
		w.walkParams(data.Params, ref)
		w.walkStmt(data.Body)
	case ExprObject:
		data, _ := b.Exprs.Object(id)
		for _, prop := range data.Props {
			w.claim(prop.Value, ref)
		}
	case ExprArray:
		data, _ := b.Exprs.Array(id)
		for _, el := range data.Elems {
			w.claim(el, ref)
		}
	case ExprTemplate:
		data, _ := b.Exprs.Template(id)
		for _, sub := range data.Subs {
			w.claim(sub, ref)
		}
	case ExprTagged:
		data, _ := b.Exprs.Tagged(id)
		w.claim(data.Tag, ref)
		w.claim(data.Quasi, ref)
	case ExprNonNull:
		data, _ := b.Exprs.NonNull(id)
		w.claim(data.Operand, ref)
	case ExprCast:
		data, _ := b.Exprs.Cast(id)
		w.claim(data.Operand, ref)
	case ExprSpread:
		data, _ := b.Exprs.Spread(id)
		w.claim(data.Operand, ref)
	}
}

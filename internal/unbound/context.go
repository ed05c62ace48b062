package unbound

import (
	"tether/internal/ast"
)

// SafeContext решает, может ли ссылка в данной позиции привести к отвязанному
// вызову. Один проход вверх по родителям, без повторных посещений.
func SafeContext(b *ast.Builder, parents *ast.Parents, id ast.ExprID) bool {
	ref := parents.Get(id)
	switch ref.Kind {
	case ast.NodeStmt:
		return safeStmtContext(b, ast.StmtID(ref.ID), id)
	case ast.NodeExpr:
		return safeExprContext(b, parents, ast.ExprID(ref.ID), id)
	default:
		// Нет родителя, либо владелец — член/паттерн (инициализаторы,
		// значения по умолчанию): значение сохраняется для позднейшего
		// использования.
		return false
	}
}

// Позиции условия и дискриминанта: значение только проверяется на
// истинность, не сохраняется.
func safeStmtContext(b *ast.Builder, sid ast.StmtID, id ast.ExprID) bool {
	switch b.Stmts.Kind(sid) {
	case ast.StmtIf:
		data, _ := b.Stmts.If(sid)
		return data.Cond == id
	case ast.StmtWhile:
		data, _ := b.Stmts.While(sid)
		return data.Cond == id
	case ast.StmtDoWhile:
		data, _ := b.Stmts.DoWhile(sid)
		return data.Cond == id
	case ast.StmtFor:
		data, _ := b.Stmts.For(sid)
		return data.Cond == id
	case ast.StmtSwitch:
		data, _ := b.Stmts.Switch(sid)
		return data.Disc == id
	default:
		return false
	}
}

func safeExprContext(b *ast.Builder, parents *ast.Parents, parent, id ast.ExprID) bool {
	switch b.Exprs.Kind(parent) {
	case ast.ExprMember:
		// База дальнейшего доступа: ссылку тут же разыменовывают снова.
		data, _ := b.Exprs.Member(parent)
		return data.Object == id
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(parent)
		return data.Object == id
	case ast.ExprCall:
		// Позиция вызываемого: приёмник связывается в точке вызова.
		data, _ := b.Exprs.Call(parent)
		return data.Callee == id
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(parent)
		switch data.Op {
		case ast.UnaryTypeof, ast.UnaryNot, ast.UnaryVoid, ast.UnaryDelete:
			return true
		}
		return false
	case ast.ExprUpdate:
		return true
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(parent)
		return data.Op.IsIdentityCheck()
	case ast.ExprLogical:
		data, _ := b.Exprs.Logical(parent)
		if data.Op == ast.LogicalAnd && data.Left == id {
			// При && левый операнд всплывает наружу только ложным,
			// вызвать его позже нельзя.
			return true
		}
		// Остальные логические позиции прозрачны: итоговое значение
		// выражения всё ещё может оказаться нашей ссылкой.
		return SafeContext(b, parents, parent)
	case ast.ExprTernary:
		data, _ := b.Exprs.Ternary(parent)
		return data.Cond == id
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(parent)
		if data.Op != ast.AssignPlain {
			return false
		}
		if data.Target == id {
			return true
		}
		return isSelfRebind(b, data.Target, id)
	case ast.ExprTagged:
		data, _ := b.Exprs.Tagged(parent)
		return data.Tag == id
	case ast.ExprNonNull, ast.ExprCast:
		// Прозрачные обёртки: решает родитель обёртки.
		return SafeContext(b, parents, parent)
	default:
		return false
	}
}

// isSelfRebind распознаёт идиому перепривязки `this.x = super.x`: чтение
// свойства с явной базы с одновременной записью одноимённого свойства на
// текущий приёмник.
func isSelfRebind(b *ast.Builder, target, value ast.ExprID) bool {
	src, ok := b.Exprs.Member(value)
	if !ok || b.Exprs.Kind(src.Object) != ast.ExprSuper {
		return false
	}
	dst, ok := b.Exprs.Member(target)
	if !ok || b.Exprs.Kind(dst.Object) != ast.ExprThis {
		return false
	}
	return dst.Prop == src.Prop
}

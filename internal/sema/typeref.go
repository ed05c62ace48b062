package sema

import (
	"tether/internal/ast"
)

// TypeRefKind — насколько глубоко мы понимаем тип выражения. Никакого
// структурного вывода типов здесь нет: только привязка к объявлению.
type TypeRefKind uint8

const (
	// TypeUnknown — тип не привязан ни к какому объявлению в файле.
	TypeUnknown TypeRefKind = iota
	// TypeClassInstance — экземпляр класса, Decl указывает на class statement.
	TypeClassInstance
	// TypeClassStatic — сам класс как значение (статическая сторона).
	TypeClassStatic
	// TypeInterface — значение, аннотированное интерфейсом.
	TypeInterface
	// TypeObjectLit — значение, инициализированное объектным литералом; Obj
	// указывает на него.
	TypeObjectLit
)

type TypeRef struct {
	Kind TypeRefKind
	Decl ast.StmtID
	Obj  ast.ExprID
}

func (r TypeRef) IsKnown() bool { return r.Kind != TypeUnknown }

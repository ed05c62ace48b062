package unbound

import (
	"tether/internal/ast"
	"tether/internal/sema"
)

// ThisParam — трёхзначный результат осмотра первого параметра объявления.
type ThisParam uint8

const (
	// ThisNotApplicable: объявление — поле-функция, параметр `this` к нему
	// неприменим.
	ThisNotApplicable ThisParam = iota
	// ThisMissing: метод без объявленного параметра `this`.
	ThisMissing
	// ThisDeclared: метод с параметром `this: T` (не void).
	ThisDeclared
)

// Verdict is the declaration classifier's answer for one member.
type Verdict struct {
	Dangerous bool
	This      ThisParam
}

// Classify решает, опасно ли отрывать член от приёмника, глядя только на
// форму его объявления. found=false означает, что семантика не нашла
// объявление: консервативно не репортим.
func Classify(md sema.MemberDecl, found bool, cfg Config) Verdict {
	if !found {
		return Verdict{}
	}
	switch md.Kind {
	case ast.MemberField:
		// Поле опасно, только если инициализировано обычной функцией.
		// Стрелки захватывают приёмник в точке определения.
		if !md.FieldFunc {
			return Verdict{}
		}
		return Verdict{Dangerous: true, This: ThisNotApplicable}
	case ast.MemberMethod, ast.MemberMethodSig:
		if md.HasThisParam {
			if md.ThisTypeVoid {
				return Verdict{This: ThisDeclared}
			}
			return Verdict{Dangerous: true, This: ThisDeclared}
		}
		if md.Static && cfg.IgnoreStatic {
			return Verdict{This: ThisMissing}
		}
		return Verdict{Dangerous: true, This: ThisMissing}
	default:
		// Аксессоры, конструкторы, простые свойства.
		return Verdict{}
	}
}

package ast

import (
	"tether/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[ExprIdentData]
	Literals  *Arena[ExprLitData]
	Members   *Arena[ExprMemberData]
	Indices   *Arena[ExprIndexData]
	Calls     *Arena[ExprCallData]
	News      *Arena[ExprNewData]
	Unaries   *Arena[ExprUnaryData]
	Updates   *Arena[ExprUpdateData]
	Binaries  *Arena[ExprBinaryData]
	Logicals  *Arena[ExprLogicalData]
	Assigns   *Arena[ExprAssignData]
	Ternaries *Arena[ExprTernaryData]
	Arrows    *Arena[ExprArrowData]
	Functions *Arena[ExprFunctionData]
	Objects   *Arena[ExprObjectData]
	Arrays    *Arena[ExprArrayData]
	Templates *Arena[ExprTemplateData]
	Taggeds   *Arena[ExprTaggedData]
	NonNulls  *Arena[ExprNonNullData]
	Casts     *Arena[ExprCastData]
	Spreads   *Arena[ExprSpreadData]
}

// NewExprs creates an Exprs with per-kind arenas preallocated using capHint
// as the initial capacity. If capHint is 0, a default of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Literals:  NewArena[ExprLitData](capHint),
		Members:   NewArena[ExprMemberData](capHint),
		Indices:   NewArena[ExprIndexData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
		News:      NewArena[ExprNewData](capHint),
		Unaries:   NewArena[ExprUnaryData](capHint),
		Updates:   NewArena[ExprUpdateData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Logicals:  NewArena[ExprLogicalData](capHint),
		Assigns:   NewArena[ExprAssignData](capHint),
		Ternaries: NewArena[ExprTernaryData](capHint),
		Arrows:    NewArena[ExprArrowData](capHint),
		Functions: NewArena[ExprFunctionData](capHint),
		Objects:   NewArena[ExprObjectData](capHint),
		Arrays:    NewArena[ExprArrayData](capHint),
		Templates: NewArena[ExprTemplateData](capHint),
		Taggeds:   NewArena[ExprTaggedData](capHint),
		NonNulls:  NewArena[ExprNonNullData](capHint),
		Casts:     NewArena[ExprCastData](capHint),
		Spreads:   NewArena[ExprSpreadData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Kind returns the kind of the expression, or ExprInvalid for a bad ID.
func (e *Exprs) Kind(id ExprID) ExprKind {
	expr := e.Get(id)
	if expr == nil {
		return ExprInvalid
	}
	return expr.Kind
}

// Span returns the source span of the expression.
func (e *Exprs) Span(id ExprID) source.Span {
	expr := e.Get(id)
	if expr == nil {
		return source.Span{}
	}
	return expr.Span
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, payload)
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(expr.Payload), true
}

func (e *Exprs) NewLit(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLitData{LitKind: kind, Value: value})
	return e.new(ExprLit, span, payload)
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(expr.Payload), true
}

// NewThis and NewSuper carry no payload.
func (e *Exprs) NewThis(span source.Span) ExprID  { return e.new(ExprThis, span, 0) }
func (e *Exprs) NewSuper(span source.Span) ExprID { return e.new(ExprSuper, span, 0) }

func (e *Exprs) NewMember(span source.Span, object ExprID, prop source.StringID, propSpan source.Span, optional bool) ExprID {
	payload := e.Members.Allocate(ExprMemberData{
		Object:   object,
		Prop:     prop,
		PropSpan: propSpan,
		Optional: optional,
	})
	return e.new(ExprMember, span, payload)
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(expr.Payload), true
}

func (e *Exprs) NewIndex(span source.Span, object, index ExprID, optional bool) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Object: object, Index: index, Optional: optional})
	return e.new(ExprIndex, span, payload)
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(expr.Payload), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID, optional bool) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args, Optional: optional})
	return e.new(ExprCall, span, payload)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(expr.Payload), true
}

func (e *Exprs) NewNew(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.News.Allocate(ExprNewData{Callee: callee, Args: args})
	return e.new(ExprNew, span, payload)
}

func (e *Exprs) New(id ExprID) (*ExprNewData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNew {
		return nil, false
	}
	return e.News.Get(expr.Payload), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, payload)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(expr.Payload), true
}

func (e *Exprs) NewUpdate(span source.Span, op UpdateOp, prefix bool, operand ExprID) ExprID {
	payload := e.Updates.Allocate(ExprUpdateData{Op: op, Prefix: prefix, Operand: operand})
	return e.new(ExprUpdate, span, payload)
}

func (e *Exprs) Update(id ExprID) (*ExprUpdateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUpdate {
		return nil, false
	}
	return e.Updates.Get(expr.Payload), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, payload)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(expr.Payload), true
}

func (e *Exprs) NewLogical(span source.Span, op LogicalOp, left, right ExprID) ExprID {
	payload := e.Logicals.Allocate(ExprLogicalData{Op: op, Left: left, Right: right})
	return e.new(ExprLogical, span, payload)
}

func (e *Exprs) Logical(id ExprID) (*ExprLogicalData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLogical {
		return nil, false
	}
	return e.Logicals.Get(expr.Payload), true
}

func (e *Exprs) NewAssign(span source.Span, op AssignOp, target ExprID, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value})
	return e.new(ExprAssign, span, payload)
}

// NewAssignPat is an assignment whose left side is a destructuring pattern.
func (e *Exprs) NewAssignPat(span source.Span, pat PatID, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: AssignPlain, TargetPat: pat, Value: value})
	return e.new(ExprAssign, span, payload)
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(expr.Payload), true
}

func (e *Exprs) NewTernary(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Ternaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els})
	return e.new(ExprTernary, span, payload)
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTernary {
		return nil, false
	}
	return e.Ternaries.Get(expr.Payload), true
}

func (e *Exprs) NewArrow(span source.Span, data ExprArrowData) ExprID {
	payload := e.Arrows.Allocate(data)
	return e.new(ExprArrow, span, payload)
}

func (e *Exprs) Arrow(id ExprID) (*ExprArrowData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArrow {
		return nil, false
	}
	return e.Arrows.Get(expr.Payload), true
}

func (e *Exprs) NewFunction(span source.Span, data ExprFunctionData) ExprID {
	payload := e.Functions.Allocate(data)
	return e.new(ExprFunction, span, payload)
}

func (e *Exprs) Function(id ExprID) (*ExprFunctionData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFunction {
		return nil, false
	}
	return e.Functions.Get(expr.Payload), true
}

func (e *Exprs) NewObject(span source.Span, props []ObjectProp) ExprID {
	payload := e.Objects.Allocate(ExprObjectData{Props: props})
	return e.new(ExprObject, span, payload)
}

func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprObject {
		return nil, false
	}
	return e.Objects.Get(expr.Payload), true
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elems: elems})
	return e.new(ExprArray, span, payload)
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(expr.Payload), true
}

func (e *Exprs) NewTemplate(span source.Span, subs []ExprID) ExprID {
	payload := e.Templates.Allocate(ExprTemplateData{Subs: subs})
	return e.new(ExprTemplate, span, payload)
}

func (e *Exprs) Template(id ExprID) (*ExprTemplateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTemplate {
		return nil, false
	}
	return e.Templates.Get(expr.Payload), true
}

func (e *Exprs) NewTagged(span source.Span, tag, quasi ExprID) ExprID {
	payload := e.Taggeds.Allocate(ExprTaggedData{Tag: tag, Quasi: quasi})
	return e.new(ExprTagged, span, payload)
}

func (e *Exprs) Tagged(id ExprID) (*ExprTaggedData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTagged {
		return nil, false
	}
	return e.Taggeds.Get(expr.Payload), true
}

func (e *Exprs) NewNonNull(span source.Span, operand ExprID) ExprID {
	payload := e.NonNulls.Allocate(ExprNonNullData{Operand: operand})
	return e.new(ExprNonNull, span, payload)
}

func (e *Exprs) NonNull(id ExprID) (*ExprNonNullData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNonNull {
		return nil, false
	}
	return e.NonNulls.Get(expr.Payload), true
}

func (e *Exprs) NewCast(span source.Span, operand ExprID, typ TypeID, satisfies bool) ExprID {
	payload := e.Casts.Allocate(ExprCastData{Operand: operand, Type: typ, Satisfies: satisfies})
	return e.new(ExprCast, span, payload)
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(expr.Payload), true
}

func (e *Exprs) NewSpread(span source.Span, operand ExprID) ExprID {
	payload := e.Spreads.Allocate(ExprSpreadData{Operand: operand})
	return e.new(ExprSpread, span, payload)
}

func (e *Exprs) Spread(id ExprID) (*ExprSpreadData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSpread {
		return nil, false
	}
	return e.Spreads.Get(expr.Payload), true
}

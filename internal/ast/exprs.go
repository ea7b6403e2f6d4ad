package ast

import (
	"cinder/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena       *Arena[Expr]
	Idents      *Arena[ExprIdentData]
	Literals    *Arena[ExprLiteralData]
	Binaries    *Arena[ExprBinaryData]
	Unaries     *Arena[ExprUnaryData]
	Calls       *Arena[ExprCallData]
	Indices     *Arena[ExprIndexData]
	Members     *Arena[ExprMemberData]
	Paths       *Arena[ExprPathData]
	Casts       *Arena[ExprCastData]
	Ternaries   *Arena[ExprTernaryData]
	Tuples      *Arena[ExprTupleData]
	Arrays      *Arena[ExprArrayData]
	StructInits *Arena[ExprStructInitData]
	MacroCalls  *Arena[ExprMacroCallData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Idents:      NewArena[ExprIdentData](capHint),
		Literals:    NewArena[ExprLiteralData](capHint),
		Binaries:    NewArena[ExprBinaryData](capHint),
		Unaries:     NewArena[ExprUnaryData](capHint),
		Calls:       NewArena[ExprCallData](capHint),
		Indices:     NewArena[ExprIndexData](capHint),
		Members:     NewArena[ExprMemberData](capHint),
		Paths:       NewArena[ExprPathData](capHint),
		Casts:       NewArena[ExprCastData](capHint),
		Ternaries:   NewArena[ExprTernaryData](capHint),
		Tuples:      NewArena[ExprTupleData](capHint),
		Arrays:      NewArena[ExprArrayData](capHint),
		StructInits: NewArena[ExprStructInitData](capHint),
		MacroCalls:  NewArena[ExprMacroCallData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
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

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Target: target, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMember(span source.Span, target ExprID, field source.StringID, arrow bool) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Target: target, Field: field, Arrow: arrow})
	return e.new(ExprMember, span, PayloadID(payload))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewPath(span source.Span, segments []source.StringID, typeArgs []TypeID) ExprID {
	payload := e.Paths.Allocate(ExprPathData{Segments: segments, TypeArgs: typeArgs})
	return e.new(ExprPath, span, PayloadID(payload))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprPath {
		return nil, false
	}
	return e.Paths.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCast(span source.Span, typ TypeID, value ExprID) ExprID {
	payload := e.Casts.Allocate(ExprCastData{Type: typ, Value: value})
	return e.new(ExprCast, span, PayloadID(payload))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewTernary(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Ternaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els})
	return e.new(ExprTernary, span, PayloadID(payload))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTernary {
		return nil, false
	}
	return e.Ternaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewTuple(span source.Span, elements []ExprID) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{Elements: elements})
	return e.new(ExprTuple, span, PayloadID(payload))
}

func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewArray(span source.Span, elements []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elements: elements})
	return e.new(ExprArray, span, PayloadID(payload))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewStructInit(span source.Span, typ TypeID, fields []StructFieldInit) ExprID {
	payload := e.StructInits.Allocate(ExprStructInitData{Type: typ, Fields: fields})
	return e.new(ExprStructInit, span, PayloadID(payload))
}

func (e *Exprs) StructInit(id ExprID) (*ExprStructInitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprStructInit {
		return nil, false
	}
	return e.StructInits.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMacroCall(span source.Span, name source.StringID, delim MacroDelim, args []ExprID) ExprID {
	payload := e.MacroCalls.Allocate(ExprMacroCallData{Name: name, Delim: delim, Args: args})
	return e.new(ExprMacroCall, span, PayloadID(payload))
}

func (e *Exprs) MacroCall(id ExprID) (*ExprMacroCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMacroCall {
		return nil, false
	}
	return e.MacroCalls.Get(uint32(expr.Payload)), true
}

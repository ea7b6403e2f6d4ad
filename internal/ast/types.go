package ast

import (
	"cinder/internal/source"
)

type TypeKind uint8

const (
	TypePrimitive TypeKind = iota
	TypeIdent
	TypePointer
	TypeReference
	TypeArray
	TypeTuple
	TypeGeneric
	TypeFn
	TypeAuto
)

type Type struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

// TypePrimData хранит и вид, и исходное написание (unsigned vs uint).
type TypePrimData struct {
	Prim PrimKind
	Name source.StringID
}

// TypePathData is a possibly scoped name: A, A::B.
type TypePathData struct {
	Segments []source.StringID
}

// TypeElemData backs pointers and references.
type TypeElemData struct {
	Elem TypeID
}

type TypeArrayData struct {
	Elem TypeID
	Len  ExprID // NoExprID для T[]
}

type TypeTupleData struct {
	Elems []TypeID
}

type TypeGenericData struct {
	Base TypeID // always a TypeIdent
	Args []TypeID
}

type TypeFnData struct {
	Params []TypeID
	Result TypeID // NoTypeID == void
}

type Types struct {
	Arena    *Arena[Type]
	Prims    *Arena[TypePrimData]
	Paths    *Arena[TypePathData]
	Elems    *Arena[TypeElemData]
	Arrays   *Arena[TypeArrayData]
	Tuples   *Arena[TypeTupleData]
	Generics *Arena[TypeGenericData]
	Fns      *Arena[TypeFnData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Types{
		Arena:    NewArena[Type](capHint),
		Prims:    NewArena[TypePrimData](capHint),
		Paths:    NewArena[TypePathData](capHint),
		Elems:    NewArena[TypeElemData](capHint),
		Arrays:   NewArena[TypeArrayData](capHint / 4),
		Tuples:   NewArena[TypeTupleData](capHint / 4),
		Generics: NewArena[TypeGenericData](capHint / 4),
		Fns:      NewArena[TypeFnData](capHint / 4),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: kind, Span: span, Payload: payload}))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewPrimitive(span source.Span, prim PrimKind, name source.StringID) TypeID {
	return t.new(TypePrimitive, span, PayloadID(t.Prims.Allocate(TypePrimData{Prim: prim, Name: name})))
}

func (t *Types) Primitive(id TypeID) (*TypePrimData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypePrimitive {
		return nil, false
	}
	return t.Prims.Get(uint32(ty.Payload)), true
}

func (t *Types) NewPath(span source.Span, segments []source.StringID) TypeID {
	return t.new(TypeIdent, span, PayloadID(t.Paths.Allocate(TypePathData{Segments: segments})))
}

func (t *Types) Path(id TypeID) (*TypePathData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeIdent {
		return nil, false
	}
	return t.Paths.Get(uint32(ty.Payload)), true
}

// NewPointer creates T* (kind TypePointer) or T& (kind TypeReference).
func (t *Types) NewPointer(span source.Span, kind TypeKind, elem TypeID) TypeID {
	return t.new(kind, span, PayloadID(t.Elems.Allocate(TypeElemData{Elem: elem})))
}

func (t *Types) Elem(id TypeID) (*TypeElemData, bool) {
	ty := t.Get(id)
	if ty == nil || (ty.Kind != TypePointer && ty.Kind != TypeReference) {
		return nil, false
	}
	return t.Elems.Get(uint32(ty.Payload)), true
}

func (t *Types) NewArray(span source.Span, elem TypeID, length ExprID) TypeID {
	return t.new(TypeArray, span, PayloadID(t.Arrays.Allocate(TypeArrayData{Elem: elem, Len: length})))
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeArray {
		return nil, false
	}
	return t.Arrays.Get(uint32(ty.Payload)), true
}

func (t *Types) NewTuple(span source.Span, elems []TypeID) TypeID {
	return t.new(TypeTuple, span, PayloadID(t.Tuples.Allocate(TypeTupleData{Elems: elems})))
}

func (t *Types) Tuple(id TypeID) (*TypeTupleData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeTuple {
		return nil, false
	}
	return t.Tuples.Get(uint32(ty.Payload)), true
}

func (t *Types) NewGeneric(span source.Span, base TypeID, args []TypeID) TypeID {
	return t.new(TypeGeneric, span, PayloadID(t.Generics.Allocate(TypeGenericData{Base: base, Args: args})))
}

func (t *Types) Generic(id TypeID) (*TypeGenericData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeGeneric {
		return nil, false
	}
	return t.Generics.Get(uint32(ty.Payload)), true
}

func (t *Types) NewFn(span source.Span, params []TypeID, result TypeID) TypeID {
	return t.new(TypeFn, span, PayloadID(t.Fns.Allocate(TypeFnData{Params: params, Result: result})))
}

func (t *Types) Fn(id TypeID) (*TypeFnData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeFn {
		return nil, false
	}
	return t.Fns.Get(uint32(ty.Payload)), true
}

func (t *Types) NewAuto(span source.Span) TypeID {
	return t.new(TypeAuto, span, NoPayloadID)
}

// PrimKindOf returns the primitive behind id, or PrimInvalid.
func (t *Types) PrimKindOf(id TypeID) PrimKind {
	if p, ok := t.Primitive(id); ok {
		return p.Prim
	}
	return PrimInvalid
}

// IsVoid reports whether id is absent or the void primitive.
func (t *Types) IsVoid(id TypeID) bool {
	return !id.IsValid() || t.PrimKindOf(id) == PrimVoid
}

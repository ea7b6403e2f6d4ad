package ast

import (
	"cinder/internal/source"
	"cinder/internal/token"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
	ItemTypedef
	ItemMacro
	ItemConst
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "fn"
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	case ItemTypedef:
		return "typedef"
	case ItemMacro:
		return "macro"
	case ItemConst:
		return "const"
	}
	return "item"
}

type Item struct {
	Kind       ItemKind
	Span       source.Span
	Name       source.StringID
	Visibility Visibility
	Payload    PayloadID
}

type StructField struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

type StructItem struct {
	Generics []source.StringID
	Fields   []StructField
}

type EnumVariant struct {
	Name  source.StringID
	Value ExprID // NoExprID if implicit
	Span  source.Span
}

type EnumItem struct {
	Variants []EnumVariant
}

type TypedefItem struct {
	Type TypeID
}

// MacroItem is a #define. Body is kept as an opaque token run.
type MacroItem struct {
	Delim  MacroDelim
	Params []source.StringID
	Body   []token.Token
}

type ConstItem struct {
	Type  TypeID
	Value ExprID
}

type Items struct {
	Arena    *Arena[Item]
	Fns      *Arena[FnDecl]
	Structs  *Arena[StructItem]
	Enums    *Arena[EnumItem]
	Typedefs *Arena[TypedefItem]
	Macros   *Arena[MacroItem]
	Consts   *Arena[ConstItem]
}

// NewItems creates and returns an *Items with per-kind arenas initialized to capHint.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:    NewArena[Item](capHint),
		Fns:      NewArena[FnDecl](capHint),
		Structs:  NewArena[StructItem](capHint / 4),
		Enums:    NewArena[EnumItem](capHint / 4),
		Typedefs: NewArena[TypedefItem](capHint / 4),
		Macros:   NewArena[MacroItem](capHint / 4),
		Consts:   NewArena[ConstItem](capHint / 4),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, name source.StringID, vis Visibility, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:       kind,
		Span:       span,
		Name:       name,
		Visibility: vis,
		Payload:    payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) payload(id ItemID, kind ItemKind) (uint32, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != kind {
		return 0, false
	}
	return uint32(item.Payload), true
}

func (i *Items) NewFn(span source.Span, vis Visibility, decl FnDecl) ItemID {
	return i.New(ItemFn, span, decl.Name, vis, PayloadID(i.Fns.Allocate(decl)))
}

func (i *Items) Fn(id ItemID) (*FnDecl, bool) {
	p, ok := i.payload(id, ItemFn)
	if !ok {
		return nil, false
	}
	return i.Fns.Get(p), true
}

func (i *Items) NewStruct(span source.Span, name source.StringID, vis Visibility, data StructItem) ItemID {
	return i.New(ItemStruct, span, name, vis, PayloadID(i.Structs.Allocate(data)))
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	p, ok := i.payload(id, ItemStruct)
	if !ok {
		return nil, false
	}
	return i.Structs.Get(p), true
}

func (i *Items) NewEnum(span source.Span, name source.StringID, vis Visibility, data EnumItem) ItemID {
	return i.New(ItemEnum, span, name, vis, PayloadID(i.Enums.Allocate(data)))
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	p, ok := i.payload(id, ItemEnum)
	if !ok {
		return nil, false
	}
	return i.Enums.Get(p), true
}

func (i *Items) NewTypedef(span source.Span, name source.StringID, vis Visibility, typ TypeID) ItemID {
	return i.New(ItemTypedef, span, name, vis, PayloadID(i.Typedefs.Allocate(TypedefItem{Type: typ})))
}

func (i *Items) Typedef(id ItemID) (*TypedefItem, bool) {
	p, ok := i.payload(id, ItemTypedef)
	if !ok {
		return nil, false
	}
	return i.Typedefs.Get(p), true
}

// NewMacro registers a #define. Macros are always public within the unit.
func (i *Items) NewMacro(span source.Span, name source.StringID, data MacroItem) ItemID {
	return i.New(ItemMacro, span, name, VisPublic, PayloadID(i.Macros.Allocate(data)))
}

func (i *Items) Macro(id ItemID) (*MacroItem, bool) {
	p, ok := i.payload(id, ItemMacro)
	if !ok {
		return nil, false
	}
	return i.Macros.Get(p), true
}

func (i *Items) NewConst(span source.Span, name source.StringID, vis Visibility, data ConstItem) ItemID {
	return i.New(ItemConst, span, name, vis, PayloadID(i.Consts.Allocate(data)))
}

func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	p, ok := i.payload(id, ItemConst)
	if !ok {
		return nil, false
	}
	return i.Consts.Get(p), true
}

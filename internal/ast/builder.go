package ast

import (
	"cinder/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs, Types uint }

// Builder owns every arena of one compilation unit.
type Builder struct {
	Files           *Files
	Items           *Items
	Stmts           *Stmts
	Exprs           *Exprs
	Types           *Types
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Types:           NewTypes(hints.Types),
		StringsInterner: interner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Intern returns the StringID for s.
func (b *Builder) Intern(s string) source.StringID {
	return b.StringsInterner.Intern(s)
}

// Name resolves an interned name; NoStringID yields "".
func (b *Builder) Name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return b.StringsInterner.MustLookup(id)
}

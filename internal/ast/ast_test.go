package ast

import (
	"testing"

	"cinder/internal/source"
)

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("id 0 must be the none value")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("id=%d len=%d", id, a.Len())
	}
	if a.Get(2) != nil {
		t.Fatal("out-of-range id must return nil")
	}
}

func TestAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	x := b.Exprs.NewIdent(source.Span{}, b.Intern("x"))
	if _, ok := b.Exprs.Binary(x); ok {
		t.Fatal("ident reported as binary")
	}
	data, ok := b.Exprs.Ident(x)
	if !ok || b.Name(data.Name) != "x" {
		t.Fatalf("ident payload lost: %+v", data)
	}
}

func TestPrimitiveLookup(t *testing.T) {
	cases := map[string]PrimClass{
		"int":      ClassInteger,
		"unsigned": ClassInteger,
		"double":   ClassFloat,
		"bool":     ClassBool,
		"void":     ClassVoid,
		"string":   ClassString,
		"u8":       ClassInteger,
	}
	for name, class := range cases {
		k, ok := LookupPrimitive(name)
		if !ok || k.Class() != class {
			t.Errorf("%s: kind=%v ok=%v class=%s", name, k, ok, k.Class())
		}
	}
	if _, ok := LookupPrimitive("Point"); ok {
		t.Error("Point is not a primitive")
	}
}

func TestLoopLabel(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	body := b.Stmts.NewBlock(source.Span{}, nil)
	w := b.Stmts.NewWhile(source.Span{}, WhileStmt{Label: b.Intern("outer"), Body: body})
	if l, ok := b.Stmts.LoopLabel(w); !ok || b.Name(l) != "outer" {
		t.Fatalf("label = %q ok=%v", b.Name(l), ok)
	}
	if _, ok := b.Stmts.LoopLabel(body); ok {
		t.Fatal("block is not a loop")
	}
}

package gen

import (
	"strings"

	"cinder/internal/ast"
	"cinder/internal/dialect"
	"cinder/internal/source"
)

// typ renders a type in the target dialect.
func (g *generator) typ(id ast.TypeID) string {
	var sb strings.Builder
	g.writeType(&sb, id)
	return sb.String()
}

func (g *generator) writeType(sb *strings.Builder, id ast.TypeID) {
	types := g.b.Types
	ty := types.Get(id)
	if ty == nil {
		sb.WriteString(g.target.Primitive(ast.PrimVoid, "void"))
		return
	}
	switch ty.Kind {
	case ast.TypePrimitive:
		p, _ := types.Primitive(id)
		sb.WriteString(g.target.Primitive(p.Prim, g.b.Name(p.Name)))

	case ast.TypeIdent:
		p, _ := types.Path(id)
		g.writeSegments(sb, p.Segments)

	case ast.TypePointer, ast.TypeReference:
		e, _ := types.Elem(id)
		if g.closure() {
			if ty.Kind == ast.TypePointer {
				sb.WriteString("*mut ")
			} else {
				sb.WriteString("&mut ")
			}
			g.writeType(sb, e.Elem)
			return
		}
		g.writeType(sb, e.Elem)
		if ty.Kind == ast.TypePointer {
			sb.WriteByte('*')
		} else {
			sb.WriteByte('&')
		}

	case ast.TypeArray:
		a, _ := types.Array(id)
		switch {
		case !g.closure():
			g.writeType(sb, a.Elem)
			sb.WriteByte('[')
			if a.Len.IsValid() {
				sb.WriteString(g.expr(a.Len, dialect.PrecLowest))
			}
			sb.WriteByte(']')
		case a.Len.IsValid():
			sb.WriteByte('[')
			g.writeType(sb, a.Elem)
			sb.WriteString("; ")
			sb.WriteString(g.expr(a.Len, dialect.PrecLowest))
			sb.WriteByte(']')
		default:
			sb.WriteString("Vec<")
			g.writeType(sb, a.Elem)
			sb.WriteByte('>')
		}

	case ast.TypeTuple:
		t, _ := types.Tuple(id)
		sb.WriteByte('(')
		g.writeTypeList(sb, t.Elems)
		if len(t.Elems) == 1 && g.closure() {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')

	case ast.TypeGeneric:
		gen, _ := types.Generic(id)
		g.writeType(sb, gen.Base)
		sb.WriteByte('<')
		g.writeTypeList(sb, gen.Args)
		sb.WriteByte('>')

	case ast.TypeFn:
		fn, _ := types.Fn(id)
		sb.WriteString("fn(")
		g.writeTypeList(sb, fn.Params)
		sb.WriteByte(')')
		if !types.IsVoid(fn.Result) {
			sb.WriteString(" -> ")
			g.writeType(sb, fn.Result)
		}

	case ast.TypeAuto:
		if g.closure() {
			sb.WriteByte('_')
		} else {
			sb.WriteString("auto")
		}
	}
}

func (g *generator) writeTypeList(sb *strings.Builder, ids []ast.TypeID) {
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		g.writeType(sb, id)
	}
}

func (g *generator) writeSegments(sb *strings.Builder, segs []source.StringID) {
	for i, seg := range segs {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(g.name(seg))
	}
}

// typeArgs renders generic arguments, "" when there are none.
func (g *generator) typeArgs(ids []ast.TypeID) string {
	if len(ids) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('<')
	g.writeTypeList(&sb, ids)
	sb.WriteByte('>')
	return sb.String()
}

func (g *generator) genericParams(names []source.StringID) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = g.name(n)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// decl renders a typed name: `name: T` in the closure target and a C
// declarator `T name[N]` in the C-style target.
func (g *generator) decl(name string, typ ast.TypeID) string {
	if g.closure() {
		return name + ": " + g.typ(typ)
	}
	var dims []string
	for {
		a, ok := g.b.Types.Array(typ)
		if !ok {
			break
		}
		dim := ""
		if a.Len.IsValid() {
			dim = g.expr(a.Len, dialect.PrecLowest)
		}
		dims = append(dims, "["+dim+"]")
		typ = a.Elem
	}
	var sb strings.Builder
	sb.WriteString(g.typ(typ))
	sb.WriteByte(' ')
	sb.WriteString(name)
	for i := len(dims) - 1; i >= 0; i-- {
		sb.WriteString(dims[i])
	}
	return sb.String()
}

// concrete rejects `auto` where the closure target needs a written type.
func (g *generator) concrete(id ast.TypeID, what string) bool {
	if !g.closure() {
		return true
	}
	if ty := g.b.Types.Get(id); ty != nil && ty.Kind == ast.TypeAuto {
		g.fail(ty.Span, "%s cannot be inferred ('auto') in the closure target", what)
		return false
	}
	return true
}

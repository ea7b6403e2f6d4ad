package gen

import (
	"strings"

	"cinder/internal/ast"
	"cinder/internal/dialect"
	"cinder/internal/sema"
	"cinder/internal/token"
)

func (g *generator) item(id ast.ItemID) {
	items := g.b.Items
	it := items.Get(id)
	switch it.Kind {
	case ast.ItemFn:
		fn, _ := items.Fn(id)
		g.fnItem = id
		g.fn(it, fn)
		g.fnItem = ast.NoItemID
	case ast.ItemStruct:
		st, _ := items.Struct(id)
		g.structItem(it, st)
	case ast.ItemEnum:
		en, _ := items.Enum(id)
		g.enumItem(it, en)
	case ast.ItemTypedef:
		td, _ := items.Typedef(id)
		g.typedefItem(it, td)
	case ast.ItemConst:
		c, _ := items.Const(id)
		g.constItem(it, c)
	case ast.ItemMacro:
		m, _ := items.Macro(id)
		g.macroItem(it, m)
	}
}

func (g *generator) fn(it *ast.Item, fn *ast.FnDecl) {
	var sb strings.Builder
	sb.WriteString(g.target.Visibility(it.Visibility))
	if g.closure() {
		sb.WriteString("fn ")
		sb.WriteString(g.name(fn.Name))
		sb.WriteString(g.genericParams(fn.Generics))
		sb.WriteString("(")
		for i, p := range fn.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			if !g.concrete(p.Type, "parameter type") {
				return
			}
			if g.sem.IsMutated(sema.ParamKey(g.fnItem, i)) {
				sb.WriteString("mut ")
			}
			sb.WriteString(g.decl(g.name(p.Name), p.Type))
		}
		sb.WriteString(")")
		if !g.b.Types.IsVoid(fn.Result) {
			if !g.concrete(fn.Result, "return type") {
				return
			}
			sb.WriteString(" -> ")
			sb.WriteString(g.typ(fn.Result))
		}
	} else {
		sb.WriteString(g.cSignature(fn, g.genericParams(fn.Generics)))
	}
	g.w.Open(sb.String())
	g.stmtsOf(fn.Body)
	g.w.Close("")
}

// cSignature renders `R name<T>(A a, B b)`.
func (g *generator) cSignature(fn *ast.FnDecl, generics string) string {
	var sb strings.Builder
	sb.WriteString(g.typ(fn.Result))
	sb.WriteByte(' ')
	sb.WriteString(g.name(fn.Name))
	sb.WriteString(generics)
	sb.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.decl(g.name(p.Name), p.Type))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (g *generator) structItem(it *ast.Item, st *ast.StructItem) {
	head := g.target.Visibility(it.Visibility) + "struct " + g.name(it.Name) + g.genericParams(st.Generics)
	if len(st.Fields) == 0 && g.closure() {
		g.w.Line(head + " {}")
		return
	}
	g.w.Open(head)
	for _, f := range st.Fields {
		if g.closure() {
			if !g.concrete(f.Type, "field type") {
				return
			}
			g.w.Line(g.decl(g.name(f.Name), f.Type) + ",")
		} else {
			g.w.Line(g.decl(g.name(f.Name), f.Type) + ";")
		}
	}
	g.w.Close(g.itemTail())
}

func (g *generator) enumItem(it *ast.Item, en *ast.EnumItem) {
	g.w.Open(g.target.Visibility(it.Visibility) + "enum " + g.name(it.Name))
	for _, v := range en.Variants {
		line := g.name(v.Name)
		if v.Value.IsValid() {
			line += " = " + g.expr(v.Value, dialect.PrecLowest)
		}
		g.w.Line(line + ",")
	}
	g.w.Close(g.itemTail())
}

// itemTail closes struct and enum bodies: C keeps the trailing semicolon.
func (g *generator) itemTail() string {
	if g.closure() {
		return ""
	}
	return ";"
}

func (g *generator) typedefItem(it *ast.Item, td *ast.TypedefItem) {
	vis := g.target.Visibility(it.Visibility)
	if g.closure() {
		if !g.concrete(td.Type, "aliased type") {
			return
		}
		g.w.Line(vis + "type " + g.name(it.Name) + " = " + g.typ(td.Type) + ";")
		return
	}
	g.w.Line(vis + "typedef " + g.typ(td.Type) + " " + g.name(it.Name) + ";")
}

func (g *generator) constItem(it *ast.Item, c *ast.ConstItem) {
	vis := g.target.Visibility(it.Visibility)
	value := g.expr(c.Value, dialect.PrecLowest)
	if g.closure() {
		if !g.concrete(c.Type, "constant type") {
			return
		}
		g.w.Line(vis + "const " + g.decl(g.name(it.Name), c.Type) + " = " + value + ";")
		return
	}
	g.w.Line(vis + "const " + g.typ(c.Type) + " " + g.name(it.Name) + " = " + value + ";")
}

func (g *generator) macroItem(it *ast.Item, m *ast.MacroItem) {
	name := g.b.Name(it.Name)
	params := make(map[string]bool, len(m.Params))
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		pn := g.b.Name(p)
		params[pn] = true
		if g.closure() {
			parts[i] = "$" + pn + ":expr"
		} else {
			parts[i] = pn
		}
	}
	body := g.macroBody(m.Body, params)
	g.macros[name] = m.Delim

	if !g.closure() {
		line := "#define " + name
		if m.Delim != ast.DelimNone {
			line += m.Delim.Open() + strings.Join(parts, ", ") + m.Delim.Close()
		}
		if body != "" {
			line += " " + body
		}
		g.w.Line(line)
		return
	}
	open, closeStr := "(", ")"
	if m.Delim != ast.DelimNone {
		open, closeStr = m.Delim.Open(), m.Delim.Close()
	}
	rule := open + strings.Join(parts, ", ") + closeStr + " => { "
	if body != "" {
		rule += body + " "
	}
	g.w.Open("macro_rules! " + name)
	g.w.Line(rule + "};")
	g.w.Close("")
}

// macroBody re-joins the opaque body run. Spacing follows the source: a
// token is preceded by a space only if it had leading trivia.
func (g *generator) macroBody(toks []token.Token, params map[string]bool) string {
	var sb strings.Builder
	for i, tok := range toks {
		if i > 0 && len(tok.Leading) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.macroToken(toks, i, params))
	}
	return sb.String()
}

func (g *generator) macroToken(toks []token.Token, i int, params map[string]bool) string {
	tok := toks[i]
	if !g.closure() {
		return tok.Text
	}
	switch tok.Kind {
	case token.Ident:
		if params[tok.Text] {
			return g.target.MacroParam(tok.Text)
		}
		if delim, ok := g.macros[tok.Text]; ok {
			if delim == ast.DelimNone {
				return g.target.MacroName(tok.Text) + "()"
			}
			if i+1 < len(toks) && toks[i+1].Text == delim.Open() {
				return g.target.MacroName(tok.Text)
			}
		}
		return g.target.Ident(tok.Text)
	case token.IntLit:
		return g.target.IntLiteral(tok.Text)
	case token.FloatLit:
		return g.target.FloatLiteral(tok.Text)
	case token.KwNull:
		return g.target.NullLiteral()
	case token.Tilde:
		return "!"
	}
	return tok.Text
}

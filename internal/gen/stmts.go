package gen

import (
	"strings"

	"cinder/internal/ast"
	"cinder/internal/dialect"
	"cinder/internal/sema"
	"cinder/internal/source"
)

// stmtsOf emits the statements of a block, or id itself when it is not one.
func (g *generator) stmtsOf(id ast.StmtID) {
	if blk, ok := g.b.Stmts.Block(id); ok {
		g.stmts(blk.Stmts)
		return
	}
	g.stmt(id)
}

func (g *generator) stmts(ids []ast.StmtID) {
	for _, id := range ids {
		if g.err != nil {
			return
		}
		g.stmt(id)
	}
}

func (g *generator) stmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	stmts := g.b.Stmts
	st := stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := stmts.Block(id)
		g.w.Open("")
		g.stmts(blk.Stmts)
		g.w.Close("")

	case ast.StmtLet:
		let, _ := stmts.Let(id)
		g.w.Line(g.letText(id, let))

	case ast.StmtExpr:
		es, _ := stmts.Expr(id)
		g.w.Line(g.exprStmt(es.Expr) + ";")

	case ast.StmtIf:
		s, _ := stmts.If(id)
		g.ifStmt(s)

	case ast.StmtWhile:
		s, _ := stmts.While(id)
		g.w.Open(g.loopLabel(id, s.Label) + g.condHead("while", s.Cond))
		g.stmtsOf(s.Body)
		g.w.Close("")

	case ast.StmtFor:
		s, _ := stmts.For(id)
		if g.closure() {
			g.forLoop(id, s)
		} else {
			g.cFor(s)
		}

	case ast.StmtForIn:
		s, _ := stmts.ForIn(id)
		g.forIn(id, s)

	case ast.StmtSwitch:
		s, _ := stmts.Switch(id)
		if g.closure() {
			g.match(id, s)
		} else {
			g.cSwitch(s)
		}

	case ast.StmtBreak, ast.StmtContinue:
		g.w.Line(g.jump(id, st.Kind))

	case ast.StmtReturn:
		ret, _ := stmts.Return(id)
		if ret.Value.IsValid() {
			g.w.Line("return " + g.expr(ret.Value, dialect.PrecLowest) + ";")
		} else {
			g.w.Line("return;")
		}

	case ast.StmtNestedFn:
		fn, _ := stmts.NestedFn(id)
		g.nestedFn(id, fn)

	default:
		g.fail(st.Span, "unsupported statement")
	}
}

// exprStmt renders an expression in statement position, without ';'.
func (g *generator) exprStmt(id ast.ExprID) string {
	if g.closure() {
		if u, ok := g.b.Exprs.Unary(id); ok && u.Op.IsIncDec() {
			return g.incDecStatement(u)
		}
		if bin, ok := g.b.Exprs.Binary(id); ok && bin.Op.IsAssign() {
			return g.assignment(bin)
		}
	}
	return g.expr(id, dialect.PrecLowest)
}

// letText renders a declaration on one line, ';' included.
func (g *generator) letText(id ast.StmtID, let *ast.LetStmt) string {
	var sb strings.Builder
	name := g.name(let.Name)
	hasType := let.Type.IsValid()
	if g.closure() {
		sb.WriteString(dialect.LetKeyword(g.sem.IsMutated(sema.LocalKey(id))))
		sb.WriteByte(' ')
		if ty := g.b.Types.Get(let.Type); hasType && ty.Kind != ast.TypeAuto {
			sb.WriteString(g.decl(name, let.Type))
		} else {
			sb.WriteString(name)
		}
	} else {
		switch {
		case let.Keyword == ast.LetImplicit:
			sb.WriteString(g.decl(name, let.Type))
		case hasType:
			sb.WriteString(let.Keyword.String() + " " + name + ": " + g.typ(let.Type))
		default:
			sb.WriteString(let.Keyword.String() + " " + name)
		}
	}
	if let.Value.IsValid() {
		sb.WriteString(" = ")
		sb.WriteString(g.expr(let.Value, dialect.PrecLowest))
	}
	sb.WriteByte(';')
	return sb.String()
}

// condHead renders `kw cond` (closure) or `kw (cond)` (C-style).
func (g *generator) condHead(kw string, cond ast.ExprID) string {
	if g.closure() {
		return kw + " " + g.expr(cond, dialect.PrecLowest)
	}
	return kw + " (" + g.expr(cond, dialect.PrecLowest) + ")"
}

func (g *generator) ifStmt(s *ast.IfStmt) {
	g.w.Open(g.condHead("if", s.Cond))
	g.stmtsOf(s.Then)
	for cur := s; cur.Else.IsValid(); {
		g.w.IndentPop()
		g.w.WriteString("} ")
		if elif, ok := g.b.Stmts.If(cur.Else); ok {
			g.w.Open(g.condHead("else if", elif.Cond))
			g.stmtsOf(elif.Then)
			cur = elif
			continue
		}
		g.w.Open("else")
		g.stmtsOf(cur.Else)
		break
	}
	g.w.Close("")
}

// loopLabel is the `'name: ` / `.name: ` prefix of a loop header.
func (g *generator) loopLabel(id ast.StmtID, user source.StringID) string {
	if g.closure() {
		if t := g.jumps.target(id); t.label != "" {
			return g.target.Label(t.label) + ": "
		}
		return ""
	}
	if user != source.NoStringID {
		return g.label(user) + ": "
	}
	return ""
}

func (g *generator) jump(id ast.StmtID, kind ast.StmtKind) string {
	j, _ := g.b.Stmts.Jump(id)
	kw := "break"
	if kind == ast.StmtContinue {
		kw = "continue"
	}
	if !g.closure() {
		if j.Label != source.NoStringID {
			return kw + " " + g.label(j.Label) + ";"
		}
		return kw + ";"
	}
	rec := g.jumps.jumps[id]
	if rec == nil {
		return kw + ";"
	}
	t := g.jumps.target(rec.target)
	switch {
	case t.kind == ast.StmtSwitch:
		return "break " + g.target.Label(t.exit) + ";"
	case kind == ast.StmtContinue && t.kind == ast.StmtFor && t.hasContinue:
		return "break " + g.target.Label(t.next) + ";"
	case j.Label != source.NoStringID || rec.crossing:
		return kw + " " + g.target.Label(t.label) + ";"
	}
	return kw + ";"
}

func (g *generator) nestedFn(id ast.StmtID, fn *ast.FnDecl) {
	if !g.closure() {
		g.w.Open(g.cSignature(fn, ""))
		g.stmtsOf(fn.Body)
		g.w.Close("")
		return
	}
	var sb strings.Builder
	sb.WriteString(dialect.LetKeyword(g.sem.HasMutableCapture(id)))
	sb.WriteByte(' ')
	sb.WriteString(g.name(fn.Name))
	sb.WriteString(" = |")
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if g.sem.IsMutated(sema.NestedParamKey(id, i)) {
			sb.WriteString("mut ")
		}
		sb.WriteString(g.decl(g.name(p.Name), p.Type))
	}
	sb.WriteByte('|')
	if ty := g.b.Types.Get(fn.Result); !g.b.Types.IsVoid(fn.Result) && ty.Kind != ast.TypeAuto {
		sb.WriteString(" -> ")
		sb.WriteString(g.typ(fn.Result))
	}
	g.w.Open(sb.String())
	g.stmtsOf(fn.Body)
	g.w.Close(";")
}

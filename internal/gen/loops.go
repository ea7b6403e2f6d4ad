package gen

import (
	"strings"

	"cinder/internal/ast"
	"cinder/internal/dialect"
)

// forLoop lowers `for (init; cond; post) body` to
//
//	{ init; 'l: loop { if !cond { break; } 'next: { body } post; } }
//
// The body block is labeled only when a continue targets the loop, so that
// the continue can leave the body and still run post.
func (g *generator) forLoop(id ast.StmtID, s *ast.ForStmt) {
	t := g.jumps.target(id)
	if s.Init.IsValid() {
		g.w.Open("")
		g.stmt(s.Init)
	}
	g.w.Open(g.loopLabel(id, s.Label) + "loop")
	if s.Cond.IsValid() {
		g.w.Open("if !" + g.expr(s.Cond, dialect.PrecUnary))
		g.w.Line("break;")
		g.w.Close("")
	}
	if t.next != "" {
		g.w.Open(g.target.Label(t.next) + ":")
		g.stmtsOf(s.Body)
		g.w.Close("")
	} else {
		g.stmtsOf(s.Body)
	}
	if s.Post.IsValid() {
		g.w.Line(g.exprStmt(s.Post) + ";")
	}
	g.w.Close("")
	if s.Init.IsValid() {
		g.w.Close("")
	}
}

func (g *generator) cFor(s *ast.ForStmt) {
	var sb strings.Builder
	sb.WriteString(g.loopLabel(ast.NoStmtID, s.Label))
	sb.WriteString("for (")
	switch init := g.b.Stmts.Get(s.Init); {
	case init == nil:
		sb.WriteByte(';')
	case init.Kind == ast.StmtLet:
		let, _ := g.b.Stmts.Let(s.Init)
		sb.WriteString(g.letText(s.Init, let))
	default:
		es, _ := g.b.Stmts.Expr(s.Init)
		sb.WriteString(g.exprStmt(es.Expr) + ";")
	}
	if s.Cond.IsValid() {
		sb.WriteByte(' ')
		sb.WriteString(g.expr(s.Cond, dialect.PrecLowest))
	}
	sb.WriteByte(';')
	if s.Post.IsValid() {
		sb.WriteByte(' ')
		sb.WriteString(g.exprStmt(s.Post))
	}
	sb.WriteByte(')')
	g.w.Open(sb.String())
	g.stmtsOf(s.Body)
	g.w.Close("")
}

func (g *generator) forIn(id ast.StmtID, s *ast.ForInStmt) {
	var head string
	iter := g.expr(s.Iterable, dialect.PrecLowest)
	if g.closure() {
		head = "for " + g.name(s.Name) + " in " + iter
	} else {
		binding := g.name(s.Name)
		if s.Type.IsValid() {
			binding = g.typ(s.Type) + " " + binding
		}
		head = "for (" + binding + " in " + iter + ")"
	}
	g.w.Open(g.loopLabel(id, s.Label) + head)
	g.stmtsOf(s.Body)
	g.w.Close("")
}

// match lowers a switch. The default arm always goes last; a missing
// default becomes `_ => {}`.
func (g *generator) match(id ast.StmtID, s *ast.SwitchStmt) {
	t := g.jumps.target(id)
	if t.exit != "" {
		g.w.Open(g.target.Label(t.exit) + ":")
	}
	g.w.Open("match " + g.expr(s.Value, dialect.PrecLowest))
	var def *ast.SwitchArm
	for i := range s.Arms {
		arm := &s.Arms[i]
		if arm.IsDefault {
			def = arm
			continue
		}
		pats := make([]string, 0, len(arm.Patterns))
		for _, p := range arm.Patterns {
			if !g.constPattern(p) {
				return
			}
			pats = append(pats, g.expr(p, dialect.PrecLowest))
		}
		g.arm(strings.Join(pats, " | "), arm.Body)
	}
	if def != nil {
		g.arm(g.target.Wildcard(), def.Body)
	} else {
		g.w.Line(g.target.Wildcard() + " => {}")
	}
	g.w.Close("")
	if t.exit != "" {
		g.w.Close("")
	}
}

func (g *generator) arm(head string, body []ast.StmtID) {
	if len(body) == 0 {
		g.w.Line(head + " => {}")
		return
	}
	g.w.Open(head + " =>")
	g.stmts(body)
	g.w.Close("")
}

// constPattern accepts the case values a match arm can test directly:
// literals, names, paths and negated literals.
func (g *generator) constPattern(id ast.ExprID) bool {
	exprs := g.b.Exprs
	e := exprs.Get(id)
	switch e.Kind {
	case ast.ExprLit, ast.ExprIdent, ast.ExprPath:
		return true
	case ast.ExprUnary:
		if u, _ := exprs.Unary(id); u.Op == ast.ExprUnaryMinus {
			if inner := exprs.Get(u.Operand); inner != nil && inner.Kind == ast.ExprLit {
				return true
			}
		}
	}
	g.fail(e.Span, "case value must be a literal, a name or a path to become a match pattern")
	return false
}

func (g *generator) cSwitch(s *ast.SwitchStmt) {
	g.w.Open("switch (" + g.expr(s.Value, dialect.PrecLowest) + ")")
	for _, arm := range s.Arms {
		if len(arm.Patterns) > 0 {
			g.w.Line("case " + g.exprList(arm.Patterns) + ":")
		}
		if arm.IsDefault {
			g.w.Line(g.target.Wildcard() + ":")
		}
		g.w.IndentPush()
		g.stmts(arm.Body)
		if arm.Break {
			g.w.Line("break;")
		}
		g.w.IndentPop()
	}
	g.w.Close("")
}

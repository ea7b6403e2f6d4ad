package sema

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/parser"
)

func (cc *captureChecker) walkExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	exprs := cc.builder.Exprs
	expr := exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		cc.resolve(id, false, false)

	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		if bin.Op.IsAssign() {
			cc.walkTarget(bin.Left)
		} else {
			cc.walkExpr(bin.Left)
		}
		cc.walkExpr(bin.Right)

	case ast.ExprUnary:
		un, _ := exprs.Unary(id)
		if un.Op.IsIncDec() {
			cc.walkTarget(un.Operand)
		} else {
			cc.walkExpr(un.Operand)
		}

	case ast.ExprCall:
		call, _ := exprs.Call(id)
		if call.Target.IsValid() && exprs.Get(call.Target).Kind == ast.ExprIdent {
			cc.resolve(call.Target, false, true)
		} else {
			cc.walkExpr(call.Target)
		}
		cc.walkExprs(call.Args)

	case ast.ExprIndex:
		idx, _ := exprs.Index(id)
		cc.walkExpr(idx.Target)
		cc.walkExpr(idx.Index)

	case ast.ExprMember:
		m, _ := exprs.Member(id)
		cc.walkExpr(m.Target)

	case ast.ExprCast:
		c, _ := exprs.Cast(id)
		cc.walkExpr(c.Value)

	case ast.ExprTernary:
		t, _ := exprs.Ternary(id)
		cc.walkExpr(t.Cond)
		cc.walkExpr(t.Then)
		cc.walkExpr(t.Else)

	case ast.ExprTuple:
		t, _ := exprs.Tuple(id)
		cc.walkExprs(t.Elements)

	case ast.ExprArray:
		a, _ := exprs.Array(id)
		cc.walkExprs(a.Elements)

	case ast.ExprStructInit:
		si, _ := exprs.StructInit(id)
		for _, f := range si.Fields {
			cc.walkExpr(f.Value)
		}

	case ast.ExprMacroCall:
		mc, _ := exprs.MacroCall(id)
		cc.walkExprs(mc.Args)

	case ast.ExprLit, ast.ExprPath:
		// scoped paths name external items
	}
}

func (cc *captureChecker) walkExprs(ids []ast.ExprID) {
	for _, id := range ids {
		cc.walkExpr(id)
	}
}

// walkTarget walks the left side of an assignment or ++/--. The root
// variable of a.b and a[i] is written; p->f and *p only read p.
func (cc *captureChecker) walkTarget(id ast.ExprID) {
	exprs := cc.builder.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		cc.resolve(id, true, false)
	case ast.ExprIndex:
		idx, _ := exprs.Index(id)
		cc.walkTarget(idx.Target)
		cc.walkExpr(idx.Index)
	case ast.ExprMember:
		m, _ := exprs.Member(id)
		if m.Arrow {
			cc.walkExpr(m.Target)
		} else {
			cc.walkTarget(m.Target)
		}
	case ast.ExprLit, ast.ExprCall, ast.ExprBinary, ast.ExprTernary, ast.ExprCast:
		cc.report(InvalidOperation, expr.Span, "expression is not assignable")
		cc.walkExpr(id)
	default:
		cc.walkExpr(id)
	}
}

// resolve looks up an identifier. Bindings of enclosing functions become
// captures of every nested function between the use and the declaration.
func (cc *captureChecker) resolve(id ast.ExprID, write, callee bool) {
	ident, _ := cc.builder.Exprs.Ident(id)
	sp := cc.builder.Exprs.Get(id).Span
	name := cc.builder.Name(ident.Name)

	b, ok := cc.scope.lookup(ident.Name)
	if !ok {
		for f := cc.frame; f != nil; f = f.parent {
			if f.stmt.IsValid() && f.name == ident.Name {
				cc.report(UndefinedVariable, sp,
					"nested function '%s' is used before it is declared (recursive nested functions are not supported)", name)
				return
			}
		}
		if declSpan, later := cc.scope.declaredLater(ident.Name); later {
			e := cc.report(UndefinedVariable, sp, "'%s' is used before it is declared", name)
			e.Notes = []diag.Note{{Span: declSpan, Msg: "'" + name + "' is declared later here"}}
			return
		}
		// неизвестная функция — внешняя; __NAME__ — макрос, объявленный ниже
		if callee || parser.IsMacroName(name) {
			return
		}
		cc.report(UndefinedVariable, sp, "undefined variable '%s'", name)
		return
	}

	if b.frame != nil {
		for f := cc.frame; f != nil && f != b.frame; f = f.parent {
			f.capture(b, write)
		}
	}
	if !write {
		return
	}
	if b.Mutability != Mutable {
		e := cc.report(InvalidOperation, sp, "cannot assign to %s '%s'", b.keyword, name)
		e.Notes = []diag.Note{{Span: b.Span, Msg: "declared here"}}
		return
	}
	cc.result.Mutated[b.Key] = true
}

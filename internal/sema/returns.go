package sema

import (
	"cinder/internal/ast"
	"cinder/internal/source"
)

// checkReturn compares a return statement with the declared result of the
// current function. Only primitive classes are compared; unknown expressions pass.
func (cc *captureChecker) checkReturn(sp source.Span, value ast.ExprID) {
	fr := cc.frame
	types := cc.builder.Types
	if t := types.Get(fr.result); t != nil && t.Kind == ast.TypeAuto {
		return
	}
	fnName := cc.builder.Name(fr.name)
	void := types.IsVoid(fr.result)
	switch {
	case !value.IsValid() && !void:
		cc.report(TypeMismatch, sp, "function '%s' returns %s but 'return' has no value", fnName, cc.typeName(fr.result))
		return
	case value.IsValid() && void:
		cc.report(TypeMismatch, sp, "function '%s' returns void but 'return' has a value", fnName)
		return
	case !value.IsValid():
		return
	}
	want := cc.typeClass(fr.result)
	got := cc.exprClass(value)
	if want == ast.ClassNone || got == ast.ClassNone || compatibleClass(want, got) {
		return
	}
	cc.report(TypeMismatch, cc.builder.Exprs.Get(value).Span,
		"function '%s' is declared to return %s but returns %s", fnName, cc.typeName(fr.result), got)
}

// compatibleClass allows the implicit C conversions integer→float and char↔integer.
func compatibleClass(want, got ast.PrimClass) bool {
	switch {
	case want == got:
		return true
	case want == ast.ClassFloat && got == ast.ClassInteger:
		return true
	case want == ast.ClassInteger && got == ast.ClassChar, want == ast.ClassChar && got == ast.ClassInteger:
		return true
	}
	return false
}

func (cc *captureChecker) typeName(t ast.TypeID) string {
	if prim, ok := cc.builder.Types.Primitive(t); ok {
		return cc.builder.Name(prim.Name)
	}
	return "a value"
}

// exprClass infers the primitive class of an expression without reporting.
func (cc *captureChecker) exprClass(id ast.ExprID) ast.PrimClass {
	exprs := cc.builder.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return ast.ClassNone
	}
	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		switch lit.Kind {
		case ast.ExprLitInt:
			return ast.ClassInteger
		case ast.ExprLitFloat:
			return ast.ClassFloat
		case ast.ExprLitString:
			return ast.ClassString
		case ast.ExprLitChar:
			return ast.ClassChar
		case ast.ExprLitTrue, ast.ExprLitFalse:
			return ast.ClassBool
		}
	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		if b, ok := cc.scope.lookup(ident.Name); ok && !b.Fn {
			return b.Class
		}
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		switch {
		case bin.Op.IsComparison(), bin.Op == ast.ExprBinaryLogicalAnd, bin.Op == ast.ExprBinaryLogicalOr:
			return ast.ClassBool
		case bin.Op.IsAssign():
			return ast.ClassNone
		}
		l, r := cc.exprClass(bin.Left), cc.exprClass(bin.Right)
		if l == r {
			return l
		}
		if (l == ast.ClassFloat && r == ast.ClassInteger) || (l == ast.ClassInteger && r == ast.ClassFloat) {
			return ast.ClassFloat
		}
	case ast.ExprUnary:
		un, _ := exprs.Unary(id)
		switch un.Op {
		case ast.ExprUnaryNot:
			return ast.ClassBool
		case ast.ExprUnaryDeref, ast.ExprUnaryAddr:
			return ast.ClassNone
		}
		return cc.exprClass(un.Operand)
	case ast.ExprCast:
		c, _ := exprs.Cast(id)
		return cc.typeClass(c.Type)
	case ast.ExprTernary:
		t, _ := exprs.Ternary(id)
		if th := cc.exprClass(t.Then); th == cc.exprClass(t.Else) {
			return th
		}
	}
	return ast.ClassNone
}

// terminates reports whether a statement list always leaves the enclosing switch arm.
func (cc *captureChecker) terminates(stmts []ast.StmtID) bool {
	if len(stmts) == 0 {
		return false
	}
	last := stmts[len(stmts)-1]
	st := cc.builder.Stmts.Get(last)
	switch st.Kind {
	case ast.StmtReturn, ast.StmtBreak, ast.StmtContinue:
		return true
	case ast.StmtBlock:
		blk, _ := cc.builder.Stmts.Block(last)
		return cc.terminates(blk.Stmts)
	case ast.StmtIf:
		ifs, _ := cc.builder.Stmts.If(last)
		return ifs.Else.IsValid() && cc.terminates([]ast.StmtID{ifs.Then}) && cc.terminates([]ast.StmtID{ifs.Else})
	}
	return false
}

package gen

import (
	"strings"

	"cinder/internal/ast"
	"cinder/internal/dialect"
)

// expr renders id, parenthesized when it binds looser than minPrec.
func (g *generator) expr(id ast.ExprID, minPrec int) string {
	s, prec := g.render(id)
	if prec < minPrec {
		return "(" + s + ")"
	}
	return s
}

// operand renders a binary operand using the target's associativity rules.
func (g *generator) operand(id ast.ExprID, parent int, assoc dialect.Assoc, right bool) string {
	s, prec := g.render(id)
	if dialect.NeedsParens(prec, parent, assoc, right) {
		return "(" + s + ")"
	}
	return s
}

func (g *generator) exprList(ids []ast.ExprID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = g.expr(id, dialect.PrecLowest)
	}
	return strings.Join(parts, ", ")
}

// render returns the text of an expression and the precedence it binds with.
func (g *generator) render(id ast.ExprID) (string, int) {
	exprs := g.b.Exprs
	e := exprs.Get(id)
	if e == nil {
		return "", dialect.PrecPrimary
	}
	switch e.Kind {
	case ast.ExprIdent:
		d, _ := exprs.Ident(id)
		return g.name(d.Name), dialect.PrecPrimary

	case ast.ExprLit:
		d, _ := exprs.Literal(id)
		return g.literal(d), dialect.PrecPrimary

	case ast.ExprBinary:
		d, _ := exprs.Binary(id)
		if d.Op.IsAssign() && g.closure() {
			return g.assignValue(d), dialect.PrecPrimary
		}
		prec, assoc := g.target.Binary(d.Op)
		left := g.operand(d.Left, prec, assoc, false)
		right := g.operand(d.Right, prec, assoc, true)
		return left + " " + d.Op.String() + " " + right, prec

	case ast.ExprUnary:
		d, _ := exprs.Unary(id)
		return g.unary(d)

	case ast.ExprCall:
		d, _ := exprs.Call(id)
		return g.expr(d.Target, dialect.PrecPostfix) + "(" + g.exprList(d.Args) + ")", dialect.PrecPostfix

	case ast.ExprIndex:
		d, _ := exprs.Index(id)
		return g.expr(d.Target, dialect.PrecPostfix) + "[" + g.expr(d.Index, dialect.PrecLowest) + "]", dialect.PrecPostfix

	case ast.ExprMember:
		d, _ := exprs.Member(id)
		field := g.name(d.Field)
		switch {
		case d.Arrow && g.closure():
			return "(*" + g.expr(d.Target, dialect.PrecUnary) + ")." + field, dialect.PrecPostfix
		case d.Arrow:
			return g.expr(d.Target, dialect.PrecPostfix) + "->" + field, dialect.PrecPostfix
		}
		return g.expr(d.Target, dialect.PrecPostfix) + "." + field, dialect.PrecPostfix

	case ast.ExprPath:
		d, _ := exprs.Path(id)
		return g.path(d), dialect.PrecPrimary

	case ast.ExprCast:
		d, _ := exprs.Cast(id)
		return g.cast(d)

	case ast.ExprTernary:
		d, _ := exprs.Ternary(id)
		if g.closure() {
			return "if " + g.expr(d.Cond, dialect.PrecLowest) +
				" { " + g.expr(d.Then, dialect.PrecLowest) +
				" } else { " + g.expr(d.Else, dialect.PrecLowest) + " }", g.target.Ternary()
		}
		orPrec, _ := g.target.Binary(ast.ExprBinaryLogicalOr)
		return g.expr(d.Cond, orPrec) + " ? " + g.expr(d.Then, dialect.PrecLowest) +
			" : " + g.expr(d.Else, dialect.PrecTernary), dialect.PrecTernary

	case ast.ExprTuple:
		d, _ := exprs.Tuple(id)
		if len(d.Elements) == 1 {
			return "(" + g.expr(d.Elements[0], dialect.PrecLowest) + ",)", dialect.PrecPrimary
		}
		return "(" + g.exprList(d.Elements) + ")", dialect.PrecPrimary

	case ast.ExprArray:
		d, _ := exprs.Array(id)
		return "[" + g.exprList(d.Elements) + "]", dialect.PrecPrimary

	case ast.ExprStructInit:
		d, _ := exprs.StructInit(id)
		return g.structInit(d), dialect.PrecPrimary

	case ast.ExprMacroCall:
		d, _ := exprs.MacroCall(id)
		head := g.target.MacroName(g.b.Name(d.Name))
		if d.Delim == ast.DelimNone {
			if g.closure() {
				return head + "()", dialect.PrecPostfix
			}
			return head, dialect.PrecPrimary
		}
		return head + d.Delim.Open() + g.exprList(d.Args) + d.Delim.Close(), dialect.PrecPostfix
	}
	g.fail(e.Span, "unsupported expression")
	return "", dialect.PrecPrimary
}

func (g *generator) literal(d *ast.ExprLiteralData) string {
	text := g.b.Name(d.Value)
	switch d.Kind {
	case ast.ExprLitInt:
		return g.target.IntLiteral(text)
	case ast.ExprLitFloat:
		return g.target.FloatLiteral(text)
	case ast.ExprLitTrue:
		return "true"
	case ast.ExprLitFalse:
		return "false"
	case ast.ExprLitNull:
		return g.target.NullLiteral()
	}
	return text
}

func (g *generator) path(d *ast.ExprPathData) string {
	var sb strings.Builder
	for i, seg := range d.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(g.name(seg))
		if i == 0 && len(d.TypeArgs) > 0 {
			if g.closure() {
				sb.WriteString("::")
			}
			sb.WriteString(g.typeArgs(d.TypeArgs))
		}
	}
	return sb.String()
}

func (g *generator) structInit(d *ast.ExprStructInitData) string {
	var sb strings.Builder
	sb.WriteString(g.typ(d.Type))
	if len(d.Fields) == 0 {
		sb.WriteString(" {}")
		return sb.String()
	}
	sb.WriteString(" { ")
	for i, f := range d.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.name(f.Name))
		sb.WriteString(": ")
		sb.WriteString(g.expr(f.Value, dialect.PrecLowest))
	}
	sb.WriteString(" }")
	return sb.String()
}

func (g *generator) unary(d *ast.ExprUnaryData) (string, int) {
	if d.Op.IsIncDec() {
		if g.closure() {
			return g.incDecValue(d), dialect.PrecPrimary
		}
		if d.Op.IsPostfix() {
			return g.expr(d.Operand, dialect.PrecPostfix) + d.Op.String(), dialect.PrecPostfix
		}
		return d.Op.String() + g.expr(d.Operand, dialect.PrecUnary), dialect.PrecUnary
	}
	operand := g.expr(d.Operand, dialect.PrecUnary)
	op := d.Op.String()
	if g.closure() {
		switch d.Op {
		case ast.ExprUnaryPlus:
			return operand, dialect.PrecUnary
		case ast.ExprUnaryBitNot:
			op = "!"
		}
	}
	// `- -x` and `& &x` must not fuse into `--` / `&&`
	if (op == "-" || op == "+" || op == "&") && strings.HasPrefix(operand, op) {
		op += " "
	}
	return op + operand, dialect.PrecUnary
}

// incDecValue lowers ++/-- used as a value into a block expression.
func (g *generator) incDecValue(d *ast.ExprUnaryData) string {
	target := g.expr(d.Operand, dialect.PrecUnary)
	step := incDecStep(d.Op)
	if d.Op.IsPostfix() {
		return "{ let __tmp = " + target + "; " + target + step + "; __tmp }"
	}
	return "{ " + target + step + "; " + target + " }"
}

// incDecStatement is the statement form of ++/--: x += 1
func (g *generator) incDecStatement(d *ast.ExprUnaryData) string {
	return g.expr(d.Operand, dialect.PrecUnary) + incDecStep(d.Op)
}

func incDecStep(op ast.ExprUnaryOp) string {
	if op == ast.ExprUnaryPreDec || op == ast.ExprUnaryPostDec {
		return " -= 1"
	}
	return " += 1"
}

// assignValue lowers an assignment used as a value: { a = b; a }
func (g *generator) assignValue(d *ast.ExprBinaryData) string {
	target := g.expr(d.Left, dialect.PrecUnary)
	return "{ " + g.assignment(d) + "; " + target + " }"
}

// assignment renders `target op value` without a trailing semicolon.
func (g *generator) assignment(d *ast.ExprBinaryData) string {
	return g.operand(d.Left, dialect.PrecAssign, dialect.AssocRight, false) + " " +
		d.Op.String() + " " + g.expr(d.Right, dialect.PrecLowest)
}

func (g *generator) cast(d *ast.ExprCastData) (string, int) {
	if g.closure() {
		return "(" + g.expr(d.Value, g.target.CastOperand()) + " as " + g.typ(d.Type) + ")", dialect.PrecPrimary
	}
	operand := g.expr(d.Value, g.target.CastOperand())
	if g.castNeedsGroup(d) && !strings.HasPrefix(operand, "(") {
		operand = "(" + operand + ")"
	}
	return "(" + g.typ(d.Type) + ") " + operand, dialect.PrecUnary
}

// castNeedsGroup reports operands that would not be read back as a cast
// operand after `(T)`.
func (g *generator) castNeedsGroup(d *ast.ExprCastData) bool {
	exprs := g.b.Exprs
	switch e := exprs.Get(d.Value); e.Kind {
	case ast.ExprArray:
		return true
	case ast.ExprUnary:
		u, _ := exprs.Unary(d.Value)
		switch u.Op {
		case ast.ExprUnaryNot, ast.ExprUnaryBitNot, ast.ExprUnaryPostInc, ast.ExprUnaryPostDec:
			return false
		case ast.ExprUnaryPreInc, ast.ExprUnaryPreDec:
			return true
		}
		ty := g.b.Types.Get(d.Type)
		return ty == nil || (ty.Kind != ast.TypePrimitive && ty.Kind != ast.TypePointer)
	}
	return false
}

package parser

import (
	"testing"

	"cinder/internal/ast"
)

func TestParenthesizedForms(t *testing.T) {
	b, file := mustParse(t, `void f() {
    a = (int) b;
    c = (b, d);
    e = (b);
    g = (b,);
    h = ();
    k = (x) - 1;
    m = (int) -1;
    n = (int*) p;
    q = (Point) s;
    r = (float)(a + b);
    u = (b, d,);
}`)
	stmts := bodyOf(t, b, file, 0)

	cast := func(i int) *ast.ExprCastData {
		t.Helper()
		c, ok := b.Exprs.Cast(exprOf(t, b, stmts[i]))
		if !ok {
			t.Fatalf("statement %d: expected cast, got kind %d", i, b.Exprs.Get(exprOf(t, b, stmts[i])).Kind)
		}
		return c
	}
	tuple := func(i, want int) {
		t.Helper()
		tup, ok := b.Exprs.Tuple(exprOf(t, b, stmts[i]))
		if !ok {
			t.Fatalf("statement %d: expected tuple", i)
		}
		if len(tup.Elements) != want {
			t.Errorf("statement %d: %d elements, want %d", i, len(tup.Elements), want)
		}
	}

	if c := cast(0); b.Types.PrimKindOf(c.Type) != ast.PrimInt {
		t.Errorf("(int) b: wrong cast type")
	}
	tuple(1, 2)
	if id, ok := b.Exprs.Ident(exprOf(t, b, stmts[2])); !ok || b.Name(id.Name) != "b" {
		t.Errorf("(b) should be the inner identifier")
	}
	tuple(3, 1)
	tuple(4, 0)
	if bin, ok := b.Exprs.Binary(exprOf(t, b, stmts[5])); !ok || bin.Op != ast.ExprBinarySub {
		t.Errorf("(x) - 1 should be a subtraction")
	}
	if c := cast(6); b.Exprs.Get(c.Value).Kind != ast.ExprUnary {
		t.Errorf("(int) -1 should cast a negation")
	}
	if c := cast(7); b.Types.Get(c.Type).Kind != ast.TypePointer {
		t.Errorf("(int*) p: expected pointer type")
	}
	if c := cast(8); b.Types.Get(c.Type).Kind != ast.TypeIdent {
		t.Errorf("(Point) s: expected named type")
	}
	if c := cast(9); b.Exprs.Get(c.Value).Kind != ast.ExprBinary {
		t.Errorf("(float)(a + b): expected binary operand")
	}
	tuple(10, 2)
}

func TestPrecedence(t *testing.T) {
	b, file := mustParse(t, `void f() {
    a = 1 + 2 * 3;
    a = b || c && d;
    a = 1 << 2 + 3;
    a = x == y < z;
    a = c ? 1 : 2;
    a += b -= 1;
    a = -x * y;
    a = m & n | o ^ p;
}`)
	stmts := bodyOf(t, b, file, 0)

	check := func(i int, op, rightOp ast.ExprBinaryOp) {
		t.Helper()
		bin, ok := b.Exprs.Binary(exprOf(t, b, stmts[i]))
		if !ok || bin.Op != op {
			t.Fatalf("statement %d: expected %s", i, op)
		}
		right, ok := b.Exprs.Binary(bin.Right)
		if !ok || right.Op != rightOp {
			t.Errorf("statement %d: right side should be %s", i, rightOp)
		}
	}
	check(0, ast.ExprBinaryAdd, ast.ExprBinaryMul)
	check(1, ast.ExprBinaryLogicalOr, ast.ExprBinaryLogicalAnd)
	check(2, ast.ExprBinaryShiftLeft, ast.ExprBinaryAdd)
	check(3, ast.ExprBinaryEq, ast.ExprBinaryLess)

	if _, ok := b.Exprs.Ternary(exprOf(t, b, stmts[4])); !ok {
		t.Errorf("expected ternary")
	}

	es, _ := b.Stmts.Expr(stmts[5])
	outer, ok := b.Exprs.Binary(es.Expr)
	if !ok || outer.Op != ast.ExprBinaryAddAssign {
		t.Fatalf("expected +=")
	}
	if inner, ok := b.Exprs.Binary(outer.Right); !ok || inner.Op != ast.ExprBinarySubAssign {
		t.Errorf("compound assignment should be right associative")
	}

	mul, ok := b.Exprs.Binary(exprOf(t, b, stmts[6]))
	if !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("expected multiplication at the top")
	}
	if neg, ok := b.Exprs.Unary(mul.Left); !ok || neg.Op != ast.ExprUnaryMinus {
		t.Errorf("prefix minus should bind tighter than *")
	}

	or, ok := b.Exprs.Binary(exprOf(t, b, stmts[7]))
	if !ok || or.Op != ast.ExprBinaryBitOr {
		t.Fatalf("expected | at the top")
	}
	if xor, ok := b.Exprs.Binary(or.Right); !ok || xor.Op != ast.ExprBinaryBitXor {
		t.Errorf("^ should bind tighter than |")
	}
}

func TestPostfixChain(t *testing.T) {
	b, file := mustParse(t, `void f() {
    a = p->x.y;
    a = f(1, 2)[0];
    i++;
    --i;
}`)
	stmts := bodyOf(t, b, file, 0)

	outer, ok := b.Exprs.Member(exprOf(t, b, stmts[0]))
	if !ok || outer.Arrow || b.Name(outer.Field) != "y" {
		t.Fatalf("expected .y at the top")
	}
	if inner, ok := b.Exprs.Member(outer.Target); !ok || !inner.Arrow {
		t.Errorf("expected ->x inside")
	}

	idx, ok := b.Exprs.Index(exprOf(t, b, stmts[1]))
	if !ok {
		t.Fatalf("expected index")
	}
	if call, ok := b.Exprs.Call(idx.Target); !ok || len(call.Args) != 2 {
		t.Errorf("expected call with 2 args")
	}

	if u, ok := b.Exprs.Unary(exprOf(t, b, stmts[2])); !ok || u.Op != ast.ExprUnaryPostInc {
		t.Errorf("expected i++")
	}
	if u, ok := b.Exprs.Unary(exprOf(t, b, stmts[3])); !ok || u.Op != ast.ExprUnaryPreDec {
		t.Errorf("expected --i")
	}
}

func TestPathsAndInitializers(t *testing.T) {
	b, file := mustParse(t, `void f() {
    a = Vec<int>::new();
    a = Color::Red;
    a = Point { x: 1, y: 2 };
    a = Point {};
    a = [1, 2, 3];
    a = Vec::<int>::with(4);
    if (a) { g(); }
}`)
	stmts := bodyOf(t, b, file, 0)

	call, ok := b.Exprs.Call(exprOf(t, b, stmts[0]))
	if !ok {
		t.Fatalf("expected call")
	}
	path, ok := b.Exprs.Path(call.Target)
	if !ok || len(path.Segments) != 2 || len(path.TypeArgs) != 1 {
		t.Errorf("expected Vec<int>::new path")
	}

	if p, ok := b.Exprs.Path(exprOf(t, b, stmts[1])); !ok || len(p.Segments) != 2 || p.TypeArgs != nil {
		t.Errorf("expected Color::Red")
	}

	init, ok := b.Exprs.StructInit(exprOf(t, b, stmts[2]))
	if !ok || len(init.Fields) != 2 || b.Name(init.Fields[1].Name) != "y" {
		t.Fatalf("expected struct initializer with 2 fields")
	}
	if empty, ok := b.Exprs.StructInit(exprOf(t, b, stmts[3])); !ok || len(empty.Fields) != 0 {
		t.Errorf("expected empty struct initializer")
	}
	if arr, ok := b.Exprs.Array(exprOf(t, b, stmts[4])); !ok || len(arr.Elements) != 3 {
		t.Errorf("expected array literal")
	}
	turbofish, ok := b.Exprs.Call(exprOf(t, b, stmts[5]))
	if !ok {
		t.Fatalf("expected call")
	}
	if p, ok := b.Exprs.Path(turbofish.Target); !ok || len(p.Segments) != 2 || len(p.TypeArgs) != 1 {
		t.Errorf("expected Vec::<int>::with")
	}
	if _, ok := b.Stmts.If(stmts[6]); !ok {
		t.Errorf("if (a) { ... } must not become a struct initializer")
	}
}

func TestComparisonIsNotGeneric(t *testing.T) {
	b, file := mustParse(t, "void f() { a = x < y; c = i < n && j > m; }")
	stmts := bodyOf(t, b, file, 0)
	if bin, ok := b.Exprs.Binary(exprOf(t, b, stmts[0])); !ok || bin.Op != ast.ExprBinaryLess {
		t.Errorf("expected comparison")
	}
	if bin, ok := b.Exprs.Binary(exprOf(t, b, stmts[1])); !ok || bin.Op != ast.ExprBinaryLogicalAnd {
		t.Errorf("expected && of comparisons")
	}
}

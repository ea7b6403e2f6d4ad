package parser

import (
	"testing"

	"cinder/internal/ast"
)

func TestImplicitDeclarationIsImmutable(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantType ast.TypeKind
	}{
		{"primitive", "int main() { int x = 5; }", "x", ast.TypePrimitive},
		{"custom type", "int main() { Foo x = 1; }", "x", ast.TypeIdent},
		{"pointer", "int main() { Point* p = q; }", "p", ast.TypePointer},
		{"reference", "int main() { Point& r = q; }", "r", ast.TypeReference},
		{"generic", "int main() { Vec<int> v = make(); }", "v", ast.TypeGeneric},
		{"no value", "int main() { int z; }", "z", ast.TypePrimitive},
		{"c array", "int main() { int xs[3]; }", "xs", ast.TypeArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, file := mustParse(t, tt.input)
			stmts := bodyOf(t, b, file, 0)
			if len(stmts) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(stmts))
			}
			let, ok := b.Stmts.Let(stmts[0])
			if !ok {
				t.Fatalf("expected let statement, got kind %d", b.Stmts.Get(stmts[0]).Kind)
			}
			if let.Keyword != ast.LetImplicit {
				t.Errorf("keyword = %v, want implicit", let.Keyword)
			}
			if let.Mutable {
				t.Errorf("implicit declaration must not be mutable")
			}
			if got := b.Name(let.Name); got != tt.wantName {
				t.Errorf("name = %q, want %q", got, tt.wantName)
			}
			if got := b.Types.Get(let.Type).Kind; got != tt.wantType {
				t.Errorf("type kind = %d, want %d", got, tt.wantType)
			}
		})
	}
}

func TestAssignmentIsNeverDeclaration(t *testing.T) {
	inputs := []string{
		"void f() { x = 1; }",
		"void f() { x = y = 2; }",
		"void f() { counter = counter + 1; }",
	}
	for _, input := range inputs {
		b, file := mustParse(t, input)
		stmts := bodyOf(t, b, file, 0)
		es, ok := b.Stmts.Expr(stmts[0])
		if !ok {
			t.Fatalf("%q: expected expression statement", input)
		}
		bin, ok := b.Exprs.Binary(es.Expr)
		if !ok || bin.Op != ast.ExprBinaryAssign {
			t.Fatalf("%q: expected assignment", input)
		}
		if _, ok := b.Exprs.Ident(bin.Left); !ok {
			t.Errorf("%q: assignment target is not an identifier", input)
		}
	}
}

func TestLetForms(t *testing.T) {
	tests := []struct {
		input    string
		keyword  ast.LetKeyword
		mutable  bool
		wantType bool
	}{
		{"int main() { let int x = 42; }", ast.LetLet, false, true},
		{"int main() { let x: int = 42; }", ast.LetLet, false, true},
		{"int main() { let x = 42; }", ast.LetLet, false, false},
		{"int main() { var int x = 0; }", ast.LetVar, true, true},
		{"int main() { var x = 0; }", ast.LetVar, true, false},
		{"int main() { const int n = 3; }", ast.LetConst, false, true},
	}
	for _, tt := range tests {
		b, file := mustParse(t, tt.input)
		let, ok := b.Stmts.Let(bodyOf(t, b, file, 0)[0])
		if !ok {
			t.Fatalf("%q: expected let", tt.input)
		}
		if let.Keyword != tt.keyword || let.Mutable != tt.mutable {
			t.Errorf("%q: keyword=%v mutable=%v", tt.input, let.Keyword, let.Mutable)
		}
		if let.Type.IsValid() != tt.wantType {
			t.Errorf("%q: has type = %v", tt.input, let.Type.IsValid())
		}
		if b.Name(let.Name) != "x" && b.Name(let.Name) != "n" {
			t.Errorf("%q: unexpected name %q", tt.input, b.Name(let.Name))
		}
	}
}

func TestConstWithoutValueFails(t *testing.T) {
	_, res, _ := parseSource(t, "int main() { const int n; }")
	if res.Err == nil {
		t.Fatalf("expected error")
	}
}

func TestEndToEndMain(t *testing.T) {
	b, file := mustParse(t, "int main() { let int x = 42; return x; }")
	stmts := bodyOf(t, b, file, 0)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	let, ok := b.Stmts.Let(stmts[0])
	if !ok {
		t.Fatalf("expected let")
	}
	if b.Name(let.Name) != "x" || let.Mutable {
		t.Errorf("let = %q mutable=%v", b.Name(let.Name), let.Mutable)
	}
	if b.Types.PrimKindOf(let.Type) != ast.PrimInt {
		t.Errorf("expected int type")
	}
	ret, ok := b.Stmts.Return(stmts[1])
	if !ok {
		t.Fatalf("expected return")
	}
	if id, ok := b.Exprs.Ident(ret.Value); !ok || b.Name(id.Name) != "x" {
		t.Errorf("return value is not x")
	}
}

func TestNestedFunction(t *testing.T) {
	b, file := mustParse(t, "void outer() { let x: int = 42; int add_x(int y) { return x + y; } }")
	stmts := bodyOf(t, b, file, 0)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	fn, ok := b.Stmts.NestedFn(stmts[1])
	if !ok {
		t.Fatalf("expected nested fn, got kind %d", b.Stmts.Get(stmts[1]).Kind)
	}
	if b.Name(fn.Name) != "add_x" {
		t.Errorf("name = %q", b.Name(fn.Name))
	}
	if len(fn.Params) != 1 || b.Name(fn.Params[0].Name) != "y" {
		t.Errorf("unexpected params %+v", fn.Params)
	}
	if b.Types.PrimKindOf(fn.Result) != ast.PrimInt {
		t.Errorf("expected int result")
	}
}

func TestMultiplicationByCallIsExpression(t *testing.T) {
	inputs := []string{
		"void f() { int x = 1; int y = 2; x * g(y); }",
		"void f() { int x = 1; x & g(2); }",
	}
	for _, input := range inputs {
		b, file := mustParse(t, input)
		stmts := bodyOf(t, b, file, 0)
		last := stmts[len(stmts)-1]
		es, ok := b.Stmts.Expr(last)
		if !ok {
			t.Fatalf("%q: expected expression statement, got kind %d", input, b.Stmts.Get(last).Kind)
		}
		bin, ok := b.Exprs.Binary(es.Expr)
		if !ok {
			t.Fatalf("%q: expected binary expression", input)
		}
		if _, ok := b.Exprs.Call(bin.Right); !ok {
			t.Errorf("%q: right operand is not a call", input)
		}
	}

	b, file := mustParse(t, "void f() { int x = 1; x * g(x); }")
	es, ok := b.Stmts.Expr(bodyOf(t, b, file, 0)[1])
	if !ok {
		t.Fatal("expected expression statement")
	}
	if bin, ok := b.Exprs.Binary(es.Expr); !ok || bin.Op != ast.ExprBinaryMul {
		t.Errorf("expected multiplication, got %+v", bin)
	}

	// модификаторы допустимы только у объявлений переменных
	b, file = mustParse(t, "void f() { int* p = q; }")
	if _, ok := b.Stmts.Let(bodyOf(t, b, file, 0)[0]); !ok {
		t.Errorf("pointer declaration must stay an implicit declaration")
	}
}

func TestSwitchArmsMerge(t *testing.T) {
	src := `void f(int v) {
    switch (v) {
    case 1:
    case 2:
        g();
        break;
    case 3, 4:
        h();
        break;
    default:
        k();
    }
}`
	b, file := mustParse(t, src)
	sw, ok := b.Stmts.Switch(bodyOf(t, b, file, 0)[0])
	if !ok {
		t.Fatalf("expected switch")
	}
	if len(sw.Arms) != 3 {
		t.Fatalf("expected 3 arms, got %d", len(sw.Arms))
	}
	for i, want := range []int{2, 2, 0} {
		if got := len(sw.Arms[i].Patterns); got != want {
			t.Errorf("arm %d: %d patterns, want %d", i, got, want)
		}
		if len(sw.Arms[i].Body) != 1 {
			t.Errorf("arm %d: body has %d statements, want 1", i, len(sw.Arms[i].Body))
		}
	}
	if !sw.Arms[0].Break || !sw.Arms[1].Break || sw.Arms[2].Break {
		t.Errorf("unexpected break flags")
	}
	if !sw.Arms[2].IsDefault {
		t.Errorf("last arm should be default")
	}
}

func TestSwitchDuplicateDefault(t *testing.T) {
	_, res, _ := parseSource(t, "void f(int v) { switch (v) { default: g(); default: h(); } }")
	if res.Err == nil {
		t.Fatalf("expected error")
	}
}

func TestLabeledLoops(t *testing.T) {
	b, file := mustParse(t, "void f() { .outer: while (true) { for (;;) { break .outer; } continue .outer; } }")
	stmts := bodyOf(t, b, file, 0)
	w, ok := b.Stmts.While(stmts[0])
	if !ok {
		t.Fatalf("expected while")
	}
	if b.Name(w.Label) != "outer" {
		t.Errorf("label = %q", b.Name(w.Label))
	}
	body, _ := b.Stmts.Block(w.Body)
	loop, ok := b.Stmts.For(body.Stmts[0])
	if !ok {
		t.Fatalf("expected for")
	}
	if loop.Init.IsValid() || loop.Cond.IsValid() || loop.Post.IsValid() {
		t.Errorf("empty for header should have no parts")
	}
	cont, ok := b.Stmts.Jump(body.Stmts[1])
	if !ok || b.Stmts.Get(body.Stmts[1]).Kind != ast.StmtContinue || b.Name(cont.Label) != "outer" {
		t.Errorf("expected continue .outer")
	}
}

func TestLabelNeedsLoop(t *testing.T) {
	_, res, _ := parseSource(t, "void f() { .l: x = 1; }")
	if res.Err == nil {
		t.Fatalf("expected error")
	}
}

func TestForLoops(t *testing.T) {
	b, file := mustParse(t, `void f() {
    for (int i = 0; i < 10; i++) { g(i); }
    for (i = 0; i < n; i += 2) {}
    for (x in xs) { g(x); }
    for (int y in ys) {}
}`)
	stmts := bodyOf(t, b, file, 0)
	first, ok := b.Stmts.For(stmts[0])
	if !ok {
		t.Fatalf("expected for")
	}
	if _, ok := b.Stmts.Let(first.Init); !ok {
		t.Errorf("init should be a declaration")
	}
	if post, ok := b.Exprs.Unary(first.Post); !ok || post.Op != ast.ExprUnaryPostInc {
		t.Errorf("post should be i++")
	}
	second, _ := b.Stmts.For(stmts[1])
	if _, ok := b.Stmts.Expr(second.Init); !ok {
		t.Errorf("init should be an expression")
	}
	in, ok := b.Stmts.ForIn(stmts[2])
	if !ok || b.Name(in.Name) != "x" || in.Type.IsValid() {
		t.Errorf("expected for-in over x")
	}
	typed, ok := b.Stmts.ForIn(stmts[3])
	if !ok || b.Types.PrimKindOf(typed.Type) != ast.PrimInt {
		t.Errorf("expected typed for-in")
	}
}

func TestIfElse(t *testing.T) {
	b, file := mustParse(t, "int f(int a) { if (a > 0) { return 1; } else if (a < 0) return -1; else { return 0; } }")
	st, ok := b.Stmts.If(bodyOf(t, b, file, 0)[0])
	if !ok {
		t.Fatalf("expected if")
	}
	if _, ok := b.Stmts.If(st.Else); !ok {
		t.Errorf("else branch should be an if")
	}
}

func TestParseErrorAbortsFile(t *testing.T) {
	b, res, bag := parseSource(t, "int main() { int x = 1 return x; }")
	if res.Err == nil {
		t.Fatalf("expected parse error")
	}
	if res.File != ast.NoFileID {
		t.Errorf("no AST expected on error")
	}
	if bag.Len() != 1 {
		t.Errorf("expected one diagnostic, got %s", diagnosticsSummary(bag))
	}
	if res.Err.Found != "'return'" {
		t.Errorf("found = %q", res.Err.Found)
	}
	if len(res.Err.Expected) == 0 {
		t.Errorf("expected set must not be empty")
	}
	_ = b
}

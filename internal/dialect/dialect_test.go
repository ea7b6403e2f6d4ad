package dialect

import (
	"testing"

	"cinder/internal/ast"
)

func TestParseTarget(t *testing.T) {
	cases := map[string]Target{
		"closure": Closure,
		"Closure": Closure,
		"":        Closure,
		"cstyle":  CStyle,
		"c-style": CStyle,
	}
	for in, want := range cases {
		got, err := ParseTarget(in)
		if err != nil {
			t.Fatalf("ParseTarget(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTarget(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseTarget("wasm"); err == nil {
		t.Fatalf("expected error for unknown target")
	}
}

func TestTargetSetRoundTrip(t *testing.T) {
	var tg Target
	if err := tg.Set("cstyle"); err != nil {
		t.Fatal(err)
	}
	if tg.String() != "cstyle" || tg.Ext() != ".cnd" {
		t.Fatalf("unexpected target %s %s", tg, tg.Ext())
	}
	if Closure.Ext() != ".rs" {
		t.Fatalf("closure ext = %s", Closure.Ext())
	}
}

func TestPrimitiveTable(t *testing.T) {
	cases := []struct {
		kind    ast.PrimKind
		spelled string
		want    string
	}{
		{ast.PrimInt, "int", "i32"},
		{ast.PrimUint, "unsigned", "u32"},
		{ast.PrimUint, "uint", "u32"},
		{ast.PrimLong, "long", "i64"},
		{ast.PrimUlong, "ulong", "u64"},
		{ast.PrimShort, "short", "i16"},
		{ast.PrimChar, "char", "char"},
		{ast.PrimByte, "byte", "u8"},
		{ast.PrimFloat, "float", "f64"},
		{ast.PrimDouble, "double", "f64"},
		{ast.PrimBool, "bool", "bool"},
		{ast.PrimVoid, "void", "()"},
		{ast.PrimString, "string", "String"},
		{ast.PrimSizeT, "size_t", "usize"},
		{ast.PrimI8, "i8", "i8"},
		{ast.PrimU64, "u64", "u64"},
		{ast.PrimF32, "f32", "f32"},
	}
	for _, tc := range cases {
		if got := Closure.Primitive(tc.kind, tc.spelled); got != tc.want {
			t.Errorf("Closure.Primitive(%s) = %s, want %s", tc.spelled, got, tc.want)
		}
		if got := CStyle.Primitive(tc.kind, tc.spelled); got != tc.spelled {
			t.Errorf("CStyle.Primitive(%s) = %s", tc.spelled, got)
		}
	}
}

func TestLiterals(t *testing.T) {
	ints := map[string]string{
		"10":   "10",
		"10u":  "10u32",
		"10UL": "10u64",
		"7l":   "7i64",
		"0xff": "0xff",
		"3f":   "3f32",
	}
	for in, want := range ints {
		if got := Closure.IntLiteral(in); got != want {
			t.Errorf("IntLiteral(%q) = %q, want %q", in, got, want)
		}
	}
	floats := map[string]string{
		"1.5":  "1.5",
		".5":   "0.5",
		"1.":   "1.0",
		"2.5f": "2.5f32",
		"1e3":  "1e3",
	}
	for in, want := range floats {
		if got := Closure.FloatLiteral(in); got != want {
			t.Errorf("FloatLiteral(%q) = %q, want %q", in, got, want)
		}
	}
	if got := CStyle.FloatLiteral(".5"); got != ".5" {
		t.Errorf("CStyle.FloatLiteral changed literal: %q", got)
	}
}

func TestIdentEscaping(t *testing.T) {
	if got := Closure.Ident("match"); got != "r#match" {
		t.Errorf("match -> %s", got)
	}
	if got := Closure.Ident("self"); got != "self_" {
		t.Errorf("self -> %s", got)
	}
	if got := Closure.Ident("count"); got != "count" {
		t.Errorf("count -> %s", got)
	}
	if CStyle.IsReserved("match") {
		t.Errorf("cstyle should not escape identifiers")
	}
}

func TestVisibilityAndLabels(t *testing.T) {
	if Closure.Visibility(ast.VisPublic) != "pub " || Closure.Visibility(ast.VisPrivate) != "" {
		t.Fatalf("closure visibility mismatch")
	}
	if CStyle.Visibility(ast.VisPublic) != "" || CStyle.Visibility(ast.VisPrivate) != "static " {
		t.Fatalf("cstyle visibility mismatch")
	}
	if Closure.Label("outer") != "'outer" || CStyle.Label("outer") != ".outer" {
		t.Fatalf("label sigils mismatch")
	}
}

func TestNeedsParens(t *testing.T) {
	add, _ := Closure.Binary(ast.ExprBinaryAdd)
	mul, _ := Closure.Binary(ast.ExprBinaryMul)
	sub, subAssoc := Closure.Binary(ast.ExprBinarySub)
	if !NeedsParens(add, mul, AssocLeft, false) {
		t.Errorf("(a + b) * c needs parens")
	}
	if NeedsParens(mul, add, AssocLeft, true) {
		t.Errorf("a + b * c needs no parens")
	}
	if !NeedsParens(sub, sub, subAssoc, true) {
		t.Errorf("a - (b - c) keeps its parens")
	}
	if NeedsParens(sub, sub, subAssoc, false) {
		t.Errorf("(a - b) - c drops its parens")
	}
	eq, eqAssoc := Closure.Binary(ast.ExprBinaryEq)
	lt, _ := Closure.Binary(ast.ExprBinaryLess)
	if !NeedsParens(lt, eq, eqAssoc, true) {
		t.Errorf("closure comparisons do not chain")
	}
	ceq, ceqAssoc := CStyle.Binary(ast.ExprBinaryEq)
	clt, _ := CStyle.Binary(ast.ExprBinaryLess)
	if NeedsParens(clt, ceq, ceqAssoc, true) {
		t.Errorf("c-style a == b < c needs no parens")
	}
	asg, asgAssoc := Closure.Binary(ast.ExprBinaryAssign)
	if NeedsParens(asg, asg, asgAssoc, true) || !NeedsParens(asg, asg, asgAssoc, false) {
		t.Errorf("assignment is right-associative")
	}
}

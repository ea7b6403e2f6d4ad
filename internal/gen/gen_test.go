package gen

import (
	"errors"
	"strings"
	"testing"

	"cinder/internal/ast"
	"cinder/internal/dialect"
	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/parser"
	"cinder/internal/sema"
	"cinder/internal/source"
)

func analyze(t *testing.T, input string) (*ast.Builder, ast.FileID, *sema.Result) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cnd", []byte(input))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})
	if parsed.Err != nil {
		t.Fatalf("parse error: %v", parsed.Err)
	}
	res := sema.Check(builder, parsed.File, sema.Options{Reporter: reporter})
	return builder, parsed.File, &res
}

func emit(t *testing.T, input string, target dialect.Target) string {
	t.Helper()
	b, file, res := analyze(t, input)
	if !res.OK() {
		t.Fatalf("semantic errors: %v", res.Errors)
	}
	out, err := Emit(b, file, res, Options{Target: target})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return string(out)
}

func TestEmitGolden(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target dialect.Target
		want   string
	}{
		{
			name:   "nested function becomes closure",
			input:  "void outer() { let x: int = 42; int add_x(int y) { return x + y; } }",
			target: dialect.Closure,
			want: `pub fn outer() {
    let x: i32 = 42;
    let add_x = |y: i32| -> i32 {
        return x + y;
    };
}
`,
		},
		{
			name:   "nested function kept in c-style",
			input:  "void outer() { let x: int = 42; int add_x(int y) { return x + y; } }",
			target: dialect.CStyle,
			want: `void outer() {
    let x: int = 42;
    int add_x(int y) {
        return x + y;
    }
}
`,
		},
		{
			name:   "increment statement",
			input:  "void f() { int n = 0; n++; }",
			target: dialect.Closure,
			want: `pub fn f() {
    let mut n: i32 = 0;
    n += 1;
}
`,
		},
		{
			name:   "mutable capture",
			input:  "void outer() { var n = 0; void inc() { n++; } inc(); }",
			target: dialect.Closure,
			want: `pub fn outer() {
    let mut n = 0;
    let mut inc = || {
        n += 1;
    };
    inc();
}
`,
		},
		{
			name:   "private function and implicit local",
			input:  "static int one() { int v = 1; return v; }",
			target: dialect.CStyle,
			want: `static int one() {
    int v = 1;
    return v;
}
`,
		},
		{
			name:   "for with continue",
			input:  "void f() { for (int i = 0; i < 10; i++) { if (i == 3) { continue; } g(i); } }",
			target: dialect.Closure,
			want: `pub fn f() {
    {
        let mut i: i32 = 0;
        loop {
            if !(i < 10) {
                break;
            }
            'next_1: {
                if i == 3 {
                    break 'next_1;
                }
                g(i);
            }
            i += 1;
        }
    }
}
`,
		},
		{
			name:   "switch without default",
			input:  "void f(int v) { switch (v) { case 1: case 2: g(); break; case 3: h(); break; } }",
			target: dialect.Closure,
			want: `pub fn f(v: i32) {
    match v {
        1 | 2 => {
            g();
        }
        3 => {
            h();
        }
        _ => {}
    }
}
`,
		},
		{
			name:   "early break out of switch",
			input:  "void f(int v) { switch (v) { case 1: if (v > 0) { break; } g(); break; } }",
			target: dialect.Closure,
			want: `pub fn f(v: i32) {
    'switch_1: {
        match v {
            1 => {
                if v > 0 {
                    break 'switch_1;
                }
                g();
            }
            _ => {}
        }
    }
}
`,
		},
		{
			name:   "items separated by blank line",
			input:  "int a() { return 1; }\nint b() { return 2; }",
			target: dialect.CStyle,
			want: `int a() {
    return 1;
}

int b() {
    return 2;
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emit(t, tt.input, tt.target); got != tt.want {
				t.Errorf("output mismatch\n--- got ---\n%s--- want ---\n%s", got, tt.want)
			}
		})
	}
}

func TestEmitExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"void f(int a) { int b = a++; }", "let b: i32 = { let __tmp = a; a += 1; __tmp };"},
		{"void f(int a) { int b = ++a; }", "let b: i32 = { a += 1; a };"},
		{"void f(double d) { int b = (int) d; }", "let b: i32 = (d as i32);"},
		{"void f(int a) { int b = a > 0 ? 1 : 2; }", "let b: i32 = if a > 0 { 1 } else { 2 };"},
		{"void f(Point* p) { int b = p->x; }", "let b: i32 = (*p).x;"},
		{"void f() { int* p = null; }", "let p: *mut i32 = std::ptr::null_mut();"},
	}
	for _, tt := range tests {
		got := emit(t, tt.input, dialect.Closure)
		if !strings.Contains(got, tt.want) {
			t.Errorf("%q:\n%s\nmissing %q", tt.input, got, tt.want)
		}
	}
}

func TestEmitCStyleKeepsSyntax(t *testing.T) {
	got := emit(t, "void f(double d, int a) { int b = (int) d; a++; }", dialect.CStyle)
	for _, want := range []string{"int b = (int) d;", "a++;"} {
		if !strings.Contains(got, want) {
			t.Errorf("output:\n%s\nmissing %q", got, want)
		}
	}
}

func TestEmitIndentation(t *testing.T) {
	b, file, res := analyze(t, "int f() { return 1; }")
	out, err := Emit(b, file, res, Options{Target: dialect.CStyle, UseTabs: true})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if want := "int f() {\n\treturn 1;\n}\n"; string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
	out, err = Emit(b, file, res, Options{Target: dialect.CStyle, IndentWidth: 2})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if want := "int f() {\n  return 1;\n}\n"; string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestEmitErrors(t *testing.T) {
	b, file, res := analyze(t, "int f() { return 1; }")
	if _, err := Emit(b, file, nil, Options{Target: dialect.Closure}); !errors.Is(err, ErrNoAnalysis) {
		t.Errorf("closure without analysis: err = %v", err)
	}
	if _, err := Emit(b, file, nil, Options{Target: dialect.CStyle}); err != nil {
		t.Errorf("c-style without analysis: err = %v", err)
	}
	if _, err := Emit(b, ast.NoFileID, res, Options{}); !errors.Is(err, ErrNoFile) {
		t.Errorf("invalid file: err = %v", err)
	}

	b, file, res = analyze(t, "int f() { return true; }")
	if _, err := Emit(b, file, res, Options{Target: dialect.Closure}); !errors.Is(err, ErrSemanticErrors) {
		t.Errorf("semantic errors: err = %v", err)
	}
}

func TestEmitUnsupportedPattern(t *testing.T) {
	b, file, res := analyze(t, "void f(int v, int a) { switch (v) { case a + 1: g(); break; } }")
	if !res.OK() {
		t.Fatalf("semantic errors: %v", res.Errors)
	}
	_, err := Emit(b, file, res, Options{Target: dialect.Closure})
	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if genErr.Code != diag.GenUnsupported {
		t.Errorf("code = %v", genErr.Code)
	}

	bag := diag.NewBag(4)
	genErr.Report(&diag.BagReporter{Bag: bag})
	if !bag.HasErrors() {
		t.Errorf("Report must add an error diagnostic")
	}

	if _, err := Emit(b, file, res, Options{Target: dialect.CStyle}); err != nil {
		t.Errorf("c-style keeps the case expression: %v", err)
	}
}

func TestWriterBlankLine(t *testing.T) {
	w := NewWriter(4, false, 0)
	w.BlankLine()
	w.Line("a")
	w.BlankLine()
	w.BlankLine()
	w.Line("b")
	if got := string(w.Bytes()); got != "a\n\nb\n" {
		t.Errorf("got %q", got)
	}
}

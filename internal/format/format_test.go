package format

import (
	"errors"
	"strings"
	"testing"

	"cinder/internal/source"
)

func virtualFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cnd", []byte(content))
	return fs.Get(id)
}

func TestFormatFileNormalizesLayout(t *testing.T) {
	b, file, err := parseBytes("a.cnd", []byte("static int  one( ){return 1;}\nvoid f(int v){switch(v){case 1:case 2:g();break;default:h();}}"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := FormatFile(b, file, Options{})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	want := `static int one() {
    return 1;
}

void f(int v) {
    switch (v) {
    case 1, 2:
        g();
        break;
    default:
        h();
    }
}
`
	if string(out) != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestCheckRoundTrip(t *testing.T) {
	inputs := []string{
		"int main() { let int x = 42; return x; }",
		"void outer() { let x: int = 42; int add_x(int y) { return x + y; } }",
		"struct Point { int x; int y; };\nstatic const int N = 3;\nint f(Point* p) { return p->x * (N + 1); }",
		"void f() { .outer: while (true) { for (int i = 0; i < 3; i++) { break .outer; } } }",
		"#define __SQ__(a) a * a\nint f(int v) { return __SQ__(v); }",
		"void f(double d) { int b = (int) d; int* p = null; }",
	}
	for _, in := range inputs {
		rt, err := CheckRoundTrip(virtualFile(in), Options{})
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if !rt.Changed {
			t.Errorf("%q: single-line input should be reformatted", in)
		}
	}
}

func TestCheckRoundTripUnchanged(t *testing.T) {
	in := "int f() {\n    return 1;\n}\n"
	rt, err := CheckRoundTrip(virtualFile(in), Options{})
	if err != nil {
		t.Fatalf("round-trip: %v", err)
	}
	if rt.Changed {
		t.Errorf("formatted input must be left unchanged, got %q", rt.Formatted)
	}
}

func TestCheckRoundTripParseError(t *testing.T) {
	_, err := CheckRoundTrip(virtualFile("int f( { }"), Options{})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestFormatFileTabs(t *testing.T) {
	b, file, err := parseBytes("a.cnd", []byte("int f() { return 1; }"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := FormatFile(b, file, Options{UseTabs: true})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(string(out), "\n\treturn 1;\n") {
		t.Errorf("expected tab indentation, got %q", out)
	}
}

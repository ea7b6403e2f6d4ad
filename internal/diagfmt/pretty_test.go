package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"cinder/internal/diag"
	"cinder/internal/source"
)

func singleDiagnostic(t *testing.T, path, content string, start, end uint32) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase("/home/user/project")
	id := fs.AddVirtual(path, []byte(content))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemUndefinedVariable, source.Span{File: id, Start: start, End: end}, "undefined variable `y`"))
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := singleDiagnostic(t, "/home/user/project/src/test.cnd", "int f() { return y; }\n", 17, 18)

	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.cnd:1:18:"},
		{"relative", PathModeRelative, "src/test.cnd:1:18:"},
		{"basename", PathModeBasename, "test.cnd:1:18:"},
		{"auto", PathModeAuto, "src/test.cnd:1:18:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.HasPrefix(out, tt.want) {
				t.Errorf("expected prefix %q, got:\n%s", tt.want, out)
			}
			for _, want := range []string{"ERROR", "SEM3001", "undefined variable `y`"} {
				if !strings.Contains(out, want) {
					t.Errorf("missing %q in:\n%s", want, out)
				}
			}
		})
	}
}

func TestPrettyCaret(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start, end uint32
		wantLine   string
		pad        int
		marker     string
	}{
		{
			name:     "ascii",
			content:  "int f() {\n    return y;\n}\n",
			start:    21,
			end:      22,
			wantLine: "2 |     return y;",
			pad:      11,
			marker:   "^",
		},
		{
			name:     "wide runes",
			content:  "s = \"日本\" + yy\n",
			start:    15,
			end:      17,
			wantLine: "1 | s = \"日本\" + yy",
			pad:      13,
			marker:   "^~",
		},
		{
			name:     "tab",
			content:  "\ty\n",
			start:    1,
			end:      2,
			wantLine: "1 |     y",
			pad:      4,
			marker:   "^",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, fs := singleDiagnostic(t, "a.cnd", tt.content, tt.start, tt.end)
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{})
			lines := strings.Split(buf.String(), "\n")
			if len(lines) < 3 {
				t.Fatalf("short output:\n%s", buf.String())
			}
			if lines[1] != tt.wantLine {
				t.Errorf("line = %q, want %q", lines[1], tt.wantLine)
			}
			wantCaret := " | " + strings.Repeat(" ", tt.pad) + tt.marker
			if lines[2] != wantCaret {
				t.Errorf("caret = %q, want %q", lines[2], wantCaret)
			}
		})
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cnd", []byte("int x = 1;\nint x = 2;\nint z = 3;\n"))
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SemDuplicateDefinition, source.Span{File: id, Start: 15, End: 16}, "`x` redeclared").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "first declared here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	out := buf.String()
	for _, want := range []string{"1 | int x = 1;", "2 | int x = 2;", "3 | int z = 3;", "note: a.cnd:1:5: first declared here"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") || strings.Contains(buf.String(), "int z") {
		t.Errorf("notes and context should be off by default:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := singleDiagnostic(t, "a.cnd", "y\n", 0, 1)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes:\n%q", buf.String())
	}
	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected ANSI escapes:\n%q", buf.String())
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "cannot read a.cnd"))
	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if got := buf.String(); got != "ERROR IO5001: cannot read a.cnd\n" {
		t.Errorf("got %q", got)
	}
}

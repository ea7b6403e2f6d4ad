package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cinder/internal/buildpipeline"
	"cinder/internal/diag"
	"cinder/internal/dialect"
	"cinder/internal/project"
	"cinder/internal/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCompileSource(t *testing.T) {
	res, err := CompileSource(context.Background(), "a.cnd", []byte("int f() { return 1; }"), Options{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected success, diagnostics: %v", res.Bag.Items())
	}
	if !strings.Contains(string(res.Output), "fn f()") {
		t.Errorf("unexpected output:\n%s", res.Output)
	}
	if len(res.Timer.Phases()) != 3 {
		t.Errorf("phases = %d, want parse/check/emit", len(res.Timer.Phases()))
	}
}

func TestCompileForwardMacroReference(t *testing.T) {
	src := []byte("void f() { __M__[1]; }\n#define __M__(a) a\n")
	for _, target := range []dialect.Target{dialect.Closure, dialect.CStyle} {
		res, err := CompileSource(context.Background(), "a.cnd", src, Options{Target: target})
		if err != nil {
			t.Fatalf("%s: compile: %v", target, err)
		}
		if !res.OK() {
			t.Errorf("%s: forward macro reference must compile, diagnostics: %v", target, res.Bag.Items())
		}
	}
}

func TestFinishBagOrdersAndDedups(t *testing.T) {
	bag := diag.NewBag(10)
	late := diag.NewError(diag.SemTypeMismatch, source.Span{Start: 8, End: 9}, "late")
	early := diag.NewError(diag.LexUnknownChar, source.Span{Start: 2, End: 3}, "early")
	bag.Add(late)
	bag.Add(early)
	bag.Add(early)
	finishBag(bag)
	items := bag.Items()
	if len(items) != 2 || items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("items = %+v", items)
	}
}

func TestCompileSourceErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "int f( {"},
		{"semantic", "int f() { return true; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CompileSource(context.Background(), "a.cnd", []byte(tt.input), Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.OK() || res.Output != nil {
				t.Errorf("expected failure, got output:\n%s", res.Output)
			}
			if !res.Bag.HasErrors() {
				t.Errorf("expected diagnostics")
			}
		})
	}
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CompileSource(ctx, "a.cnd", []byte("int f() { return 1; }"), Options{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestCompileMissingFile(t *testing.T) {
	if _, err := Compile(context.Background(), filepath.Join(t.TempDir(), "nope.cnd"), Options{}); err == nil {
		t.Fatal("expected load error")
	}
}

func TestTokenizeAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cnd")
	writeFile(t, path, "void f() { int n = 0; n++; }")

	tr, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Tokens) < 2 || tr.Bag.HasErrors() {
		t.Errorf("tokens = %d, errors = %v", len(tr.Tokens), tr.Bag.HasErrors())
	}

	cr, err := Check(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !cr.OK() {
		t.Errorf("check failed: %v", cr.Bag.Items())
	}
}

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.cnd"), "")
	writeFile(t, filepath.Join(dir, "sub", "a.cnd"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "b.cnd"), filepath.Join(dir, "sub", "a.cnd")}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []buildpipeline.Event
}

func (s *recordingSink) OnEvent(evt buildpipeline.Event) {
	s.mu.Lock()
	s.events = append(s.events, evt)
	s.mu.Unlock()
}

func TestBuildDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "gen")
	writeFile(t, filepath.Join(dir, "ok.cnd"), "int one() { return 1; }")
	writeFile(t, filepath.Join(dir, "nested", "two.cnd"), "int two() { return 2; }")
	writeFile(t, filepath.Join(dir, "bad.cnd"), "int f() { return true; }")

	sink := &recordingSink{}
	res, err := BuildDir(context.Background(), BuildRequest{Dir: dir, Out: out, Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("files = %d", len(res.Files))
	}
	if res.Files[0].Path != "bad.cnd" || res.Files[1].Path != "nested/two.cnd" || res.Files[2].Path != "ok.cnd" {
		t.Errorf("unexpected order: %s %s %s", res.Files[0].Path, res.Files[1].Path, res.Files[2].Path)
	}
	if res.Failed() != 1 || !res.Files[0].Failed() {
		t.Errorf("failed = %d", res.Failed())
	}
	if _, err := os.Stat(filepath.Join(out, "nested", "two.rs")); err != nil {
		t.Errorf("missing output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "bad.rs")); !os.IsNotExist(err) {
		t.Errorf("failed file must not be written: %v", err)
	}

	terminal := 0
	for _, evt := range sink.events {
		if evt.Stage == buildpipeline.StageWrite && evt.Status == buildpipeline.StatusDone {
			terminal++
		}
	}
	if terminal != 2 {
		t.Errorf("write done events = %d, want 2", terminal)
	}
}

func TestBuildDirCache(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cnd"), "int one() { return 1; }")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	req := BuildRequest{Dir: dir, Out: out, Cache: cache}

	first, err := BuildDir(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached {
		t.Error("first build must not hit the cache")
	}
	want, err := os.ReadFile(filepath.Join(out, "a.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(out, "a.rs")); err != nil {
		t.Fatal(err)
	}

	second, err := BuildDir(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Files[0].Cached {
		t.Error("second build should hit the cache")
	}
	got, err := os.ReadFile(filepath.Join(out, "a.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("cached output differs:\n%s\nvs\n%s", got, want)
	}

	req.Options.Target = dialect.CStyle
	third, err := BuildDir(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Error("target change must miss the cache")
	}
}

func TestBuildDirOutputIsInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cnd"), "int one() { return 1; }")
	res, err := BuildDir(context.Background(), BuildRequest{Dir: dir, Out: dir, Options: Options{Target: dialect.CStyle}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].Err == nil {
		t.Error("expected output-is-input error")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey(project.Digest{1, 2, 3}, Options{})
	var got DiskPayload
	if hit, err := cache.Get(key, &got); err != nil || hit {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}
	if err := cache.Put(key, &DiskPayload{Source: "a.cnd", Target: "closure", Output: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	if hit, err := cache.Get(key, &got); err != nil || !hit || string(got.Output) != "x" {
		t.Fatalf("hit=%v err=%v payload=%+v", hit, err, got)
	}
	if CacheKey(project.Digest{1, 2, 3}, Options{UseTabs: true}) == key {
		t.Error("tabs must change the key")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Get(key, &got); hit {
		t.Error("DropAll left the entry behind")
	}
}

func TestFormatPaths(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "messy.cnd")
	writeFile(t, messy, "int f(){return 1;}")

	res, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || !res[0].Changed || res[0].Err != nil {
		t.Fatalf("check results = %+v", res)
	}
	if data, _ := os.ReadFile(messy); string(data) != "int f(){return 1;}" {
		t.Error("--check must not rewrite files")
	}

	if _, err := FormatPaths(context.Background(), []string{messy}, FormatOptions{}); err != nil {
		t.Fatal(err)
	}
	res, err = FormatPaths(context.Background(), []string{messy}, FormatOptions{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if res[0].Changed {
		t.Errorf("file still unformatted:\n%s", res[0].Formatted)
	}
}

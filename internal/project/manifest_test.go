package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinder/internal/dialect"
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

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[build]
source = "lib"
target = "cstyle"
indent = 2
cache = false
`)
	nested := filepath.Join(root, "lib", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
	if m.SourceDir() != filepath.Join(root, "lib") {
		t.Errorf("source dir = %s", m.SourceDir())
	}
	if m.OutDir() != filepath.Join(root, "target", "gen") {
		t.Errorf("out dir = %s", m.OutDir())
	}
	if m.Target() != dialect.CStyle || m.Config.Build.Indent != 2 {
		t.Errorf("target=%s indent=%d", m.Target(), m.Config.Build.Indent)
	}
	if m.CacheEnabled() {
		t.Errorf("cache = false must disable the cache")
	}

	rootDir, ok, err := FindProjectRoot(filepath.Join(nested, "x.cnd"))
	if err != nil || !ok || rootDir != root {
		t.Errorf("FindProjectRoot = %q ok=%v err=%v", rootDir, ok, err)
	}
}

func TestLoadMissing(t *testing.T) {
	// a temp dir normally has no cinder.toml above it
	dir := t.TempDir()
	if _, ok, err := FindManifest(dir); err != nil {
		t.Fatalf("FindManifest: %v", err)
	} else if ok {
		t.Skip("a cinder.toml exists above the temp dir")
	}
	m, ok, err := Load(dir)
	if m != nil || ok || err != nil {
		t.Errorf("Load = %v, %v, %v", m, ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad toml", "[package\nname = 1", "failed to parse TOML"},
		{"no name", "[package]\n", "missing [package].name"},
		{"bad target", "[package]\nname = \"x\"\n[build]\ntarget = \"cobol\"\n", "[build].target"},
		{"negative jobs", "[package]\nname = \"x\"\n[build]\njobs = -1\n", "must not be negative"},
		{"unknown key", "[package]\nname = \"x\"\nversion = \"1\"\n", "unknown key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	m := &Manifest{Root: "/p", Config: Config{Package: PackageConfig{Name: "x"}}}
	if m.SourceDir() != filepath.Join("/p", "src") || !m.CacheEnabled() || m.Target() != dialect.Closure {
		t.Errorf("defaults: src=%s cache=%v target=%s", m.SourceDir(), m.CacheEnabled(), m.Target())
	}
}

func TestCombine(t *testing.T) {
	var content Digest
	content[0] = 1
	a := Combine(content, []byte("ab"), []byte("c"))
	b := Combine(content, []byte("a"), []byte("bc"))
	if a == b {
		t.Errorf("part boundaries must change the digest")
	}
	if a != Combine(content, []byte("ab"), []byte("c")) {
		t.Errorf("Combine must be deterministic")
	}
	if a.IsZero() || len(a.String()) != 64 {
		t.Errorf("digest %s", a)
	}
}

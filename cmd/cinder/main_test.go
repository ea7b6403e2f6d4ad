package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinder/internal/dialect"
	"cinder/internal/driver"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in   string
		want uiMode
		ok   bool
	}{
		{"", uiModeAuto, true},
		{"auto", uiModeAuto, true},
		{" ON ", uiModeOn, true},
		{"off", uiModeOff, true},
		{"sometimes", "", false},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit ui modes must win over terminal detection")
	}
}

func TestUseColor(t *testing.T) {
	if on, err := useColor("on", os.Stderr); err != nil || !on {
		t.Errorf("on: %v %v", on, err)
	}
	if on, err := useColor("off", os.Stderr); err != nil || on {
		t.Errorf("off: %v %v", on, err)
	}
	if _, err := useColor("rainbow", os.Stderr); err == nil {
		t.Error("expected error for unknown color mode")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveBuildSettingsFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cinder.toml"), `[package]
name = "demo"

[build]
source = "code"
out = "gen"
target = "cstyle"
indent = 2
jobs = 3
cache = false
`)
	s, err := resolveBuildSettings(buildCmd, []string{dir}, 10)
	if err != nil {
		t.Fatalf("resolveBuildSettings: %v", err)
	}
	if s.dir != filepath.Join(dir, "code") || s.out != filepath.Join(dir, "gen") {
		t.Errorf("dirs = %q -> %q", s.dir, s.out)
	}
	if s.options.Target != dialect.CStyle || s.options.IndentWidth != 2 || s.jobs != 3 {
		t.Errorf("settings = %+v", s)
	}
	if s.cache {
		t.Error("cache = false in the manifest must disable the cache")
	}
	if s.options.MaxDiagnostics != 10 {
		t.Errorf("max diagnostics = %d", s.options.MaxDiagnostics)
	}
}

func TestResolveBuildSettingsDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := resolveBuildSettings(buildCmd, []string{dir}, 0)
	if err != nil {
		t.Fatalf("resolveBuildSettings: %v", err)
	}
	if s.dir != dir || s.out != defaultBuildOut || s.options.Target != dialect.Closure || !s.cache {
		t.Errorf("settings = %+v", s)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--color=off", "--quiet"}, args...))
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEmitCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.cnd")
	writeFile(t, src, "int twice(int a) { return a * 2; }\n")
	dst := filepath.Join(dir, "out", "main.rs")

	if _, err := execute(t, "emit", src, "-o", dst); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "pub fn twice(a: i32) -> i32 {") {
		t.Errorf("output:\n%s", got)
	}

	if _, err := execute(t, "emit", src, "-o", src); !errors.Is(err, driver.ErrOutputIsInput) {
		t.Errorf("emit onto its input: err = %v", err)
	}
}

func TestCheckCommandReportsErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.cnd")
	writeFile(t, src, "int f() { return missing; }\n")
	if _, err := execute(t, "check", src); !errors.Is(err, errReported) {
		t.Errorf("check: err = %v, want errReported", err)
	}
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "a.cnd"), "void a() { }\n")
	writeFile(t, filepath.Join(dir, "src", "sub", "b.cnd"), "int b() { return 1; }\n")
	out := filepath.Join(dir, "gen")

	if _, err := execute(t, "build", filepath.Join(dir, "src"), "--ui=off", "--no-cache", "--out", out); err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, name := range []string{"a.rs", filepath.Join("sub", "b.rs")} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

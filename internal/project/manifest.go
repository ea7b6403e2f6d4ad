package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cinder/internal/dialect"
)

// Manifest is a loaded cinder.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig mirrors the flags of `cinder build`; flags win over it.
type BuildConfig struct {
	Source string `toml:"source"`
	Out    string `toml:"out"`
	Target string `toml:"target"`
	Indent int    `toml:"indent"`
	Tabs   bool   `toml:"tabs"`
	Jobs   int    `toml:"jobs"`
	Cache  *bool  `toml:"cache"`
}

const (
	defaultSource = "src"
	defaultOut    = "target/gen"
)

// Load finds cinder.toml above startDir and decodes it. ok is false when
// there is no manifest.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Build.Target != "" {
		if _, err := dialect.ParseTarget(cfg.Build.Target); err != nil {
			return Config{}, fmt.Errorf("%s: [build].target: %w", path, err)
		}
	}
	if cfg.Build.Indent < 0 || cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build].indent and [build].jobs must not be negative", path)
	}
	return cfg, nil
}

// SourceDir is the absolute input directory.
func (m *Manifest) SourceDir() string {
	return m.resolve(m.Config.Build.Source, defaultSource)
}

// OutDir is the absolute output directory.
func (m *Manifest) OutDir() string {
	return m.resolve(m.Config.Build.Out, defaultOut)
}

// Target returns the configured dialect, Closure when unset.
func (m *Manifest) Target() dialect.Target {
	t, err := dialect.ParseTarget(m.Config.Build.Target)
	if err != nil {
		return dialect.Closure
	}
	return t
}

// CacheEnabled defaults to true.
func (m *Manifest) CacheEnabled() bool {
	return m.Config.Build.Cache == nil || *m.Config.Build.Cache
}

func (m *Manifest) resolve(p, def string) string {
	if strings.TrimSpace(p) == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

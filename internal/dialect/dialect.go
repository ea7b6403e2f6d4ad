package dialect

import (
	"fmt"
	"strings"
)

// Target selects the output dialect of the generator.
type Target uint8

const (
	// Closure is the expression-oriented dialect: let/let mut, closures,
	// match, `as` casts and `name!` macros.
	Closure Target = iota
	// CStyle re-emits the input surface syntax.
	CStyle
)

func (t Target) String() string {
	switch t {
	case Closure:
		return "closure"
	case CStyle:
		return "cstyle"
	}
	return fmt.Sprintf("Target(%d)", uint8(t))
}

// Ext is the file extension of generated sources, dot included.
func (t Target) Ext() string {
	if t == CStyle {
		return ".cnd"
	}
	return ".rs"
}

// ParseTarget accepts the manifest and flag spellings of a target.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "closure", "rs", "rust":
		return Closure, nil
	case "cstyle", "c-style", "c", "cnd":
		return CStyle, nil
	}
	return Closure, fmt.Errorf("unknown target %q (want closure or cstyle)", s)
}

// Set implements pflag.Value so a Target can be bound to a flag directly.
func (t *Target) Set(s string) error {
	v, err := ParseTarget(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Type implements pflag.Value.
func (t *Target) Type() string { return "target" }

// LabelSigil is the prefix written before loop labels.
func (t Target) LabelSigil() string {
	if t == CStyle {
		return "."
	}
	return "'"
}

// Label renders a label reference, e.g. 'outer or .outer.
func (t Target) Label(name string) string {
	return t.LabelSigil() + name
}

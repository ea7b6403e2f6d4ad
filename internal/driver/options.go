package driver

import (
	"cinder/internal/dialect"
)

// DefaultMaxDiagnostics caps a file's bag when Options leave it unset.
const DefaultMaxDiagnostics = 256

// SourceExt is the extension of cinder source files.
const SourceExt = ".cnd"

// Options configure one file's pipeline.
type Options struct {
	Target         dialect.Target
	IndentWidth    int // 4 when zero
	UseTabs        bool
	MaxDiagnostics int
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) indent() int {
	if o.IndentWidth <= 0 {
		return 4
	}
	return o.IndentWidth
}

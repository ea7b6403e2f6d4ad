package format

import (
	"errors"

	"cinder/internal/ast"
	"cinder/internal/dialect"
	"cinder/internal/gen"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

// FormatFile renders fid back to C-style source. Comments are not kept.
func FormatFile(b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !fid.IsValid() || b.Files.Get(fid) == nil {
		return nil, errors.New("format: missing ast file")
	}
	opt = opt.withDefaults()
	return gen.Emit(b, fid, nil, gen.Options{
		Target:      dialect.CStyle,
		IndentWidth: opt.IndentWidth,
		UseTabs:     opt.UseTabs,
	})
}

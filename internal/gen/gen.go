package gen

import (
	"fmt"

	"cinder/internal/ast"
	"cinder/internal/dialect"
	"cinder/internal/diag"
	"cinder/internal/sema"
	"cinder/internal/source"
)

// Options configure one emission.
type Options struct {
	Target      dialect.Target
	IndentWidth int // 4 when zero
	UseTabs     bool
}

type generator struct {
	b      *ast.Builder
	sem    *sema.Result
	target dialect.Target
	w      *Writer
	err    *Error

	// fnItem is the top-level function being emitted; parameter keys hang off it.
	fnItem ast.ItemID
	jumps  *jumpPlan
	// macros seen so far, by name; used to mark invocations inside macro bodies.
	macros map[string]ast.MacroDelim
}

// Emit renders file in the selected target dialect. The closure target needs
// the capture analysis result to pick let/let mut; the C-style target accepts
// a nil result.
func Emit(builder *ast.Builder, file ast.FileID, sem *sema.Result, opts Options) ([]byte, error) {
	if builder == nil || !file.IsValid() || builder.Files.Get(file) == nil {
		return nil, ErrNoFile
	}
	if sem != nil && !sem.OK() {
		return nil, fmt.Errorf("%w: %d error(s)", ErrSemanticErrors, len(sem.Errors))
	}
	if sem == nil && opts.Target == dialect.Closure {
		return nil, ErrNoAnalysis
	}
	f := builder.Files.Get(file)
	g := &generator{
		b:      builder,
		sem:    sem,
		target: opts.Target,
		w:      NewWriter(opts.IndentWidth, opts.UseTabs, int(f.Span.End-f.Span.Start)+64),
		macros: make(map[string]ast.MacroDelim),
	}
	g.jumps = planJumps(builder, f.Items)
	for _, id := range f.Items {
		g.w.BlankLine()
		g.item(id)
		if g.err != nil {
			return nil, g.err
		}
	}
	return g.w.Bytes(), nil
}

// fail records the first unsupported construct; later calls are ignored.
func (g *generator) fail(sp source.Span, format string, args ...any) {
	if g.err != nil {
		return
	}
	g.err = &Error{Code: diag.GenUnsupported, Span: sp, Message: fmt.Sprintf(format, args...)}
}

func (g *generator) closure() bool { return g.target == dialect.Closure }

func (g *generator) name(id source.StringID) string {
	return g.target.Ident(g.b.Name(id))
}

func (g *generator) label(id source.StringID) string {
	return g.target.Label(g.b.Name(id))
}

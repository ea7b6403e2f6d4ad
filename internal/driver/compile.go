package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cinder/internal/buildpipeline"
	"cinder/internal/diag"
	"cinder/internal/gen"
	"cinder/internal/observ"
	"cinder/internal/source"
	"cinder/internal/trace"
)

// CompileResult is one file taken through parse, check and emit. Output is
// nil whenever Bag holds an error: any lex, parse or semantic error stops
// generation for the file.
type CompileResult struct {
	*CheckResult
	Output []byte
	Timer  *observ.Timer
}

func (r *CompileResult) OK() bool {
	return r.Output != nil && !r.Bag.HasErrors()
}

// stageFunc receives per-stage progress; nil is allowed.
type stageFunc func(stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration)

func (f stageFunc) report(stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration) {
	if f != nil {
		f(stage, status, err, elapsed)
	}
}

// Compile loads path and runs the whole pipeline. The returned error is
// for I/O and cancellation; diagnostics live in the result's Bag.
func Compile(ctx context.Context, path string, opts Options) (*CompileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return compileFile(ctx, fs, id, opts, nil)
}

// CompileSource runs the pipeline on in-memory content registered as name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) (*CompileResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return compileFile(ctx, fs, id, opts, nil)
}

func compileFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options, progress stageFunc) (*CompileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(id)
	ctx, fileSpan := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.maxDiagnostics())
	defer finishBag(bag)
	res := &CompileResult{Timer: timer}

	var pr *ParseResult
	runPass(ctx, timer, progress, buildpipeline.StageParse, func() error {
		pr = parseLoaded(fs, id, bag)
		if pr.Err != nil {
			return pr.Err
		}
		if bag.HasErrors() {
			return errors.New("lexical errors")
		}
		traceItems(ctx, pr)
		return nil
	})
	res.CheckResult = &CheckResult{ParseResult: pr}
	if !pr.OK() {
		fileSpan.End("parse failed")
		return res, nil
	}

	runPass(ctx, timer, progress, buildpipeline.StageCheck, func() error {
		res.CheckResult = checkParsed(pr)
		if !res.Sema.OK() {
			return fmt.Errorf("%d semantic error(s)", len(res.Sema.Errors))
		}
		return nil
	})
	if !res.CheckResult.OK() {
		fileSpan.End("check failed")
		return res, nil
	}

	var fatal error
	runPass(ctx, timer, progress, buildpipeline.StageEmit, func() error {
		out, err := gen.Emit(pr.Builder, pr.FileID, res.Sema, gen.Options{
			Target:      opts.Target,
			IndentWidth: opts.indent(),
			UseTabs:     opts.UseTabs,
		})
		var genErr *gen.Error
		switch {
		case errors.As(err, &genErr):
			genErr.Report(&diag.BagReporter{Bag: bag})
			return err
		case err != nil:
			fatal = err
			return err
		}
		res.Output = out
		return nil
	})
	if fatal != nil {
		fileSpan.End("emit failed")
		return res, fmt.Errorf("emit %s: %w", file.Path, fatal)
	}
	fileSpan.WithExtra("bytes", strconv.Itoa(len(res.Output))).End("")
	return res, nil
}

// runPass times fn as one phase and mirrors it into trace and progress.
func runPass(ctx context.Context, timer *observ.Timer, progress stageFunc, stage buildpipeline.Stage, fn func() error) {
	progress.report(stage, buildpipeline.StatusWorking, nil, 0)
	_, span := trace.Start(ctx, trace.ScopePass, string(stage))
	idx := timer.Begin(string(stage))
	start := time.Now()

	err := fn()

	elapsed := time.Since(start)
	note := ""
	status := buildpipeline.StatusDone
	if err != nil {
		note = err.Error()
		status = buildpipeline.StatusError
	}
	timer.End(idx, note)
	span.End(note)
	progress.report(stage, status, err, elapsed)
}

// traceItems emits one debug point per top-level item.
func traceItems(ctx context.Context, pr *ParseResult) {
	t := trace.FromContext(ctx)
	if !t.Level().ShouldEmit(trace.ScopeItem) {
		return
	}
	parent := trace.CurrentSpan(ctx)
	for _, id := range pr.Builder.Files.Get(pr.FileID).Items {
		it := pr.Builder.Items.Get(id)
		trace.Point(t, trace.ScopeItem, it.Kind.String()+" "+pr.Builder.Name(it.Name), "", parent)
	}
}

package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cinder/internal/buildpipeline"
	"cinder/internal/diag"
	"cinder/internal/observ"
	"cinder/internal/project"
	"cinder/internal/source"
	"cinder/internal/trace"
)

// ErrOutputIsInput guards against a c-style build overwriting its sources.
var ErrOutputIsInput = errors.New("output path is the input file")

// BuildRequest describes a directory build.
type BuildRequest struct {
	Dir      string
	Out      string // "" checks and generates without writing anything
	Options  Options
	Jobs     int         // GOMAXPROCS when zero
	Cache    *DiskCache  // optional
	Progress buildpipeline.ProgressSink
}

// FileResult is the outcome for one source file of a build.
type FileResult struct {
	Path    string // relative to BuildRequest.Dir, slash separated
	OutPath string
	FileSet *source.FileSet
	Bag     *diag.Bag
	Cached  bool
	Err     error // I/O problems; compile problems are in Bag
}

// Failed reports a file that produced no output.
func (r *FileResult) Failed() bool {
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}

type BuildResult struct {
	Files   []FileResult // sorted by Path
	Timer   *observ.Timer
	Timings *buildpipeline.Timings // stage durations summed over files
}

// Failed counts files without output.
func (r *BuildResult) Failed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Failed() {
			n++
		}
	}
	return n
}

// ListSourceFiles возвращает отсортированный список всех *.cnd файлов в директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// BuildDir compiles every source file under req.Dir. Files are independent
// pipelines: each gets its own FileSet, bag and AST, so workers share
// nothing but the cache and the progress sink.
func BuildDir(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	files, err := ListSourceFiles(req.Dir)
	if err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "build "+req.Dir)
	res := &BuildResult{
		Files:   make([]FileResult, len(files)),
		Timer:   observ.NewTimer(),
		Timings: &buildpipeline.Timings{},
	}

	rels := make([]string, len(files))
	for i, path := range files {
		rels[i] = relPath(req.Dir, path)
	}
	buildpipeline.EmitQueued(req.Progress, rels)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индексы уникальны для каждой горутины, мьютекс не нужен
			res.Files[i] = buildOne(gctx, req, path, rels[i], res)
			return nil
		})
	}
	err = g.Wait()

	failed := res.Failed()
	span.WithExtra("files", strconv.Itoa(len(files))).
		WithExtra("failed", strconv.Itoa(failed)).
		End("")
	return res, err
}

func buildOne(ctx context.Context, req BuildRequest, path, rel string, res *BuildResult) FileResult {
	out := FileResult{Path: rel}
	progress := stageFunc(func(stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration) {
		if status == buildpipeline.StatusDone {
			res.Timer.Add(string(stage), elapsed)
			res.Timings.Add(stage, elapsed)
		}
		buildpipeline.Emit(req.Progress, buildpipeline.Event{File: rel, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	})
	fail := func(stage buildpipeline.Stage, err error) FileResult {
		out.Err = err
		progress.report(stage, buildpipeline.StatusError, err, 0)
		return out
	}

	progress.report(buildpipeline.StageLoad, buildpipeline.StatusWorking, nil, 0)
	start := time.Now()
	fileSet := source.NewFileSetWithBase(req.Dir)
	id, err := fileSet.Load(path)
	if err != nil {
		return fail(buildpipeline.StageLoad, err)
	}
	out.FileSet = fileSet
	progress.report(buildpipeline.StageLoad, buildpipeline.StatusDone, nil, time.Since(start))

	if req.Out != "" {
		out.OutPath = outputPath(req.Out, rel, req.Options)
		if same, err := samePath(out.OutPath, path); err != nil || same {
			if err == nil {
				err = fmt.Errorf("%w: %s", ErrOutputIsInput, path)
			}
			return fail(buildpipeline.StageWrite, err)
		}
	}

	key := CacheKey(project.Digest(fileSet.Get(id).Hash), req.Options)
	var payload DiskPayload
	if hit, err := req.Cache.Get(key, &payload); err == nil && hit {
		out.Cached = true
		out.Bag = diag.NewBag(req.Options.maxDiagnostics())
		if err := writeOutput(out.OutPath, payload.Output); err != nil {
			return fail(buildpipeline.StageWrite, err)
		}
		buildpipeline.Emit(req.Progress, buildpipeline.Event{File: rel, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusCached})
		return out
	}

	cr, err := compileFile(ctx, fileSet, id, req.Options, progress)
	if err != nil {
		return fail(buildpipeline.StageEmit, err)
	}
	out.Bag = cr.Bag
	if !cr.OK() {
		return out
	}
	// a failed cache write only costs a recompile next time
	_ = req.Cache.Put(key, &DiskPayload{Source: rel, Target: req.Options.Target.String(), Output: cr.Output})

	progress.report(buildpipeline.StageWrite, buildpipeline.StatusWorking, nil, 0)
	start = time.Now()
	if err := writeOutput(out.OutPath, cr.Output); err != nil {
		return fail(buildpipeline.StageWrite, err)
	}
	progress.report(buildpipeline.StageWrite, buildpipeline.StatusDone, nil, time.Since(start))
	return out
}

func relPath(base, path string) string {
	if rel, err := source.RelativePath(path, base); err == nil {
		return rel
	}
	return filepath.ToSlash(path)
}

// outputPath mirrors rel under out with the target's extension.
func outputPath(out, rel string, opts Options) string {
	name := strings.TrimSuffix(filepath.FromSlash(rel), SourceExt) + opts.Target.Ext()
	return filepath.Join(out, name)
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

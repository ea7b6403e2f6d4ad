package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"cinder/internal/format"
	"cinder/internal/source"
)

// FormatOptions controls FormatPaths.
type FormatOptions struct {
	Check   bool // report only, never rewrite files
	Stdout  bool // keep results in memory instead of writing files
	Jobs    int
	Options format.Options
}

// FormatResult is the outcome for one file.
type FormatResult struct {
	Path      string
	Changed   bool
	Formatted []byte
	Err       error
}

// FormatPaths formats each file, expanding directories to their *.cnd files.
// Results keep the sorted path order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := collectSourceFiles(paths)
	if err != nil {
		return nil, err
	}
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(path, opts)
			return nil
		})
	}
	return results, g.Wait()
}

func formatOne(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	rt, err := format.CheckRoundTrip(fs.Get(id), opts.Options)
	if err != nil {
		res.Err = err
		return res
	}
	res.Changed = rt.Changed
	res.Formatted = rt.Formatted
	if opts.Check || opts.Stdout || !rt.Changed {
		return res
	}
	info, err := os.Stat(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Err = os.WriteFile(path, rt.Formatted, info.Mode().Perm())
	return res
}

func collectSourceFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		var found []string
		if info.IsDir() {
			if found, err = ListSourceFiles(p); err != nil {
				return nil, err
			}
		} else {
			found = []string{p}
		}
		for _, f := range found {
			f = filepath.Clean(f)
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files, nil
}

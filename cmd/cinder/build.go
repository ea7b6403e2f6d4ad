package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cinder/internal/dialect"
	"cinder/internal/driver"
	"cinder/internal/project"
	"cinder/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Translate every .cnd file of a directory or project",
	Long: `Build compiles all .cnd files under the source directory in parallel and
mirrors them into the output directory. Settings come from cinder.toml when
one is found above dir; flags override it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

const defaultBuildOut = "target/gen"

var buildTarget = dialect.Closure

func init() {
	f := buildCmd.Flags()
	f.StringP("out", "o", defaultBuildOut, "output directory")
	f.Var(&buildTarget, "target", "output dialect (closure|cstyle)")
	f.Int("indent", 4, "spaces per indentation level")
	f.Bool("tabs", false, "indent with tabs")
	f.Int("jobs", 0, "parallel files (0 = GOMAXPROCS)")
	f.Bool("no-cache", false, "ignore and do not update the build cache")
	f.Bool("clean-cache", false, "drop the build cache before building")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.String("format", "pretty", "diagnostics format (pretty|short|json)")
}

// buildSettings is the manifest merged with explicitly set flags.
type buildSettings struct {
	dir     string
	out     string
	options driver.Options
	jobs    int
	cache   bool
}

func resolveBuildSettings(cmd *cobra.Command, args []string, maxDiagnostics int) (buildSettings, error) {
	f := cmd.Flags()
	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	s := buildSettings{
		dir:   start,
		out:   defaultBuildOut,
		cache: true,
		options: driver.Options{
			Target:         dialect.Closure,
			MaxDiagnostics: maxDiagnostics,
		},
	}

	m, ok, err := project.Load(start)
	if err != nil {
		return s, err
	}
	if ok {
		s.dir = m.SourceDir()
		s.out = m.OutDir()
		s.options.Target = m.Target()
		s.options.IndentWidth = m.Config.Build.Indent
		s.options.UseTabs = m.Config.Build.Tabs
		s.jobs = m.Config.Build.Jobs
		s.cache = m.CacheEnabled()
	}

	if f.Changed("out") {
		if s.out, err = f.GetString("out"); err != nil {
			return s, err
		}
	}
	if f.Changed("target") {
		s.options.Target = buildTarget
	}
	if f.Changed("indent") {
		if s.options.IndentWidth, err = f.GetInt("indent"); err != nil {
			return s, err
		}
	}
	if f.Changed("tabs") {
		if s.options.UseTabs, err = f.GetBool("tabs"); err != nil {
			return s, err
		}
	}
	if f.Changed("jobs") {
		if s.jobs, err = f.GetInt("jobs"); err != nil {
			return s, err
		}
	}
	noCache, err := f.GetBool("no-cache")
	if err != nil {
		return s, err
	}
	if noCache {
		s.cache = false
	}
	return s, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	cleanCache, err := cmd.Flags().GetBool("clean-cache")
	if err != nil {
		return err
	}

	s, err := resolveBuildSettings(cmd, args, g.maxDiagnostics)
	if err != nil {
		return err
	}

	req := driver.BuildRequest{
		Dir:     s.dir,
		Out:     s.out,
		Options: s.options,
		Jobs:    s.jobs,
	}
	if s.cache {
		cache, err := driver.OpenDiskCache("cinder")
		if err != nil {
			// без кэша сборка всё равно работает
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: build cache disabled: %v\n", err)
		} else {
			if cleanCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("clean cache: %w", err)
				}
			}
			req.Cache = cache
		}
	}

	var (
		res      *driver.BuildResult
		buildErr error
	)
	if !g.quiet && shouldUseTUI(mode) {
		files, err := driver.ListSourceFiles(s.dir)
		if err != nil {
			return err
		}
		rels := make([]string, len(files))
		for i, path := range files {
			rels[i] = displayRel(s.dir, path)
		}
		title := fmt.Sprintf("cinder build → %s", s.options.Target)
		res, buildErr = runBuildWithUI(cmd.Context(), title, rels, req)
	} else {
		res, buildErr = driver.BuildDir(cmd.Context(), req)
	}
	if res == nil {
		return buildErr
	}

	out := os.Stderr
	if format == "json" {
		out = os.Stdout
	}
	if err := reportBuildFiles(out, format, res, g); err != nil {
		return err
	}
	if g.timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}

	failed := res.Failed()
	if !g.quiet {
		summarizeBuild(cmd.ErrOrStderr(), res, s.out, failed)
	}
	if failed > 0 {
		return errReported
	}
	return buildErr
}

// reportBuildFiles prints each file's diagnostics and I/O error in path order.
func reportBuildFiles(w io.Writer, format string, res *driver.BuildResult, g globalOptions) error {
	for i := range res.Files {
		f := &res.Files[i]
		if f.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", f.Path, f.Err)
		}
		if err := printDiagnostics(w, format, f.Bag, f.FileSet, g); err != nil {
			return err
		}
	}
	return nil
}

func summarizeBuild(w io.Writer, res *driver.BuildResult, out string, failed int) {
	cached := 0
	for i := range res.Files {
		if res.Files[i].Cached {
			cached++
		}
	}
	built := len(res.Files) - failed
	fmt.Fprintf(w, "built %d of %d file(s) into %s", built, len(res.Files), out)
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	fmt.Fprintln(w)
}

// displayRel matches the file names BuildDir reports in its events.
func displayRel(base, path string) string {
	if rel, err := source.RelativePath(path, base); err == nil {
		return rel
	}
	return filepath.ToSlash(path)
}

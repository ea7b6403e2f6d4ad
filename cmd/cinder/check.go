package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.cnd|dir>",
	Short: "Report lexical, syntax and capture errors without writing output",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "parallel files when checking a directory (0 = GOMAXPROCS)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	out := os.Stderr
	if format == "json" {
		out = os.Stdout
	}

	if !info.IsDir() {
		result, err := driver.Check(path, g.maxDiagnostics)
		if err != nil {
			return err
		}
		if err := printDiagnostics(out, format, result.Bag, result.FileSet, g); err != nil {
			return err
		}
		if !result.OK() {
			return errReported
		}
		if !g.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: ok\n", path)
		}
		return nil
	}

	// Out пустой: генерация выполняется, файлы не пишутся
	res, err := driver.BuildDir(cmd.Context(), driver.BuildRequest{
		Dir:     path,
		Options: driver.Options{MaxDiagnostics: g.maxDiagnostics},
		Jobs:    jobs,
	})
	if err != nil {
		return err
	}
	if err := reportBuildFiles(out, format, res, g); err != nil {
		return err
	}
	if g.timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if failed := res.Failed(); failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d file(s) failed\n", failed, len(res.Files))
		return errReported
	}
	if !g.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d file(s)\n", len(res.Files))
	}
	return nil
}

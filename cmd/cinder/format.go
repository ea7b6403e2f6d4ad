package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cinder/internal/driver"
	"cinder/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format cinder source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Int("indent", 4, "spaces per indentation level")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs")
	fmtCmd.Flags().Int("jobs", 0, "parallel files (0 = unlimited)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return err
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:   check,
		Stdout:  writeToStdout,
		Jobs:    jobs,
		Options: format.Options{IndentWidth: indent, UseTabs: tabs},
	})
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed, unformatted int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			if errors.Is(r.Err, format.ErrParse) {
				fmt.Fprintf(stderr, "%s: cannot format: %v\n", r.Path, r.Err)
			} else {
				fmt.Fprintf(stderr, "%s: %v\n", r.Path, r.Err)
			}
		case writeToStdout:
			if len(results) > 1 {
				fmt.Fprintf(stdout, "// %s\n", r.Path)
			}
			if _, err := stdout.Write(r.Formatted); err != nil {
				return err
			}
		case r.Changed && check:
			unformatted++
			fmt.Fprintln(stdout, r.Path)
		case r.Changed && !g.quiet:
			fmt.Fprintf(stderr, "formatted %s\n", r.Path)
		}
	}

	if failed > 0 || unformatted > 0 {
		return errReported
	}
	return nil
}

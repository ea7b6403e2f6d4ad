package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/diag"
	"cinder/internal/diagfmt"
	"cinder/internal/source"
)

// globalOptions are the persistent flags every command reads.
type globalOptions struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalOptions(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts globalOptions

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	if opts.color, err = useColor(colorFlag, os.Stderr); err != nil {
		return opts, err
	}
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return opts, nil
}

// printDiagnostics renders bag in the requested format. Warnings are
// dropped under --quiet, errors never are.
func printDiagnostics(w io.Writer, format string, bag *diag.Bag, fs *source.FileSet, g globalOptions) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	if g.quiet {
		bag = bag.Filter(func(d diag.Diagnostic) bool { return d.Severity.AtLeast(diag.SevError) })
		if bag.Len() == 0 {
			return nil
		}
	}
	switch format {
	case "", "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     g.color,
			Context:   1,
			ShowNotes: true,
		})
		return nil
	case "short":
		_, err := io.WriteString(w, diag.FormatShort(bag.Items(), fs, true))
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}

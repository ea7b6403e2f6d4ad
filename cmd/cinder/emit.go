package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cinder/internal/dialect"
	"cinder/internal/driver"
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags] file.cnd",
	Short: "Translate one source file and print the result",
	Long: `Emit runs the whole pipeline on one file. The closure target turns nested
functions into closures; the cstyle target prints normalized C-style source.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmit,
}

var emitTarget = dialect.Closure

func init() {
	emitCmd.Flags().Var(&emitTarget, "target", "output dialect (closure|cstyle)")
	emitCmd.Flags().Int("indent", 4, "spaces per indentation level")
	emitCmd.Flags().Bool("tabs", false, "indent with tabs")
	emitCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

func runEmit(cmd *cobra.Command, args []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return fmt.Errorf("failed to get indent flag: %w", err)
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return fmt.Errorf("failed to get tabs flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	path := args[0]
	if output != "" {
		if same, err := sameFile(output, path); err != nil {
			return err
		} else if same {
			return fmt.Errorf("%w: %s", driver.ErrOutputIsInput, path)
		}
	}

	result, err := driver.Compile(cmd.Context(), path, driver.Options{
		Target:         emitTarget,
		IndentWidth:    indent,
		UseTabs:        tabs,
		MaxDiagnostics: g.maxDiagnostics,
	})
	if err != nil {
		return err
	}
	if err := printDiagnostics(os.Stderr, "pretty", result.Bag, result.FileSet, g); err != nil {
		return err
	}
	if g.timings {
		printTimer(cmd.ErrOrStderr(), result.Timer)
	}
	if !result.OK() {
		return errReported
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(result.Output)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(output, result.Output, 0o644)
}

func sameFile(a, b string) (bool, error) {
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

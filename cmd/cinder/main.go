package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cinder/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "cinder",
	Short:         "Cinder source-to-source compiler",
	Long:          `Cinder translates C-style .cnd sources into the closure dialect or back into normalized C-style code`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errReported: диагностики уже напечатаны, осталось вернуть код 1.
var errReported = errors.New("errors reported")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 256, "maximum number of diagnostics kept per file")
	pf.String("trace", "", "trace output file (- for stderr, *.ndjson for NDJSON)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	var cleanups []func()
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProf)
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopTrace)
		return nil
	}
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		cleanups = nil
	}
}

func main() {
	err := rootCmd.Execute()
	// PostRun не вызывается, если RunE вернул ошибку
	if rootCmd.PersistentPostRun != nil {
		rootCmd.PersistentPostRun(rootCmd, nil)
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

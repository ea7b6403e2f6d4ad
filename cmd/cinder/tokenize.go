package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/diagfmt"
	"cinder/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.cnd",
	Short: "Tokenize a cinder source file",
	Long:  `Tokenize breaks down a cinder source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Лексические ошибки в stderr, токены всё равно печатаем
	if err := printDiagnostics(os.Stderr, "pretty", result.Bag, result.FileSet, g); err != nil {
		return err
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}

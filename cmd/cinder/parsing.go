package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/diagfmt"
	"cinder/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cnd",
	Short: "Parse a cinder source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if err := printDiagnostics(os.Stderr, "pretty", result.Bag, result.FileSet, g); err != nil {
		return err
	}
	// синтаксическая ошибка: дерева нет
	if result.Builder == nil {
		return errReported
	}

	if format == "json" {
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Builder, result.FileID)
	} else {
		err = diagfmt.FormatASTTree(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cstree/internal/diagfmt"
	"cstree/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.enso",
	Short: "Print the token stream of a source file",
	Long:  `Tokenize prints every token of a file with its left offset and position`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s, cleanup, err := prepare(cmd)
	defer cleanup()
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	timer := s.newTimer()
	idx := timer.Begin("tokenize")
	result, err := driver.Tokenize(cmd.Context(), args[0], s.MaxDiagnostics)
	timer.End(idx, "")
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, s.prettyOpts())
	}
	defer printTimings(cmd, timer)

	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet, result.File.ID)
}

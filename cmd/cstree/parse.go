package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cstree/internal/diagfmt"
	"cstree/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.enso|directory>",
	Short: "Parse a source file or directory and print the syntax tree",
	Long: `Parse builds the concrete syntax tree of a file, or of every *.enso file in a
directory, and prints it. The code format prints the tree back as source text`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "", "output format (pretty|tree|json|msgpack|code); default from cstree.toml or pretty")
	parseCmd.Flags().String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
}

// parsedFile is one entry of the JSON output for a directory.
type parsedFile struct {
	Path string            `json:"path"`
	Tree *diagfmt.TreeNode `json:"tree"`
}

func runParse(cmd *cobra.Command, args []string) error {
	s, cleanup, err := prepare(cmd)
	defer cleanup()
	if err != nil {
		return err
	}
	if value, _ := cmd.Flags().GetString("format"); value != "" {
		f, ok := diagfmt.ParseTreeFormat(value)
		if !ok {
			return fmt.Errorf("unknown format: %s", value)
		}
		s.TreeFormat = f
	}
	if ring := ringTracer(cmd); ring != nil {
		defer ring.DumpOnPanic(os.Stderr)
	}

	path := args[0]
	// Проверяем, файл это или директория
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	timer := s.newTimer()
	defer printTimings(cmd, timer)
	out := cmd.OutOrStdout()

	if !st.IsDir() {
		var result *driver.ParseResult
		timer.Measure("parse", func() {
			result, err = driver.Parse(cmd.Context(), path, s.MaxDiagnostics)
		})
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, s.prettyOpts())
		}
		return diagfmt.FormatTree(out, result.Tree, s.TreeFormat)
	}

	var results []*driver.ParseResult
	timer.Measure("parse", func() {
		results, err = driver.ParseDir(cmd.Context(), path, s.Jobs, s.MaxDiagnostics)
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	for _, r := range results {
		if r.Bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), r.Bag, r.FileSet, s.prettyOpts())
		}
	}
	return writeParsedDir(out, results, s)
}

func writeParsedDir(out io.Writer, results []*driver.ParseResult, s settings) error {
	display := func(r *driver.ParseResult) string {
		return r.File.FormatPath(s.PathMode.String(), r.FileSet.BaseDir())
	}
	switch s.TreeFormat {
	case diagfmt.TreeFormatJSON:
		files := make([]parsedFile, len(results))
		for i, r := range results {
			files[i] = parsedFile{Path: display(r), Tree: diagfmt.BuildTreeNode(r.Tree)}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	case diagfmt.TreeFormatMsgpack:
		// поток msgpack-документов, по одному на файл
		for _, r := range results {
			if err := diagfmt.FormatTreeMsgpack(out, r.Tree); err != nil {
				return err
			}
		}
		return nil
	}
	for idx, r := range results {
		if !s.Quiet {
			if _, err := fmt.Fprintf(out, "== %s ==\n", display(r)); err != nil {
				return err
			}
		}
		if err := diagfmt.FormatTree(out, r.Tree, s.TreeFormat); err != nil {
			return err
		}
		if !s.Quiet && idx < len(results)-1 && s.TreeFormat != diagfmt.TreeFormatCode {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
	}
	return nil
}


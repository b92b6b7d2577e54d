package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cstree/internal/diag"
	"cstree/internal/diagfmt"
	"cstree/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [paths...]",
	Short: "Check that every file parses into a lossless tree",
	Long: `Check parses files and directories (default: the current directory), reports
syntax errors, and verifies that each tree prints back to its file and that its
spans cover the file without gaps. Results are cached by file content`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().StringSlice("exclude", nil, "glob patterns of paths to skip (relative path or base name)")
	checkCmd.Flags().String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("clear-cache", false, "drop every cached result before checking")
	checkCmd.Flags().String("severity", "info", "lowest severity to print (info|warning|error)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, cleanup, err := prepare(cmd)
	defer cleanup()
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	severityFlag, err := cmd.Flags().GetString("severity")
	if err != nil {
		return fmt.Errorf("failed to get severity flag: %w", err)
	}
	minSeverity, ok := diag.ParseSeverity(severityFlag)
	if !ok {
		return fmt.Errorf("invalid --severity value %q (expected info|warning|error)", severityFlag)
	}
	if ring := ringTracer(cmd); ring != nil {
		defer ring.DumpOnPanic(os.Stderr)
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	opts := driver.CheckOptions{
		MaxDiagnostics: s.MaxDiagnostics,
		Jobs:           s.Jobs,
		Exclude:        s.Exclude,
		BaseDir:        wd,
		Timer:          s.newTimer(),
	}
	if s.Cache {
		cache, err := driver.OpenDiskCache("cstree")
		if err != nil {
			// без кэша проверка всё равно работает
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: check cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	if clearCache && opts.Cache != nil {
		if err := opts.Cache.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	files, err := driver.ListFiles(paths, s.Exclude)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	var result *driver.CheckResult
	if format == "pretty" && !s.Quiet && shouldUseTUI(s.UI, os.Stderr, len(files)) {
		result, err = runCheckWithUI(cmd.Context(), files, paths, opts)
	} else {
		result, err = driver.CheckPaths(cmd.Context(), paths, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	defer printTimings(cmd, opts.Timer)

	bag := result.Diagnostics()
	bag.Filter(minSeverity)
	out := cmd.OutOrStdout()
	if format == "json" {
		return finishCheck(result, diagfmt.JSON(out, bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.PathMode,
			IncludeNotes:     true,
		}))
	}
	if format == "short" {
		if text := diag.FormatShort(bag.Items(), result.FileSet, true); text != "" {
			fmt.Fprintln(out, text)
		}
		return finishCheck(result, nil)
	}
	diagfmt.Pretty(out, bag, result.FileSet, s.prettyOpts())
	if !s.Quiet {
		printCheckSummary(cmd, result, bag, s.Color)
	}
	return finishCheck(result, nil)
}

func finishCheck(result *driver.CheckResult, err error) error {
	if err != nil {
		return err
	}
	if result.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func printCheckSummary(cmd *cobra.Command, result *driver.CheckResult, bag *diag.Bag, colored bool) {
	errs, warns, cached := bag.Count(diag.SevError), bag.Count(diag.SevWarning), 0
	for _, f := range result.Files {
		if f.Cached {
			cached++
		}
	}

	status := color.New(color.FgGreen, color.Bold)
	word := "ok"
	if errs > 0 {
		status = color.New(color.FgRed, color.Bold)
		word = "failed"
	}
	if colored {
		status.EnableColor()
	} else {
		status.DisableColor()
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d files (%d cached), %d errors, %d warnings\n",
		status.Sprint(word), len(result.Files), cached, errs, warns)
}

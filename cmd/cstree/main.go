package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cstree/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cstree",
	Short: "Lossless concrete syntax trees for Enso sources",
	Long: `cstree tokenizes and parses Enso source files into concrete syntax trees
that print back to the exact input, and checks that property over whole projects`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errDiagnostics is returned when diagnostics were printed and the run must
// exit non-zero without another message.
var errDiagnostics = errors.New("errors reported")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd)
}

// registerPersistentFlags adds the global flags to cmd.
func registerPersistentFlags(cmd *cobra.Command) {
	// Глобальные флаги
	pf := cmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = no limit)")
	pf.String("config", "", "path to cstree.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "write trace events to a file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("ui", "auto", "interactive progress for check (auto|on|off)")
	pf.Int("jobs", 0, "max parallel workers (0 = GOMAXPROCS)")
	pf.Bool("no-cache", false, "do not read or write the check cache")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isTerminalWriter is isTerminal for writers that may not be files.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"cstree/internal/version"
)

// buildInfo is what `cstree version` reports. Commit and date come from
// ldflags when set, otherwise from the VCS stamp of the Go toolchain.
type buildInfo struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show cstree build information",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, _ []string) error {
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	info := collectBuildInfo(debug.ReadBuildInfo())
	if !versionShowHash && !versionShowFull {
		info.GitCommit, info.Modified = "", false
	}
	if !versionShowDate && !versionShowFull {
		info.BuildDate = ""
	}
	if !versionShowFull {
		info.GoVersion = ""
	}

	switch strings.ToLower(versionFormat) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "pretty":
		colored := colorFlag == "on" || (colorFlag == "auto" && isTerminalWriter(cmd.OutOrStdout()))
		renderVersion(cmd.OutOrStdout(), info, version.Banner(colored))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
	}
}

func collectBuildInfo(bi *debug.BuildInfo, ok bool) buildInfo {
	info := buildInfo{
		Tool:      "cstree",
		Version:   strings.TrimSpace(version.Version),
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
		GoVersion: runtime.Version(),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	if versionShowHash || versionShowFull {
		info.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if versionShowDate || versionShowFull {
		info.BuildDate = valueOrUnknown(info.BuildDate)
	}
	return info
}

func renderVersion(out io.Writer, info buildInfo, banner string) {
	fmt.Fprintf(out, "cstree %s\n", banner)
	if info.GitCommit != "" {
		commit := info.GitCommit
		if info.Modified {
			commit += " (modified)"
		}
		fmt.Fprintf(out, "commit: %s\n", commit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", info.BuildDate)
	}
	if info.GoVersion != "" {
		fmt.Fprintf(out, "go:     %s\n", info.GoVersion)
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

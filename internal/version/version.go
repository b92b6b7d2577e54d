package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the cstree CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Banner renders Version with major, minor and patch in their own colours.
// A pre-release suffix is left plain.
func Banner(colored bool) string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	core, suffix, found := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if !colored || len(parts) != len(partColors) {
		return v
	}
	for i, p := range parts {
		c := *partColors[i]
		c.EnableColor()
		parts[i] = c.Sprint(p)
	}
	out := strings.Join(parts, ".")
	if found {
		out += "-" + suffix
	}
	return out
}

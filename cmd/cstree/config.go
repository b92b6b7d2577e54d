package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"cstree/internal/diagfmt"
)

const configFileName = "cstree.toml"

// projectConfig is the content of cstree.toml. Every key is optional.
type projectConfig struct {
	Check  checkConfig  `toml:"check"`
	Format formatConfig `toml:"format"`
}

type checkConfig struct {
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Cache          bool     `toml:"cache"`
	Exclude        []string `toml:"exclude"`
}

type formatConfig struct {
	TreeStyle string `toml:"tree_style"`
	PathMode  string `toml:"path_mode"`
	TabWidth  int    `toml:"tab_width"`
}

// settings is the effective configuration of a command: built-in defaults,
// then cstree.toml, then flags set on the command line.
type settings struct {
	ConfigPath     string
	Color          bool
	Quiet          bool
	Timings        bool
	MaxDiagnostics int
	Jobs           int
	Cache          bool
	Exclude        []string
	UI             uiMode
	TreeFormat     diagfmt.TreeFormat
	PathMode       diagfmt.PathMode
	TabWidth       uint8
}

func defaultSettings() settings {
	return settings{
		MaxDiagnostics: 100,
		Cache:          true,
		UI:             uiModeAuto,
		TreeFormat:     diagfmt.TreeFormatPretty,
		PathMode:       diagfmt.PathModeAuto,
		TabWidth:       4,
	}
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// applyConfigFile decodes path into s. Only keys present in the file
// override s.
func (s *settings) applyConfigFile(path string) error {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	s.ConfigPath = path

	if meta.IsDefined("check", "jobs") {
		s.Jobs = cfg.Check.Jobs
	}
	if meta.IsDefined("check", "max_diagnostics") {
		s.MaxDiagnostics = cfg.Check.MaxDiagnostics
	}
	if meta.IsDefined("check", "cache") {
		s.Cache = cfg.Check.Cache
	}
	if meta.IsDefined("check", "exclude") {
		s.Exclude = cfg.Check.Exclude
	}
	if meta.IsDefined("format", "tree_style") {
		f, ok := diagfmt.ParseTreeFormat(cfg.Format.TreeStyle)
		if !ok {
			return fmt.Errorf("%s: format.tree_style: unknown style %q", path, cfg.Format.TreeStyle)
		}
		s.TreeFormat = f
	}
	if meta.IsDefined("format", "path_mode") {
		m, ok := diagfmt.ParsePathMode(cfg.Format.PathMode)
		if !ok {
			return fmt.Errorf("%s: format.path_mode: unknown mode %q", path, cfg.Format.PathMode)
		}
		s.PathMode = m
	}
	if meta.IsDefined("format", "tab_width") {
		if cfg.Format.TabWidth < 1 || cfg.Format.TabWidth > 16 {
			return fmt.Errorf("%s: format.tab_width must be between 1 and 16", path)
		}
		s.TabWidth = uint8(cfg.Format.TabWidth) // #nosec G115 -- checked above
	}
	return nil
}

// resolveSettings builds the settings of cmd. startDir is where the search
// for cstree.toml begins when --config is not given.
func resolveSettings(cmd *cobra.Command, startDir string) (settings, error) {
	s := defaultSettings()
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		found, ok, err := findConfig(startDir)
		if err != nil {
			return s, err
		}
		if ok {
			configPath = found
		}
	}
	if configPath != "" {
		if err := s.applyConfigFile(configPath); err != nil {
			return s, err
		}
	}

	// флаги из командной строки важнее файла
	if flags.Changed("max-diagnostics") {
		if s.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return s, err
		}
	}
	if flags.Changed("jobs") {
		if s.Jobs, err = flags.GetInt("jobs"); err != nil {
			return s, err
		}
	}
	if flags.Changed("no-cache") {
		noCache, err := flags.GetBool("no-cache")
		if err != nil {
			return s, err
		}
		s.Cache = !noCache
	}
	if flags.Lookup("exclude") != nil && flags.Changed("exclude") {
		if s.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
			return s, err
		}
	}
	if flags.Lookup("path-mode") != nil && flags.Changed("path-mode") {
		value, _ := flags.GetString("path-mode")
		m, ok := diagfmt.ParsePathMode(value)
		if !ok {
			return s, fmt.Errorf("unknown path mode: %s", value)
		}
		s.PathMode = m
	}

	if s.Quiet, err = flags.GetBool("quiet"); err != nil {
		return s, err
	}
	if s.Timings, err = flags.GetBool("timings"); err != nil {
		return s, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, err
	}
	if s.UI, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return s, err
	}
	switch colorFlag {
	case "on":
		s.Color = true
	case "off":
		s.Color = false
	case "auto":
		s.Color = isTerminal(os.Stderr)
	default:
		return s, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	return s, nil
}

func (s settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.Color,
		Context:   2,
		PathMode:  s.PathMode,
		TabWidth:  s.TabWidth,
		ShowNotes: true,
	}
}

// uiMode selects the interactive progress view of check.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch m := uiMode(strings.TrimSpace(strings.ToLower(value))); m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI decides whether the progress view is drawn on out. In auto
// mode it needs a terminal and more than one file.
func shouldUseTUI(mode uiMode, out *os.File, files int) bool {
	if mode == uiModeAuto {
		return files > 1 && isTerminal(out)
	}
	return mode == uiModeOn
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"cstree/internal/diagfmt"
)

func writeConfig(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	registerPersistentFlags(cmd)
	cmd.Flags().StringSlice("exclude", nil, "")
	cmd.Flags().String("path-mode", "auto", "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("findConfig = %q, want %q", got, want)
	}
}

func TestResolveSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[check]
jobs = 3
max_diagnostics = 7
cache = false
exclude = ["gen", "*_test.enso"]

[format]
tree_style = "json"
path_mode = "basename"
tab_width = 8
`)
	s, err := resolveSettings(testCommand(t, "--color=off"), dir)
	if err != nil {
		t.Fatal(err)
	}
	if s.Jobs != 3 || s.MaxDiagnostics != 7 || s.Cache {
		t.Errorf("check section not applied: %+v", s)
	}
	if len(s.Exclude) != 2 || s.Exclude[1] != "*_test.enso" {
		t.Errorf("exclude = %v", s.Exclude)
	}
	if s.TreeFormat != diagfmt.TreeFormatJSON || s.PathMode != diagfmt.PathModeBasename || s.TabWidth != 8 {
		t.Errorf("format section not applied: %+v", s)
	}
	if s.ConfigPath != filepath.Join(dir, configFileName) {
		t.Errorf("config path %q", s.ConfigPath)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[check]\njobs = 3\nmax_diagnostics = 7\nexclude = [\"gen\"]\n")
	cmd := testCommand(t, "--jobs=1", "--no-cache", "--exclude=build", "--path-mode=relative", "--color=on", "--ui=off")
	s, err := resolveSettings(cmd, dir)
	if err != nil {
		t.Fatal(err)
	}
	if s.Jobs != 1 || s.MaxDiagnostics != 7 || s.Cache {
		t.Errorf("jobs=%d max=%d cache=%v", s.Jobs, s.MaxDiagnostics, s.Cache)
	}
	if len(s.Exclude) != 1 || s.Exclude[0] != "build" {
		t.Errorf("exclude = %v", s.Exclude)
	}
	if s.PathMode != diagfmt.PathModeRelative || !s.Color || s.UI != uiModeOff {
		t.Errorf("settings %+v", s)
	}
}

func TestDefaultsWithoutConfig(t *testing.T) {
	cmd := testCommand(t, "--config="+filepath.Join(t.TempDir(), "none.toml"))
	if _, err := resolveSettings(cmd, t.TempDir()); err == nil {
		t.Fatal("an explicit missing config must fail")
	}

	s := defaultSettings()
	if s.MaxDiagnostics != 100 || !s.Cache || s.TabWidth != 4 || s.TreeFormat != diagfmt.TreeFormatPretty {
		t.Fatalf("defaults %+v", s)
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", "[check\n"},
		{"unknown key", "[check]\nthreads = 2\n"},
		{"bad style", "[format]\ntree_style = \"svg\"\n"},
		{"bad path mode", "[format]\npath_mode = \"weird\"\n"},
		{"bad tab width", "[format]\ntab_width = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.text)
			s := defaultSettings()
			if err := s.applyConfigFile(path); err == nil {
				t.Fatalf("expected an error for %q", tt.text)
			}
		})
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected an error")
	}
	if shouldUseTUI(uiModeOff, os.Stderr, 10) || !shouldUseTUI(uiModeOn, os.Stderr, 0) {
		t.Error("explicit modes must win")
	}
}

package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cstree/internal/diag"
	"cstree/internal/source"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestCheckFileCleanSource(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.enso", []byte("main =\n    x = 1\n    f x\n"))
	bag := diag.NewBag(0)
	root := CheckFile(context.Background(), fs, id, bag)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics %v", codes(bag))
	}
	if root.Code() != fs.Get(id).Text {
		t.Fatal("tree does not reproduce the file")
	}
	if CountNodes(root) < 5 {
		t.Errorf("suspiciously small tree: %d nodes", CountNodes(root))
	}
}

func TestCheckFileReportsSyntaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.enso", []byte("f (a\nx = a + * b\n"))
	bag := diag.NewBag(0)
	CheckFile(context.Background(), fs, id, bag)

	var structural, arity bool
	for _, d := range bag.Items() {
		switch d.Code {
		case diag.SynStructural:
			structural = true
		case diag.SynOperatorArity:
			arity = true
		case diag.CstRoundTrip, diag.CstSpanCoverage:
			t.Errorf("invariant violated: %s", d.Message)
		}
	}
	if !structural || !arity {
		t.Fatalf("expected SYN2001 and SYN2002, got %v", codes(bag))
	}
}

func TestCheckPathsParallelAndCached(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.enso":          "a = 1\n",
		"lib/b.enso":      "b x = x + * y\n",
		"lib/skip/c.enso": "c = (\n",
		"notes.txt":       "not source\n",
	})
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var (
		mu     sync.Mutex
		events []Event
	)
	opts := CheckOptions{
		Jobs:     4,
		Exclude:  []string{"skip"},
		Cache:    cache,
		Progress: SinkFunc(func(e Event) { mu.Lock(); events = append(events, e); mu.Unlock() }),
	}

	first, err := CheckPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(first.Files))
	}
	if first.Files[0].Bag.Len() != 0 || first.Files[0].Cached {
		t.Errorf("a.enso: %v cached=%v", codes(first.Files[0].Bag), first.Files[0].Cached)
	}
	if !first.HasErrors() {
		t.Error("b.enso has a dangling operator")
	}
	if len(events) == 0 {
		t.Error("no progress events")
	}

	second, err := CheckPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i, rep := range second.Files {
		if !rep.Cached || rep.Tree != nil {
			t.Errorf("%s should come from the cache", rep.Path)
		}
		if got, want := codes(rep.Bag), codes(first.Files[i].Bag); len(got) != len(want) {
			t.Errorf("%s: cached diagnostics %v, fresh %v", rep.Path, got, want)
		}
		if rep.Nodes != first.Files[i].Nodes {
			t.Errorf("%s: cached node count %d, fresh %d", rep.Path, rep.Nodes, first.Files[i].Nodes)
		}
	}
	if merged := second.Diagnostics(); merged.Len() != first.Diagnostics().Len() {
		t.Errorf("merged bags differ: %d vs %d", merged.Len(), first.Diagnostics().Len())
	}
}

func TestCheckPathsMissingFile(t *testing.T) {
	_, err := CheckPaths(context.Background(), []string{filepath.Join(t.TempDir(), "nope.enso")}, CheckOptions{})
	if err == nil {
		t.Fatal("expected an error for a missing path")
	}
}

func TestCheckPathsCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.enso": "a\n", "b.enso": "b\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckPaths(ctx, []string{dir}, CheckOptions{Jobs: 1}); err == nil {
		t.Fatal("expected the cancellation to surface")
	}
}

func TestTokenizeAndParse(t *testing.T) {
	dir := writeFiles(t, map[string]string{"m.enso": "x = 'text'\n"})
	path := filepath.Join(dir, "m.enso")

	tok, err := Tokenize(context.Background(), path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(tok.Tokens); n == 0 || tok.Tokens[n-1].Kind.String() != "EOF" {
		t.Fatalf("token stream must end with EOF, got %d tokens", n)
	}

	res, err := Parse(context.Background(), path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Tree.Code() != res.File.Text || res.Bag.Len() != 0 {
		t.Fatalf("unexpected parse result: %q, %v", res.Tree.Code(), codes(res.Bag))
	}

	if _, err := Parse(context.Background(), filepath.Join(dir, "missing.enso"), 10); err == nil {
		t.Fatal("expected a load error")
	}
}

func TestParseDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.enso":     "a = 1\n",
		"sub/b.enso": "b = (\n",
	})
	results, err := ParseDir(context.Background(), dir, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Bag.Len() != 0 || !results[1].Bag.HasErrors() {
		t.Errorf("diagnostics: %v / %v", codes(results[0].Bag), codes(results[1].Bag))
	}
	if results[0].FileSet != results[1].FileSet {
		t.Error("results should share a FileSet")
	}
	for _, r := range results {
		if r.Tree.Code() != r.File.Text {
			t.Errorf("%s does not round trip", r.File.Path)
		}
	}
}

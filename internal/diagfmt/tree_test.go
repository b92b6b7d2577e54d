package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cstree/internal/parser"
	"cstree/internal/source"
	"cstree/internal/tree"
)

func parseText(t *testing.T, text string) *tree.Tree {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cst", []byte(text))
	return parser.ParseFile(fs.Get(fileID), parser.Options{})
}

func countNodes(n *TreeNode) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}

func TestBuildTreeNodeFields(t *testing.T) {
	root := BuildTreeNode(parseText(t, "x = f a\n"))
	if root.Type != "BodyBlock" {
		t.Fatalf("root is %s", root.Type)
	}
	line := root.Children[0]
	if line.Field != "Statements[0]" || line.Type != "Line" {
		t.Fatalf("unexpected first child %+v", line)
	}
	var assign *TreeNode
	for _, c := range line.Children {
		if c.Field == "Expression" {
			assign = c
		}
	}
	if assign == nil || assign.Type != "Assignment" {
		t.Fatalf("expected an Assignment expression, got %+v", line.Children)
	}
	if assign.Start != 0 || assign.End != 7 {
		t.Errorf("assignment span %d-%d", assign.Start, assign.End)
	}
}

func TestFormatTreePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, parseText(t, "(_ + 1)\n")); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"BodyBlock 0-",
		"Group 0-7",
		"TemplateFunction 1-6 {Arguments=1}",
		"Wildcard 1-2 {DeBruijnIndex=0}",
		`Operator "+" 3-4`,
		"└─ ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatTreeShowsErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, parseText(t, "f (a\n")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "error=structural: ") {
		t.Fatalf("missing error attribute:\n%s", buf.String())
	}
}

func TestFormatTreeBox(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTreeBox(&buf, parseText(t, "a + b\n")); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if !strings.Contains(lines[0], "BodyBlock") {
		t.Fatalf("root label should come first:\n%s", buf.String())
	}
	for i, l := range lines {
		if strings.HasSuffix(l, " ") {
			t.Errorf("line %d has trailing spaces: %q", i, l)
		}
	}
	if !strings.Contains(buf.String(), "─") {
		t.Errorf("expected a fan-out connector:\n%s", buf.String())
	}
}

func TestFormatTreeJSONAndMsgpack(t *testing.T) {
	root := parseText(t, "foo x = x + 1\n")

	var js bytes.Buffer
	if err := FormatTree(&js, root, TreeFormatJSON); err != nil {
		t.Fatal(err)
	}
	var fromJSON TreeNode
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	var mp bytes.Buffer
	if err := FormatTree(&mp, root, TreeFormatMsgpack); err != nil {
		t.Fatal(err)
	}
	fromMsgpack, err := DecodeTreeMsgpack(&mp)
	if err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}

	want := countNodes(BuildTreeNode(root))
	if got := countNodes(&fromJSON); got != want {
		t.Errorf("JSON has %d nodes, want %d", got, want)
	}
	if got := countNodes(fromMsgpack); got != want {
		t.Errorf("msgpack has %d nodes, want %d", got, want)
	}
	if fromMsgpack.Type != "BodyBlock" || fromMsgpack.End != fromJSON.End {
		t.Errorf("msgpack root %+v differs from JSON root", fromMsgpack)
	}
}

func TestFormatTreeCode(t *testing.T) {
	const text = "main =\n    x = 1  # note\n\n"
	var buf bytes.Buffer
	if err := FormatTree(&buf, parseText(t, text), TreeFormatCode); err != nil {
		t.Fatal(err)
	}
	if buf.String() != text {
		t.Fatalf("got %q, want %q", buf.String(), text)
	}
}

func TestParseTreeFormat(t *testing.T) {
	for s, want := range map[string]TreeFormat{
		"pretty": TreeFormatPretty, "tree": TreeFormatBox, "json": TreeFormatJSON,
		"msgpack": TreeFormatMsgpack, "code": TreeFormatCode,
	} {
		if got, ok := ParseTreeFormat(s); !ok || got != want {
			t.Errorf("ParseTreeFormat(%q) = %v, %v", s, got, ok)
		}
	}
	if _, ok := ParseTreeFormat("yaml"); ok {
		t.Error("unknown format accepted")
	}
}

package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"cstree/internal/token"
	"cstree/internal/tree"
)

// TreeNode is a view of a tree built by reflection over the variant fields.
// Every tree output format is rendered from it.
type TreeNode struct {
	Field    string         `json:"field,omitempty"`
	Type     string         `json:"type"`
	Token    bool           `json:"token,omitempty"`
	Start    uint32         `json:"start"`
	End      uint32         `json:"end"`
	Text     string         `json:"text,omitempty"`
	Offset   string         `json:"offset,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Children []*TreeNode    `json:"children,omitempty"`
}

var (
	treePtrType = reflect.TypeFor[*tree.Tree]()
	tokenType   = reflect.TypeFor[token.Token]()
	errorType   = reflect.TypeFor[tree.Error]()
)

// BuildTreeNode converts t. Fields of a variant appear in declaration order;
// nil fields are left out.
func BuildTreeNode(t *tree.Tree) *TreeNode {
	n := &TreeNode{Type: t.Variant.VariantName(), Start: t.Start(), End: t.End()}
	if !t.Span.LeftOffset.IsEmpty() {
		n.Offset = t.Span.LeftOffset.Code.Repr
	}
	addFields(n, reflect.ValueOf(t.Variant).Elem())
	return n
}

func tokenNode(field string, tok token.Token) *TreeNode {
	n := &TreeNode{
		Field: field,
		Type:  tok.Kind.String(),
		Token: true,
		Start: tok.Start(),
		End:   tok.Code.End(),
		Text:  tok.Text(),
	}
	if tok.HasLeftOffset() {
		n.Offset = tok.LeftOffset.Code.Repr
	}
	return n
}

func (n *TreeNode) attr(key string, v any) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = v
}

func addFields(n *TreeNode, v reflect.Value) {
	typ := v.Type()
	for i := range typ.NumField() {
		if f := typ.Field(i); f.IsExported() {
			addValue(n, f.Name, v.Field(i))
		}
	}
}

func addValue(n *TreeNode, name string, v reflect.Value) {
	switch v.Type() {
	case treePtrType:
		if !v.IsNil() {
			child := BuildTreeNode(v.Interface().(*tree.Tree))
			child.Field = name
			n.Children = append(n.Children, child)
		}
		return
	case tokenType:
		n.Children = append(n.Children, tokenNode(name, v.Interface().(token.Token)))
		return
	case errorType:
		e := v.Interface().(tree.Error)
		n.attr("error", fmt.Sprintf("%s: %s", e.Kind, e.Message))
		return
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			addValue(n, name, v.Elem())
		}
	case reflect.Slice:
		for i := range v.Len() {
			addValue(n, fmt.Sprintf("%s[%d]", name, i), v.Index(i))
		}
	case reflect.Struct:
		group := &TreeNode{Field: name, Type: v.Type().Name()}
		addFields(group, v)
		if len(group.Children) == 0 {
			return
		}
		group.Start = group.Children[0].Start
		group.End = group.Children[len(group.Children)-1].End
		n.Children = append(n.Children, group)
	case reflect.Bool:
		if v.Bool() {
			n.attr(name, true)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n.attr(name, v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n.attr(name, v.Uint())
	case reflect.String:
		if v.String() != "" {
			n.attr(name, v.String())
		}
	}
}

func (n *TreeNode) label() string {
	var b strings.Builder
	if n.Field != "" {
		b.WriteString(n.Field)
		b.WriteString(": ")
	}
	b.WriteString(n.Type)
	if n.Token {
		fmt.Fprintf(&b, " %q", n.Text)
	}
	fmt.Fprintf(&b, " %d-%d", n.Start, n.End)
	if len(n.Attrs) > 0 {
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, n.Attrs[k])
		}
		fmt.Fprintf(&b, " {%s}", strings.Join(parts, ", "))
	}
	return b.String()
}

// FormatTree writes t in the given format.
func FormatTree(w io.Writer, t *tree.Tree, format TreeFormat) error {
	switch format {
	case TreeFormatPretty:
		return FormatTreePretty(w, t)
	case TreeFormatBox:
		return FormatTreeBox(w, t)
	case TreeFormatJSON:
		return FormatTreeJSON(w, t)
	case TreeFormatMsgpack:
		return FormatTreeMsgpack(w, t)
	case TreeFormatCode:
		_, err := io.WriteString(w, t.Code())
		return err
	default:
		return fmt.Errorf("unknown tree format %d", format)
	}
}

// FormatTreePretty выводит дерево с отступами:
//
//	BodyBlock 0-5
//	└─ Statements[0]: Line 0-5
//	   └─ Expression: Assignment 0-5
func FormatTreePretty(w io.Writer, t *tree.Tree) error {
	root := BuildTreeNode(t)
	if _, err := fmt.Fprintln(w, root.label()); err != nil {
		return err
	}
	return writePrettyChildren(w, root, "")
}

func writePrettyChildren(w io.Writer, n *TreeNode, prefix string) error {
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		marker, next := "├─ ", prefix+"│  "
		if last {
			marker, next = "└─ ", prefix+"   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, marker, child.label()); err != nil {
			return err
		}
		if err := writePrettyChildren(w, child, next); err != nil {
			return err
		}
	}
	return nil
}

// FormatTreeJSON writes the reflected tree as indented JSON.
func FormatTreeJSON(w io.Writer, t *tree.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeNode(t))
}

// FormatTreeMsgpack writes the reflected tree as msgpack, using the JSON
// field names. Attribute maps are written with sorted keys.
func FormatTreeMsgpack(w io.Writer, t *tree.Tree) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)
	return enc.Encode(BuildTreeNode(t))
}

// DecodeTreeMsgpack reads a tree written by FormatTreeMsgpack.
func DecodeTreeMsgpack(r io.Reader) (*TreeNode, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	var n TreeNode
	if err := dec.Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

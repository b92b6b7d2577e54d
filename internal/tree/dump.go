package tree

import (
	"fmt"
	"io"
	"strings"
)

type dumper struct {
	w     io.Writer
	depth int
	err   error
}

func (d *dumper) VisitItem(it Item) bool {
	if d.err != nil {
		return false
	}
	indent := strings.Repeat("  ", d.depth)
	if it.Tree != nil {
		label := it.Tree.Variant.VariantName()
		if inv, ok := it.Tree.Variant.(*Invalid); ok {
			label += fmt.Sprintf(" (%s: %s)", inv.Error.Kind, inv.Error.Message)
		}
		_, d.err = fmt.Fprintf(d.w, "%s%s %s\n", indent, label, it.Tree.Span)
		return true
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s %q\n", indent, it.Token.Kind, it.Token.Code.Repr)
	return false
}

func (d *dumper) Enter(*Tree) { d.depth++ }
func (d *dumper) Exit(*Tree)  { d.depth-- }

// Dump writes an indented outline of t: one line per tree with its span,
// one line per token with its code.
func Dump(w io.Writer, t *Tree) error {
	d := &dumper{w: w}
	Visit(t, d)
	return d.err
}

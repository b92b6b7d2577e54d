package tree

import (
	"strings"
)

// ItemVisitor receives items in source order. Returning false skips the
// children of the item.
type ItemVisitor interface {
	VisitItem(it Item) bool
}

// NestingVisitor is an ItemVisitor that is also told when the children of a
// tree start and end.
type NestingVisitor interface {
	ItemVisitor
	Enter(t *Tree)
	Exit(t *Tree)
}

// ItemVisitorFunc adapts a function to ItemVisitor.
type ItemVisitorFunc func(it Item) bool

func (f ItemVisitorFunc) VisitItem(it Item) bool { return f(it) }

// Visit walks t, including t itself, in source order.
func Visit(t *Tree, v ItemVisitor) {
	visitItem(Item{Tree: t}, v)
}

func visitItem(it Item, v ItemVisitor) {
	if !v.VisitItem(it) || it.Tree == nil {
		return
	}
	nv, nesting := v.(NestingVisitor)
	if nesting {
		nv.Enter(it.Tree)
	}
	it.Tree.Variant.walk(func(child Item) { visitItem(child, v) })
	if nesting {
		nv.Exit(it.Tree)
	}
}

// VisitItems calls f for every direct child of t.
func (t *Tree) VisitItems(f func(Item)) {
	t.Variant.walk(f)
}

// VisitTrees calls f for t and every tree below it. Returning false skips
// the subtrees of the tree passed to f.
func VisitTrees(t *Tree, f func(*Tree) bool) {
	Visit(t, ItemVisitorFunc(func(it Item) bool {
		if it.Tree == nil {
			return false
		}
		return f(it.Tree)
	}))
}

type codePrinter struct {
	sb strings.Builder
}

func (p *codePrinter) VisitItem(it Item) bool {
	if it.Tree != nil {
		p.sb.WriteString(it.Tree.Span.LeftOffset.Code.Repr)
		return true
	}
	p.sb.WriteString(it.Token.LeftOffset.Code.Repr)
	p.sb.WriteString(it.Token.Code.Repr)
	return true
}

// Code reconstructs the source text t was built from, offsets included.
func (t *Tree) Code() string {
	var p codePrinter
	Visit(t, &p)
	return p.sb.String()
}

// TrimmedCode is Code without t's own leading offset.
func (t *Tree) TrimmedCode() string {
	var p codePrinter
	t.Variant.walk(func(it Item) { visitItem(it, &p) })
	return p.sb.String()
}

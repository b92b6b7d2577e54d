package tree

import (
	"cstree/internal/source"
	"cstree/internal/token"
)

// Tree is a node of the concrete syntax tree.
type Tree struct {
	Span    source.Span
	Variant Variant
}

// Variant is the closed set of node shapes. Every implementation lists its
// fields to walk in the order they appear in the source.
type Variant interface {
	// VariantName is the name shown in dumps. It is not Name, which several
	// variants use as a field.
	VariantName() string
	walk(f func(Item))
}

// Item is a child of a node: either a subtree or a token. Exactly one field is set.
type Item struct {
	Tree  *Tree
	Token *token.Token
}

// New wraps v into a tree, computing its span from v's children. The first
// child hands its left offset over to the new node.
func New(v Variant) *Tree {
	var b source.Builder
	v.walk(func(it Item) {
		if it.Tree != nil {
			b.AddSpan(&it.Tree.Span)
			return
		}
		b.AddCode(&it.Token.LeftOffset, it.Token.Code)
	})
	return &Tree{Span: b.Span(), Variant: v}
}

// NewAt is New for a variant that may have no children: such a tree gets an
// empty span at pos instead of one at the start of the file.
func NewAt(pos uint32, v Variant) *Tree {
	t := New(v)
	t.PlaceAt(pos)
	return t
}

// PlaceAt moves a tree that covers no bytes, and its empty subtrees, to pos.
// Trees that cover anything keep their span.
func (t *Tree) PlaceAt(pos uint32) {
	if t == nil || t.Span.LengthIncludingWhitespace() != 0 {
		return
	}
	t.Span = source.EmptySpanAt(pos)
	t.Variant.walk(func(it Item) {
		if it.Tree != nil {
			it.Tree.PlaceAt(pos)
		}
	})
}

// Start is the absolute position of the node's first code byte.
func (t *Tree) Start() uint32 { return t.Span.Start() }

// End is the absolute position right after the node.
func (t *Tree) End() uint32 { return t.Span.End() }

func walkTree(f func(Item), t *Tree) {
	if t != nil {
		f(Item{Tree: t})
	}
}

func walkToken(f func(Item), t *token.Token) {
	if t != nil {
		f(Item{Token: t})
	}
}

func walkTokens(f func(Item), ts []token.Token) {
	for i := range ts {
		f(Item{Token: &ts[i]})
	}
}

// restoreOffset moves off back in front of the token, ahead of whatever
// offset the token still carries.
func restoreOffset(tok *token.Token, off source.Offset) {
	tok.LeftOffset = off.Concat(tok.LeftOffset)
}

// restoreTreeOffset is restoreOffset for a subtree.
func restoreTreeOffset(t *Tree, off source.Offset) {
	t.Span.LeftOffset = off.Concat(t.Span.LeftOffset)
}

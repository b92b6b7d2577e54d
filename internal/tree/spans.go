package tree

import (
	"fmt"

	"cstree/internal/source"
)

// CheckSpans verifies span coverage for every node under t against text, the
// source t was built from: offsets and codes must tile text in visiting
// order, each recorded position must match, and every node's children must
// account for exactly LeftOffset+CodeLength bytes.
func CheckSpans(t *Tree, text string) error {
	if t == nil {
		return fmt.Errorf("nil tree")
	}
	c := &spanChecker{text: text, pos: t.Span.LeftOffset.Code.Start}
	start := c.pos
	Visit(t, c)
	if c.err != nil {
		return c.err
	}
	if got, want := c.pos-start, t.Span.LengthIncludingWhitespace(); got != want {
		return fmt.Errorf("root covers %d bytes, span says %d", got, want)
	}
	return nil
}

type frame struct {
	node *Tree
	end  uint32
}

type spanChecker struct {
	text  string
	pos   uint32
	stack []frame
	err   error
}

func (c *spanChecker) consume(what string, code source.Code) {
	if c.err != nil {
		return
	}
	n := code.Len()
	end := c.pos + n
	if int(end) > len(c.text) {
		c.err = fmt.Errorf("%s %q at %d runs past the end of the source", what, code.Repr, c.pos)
		return
	}
	if got := c.text[c.pos:end]; got != code.Repr {
		c.err = fmt.Errorf("%s at %d: have %q, source has %q", what, c.pos, code.Repr, got)
		return
	}
	if n > 0 && code.Start != c.pos {
		c.err = fmt.Errorf("%s %q records position %d, found at %d", what, code.Repr, code.Start, c.pos)
		return
	}
	c.pos = end
}

func (c *spanChecker) VisitItem(it Item) bool {
	if c.err != nil {
		return false
	}
	if it.Tree != nil {
		end := c.pos + it.Tree.Span.LengthIncludingWhitespace()
		c.consume(it.Tree.Variant.VariantName()+" offset", it.Tree.Span.LeftOffset.Code)
		c.stack = append(c.stack, frame{node: it.Tree, end: end})
		return c.err == nil
	}
	c.consume(it.Token.Kind.String()+" offset", it.Token.LeftOffset.Code)
	c.consume(it.Token.Kind.String(), it.Token.Code)
	return false
}

func (c *spanChecker) Enter(*Tree) {}

func (c *spanChecker) Exit(t *Tree) {
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if c.err == nil && c.pos != top.end {
		c.err = fmt.Errorf("%s ends at %d, span says %d", t.Variant.VariantName(), c.pos, top.end)
	}
}

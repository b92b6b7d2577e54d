package tree

import (
	"cstree/internal/source"
	"cstree/internal/token"
)

// TextElement is a piece of a text literal.
type TextElement interface {
	walk(f func(Item))
	// leadingToken is the token whose offset precedes the element.
	leadingToken() *token.Token
}

// TextSection is literal text.
type TextSection struct {
	Text token.Token
}

// TextEscape is an escape sequence; Token.Escape holds its value.
type TextEscape struct {
	Token token.Token
}

// TextNewline is a line break inside a multi-line literal.
type TextNewline struct {
	Newline token.Token
}

// TextSplice is an interpolated expression between backticks.
type TextSplice struct {
	Open       token.Token
	Expression *Tree
	Close      token.Token
}

func (e *TextSection) walk(f func(Item)) { walkToken(f, &e.Text) }
func (e *TextEscape) walk(f func(Item))  { walkToken(f, &e.Token) }
func (e *TextNewline) walk(f func(Item)) { walkToken(f, &e.Newline) }
func (e *TextSplice) walk(f func(Item)) {
	walkToken(f, &e.Open)
	walkTree(f, e.Expression)
	walkToken(f, &e.Close)
}

func (e *TextSection) leadingToken() *token.Token { return &e.Text }
func (e *TextEscape) leadingToken() *token.Token  { return &e.Token }
func (e *TextNewline) leadingToken() *token.Token { return &e.Newline }
func (e *TextSplice) leadingToken() *token.Token  { return &e.Open }

// JoinTextLiterals appends the fragment rhs to the unfinished literal lhs.
// lhsSpan is the span of the tree holding lhs and is extended to cover rhs.
// rhs.Open is expected to be nil: a fragment never starts a new literal.
func JoinTextLiterals(lhs, rhs *TextLiteral, lhsSpan *source.Span, rhsSpan source.Span) {
	lhsSpan.CodeLength += rhsSpan.LengthIncludingWhitespace()
	// The fragment's offset went to its span; give it back to the first token
	// that will be printed.
	switch {
	case rhs.Newline != nil:
		restoreOffset(rhs.Newline, rhsSpan.LeftOffset)
	case len(rhs.Elements) > 0:
		restoreOffset(rhs.Elements[0].leadingToken(), rhsSpan.LeftOffset)
	case rhs.Close != nil:
		restoreOffset(rhs.Close, rhsSpan.LeftOffset)
	}
	if rhs.Newline != nil {
		lhs.Newline = rhs.Newline
		rhs.Newline = nil
	}
	lhs.Elements = append(lhs.Elements, rhs.Elements...)
	rhs.Elements = nil
	lhs.Close = rhs.Close
	rhs.Close = nil
	lhs.Closed = rhs.Closed
}

// JoinText joins the text fragment rhs onto lhs when lhs is an unclosed text
// literal and rhs a literal without an opening quote. Anything else is
// combined with Apply.
func JoinText(lhs, rhs *Tree) *Tree {
	l, lok := lhs.Variant.(*TextLiteral)
	r, rok := rhs.Variant.(*TextLiteral)
	if !lok || !rok || l.Closed || r.Open != nil {
		return Apply(lhs, rhs)
	}
	JoinTextLiterals(l, r, &lhs.Span, rhs.Span)
	return lhs
}

// IsOpenText reports whether t is a text literal still waiting for fragments.
func IsOpenText(t *Tree) bool {
	lit, ok := t.Variant.(*TextLiteral)
	return ok && !lit.Closed
}

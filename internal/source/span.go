package source

import "fmt"

// Span is the extent of a node: the offset before it and the length of its own
// code, which includes every descendant together with their offsets.
//
// Concatenating, in source order, every offset and every token code under a
// node reproduces exactly LeftOffset.Len()+CodeLength bytes of the file.
type Span struct {
	LeftOffset Offset
	CodeLength uint32
}

// EmptySpanAt returns a span that covers nothing at pos.
func EmptySpanAt(pos uint32) Span {
	return Span{LeftOffset: EmptyOffsetAt(pos)}
}

// LengthIncludingWhitespace is the number of bytes covered by the span.
func (s Span) LengthIncludingWhitespace() uint32 {
	return s.LeftOffset.Len() + s.CodeLength
}

// Start is the absolute position of the node's own code.
func (s Span) Start() uint32 {
	return s.LeftOffset.Code.End()
}

// End is the position right after the node's code.
func (s Span) End() uint32 {
	return s.Start() + s.CodeLength
}

// TakeAsPrefix hands over the span's leading offset, leaving it empty.
func (s *Span) TakeAsPrefix() Offset {
	return s.LeftOffset.TakeAsPrefix()
}

// Add extends s by a child that follows it.
func (s Span) Add(child Span) Span {
	s.CodeLength += child.LengthIncludingWhitespace()
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d+%d", s.LeftOffset.Len(), s.CodeLength)
}

// Builder folds children into a parent span in lexical order. The first child
// passes its leading offset up to the parent; every later child contributes
// its offset and code to the parent's code length.
type Builder struct {
	span    Span
	started bool
}

// AddSpan folds in a child node. The first child's offset is taken from it.
func (b *Builder) AddSpan(child *Span) {
	if !b.started {
		b.started = true
		b.span = Span{LeftOffset: child.TakeAsPrefix(), CodeLength: child.CodeLength}
		return
	}
	b.span = b.span.Add(*child)
}

// AddCode folds in a token given by its offset and code. The first token's
// offset is taken from it.
func (b *Builder) AddCode(offset *Offset, code Code) {
	if !b.started {
		b.started = true
		b.span = Span{LeftOffset: offset.TakeAsPrefix(), CodeLength: code.Len()}
		return
	}
	b.span.CodeLength += offset.Len() + code.Len()
}

// Started reports whether any child was added.
func (b *Builder) Started() bool {
	return b.started
}

// Span returns the accumulated span.
func (b *Builder) Span() Span {
	return b.span
}

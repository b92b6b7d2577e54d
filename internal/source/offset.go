package source

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TabWidth is the number of columns a tab contributes to a visible offset.
const TabWidth = 4

// VisibleOffset is an offset measured in terminal columns.
type VisibleOffset uint32

// Offset is the whitespace and comment text that precedes a piece of code.
// The text is stored verbatim; Visible is only a cached measure of it.
type Offset struct {
	Visible VisibleOffset
	Code    Code
}

// NewOffset measures code and wraps it as an offset.
func NewOffset(code Code) Offset {
	return Offset{Visible: visibleWidth(code.Repr), Code: code}
}

// EmptyOffsetAt returns an offset of zero length located at pos.
func EmptyOffsetAt(pos uint32) Offset {
	return Offset{Code: EmptyCodeAt(pos)}
}

func (o Offset) Len() uint32 {
	return o.Code.Len()
}

func (o Offset) IsEmpty() bool {
	return o.Code.IsEmpty()
}

// Concat joins o with the offset that directly follows it.
func (o Offset) Concat(next Offset) Offset {
	return Offset{Visible: o.Visible + next.Visible, Code: o.Code.Append(next.Code)}
}

// TakeAsPrefix removes the offset text from o and returns it. o is left empty
// and positioned where the taken text ended, so the code after it keeps its
// absolute position.
func (o *Offset) TakeAsPrefix() Offset {
	taken := *o
	*o = EmptyOffsetAt(taken.Code.End())
	return taken
}

func visibleWidth(s string) VisibleOffset {
	if s == "" {
		return 0
	}
	var w int
	for part := range strings.SplitSeq(s, "\t") {
		w += runewidth.StringWidth(part)
	}
	w += strings.Count(s, "\t") * TabWidth
	return VisibleOffset(w) // #nosec G115 -- bounded by source length
}

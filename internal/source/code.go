package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Code is a slice of source text. Repr shares memory with File.Text and Start
// is the absolute byte position of Repr in that file.
type Code struct {
	Repr  string
	Start uint32
}

// CodeAt slices text[start:end] keeping its position.
func CodeAt(text string, start, end uint32) Code {
	return Code{Repr: text[start:end], Start: start}
}

// EmptyCodeAt returns a zero-length code positioned at pos.
func EmptyCodeAt(pos uint32) Code {
	return Code{Start: pos}
}

func (c Code) Len() uint32 {
	return StrLen(c.Repr)
}

// End returns the position right after the last byte of c.
func (c Code) End() uint32 {
	return c.Start + c.Len()
}

func (c Code) IsEmpty() bool {
	return c.Repr == ""
}

// Append concatenates two adjacent pieces of code. An empty side contributes
// nothing, not even its position.
func (c Code) Append(next Code) Code {
	switch {
	case next.IsEmpty():
		return c
	case c.IsEmpty():
		return next
	}
	return Code{Repr: c.Repr + next.Repr, Start: c.Start}
}

// SplitAt cuts c after n bytes.
func (c Code) SplitAt(n uint32) (Code, Code) {
	return Code{Repr: c.Repr[:n], Start: c.Start}, Code{Repr: c.Repr[n:], Start: c.Start + n}
}

func (c Code) String() string {
	return c.Repr
}

// StrLen returns len(s) as uint32. Sources larger than 4GiB are rejected by
// FileSet.Add, so an overflow here is a bug.
func StrLen(s string) uint32 {
	n, err := safecast.Conv[uint32](len(s))
	if err != nil {
		panic(fmt.Errorf("code length overflow: %w", err))
	}
	return n
}

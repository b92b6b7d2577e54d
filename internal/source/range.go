package source

import (
	"fmt"
)

// Range is an absolute byte range in a file, used to locate diagnostics.
type Range struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) Len() uint32 {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d", r.File, r.Start, r.End)
}

// Cover returns the smallest range containing both r and other.
func (r Range) Cover(other Range) Range {
	if r.File != other.File {
		return r
	}
	if other.Start < r.Start {
		r.Start = other.Start
	}
	if other.End > r.End {
		r.End = other.End
	}
	return r
}

// RangeOf locates the code of a node with the given span.
func RangeOf(file FileID, s Span) Range {
	return Range{File: file, Start: s.Start(), End: s.End()}
}

// RangeOfCode locates a token's code.
func RangeOfCode(file FileID, c Code) Range {
	return Range{File: file, Start: c.Start, End: c.End()}
}

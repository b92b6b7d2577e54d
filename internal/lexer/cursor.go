package lexer

import (
	"strings"

	"cstree/internal/source"
)

// Cursor walks the bytes of a file. Off never passes Limit; reads past the
// end yield 0.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // exclusive
}

func NewCursor(f *source.File) Cursor {
	return Cursor{File: f, Limit: source.StrLen(f.Text)}
}

// rest is the unread text.
func (c *Cursor) rest() string {
	if c.Off >= c.Limit {
		return ""
	}
	return c.File.Text[c.Off:c.Limit]
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek возвращает текущий байт или 0 в конце.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt возвращает байт на n позиций впереди или 0.
func (c *Cursor) PeekAt(n uint32) byte {
	if rest := c.rest(); n < uint32(len(rest)) { // #nosec G115 -- len(rest) <= Limit
		return rest[n]
	}
	return 0
}

// Peek2 returns the next two bytes; ok is false unless both exist.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	rest := c.rest()
	if len(rest) < 2 {
		return 0, 0, false
	}
	return rest[0], rest[1], true
}

// Bump consumes one byte and returns it, 0 at the end.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Off++
	return true
}

func (c *Cursor) HasPrefix(s string) bool { return strings.HasPrefix(c.rest(), s) }

// Mark запоминает позицию, от которой потом берётся CodeFrom или Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// CodeFrom returns the text between m and the cursor.
func (c *Cursor) CodeFrom(m Mark) source.Code {
	return source.CodeAt(c.File.Text, uint32(m), c.Off)
}

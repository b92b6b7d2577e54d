package lexer

import (
	"testing"

	"cstree/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cst", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("cursor should stay at EOF")
	}
}

func TestMarkAndReset(t *testing.T) {
	cursor := NewCursor(createFile("hello world"))
	cursor.Bump()
	m := cursor.Mark()
	for range 4 {
		cursor.Bump()
	}
	code := cursor.CodeFrom(m)
	if code.Repr != "ello" || code.Start != 1 {
		t.Fatalf("code = %q at %d", code.Repr, code.Start)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'e' {
		t.Fatalf("after reset peek = %q", cursor.Peek())
	}
}

func TestLookahead(t *testing.T) {
	cursor := NewCursor(createFile("ab"))
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if cursor.PeekAt(2) != 0 {
		t.Fatal("PeekAt past the end should be 0")
	}
	if !cursor.HasPrefix("ab") || cursor.HasPrefix("abc") {
		t.Fatal("HasPrefix disagrees with the text")
	}
	if cursor.Eat('b') || !cursor.Eat('a') {
		t.Fatal("Eat should only consume a matching byte")
	}
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 with one byte left should fail")
	}
}

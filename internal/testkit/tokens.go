package testkit

import (
	"strings"
	"testing"
	"unicode"

	"cstree/internal/source"
	"cstree/internal/token"
)

// Source hands out the tokens of a text one by one. Everything between the
// previous token and the next one becomes the next token's offset, so a
// stream built from a Source tiles the text exactly.
type Source struct {
	tb   testing.TB
	Text string
	pos  uint32
}

// NewSource starts handing out tokens from the beginning of text.
func NewSource(tb testing.TB, text string) *Source {
	return &Source{tb: tb, Text: text}
}

// Next returns the next occurrence of code as a token of the given kind.
func (s *Source) Next(kind token.Kind, code string) token.Token {
	s.tb.Helper()
	idx := strings.Index(s.Text[s.pos:], code)
	if idx < 0 {
		s.tb.Fatalf("testkit: %q not found after position %d in %q", code, s.pos, s.Text)
	}
	start := s.pos + source.StrLen(s.Text[s.pos:][:idx])
	end := start + source.StrLen(code)
	tok := token.New(kind, source.NewOffset(source.CodeAt(s.Text, s.pos, start)), source.CodeAt(s.Text, start, end))
	s.pos = end
	return tok
}

// Ident returns the next identifier.
func (s *Source) Ident(code string) token.Token {
	s.tb.Helper()
	tok := s.Next(token.Ident, code)
	first := []rune(code)[0]
	tok.IsType = unicode.IsUpper(first)
	tok.IsFree = first == '_'
	return tok
}

// Operator returns the next operator with its table properties.
func (s *Source) Operator(code string) token.Token {
	s.tb.Helper()
	tok := s.Next(token.Operator, code)
	tok.Operator = token.LookupOperator(code)
	return tok
}

// Decimal returns the next `.` as a decimal point.
func (s *Source) Decimal() token.Token {
	s.tb.Helper()
	tok := s.Next(token.Operator, ".")
	tok.Operator = token.DecimalProperties()
	return tok
}

// Joiner returns a zero-length token-joiner operator at the current position.
func (s *Source) Joiner() token.Token {
	tok := token.New(token.Operator, source.EmptyOffsetAt(s.pos), source.EmptyCodeAt(s.pos))
	tok.Operator = token.JoinerProperties()
	return tok
}

// Digits returns the next digit group.
func (s *Source) Digits(code string, base token.Base) token.Token {
	s.tb.Helper()
	tok := s.Next(token.Digits, code)
	tok.Base = base
	return tok
}

// Pos is the position right after the last token handed out.
func (s *Source) Pos() uint32 { return s.pos }

// Rest returns the text not yet handed out.
func (s *Source) Rest() string { return s.Text[s.pos:] }

package token

import (
	"cstree/internal/source"
)

// Base is the radix of a number literal.
type Base uint8

const (
	// BaseNone means the digits carry no explicit base prefix.
	BaseNone Base = iota
	BaseBinary
	BaseOctal
	BaseHexadecimal
)

// EscapeInvalid marks a TextEscape whose value could not be decoded.
const EscapeInvalid rune = -1

// Token represents a single source token with the offset in front of it.
type Token struct {
	Kind       Kind
	LeftOffset source.Offset
	Code       source.Code

	IsType   bool // Ident: starts with an uppercase letter
	IsFree   bool // Ident: starts with an underscore
	Operator OperatorProperties
	Base     Base
	Escape   rune
}

// New creates a token of the given kind.
func New(kind Kind, offset source.Offset, code source.Code) Token {
	return Token{Kind: kind, LeftOffset: offset, Code: code}
}

// Len returns the length of the token's code.
func (t Token) Len() uint32 {
	return t.Code.Len()
}

// LengthIncludingWhitespace is the length of offset and code together.
func (t Token) LengthIncludingWhitespace() uint32 {
	return t.LeftOffset.Len() + t.Code.Len()
}

// Start returns the absolute position of the token's code.
func (t Token) Start() uint32 {
	return t.Code.Start
}

// Text returns the token's code.
func (t Token) Text() string {
	return t.Code.Repr
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsOperator reports whether the token is an operator.
func (t Token) IsOperator() bool { return t.Kind == Operator }

// HasLeftOffset reports whether any whitespace precedes the token.
func (t Token) HasLeftOffset() bool {
	return !t.LeftOffset.IsEmpty()
}

package tree

import (
	"fmt"

	"cstree/internal/token"
)

// ToAST builds the smallest tree for a single token. It is total: tokens that
// cannot start a node become a placeholder identifier under an Invalid node.
func ToAST(tok token.Token) *Tree {
	switch tok.Kind {
	case token.Ident:
		return New(&Ident{Token: tok})
	case token.Digits:
		return New(&Number{Integer: &tok})
	case token.NumberBase:
		return New(&Number{Base: &tok})
	case token.TextStart:
		return New(&TextLiteral{Open: &tok})
	case token.TextSection:
		return New(&TextLiteral{Elements: []TextElement{&TextSection{Text: tok}}})
	case token.TextEscape:
		return New(&TextLiteral{Elements: []TextElement{&TextEscape{Token: tok}}})
	case token.TextEnd:
		if tok.LengthIncludingWhitespace() == 0 {
			// A literal cut off by the end of the line.
			return NewAt(tok.Start(), &TextLiteral{Closed: true})
		}
		return New(&TextLiteral{Close: &tok, Closed: true})
	case token.TextInitialNewline:
		tok.Kind = token.Newline
		return New(&TextLiteral{Newline: &tok})
	case token.TextNewline:
		tok.Kind = token.Newline
		return New(&TextLiteral{Elements: []TextElement{&TextNewline{Newline: tok}}})
	case token.Wildcard:
		return New(&Wildcard{Token: tok, DeBruijnIndex: NoDeBruijnIndex})
	case token.SuspendedDefaultArguments:
		return New(&SuspendedDefaultArguments{Token: tok})
	case token.OpenSymbol:
		return New(&Group{Open: &tok}).WithError(StructuralError, msgUnmatchedDelimiter)
	case token.CloseSymbol:
		return New(&Group{Close: &tok}).WithError(StructuralError, msgUnmatchedDelimiter)
	default:
		// Newline, block markers, operators, `private` and lexer errors are
		// consumed before tokens reach this point.
		msg := fmt.Sprintf("Unexpected token: %s %q", tok.Kind, tok.Text())
		placeholder := tok
		placeholder.Kind = token.Ident
		placeholder.IsType, placeholder.IsFree = false, false
		return New(&Ident{Token: placeholder}).WithError(StructuralError, msg)
	}
}

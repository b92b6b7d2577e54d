// Package token defines the terminals a syntax tree is built from.
// Invariants:
//   - Token.Code is a slice of the original source (no copies).
//   - Token.LeftOffset holds the whitespace and comments directly before Code,
//     so offsets and codes of a token stream tile the source with no gaps.
//   - Payload fields are meaningful only for their kinds: IsType/IsFree for
//     Ident, Operator for Operator, Base for Digits and NumberBase, Escape for
//     TextEscape.
//   - Keywords are identifiers. Only `private` has a kind of its own.
package token

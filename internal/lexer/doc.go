// Package lexer turns source text into the token stream the parser
// consumes.
//
// Every byte of the input belongs to exactly one token: to its code or to
// the offset in front of it. Offsets are spaces, tabs and `#` comments; line
// breaks are Newline tokens. The stream ends with a zero-length Newline that
// carries the file's trailing offset, followed by EOF.
//
// Problems are reported through a diag.Reporter and never stop lexing: an
// unknown byte becomes an Invalid token, an unterminated literal is closed
// with a zero-length TextEnd.
package lexer

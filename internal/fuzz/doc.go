// Package fuzztests houses Go fuzz harnesses for the lexer and the parser.
// Arbitrary input must never panic, and the resulting tree must print back
// to the input byte for byte with spans that tile it.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests

package lexer

import (
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = utf8.RuneSelf

// peekRune декодирует руну под курсором; на конце входа size == 0.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(lx.file.Text[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune сдвигает курсор на одну руну. Невалидный байт UTF-8 считается
// руной длины 1; курсор стоит на месте только в конце входа.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	step, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(err)
	}
	lx.cursor.Off += step
}

// ASCII classes, one bit each.
const (
	classIdentStart uint8 = 1 << iota
	classDigit
	classHex
)

var asciiClass = func() (t [utf8.RuneSelf]uint8) {
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= classIdentStart
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] |= classIdentStart
	}
	t['_'] |= classIdentStart
	for c := '0'; c <= '9'; c++ {
		t[c] |= classDigit | classHex
	}
	for c := 'a'; c <= 'f'; c++ {
		t[c] |= classHex
		t[c-'a'+'A'] |= classHex
	}
	return t
}()

func hasClass(b byte, class uint8) bool {
	return b < utf8.RuneSelf && asciiClass[b]&class != 0
}

func isIdentStartByte(b byte) bool    { return hasClass(b, classIdentStart) }
func isIdentContinueByte(b byte) bool { return hasClass(b, classIdentStart|classDigit) }
func isDec(b byte) bool               { return hasClass(b, classDigit) }
func isHex(b byte) bool               { return hasClass(b, classHex) }

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isIdentContinueRune also takes combining marks, so decomposed forms stay
// one identifier and can be flagged as not NFC.
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

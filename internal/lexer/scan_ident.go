package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"cstree/internal/diag"
	"cstree/internal/source"
	"cstree/internal/token"
)

// scanIdent сканирует идентификатор. `private` получает свой Kind, остальные
// ключевые слова остаются Ident: их распознаёт парсер по позиции в строке.
func (lx *Lexer) scanIdent(off source.Offset) {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if r < utf8RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			lx.scanUnknown(off)
			return
		}
		lx.bumpRune()
	}
	// хвост может содержать Unicode даже после ASCII начала
	for {
		r2, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	code := lx.cursor.CodeFrom(start)
	if code.Repr == "private" {
		lx.emitCode(token.Private, off, start)
		return
	}
	tok := lx.emitCode(token.Ident, off, start)
	first, _ := utf8.DecodeRuneInString(code.Repr)
	tok.IsType = unicode.IsUpper(first)
	tok.IsFree = first == '_'

	if !norm.NFC.IsNormalString(code.Repr) {
		lx.report(diag.LexNonNormalIdent, diag.SevWarning, code.Start, code.End(),
			"identifier is not in Unicode normalization form C")
	}
}

// scanUnknown turns one rune the lexer cannot classify into an Invalid token.
func (lx *Lexer) scanUnknown(off source.Offset) {
	start := lx.cursor.Mark()
	lx.bumpRune()
	if lx.cursor.Off == uint32(start) {
		lx.cursor.Bump()
	}
	tok := lx.emitCode(token.Invalid, off, start)
	lx.errLex(diag.LexUnknownChar, tok.Code, "unknown character")
}

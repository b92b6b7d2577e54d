package lexer

import (
	"cstree/internal/diag"
	"cstree/internal/source"
	"cstree/internal/token"
)

// scanNumber сканирует число. Префикс основания (`0x`, `0o`, `0b`) и цифры
// выдаются отдельными токенами, между ними стоит оператор-склейка нулевой
// длины. Дробная часть: `.` как десятичный оператор и ещё одна группа
// цифр; точка считается десятичной, только если вплотную окружена цифрами.
func (lx *Lexer) scanNumber(off source.Offset) {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '0' {
		if base, ok := baseOf(lx.cursor.PeekAt(1)); ok && isDigitOf(lx.cursor.PeekAt(2), base) {
			lx.cursor.Bump()
			lx.cursor.Bump()
			prefix := lx.emitCode(token.NumberBase, off, start)
			prefix.Base = base
			joiner := lx.emitEmpty(token.Operator, lx.emptyOffset())
			joiner.Operator = token.JoinerProperties()
			lx.scanDigits(lx.emptyOffset(), base)
			return
		}
	}

	lx.scanDigits(off, token.BaseNone)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		dotStart := lx.cursor.Mark()
		lx.cursor.Bump()
		dot := lx.emitCode(token.Operator, lx.emptyOffset(), dotStart)
		dot.Operator = token.DecimalProperties()
		lx.scanDigits(lx.emptyOffset(), token.BaseNone)
	}
}

func (lx *Lexer) scanDigits(off source.Offset, base token.Base) {
	start := lx.cursor.Mark()
	for isDigitOf(lx.cursor.Peek(), base) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	tok := lx.emitCode(token.Digits, off, start)
	tok.Base = base
	if base != token.BaseNone && isIdentContinueByte(lx.cursor.Peek()) {
		next := source.CodeAt(lx.file.Text, lx.cursor.Off, lx.cursor.Off+1)
		lx.errLex(diag.LexBadNumber, next, "digit out of range for the number base")
	}
}

func baseOf(b byte) (token.Base, bool) {
	switch b {
	case 'b':
		return token.BaseBinary, true
	case 'o':
		return token.BaseOctal, true
	case 'x':
		return token.BaseHexadecimal, true
	}
	return token.BaseNone, false
}

func isDigitOf(b byte, base token.Base) bool {
	switch base {
	case token.BaseBinary:
		return b == '0' || b == '1'
	case token.BaseOctal:
		return b >= '0' && b <= '7'
	case token.BaseHexadecimal:
		return isHex(b)
	}
	return isDec(b)
}

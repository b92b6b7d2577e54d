package lexer

import (
	"cstree/internal/source"
	"cstree/internal/token"
)

// scanOperator сканирует максимальную серию операторных символов.
// `,` `\` и `@` всегда одиночные; `...` даёт SuspendedDefaultArguments.
func (lx *Lexer) scanOperator(off source.Offset) {
	start := lx.cursor.Mark()
	if b := lx.cursor.Bump(); !isSingleOperator(b) {
		for {
			nb := lx.cursor.Peek()
			if !token.IsOperatorByte(nb) || isSingleOperator(nb) {
				break
			}
			lx.cursor.Bump()
		}
	}
	code := lx.cursor.CodeFrom(start)
	if code.Repr == "..." {
		lx.emitCode(token.SuspendedDefaultArguments, off, start)
		return
	}
	tok := lx.emitCode(token.Operator, off, start)
	tok.Operator = token.LookupOperator(code.Repr)
}

func isSingleOperator(b byte) bool {
	return b == ',' || b == '\\' || b == '@'
}

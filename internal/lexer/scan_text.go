package lexer

import (
	"strconv"
	"unicode/utf8"

	"cstree/internal/diag"
	"cstree/internal/source"
	"cstree/internal/token"
)

// scanTextStart открывает текстовый литерал. `"…"` это сырой текст, в `'…'`
// работают escape-последовательности и вставки `expr`. Тройная кавычка
// открывает блочный литерал.
func (lx *Lexer) scanTextStart(off source.Offset) {
	start := lx.cursor.Mark()
	quote := lx.cursor.Peek()
	if lx.cursor.HasPrefix(string([]byte{quote, quote, quote})) {
		lx.cursor.Off += 3
		lx.emitCode(token.TextStart, off, start)
		lx.push(mode{kind: modeTextBlock, quote: quote, open: uint32(start), indent: lx.lineIndent})
		return
	}
	lx.cursor.Bump()
	lx.emitCode(token.TextStart, off, start)
	lx.push(mode{kind: modeText, quote: quote, open: uint32(start)})
}

// scanText emits the next piece of the literal on top of the mode stack.
// Text tokens never have an offset: whitespace inside a literal is text.
func (lx *Lexer) scanText(m *mode) {
	if lx.cursor.EOF() {
		lx.endText(m)
		return
	}
	if n := lx.newlineLen(); n > 0 {
		if m.kind == modeText {
			lx.endText(m)
			return
		}
		lx.scanBlockNewline(m, n)
		return
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	switch {
	case m.kind == modeText && ch == m.quote:
		lx.cursor.Bump()
		lx.emitCode(token.TextEnd, lx.emptyOffset(), start)
		lx.pop()
	case m.quote == '\'' && ch == '\\':
		m.content = true
		lx.scanEscape()
	case m.quote == '\'' && ch == '`':
		m.content = true
		lx.cursor.Bump()
		lx.emitCode(token.OpenSymbol, lx.emptyOffset(), start)
		lx.push(mode{kind: modeSplice, open: uint32(start)})
	default:
		m.content = true
		lx.scanTextSection(m)
	}
}

// endText closes a literal that ran into the end of its line or of the file.
// Only single-line literals are reported: a block literal ends this way.
func (lx *Lexer) endText(m *mode) {
	if m.kind == modeText {
		lx.errLex(diag.LexUnterminatedText, source.CodeAt(lx.file.Text, m.open, lx.cursor.Off), "unterminated text literal")
	}
	lx.emitEmpty(token.TextEnd, lx.emptyOffset())
	lx.pop()
}

func (lx *Lexer) scanTextSection(m *mode) {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.newlineLen() == 0 {
		ch := lx.cursor.Peek()
		if m.kind == modeText && ch == m.quote {
			break
		}
		if m.quote == '\'' && (ch == '\\' || ch == '`') {
			break
		}
		lx.cursor.Bump()
	}
	lx.emitCode(token.TextSection, lx.emptyOffset(), start)
}

// scanBlockNewline continues a block literal onto the next line when that
// line, or the first non-blank line after it, is indented deeper than the
// line that opened the literal. Otherwise the literal ends before the break.
func (lx *Lexer) scanBlockNewline(m *mode, n uint32) {
	if !lx.blockContinues(lx.cursor.Off+n, m.indent) {
		lx.emitEmpty(token.TextEnd, lx.emptyOffset())
		lx.pop()
		return
	}
	start := lx.cursor.Mark()
	lx.cursor.Off += n
	kind := token.TextNewline
	if !m.content {
		kind = token.TextInitialNewline
	}
	m.content = true
	lx.emitCode(kind, lx.emptyOffset(), start)
}

func (lx *Lexer) blockContinues(pos uint32, indent source.VisibleOffset) bool {
	text := lx.file.Text
	for pos < lx.cursor.Limit {
		ind, blank := lx.lineIndentAt(pos)
		if !blank {
			return ind > indent
		}
		for pos < lx.cursor.Limit && text[pos] != '\n' {
			pos++
		}
		pos++ // '\n'
	}
	return false
}

// scanEscape сканирует escape-последовательность. Значение кладётся в
// Token.Escape; нераспознанная последовательность получает EscapeInvalid.
func (lx *Lexer) scanEscape() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	value := token.EscapeInvalid
	switch c := lx.cursor.Peek(); c {
	case 'n':
		value = '\n'
	case 't':
		value = '\t'
	case 'r':
		value = '\r'
	case '0':
		value = 0
	case '\\', '\'', '"', '`':
		value = rune(c)
	case 'u':
		lx.cursor.Bump()
		value = lx.scanUnicodeEscape()
	}
	switch {
	case value != token.EscapeInvalid && lx.cursor.Off == uint32(start)+1:
		lx.cursor.Bump()
	case value == token.EscapeInvalid && lx.cursor.Off == uint32(start)+1 && !lx.cursor.EOF() && lx.newlineLen() == 0:
		// неизвестный символ после `\` входит в токен
		lx.bumpRune()
	}
	tok := lx.emitCode(token.TextEscape, lx.emptyOffset(), start)
	tok.Escape = value
	if value == token.EscapeInvalid {
		lx.errLex(diag.LexBadEscape, tok.Code, "invalid escape sequence")
	}
}

// scanUnicodeEscape reads the part after `\u`: either `{hex…}` or exactly
// four hex digits.
func (lx *Lexer) scanUnicodeEscape() rune {
	digitsStart := lx.cursor.Off
	braced := lx.cursor.Eat('{')
	if braced {
		digitsStart = lx.cursor.Off
	}
	for isHex(lx.cursor.Peek()) && (braced || lx.cursor.Off-digitsStart < 4) {
		lx.cursor.Bump()
	}
	digits := lx.file.Text[digitsStart:lx.cursor.Off]
	if braced && !lx.cursor.Eat('}') {
		return token.EscapeInvalid
	}
	if digits == "" || (!braced && len(digits) != 4) || len(digits) > 6 {
		return token.EscapeInvalid
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return token.EscapeInvalid
	}
	return rune(v)
}

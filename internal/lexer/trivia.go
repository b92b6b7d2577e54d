package lexer

import (
	"cstree/internal/source"
)

const bom = "\uFEFF"

// scanOffset собирает отступ перед следующим токеном: пробелы, табы и
// комментарии `#` до конца строки. Перевод строки в отступ не входит: это
// отдельный токен Newline. BOM в начале файла тоже считается отступом.
func (lx *Lexer) scanOffset() source.Offset {
	start := lx.cursor.Mark()
	if lx.cursor.Off == 0 && lx.cursor.HasPrefix(bom) {
		lx.cursor.Off += source.StrLen(bom)
	}
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t':
			lx.cursor.Bump()
		case '#':
			lx.skipComment()
		default:
			return source.NewOffset(lx.cursor.CodeFrom(start))
		}
	}
	return source.NewOffset(lx.cursor.CodeFrom(start))
}

// skipComment consumes a comment up to, not including, the line break.
func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.newlineLen() == 0 {
		lx.cursor.Bump()
	}
}

// lineIndentAt measures the indentation of the line starting at pos and
// reports whether the line holds nothing but whitespace.
func (lx *Lexer) lineIndentAt(pos uint32) (indent source.VisibleOffset, blank bool) {
	text := lx.file.Text
	end := pos
	for end < lx.cursor.Limit && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	indent = source.NewOffset(source.CodeAt(text, pos, end)).Visible
	if end >= lx.cursor.Limit || text[end] == '\n' || (text[end] == '\r' && end+1 < lx.cursor.Limit && text[end+1] == '\n') {
		return indent, true
	}
	return indent, false
}

package lexer

import (
	"cstree/internal/diag"
	"cstree/internal/source"
	"cstree/internal/token"
)

type modeKind uint8

const (
	// modeSplice is code between backticks inside a text literal.
	modeSplice modeKind = iota
	// modeText is a single-line literal closed by its quote.
	modeText
	// modeTextBlock is a `"""` or `'''` literal that runs while the following
	// lines are indented deeper than the line that opened it.
	modeTextBlock
)

type mode struct {
	kind    modeKind
	quote   byte
	open    uint32               // position of the opening quote or backtick
	indent  source.VisibleOffset // modeTextBlock: indentation of the opening line
	content bool                 // modeTextBlock: something was emitted after the quote
}

// Lexer splits a file into tokens. Every byte of the file belongs to exactly
// one token, either to its code or to the offset in front of it, so the
// tokens concatenated in order reproduce the file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	queue  []token.Token // готовые токены, ещё не отданные через Next
	modes  []mode        // пустой стек означает обычный код

	lineStart  bool                 // следующий токен первый в строке
	lineIndent source.VisibleOffset // отступ текущей строки
	finished   bool                 // финальный Newline уже выдан
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		lineStart: true,
	}
}

// Next возвращает следующий токен. Последним идёт нулевой Newline с
// хвостовым отступом файла, после него всегда EOF.
func (lx *Lexer) Next() token.Token {
	for len(lx.queue) == 0 {
		lx.step()
	}
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	for len(lx.queue) == 0 {
		lx.step()
	}
	return lx.queue[0]
}

// All returns the remaining tokens up to and including EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) step() {
	if top := lx.top(); top != nil && top.kind != modeSplice {
		lx.scanText(top)
		return
	}
	lx.scanCode()
}

func (lx *Lexer) top() *mode {
	if len(lx.modes) == 0 {
		return nil
	}
	return &lx.modes[len(lx.modes)-1]
}

func (lx *Lexer) push(m mode) { lx.modes = append(lx.modes, m) }
func (lx *Lexer) pop()        { lx.modes = lx.modes[:len(lx.modes)-1] }

func (lx *Lexer) emit(tok token.Token) {
	lx.queue = append(lx.queue, tok)
}

// emitCode emits a token whose code runs from m to the cursor.
func (lx *Lexer) emitCode(kind token.Kind, off source.Offset, m Mark) *token.Token {
	lx.emit(token.New(kind, off, lx.cursor.CodeFrom(m)))
	return &lx.queue[len(lx.queue)-1]
}

// emitEmpty emits a zero-length token at the cursor.
func (lx *Lexer) emitEmpty(kind token.Kind, off source.Offset) *token.Token {
	pos := lx.cursor.Off
	if off.IsEmpty() {
		off = source.EmptyOffsetAt(pos)
	}
	lx.emit(token.New(kind, off, source.EmptyCodeAt(pos)))
	return &lx.queue[len(lx.queue)-1]
}

func (lx *Lexer) emptyOffset() source.Offset {
	return source.EmptyOffsetAt(lx.cursor.Off)
}

func (lx *Lexer) scanCode() {
	off := lx.scanOffset()
	if lx.cursor.EOF() {
		lx.finish(off)
		return
	}
	if n := lx.newlineLen(); n > 0 {
		if len(lx.modes) > 0 {
			off = lx.unwind(off)
		}
		start := lx.cursor.Mark()
		lx.cursor.Off += n
		lx.emitCode(token.Newline, off, start)
		lx.lineStart = true
		return
	}
	if lx.lineStart {
		lx.lineIndent = off.Visible
		lx.lineStart = false
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	switch {
	case ch == '`' && lx.top() != nil:
		lx.cursor.Bump()
		lx.emitCode(token.CloseSymbol, off, start)
		lx.pop()
	case ch == '(' || ch == '[' || ch == '{':
		lx.cursor.Bump()
		lx.emitCode(token.OpenSymbol, off, start)
	case ch == ')' || ch == ']' || ch == '}':
		lx.cursor.Bump()
		lx.emitCode(token.CloseSymbol, off, start)
	case ch == '"' || ch == '\'':
		lx.scanTextStart(off)
	case ch == '_' && !isIdentContinueByte(lx.cursor.PeekAt(1)):
		lx.cursor.Bump()
		lx.emitCode(token.Wildcard, off, start)
	case isIdentStartByte(ch):
		lx.scanIdent(off)
	case isDec(ch):
		lx.scanNumber(off)
	case token.IsOperatorByte(ch):
		lx.scanOperator(off)
	case ch >= utf8RuneSelf:
		lx.scanIdent(off)
	default:
		lx.scanUnknown(off)
	}
}

// finish closes whatever is still open and ends the stream.
func (lx *Lexer) finish(off source.Offset) {
	if len(lx.modes) > 0 {
		off = lx.unwind(off)
	}
	if !lx.finished {
		lx.finished = true
		lx.emitEmpty(token.Newline, off)
		return
	}
	lx.emitEmpty(token.EOF, lx.emptyOffset())
}

// unwind closes open splices and texts at the cursor with zero-length
// tokens. The first token emitted takes off; the returned offset is what is
// left for the token that follows.
func (lx *Lexer) unwind(off source.Offset) source.Offset {
	for len(lx.modes) > 0 {
		m := lx.top()
		switch m.kind {
		case modeSplice:
			lx.errLex(diag.LexUnterminatedText, source.CodeAt(lx.file.Text, m.open, lx.cursor.Off), "unterminated text splice")
			lx.emitEmpty(token.CloseSymbol, off)
		case modeText:
			lx.errLex(diag.LexUnterminatedText, source.CodeAt(lx.file.Text, m.open, lx.cursor.Off), "unterminated text literal")
			lx.emitEmpty(token.TextEnd, off)
		case modeTextBlock:
			lx.emitEmpty(token.TextEnd, off)
		}
		off = lx.emptyOffset()
		lx.pop()
	}
	return off
}

// newlineLen returns the length of the line break at the cursor, or 0.
func (lx *Lexer) newlineLen() uint32 {
	switch lx.cursor.Peek() {
	case '\n':
		return 1
	case '\r':
		if lx.cursor.PeekAt(1) == '\n' {
			return 2
		}
	}
	return 0
}

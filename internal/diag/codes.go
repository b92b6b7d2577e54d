package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo             Code = 1000
	LexUnknownChar      Code = 1001
	LexUnterminatedText Code = 1002
	LexBadEscape        Code = 1003
	LexBadNumber        Code = 1004
	LexNonNormalIdent   Code = 1005

	// Синтаксические: по одному коду на класс ошибки в дереве
	SynInfo          Code = 2000
	SynStructural    Code = 2001
	SynOperatorArity Code = 2002
	SynSemanticShape Code = 2003

	// I/O
	IOLoadFileError Code = 4001
	IOReadDirError  Code = 4002
	IOCacheError    Code = 4003

	// Инварианты дерева
	CstInfo         Code = 5000
	CstRoundTrip    Code = 5001
	CstSpanCoverage Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	LexInfo:             "Lexical information",
	LexUnknownChar:      "Unknown character",
	LexUnterminatedText: "Unterminated text literal",
	LexBadEscape:        "Invalid escape sequence",
	LexBadNumber:        "Malformed number",
	LexNonNormalIdent:   "Identifier is not in NFC form",
	SynInfo:             "Syntax information",
	SynStructural:       "Structural error",
	SynOperatorArity:    "Operator arity error",
	SynSemanticShape:    "Operand shape error",
	IOLoadFileError:     "I/O load file error",
	IOReadDirError:      "I/O read directory error",
	IOCacheError:        "Check cache error",
	CstInfo:             "Tree information",
	CstRoundTrip:        "Tree does not reproduce the source",
	CstSpanCoverage:     "Tree spans do not tile the source",
	ObsInfo:             "Observability information",
	ObsTimings:          "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CST%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

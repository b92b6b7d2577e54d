package token

// Keyword identifies an identifier that heads a multi-segment construct.
type Keyword uint8

const (
	NoKeyword Keyword = iota
	KwIf
	KwThen
	KwElse
	KwCase
	KwOf
	KwType
	KwPolyglot
	KwFrom
	KwImport
	KwExport
	KwAll
	KwAs
	KwHiding
	KwForeign
)

var keywords = map[string]Keyword{
	"if":       KwIf,
	"then":     KwThen,
	"else":     KwElse,
	"case":     KwCase,
	"of":       KwOf,
	"type":     KwType,
	"polyglot": KwPolyglot,
	"from":     KwFrom,
	"import":   KwImport,
	"export":   KwExport,
	"all":      KwAll,
	"as":       KwAs,
	"hiding":   KwHiding,
	"foreign":  KwForeign,
}

// LookupKeyword returns the keyword spelled by ident.
func LookupKeyword(ident string) (Keyword, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keyword returns the keyword this token spells, or NoKeyword.
func (t Token) Keyword() Keyword {
	if t.Kind != Ident {
		return NoKeyword
	}
	return keywords[t.Code.Repr]
}

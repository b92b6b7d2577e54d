package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is a byte sequence the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is a line break: "\n", "\r\n", or the zero-length newline that
	// closes the input.
	Newline
	// OpenSymbol is an opening bracket or a splice-opening backtick.
	OpenSymbol
	// CloseSymbol is a closing bracket or a splice-closing backtick.
	CloseSymbol
	// BlockStart and BlockEnd are zero-length indentation markers.
	BlockStart
	BlockEnd
	// Wildcard is `_`.
	Wildcard
	// SuspendedDefaultArguments is `...`.
	SuspendedDefaultArguments
	Ident
	Operator
	Digits
	// NumberBase is a base prefix such as `0x`.
	NumberBase
	// Private is the `private` keyword.
	Private
	TextStart
	TextEnd
	TextSection
	TextEscape
	TextInitialNewline
	TextNewline
)

var kindNames = [...]string{
	Invalid:                   "Invalid",
	EOF:                       "EOF",
	Newline:                   "Newline",
	OpenSymbol:                "OpenSymbol",
	CloseSymbol:               "CloseSymbol",
	BlockStart:                "BlockStart",
	BlockEnd:                  "BlockEnd",
	Wildcard:                  "Wildcard",
	SuspendedDefaultArguments: "SuspendedDefaultArguments",
	Ident:                     "Ident",
	Operator:                  "Operator",
	Digits:                    "Digits",
	NumberBase:                "NumberBase",
	Private:                   "Private",
	TextStart:                 "TextStart",
	TextEnd:                   "TextEnd",
	TextSection:               "TextSection",
	TextEscape:                "TextEscape",
	TextInitialNewline:        "TextInitialNewline",
	TextNewline:               "TextNewline",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsText reports whether k is part of a text literal.
func (k Kind) IsText() bool {
	return k >= TextStart && k <= TextNewline
}

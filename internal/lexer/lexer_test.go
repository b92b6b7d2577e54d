package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"cstree/internal/diag"
	"cstree/internal/lexer"
	"cstree/internal/source"
	"cstree/internal/token"
)

// lex прогоняет лексер по строке и собирает токены до EOF включительно
func lex(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cst", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	toks := lx.All()
	if got := concat(toks); got != input {
		t.Fatalf("tokens do not reproduce input:\n got: %q\nwant: %q", got, input)
	}
	return toks, bag
}

func concat(toks []token.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.LeftOffset.Code.Repr)
		sb.WriteString(tok.Code.Repr)
	}
	return sb.String()
}

// describe renders tokens as `Kind:code`, dropping the closing Newline and EOF.
func describe(toks []token.Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks[:len(toks)-2] {
		parts = append(parts, fmt.Sprintf("%s:%s", tok.Kind, tok.Code.Repr))
	}
	return strings.Join(parts, " ")
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"idents", "foo Bar _x", "Ident:foo Ident:Bar Ident:_x"},
		{"wildcard", "f _ ...", "Ident:f Wildcard:_ SuspendedDefaultArguments:..."},
		{"private", "private x", "Private:private Ident:x"},
		{"brackets", "([{}])", "OpenSymbol:( OpenSymbol:[ OpenSymbol:{ CloseSymbol:} CloseSymbol:] CloseSymbol:)"},
		{"operator runs", "a+-b <= c", "Ident:a Operator:+- Ident:b Operator:<= Ident:c"},
		{"single operators", "a,,b \\x @Foo", "Ident:a Operator:, Operator:, Ident:b Operator:\\ Ident:x Operator:@ Ident:Foo"},
		{"autoscope", "..True", "Operator:.. Ident:True"},
		{"digits", "12 1_000", "Digits:12 Digits:1_000"},
		{"decimal", "10.25", "Digits:10 Operator:. Digits:25"},
		{"dot without fraction", "x.y 1.", "Ident:x Operator:. Ident:y Digits:1 Operator:."},
		{"base", "0xFF", "NumberBase:0x Operator: Digits:FF"},
		{"base without digits", "0x", "Digits:0 Ident:x"},
		{"newlines", "a\r\nb\nc", "Ident:a Newline:\r\n Ident:b Newline:\n Ident:c"},
		{"unicode ident", "größe", "Ident:größe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lex(t, tt.input)
			if got := describe(toks); got != tt.want {
				t.Fatalf("tokens:\n got: %s\nwant: %s", got, tt.want)
			}
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", codes(bag))
			}
		})
	}
}

func TestTokenProperties(t *testing.T) {
	toks, _ := lex(t, "Foo _bar 0b101 = a")
	if !toks[0].IsType || toks[0].IsFree {
		t.Fatalf("Foo: IsType=%v IsFree=%v", toks[0].IsType, toks[0].IsFree)
	}
	if toks[1].IsType || !toks[1].IsFree {
		t.Fatalf("_bar: IsType=%v IsFree=%v", toks[1].IsType, toks[1].IsFree)
	}
	if toks[2].Base != token.BaseBinary || toks[4].Base != token.BaseBinary {
		t.Fatalf("binary number bases: %v %v", toks[2].Base, toks[4].Base)
	}
	if !toks[3].Operator.IsTokenJoiner() || toks[3].LengthIncludingWhitespace() != 0 {
		t.Fatalf("expected zero-length joiner, got %+v", toks[3])
	}
	if !toks[5].Operator.IsAssignment() {
		t.Fatalf("`=` should be an assignment operator")
	}
}

func TestOffsets(t *testing.T) {
	toks, _ := lex(t, "  a \t# note\n\tb  ")
	if got := toks[0].LeftOffset.Code.Repr; got != "  " {
		t.Fatalf("first offset = %q", got)
	}
	if got := toks[1].LeftOffset.Code.Repr; got != " \t# note" {
		t.Fatalf("comment should be part of the newline's offset, got %q", got)
	}
	if toks[2].LeftOffset.Visible != source.TabWidth {
		t.Fatalf("tab width = %d", toks[2].LeftOffset.Visible)
	}
	final := toks[len(toks)-2]
	if final.Kind != token.Newline || final.Len() != 0 || final.LeftOffset.Code.Repr != "  " {
		t.Fatalf("final newline should carry trailing offset: %+v", final)
	}
	if eof := toks[len(toks)-1]; eof.Kind != token.EOF || eof.LengthIncludingWhitespace() != 0 {
		t.Fatalf("unexpected EOF token: %+v", eof)
	}
}

func TestBOMIsOffset(t *testing.T) {
	toks, _ := lex(t, "\uFEFFmain")
	if toks[0].Kind != token.Ident || toks[0].LeftOffset.Len() != 3 || toks[0].LeftOffset.Visible != 0 {
		t.Fatalf("unexpected first token: %+v", toks[0])
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"raw", `"a\n"`, `TextStart:" TextSection:a\n TextEnd:"`},
		{"empty", `''`, `TextStart:' TextEnd:'`},
		{"escapes", `'a\tb'`, `TextStart:' TextSection:a TextEscape:\t TextSection:b TextEnd:'`},
		{"splice", "'x = `x + 1`!'", "TextStart:' TextSection:x =  OpenSymbol:` Ident:x Operator:+ Digits:1 CloseSymbol:` TextSection:! TextEnd:'"},
		{"nested text", "'`'in'`'", "TextStart:' OpenSymbol:` TextStart:' TextSection:in TextEnd:' CloseSymbol:` TextEnd:'"},
		{"other quote", `'say "hi"'`, `TextStart:' TextSection:say "hi" TextEnd:'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lex(t, tt.input)
			if got := describe(toks); got != tt.want {
				t.Fatalf("tokens:\n got: %s\nwant: %s", got, tt.want)
			}
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", codes(bag))
			}
		})
	}
}

func TestEscapeValues(t *testing.T) {
	toks, bag := lex(t, `'\n\u{1F600}\u00e9\q'`)
	want := []rune{'\n', 0x1F600, 0xE9, token.EscapeInvalid}
	var got []rune
	for _, tok := range toks {
		if tok.Kind == token.TextEscape {
			got = append(got, tok.Escape)
		}
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("escapes = %v, want %v", got, want)
	}
	if c := codes(bag); len(c) != 1 || c[0] != diag.LexBadEscape {
		t.Fatalf("diagnostics = %v", c)
	}
}

func TestUnterminatedText(t *testing.T) {
	toks, bag := lex(t, "'abc\nx")
	if got := describe(toks); got != "TextStart:' TextSection:abc TextEnd: Newline:\n Ident:x" {
		t.Fatalf("tokens: %s", got)
	}
	if c := codes(bag); len(c) != 1 || c[0] != diag.LexUnterminatedText {
		t.Fatalf("diagnostics = %v", c)
	}
	items := bag.Items()
	if items[0].Primary.Start != 0 || items[0].Primary.End != 4 {
		t.Fatalf("range = %s", items[0].Primary)
	}
}

func TestUnterminatedSplice(t *testing.T) {
	toks, bag := lex(t, "'a `b  ")
	want := "TextStart:' TextSection:a  OpenSymbol:` Ident:b CloseSymbol: TextEnd:"
	if got := describe(toks); got != want {
		t.Fatalf("tokens:\n got: %s\nwant: %s", got, want)
	}
	if bag.Len() != 2 {
		t.Fatalf("expected splice and text to be reported, got %v", codes(bag))
	}
}

func TestBlockText(t *testing.T) {
	input := "x = '''\n    a\n\n    b `c`\ny"
	toks, bag := lex(t, input)
	want := "Ident:x Operator:= TextStart:''' TextInitialNewline:\n TextSection:    a TextNewline:\n TextNewline:\n " +
		"TextSection:    b  OpenSymbol:` Ident:c CloseSymbol:` TextEnd: Newline:\n Ident:y"
	if got := describe(toks); got != want {
		t.Fatalf("tokens:\n got: %q\nwant: %q", got, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("block text should not be reported: %v", codes(bag))
	}
}

func TestBlockTextWithLeadingContent(t *testing.T) {
	input := "  f \"\"\"head\n      tail\n  g"
	toks, _ := lex(t, input)
	want := "Ident:f TextStart:\"\"\" TextSection:head TextNewline:\n TextSection:      tail TextEnd: Newline:\n Ident:g"
	if got := describe(toks); got != want {
		t.Fatalf("tokens:\n got: %q\nwant: %q", got, want)
	}
}

func TestUnknownCharacter(t *testing.T) {
	toks, bag := lex(t, "a ; b")
	if toks[1].Kind != token.Invalid || toks[1].Text() != ";" {
		t.Fatalf("expected Invalid `;`, got %+v", toks[1])
	}
	if c := codes(bag); len(c) != 1 || c[0] != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %v", c)
	}
}

func TestNonNormalizedIdentifier(t *testing.T) {
	toks, bag := lex(t, "cafe\u0301")
	if toks[0].Kind != token.Ident || toks[0].Text() != "cafe\u0301" {
		t.Fatalf("unexpected token %+v", toks[0])
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexNonNormalIdent || items[0].Severity != diag.SevWarning {
		t.Fatalf("diagnostics = %v", items)
	}
}

func TestBadDigitForBase(t *testing.T) {
	_, bag := lex(t, "0b102")
	if c := codes(bag); len(c) != 1 || c[0] != diag.LexBadNumber {
		t.Fatalf("diagnostics = %v", c)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.cst", []byte("a b"))), lexer.Options{})
	if p := lx.Peek(); p.Text() != "a" {
		t.Fatalf("peek = %q", p.Text())
	}
	if n := lx.Next(); n.Text() != "a" {
		t.Fatalf("next = %q", n.Text())
	}
	lx.All()
	if again := lx.Next(); again.Kind != token.EOF {
		t.Fatalf("after EOF got %s", again.Kind)
	}
}

package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"cstree/internal/source"
	"cstree/internal/token"
)

// TokenOutput is one token of `tokenize --format json`.
type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Offset string `json:"offset,omitempty"`
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
}

// tokenOutputs converts tokens up to and including the first EOF.
func tokenOutputs(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text(),
			Offset: tok.LeftOffset.Code.Repr,
			Start:  tok.Start(),
			End:    tok.Code.End(),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty печатает по токену на строку: номер, вид, текст,
// позиция и отступ слева, если он есть. Колонка вида выравнивается по
// самому длинному имени.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, file source.FileID) error {
	rows := tokenOutputs(tokens)
	kindWidth := 0
	for _, r := range rows {
		kindWidth = max(kindWidth, runewidth.StringWidth(r.Kind))
	}

	var b strings.Builder
	for i, r := range rows {
		start, end := fs.Resolve(source.Range{File: file, Start: r.Start, End: r.End})
		fmt.Fprintf(&b, "%3d: %s", i+1, runewidth.FillRight(r.Kind, kindWidth))
		if r.Text != "" {
			fmt.Fprintf(&b, " %q", r.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if r.Offset != "" {
			fmt.Fprintf(&b, " (offset: %q)", r.Offset)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutputs(tokens))
}

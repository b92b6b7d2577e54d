package fuzztests

import (
	"testing"

	"cstree/internal/diag"
	"cstree/internal/lexer"
	"cstree/internal/source"
	"cstree/internal/token"
)

// FuzzLexerTokens checks that the token stream terminates and that offsets
// and code of all tokens concatenate back to the input.
func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.enso", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

		var text []byte
		for n := 0; ; n++ {
			if n > len(input)*4+16 {
				t.Fatalf("lexer does not terminate on %q", input)
			}
			tok := lx.Next()
			text = append(text, tok.LeftOffset.Code.Repr...)
			text = append(text, tok.Code.Repr...)
			if tok.Kind == token.EOF {
				break
			}
		}
		if string(text) != file.Text {
			t.Fatalf("tokens print %q, input %q", text, file.Text)
		}
	})
}

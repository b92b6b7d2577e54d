package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// languageSeeds cover constructs the lexer and parser handle specially.
var languageSeeds = []string{
	"",
	"\n",
	"x = 1",
	"f a b = a + b\n",
	"main =\n    x = 1\n    x\n",
	"main =\n\tx\n  y\n",
	"a -> b -> c",
	"-x . f",
	"(a",
	"a)",
	"[1, 2, , 3]",
	"'a `b` c'",
	"'''\n    text\n  less\n",
	"\"\\q\"",
	"x = a + * b",
	"a ? b",
	"~Foo",
	"type T\n    A\n    B x\n",
	"if a then b else c",
	"case x of\n    1 -> a\n    _ -> b\n",
	"import A.B as C\nfrom D import e, f\n",
	"foreign js f = 'body'",
	"## doc\nf = 1\n",
	"x = 1 # comment\r\n",
	"@Annotation 1\nf = 2",
	"0x_FF 1_000 2.5e-3",
	"\u00e9t\u00e9 = 1",
	"e\u0301 = 2",
	"\x00\xff\xfe",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.enso файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".enso" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

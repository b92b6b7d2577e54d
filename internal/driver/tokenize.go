package driver

import (
	"context"

	"cstree/internal/diag"
	"cstree/internal/lexer"
	"cstree/internal/source"
	"cstree/internal/token"
	"cstree/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it up to and including EOF.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(ctx, fs, fileID, maxDiagnostics), nil
}

// TokenizeFile lexes a file already in fs.
func TokenizeFile(ctx context.Context, fs *source.FileSet, id source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(id)
	span, _ := trace.Start(ctx, trace.ScopePass, "tokenize")
	defer span.End(file.Path)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	tokens := lx.All()
	span.WithExtra("tokens", itoa(len(tokens)))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}

package parser

import (
	"cstree/internal/diag"
	"cstree/internal/lexer"
	"cstree/internal/source"
	"cstree/internal/token"
	"cstree/internal/tree"
)

// Options configures ParseFile.
type Options struct {
	Reporter diag.Reporter // лексер и парсер пишут сюда; nil отключает диагностику
}

// ParseFile lexes and parses one file. The returned tree covers every byte of
// the file: its Code() is the file text.
func ParseFile(file *source.File, opts Options) *tree.Tree {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	root := Parse(lx.All())
	if opts.Reporter != nil {
		ReportProblems(opts.Reporter, file.ID, root)
	}
	return root
}

// Parse builds the tree of a complete token stream, as returned by
// lexer.Lexer.All. Parsing never fails: malformed input ends up under
// Invalid nodes.
func Parse(tokens []token.Token) *tree.Tree {
	return tree.BodyFromLines(parseLines(nest(splitLines(tokens))))
}

// ReportProblems forwards every problem recorded in t to r.
func ReportProblems(r diag.Reporter, file source.FileID, t *tree.Tree) {
	for _, p := range tree.Problems(t) {
		rng := source.Range{File: file, Start: p.Start, End: p.End}
		r.Report(problemCode(p.Error.Kind), diag.SevError, rng, p.Error.Message, nil)
	}
}

func problemCode(kind tree.ErrorKind) diag.Code {
	switch kind {
	case tree.StructuralError:
		return diag.SynStructural
	case tree.OperatorArityError:
		return diag.SynOperatorArity
	case tree.SemanticShapeError:
		return diag.SynSemanticShape
	default:
		return diag.SynInfo
	}
}

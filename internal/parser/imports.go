package parser

import (
	"cstree/internal/token"
	"cstree/internal/tree"
)

// Порядок сегментов фиксирован: polyglot, from, import|export, all, as, hiding.
var importRank = map[token.Keyword]int{
	token.KwPolyglot: 0,
	token.KwFrom:     1,
	token.KwImport:   2,
	token.KwExport:   2,
	token.KwAll:      3,
	token.KwAs:       4,
	token.KwHiding:   5,
}

const msgMalformedImport = "Expected `[polyglot <lang>] [from <module>] import|export <names> [all] [as <name>] [hiding <names>]`."

// importExport reads an import or export statement. A statement that does
// not fit the fixed segment order is kept whole under an Invalid node.
func importExport(items []item) *tree.Tree {
	segs, ok := importSegments(items)
	if !ok {
		return parseExpression(items).WithError(tree.StructuralError, msgMalformedImport)
	}
	var (
		polyglot, from, as, hiding *tree.MultiSegmentAppSegment
		main                       *tree.MultiSegmentAppSegment
		all                        *token.Token
		export                     bool
	)
	for _, s := range segs {
		built := &tree.MultiSegmentAppSegment{Header: s.header, Body: parseExpression(s.body)}
		switch s.header.Keyword() {
		case token.KwPolyglot:
			polyglot = built
		case token.KwFrom:
			from = built
		case token.KwImport:
			main = built
		case token.KwExport:
			main, export = built, true
		case token.KwAll:
			header := s.header
			all = &header
		case token.KwAs:
			as = built
		case token.KwHiding:
			hiding = built
		}
	}
	if main == nil || (export && polyglot != nil) {
		return parseExpression(items).WithError(tree.StructuralError, msgMalformedImport)
	}
	if export {
		return tree.New(&tree.Export{From: from, Export: *main, All: all, As: as, Hiding: hiding})
	}
	return tree.New(&tree.Import{Polyglot: polyglot, From: from, Import: *main, All: all, As: as, Hiding: hiding})
}

// importSegments splits items at the statement keywords. `all` is a keyword
// only right after `import` or `export`, and takes no body.
func importSegments(items []item) ([]segment, bool) {
	var segs []segment
	depth := 0
	for _, it := range items {
		if it.tok != nil {
			switch it.tok.Kind {
			case token.OpenSymbol:
				depth++
			case token.CloseSymbol:
				depth--
			}
			kw := it.tok.Keyword()
			rank, isKw := importRank[kw]
			if kw == token.KwAll {
				isKw = len(segs) > 0 && importRank[segs[len(segs)-1].header.Keyword()] == 2 &&
					len(segs[len(segs)-1].body) == 0
			}
			if depth == 0 && isKw {
				if len(segs) > 0 && importRank[segs[len(segs)-1].header.Keyword()] >= rank {
					return nil, false
				}
				segs = append(segs, segment{header: *it.tok})
				continue
			}
		}
		if len(segs) == 0 {
			return nil, false
		}
		cur := &segs[len(segs)-1]
		if cur.header.Keyword() == token.KwAll {
			return nil, false
		}
		cur.body = append(cur.body, it)
	}
	return segs, true
}

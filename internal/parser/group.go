package parser

import (
	"fortio.org/safecast"

	"cstree/internal/token"
	"cstree/internal/tree"
)

// matchClose returns the index of the bracket closing items[0], or -1 when
// the line ends first or the bracket is closed by a different kind.
func matchClose(items []item) int {
	depth := 0
	for i, it := range items {
		if it.tok == nil {
			continue
		}
		switch it.tok.Kind {
		case token.OpenSymbol:
			depth++
		case token.CloseSymbol:
			depth--
			if depth == 0 {
				if closes(items[0].tok.Text(), it.tok.Text()) {
					return i
				}
				return -1
			}
		}
	}
	return -1
}

func closes(open, closeSym string) bool {
	switch open {
	case "(":
		return closeSym == ")"
	case "[":
		return closeSym == "]"
	case "{":
		return closeSym == "}"
	case "`":
		// незакрытая вставка закрывается пустым токеном
		return closeSym == "`" || closeSym == ""
	}
	return false
}

// group reads a bracketed expression starting at items[0] and returns it
// with the number of items it took. An unmatched bracket is a single item.
func group(items []item) (*tree.Tree, int) {
	open := *items[0].tok
	end := matchClose(items)
	if end < 0 || open.Text() == "`" {
		return tree.ToAST(open), 1
	}
	closeTok := *items[end].tok
	inner := items[1:end]
	switch open.Text() {
	case "[":
		first, rest := delimited(inner)
		return tree.New(&tree.Array{Left: open, First: first, Rest: rest, Right: closeTok}), end + 1
	case "{":
		first, rest := delimited(inner)
		return tree.New(&tree.Tuple{Left: open, First: first, Rest: rest, Right: closeTok}), end + 1
	}
	body := parseExpression(inner)
	if body != nil {
		body = bindArguments(body)
	}
	return tree.New(&tree.Group{Open: &open, Body: body, Close: &closeTok}), end + 1
}

// delimited splits the inside of an array or tuple at top-level commas.
func delimited(inner []item) (first *tree.Tree, rest []tree.OperatorDelimitedTree) {
	depth, start := 0, 0
	var comma *token.Token
	flush := func(end int) {
		body := parseExpression(inner[start:end])
		if comma == nil {
			first = body
			return
		}
		rest = append(rest, tree.OperatorDelimitedTree{Operator: *comma, Body: body})
	}
	for i, it := range inner {
		if it.tok == nil {
			continue
		}
		switch it.tok.Kind {
		case token.OpenSymbol:
			depth++
		case token.CloseSymbol:
			depth--
		case token.Operator:
			if depth == 0 && it.tok.Operator.IsSequence() {
				flush(i)
				comma, start = it.tok, i+1
			}
		}
	}
	flush(len(inner))
	return first, rest
}

// bindArguments wraps the body of a group that has operator sections or
// wildcards in it. Sections make an OprSectionBoundary counting the missing
// operands; wildcards make a TemplateFunction and are numbered left to right.
// Nested brackets are scopes of their own.
func bindArguments(body *tree.Tree) *tree.Tree {
	sections := 0
	var wildcards []*tree.Wildcard
	tree.VisitTrees(body, func(n *tree.Tree) bool {
		switch v := n.Variant.(type) {
		case *tree.Group, *tree.Array, *tree.Tuple, *tree.OprSectionBoundary, *tree.TemplateFunction:
			return false
		case *tree.Wildcard:
			wildcards = append(wildcards, v)
		case *tree.OprApp:
			if op, ok := v.Opr.Ok(); ok && op.Operator.CanFormSection() {
				if v.LHS == nil {
					sections++
				}
				if v.RHS == nil {
					sections++
				}
			}
		case *tree.UnaryOprApp:
			if v.RHS == nil && v.Opr.Operator.CanFormSection() {
				sections++
			}
		}
		return true
	})
	if sections > 0 {
		body = tree.New(&tree.OprSectionBoundary{Arguments: count(sections), AST: body})
	}
	if len(wildcards) > 0 {
		for i, w := range wildcards {
			w.DeBruijnIndex = i
		}
		body = tree.New(&tree.TemplateFunction{Arguments: count(len(wildcards)), AST: body})
	}
	return body
}

func count(n int) uint32 {
	c, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return c
}

// textLiteral assembles a literal from its TextStart up to its TextEnd.
// Splices are parsed as expressions.
func textLiteral(items []item) (*tree.Tree, int) {
	lit := tree.ToAST(*items[0].tok)
	for i := 1; i < len(items); i++ {
		tok := items[i].tok
		if tok == nil {
			return lit, i
		}
		switch tok.Kind {
		case token.TextSection, token.TextEscape, token.TextNewline, token.TextInitialNewline:
			lit = tree.JoinText(lit, tree.ToAST(*tok))
		case token.TextEnd:
			return tree.JoinText(lit, tree.ToAST(*tok)), i + 1
		case token.OpenSymbol:
			end := matchClose(items[i:])
			if end < 0 {
				return lit, i
			}
			splice := &tree.TextSplice{
				Open:       *tok,
				Expression: parseExpression(items[i+1 : i+end]),
				Close:      *items[i+end].tok,
			}
			lit = tree.JoinText(lit, tree.New(&tree.TextLiteral{Elements: []tree.TextElement{splice}}))
			i += end
		default:
			return lit, i
		}
	}
	return lit, len(items)
}

package parser

import (
	"slices"

	"cstree/internal/token"
	"cstree/internal/tree"
)

// segment is a keyword together with the items up to the next keyword of
// the same construct.
type segment struct {
	header token.Token
	body   []item
}

// splitSegments cuts items (items[0] being the opening keyword) at the
// keywords of expected, which must appear in that order. A nested opener
// claims keywords up to the last of expected for itself.
func splitSegments(items []item, opener token.Keyword, expected ...token.Keyword) []segment {
	segs := []segment{{header: *items[0].tok}}
	last := expected[len(expected)-1]
	depth, nested := 0, 0
	for _, it := range items[1:] {
		if it.tok != nil {
			switch it.tok.Kind {
			case token.OpenSymbol:
				depth++
			case token.CloseSymbol:
				depth--
			}
			if kw := it.tok.Keyword(); depth == 0 && kw != token.NoKeyword {
				switch {
				case kw == opener:
					nested++
				case nested > 0:
					if kw == last {
						nested--
					}
				default:
					if j := slices.Index(expected, kw); j >= 0 {
						segs = append(segs, segment{header: *it.tok})
						expected = expected[j+1:]
						continue
					}
				}
			}
		}
		cur := &segs[len(segs)-1]
		cur.body = append(cur.body, it)
	}
	return segs
}

func multiSegment(segs []segment) *tree.Tree {
	app := &tree.MultiSegmentApp{Segments: make([]tree.MultiSegmentAppSegment, 0, len(segs))}
	for _, s := range segs {
		app.Segments = append(app.Segments, tree.MultiSegmentAppSegment{Header: s.header, Body: parseExpression(s.body)})
	}
	return tree.New(app)
}

// ifThenElse reads `if c then a` and `if c then a else b`.
func ifThenElse(items []item) *tree.Tree {
	segs := splitSegments(items, token.KwIf, token.KwThen, token.KwElse)
	app := multiSegment(segs)
	if len(segs) < 2 || segs[1].header.Keyword() != token.KwThen {
		return app.WithError(tree.StructuralError, "Expected `then` after the condition of `if`.")
	}
	return app
}

// caseOf reads `case x of` followed by branches, one per line of the block.
// A branch may also follow `of` on the same line.
func caseOf(items []item) *tree.Tree {
	segs := splitSegments(items, token.KwCase, token.KwOf)
	if len(segs) < 2 {
		return multiSegment(segs).WithError(tree.StructuralError, "Expected `of` after the expression of `case`.")
	}
	c := &tree.CaseOf{Case: segs[0].header, Expression: parseExpression(segs[0].body), Of: segs[1].header}
	var (
		inline []item
		block  []line
	)
	for _, it := range segs[1].body {
		if it.tok == nil {
			block = it.block
			continue
		}
		inline = append(inline, it)
	}
	if len(inline) > 0 {
		c.Cases = append(c.Cases, tree.CaseLine{Case: caseBranch(inline)})
	}
	for _, l := range block {
		nl := l.newline
		cl := tree.CaseLine{Newline: &nl}
		if !l.blank() {
			cl.Case = caseBranch(lineItems(l))
		}
		c.Cases = append(c.Cases, cl)
	}
	return tree.New(c)
}

// caseBranch reads `pattern -> expression`.
func caseBranch(items []item) *tree.Case {
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
		case token.Operator:
			if depth == 0 && it.tok.Operator.IsArrow() {
				arrow := *it.tok
				return &tree.Case{
					Pattern:    parseExpression(items[:i]),
					Arrow:      &arrow,
					Expression: parseExpression(items[i+1:]),
				}
			}
		}
	}
	expr := parseExpression(items)
	return &tree.Case{Expression: expr.WithError(tree.StructuralError, "Expected `->` in a case branch.")}
}

// lambda reads `\x -> body`: everything after the backslash.
func lambda(opr token.Token, rest []item) *tree.Tree {
	body := parseExpression(rest)
	if body == nil {
		return tree.ApplyUnaryOperator(opr, nil)
	}
	return tree.New(&tree.Lambda{Operator: opr, Arrow: body})
}

func privateDefinition(l line) *tree.Tree {
	rest := line{tokens: l.tokens[1:], children: l.children}
	var body *tree.Tree
	switch {
	case !rest.blank():
		body = parseLine(rest)
	case len(rest.children) > 0:
		body = parseBlock(rest.children)
	}
	return tree.New(&tree.Private{Keyword: l.tokens[0], Body: body})
}

func isTypeName(t *tree.Tree) bool {
	ident, ok := t.Variant.(*tree.Ident)
	return ok && ident.Token.IsType
}

func isPlainName(t *tree.Tree) bool {
	ident, ok := t.Variant.(*tree.Ident)
	return ok && !ident.Token.IsType
}

// typeDefinition reads `type Name params` and its body of constructors and
// statements.
func typeDefinition(l line) *tree.Tree {
	header := parseExpression(tokenItems(l.tokens[1:]))
	if header == nil {
		return parseExpression(lineItems(l)).WithError(tree.StructuralError, "Expected a type name after `type`.")
	}
	name, params, ok := tree.SplitDefinition(header, isTypeName)
	if !ok {
		return parseExpression(lineItems(l)).WithError(tree.StructuralError, "Expected a type name after `type`.")
	}
	nameTok, _ := tree.IdentToken(name)
	def := &tree.TypeDef{Keyword: l.tokens[0], Name: nameTok, Params: params}
	for _, c := range l.children {
		def.Body = append(def.Body, tree.Line{Newline: c.newline, Expression: typeBodyLine(c)})
	}
	def.Body = foldAnnotations(def.Body)
	for i := range def.Body {
		if def.Body[i].Expression != nil {
			def.Body[i].Expression = tree.ExpressionToStatement(def.Body[i].Expression)
		}
	}
	return tree.New(def)
}

func typeBodyLine(c line) *tree.Tree {
	if c.blank() {
		return nil
	}
	if first := c.tokens[0]; first.Kind == token.Ident && first.IsType {
		if t := constructorDefinition(c); t != nil {
			return t
		}
	}
	return parseLine(c)
}

// constructorDefinition reads `Name args` with the arguments continued one
// per line in the children. It returns nil for lines of another shape.
func constructorDefinition(c line) *tree.Tree {
	expr := parseExpression(tokenItems(c.tokens))
	head, args, ok := tree.SplitDefinition(expr, isTypeName)
	if !ok {
		return nil
	}
	nameTok, _ := tree.IdentToken(head)
	def := &tree.ConstructorDefinition{Constructor: nameTok, Arguments: args}
	for _, a := range c.children {
		adl := tree.ArgumentDefinitionLine{Newline: a.newline}
		if !a.blank() {
			arg := tree.NewArgumentDefinition(parseExpression(lineItems(a)))
			adl.Argument = &arg
		}
		def.Block = append(def.Block, adl)
	}
	return tree.New(def)
}

// foreignFunction reads `foreign language name args = body`.
func foreignFunction(items []item) *tree.Tree {
	fn, ok := readForeign(items)
	if !ok {
		return parseExpression(items).WithError(tree.StructuralError, "Expected `foreign <language> <name> = <body>`.")
	}
	t := tree.New(fn)
	if fn.Body == nil {
		return t.WithError(tree.OperatorArityError, "Expected an expression after `=`.")
	}
	return t
}

func readForeign(items []item) (*tree.ForeignFunction, bool) {
	if len(items) < 4 || items[1].tok == nil || items[1].tok.Kind != token.Ident ||
		items[2].tok == nil || items[2].tok.Kind != token.Ident {
		return nil, false
	}
	eq := -1
	for i := 3; i < len(items); i++ {
		if tok := items[i].tok; tok != nil && tok.Kind == token.Operator && tok.Operator.IsAssignment() {
			eq = i
			break
		}
	}
	if eq < 0 {
		return nil, false
	}
	header := parseExpression(items[2:eq])
	name, args, ok := tree.SplitDefinition(header, isPlainName)
	if !ok {
		return nil, false
	}
	nameTok, _ := tree.IdentToken(name)
	return &tree.ForeignFunction{
		Foreign:  *items[0].tok,
		Language: *items[1].tok,
		Name:     nameTok,
		Args:     args,
		Equals:   *items[eq].tok,
		Body:     parseExpression(items[eq+1:]),
	}, true
}

package parser

import (
	"cstree/internal/source"
	"cstree/internal/token"
	"cstree/internal/tree"
)

// line is one source line: the newline in front of it and its tokens. The
// deeper indented lines that follow it are its children.
type line struct {
	newline  token.Token
	tokens   []token.Token
	children []line
}

func (l *line) blank() bool { return len(l.tokens) == 0 }

// indent is the visible width of the whitespace in front of the first token.
func (l *line) indent() source.VisibleOffset { return l.tokens[0].LeftOffset.Visible }

// item is an element of a line: a token, or the block of the line's children.
type item struct {
	tok   *token.Token
	block []line
}

// splitLines cuts the token stream at newlines. A file that does not start
// with a newline gets a zero-length one, so every line has its Newline.
func splitLines(tokens []token.Token) []line {
	if len(tokens) == 0 {
		return nil
	}
	var lines []line
	if tokens[0].Kind != token.Newline {
		pos := tokens[0].LeftOffset.Code.Start
		lines = append(lines, line{
			newline: token.New(token.Newline, source.EmptyOffsetAt(pos), source.EmptyCodeAt(pos)),
		})
	}
	for _, tok := range tokens {
		switch tok.Kind {
		case token.EOF:
			// лексер отдаёт EOF пустым, весь хвост уже в последнем Newline
		case token.Newline:
			lines = append(lines, line{newline: tok})
		default:
			last := &lines[len(lines)-1]
			last.tokens = append(last.tokens, tok)
		}
	}
	return lines
}

// nest moves every run of lines indented deeper than the line before them
// into that line's children. Blank lines stay in the block they are followed
// by; trailing blank lines belong to the outer block.
func nest(lines []line) []line {
	out := make([]line, 0, len(lines))
	for i := 0; i < len(lines); {
		l := lines[i]
		i++
		if l.blank() {
			out = append(out, l)
			continue
		}
		ind := l.indent()
		j := i
		for j < len(lines) && (lines[j].blank() || lines[j].indent() > ind) {
			j++
		}
		for j > i && lines[j-1].blank() {
			j--
		}
		if j > i {
			l.children = nest(lines[i:j])
		}
		out = append(out, l)
		i = j
	}
	return out
}

func lineItems(l line) []item {
	items := tokenItems(l.tokens)
	if len(l.children) > 0 {
		items = append(items, item{block: l.children})
	}
	return items
}

func tokenItems(tokens []token.Token) []item {
	items := make([]item, 0, len(tokens)+1)
	for i := range tokens {
		items = append(items, item{tok: &tokens[i]})
	}
	return items
}

func parseLines(ls []line) []tree.Line {
	out := make([]tree.Line, 0, len(ls))
	for _, l := range ls {
		out = append(out, tree.Line{Newline: l.newline, Expression: parseLine(l)})
	}
	return foldAnnotations(out)
}

// parseLine reads a line with its children. Statement keywords are only
// recognized at the start of a line.
func parseLine(l line) *tree.Tree {
	if l.blank() {
		return nil
	}
	first := l.tokens[0]
	if first.Kind == token.Private {
		return privateDefinition(l)
	}
	switch first.Keyword() {
	case token.KwType:
		return typeDefinition(l)
	case token.KwImport, token.KwExport, token.KwFrom, token.KwPolyglot:
		return importExport(lineItems(l))
	case token.KwForeign:
		return foreignFunction(lineItems(l))
	}
	return parseExpression(lineItems(l))
}

// parseBlock builds the tree of an indented block. A block whose first line
// starts with a binary operator is an operator block, anything else is an
// argument block.
func parseBlock(ls []line) *tree.Tree {
	for i := range ls {
		if ls[i].blank() {
			continue
		}
		if startsOperatorLine(ls[i].tokens) {
			return operatorBlock(ls)
		}
		break
	}
	return tree.New(&tree.ArgumentBlockApplication{Arguments: parseLines(ls)})
}

func operatorBlock(ls []line) *tree.Tree {
	var (
		exprs  []tree.OperatorLine
		excess []tree.Line
	)
	for _, l := range ls {
		switch {
		case len(excess) == 0 && l.blank():
			exprs = append(exprs, tree.OperatorLine{Newline: l.newline})
		case len(excess) == 0 && startsOperatorLine(l.tokens):
			n := operatorRun(l.tokens)
			var opr tree.OperatorOrError
			if n == 1 {
				opr = tree.Operator(l.tokens[0])
			} else {
				oprs := append([]token.Token(nil), l.tokens[:n]...)
				opr = tree.OperatorOrError{Multiple: &tree.MultipleOperatorError{Operators: oprs}}
			}
			rest := line{tokens: l.tokens[n:], children: l.children}
			exprs = append(exprs, tree.OperatorLine{
				Newline:    l.newline,
				Expression: &tree.OperatorBlockExpression{Operator: opr, Expression: parseExpression(lineItems(rest))},
			})
		default:
			// после первой строки без оператора всё остальное уходит в excess
			excess = append(excess, tree.Line{Newline: l.newline, Expression: parseLine(l)})
		}
	}
	return tree.New(&tree.OperatorBlockApplication{Expressions: exprs, Excess: foldAnnotations(excess)})
}

func startsOperatorLine(tokens []token.Token) bool {
	if len(tokens) == 0 || tokens[0].Kind != token.Operator || !tokens[0].Operator.IsBinary() {
		return false
	}
	return !prefixAt(tokens, 0)
}

// operatorRun counts the operators opening an operator line. An operator
// that reads as a prefix of the following operand ends the run.
func operatorRun(tokens []token.Token) int {
	n := 1
	for n < len(tokens) && tokens[n].Kind == token.Operator && !prefixAt(tokens, n) {
		n++
	}
	return n
}

func prefixAt(tokens []token.Token, i int) bool {
	props := tokens[i].Operator
	if props.IsPrefixOnly() {
		return true
	}
	if !props.IsUnary() || i+1 >= len(tokens) {
		return false
	}
	next := tokens[i+1]
	return next.Kind != token.Operator && !next.HasLeftOffset()
}

// foldAnnotations attaches the statement following a standalone annotation
// line to that annotation. Blank lines in between become its Newlines.
func foldAnnotations(lines []tree.Line) []tree.Line {
	for i := len(lines) - 1; i >= 0; i-- {
		expr := lines[i].Expression
		if expr == nil || !awaitsStatement(expr) {
			continue
		}
		j := i + 1
		for j < len(lines) && lines[j].Expression == nil {
			j++
		}
		if j == len(lines) {
			continue
		}
		newlines := make([]token.Token, 0, j-i)
		for k := i + 1; k <= j; k++ {
			newlines = append(newlines, lines[k].Newline)
		}
		switch v := expr.Variant.(type) {
		case *tree.Annotated:
			v.Newlines, v.Expression = newlines, lines[j].Expression
		case *tree.AnnotatedBuiltin:
			v.Newlines, v.Expression = newlines, lines[j].Expression
		}
		lines[i].Expression = expr.Rebuild()
		lines = append(lines[:i+1], lines[j+1:]...)
	}
	return lines
}

func awaitsStatement(t *tree.Tree) bool {
	switch v := t.Variant.(type) {
	case *tree.Annotated:
		return v.Expression == nil && len(v.Newlines) == 0
	case *tree.AnnotatedBuiltin:
		return v.Expression == nil && len(v.Newlines) == 0
	}
	return false
}

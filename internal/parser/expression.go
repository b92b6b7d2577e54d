package parser

import (
	"cstree/internal/token"
	"cstree/internal/tree"
)

// element is an operand or an operator of a flat expression.
type element struct {
	tree *tree.Tree
	opr  *token.Token
}

func (e *element) hasLeftOffset() bool {
	if e.tree != nil {
		return !e.tree.Span.LeftOffset.IsEmpty()
	}
	return e.opr.HasLeftOffset()
}

// parseExpression reads items as one expression. It returns nil for no items.
func parseExpression(items []item) *tree.Tree {
	return resolve(elements(items))
}

// elements turns items into operands and operators. Brackets, text literals
// and blocks become single operands; `if`, `case` and `\` take the rest of
// the items.
func elements(items []item) []element {
	out := make([]element, 0, len(items))
	for i := 0; i < len(items); {
		it := items[i]
		if it.tok == nil {
			out = append(out, element{tree: parseBlock(it.block)})
			i++
			continue
		}
		tok := it.tok
		switch {
		case tok.Kind == token.OpenSymbol:
			t, n := group(items[i:])
			out = append(out, element{tree: t})
			i += n
		case tok.Kind == token.TextStart:
			t, n := textLiteral(items[i:])
			out = append(out, element{tree: t})
			i += n
		case tok.Kind == token.Operator && tok.Operator.IsLambda():
			return append(out, element{tree: lambda(*tok, items[i+1:])})
		case tok.Kind == token.Operator:
			out = append(out, element{opr: tok})
			i++
		case tok.Keyword() == token.KwIf:
			return append(out, element{tree: ifThenElse(items[i:])})
		case tok.Keyword() == token.KwCase:
			return append(out, element{tree: caseOf(items[i:])})
		default:
			out = append(out, element{tree: tree.ToAST(*tok)})
			i++
		}
	}
	return out
}

// pending is an operator waiting on the stack for its right operand.
// Application has no operator tokens.
type pending struct {
	oprs  []token.Token
	prec  token.Precedence
	right bool
	unary bool
}

var application = pending{prec: token.PrecApplication}

// resolver is a shunting-yard over elements. Operands may be nil: a missing
// operand is what makes a section.
type resolver struct {
	operands []*tree.Tree
	ops      []pending
}

// resolve applies precedence to elements. Juxtaposed operands are
// application, an operator without whitespace around it binds tighter than
// application, and an operator in prefix position that touches its operand
// is unary. Operators written one after another form a single run.
func resolve(elems []element) *tree.Tree {
	if len(elems) == 0 {
		return nil
	}
	var r resolver
	expectOperand := true
	for i := range elems {
		e := &elems[i]
		var next *element
		if i+1 < len(elems) {
			next = &elems[i+1]
		}
		if e.tree != nil {
			if !expectOperand {
				r.push(application)
			}
			r.operands = append(r.operands, e.tree)
			expectOperand = false
			continue
		}

		tok := *e.opr
		if isPrefix(tok, next, expectOperand) {
			if !expectOperand {
				r.push(application)
			}
			r.ops = append(r.ops, pending{oprs: []token.Token{tok}, prec: tok.Operator.Unary, right: true, unary: true})
			expectOperand = true
			continue
		}
		if expectOperand && i > 0 && elems[i-1].opr != nil && len(r.ops) > 0 {
			if top := &r.ops[len(r.ops)-1]; !top.unary && len(top.oprs) > 0 {
				top.oprs = append(top.oprs, tok)
				continue
			}
		}
		if expectOperand {
			r.operands = append(r.operands, nil)
		}
		prec := tok.Operator.Binary
		if isTight(tok, next) {
			prec += token.PrecTightBoost
		}
		r.push(pending{oprs: []token.Token{tok}, prec: prec, right: tok.Operator.IsRightAssociative()})
		expectOperand = true
	}
	if expectOperand {
		r.operands = append(r.operands, nil)
	}
	for len(r.ops) > 0 {
		r.reduce()
	}
	return r.operands[0]
}

func isPrefix(tok token.Token, next *element, expectOperand bool) bool {
	props := tok.Operator
	if !props.IsUnary() {
		return false
	}
	if props.IsPrefixOnly() {
		return true
	}
	touching := next != nil && next.tree != nil && !next.hasLeftOffset()
	return touching && (expectOperand || tok.HasLeftOffset())
}

func isTight(tok token.Token, next *element) bool {
	return !tok.HasLeftOffset() && next != nil && !next.hasLeftOffset()
}

func (r *resolver) push(op pending) {
	for len(r.ops) > 0 {
		top := r.ops[len(r.ops)-1]
		if top.prec < op.prec || (top.prec == op.prec && op.right) {
			break
		}
		r.reduce()
	}
	r.ops = append(r.ops, op)
}

func (r *resolver) pop() *tree.Tree {
	t := r.operands[len(r.operands)-1]
	r.operands = r.operands[:len(r.operands)-1]
	return t
}

func (r *resolver) reduce() {
	op := r.ops[len(r.ops)-1]
	r.ops = r.ops[:len(r.ops)-1]
	rhs := r.pop()
	if op.unary {
		r.operands = append(r.operands, tree.ApplyUnaryOperator(op.oprs[0], rhs))
		return
	}
	lhs := r.pop()
	r.operands = append(r.operands, tree.ApplyOperator(lhs, op.oprs, rhs))
}

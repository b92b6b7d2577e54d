package tree

import (
	"cstree/internal/token"
)

// BodyFromLines builds a BodyBlock, reading every line as a statement.
func BodyFromLines(lines []Line) *Tree {
	for i := range lines {
		if lines[i].Expression != nil {
			lines[i].Expression = ExpressionToStatement(lines[i].Expression)
		}
	}
	return New(&BodyBlock{Statements: lines})
}

// ExpressionToStatement reinterprets a line of a body block. `x : T` becomes
// a type signature, `f a b = e` a function definition and `p = e` an
// assignment. Other expressions are returned unchanged.
func ExpressionToStatement(t *Tree) *Tree {
	switch v := t.Variant.(type) {
	case *Private:
		if v.Body != nil {
			v.Body = ExpressionToStatement(v.Body)
		}
		return t
	case *Annotated:
		if v.Expression != nil {
			v.Expression = ExpressionToStatement(v.Expression)
		}
		return t
	case *AnnotatedBuiltin:
		if len(v.Newlines) > 0 && v.Expression != nil {
			v.Expression = ExpressionToStatement(v.Expression)
		}
		return t
	case *TypeAnnotated:
		t.SinkOffset()
		return New(&TypeSignature{Variable: v.Expression, Operator: v.Operator, Type: v.Type})
	case *OprApp:
		eq, ok := v.Opr.Ok()
		if !ok || !eq.Operator.IsAssignment() || v.LHS == nil {
			return t
		}
		t.SinkOffset()
		if def := functionDefinition(v.LHS, *eq, v.RHS); def != nil {
			return def
		}
		assign := New(&Assignment{Pattern: v.LHS, Equals: *eq, Expr: v.RHS})
		if v.RHS == nil {
			return assign.WithError(OperatorArityError, msgMissingBody)
		}
		return assign
	}
	return t
}

// SinkOffset moves t's left offset onto its first child. It is used right
// before t is taken apart, so that the child carries the text again.
func (t *Tree) SinkOffset() {
	off := t.Span.TakeAsPrefix()
	moved := false
	t.Variant.walk(func(it Item) {
		if moved {
			return
		}
		moved = true
		if it.Tree != nil {
			restoreTreeOffset(it.Tree, off)
		} else {
			restoreOffset(it.Token, off)
		}
	})
	if !moved {
		t.Span.LeftOffset = off
	}
}

// IdentToken returns the token of an identifier tree with the tree's offset
// put back in front of it.
func IdentToken(t *Tree) (token.Token, bool) {
	ident, ok := t.Variant.(*Ident)
	if !ok {
		return token.Token{}, false
	}
	tok := ident.Token
	restoreOffset(&tok, t.Span.LeftOffset)
	return tok, true
}

// functionDefinition builds a Function when lhs looks like `name args` or
// `name args -> Type`. It returns nil, leaving lhs untouched, otherwise.
func functionDefinition(lhs *Tree, equals token.Token, body *Tree) *Tree {
	core := lhs
	var returns *OprApp
	if v, ok := lhs.Variant.(*OprApp); ok {
		if arrow, isOp := v.Opr.Ok(); isOp && arrow.Operator.IsArrow() && v.LHS != nil && v.RHS != nil {
			returns, core = v, v.LHS
		}
	}
	head, spine := unrollApplications(core)
	if !isFunctionName(head) || (len(spine) == 0 && returns == nil && !isQualifiedName(head)) {
		return nil
	}

	// Offsets along the left spine belong to the head.
	if returns != nil {
		lhs.SinkOffset()
	}
	args := spineArguments(spine)

	fn := &Function{Name: head, Args: args, Equals: equals, Body: body}
	if returns != nil {
		arrow, _ := returns.Opr.Ok()
		fn.Returns = &ReturnSpecification{Arrow: *arrow, Type: returns.RHS}
	}
	def := New(fn)
	if body == nil {
		return def.WithError(OperatorArityError, msgMissingBody)
	}
	return def
}

// unrollApplications walks down the function side of an App/NamedApp chain.
// spine lists the applications from the outermost in.
func unrollApplications(t *Tree) (head *Tree, spine []*Tree) {
	head = t
	for {
		switch v := head.Variant.(type) {
		case *App:
			spine = append(spine, head)
			head = v.Func
			continue
		case *NamedApp:
			spine = append(spine, head)
			head = v.Func
			continue
		}
		return head, spine
	}
}

// spineArguments takes the applications apart and reads their arguments in
// source order.
func spineArguments(spine []*Tree) []ArgumentDefinition {
	for _, app := range spine {
		app.SinkOffset()
	}
	args := make([]ArgumentDefinition, 0, len(spine))
	for i := len(spine) - 1; i >= 0; i-- {
		switch v := spine[i].Variant.(type) {
		case *App:
			args = append(args, argumentDefinition(v.Arg))
		case *NamedApp:
			args = append(args, ArgumentDefinition{
				Open:    v.Open,
				Pattern: New(&Ident{Token: v.Name}),
				Default: &ArgumentDefault{Equals: v.Equals, Expression: v.Arg},
				Close:   v.Close,
			})
		}
	}
	return args
}

// SplitDefinition reads `head a b c` as a head and its argument definitions.
// When accept rejects the head, t is left untouched and ok is false.
func SplitDefinition(t *Tree, accept func(head *Tree) bool) (head *Tree, args []ArgumentDefinition, ok bool) {
	head, spine := unrollApplications(t)
	if !accept(head) {
		return nil, nil, false
	}
	return head, spineArguments(spine), true
}

// NewArgumentDefinition reads a single parameter: `x`, `~x`, `(x : T)`,
// `(x = d)` and their combinations.
func NewArgumentDefinition(arg *Tree) ArgumentDefinition {
	return argumentDefinition(arg)
}

// Rebuild recomputes the span of t after children were added to its variant.
func (t *Tree) Rebuild() *Tree {
	t.SinkOffset()
	return New(t.Variant)
}

func isFunctionName(t *Tree) bool {
	if ident, ok := t.Variant.(*Ident); ok {
		return !ident.Token.IsType
	}
	return isQualifiedName(t)
}

// isQualifiedName matches `Type.method`.
func isQualifiedName(t *Tree) bool {
	v, ok := t.Variant.(*OprApp)
	if !ok || v.LHS == nil || v.RHS == nil {
		return false
	}
	dot, ok := v.Opr.Ok()
	if !ok || !dot.Operator.IsDot() {
		return false
	}
	_, ok = v.RHS.Variant.(*Ident)
	return ok
}

// argumentDefinition reads one argument of a definition:
// `x`, `~x`, `(x : T)`, `(x = d)`, `(x : T = d)`.
func argumentDefinition(arg *Tree) ArgumentDefinition {
	var def ArgumentDefinition
	inner := arg
	if g, ok := arg.Variant.(*Group); ok && g.Open != nil && g.Close != nil {
		arg.SinkOffset()
		def.Open, def.Close = g.Open, g.Close
		inner = g.Body
	}
	if inner == nil {
		return def
	}
	if v, ok := inner.Variant.(*OprApp); ok {
		if eq, isOp := v.Opr.Ok(); isOp && eq.Operator.IsAssignment() && v.LHS != nil && v.RHS != nil {
			inner.SinkOffset()
			def.Default = &ArgumentDefault{Equals: *eq, Expression: v.RHS}
			inner = v.LHS
		}
	}
	if v, ok := inner.Variant.(*TypeAnnotated); ok {
		inner.SinkOffset()
		def.Type = &ArgumentType{Operator: v.Operator, Type: v.Type}
		inner = v.Expression
	}
	if v, ok := inner.Variant.(*UnaryOprApp); ok && v.Opr.Operator.IsSuspension() && v.RHS != nil {
		inner.SinkOffset()
		suspension := v.Opr
		def.Suspension = &suspension
		inner = v.RHS
	}
	def.Pattern = inner
	return def
}

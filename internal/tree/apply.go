package tree

import (
	"cstree/internal/token"
)

// Apply combines fn with the tree directly following it.
//
// Annotations take their argument, argument and operator blocks take their
// head expression, assignments to an identifier become named arguments, and
// everything else is a plain App.
func Apply(fn, arg *Tree) *Tree {
	switch f := fn.Variant.(type) {
	case *Annotated:
		if f.Argument == nil {
			fn.Span.CodeLength += arg.Span.LengthIncludingWhitespace()
			f.Argument = arg
			return fn
		}
	case *AnnotatedBuiltin:
		fn.Span.CodeLength += arg.Span.LengthIncludingWhitespace()
		f.Expression = maybeApply(f.Expression, arg)
		return fn
	case *OprApp:
		if block, ok := arg.Variant.(*ArgumentBlockApplication); ok && block.LHS == nil && len(block.Arguments) > 0 &&
			f.LHS != nil && f.Opr.Operator != nil && f.RHS == nil {
			fn.Span.CodeLength += arg.Span.LengthIncludingWhitespace()
			f.RHS = blockToBody(arg, block)
			return fn
		}
	}

	switch a := arg.Variant.(type) {
	// A block without lines has nowhere to put its offset back, so it is
	// left to the plain App below.
	case *ArgumentBlockApplication:
		if a.LHS == nil && len(a.Arguments) > 0 {
			attachBlockHead(fn, arg, &a.Arguments[0].Newline)
			a.LHS = fn
			return arg
		}
	case *OperatorBlockApplication:
		if a.LHS == nil && len(a.Expressions) > 0 {
			attachBlockHead(fn, arg, &a.Expressions[0].Newline)
			a.LHS = fn
			return arg
		}
	case *OprApp:
		if name, equals, value, ok := namedArgument(arg, a); ok {
			return New(&NamedApp{Func: fn, Name: name, Equals: equals, Arg: value})
		}
	case *Group:
		if a.Open == nil || a.Close == nil || a.Body == nil {
			break
		}
		body, ok := a.Body.Variant.(*OprApp)
		if !ok {
			break
		}
		if name, equals, value, ok := namedArgument(a.Body, body); ok {
			open, closeTok := *a.Open, *a.Close
			restoreOffset(&open, arg.Span.LeftOffset)
			return New(&NamedApp{Func: fn, Open: &open, Name: name, Equals: equals, Arg: value, Close: &closeTok})
		}
	}
	return New(&App{Func: fn, Arg: arg})
}

func maybeApply(fn, arg *Tree) *Tree {
	if fn == nil {
		return arg
	}
	return Apply(fn, arg)
}

// attachBlockHead grows the block arg to cover fn, which precedes it. fn's
// offset becomes the block's offset and the block's old offset goes back to
// the newline that starts its first line.
func attachBlockHead(fn, arg *Tree, firstNewline *token.Token) {
	arg.Span.CodeLength = fn.Span.CodeLength + arg.Span.LeftOffset.Len() + arg.Span.CodeLength
	argOffset := arg.Span.TakeAsPrefix()
	arg.Span.LeftOffset = fn.Span.TakeAsPrefix()
	restoreOffset(firstNewline, argOffset)
}

// namedArgument splits `name = value` into its parts. assign is the tree
// holding opr.
func namedArgument(assign *Tree, opr *OprApp) (name, equals token.Token, value *Tree, ok bool) {
	eq, isOp := opr.Opr.Ok()
	if !isOp || !eq.Operator.IsAssignment() || opr.LHS == nil || opr.RHS == nil {
		return name, equals, nil, false
	}
	ident, isIdent := opr.LHS.Variant.(*Ident)
	if !isIdent {
		return name, equals, nil, false
	}
	name = ident.Token
	restoreOffset(&name, opr.LHS.Span.LeftOffset)
	restoreOffset(&name, assign.Span.LeftOffset)
	return name, *eq, opr.RHS, true
}

// blockToBody reinterprets an unattached argument block as a body block. The
// block's offset goes back to its first line before the lines are rebuilt,
// so the block must have at least one line.
func blockToBody(t *Tree, block *ArgumentBlockApplication) *Tree {
	restoreOffset(&block.Arguments[0].Newline, t.Span.TakeAsPrefix())
	return BodyFromLines(block.Arguments)
}

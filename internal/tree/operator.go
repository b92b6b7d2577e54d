package tree

import (
	"cstree/internal/token"
)

// ApplyOperator combines optional operands around a run of operators.
//
// No operators means plain juxtaposition. One operator builds an OprApp or
// one of the special forms its properties call for. Several operators are
// all kept in a MultipleOperatorError. A missing operand is a section.
func ApplyOperator(lhs *Tree, oprs []token.Token, rhs *Tree) *Tree {
	var opr OperatorOrError
	switch len(oprs) {
	case 0:
		return juxtapose(lhs, rhs)
	case 1:
		opr = Operator(oprs[0])
	default:
		opr = OperatorOrError{Multiple: &MultipleOperatorError{Operators: oprs}}
	}

	if op, ok := opr.Ok(); ok {
		props := op.Operator
		switch {
		case props.IsTokenJoiner() && op.LengthIncludingWhitespace() == 0 && lhs != nil && rhs != nil:
			return joinNumber(lhs, rhs)
		case props.IsSpecial():
			return New(&OprApp{LHS: lhs, Opr: opr, RHS: rhs}).WithError(SemanticShapeError, msgSpecialOperator)
		case props.IsTypeAnnotation():
			if lhs != nil && rhs != nil {
				return New(&TypeAnnotated{Expression: lhs, Operator: *op, Type: rhs})
			}
			return New(&OprApp{LHS: lhs, Opr: opr, RHS: rhs}).WithError(SemanticShapeError, msgTypeAnnotation)
		case !props.CanFormSection() && lhs == nil && rhs == nil:
			return New(&OprApp{Opr: opr}).
				Errorf(OperatorArityError, "Operator `%s` must be applied to two operands.", op.Text())
		case props.IsDecimal():
			if number := joinDecimal(lhs, *op, rhs); number != nil {
				return number
			}
		}
	}

	if rhs != nil {
		if block, ok := rhs.Variant.(*ArgumentBlockApplication); ok && block.LHS == nil && len(block.Arguments) > 0 {
			rhs = blockToBody(rhs, block)
		}
	}
	return New(&OprApp{LHS: lhs, Opr: opr, RHS: rhs})
}

// juxtapose applies lhs to rhs. A missing side is a structural error: the
// present operand is kept under an Invalid node. With neither operand there
// is no position to report; the empty result sits at 0 until the caller moves
// it with PlaceAt.
func juxtapose(lhs, rhs *Tree) *Tree {
	switch {
	case lhs != nil && rhs != nil:
		return Apply(lhs, rhs)
	case lhs != nil:
		return lhs.WithError(StructuralError, msgMissingOperand)
	case rhs != nil:
		return rhs.WithError(StructuralError, msgMissingOperand)
	default:
		return New(&OprApp{}).WithError(StructuralError, msgMissingOperand)
	}
}

// joinNumber merges the digits in rhs into the base-only number lhs. The
// zero-length joiner between them is dropped.
func joinNumber(lhs, rhs *Tree) *Tree {
	l, lok := lhs.Variant.(*Number)
	r, rok := rhs.Variant.(*Number)
	if !lok || !rok || l.Integer != nil || l.FractionalDigits != nil || r.Base != nil ||
		(r.Integer == nil && r.FractionalDigits == nil) {
		return Apply(lhs, rhs)
	}
	off := rhs.Span.TakeAsPrefix()
	if r.Integer != nil {
		restoreOffset(r.Integer, off)
	} else {
		restoreOffset(&r.FractionalDigits.Dot, off)
	}
	l.Integer, l.FractionalDigits = r.Integer, r.FractionalDigits
	lhs.Span.CodeLength += off.Len() + rhs.Span.CodeLength
	return lhs
}

// joinDecimal turns `10`, `.`, `5` into a single number. It returns nil when
// the operands do not have that shape.
func joinDecimal(lhs *Tree, dot token.Token, rhs *Tree) *Tree {
	if lhs == nil || rhs == nil {
		return nil
	}
	l, ok := lhs.Variant.(*Number)
	if !ok || l.Integer == nil || l.FractionalDigits != nil {
		return nil
	}
	r, ok := rhs.Variant.(*Number)
	if !ok || r.Base != nil || r.Integer == nil || r.FractionalDigits != nil {
		return nil
	}
	digits := *r.Integer
	restoreOffset(&digits, rhs.Span.LeftOffset)
	lhs.Span.CodeLength += dot.LengthIncludingWhitespace() + digits.LengthIncludingWhitespace()
	l.FractionalDigits = &FractionalDigits{Dot: dot, Digits: digits}
	return lhs
}

// ApplyUnaryOperator combines a prefix operator with its operand.
func ApplyUnaryOperator(opr token.Token, rhs *Tree) *Tree {
	props := opr.Operator
	if props.IsAnnotation() && rhs != nil {
		if ident, ok := rhs.Variant.(*Ident); ok {
			name := ident.Token
			restoreOffset(&name, rhs.Span.LeftOffset)
			if name.IsType {
				return New(&AnnotatedBuiltin{Token: opr, Annotation: name})
			}
			return New(&Annotated{Token: opr, Annotation: name})
		}
	}
	if props.IsAutoscope() && rhs != nil {
		ident, ok := rhs.Variant.(*Ident)
		if !ok {
			return New(&UnaryOprApp{Opr: opr, RHS: rhs}).WithError(SemanticShapeError, msgAutoscopeIdent)
		}
		name := ident.Token
		restoreOffset(&name, rhs.Span.LeftOffset)
		scoped := New(&AutoscopedIdentifier{Opr: opr, Ident: name})
		if !name.IsType {
			return scoped.WithError(SemanticShapeError, msgAutoscopeType)
		}
		return scoped
	}
	if !props.CanFormSection() && rhs == nil {
		return New(&UnaryOprApp{Opr: opr}).
			Errorf(OperatorArityError, "Operator `%s` must be applied to an operand.", opr.Text())
	}
	return New(&UnaryOprApp{Opr: opr, RHS: rhs})
}

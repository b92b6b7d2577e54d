package tree

import "fmt"

// ErrorKind classifies an Invalid node.
type ErrorKind uint8

const (
	// StructuralError covers unmatched delimiters and tokens that cannot start a node.
	StructuralError ErrorKind = iota
	// OperatorArityError covers operators missing a required operand and runs of operators.
	OperatorArityError
	// SemanticShapeError covers operands of the wrong syntactic shape.
	SemanticShapeError
)

func (k ErrorKind) String() string {
	switch k {
	case StructuralError:
		return "structural"
	case OperatorArityError:
		return "operator-arity"
	case SemanticShapeError:
		return "semantic-shape"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is the diagnostic carried by an Invalid node.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e Error) String() string { return e.Message }

const (
	msgUnmatchedDelimiter = "Unmatched delimiter"
	msgSpecialOperator    = "Invalid use of special operator."
	msgTypeAnnotation     = "`:` operator must be applied to two operands."
	msgAutoscopeType      = "The auto-scope operator may only be applied to a capitalized identifier."
	msgAutoscopeIdent     = "The auto-scope operator (..) may only be applied to an identifier."
	msgMissingOperand     = "Expected an operand."
	msgMissingBody        = "Expected an expression after `=`."
)

// WithError wraps t into an Invalid node.
func (t *Tree) WithError(kind ErrorKind, message string) *Tree {
	return New(&Invalid{Error: Error{Kind: kind, Message: message}, AST: t})
}

// Errorf is WithError with a formatted message.
func (t *Tree) Errorf(kind ErrorKind, format string, args ...any) *Tree {
	return t.WithError(kind, fmt.Sprintf(format, args...))
}

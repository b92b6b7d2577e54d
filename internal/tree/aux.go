package tree

import (
	"cstree/internal/token"
)

// Line is one line of a block: the newline that starts it and its
// expression, if the line is not blank.
type Line struct {
	Newline    token.Token
	Expression *Tree
}

func (l *Line) walk(f func(Item)) {
	walkToken(f, &l.Newline)
	walkTree(f, l.Expression)
}

func walkLines(f func(Item), lines []Line) {
	for i := range lines {
		lines[i].walk(f)
	}
}

// OperatorLine is one line of an operator block.
type OperatorLine struct {
	Newline    token.Token
	Expression *OperatorBlockExpression
}

func (l *OperatorLine) walk(f func(Item)) {
	walkToken(f, &l.Newline)
	if l.Expression != nil {
		l.Expression.Operator.walk(f)
		walkTree(f, l.Expression.Expression)
	}
}

// OperatorBlockExpression is an operator line's leading operator and the
// expression after it.
type OperatorBlockExpression struct {
	Operator   OperatorOrError
	Expression *Tree
}

// OperatorOrError holds either the single operator of an OprApp or, when
// several operators were written in a row, all of them. Exactly one field is set.
type OperatorOrError struct {
	Operator *token.Token
	Multiple *MultipleOperatorError
}

// MultipleOperatorError keeps every operator of a run like `a + * b`.
// Operators is never empty.
type MultipleOperatorError struct {
	Operators []token.Token
}

// Operator returns the successful form of OperatorOrError.
func Operator(tok token.Token) OperatorOrError {
	return OperatorOrError{Operator: &tok}
}

// Ok returns the operator when exactly one was written.
func (o OperatorOrError) Ok() (*token.Token, bool) {
	return o.Operator, o.Operator != nil
}

// First returns the first operator token.
func (o OperatorOrError) First() *token.Token {
	if o.Operator != nil {
		return o.Operator
	}
	if o.Multiple != nil && len(o.Multiple.Operators) > 0 {
		return &o.Multiple.Operators[0]
	}
	return nil
}

func (o OperatorOrError) walk(f func(Item)) {
	if o.Operator != nil {
		walkToken(f, o.Operator)
		return
	}
	if o.Multiple != nil {
		walkTokens(f, o.Multiple.Operators)
	}
}

// FractionalDigits is the `.5` part of `10.5`.
type FractionalDigits struct {
	Dot    token.Token
	Digits token.Token
}

// ArgumentDefinition is a parameter of a function, a type or a constructor:
//
//	( ( ~ pattern : Type ) = default )
//	^ ^ ^                ^ ^         ^
//	| | suspension       | default   close
//	| open2              close2
//	open
type ArgumentDefinition struct {
	Open       *token.Token
	Open2      *token.Token
	Suspension *token.Token
	Pattern    *Tree
	Type       *ArgumentType
	Close2     *token.Token
	Default    *ArgumentDefault
	Close      *token.Token
}

func (a *ArgumentDefinition) walk(f func(Item)) {
	walkToken(f, a.Open)
	walkToken(f, a.Open2)
	walkToken(f, a.Suspension)
	walkTree(f, a.Pattern)
	if a.Type != nil {
		walkToken(f, &a.Type.Operator)
		walkTree(f, a.Type.Type)
	}
	walkToken(f, a.Close2)
	if a.Default != nil {
		walkToken(f, &a.Default.Equals)
		walkTree(f, a.Default.Expression)
	}
	walkToken(f, a.Close)
}

func walkArgs(f func(Item), args []ArgumentDefinition) {
	for i := range args {
		args[i].walk(f)
	}
}

type ArgumentType struct {
	Operator token.Token
	Type     *Tree
}

type ArgumentDefault struct {
	Equals     token.Token
	Expression *Tree
}

// ReturnSpecification is the `-> Type` of a function definition.
type ReturnSpecification struct {
	Arrow token.Token
	Type  *Tree
}

func (r *ReturnSpecification) walk(f func(Item)) {
	walkToken(f, &r.Arrow)
	walkTree(f, r.Type)
}

// ArgumentDefinitionLine is a constructor argument written on its own line.
type ArgumentDefinitionLine struct {
	Newline  token.Token
	Argument *ArgumentDefinition
}

func (l *ArgumentDefinitionLine) walk(f func(Item)) {
	walkToken(f, &l.Newline)
	if l.Argument != nil {
		l.Argument.walk(f)
	}
}

// CaseLine is one line in the body of a case expression.
type CaseLine struct {
	Newline *token.Token
	Case    *Case
}

func (l *CaseLine) walk(f func(Item)) {
	walkToken(f, l.Newline)
	if l.Case != nil {
		l.Case.walk(f)
	}
}

// Case is `pattern -> expression`. A missing arrow is an error the tree keeps.
type Case struct {
	Documentation *DocComment
	Pattern       *Tree
	Arrow         *token.Token
	Expression    *Tree
}

func (c *Case) walk(f func(Item)) {
	if c.Documentation != nil {
		c.Documentation.walk(f)
	}
	walkTree(f, c.Pattern)
	walkToken(f, c.Arrow)
	walkTree(f, c.Expression)
}

// DocComment is a documentation comment and the newlines after it.
type DocComment struct {
	Open     token.Token
	Elements []TextElement
	Newlines []token.Token
}

func (d *DocComment) walk(f func(Item)) {
	walkToken(f, &d.Open)
	for _, e := range d.Elements {
		e.walk(f)
	}
	walkTokens(f, d.Newlines)
}

// MultiSegmentAppSegment is one keyword of a multi-segment construct and the
// expression that follows it.
type MultiSegmentAppSegment struct {
	Header token.Token
	Body   *Tree
}

func (s *MultiSegmentAppSegment) walk(f func(Item)) {
	walkToken(f, &s.Header)
	walkTree(f, s.Body)
}

func walkSegment(f func(Item), s *MultiSegmentAppSegment) {
	if s != nil {
		s.walk(f)
	}
}

// OperatorDelimitedTree is a `, element` continuation in arrays and tuples.
type OperatorDelimitedTree struct {
	Operator token.Token
	Body     *Tree
}

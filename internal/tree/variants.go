package tree

import (
	"cstree/internal/token"
)

// Invalid wraps the best-effort subtree of a malformed construct.
type Invalid struct {
	Error Error
	AST   *Tree
}

// BodyBlock is a sequence of statements, one per line.
type BodyBlock struct {
	Statements []Line
}

// ArgumentBlockApplication applies an expression to the lines of the
// indented block that follows it. LHS is nil until the block is attached.
type ArgumentBlockApplication struct {
	LHS       *Tree
	Arguments []Line
}

// OperatorBlockApplication is an expression followed by an indented block
// whose lines each start with an operator. Lines that do not are kept in
// Excess.
type OperatorBlockApplication struct {
	LHS         *Tree
	Expressions []OperatorLine
	Excess      []Line
}

type Ident struct {
	Token token.Token
}

// Private marks a definition as module-private.
type Private struct {
	Keyword token.Token
	Body    *Tree
}

// Number is a numeric literal. Base, Integer and FractionalDigits are each
// optional while the literal is being assembled from its tokens.
type Number struct {
	Base             *token.Token
	Integer          *token.Token
	FractionalDigits *FractionalDigits
}

// NoDeBruijnIndex marks a wildcard that is not a template argument.
const NoDeBruijnIndex = -1

type Wildcard struct {
	Token         token.Token
	DeBruijnIndex int
}

// SuspendedDefaultArguments is the `...` marker.
type SuspendedDefaultArguments struct {
	Token token.Token
}

// TextLiteral is a text literal, possibly still open while its fragments are
// being joined.
type TextLiteral struct {
	Open     *token.Token
	Newline  *token.Token
	Elements []TextElement
	Close    *token.Token
	Closed   bool
}

// App is juxtaposition: a function applied to an argument.
type App struct {
	Func *Tree
	Arg  *Tree
}

// NamedApp is an application to a named argument, `f x=y` or `f (x = y)`.
type NamedApp struct {
	Func   *Tree
	Open   *token.Token
	Name   token.Token
	Equals token.Token
	Arg    *Tree
	Close  *token.Token
}

// OprApp is a binary operator application. Missing operands form a section.
type OprApp struct {
	LHS *Tree
	Opr OperatorOrError
	RHS *Tree
}

type UnaryOprApp struct {
	Opr token.Token
	RHS *Tree
}

// AutoscopedIdentifier is `..Name`.
type AutoscopedIdentifier struct {
	Opr   token.Token
	Ident token.Token
}

// OprSectionBoundary delimits an operator section taking Arguments operands.
type OprSectionBoundary struct {
	Arguments uint32
	AST       *Tree
}

// TemplateFunction delimits an expression with Arguments wildcard parameters.
type TemplateFunction struct {
	Arguments uint32
	AST       *Tree
}

// MultiSegmentApp is a keyword construct such as `if c then a else b`.
// Segments is never empty.
type MultiSegmentApp struct {
	Segments []MultiSegmentAppSegment
}

type TypeDef struct {
	Keyword token.Token
	Name    token.Token
	Params  []ArgumentDefinition
	Body    []Line
}

type Assignment struct {
	Pattern *Tree
	Equals  token.Token
	Expr    *Tree
}

// Function is a definition `name args -> Type = body`.
type Function struct {
	Name    *Tree
	Args    []ArgumentDefinition
	Returns *ReturnSpecification
	Equals  token.Token
	Body    *Tree
}

type ForeignFunction struct {
	Foreign  token.Token
	Language token.Token
	Name     token.Token
	Args     []ArgumentDefinition
	Equals   token.Token
	Body     *Tree
}

type Import struct {
	Polyglot *MultiSegmentAppSegment
	From     *MultiSegmentAppSegment
	Import   MultiSegmentAppSegment
	All      *token.Token
	As       *MultiSegmentAppSegment
	Hiding   *MultiSegmentAppSegment
}

type Export struct {
	From   *MultiSegmentAppSegment
	Export MultiSegmentAppSegment
	All    *token.Token
	As     *MultiSegmentAppSegment
	Hiding *MultiSegmentAppSegment
}

// Group is a parenthesized expression. Either delimiter may be missing.
type Group struct {
	Open  *token.Token
	Body  *Tree
	Close *token.Token
}

// TypeSignature is a statement `name : Type`.
type TypeSignature struct {
	Variable *Tree
	Operator token.Token
	Type     *Tree
}

// TypeAnnotated is an expression `expr : Type`.
type TypeAnnotated struct {
	Expression *Tree
	Operator   token.Token
	Type       *Tree
}

type CaseOf struct {
	Case       token.Token
	Expression *Tree
	Of         token.Token
	Cases      []CaseLine
}

// Lambda is `\x -> body`; Arrow holds everything after the backslash.
type Lambda struct {
	Operator token.Token
	Arrow    *Tree
}

// Array is `[a, b, c]`.
type Array struct {
	Left  token.Token
	First *Tree
	Rest  []OperatorDelimitedTree
	Right token.Token
}

// Tuple is `{a, b, c}`.
type Tuple struct {
	Left  token.Token
	First *Tree
	Rest  []OperatorDelimitedTree
	Right token.Token
}

// Annotated is `@name argument` optionally followed by the annotated
// statement on the next lines.
type Annotated struct {
	Token      token.Token
	Annotation token.Token
	Argument   *Tree
	Newlines   []token.Token
	Expression *Tree
}

// AnnotatedBuiltin is `@Name expression`.
type AnnotatedBuiltin struct {
	Token      token.Token
	Annotation token.Token
	Newlines   []token.Token
	Expression *Tree
}

type Documented struct {
	Documentation DocComment
	Expression    *Tree
}

// ConstructorDefinition is a constructor line inside a type definition.
type ConstructorDefinition struct {
	Constructor token.Token
	Arguments   []ArgumentDefinition
	Block       []ArgumentDefinitionLine
}

func (*Invalid) VariantName() string                   { return "Invalid" }
func (*BodyBlock) VariantName() string                 { return "BodyBlock" }
func (*ArgumentBlockApplication) VariantName() string  { return "ArgumentBlockApplication" }
func (*OperatorBlockApplication) VariantName() string  { return "OperatorBlockApplication" }
func (*Ident) VariantName() string                     { return "Ident" }
func (*Private) VariantName() string                   { return "Private" }
func (*Number) VariantName() string                    { return "Number" }
func (*Wildcard) VariantName() string                  { return "Wildcard" }
func (*SuspendedDefaultArguments) VariantName() string { return "SuspendedDefaultArguments" }
func (*TextLiteral) VariantName() string               { return "TextLiteral" }
func (*App) VariantName() string                       { return "App" }
func (*NamedApp) VariantName() string                  { return "NamedApp" }
func (*OprApp) VariantName() string                    { return "OprApp" }
func (*UnaryOprApp) VariantName() string               { return "UnaryOprApp" }
func (*AutoscopedIdentifier) VariantName() string      { return "AutoscopedIdentifier" }
func (*OprSectionBoundary) VariantName() string        { return "OprSectionBoundary" }
func (*TemplateFunction) VariantName() string          { return "TemplateFunction" }
func (*MultiSegmentApp) VariantName() string           { return "MultiSegmentApp" }
func (*TypeDef) VariantName() string                   { return "TypeDef" }
func (*Assignment) VariantName() string                { return "Assignment" }
func (*Function) VariantName() string                  { return "Function" }
func (*ForeignFunction) VariantName() string           { return "ForeignFunction" }
func (*Import) VariantName() string                    { return "Import" }
func (*Export) VariantName() string                    { return "Export" }
func (*Group) VariantName() string                     { return "Group" }
func (*TypeSignature) VariantName() string             { return "TypeSignature" }
func (*TypeAnnotated) VariantName() string             { return "TypeAnnotated" }
func (*CaseOf) VariantName() string                    { return "CaseOf" }
func (*Lambda) VariantName() string                    { return "Lambda" }
func (*Array) VariantName() string                     { return "Array" }
func (*Tuple) VariantName() string                     { return "Tuple" }
func (*Annotated) VariantName() string                 { return "Annotated" }
func (*AnnotatedBuiltin) VariantName() string          { return "AnnotatedBuiltin" }
func (*Documented) VariantName() string                { return "Documented" }
func (*ConstructorDefinition) VariantName() string     { return "ConstructorDefinition" }

func (v *Invalid) walk(f func(Item)) { walkTree(f, v.AST) }

func (v *BodyBlock) walk(f func(Item)) { walkLines(f, v.Statements) }

func (v *ArgumentBlockApplication) walk(f func(Item)) {
	walkTree(f, v.LHS)
	walkLines(f, v.Arguments)
}

func (v *OperatorBlockApplication) walk(f func(Item)) {
	walkTree(f, v.LHS)
	for i := range v.Expressions {
		v.Expressions[i].walk(f)
	}
	walkLines(f, v.Excess)
}

func (v *Ident) walk(f func(Item))   { walkToken(f, &v.Token) }
func (v *Private) walk(f func(Item)) { walkToken(f, &v.Keyword); walkTree(f, v.Body) }

func (v *Number) walk(f func(Item)) {
	walkToken(f, v.Base)
	walkToken(f, v.Integer)
	if v.FractionalDigits != nil {
		walkToken(f, &v.FractionalDigits.Dot)
		walkToken(f, &v.FractionalDigits.Digits)
	}
}

func (v *Wildcard) walk(f func(Item))                  { walkToken(f, &v.Token) }
func (v *SuspendedDefaultArguments) walk(f func(Item)) { walkToken(f, &v.Token) }

func (v *TextLiteral) walk(f func(Item)) {
	walkToken(f, v.Open)
	walkToken(f, v.Newline)
	for _, e := range v.Elements {
		e.walk(f)
	}
	walkToken(f, v.Close)
}

func (v *App) walk(f func(Item)) { walkTree(f, v.Func); walkTree(f, v.Arg) }

func (v *NamedApp) walk(f func(Item)) {
	walkTree(f, v.Func)
	walkToken(f, v.Open)
	walkToken(f, &v.Name)
	walkToken(f, &v.Equals)
	walkTree(f, v.Arg)
	walkToken(f, v.Close)
}

func (v *OprApp) walk(f func(Item)) {
	walkTree(f, v.LHS)
	v.Opr.walk(f)
	walkTree(f, v.RHS)
}

func (v *UnaryOprApp) walk(f func(Item)) { walkToken(f, &v.Opr); walkTree(f, v.RHS) }

func (v *AutoscopedIdentifier) walk(f func(Item)) { walkToken(f, &v.Opr); walkToken(f, &v.Ident) }

func (v *OprSectionBoundary) walk(f func(Item)) { walkTree(f, v.AST) }
func (v *TemplateFunction) walk(f func(Item))   { walkTree(f, v.AST) }

func (v *MultiSegmentApp) walk(f func(Item)) {
	for i := range v.Segments {
		v.Segments[i].walk(f)
	}
}

func (v *TypeDef) walk(f func(Item)) {
	walkToken(f, &v.Keyword)
	walkToken(f, &v.Name)
	walkArgs(f, v.Params)
	walkLines(f, v.Body)
}

func (v *Assignment) walk(f func(Item)) {
	walkTree(f, v.Pattern)
	walkToken(f, &v.Equals)
	walkTree(f, v.Expr)
}

func (v *Function) walk(f func(Item)) {
	walkTree(f, v.Name)
	walkArgs(f, v.Args)
	if v.Returns != nil {
		v.Returns.walk(f)
	}
	walkToken(f, &v.Equals)
	walkTree(f, v.Body)
}

func (v *ForeignFunction) walk(f func(Item)) {
	walkToken(f, &v.Foreign)
	walkToken(f, &v.Language)
	walkToken(f, &v.Name)
	walkArgs(f, v.Args)
	walkToken(f, &v.Equals)
	walkTree(f, v.Body)
}

func (v *Import) walk(f func(Item)) {
	walkSegment(f, v.Polyglot)
	walkSegment(f, v.From)
	v.Import.walk(f)
	walkToken(f, v.All)
	walkSegment(f, v.As)
	walkSegment(f, v.Hiding)
}

func (v *Export) walk(f func(Item)) {
	walkSegment(f, v.From)
	v.Export.walk(f)
	walkToken(f, v.All)
	walkSegment(f, v.As)
	walkSegment(f, v.Hiding)
}

func (v *Group) walk(f func(Item)) {
	walkToken(f, v.Open)
	walkTree(f, v.Body)
	walkToken(f, v.Close)
}

func (v *TypeSignature) walk(f func(Item)) {
	walkTree(f, v.Variable)
	walkToken(f, &v.Operator)
	walkTree(f, v.Type)
}

func (v *TypeAnnotated) walk(f func(Item)) {
	walkTree(f, v.Expression)
	walkToken(f, &v.Operator)
	walkTree(f, v.Type)
}

func (v *CaseOf) walk(f func(Item)) {
	walkToken(f, &v.Case)
	walkTree(f, v.Expression)
	walkToken(f, &v.Of)
	for i := range v.Cases {
		v.Cases[i].walk(f)
	}
}

func (v *Lambda) walk(f func(Item)) { walkToken(f, &v.Operator); walkTree(f, v.Arrow) }

func (v *Array) walk(f func(Item)) { walkDelimited(f, &v.Left, v.First, v.Rest, &v.Right) }
func (v *Tuple) walk(f func(Item)) { walkDelimited(f, &v.Left, v.First, v.Rest, &v.Right) }

func (v *Annotated) walk(f func(Item)) {
	walkToken(f, &v.Token)
	walkToken(f, &v.Annotation)
	walkTree(f, v.Argument)
	walkTokens(f, v.Newlines)
	walkTree(f, v.Expression)
}

func (v *AnnotatedBuiltin) walk(f func(Item)) {
	walkToken(f, &v.Token)
	walkToken(f, &v.Annotation)
	walkTokens(f, v.Newlines)
	walkTree(f, v.Expression)
}

func (v *Documented) walk(f func(Item)) {
	v.Documentation.walk(f)
	walkTree(f, v.Expression)
}

func (v *ConstructorDefinition) walk(f func(Item)) {
	walkToken(f, &v.Constructor)
	walkArgs(f, v.Arguments)
	for i := range v.Block {
		v.Block[i].walk(f)
	}
}

func walkDelimited(f func(Item), left *token.Token, first *Tree, rest []OperatorDelimitedTree, right *token.Token) {
	walkToken(f, left)
	walkTree(f, first)
	for i := range rest {
		walkToken(f, &rest[i].Operator)
		walkTree(f, rest[i].Body)
	}
	walkToken(f, right)
}

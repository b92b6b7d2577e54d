package token

// Precedence orders binary and prefix operators. Larger binds tighter.
type Precedence uint8

// Таблица приоритетов. Чем больше число, тем выше приоритет.
const (
	PrecAssignment     Precedence = 1  // =
	PrecArrow          Precedence = 2  // ->
	PrecSequence       Precedence = 3  // ,
	PrecTypeAnnotation Precedence = 4  // :
	PrecPipe           Precedence = 5  // |> <|
	PrecOr             Precedence = 6  // || |
	PrecAnd            Precedence = 7  // && &
	PrecComparison     Precedence = 8  // == != < > <= >=
	PrecDefault        Precedence = 9  // operators missing from the table
	PrecAdditive       Precedence = 10 // + -
	PrecMultiplicative Precedence = 11 // * / %
	PrecPower          Precedence = 12 // ^
	PrecApplication    Precedence = 20 // juxtaposition
	PrecDot            Precedence = 30 // .
	PrecUnary          Precedence = 45 // -x ~x
	PrecAnnotation     Precedence = 60 // @x ..X
	PrecJoin           Precedence = 100

	// PrecTightBoost is added to an operator written without spaces on
	// either side, so `f a+b` groups as `f (a+b)`.
	PrecTightBoost Precedence = PrecApplication
)

// Associativity of a binary operator.
type Associativity uint8

const (
	AssocLeft Associativity = iota
	AssocRight
)

// OperatorFlags are the special roles an operator can play.
type OperatorFlags uint16

const (
	FlagAssignment OperatorFlags = 1 << iota
	FlagTypeAnnotation
	FlagDecimal
	FlagTokenJoiner
	FlagSpecial
	FlagAnnotation
	FlagAutoscope
	FlagNoSection
	FlagArrow
	FlagSequence
	FlagSuspension
	FlagLambda
	FlagDot
)

// OperatorProperties describe how an operator token combines with operands.
type OperatorProperties struct {
	Binary Precedence // 0 when the operator is never infix
	Unary  Precedence // 0 when the operator is never prefix
	Assoc  Associativity
	Flags  OperatorFlags
}

func (p OperatorProperties) Has(f OperatorFlags) bool { return p.Flags&f != 0 }

func (p OperatorProperties) IsBinary() bool           { return p.Binary != 0 }
func (p OperatorProperties) IsUnary() bool            { return p.Unary != 0 }
func (p OperatorProperties) IsRightAssociative() bool { return p.Assoc == AssocRight }
func (p OperatorProperties) IsAssignment() bool       { return p.Has(FlagAssignment) }
func (p OperatorProperties) IsTypeAnnotation() bool   { return p.Has(FlagTypeAnnotation) }
func (p OperatorProperties) IsDecimal() bool          { return p.Has(FlagDecimal) }
func (p OperatorProperties) IsTokenJoiner() bool      { return p.Has(FlagTokenJoiner) }
func (p OperatorProperties) IsSpecial() bool          { return p.Has(FlagSpecial) }
func (p OperatorProperties) IsAnnotation() bool       { return p.Has(FlagAnnotation) }
func (p OperatorProperties) IsAutoscope() bool        { return p.Has(FlagAutoscope) }
func (p OperatorProperties) IsArrow() bool            { return p.Has(FlagArrow) }
func (p OperatorProperties) IsSequence() bool         { return p.Has(FlagSequence) }
func (p OperatorProperties) IsSuspension() bool       { return p.Has(FlagSuspension) }
func (p OperatorProperties) IsLambda() bool           { return p.Has(FlagLambda) }
func (p OperatorProperties) IsDot() bool              { return p.Has(FlagDot) }

// CanFormSection reports whether the operator is meaningful with missing
// operands, as in `(+ 1)`.
func (p OperatorProperties) CanFormSection() bool { return !p.Has(FlagNoSection) }

// Prefix-only operators never take a left operand.
func (p OperatorProperties) IsPrefixOnly() bool { return p.IsUnary() && !p.IsBinary() }

var operators = map[string]OperatorProperties{
	"=":  {Binary: PrecAssignment, Assoc: AssocRight, Flags: FlagAssignment | FlagNoSection},
	"->": {Binary: PrecArrow, Assoc: AssocRight, Flags: FlagArrow | FlagNoSection},
	",":  {Binary: PrecSequence, Assoc: AssocRight, Flags: FlagSequence | FlagNoSection},
	":":  {Binary: PrecTypeAnnotation, Assoc: AssocLeft, Flags: FlagTypeAnnotation},
	"|>": {Binary: PrecPipe},
	"<|": {Binary: PrecPipe, Assoc: AssocRight},
	"||": {Binary: PrecOr},
	"|":  {Binary: PrecOr},
	"&&": {Binary: PrecAnd},
	"&":  {Binary: PrecAnd},
	"==": {Binary: PrecComparison},
	"!=": {Binary: PrecComparison},
	"<":  {Binary: PrecComparison},
	">":  {Binary: PrecComparison},
	"<=": {Binary: PrecComparison},
	">=": {Binary: PrecComparison},
	"+":  {Binary: PrecAdditive},
	"-":  {Binary: PrecAdditive, Unary: PrecUnary},
	"*":  {Binary: PrecMultiplicative},
	"/":  {Binary: PrecMultiplicative},
	"%":  {Binary: PrecMultiplicative},
	"^":  {Binary: PrecPower, Assoc: AssocRight},
	".":  {Binary: PrecDot, Flags: FlagDot},
	"?":  {Binary: PrecDefault, Flags: FlagSpecial},
	"@":  {Unary: PrecAnnotation, Flags: FlagAnnotation},
	"..": {Unary: PrecAnnotation, Flags: FlagAutoscope | FlagNoSection},
	"~":  {Unary: PrecUnary, Flags: FlagSuspension | FlagNoSection},
	"\\": {Unary: PrecUnary, Flags: FlagLambda | FlagNoSection},
}

// LookupOperator returns the properties of the operator spelled by code.
// Unknown operators are left-associative binary operators of PrecDefault.
func LookupOperator(code string) OperatorProperties {
	if p, ok := operators[code]; ok {
		return p
	}
	return OperatorProperties{Binary: PrecDefault}
}

// DecimalProperties are the properties of a `.` between two digit groups.
func DecimalProperties() OperatorProperties {
	return OperatorProperties{Binary: PrecJoin, Flags: FlagDecimal | FlagDot}
}

// JoinerProperties are the properties of the zero-length operator the lexer
// places between a number base and its digits.
func JoinerProperties() OperatorProperties {
	return OperatorProperties{Binary: PrecJoin, Flags: FlagTokenJoiner}
}

// IsOperatorByte reports whether b may appear in an operator.
func IsOperatorByte(b byte) bool {
	switch b {
	case '!', '$', '%', '&', '*', '+', '-', '/', '<', '>', '?', '^', '~', '|', ':', '.', '=', '@', '\\', ',':
		return true
	}
	return false
}

package tree_test

import (
	"testing"

	"cstree/internal/source"
	"cstree/internal/testkit"
	"cstree/internal/token"
	"cstree/internal/tree"
)

func mustFunction(t *testing.T, got *tree.Tree) *tree.Function {
	t.Helper()
	fn, ok := got.Variant.(*tree.Function)
	if !ok {
		t.Fatalf("expected Function, got %s", got.Variant.VariantName())
	}
	return fn
}

func TestFunctionDefinition(t *testing.T) {
	const text = "  f a b = a"
	src := testkit.NewSource(t, text)
	lhs := tree.Apply(tree.Apply(ident(src, "f"), ident(src, "a")), ident(src, "b"))
	eq := src.Operator("=")
	body := ident(src, "a")

	got := tree.ExpressionToStatement(tree.ApplyOperator(lhs, ops(eq), body))
	fn := mustFunction(t, got)
	if len(fn.Args) != 2 {
		t.Fatalf("args = %d, want 2", len(fn.Args))
	}
	if name := fn.Name.TrimmedCode(); name != "f" {
		t.Fatalf("name = %q", name)
	}
	if arg := fn.Args[1].Pattern.TrimmedCode(); arg != "b" {
		t.Fatalf("second arg = %q", arg)
	}
	if got.Span.LeftOffset.Len() != 2 {
		t.Fatalf("offset = %d, want 2", got.Span.LeftOffset.Len())
	}
	assertCode(t, got, text)
}

func TestAssignment(t *testing.T) {
	const text = "x = 1"
	src := testkit.NewSource(t, text)
	x := ident(src, "x")
	eq := src.Operator("=")
	one := tree.ToAST(src.Digits("1", token.BaseNone))

	got := tree.ExpressionToStatement(tree.ApplyOperator(x, ops(eq), one))
	if _, ok := got.Variant.(*tree.Assignment); !ok {
		t.Fatalf("expected Assignment, got %s", got.Variant.VariantName())
	}
	assertCode(t, got, text)
}

func TestConstructorPatternIsAssignment(t *testing.T) {
	const text = "Foo a = x"
	src := testkit.NewSource(t, text)
	lhs := tree.Apply(ident(src, "Foo"), ident(src, "a"))
	eq := src.Operator("=")
	got := tree.ExpressionToStatement(tree.ApplyOperator(lhs, ops(eq), ident(src, "x")))
	if _, ok := got.Variant.(*tree.Assignment); !ok {
		t.Fatalf("expected Assignment, got %s", got.Variant.VariantName())
	}
	assertCode(t, got, text)
}

func TestTypeSignature(t *testing.T) {
	const text = "x : Int"
	src := testkit.NewSource(t, text)
	x := ident(src, "x")
	colon := src.Operator(":")
	got := tree.ExpressionToStatement(tree.ApplyOperator(x, ops(colon), ident(src, "Int")))
	sig, ok := got.Variant.(*tree.TypeSignature)
	if !ok {
		t.Fatalf("expected TypeSignature, got %s", got.Variant.VariantName())
	}
	if sig.Type.TrimmedCode() != "Int" {
		t.Fatalf("type = %q", sig.Type.Code())
	}
	assertCode(t, got, text)
}

func TestDefaultArgument(t *testing.T) {
	const text = "f (x = 1) = x"
	src := testkit.NewSource(t, text)
	f := ident(src, "f")
	open := src.Next(token.OpenSymbol, "(")
	x := ident(src, "x")
	eq := src.Operator("=")
	one := tree.ToAST(src.Digits("1", token.BaseNone))
	closeTok := src.Next(token.CloseSymbol, ")")
	group := tree.New(&tree.Group{Open: &open, Body: tree.ApplyOperator(x, ops(eq), one), Close: &closeTok})
	lhs := tree.Apply(f, group)
	defEq := src.Operator("=")

	got := tree.ExpressionToStatement(tree.ApplyOperator(lhs, ops(defEq), ident(src, "x")))
	fn := mustFunction(t, got)
	if len(fn.Args) != 1 {
		t.Fatalf("args = %d", len(fn.Args))
	}
	arg := fn.Args[0]
	if arg.Open == nil || arg.Close == nil || arg.Default == nil {
		t.Fatalf("unexpected argument: %+v", arg)
	}
	if arg.Default.Expression.TrimmedCode() != "1" {
		t.Fatalf("default = %q", arg.Default.Expression.Code())
	}
	assertCode(t, got, text)
}

func TestTypedAndSuspendedArguments(t *testing.T) {
	const text = "f (x : Int) ~y = x"
	src := testkit.NewSource(t, text)
	f := ident(src, "f")
	open := src.Next(token.OpenSymbol, "(")
	x := ident(src, "x")
	colon := src.Operator(":")
	typ := ident(src, "Int")
	closeTok := src.Next(token.CloseSymbol, ")")
	group := tree.New(&tree.Group{Open: &open, Body: tree.ApplyOperator(x, ops(colon), typ), Close: &closeTok})
	tilde := src.Operator("~")
	y := tree.ApplyUnaryOperator(tilde, ident(src, "y"))
	lhs := tree.Apply(tree.Apply(f, group), y)
	eq := src.Operator("=")

	got := tree.ExpressionToStatement(tree.ApplyOperator(lhs, ops(eq), ident(src, "x")))
	fn := mustFunction(t, got)
	if len(fn.Args) != 2 {
		t.Fatalf("args = %d", len(fn.Args))
	}
	if fn.Args[0].Type == nil || fn.Args[0].Type.Type.TrimmedCode() != "Int" {
		t.Fatalf("first argument should be typed: %+v", fn.Args[0])
	}
	if fn.Args[1].Suspension == nil || fn.Args[1].Pattern.TrimmedCode() != "y" {
		t.Fatalf("second argument should be suspended: %+v", fn.Args[1])
	}
	assertCode(t, got, text)
}

func TestReturnSpecification(t *testing.T) {
	const text = "f x -> Int = x"
	src := testkit.NewSource(t, text)
	call := tree.Apply(ident(src, "f"), ident(src, "x"))
	arrow := src.Operator("->")
	lhs := tree.ApplyOperator(call, ops(arrow), ident(src, "Int"))
	eq := src.Operator("=")

	got := tree.ExpressionToStatement(tree.ApplyOperator(lhs, ops(eq), ident(src, "x")))
	fn := mustFunction(t, got)
	if fn.Returns == nil || fn.Returns.Type.TrimmedCode() != "Int" {
		t.Fatalf("missing return type: %+v", fn.Returns)
	}
	if len(fn.Args) != 1 {
		t.Fatalf("args = %d", len(fn.Args))
	}
	assertCode(t, got, text)
}

func TestMethodDefinition(t *testing.T) {
	const text = "Vec.len self = 0"
	src := testkit.NewSource(t, text)
	vec := ident(src, "Vec")
	dot := src.Operator(".")
	name := tree.ApplyOperator(vec, ops(dot), ident(src, "len"))
	lhs := tree.Apply(name, ident(src, "self"))
	eq := src.Operator("=")

	got := tree.ExpressionToStatement(tree.ApplyOperator(lhs, ops(eq), tree.ToAST(src.Digits("0", token.BaseNone))))
	fn := mustFunction(t, got)
	if fn.Name.TrimmedCode() != "Vec.len" {
		t.Fatalf("name = %q", fn.Name.Code())
	}
	assertCode(t, got, text)
}

func TestMissingBody(t *testing.T) {
	const text = "f a ="
	src := testkit.NewSource(t, text)
	lhs := tree.Apply(ident(src, "f"), ident(src, "a"))
	eq := src.Operator("=")

	got := tree.ExpressionToStatement(tree.ApplyOperator(lhs, ops(eq), nil))
	inv := mustInvalid(t, got, tree.OperatorArityError, "after `=`")
	if _, ok := inv.AST.Variant.(*tree.Function); !ok {
		t.Fatalf("expected Function under Invalid, got %s", inv.AST.Variant.VariantName())
	}
	assertCode(t, got, text)
}

func TestOtherExpressionsAreUnchanged(t *testing.T) {
	const text = "f a"
	src := testkit.NewSource(t, text)
	expr := tree.Apply(ident(src, "f"), ident(src, "a"))
	if got := tree.ExpressionToStatement(expr); got != expr {
		t.Fatalf("expression was rewritten to %s", got.Variant.VariantName())
	}
}

func TestBodyFromLines(t *testing.T) {
	const text = "x = 1\nf a = a\n"
	src := testkit.NewSource(t, text)
	first := token.New(token.Newline, source.EmptyOffsetAt(0), source.EmptyCodeAt(0))
	x := ident(src, "x")
	eq := src.Operator("=")
	assign := tree.ApplyOperator(x, ops(eq), tree.ToAST(src.Digits("1", token.BaseNone)))
	nl := src.Next(token.Newline, "\n")
	fa := tree.Apply(ident(src, "f"), ident(src, "a"))
	eq2 := src.Operator("=")
	def := tree.ApplyOperator(fa, ops(eq2), ident(src, "a"))
	last := src.Next(token.Newline, "\n")

	body := tree.BodyFromLines([]tree.Line{
		{Newline: first, Expression: assign},
		{Newline: nl, Expression: def},
		{Newline: last},
	})
	block, ok := body.Variant.(*tree.BodyBlock)
	if !ok {
		t.Fatalf("expected BodyBlock, got %s", body.Variant.VariantName())
	}
	if _, ok := block.Statements[0].Expression.Variant.(*tree.Assignment); !ok {
		t.Fatalf("first statement: %s", block.Statements[0].Expression.Variant.VariantName())
	}
	mustFunction(t, block.Statements[1].Expression)
	if block.Statements[2].Expression != nil {
		t.Fatal("trailing line should be empty")
	}
	assertCode(t, body, text)
}

package tree_test

import (
	"testing"

	"cstree/internal/source"
	"cstree/internal/testkit"
	"cstree/internal/token"
	"cstree/internal/tree"
)

func TestNamedAppSugar(t *testing.T) {
	for _, text := range []string{"f x=y", "f x = y"} {
		src := testkit.NewSource(t, text)
		f := ident(src, "f")
		x := ident(src, "x")
		eq := src.Operator("=")
		arg := tree.ApplyOperator(x, ops(eq), ident(src, "y"))

		got := tree.Apply(f, arg)
		named, ok := got.Variant.(*tree.NamedApp)
		if !ok {
			t.Fatalf("%q: expected NamedApp, got %s", text, got.Variant.VariantName())
		}
		if named.Name.Text() != "x" || named.Open != nil || named.Close != nil {
			t.Fatalf("%q: unexpected NamedApp %+v", text, named)
		}
		assertCode(t, got, text)
	}
}

func TestNamedAppInGroup(t *testing.T) {
	const text = "f  ( x = y)"
	src := testkit.NewSource(t, text)
	f := ident(src, "f")
	open := src.Next(token.OpenSymbol, "(")
	x := ident(src, "x")
	eq := src.Operator("=")
	body := tree.ApplyOperator(x, ops(eq), ident(src, "y"))
	closeTok := src.Next(token.CloseSymbol, ")")
	group := tree.New(&tree.Group{Open: &open, Body: body, Close: &closeTok})

	got := tree.Apply(f, group)
	named, ok := got.Variant.(*tree.NamedApp)
	if !ok {
		t.Fatalf("expected NamedApp, got %s", got.Variant.VariantName())
	}
	if named.Open == nil || named.Close == nil || named.Name.Text() != "x" {
		t.Fatalf("delimiters or name lost: %+v", named)
	}
	assertCode(t, got, text)
}

func TestAssignmentToNonIdentIsPlainApp(t *testing.T) {
	const text = "f 1=y"
	src := testkit.NewSource(t, text)
	f := ident(src, "f")
	one := tree.ToAST(src.Digits("1", token.BaseNone))
	eq := src.Operator("=")
	arg := tree.ApplyOperator(one, ops(eq), ident(src, "y"))
	got := tree.Apply(f, arg)
	if _, ok := got.Variant.(*tree.App); !ok {
		t.Fatalf("expected App, got %s", got.Variant.VariantName())
	}
	assertCode(t, got, text)
}

// block builds an unattached argument block from "\n<line>" pairs.
func block(t *testing.T, src *testkit.Source, lines ...string) *tree.Tree {
	t.Helper()
	out := make([]tree.Line, 0, len(lines))
	for _, l := range lines {
		nl := src.Next(token.Newline, "\n")
		out = append(out, tree.Line{Newline: nl, Expression: ident(src, l)})
	}
	return tree.New(&tree.ArgumentBlockApplication{Arguments: out})
}

func TestArgumentBlockTakesHead(t *testing.T) {
	const text = " foo  \n    a\n    b"
	src := testkit.NewSource(t, text)
	foo := ident(src, "foo")
	blk := block(t, src, "a", "b")

	got := tree.Apply(foo, blk)
	if got != blk {
		t.Fatal("the block should become the result")
	}
	v := got.Variant.(*tree.ArgumentBlockApplication)
	if v.LHS != foo {
		t.Fatal("head not attached")
	}
	if got.Span.LeftOffset.Code.Repr != " " {
		t.Fatalf("block should take the head's offset, got %q", got.Span.LeftOffset.Code.Repr)
	}
	if v.Arguments[0].Newline.LeftOffset.Code.Repr != "  " {
		t.Fatalf("first newline should get the trailing offset back, got %q", v.Arguments[0].Newline.LeftOffset.Code.Repr)
	}
	assertCode(t, got, text)
}

func TestOperatorBlockTakesHead(t *testing.T) {
	const text = "foo\n    + a\n    * b"
	src := testkit.NewSource(t, text)
	foo := ident(src, "foo")
	var lines []tree.OperatorLine
	for _, l := range []struct{ op, arg string }{{"+", "a"}, {"*", "b"}} {
		nl := src.Next(token.Newline, "\n")
		op := src.Operator(l.op)
		lines = append(lines, tree.OperatorLine{
			Newline:    nl,
			Expression: &tree.OperatorBlockExpression{Operator: tree.Operator(op), Expression: ident(src, l.arg)},
		})
	}
	blk := tree.New(&tree.OperatorBlockApplication{Expressions: lines})

	got := tree.Apply(foo, blk)
	if v, ok := got.Variant.(*tree.OperatorBlockApplication); !ok || v.LHS != foo {
		t.Fatalf("expected attached operator block, got %s", got.Variant.VariantName())
	}
	assertCode(t, got, text)
}

func TestOperatorFollowedByBlockGetsBody(t *testing.T) {
	const text = "main = \n    a\n    b"
	t.Run("apply", func(t *testing.T) {
		src := testkit.NewSource(t, text)
		main := ident(src, "main")
		eq := src.Operator("=")
		opr := tree.ApplyOperator(main, ops(eq), nil)
		got := tree.Apply(opr, block(t, src, "a", "b"))
		v, ok := got.Variant.(*tree.OprApp)
		if !ok || v.RHS == nil {
			t.Fatalf("expected OprApp with rhs, got %s", got.Variant.VariantName())
		}
		if _, ok := v.RHS.Variant.(*tree.BodyBlock); !ok {
			t.Fatalf("rhs should be a BodyBlock, got %s", v.RHS.Variant.VariantName())
		}
		assertCode(t, got, text)
	})
	t.Run("apply operator", func(t *testing.T) {
		src := testkit.NewSource(t, text)
		main := ident(src, "main")
		eq := src.Operator("=")
		blk := block(t, src, "a", "b")
		got := tree.ApplyOperator(main, ops(eq), blk)
		v, ok := got.Variant.(*tree.OprApp)
		if !ok {
			t.Fatalf("expected OprApp, got %s", got.Variant.VariantName())
		}
		if _, ok := v.RHS.Variant.(*tree.BodyBlock); !ok {
			t.Fatalf("rhs should be a BodyBlock, got %s", v.RHS.Variant.VariantName())
		}
		assertCode(t, got, text)
	})
}

func TestToAST(t *testing.T) {
	const text = "x 12 0b _ ... ( ) \n"
	src := testkit.NewSource(t, text)

	tests := []struct {
		tok  token.Token
		want string
	}{
		{src.Ident("x"), "Ident"},
		{src.Digits("12", token.BaseNone), "Number"},
		{src.Next(token.NumberBase, "0b"), "Number"},
		{src.Next(token.Wildcard, "_"), "Wildcard"},
		{src.Next(token.SuspendedDefaultArguments, "..."), "SuspendedDefaultArguments"},
		{src.Next(token.OpenSymbol, "("), "Invalid"},
		{src.Next(token.CloseSymbol, ")"), "Invalid"},
		{src.Next(token.Newline, "\n"), "Invalid"},
	}
	for _, tt := range tests {
		got := tree.ToAST(tt.tok)
		if got.Variant.VariantName() != tt.want {
			t.Errorf("%s %q: got %s, want %s", tt.tok.Kind, tt.tok.Text(), got.Variant.VariantName(), tt.want)
		}
		if got.Code() != tt.tok.LeftOffset.Code.Repr+tt.tok.Text() {
			t.Errorf("%s: code %q", tt.tok.Kind, got.Code())
		}
	}

	w := tree.ToAST(token.New(token.Wildcard, source.EmptyOffsetAt(0), source.CodeAt("_", 0, 1)))
	if w.Variant.(*tree.Wildcard).DeBruijnIndex != tree.NoDeBruijnIndex {
		t.Error("fresh wildcard must not have an index")
	}
}

func TestToASTUnmatchedDelimiter(t *testing.T) {
	src := testkit.NewSource(t, "(")
	got := tree.ToAST(src.Next(token.OpenSymbol, "("))
	inv := mustInvalid(t, got, tree.StructuralError, "Unmatched delimiter")
	g, ok := inv.AST.Variant.(*tree.Group)
	if !ok {
		t.Fatalf("expected Group, got %s", inv.AST.Variant.VariantName())
	}
	if g.Open == nil || g.Body != nil || g.Close != nil {
		t.Fatalf("unexpected group %+v", g)
	}
}

func TestToASTUnexpectedToken(t *testing.T) {
	src := testkit.NewSource(t, " +")
	got := tree.ToAST(src.Operator("+"))
	inv := mustInvalid(t, got, tree.StructuralError, "Unexpected token")
	if _, ok := inv.AST.Variant.(*tree.Ident); !ok {
		t.Fatalf("expected placeholder Ident, got %s", inv.AST.Variant.VariantName())
	}
	assertCode(t, got, " +")
}

// A block with no lines cannot hand its offset to a first line, so it must
// stay a plain argument that keeps the offset itself.
func TestEmptyBlockKeepsItsOffset(t *testing.T) {
	const text = "f   "
	blocks := map[string]func() tree.Variant{
		"argument block": func() tree.Variant { return &tree.ArgumentBlockApplication{} },
		"operator block": func() tree.Variant { return &tree.OperatorBlockApplication{} },
	}
	for name, mk := range blocks {
		t.Run(name, func(t *testing.T) {
			src := testkit.NewSource(t, text)
			f := ident(src, "f")
			blk := tree.New(mk())
			blk.Span = source.Span{LeftOffset: source.NewOffset(source.CodeAt(text, 1, 4))}

			got := tree.Apply(f, blk)
			if _, ok := got.Variant.(*tree.App); !ok {
				t.Fatalf("expected App, got %s", got.Variant.VariantName())
			}
			assertCode(t, got, text)
		})
	}
}

func TestOperatorBeforeEmptyBlock(t *testing.T) {
	const text = "a =   "
	src := testkit.NewSource(t, text)
	a := ident(src, "a")
	eq := src.Operator("=")
	blk := tree.New(&tree.ArgumentBlockApplication{})
	blk.Span = source.Span{LeftOffset: source.NewOffset(source.CodeAt(text, 3, 6))}

	got := tree.ApplyOperator(a, ops(eq), blk)
	v, ok := got.Variant.(*tree.OprApp)
	if !ok || v.RHS != blk {
		t.Fatalf("expected OprApp keeping the block, got %s", got.Variant.VariantName())
	}
	assertCode(t, got, text)
}

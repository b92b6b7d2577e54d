package tree_test

import (
	"testing"

	"cstree/internal/source"
	"cstree/internal/testkit"
	"cstree/internal/token"
	"cstree/internal/tree"
)

func TestJoinTextWithSplice(t *testing.T) {
	const text = "'a`x`b'"
	src := testkit.NewSource(t, text)
	lit := tree.ToAST(src.Next(token.TextStart, "'"))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextSection, "a")))

	open := src.Next(token.OpenSymbol, "`")
	x := ident(src, "x")
	closeTok := src.Next(token.CloseSymbol, "`")
	splice := tree.New(&tree.TextLiteral{Elements: []tree.TextElement{
		&tree.TextSplice{Open: open, Expression: x, Close: closeTok},
	}})
	lit = tree.JoinText(lit, splice)
	if !tree.IsOpenText(lit) {
		t.Fatal("literal closed too early")
	}
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextSection, "b")))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextEnd, "'")))

	v, ok := lit.Variant.(*tree.TextLiteral)
	if !ok {
		t.Fatalf("expected TextLiteral, got %s", lit.Variant.VariantName())
	}
	if !v.Closed || v.Close == nil || len(v.Elements) != 3 {
		t.Fatalf("unexpected literal: closed=%v close=%v elements=%d", v.Closed, v.Close, len(v.Elements))
	}
	if _, ok := v.Elements[1].(*tree.TextSplice); !ok {
		t.Fatalf("second element should be the splice, got %T", v.Elements[1])
	}
	assertCode(t, lit, text)
}

func TestJoinTextLiteralsMovesFragmentOffset(t *testing.T) {
	// Fragments inside a literal have no offsets of their own in practice,
	// but whatever precedes one must survive the join.
	const text = "'a  b"
	src := testkit.NewSource(t, text)
	lit := tree.ToAST(src.Next(token.TextStart, "'"))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextSection, "a")))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextEscape, "b")))
	assertCode(t, lit, text)
}

func TestEmptyTextEnd(t *testing.T) {
	const text = "'abc"
	src := testkit.NewSource(t, text)
	lit := tree.ToAST(src.Next(token.TextStart, "'"))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextSection, "abc")))
	end := token.New(token.TextEnd, source.EmptyOffsetAt(src.Pos()), source.EmptyCodeAt(src.Pos()))

	closing := tree.ToAST(end)
	if v := closing.Variant.(*tree.TextLiteral); !v.Closed || v.Close != nil {
		t.Fatalf("empty end should be closed without a token: %+v", v)
	}
	lit = tree.JoinText(lit, closing)
	if tree.IsOpenText(lit) {
		t.Fatal("literal should be closed")
	}
	assertCode(t, lit, text)
}

func TestJoinTextOnClosedLiteralApplies(t *testing.T) {
	const text = "'a' b"
	src := testkit.NewSource(t, text)
	lit := tree.ToAST(src.Next(token.TextStart, "'"))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextSection, "a")))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextEnd, "'")))
	got := tree.JoinText(lit, ident(src, "b"))
	if _, ok := got.Variant.(*tree.App); !ok {
		t.Fatalf("expected App, got %s", got.Variant.VariantName())
	}
	assertCode(t, got, text)
}

func TestTextNewlines(t *testing.T) {
	const text = "\"\"\"\n  a\n  b"
	src := testkit.NewSource(t, text)
	lit := tree.ToAST(src.Next(token.TextStart, "\"\"\""))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextInitialNewline, "\n")))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextSection, "  a")))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextNewline, "\n")))
	lit = tree.JoinText(lit, tree.ToAST(src.Next(token.TextSection, "  b")))

	v := lit.Variant.(*tree.TextLiteral)
	if v.Newline == nil || len(v.Elements) != 3 {
		t.Fatalf("unexpected literal: newline=%v elements=%d", v.Newline, len(v.Elements))
	}
	if _, ok := v.Elements[1].(*tree.TextNewline); !ok {
		t.Fatalf("expected newline element, got %T", v.Elements[1])
	}
	assertCode(t, lit, text)
}

func TestCutOffTextEndKeepsPosition(t *testing.T) {
	const text = "x = 'abc"
	src := testkit.NewSource(t, text)
	src.Ident("x")
	src.Operator("=")
	src.Next(token.TextStart, "'")
	src.Next(token.TextSection, "abc")
	end := src.Next(token.TextEnd, "")

	got := tree.ToAST(end)
	if got.Start() != 8 || got.End() != 8 {
		t.Fatalf("empty TextEnd placed at %d-%d, want 8-8", got.Start(), got.End())
	}
}

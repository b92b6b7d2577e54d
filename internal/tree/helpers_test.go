package tree_test

import (
	"strings"
	"testing"

	"cstree/internal/testkit"
	"cstree/internal/token"
	"cstree/internal/tree"
)

// assertCode checks that t reproduces text and that its spans tile it.
func assertCode(t *testing.T, got *tree.Tree, text string) {
	t.Helper()
	if code := got.Code(); code != text {
		var sb strings.Builder
		_ = tree.Dump(&sb, got)
		t.Fatalf("code mismatch:\n got: %q\nwant: %q\n%s", code, text, sb.String())
	}
	if err := testkit.CheckSpans(got, text); err != nil {
		t.Fatalf("span coverage: %v", err)
	}
}

func ops(toks ...token.Token) []token.Token { return toks }

func ident(src *testkit.Source, code string) *tree.Tree {
	return tree.ToAST(src.Ident(code))
}

func mustInvalid(t *testing.T, got *tree.Tree, kind tree.ErrorKind, msgPart string) *tree.Invalid {
	t.Helper()
	inv, ok := got.Variant.(*tree.Invalid)
	if !ok {
		t.Fatalf("expected Invalid, got %s", got.Variant.VariantName())
	}
	if inv.Error.Kind != kind {
		t.Fatalf("error kind = %s, want %s", inv.Error.Kind, kind)
	}
	if !strings.Contains(inv.Error.Message, msgPart) {
		t.Fatalf("message %q does not mention %q", inv.Error.Message, msgPart)
	}
	return inv
}

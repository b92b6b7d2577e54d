package testkit

import "cstree/internal/tree"

// CheckSpans fails unless t tiles text exactly. See tree.CheckSpans.
func CheckSpans(t *tree.Tree, text string) error {
	return tree.CheckSpans(t, text)
}

package tree

import (
	"fmt"
	"strings"
)

// Problem is an error recorded in a tree.
type Problem struct {
	Error Error
	Tree  *Tree
	Start uint32 // absolute position of the offending code
	End   uint32
}

// Problems lists every Invalid node and every run of operators under t, in
// source order. Nested problems are reported too.
func Problems(t *Tree) []Problem {
	var out []Problem
	VisitTrees(t, func(n *Tree) bool {
		switch v := n.Variant.(type) {
		case *Invalid:
			out = append(out, Problem{Error: v.Error, Tree: n, Start: n.Start(), End: n.End()})
		case *OprApp:
			if v.Opr.Multiple != nil {
				ops := v.Opr.Multiple.Operators
				codes := make([]string, len(ops))
				for i := range ops {
					codes[i] = ops[i].Text()
				}
				out = append(out, Problem{
					Error: Error{
						Kind:    OperatorArityError,
						Message: fmt.Sprintf("Multiple operators in a row: `%s`.", strings.Join(codes, " ")),
					},
					Tree:  n,
					Start: ops[0].Start(),
					End:   ops[len(ops)-1].Code.End(),
				})
			}
		}
		return true
	})
	return out
}

// HasProblems reports whether t contains any Invalid node or operator run.
func HasProblems(t *Tree) bool {
	return len(Problems(t)) > 0
}

// Package tree is the concrete syntax tree and the reducer that builds it.
//
// Every byte of the source is owned by exactly one offset or token code in
// the tree, so Code(t) reproduces the text t was built from. Trees are
// assembled bottom-up: ToAST turns single tokens into leaves and Apply,
// ApplyOperator, ApplyUnaryOperator and JoinTextLiterals combine finished
// subtrees. None of them fail; malformed input is recorded as Invalid nodes.
package tree

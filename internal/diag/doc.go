// Package diag defines the diagnostic model shared by the lexer, the parser
// driver and the checker.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEX1xxx lexical, SYN2xxx syntax, IO4xxx I/O, CST5xxx tree
// invariants), a message, a primary source.Range and optional notes.
//
// Phases emit through a Reporter so they do not depend on storage. BagReporter
// collects into a Bag, which supports limits, sorting, deduplication and
// filtering. Rendering lives in internal/diagfmt.
//
// Syntax errors found in a tree are never Go errors: they are Invalid nodes,
// and the driver converts them into diagnostics after the tree is built.
package diag

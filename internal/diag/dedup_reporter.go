package diag

import (
	"sync"

	"cstree/internal/source"
)

// DedupReporter forwards a diagnostic only the first time a given code,
// severity, primary range and message is seen. The lexer and the parser may
// both flag the same byte; only one report survives. Safe for concurrent use.
type DedupReporter struct {
	next Reporter

	mu         sync.Mutex
	seen       map[reportKey]struct{}
	suppressed int
}

type reportKey struct {
	code Code
	sev  Severity
	rng  source.Range
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Range, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := reportKey{code: code, sev: sev, rng: primary, msg: msg}
	r.mu.Lock()
	_, dup := r.seen[key]
	if dup {
		r.suppressed++
	} else {
		r.seen[key] = struct{}{}
	}
	r.mu.Unlock()
	if !dup && r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many duplicates were dropped.
func (r *DedupReporter) Suppressed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suppressed
}

package diag

import (
	"cmp"
	"slices"

	"cstree/internal/source"
)

// Bag collects the diagnostics of one file or one run. It is not safe for
// concurrent use; share it through a BagReporter.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0 means no limit.
func NewBag(limit int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max(limit, 0), 64)),
		limit: limit,
	}
}

// Add кладёт диагностику в мешок. После лимита диагностики только
// считаются, и Add возвращает false.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap returns the limit the bag was created with.
func (b *Bag) Cap() int { return b.limit }

// Dropped counts diagnostics rejected because the bag was full.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the diagnostics in insertion order (or sorted, after Sort).
// The slice is shared with the bag.
func (b *Bag) Items() []Diagnostic { return b.items }

// Count returns how many diagnostics have exactly severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// HasErrors reports whether the bag has an error.
func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

// HasWarnings reports whether the bag has a warning or an error.
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

// Merge appends the diagnostics of other. A limited bag grows to fit them.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.limit > 0 {
		b.limit = max(b.limit, len(b.items)+len(other.items))
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders diagnostics by file and range; at one range errors go first,
// then codes ascending. Equal diagnostics keep their relative order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic per code and primary range.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		at   source.Range
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}

// Filter keeps only diagnostics at or above sev.
func (b *Bag) Filter(sev Severity) {
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return d.Severity < sev })
}

// Truncate drops everything after the first n diagnostics.
func (b *Bag) Truncate(n int) {
	if n >= 0 && n < len(b.items) {
		b.items = b.items[:n]
	}
}

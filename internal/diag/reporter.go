package diag

import (
	"sync"

	"cstree/internal/source"
)

// Reporter receives diagnostics from the lexer, the parser and the driver.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Range, msg string, notes []Note)
}

// ReportBuilder collects notes for one diagnostic; Emit hands it over.
// A nil builder is a no-op, so chains need no checks.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	done bool
}

func report(r Reporter, sev Severity, code Code, primary source.Range, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Range, msg string) *ReportBuilder {
	return report(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Range, msg string) *ReportBuilder {
	return report(r, SevWarning, code, primary, msg)
}

func (b *ReportBuilder) WithNote(r source.Range, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(r, msg)
	}
	return b
}

// Emit отправляет диагностику; повторный вызов ничего не делает.
func (b *ReportBuilder) Emit() {
	if b == nil || b.done {
		return
	}
	b.done = true
	if b.to != nil {
		b.to.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes)
	}
}

// BagReporter adds everything it receives to Bag under a mutex, so one bag
// can be fed from several goroutines.
type BagReporter struct {
	Bag *Bag
	mu  sync.Mutex
}

func (r *BagReporter) Report(code Code, sev Severity, primary source.Range, msg string, notes []Note) {
	if r == nil || r.Bag == nil {
		return
	}
	d := New(sev, code, primary, msg)
	d.Notes = notes
	r.mu.Lock()
	r.Bag.Add(d)
	r.mu.Unlock()
}

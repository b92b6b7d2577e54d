package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RingTracer keeps the last N events in memory.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	head   int  // next write position
	full   bool // has wrapped around
	level  Level
	start  time.Time
}

// NewRingTracer creates a ring of the given capacity (4096 when <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level, start: time.Now()}
}

// Emit stores ev, overwriting the oldest event when full. At LevelError
// the ring still records driver and pass spans for the crash dump.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.records(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.head] = *ev
	t.head = (t.head + 1) % len(t.events)
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns a copy of all stored events in chronological order.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.head]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.head:]...)
	return append(out, t.events[:t.head]...)
}

// Dump writes all stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format, t.start)); err != nil {
			return err
		}
	}
	return nil
}

// DumpOnPanic is deferred by the CLI: when a panic is unwinding it writes
// the ring to w and re-panics.
func (t *RingTracer) DumpOnPanic(w io.Writer) {
	if r := recover(); r != nil {
		fmt.Fprintf(w, "panic: %v\n--- last trace events ---\n", r)
		_ = t.Dump(w, FormatText)
		panic(r)
	}
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase records the duration of one driver phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the phases of a run. It is safe for concurrent use: files
// checked in parallel add their phases to one Timer.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index. A nil Timer returns -1.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Measure runs fn as a phase named name.
func (t *Timer) Measure(name string, fn func()) {
	if t == nil {
		fn()
		return
	}
	idx := t.Begin(name)
	fn()
	t.End(idx, "")
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report сворачивает фазы с одинаковым именем в одну строку в порядке
// первого появления.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var report Report
	index := make(map[string]int, len(t.phases))
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		i, ok := index[p.Name]
		if !ok {
			i = len(report.Phases)
			index[p.Name] = i
			report.Phases = append(report.Phases, PhaseReport{Name: p.Name, Note: p.Note})
		}
		report.Phases[i].DurationMS += durationToMillis(p.Dur)
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary returns a human-readable table of the phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-20s %9.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

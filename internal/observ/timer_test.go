package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerMergesPhasesByName(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Measure("parse", func() {})
		}()
	}
	wg.Wait()
	tm.End(tm.Begin("check"), "8 files")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %+v", report.Phases)
	}
	if report.Phases[0].Name != "parse" || report.Phases[1].Name != "check" {
		t.Errorf("unexpected order %+v", report.Phases)
	}
	if report.Phases[1].Note != "8 files" {
		t.Errorf("note lost: %+v", report.Phases[1])
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "parse", "check", "// 8 files", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary misses %q:\n%s", want, summary)
		}
	}
}

func TestTimerIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "")
	if got := tm.Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Fatalf("unexpected report %+v", got)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	ran := false
	tm.Measure("y", func() { ran = true })
	if idx != -1 || !ran {
		t.Fatalf("idx=%d ran=%v", idx, ran)
	}
}

package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopePass, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "PHASE", "Detail", "debug"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestSpansNestThroughContext(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	pass, ctx := Start(ctx, ScopePass, "parse")
	file, _ := Start(ctx, ScopeFile, "file:a.enso")
	file.WithExtra("nodes", "12").End("")
	pass.End("1 file")

	var events []jsonEvent
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		var ev jsonEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad NDJSON line %q: %v", line, err)
		}
		events = append(events, ev)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(events), buf.String())
	}
	if events[1].ParentID != events[0].SpanID || events[1].Name != "file:a.enso" {
		t.Errorf("file span should be a child of the pass span: %+v", events[1])
	}
	if events[2].Kind != "end" || events[2].Extra["nodes"] != "12" {
		t.Errorf("unexpected end event %+v", events[2])
	}
	if events[3].Detail != "1 file" {
		t.Errorf("unexpected pass end %+v", events[3])
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	span, ctx := Start(context.Background(), ScopePass, "parse")
	if span.ID() != 0 || CurrentSpan(ctx) != 0 {
		t.Fatal("nop tracer must not record spans")
	}
	span.WithExtra("k", "v").End("")
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: name})
	}
	snap := ring.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• e") {
		t.Errorf("dump misses the last event:\n%s", buf.String())
	}
}

func TestRingAtErrorLevelKeepsPasses(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	Begin(ring, ScopePass, "check", 0).End("")
	Begin(ring, ScopeFile, "file:x", 0).End("")
	if got := len(ring.Snapshot()); got != 2 {
		t.Fatalf("expected only the pass span, got %d events", got)
	}
}

func TestNewFromConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff should give Nop, got %v %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok || multi.Ring() == nil {
		t.Fatalf("ModeBoth should fan out to a ring, got %T", tr)
	}
	Begin(tr, ScopeDriver, "check", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "→ check") {
		t.Errorf("stream output misses the span:\n%s", buf.String())
	}
	if len(multi.Ring().Snapshot()) != 2 {
		t.Errorf("ring should hold both events")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []StorageMode{ModeStream, ModeRing, ModeBoth} {
		got, err := ParseMode(strings.ToUpper(m.String()))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected an error")
	}
	if StorageMode(0).String() != "unknown" {
		t.Error("zero mode should be unknown")
	}
}

package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if l.String() != s {
			t.Errorf("round trip %s -> %s", s, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, true},
		{LevelError, ScopeFile, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopePass, false},
		{LevelDetail, ScopePass, true},
		{LevelDetail, ScopeItem, false},
		{LevelDebug, ScopeItem, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	root := Begin(tr, ScopeFile, "file:a.cnd", 0)
	pass := Begin(tr, ScopePass, "parse", root.ID())
	pass.WithExtra("items", "2").End("")
	Begin(tr, ScopeItem, "fn main", pass.ID()).End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	checks := []string{"→ file:a.cnd", "  → parse", "← parse {items=2}", "← file:a.cnd (ok)"}
	for i, want := range checks {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want substring %q", i, lines[i], want)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "build", 0).End("3 files")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev map[string]any
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		kinds = append(kinds, ev["kind"].(string))
		if ev["scope"] != "driver" {
			t.Errorf("scope = %v", ev["scope"])
		}
	}
	if strings.Join(kinds, ",") != "begin,end" {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeItem, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot has %d events", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("event %d = %s, want %s", i, snap[i].Name, want)
		}
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level must give a disabled tracer, err=%v", err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	Begin(tr, ScopeDriver, "build", 0).End("")
	if buf.Len() == 0 {
		t.Errorf("stream half wrote nothing")
	}
	ring := RingOf(tr)
	if ring == nil || len(ring.Snapshot()) != 2 {
		t.Errorf("ring half should hold both events")
	}

	if _, err := ParseMode("disk"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := Start(ctx, ScopeFile, "file")
	_, inner := Start(ctx, ScopePass, "lex")
	inner.End("")
	outer.End("")

	if CurrentSpan(ctx) != outer.ID() {
		t.Errorf("context should carry the outer span")
	}
	if !strings.Contains(buf.String(), `"parent_id":`) {
		t.Errorf("inner span must record its parent:\n%s", buf.String())
	}
	if FromContext(context.Background()) != Nop {
		t.Errorf("empty context must give Nop")
	}
}

func TestDisabledSpanStillTimes(t *testing.T) {
	s := Begin(Nop, ScopePass, "emit", 0)
	time.Sleep(time.Millisecond)
	if s.End("") <= 0 {
		t.Errorf("inert span should still measure its duration")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatalf("no heartbeat recorded")
	}
	if StartHeartbeat(Nop, time.Second) != nil {
		t.Errorf("heartbeat on a disabled tracer must be nil")
	}
}

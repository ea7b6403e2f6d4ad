package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	time.Sleep(time.Millisecond)
	tm.End(idx, "3 items")
	tm.End(99, "ignored")

	report := tm.Report()
	if len(report.Phases) != 1 || report.Phases[0].Name != "parse" {
		t.Fatalf("unexpected phases: %+v", report.Phases)
	}
	if report.Phases[0].DurationMS <= 0 || report.TotalMS != report.Phases[0].DurationMS {
		t.Errorf("durations: %+v", report)
	}
	summary := tm.Summary()
	for _, want := range []string{"timings:", "parse", "// 3 items", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerAddConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("lex", time.Millisecond)
			tm.Add("parse", 2*time.Millisecond)
		}()
	}
	wg.Wait()

	phases := tm.Phases()
	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	for _, p := range phases {
		if p.Count != 8 {
			t.Errorf("%s count = %d", p.Name, p.Count)
		}
	}
	if got := tm.Report().TotalMS; got != 24 {
		t.Errorf("total = %v ms, want 24", got)
	}
	if !strings.Contains(tm.Summary(), "x8") {
		t.Errorf("summary should show file counts:\n%s", tm.Summary())
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("empty timer report = %+v", r)
	}
}

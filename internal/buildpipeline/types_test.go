package buildpipeline

import (
	"sync"
	"testing"
	"time"
)

func TestTimingsSum(t *testing.T) {
	var tm Timings
	tm.Add(StageParse, 2*time.Millisecond)
	tm.Add(StageParse, 3*time.Millisecond)
	tm.Add(StageEmit, time.Millisecond)

	if !tm.Has(StageParse) || tm.Has(StageWrite) {
		t.Errorf("Has reports wrong stages")
	}
	if got := tm.Duration(StageParse); got != 5*time.Millisecond {
		t.Errorf("parse = %v", got)
	}
	if got := tm.Sum(); got != 6*time.Millisecond {
		t.Errorf("sum = %v", got)
	}
	if got := tm.Sum(StageEmit, StageLoad); got != time.Millisecond {
		t.Errorf("partial sum = %v", got)
	}
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 4)
	EmitQueued(ChannelSink{Ch: ch}, []string{"a.cnd", "b.cnd"})
	close(ch)
	var files []string
	for ev := range ch {
		if ev.Status != StatusQueued {
			t.Errorf("status = %s", ev.Status)
		}
		files = append(files, ev.File)
	}
	if len(files) != 2 || files[0] != "a.cnd" {
		t.Errorf("files = %v", files)
	}

	var mu sync.Mutex
	var got []Status
	sink := FuncSink(func(ev Event) {
		mu.Lock()
		got = append(got, ev.Status)
		mu.Unlock()
	})
	Emit(sink, Event{Status: StatusDone})
	Emit(nil, Event{Status: StatusError})
	if len(got) != 1 || got[0] != StatusDone {
		t.Errorf("got %v", got)
	}
	if !StatusCached.Terminal() || StatusDone.Terminal() {
		t.Errorf("Terminal misclassifies statuses")
	}
}

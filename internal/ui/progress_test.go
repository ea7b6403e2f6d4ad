package ui

import (
	"strings"
	"testing"
	"time"

	"cinder/internal/buildpipeline"
)

func TestProgressModelEvents(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("build", []string{"a.cnd", "b.cnd"}, events).(*progressModel)

	m.applyEvent(buildpipeline.Event{File: "a.cnd", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Errorf("status = %q", m.items[0].status)
	}
	m.applyEvent(buildpipeline.Event{File: "a.cnd", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone, Elapsed: time.Millisecond})
	m.applyEvent(buildpipeline.Event{File: "a.cnd", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone, Elapsed: time.Millisecond})
	if !m.items[0].finished || m.items[0].status != "done" {
		t.Errorf("a.cnd should be finished: %+v", m.items[0])
	}
	m.applyEvent(buildpipeline.Event{File: "b.cnd", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusError})
	if !m.items[1].finished || m.items[1].status != "error" {
		t.Errorf("b.cnd should have failed: %+v", m.items[1])
	}
	// after the terminal event nothing changes
	m.applyEvent(buildpipeline.Event{File: "b.cnd", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusWorking})
	if m.items[1].status != "error" {
		t.Errorf("status changed after finish: %q", m.items[1].status)
	}
	if got := m.percent(); got != 1.0 {
		t.Errorf("percent = %v", got)
	}
	if m.timings.Duration(buildpipeline.StageParse) != time.Millisecond {
		t.Errorf("parse timing = %v", m.timings.Duration(buildpipeline.StageParse))
	}

	m.done = true
	view := m.View()
	for _, want := range []string{"done: build [2/2]", "a.cnd", "error", "parse"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressFromStage(t *testing.T) {
	if progressFromStage(buildpipeline.StageLoad) != 0 {
		t.Error("load starts at zero")
	}
	if a, b := progressFromStage(buildpipeline.StageParse), progressFromStage(buildpipeline.StageEmit); a >= b {
		t.Errorf("parse %v >= emit %v", a, b)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("a/very/long/path.cnd", 10); got != "a/very/..." {
		t.Errorf("got %q", got)
	}
}

package buildpipeline

import (
	"sync"
	"time"
)

// Stage is one step a source file goes through.
type Stage string

const (
	StageLoad  Stage = "load"
	StageParse Stage = "parse"
	StageCheck Stage = "check"
	StageEmit  Stage = "emit"
	StageWrite Stage = "write"
)

// Stages lists the stages in pipeline order.
var Stages = []Stage{StageLoad, StageParse, StageCheck, StageEmit, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusCached: output came from the build cache, nothing was compiled.
	StatusCached Status = "cached"
	StatusError  Status = "error"
)

// Terminal reports whether no further events follow for the file.
func (s Status) Terminal() bool {
	return s == StatusCached || s == StatusError
}

// Event reports progress for a file, or for the whole build when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Finished reports the last event of a file: a cache hit, an error, or
// the completed write.
func (e Event) Finished() bool {
	return e.File != "" && (e.Status.Terminal() || (e.Stage == StageWrite && e.Status == StatusDone))
}

// ProgressSink consumes progress events. Build workers call OnEvent
// concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations summed over every file of a build.
type Timings struct {
	mu     sync.Mutex
	stages map[Stage]time.Duration
}

// Add accumulates dur under stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t *Timings) Has(stage Stage) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.stages[stage]
	return ok
}

func (t *Timings) Duration(stage Stage) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stages[stage]
}

// Sum returns the total over stages, or over all stages when none are given.
func (t *Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, s := range stages {
		total += t.stages[s]
	}
	return total
}

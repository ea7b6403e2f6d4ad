package main

import (
	"fmt"
	"io"
	"time"

	"cinder/internal/buildpipeline"
	"cinder/internal/observ"
)

// printStageTimings prints one line per stage that ran.
func printStageTimings(out io.Writer, timings *buildpipeline.Timings) {
	if out == nil || timings == nil {
		return
	}
	for _, stage := range buildpipeline.Stages {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%-6s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
}

// printTimer prints a single-file phase timer.
func printTimer(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

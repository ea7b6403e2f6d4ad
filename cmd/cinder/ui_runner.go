package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cinder/internal/buildpipeline"
	"cinder/internal/driver"
	"cinder/internal/ui"
)

type buildOutcome struct {
	result *driver.BuildResult
	err    error
}

// runBuildWithUI runs req in the background and renders its events.
// files are the slash-separated paths relative to req.Dir.
func runBuildWithUI(ctx context.Context, title string, files []string, req driver.BuildRequest) (*driver.BuildResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		req.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.BuildDir(ctx, req)
		close(events)
		outcomeCh <- buildOutcome{result: res, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	// UI мог выйти раньше (ctrl+c): дочитываем события, чтобы сборка не встала
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

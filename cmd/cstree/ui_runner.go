package main

import (
	"context"
	"os"

	"cstree/internal/driver"
	"cstree/internal/ui"
)

type checkOutcome struct {
	result *driver.CheckResult
	err    error
}

// runCheckWithUI runs the check in the background and draws its progress on
// stderr until it finishes.
func runCheckWithUI(ctx context.Context, files, paths []string, opts driver.CheckOptions) (*driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckPaths(ctx, paths, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(os.Stderr, "check", files, events)
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

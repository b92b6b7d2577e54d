package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cstree/internal/observ"
	"cstree/internal/prof"
)

// prepare resolves the settings of cmd from the working directory, starts
// profiling and tracing. cleanup is never nil.
func prepare(cmd *cobra.Command) (s settings, cleanup func(), err error) {
	cleanup = func() {}
	wd, err := os.Getwd()
	if err != nil {
		return s, cleanup, fmt.Errorf("failed to get working directory: %w", err)
	}
	if s, err = resolveSettings(cmd, wd); err != nil {
		return s, cleanup, err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return s, cleanup, err
	}
	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return s, cleanup, err
	}
	return s, func() {
		traceCleanup()
		stopProfiling()
	}, nil
}

// setupProfiling starts the profilers named by the profiling flags.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	var opts prof.Options
	var err error
	flags := cmd.Flags()
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}, nil
}

// newTimer returns a timer when --timings is on, nil otherwise. observ
// timers are nil-safe.
func (s settings) newTimer() *observ.Timer {
	if !s.Timings {
		return nil
	}
	return observ.NewTimer()
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}

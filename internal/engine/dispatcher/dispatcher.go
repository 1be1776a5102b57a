// Package dispatcher hands a generated test file to the runner and turns the
// outcome into a single pass/fail answer.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/zerr"
)

// Dispatcher runs test files with the configured reporter.
type Dispatcher struct {
	runner     ports.Runner
	suppressor ports.OutputSuppressor
	logger     ports.Logger
}

// New creates a Dispatcher.
func New(runner ports.Runner, suppressor ports.OutputSuppressor, logger ports.Logger) *Dispatcher {
	return &Dispatcher{
		runner:     runner,
		suppressor: suppressor,
		logger:     logger,
	}
}

// Dispatch runs file and reports whether every test passed.
//
// External reporters own the output, so they run unsuppressed and their
// failures are reported as fatal log lines. Built-in reporters run with
// ambient output suppressed and the runner's result is returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, file domain.TestFile, cfg domain.RunConfig) bool {
	if domain.IsExternalReporter(cfg.Reporter) {
		passed, err := d.runner.Run(ctx, file, cfg)
		if err != nil {
			if isInvalidReporter(err) {
				d.logger.Fatal(fmt.Sprintf("The following reporter `%s` was not found!", cfg.Reporter))
			} else {
				d.logger.Fatal(fmt.Sprintf("An unknown error occurred: %s", err))
			}
			return false
		}
		return passed
	}

	var passed bool
	err := d.suppressor.Suppress(func() error {
		var runErr error
		passed, runErr = d.runner.Run(ctx, file, cfg)
		return runErr
	})
	if err != nil {
		d.logger.Error(zerr.Wrap(err, "test run did not complete"))
		return false
	}
	return passed
}

func isInvalidReporter(err error) bool {
	return errors.Is(err, domain.ErrInvalidReporter) ||
		strings.Contains(err.Error(), domain.ErrInvalidReporter.Error())
}

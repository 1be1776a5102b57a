package domain

import "strings"

// RunState is a stage of the run pipeline. Every stage is reported as a span.
type RunState string

const (
	// RunStateIdle is the state before anything has been loaded.
	RunStateIdle RunState = "idle"
	// RunStateResolvingSuites is the suite resolution stage.
	RunStateResolvingSuites RunState = "resolving-suites"
	// RunStateResolvingEnvironment is the environment resolution stage.
	RunStateResolvingEnvironment RunState = "resolving-environment"
	// RunStateGenerating is the test file generation stage.
	RunStateGenerating RunState = "generating"
	// RunStateDispatching is the runner invocation stage.
	RunStateDispatching RunState = "dispatching"
	// RunStatePassed indicates every test passed.
	RunStatePassed RunState = "passed"
	// RunStateFailed indicates a failed test or an unresolved precondition.
	RunStateFailed RunState = "failed"
)

// IsTerminal checks if a state ends the run (Passed or Failed).
func (s RunState) IsTerminal() bool {
	switch s {
	case RunStatePassed, RunStateFailed:
		return true
	default:
		return false
	}
}

// NormalizeRunState converts a string to a RunState, defaulting to idle if unknown.
func NormalizeRunState(s string) RunState {
	switch RunState(strings.ToLower(s)) {
	case RunStateResolvingSuites:
		return RunStateResolvingSuites
	case RunStateResolvingEnvironment:
		return RunStateResolvingEnvironment
	case RunStateGenerating:
		return RunStateGenerating
	case RunStateDispatching:
		return RunStateDispatching
	case RunStatePassed:
		return RunStatePassed
	case RunStateFailed:
		return RunStateFailed
	default:
		return RunStateIdle
	}
}

// ResultState maps a run result to its terminal state.
func ResultState(passed bool) RunState {
	if passed {
		return RunStatePassed
	}
	return RunStateFailed
}

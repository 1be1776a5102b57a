package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/inso/internal/core/domain"
)

func TestRunState_IsTerminal(t *testing.T) {
	tests := []struct {
		name       string
		state      domain.RunState
		isTerminal bool
	}{
		{"Idle", domain.RunStateIdle, false},
		{"ResolvingSuites", domain.RunStateResolvingSuites, false},
		{"ResolvingEnvironment", domain.RunStateResolvingEnvironment, false},
		{"Generating", domain.RunStateGenerating, false},
		{"Dispatching", domain.RunStateDispatching, false},
		{"Passed", domain.RunStatePassed, true},
		{"Failed", domain.RunStateFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.state.IsTerminal())
		})
	}
}

func TestNormalizeRunState(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.RunState
	}{
		{"resolving-suites", domain.RunStateResolvingSuites},
		{"RESOLVING-ENVIRONMENT", domain.RunStateResolvingEnvironment},
		{"generating", domain.RunStateGenerating},
		{"dispatching", domain.RunStateDispatching},
		{"passed", domain.RunStatePassed},
		{"failed", domain.RunStateFailed},
		{"unknown", domain.RunStateIdle},
		{"", domain.RunStateIdle},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeRunState(tt.input))
		})
	}
}

func TestResultState(t *testing.T) {
	assert.Equal(t, domain.RunStatePassed, domain.ResultState(true))
	assert.Equal(t, domain.RunStateFailed, domain.ResultState(false))
}

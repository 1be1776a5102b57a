// Package console silences ambient process output while a built-in reporter runs.
package console

import (
	"os"
	"sync"

	"go.trai.ch/inso/internal/core/ports"
)

// Suppressor implements ports.OutputSuppressor by pointing os.Stdout at the null device.
type Suppressor struct {
	mu sync.Mutex
}

var _ ports.OutputSuppressor = (*Suppressor)(nil)

// NewSuppressor creates a Suppressor.
func NewSuppressor() *Suppressor {
	return &Suppressor{}
}

// Suppress runs fn with os.Stdout discarded and restores it afterwards, also on panic.
// When the null device cannot be opened fn still runs, unsuppressed.
func (s *Suppressor) Suppress(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return fn()
	}

	saved := os.Stdout
	os.Stdout = devNull
	defer func() {
		os.Stdout = saved
		_ = devNull.Close()
	}()

	return fn()
}

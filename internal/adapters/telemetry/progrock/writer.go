package progrock

import (
	"fmt"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/inso/internal/core/ports"
)

// LogWriter implements progrock.Writer by logging each vertex once, when it completes.
type LogWriter struct {
	logger ports.Logger

	mu   sync.Mutex
	done map[string]struct{}
}

var _ progrock.Writer = (*LogWriter)(nil)

// NewLogWriter returns a LogWriter reporting to logger.
func NewLogWriter(logger ports.Logger) *LogWriter {
	return &LogWriter{
		logger: logger,
		done:   make(map[string]struct{}),
	}
}

// WriteStatus logs vertices that completed in this update.
func (w *LogWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		if _, seen := w.done[v.Id]; seen {
			continue
		}
		w.done[v.Id] = struct{}{}

		var elapsed time.Duration
		if v.Started != nil {
			elapsed = v.Completed.AsTime().Sub(v.Started.AsTime()).Round(time.Millisecond)
		}
		if v.Error != nil {
			w.logger.Warn(fmt.Sprintf("%s failed after %s: %s", v.Name, elapsed, *v.Error))
			continue
		}
		w.logger.Info(fmt.Sprintf("%s done in %s", v.Name, elapsed))
	}
	return nil
}

// Close does nothing.
func (w *LogWriter) Close() error {
	return nil
}

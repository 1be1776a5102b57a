// Package telemetry reports run stages through OpenTelemetry spans.
package telemetry

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the buffer size (4KB) that forces a flush.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is the flush interval.
	DefaultTimeLimit = 50 * time.Millisecond
)

// ErrBatcherClosed is returned by Write after Close.
var ErrBatcherClosed = errors.New("batch processor is closed")

// BatchProcessor buffers span output and hands it on as whole lines, either
// when sizeLimit is reached or every timeLimit. It is safe for concurrent use.
type BatchProcessor struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func(lines []string)

	mu     sync.Mutex
	buffer *bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatchProcessor starts a processor; non-positive limits select the defaults.
// Call Close to stop the background ticker and flush a trailing partial line.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, onFlush func(lines []string)) *BatchProcessor {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	bp := &BatchProcessor{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
		buffer:    new(bytes.Buffer),
		stopCh:    make(chan struct{}),
		ticker:    time.NewTicker(timeLimit),
	}
	go bp.run()

	return bp
}

// Write buffers p, flushing complete lines once the buffer exceeds sizeLimit.
func (bp *BatchProcessor) Write(p []byte) (int, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0, ErrBatcherClosed
	}

	n, _ := bp.buffer.Write(p)
	if bp.buffer.Len() >= bp.sizeLimit {
		// A single line longer than sizeLimit is emitted as is.
		bp.flushLocked(!bytes.Contains(bp.buffer.Bytes(), []byte{'\n'}))
		bp.ticker.Reset(bp.timeLimit)
	}

	return n, nil
}

// Flush hands on every complete line buffered so far.
func (bp *BatchProcessor) Flush() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.closed {
		return
	}
	bp.flushLocked(false)
}

// Close stops the ticker and flushes everything, including a trailing partial line.
func (bp *BatchProcessor) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}

	bp.closed = true
	close(bp.stopCh)
	bp.flushLocked(true)
	return nil
}

func (bp *BatchProcessor) run() {
	for {
		select {
		case <-bp.ticker.C:
			bp.Flush()
		case <-bp.stopCh:
			bp.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. Unless all is set, bytes after the
// last newline stay buffered.
func (bp *BatchProcessor) flushLocked(all bool) {
	data := bp.buffer.Bytes()
	end := len(data)
	if !all {
		end = bytes.LastIndexByte(data, '\n') + 1
	}
	if end == 0 {
		return
	}

	chunk := strings.TrimSuffix(string(data[:end]), "\n")
	bp.buffer.Next(end)
	if bp.buffer.Len() == 0 {
		bp.buffer.Reset()
	}

	if bp.onFlush != nil && chunk != "" {
		bp.onFlush(strings.Split(chunk, "\n"))
	}
}

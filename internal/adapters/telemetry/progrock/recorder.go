// Package progrock reports run stages as progrock vertices.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/inso/internal/core/ports"
)

// Tracer implements ports.Tracer on a progrock recorder. Each span is one vertex.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

var _ ports.Tracer = (*Tracer)(nil)

// New creates a Tracer that reports finished vertices to logger.
func New(logger ports.Logger) *Tracer {
	return NewTracer(NewLogWriter(logger))
}

// NewTracer creates a Tracer recording to w.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex. Its digest is derived from the name, so
// restarting a stage updates the same vertex.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	v := &Vertex{vertex: t.rec.Vertex(digest.FromString(name), name)}
	for k, val := range cfg.Attributes {
		v.SetAttribute(k, val)
	}
	return ctx, v
}

// Shutdown closes the underlying writer when it supports closing.
func (t *Tracer) Shutdown(_ context.Context) error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Vertex implements ports.Span wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder

	mu  sync.Mutex
	err error
}

// Write sends p to the vertex's stdout stream.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// SetAttribute records the attribute as a line of vertex output.
func (v *Vertex) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "%s=%v\n", key, value)
}

// RecordError marks the vertex failed when it ends.
func (v *Vertex) RecordError(err error) {
	if err == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
}

// End completes the vertex with the recorded error, if any.
func (v *Vertex) End() {
	v.mu.Lock()
	err := v.err
	v.mu.Unlock()
	v.vertex.Done(err)
}

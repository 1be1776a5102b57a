package console

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/inso/internal/core/ports"
)

// SuppressorNodeID is the unique identifier for the output suppressor Graft node.
const SuppressorNodeID graft.ID = "adapter.output_suppressor"

func init() {
	graft.Register(graft.Node[ports.OutputSuppressor]{
		ID:        SuppressorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputSuppressor, error) {
			return NewSuppressor(), nil
		},
	})
}

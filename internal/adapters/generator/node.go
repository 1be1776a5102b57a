package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/inso/internal/core/ports"
)

// NodeID is the unique identifier for the generator Graft node.
const NodeID graft.ID = "adapter.generator"

func init() {
	graft.Register(graft.Node[ports.Generator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Generator, error) {
			return New(), nil
		},
	})
}

package sender

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/inso/internal/core/ports"
)

// NodeID is the unique identifier for the sender factory Graft node.
const NodeID graft.ID = "adapter.sender"

func init() {
	graft.Register(graft.Node[ports.SenderFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SenderFactory, error) {
			return NewFactory(&http.Client{}), nil
		},
	})
}

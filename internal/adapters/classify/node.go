package classify

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/perilune/inocli/internal/core/ports"
)

const NodeID graft.ID = "adapter.classifier"

func init() {
	graft.Register(graft.Node[ports.Classifier]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Classifier, error) {
			return New(), nil
		},
	})
}

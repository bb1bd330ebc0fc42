package tempdir

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/perilune/inocli/internal/adapters/logger"
	"github.com/perilune/inocli/internal/core/ports"
)

const NodeID graft.ID = "adapter.temp_resolver"

func init() {
	graft.Register(graft.Node[ports.TempResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.TempResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(log), nil
		},
	})
}

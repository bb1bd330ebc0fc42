package sketch

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/perilune/inocli/internal/adapters/config"
	"github.com/perilune/inocli/internal/adapters/logger"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
)

const NodeID graft.ID = "adapter.sketch_manager"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Manager, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(settings, log), nil
		},
	})
}

package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/perilune/inocli/internal/adapters/config"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
)

const NodeID graft.ID = "adapter.result_store"

func init() {
	graft.Register(graft.Node[ports.ResultStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ResultStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.CacheDir, settings.CacheCapacity)
		},
	})
}

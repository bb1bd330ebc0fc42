package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/perilune/inocli/internal/adapters/cache"
	"github.com/perilune/inocli/internal/adapters/classify"
	"github.com/perilune/inocli/internal/adapters/cli"
	"github.com/perilune/inocli/internal/adapters/config"
	"github.com/perilune/inocli/internal/adapters/logger"
	"github.com/perilune/inocli/internal/adapters/proc"
	"github.com/perilune/inocli/internal/adapters/sketch"
	"github.com/perilune/inocli/internal/adapters/telemetry"
	"github.com/perilune/inocli/internal/adapters/tempdir"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
)

const NodeID graft.ID = "engine.toolchain"

func init() {
	graft.Register(graft.Node[*Service]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cli.NodeID,
			proc.NodeID,
			classify.NodeID,
			cache.NodeID,
			tempdir.NodeID,
			sketch.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Service, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			builder, err := graft.Dep[*cli.Builder](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			classifier, err := graft.Dep[ports.Classifier](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ResultStore](ctx)
			if err != nil {
				return nil, err
			}
			temps, err := graft.Dep[ports.TempResolver](ctx)
			if err != nil {
				return nil, err
			}
			sketches, err := graft.Dep[*sketch.Manager](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewService(settings, builder, runner, classifier, store, temps, sketches, tracer, log), nil
		},
	})
}

package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	pr "github.com/perilune/inocli/internal/adapters/telemetry/progrock"
	"github.com/perilune/inocli/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			// The tracer is chosen before the CLI parses flags, so the
			// progress UI is opted into through the environment.
			if os.Getenv("INOCLI_PROGRESS") != "" {
				return pr.New(), nil
			}
			return NewNoOpTracer(), nil
		},
	})
}

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/perilune/inocli/internal/adapters/cache"
	_ "github.com/perilune/inocli/internal/adapters/classify"
	_ "github.com/perilune/inocli/internal/adapters/cli"
	_ "github.com/perilune/inocli/internal/adapters/config"
	_ "github.com/perilune/inocli/internal/adapters/logger"
	_ "github.com/perilune/inocli/internal/adapters/proc"
	_ "github.com/perilune/inocli/internal/adapters/sketch"
	_ "github.com/perilune/inocli/internal/adapters/telemetry"
	_ "github.com/perilune/inocli/internal/adapters/tempdir"
	// Register app and engine nodes.
	_ "github.com/perilune/inocli/internal/app"
	_ "github.com/perilune/inocli/internal/engine/toolchain"
)

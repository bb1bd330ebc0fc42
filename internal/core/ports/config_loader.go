package ports

import "github.com/perilune/inocli/internal/core/domain"

// ConfigLoader defines the interface for loading the wrapper configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory,
	// falling back to defaults when no config file exists.
	Load(cwd string) (*domain.Settings, error)
}

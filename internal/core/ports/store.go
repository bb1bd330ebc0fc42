package ports

import "github.com/perilune/inocli/internal/core/domain"

// ResultStore persists command results keyed by logical command string.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Save persists the result unconditionally: last write wins, no
	// versioning. Only callers that actually executed the command may
	// save a successful result.
	Save(logical string, result domain.CommandResult) error

	// Get returns the most recent result for the logical command, checking
	// memory before durable storage. Returns nil, nil when the command has
	// never been executed; absence is a defined state, not a failure.
	Get(logical string) (*domain.CommandResult, error)
}

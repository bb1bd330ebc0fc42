// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/perilune/inocli/internal/core/domain"
)

// Runner executes a fully formed arduino-cli invocation.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes the invocation synchronously and returns the result of
	// the last attempt, applying the runner's bounded retry policy.
	//
	// A non-zero exit is not an error: it comes back as a CommandResult
	// with Success=false. The returned error is reserved for launch
	// failures, wrapped around domain.ErrLaunchFailed.
	Run(ctx context.Context, spec domain.InvocationSpec) (domain.CommandResult, error)
}

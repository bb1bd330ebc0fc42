// Package toolchain orchestrates arduino-cli invocations end to end:
// building the argument vector, resolving the execution environment, running
// with retries, classifying the output and caching the result.
package toolchain

import (
	"context"
	"strings"

	"github.com/perilune/inocli/internal/adapters/cli"
	"github.com/perilune/inocli/internal/adapters/sketch"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// transientSignature mirrors the runner's retry signature. The engine checks
// it once more after the retry budget is spent to decide whether a cached
// result may stand in for a misbehaving toolchain.
const transientSignature = "temporary file"

// Service is the engine facade exposed to the CLI layer.
type Service struct {
	settings   *domain.Settings
	builder    *cli.Builder
	runner     ports.Runner
	classifier ports.Classifier
	store      ports.ResultStore
	temps      ports.TempResolver
	sketches   *sketch.Manager
	tracer     ports.Tracer
	logger     ports.Logger

	// flight collapses identical concurrent logical commands into one
	// child process. Distinct commands still run unserialized; callers
	// sharing a build directory must coordinate themselves.
	flight singleflight.Group
}

// NewService creates a new Service.
func NewService(
	settings *domain.Settings,
	builder *cli.Builder,
	runner ports.Runner,
	classifier ports.Classifier,
	store ports.ResultStore,
	temps ports.TempResolver,
	sketches *sketch.Manager,
	tracer ports.Tracer,
	logger ports.Logger,
) *Service {
	return &Service{
		settings:   settings,
		builder:    builder,
		runner:     runner,
		classifier: classifier,
		store:      store,
		temps:      temps,
		sketches:   sketches,
		tracer:     tracer,
		logger:     logger,
	}
}

// Execute returns the stored result for a logical command. It never spawns
// the external tool: a command that was never executed and saved yields the
// unexecuted sentinel, instructing the caller to run it out-of-band.
func (s *Service) Execute(logical string) domain.CommandResult {
	stored, err := s.store.Get(logical)
	if err != nil {
		s.logger.Error(err)
	}
	if stored != nil {
		return *stored
	}
	return domain.UnexecutedResult(logical)
}

// SaveResult stores a result produced out-of-band under the logical command.
func (s *Service) SaveResult(logical string, result domain.CommandResult) error {
	return s.store.Save(logical, result)
}

// StoreResult records the outcome of a command the user ran in a terminal.
func (s *Service) StoreResult(logical, stdout, stderr string, success bool) (domain.CommandResult, error) {
	result := domain.CommandResult{
		Command: "arduino-cli " + logical,
		Success: success,
		Stdout:  stdout,
		Stderr:  stderr,
	}
	if err := s.store.Save(logical, result); err != nil {
		return domain.CommandResult{}, err
	}
	return result, nil
}

// Run executes a logical operation live: argument vector, environment,
// retries, write-through caching. The returned result reflects the last
// attempt; a non-zero exit is reported through the result, not the error.
func (s *Service) Run(ctx context.Context, op domain.Operation, req domain.Request) (domain.CommandResult, error) {
	spec, err := s.builder.Build(op, req)
	if err != nil {
		return domain.CommandResult{}, err
	}
	return s.run(ctx, spec)
}

// BuildAndRun executes a logical operation and classifies its output.
func (s *Service) BuildAndRun(ctx context.Context, op domain.Operation, req domain.Request) (domain.ClassifiedOutcome, error) {
	result, err := s.Run(ctx, op, req)
	if err != nil {
		return domain.ClassifiedOutcome{}, err
	}
	return s.classifier.Classify(result, op), nil
}

func (s *Service) run(ctx context.Context, spec domain.InvocationSpec) (domain.CommandResult, error) {
	type runOutcome struct {
		result domain.CommandResult
	}

	v, err, _ := s.flight.Do(spec.Logical, func() (any, error) {
		ctx, span := s.tracer.Start(ctx, spec.Logical)
		span.SetAttribute("binary", spec.Args[0])
		if spec.WorkDir != "" {
			span.SetAttribute("workdir", spec.WorkDir)
		}
		result, err := s.execute(ctx, spec)
		span.End(err)
		if err != nil {
			return nil, err
		}
		return runOutcome{result: result}, nil
	})
	if err != nil {
		return domain.CommandResult{}, err
	}
	return v.(runOutcome).result, nil
}

// execute resolves the scratch environment, runs the invocation and writes
// the result through to the cache.
func (s *Service) execute(ctx context.Context, spec domain.InvocationSpec) (domain.CommandResult, error) {
	_, tempEnv := s.temps.Resolve(s.settings.Workdir)
	if spec.Env == nil && len(tempEnv) > 0 {
		spec.Env = make(map[string]string, len(tempEnv))
	}
	// The resolved scratch dir is applied last so every invocation writes its
	// temp files to a directory known to be usable.
	for k, v := range tempEnv {
		spec.Env[k] = v
	}

	result, err := s.runner.Run(ctx, spec)
	if err != nil {
		return domain.CommandResult{}, err
	}

	if saveErr := s.store.Save(spec.Logical, result); saveErr != nil {
		// A failed cache write must not fail the invocation.
		s.logger.Error(zerr.Wrap(saveErr, "failed to cache command result"))
	}
	return result, nil
}

// isTransient reports whether a failed result carries the toolchain's
// temporary-file failure signature.
func isTransient(result domain.CommandResult) bool {
	return !result.Success && strings.Contains(result.ErrorText(), transientSignature)
}

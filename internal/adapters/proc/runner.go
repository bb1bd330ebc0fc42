// Package proc executes arduino-cli invocations as child processes.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// maxAttempts bounds the retry loop, launch errors included.
	maxAttempts = 3

	// transientSignature marks a retryable failure of the toolchain's own
	// temporary-file handling.
	transientSignature = "temporary file"

	// ctagsSignature indicates the sketch preprocessor's ctags stage blew
	// up. Re-running with color disabled takes a different code path in
	// arduino-cli and reliably sidesteps it.
	ctagsSignature = "ctags"

	colorFlag = "--no-color"
)

// Runner implements ports.Runner using os/exec.
//
// Execution is synchronous: Run blocks until the child exits or the retry
// budget is spent. No timeout is imposed on the child beyond whatever the
// caller put into ctx.
type Runner struct {
	logger ports.Logger
}

var _ ports.Runner = (*Runner)(nil)

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the invocation, retrying up to maxAttempts times on the
// transient-failure signature. The returned result always reflects the last
// attempt; earlier failed attempts are discarded except for the argv
// mutation the ctags workaround leaves behind.
func (r *Runner) Run(ctx context.Context, spec domain.InvocationSpec) (domain.CommandResult, error) {
	// Work on a copy: the invocation is immutable after handoff, and the
	// ctags workaround mutates the vector mid-retry.
	args := slices.Clone(spec.Args)
	env := mergeEnvironment(os.Environ(), spec.Env)

	var (
		res       domain.CommandResult
		launchErr error
	)
	for attempt := 1; ; attempt++ {
		res, launchErr = r.attempt(ctx, args, env, spec)

		switch next := transition(attempt, res, launchErr); next {
		case stateDone:
			return res, nil

		case stateGiveUp:
			if launchErr != nil {
				return domain.CommandResult{}, launchErr
			}
			return res, nil

		case stateMutateAndRetry:
			args = disableColor(args)
		case stateAttempt:
		}

		r.logger.Warn(fmt.Sprintf("command failed, retrying (attempt %d/%d)", attempt+1, maxAttempts))
	}
}

// attempt runs the argument vector once and captures its output. A non-zero
// exit is reported through the result, not the error; the error return is
// reserved for launch failures.
func (r *Runner) attempt(ctx context.Context, args, env []string, spec domain.InvocationSpec) (domain.CommandResult, error) {
	r.logger.Info("executing: " + strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // argv built by the invocation builder
	cmd.Dir = spec.WorkDir
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if span := ports.SpanFromContext(ctx); span != nil {
		cmd.Stdout = io.MultiWriter(&stdout, span)
		cmd.Stderr = io.MultiWriter(&stderr, span)
	}

	runErr := cmd.Run()

	res := domain.CommandResult{
		Command: spec.Logical,
		Success: runErr == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		return res, nil
	case errors.As(runErr, &exitErr):
		r.logger.Info(fmt.Sprintf("command exited with code %d", exitErr.ExitCode()))
		return res, nil
	default:
		return res, errors.Join(
			domain.ErrLaunchFailed,
			zerr.With(zerr.Wrap(runErr, "could not start process"), "binary", args[0]),
		)
	}
}

// retryState is a node of the retry state machine. Transitions are driven
// by (exit status, pattern match) pairs so the coupling between "signature
// seen" and "vector mutated" stays auditable.
type retryState int

const (
	// stateAttempt re-runs the current argument vector.
	stateAttempt retryState = iota
	// stateMutateAndRetry appends the color workaround, then re-runs.
	stateMutateAndRetry
	// stateGiveUp stops with the retry budget spent.
	stateGiveUp
	// stateDone stops with a final result.
	stateDone
)

func transition(attempt int, res domain.CommandResult, launchErr error) retryState {
	if launchErr != nil {
		if attempt >= maxAttempts {
			return stateGiveUp
		}
		return stateAttempt
	}

	// Success, or a failure that is not the transient signature, is final.
	if res.Success || !strings.Contains(res.Stderr, transientSignature) {
		return stateDone
	}

	if attempt >= maxAttempts {
		return stateGiveUp
	}
	if strings.Contains(res.Stderr, ctagsSignature) {
		return stateMutateAndRetry
	}
	return stateAttempt
}

// disableColor appends the color-disabling flag once. The mutation persists
// for every remaining attempt of this call.
func disableColor(args []string) []string {
	if slices.Contains(args, colorFlag) {
		return args
	}
	return append(args, colorFlag)
}

// mergeEnvironment layers per-invocation overrides on top of the process
// environment, and makes sure HOME is defined; arduino-cli refuses to run
// without it.
func mergeEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}
	if envMap["HOME"] == "" {
		if home, err := os.UserHomeDir(); err == nil {
			envMap["HOME"] = home
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

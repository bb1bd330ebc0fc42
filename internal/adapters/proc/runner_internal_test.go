package proc

import (
	"testing"

	"github.com/perilune/inocli/internal/core/domain"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestTransitionTable(t *testing.T) {
	transient := domain.CommandResult{Stderr: "could not open temporary file"}
	transientCtags := domain.CommandResult{Stderr: "ctags: temporary file gone"}

	cases := []struct {
		name      string
		attempt   int
		res       domain.CommandResult
		launchErr error
		want      retryState
	}{
		{"success is final", 1, domain.CommandResult{Success: true}, nil, stateDone},
		{"plain failure is final", 1, domain.CommandResult{Stderr: "error: boom"}, nil, stateDone},
		{"transient retries", 1, transient, nil, stateAttempt},
		{"transient with ctags mutates", 1, transientCtags, nil, stateMutateAndRetry},
		{"transient at budget gives up", 3, transient, nil, stateGiveUp},
		{"launch error retries", 1, domain.CommandResult{}, zerr.New("no binary"), stateAttempt},
		{"launch error at budget gives up", 3, domain.CommandResult{}, zerr.New("no binary"), stateGiveUp},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, transition(tc.attempt, tc.res, tc.launchErr))
		})
	}
}

func TestDisableColorAppendsOnce(t *testing.T) {
	args := []string{"arduino-cli", "compile"}

	args = disableColor(args)
	require.Equal(t, []string{"arduino-cli", "compile", "--no-color"}, args)

	args = disableColor(args)
	require.Equal(t, []string{"arduino-cli", "compile", "--no-color"}, args)
}

func TestMergeEnvironmentOverrides(t *testing.T) {
	env := mergeEnvironment(
		[]string{"PATH=/usr/bin", "TMPDIR=/tmp", "HOME=/home/u"},
		map[string]string{"TMPDIR": "/scratch"},
	)

	require.Contains(t, env, "PATH=/usr/bin")
	require.Contains(t, env, "TMPDIR=/scratch")
	require.NotContains(t, env, "TMPDIR=/tmp")
	require.Contains(t, env, "HOME=/home/u")
}

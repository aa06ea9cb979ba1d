package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitRuntimeError},
		{"usage", KindUsage, ExitUsageError},
		{"unknown operation", KindUnknownOperation, ExitUnknownOperation},
		{"launch", KindLaunch, ExitLaunchFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &Error{Kind: tt.kind}
			assert.Equal(t, tt.expected, err.ExitCode())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, "wrapper")

	assert.Equal(t, "wrapper", err.Error())
	assert.Same(t, cause, err.Unwrap())
	assert.Equal(t, KindRuntime, err.Kind)
	assert.Equal(t, ExitRuntimeError, err.ExitCode())
	assert.Nil(t, Usage("no cause").Unwrap())
}

func TestUsagef(t *testing.T) {
	err := Usagef("accepts at most %d operation", 1)

	assert.Equal(t, KindUsage, err.Kind)
	assert.Equal(t, ExitUsageError, err.ExitCode())
	assert.Equal(t, "accepts at most 1 operation", err.Error())
}

func TestUnknownOperation(t *testing.T) {
	err := UnknownOperation("bogus", []string{"default", "release", "clean"})

	assert.Equal(t, KindUnknownOperation, err.Kind)
	assert.Equal(t, "bogus", err.Operation)
	assert.Equal(t, `unknown operation "bogus" (valid operations: default, release, clean)`, err.Error())
	assert.Equal(t, ExitUnknownOperation, err.ExitCode())
}

func TestLaunch(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		cause := &exec.Error{Name: "cargo", Err: exec.ErrNotFound}
		err := Launch("cargo", cause)

		assert.Equal(t, KindLaunch, err.Kind)
		assert.Equal(t, "cargo", err.Tool)
		assert.Equal(t, `build tool "cargo" not found in PATH`, err.Error())
		assert.Equal(t, ExitLaunchFailure, err.ExitCode())
		require.NotNil(t, err.Cause)
	})

	t.Run("start failure", func(t *testing.T) {
		err := Launch("/opt/cargo", errors.New("permission denied"))

		assert.Equal(t, `failed to start build tool "/opt/cargo"`, err.Error())
		assert.Contains(t, err.Cause.Error(), "permission denied")
	})
}

func TestToolExit(t *testing.T) {
	err := &ToolExit{Tool: "cargo", Code: 101}

	assert.Equal(t, "cargo exited with status 101", err.Error())
	assert.Equal(t, 101, err.ExitCode())
	assert.True(t, IsToolFailure(err))
	assert.True(t, IsToolFailure(fmt.Errorf("run: %w", err)))
	assert.False(t, IsToolFailure(Usage("other")))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"runtime", Wrap(errors.New("cause"), "runtime"), ExitRuntimeError},
		{"usage", Usage("usage"), ExitUsageError},
		{"unknown operation", UnknownOperation("x", nil), ExitUnknownOperation},
		{"launch", Launch("cargo", exec.ErrNotFound), ExitLaunchFailure},
		{"tool exit", &ToolExit{Tool: "cargo", Code: 3}, 3},
		{"wrapped tool exit", fmt.Errorf("ctx: %w", &ToolExit{Code: 255}), 255},
		{"wrapped error", fmt.Errorf("ctx: %w", Usage("bad")), ExitUsageError},
		{"generic error", errors.New("generic"), ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetExitCode(tt.err))
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	codes := []int{ExitSuccess, ExitRuntimeError, ExitUsageError, ExitUnknownOperation, ExitLaunchFailure}
	seen := make(map[int]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate exit code %d", c)
		seen[c] = true
	}
}

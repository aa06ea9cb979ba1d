// Package dispatch resolves a requested operation, composes the build tool's
// argument list and runs the tool once.
package dispatch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AndreyAkinshin/rsbuild/internal/config"
	rserrors "github.com/AndreyAkinshin/rsbuild/internal/errors"
)

// Executor launches the build tool and reports its exit status.
// *runner.Runner implements it.
type Executor interface {
	Run(ctx context.Context, tool string, args []string) (int, error)
}

// Plan is a fully resolved invocation that has not been launched.
type Plan struct {
	Operation Operation
	Tool      string
	Args      []string
}

// Dispatcher turns an operation request into exactly one build tool launch.
type Dispatcher struct {
	exec   Executor
	logger zerolog.Logger
}

// New creates a Dispatcher that launches through exec.
func New(exec Executor, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{exec: exec, logger: logger}
}

// Plan resolves operation and env into an invocation without launching it.
// An unknown operation is reported as an UnknownOperation error.
func (d *Dispatcher) Plan(operation string, env map[string]string) (Plan, error) {
	op, err := ParseOperation(operation)
	if err != nil {
		return Plan{}, err
	}
	cfg := config.Load(env)
	return Plan{
		Operation: op,
		Tool:      cfg.Tool(),
		Args:      Compose(op, cfg),
	}, nil
}

// Run executes operation with the configuration in env and returns the
// build tool's exit status unchanged.
//
// The error is nil when the tool exits with 0. A non-zero tool status is
// returned as *errors.ToolExit with the same code. UnknownOperation is
// reported before anything is launched; LaunchFailure when the tool cannot be
// started. Nothing is retried.
func (d *Dispatcher) Run(ctx context.Context, operation string, env map[string]string) (int, error) {
	plan, err := d.Plan(operation, env)
	if err != nil {
		return rserrors.GetExitCode(err), err
	}

	d.logger.Debug().
		Str("operation", string(plan.Operation)).
		Str("tool", plan.Tool).
		Strs("args", plan.Args).
		Msg("composed build invocation")

	code, err := d.exec.Run(ctx, plan.Tool, plan.Args)
	if err != nil {
		return code, err
	}
	if code != rserrors.ExitSuccess {
		return code, &rserrors.ToolExit{Tool: plan.Tool, Code: code}
	}
	return code, nil
}

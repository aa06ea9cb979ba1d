// Package runner launches the external build tool as a subprocess.
//
// The child inherits the caller's standard streams directly (no capture, no
// buffering) and its exit status is returned unchanged.
package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	rserrors "github.com/AndreyAkinshin/rsbuild/internal/errors"
)

// forwardedSignals are relayed to the child while it runs.
var forwardedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// signalExitBase is added to the signal number when the child dies from a
// signal, following the shell convention.
const signalExitBase = 128

// Runner launches a single build tool process per Run call.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the child environment. Nil means inherit the current process
	// environment.
	Env []string

	logger zerolog.Logger
}

// New creates a Runner wired to the process's own standard streams.
func New(logger zerolog.Logger) *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Run launches tool with args and blocks until it exits.
//
// The returned status is the tool's own exit code, 128+N if it was killed by
// signal N. A non-nil error means the tool never ran (LaunchFailure) or
// waiting on it failed; the status is then rsbuild's own code for that error.
func (r *Runner) Run(ctx context.Context, tool string, args []string) (int, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		launchErr := rserrors.Launch(tool, err)
		return launchErr.ExitCode(), launchErr
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = r.Env

	r.logger.Debug().Str("tool", path).Strs("args", args).Msg("launching build tool")

	if err := cmd.Start(); err != nil {
		launchErr := rserrors.Launch(tool, err)
		return launchErr.ExitCode(), launchErr
	}

	stop := forwardSignals(cmd.Process, r.logger)
	err = cmd.Wait()
	stop()

	return exitStatus(err)
}

// forwardSignals relays interrupts received by this process to p until the
// returned function is called. Delivery is best effort.
func forwardSignals(p *os.Process, logger zerolog.Logger) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, forwardedSignals...)

	go func() {
		for {
			select {
			case sig := <-sigs:
				if err := p.Signal(sig); err != nil {
					logger.Debug().Err(err).Str("signal", sig.String()).Msg("failed to forward signal")
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// waitStatus is satisfied by syscall.WaitStatus on every platform.
type waitStatus interface {
	Signaled() bool
	Signal() syscall.Signal
}

// exitStatus converts the result of cmd.Wait into an exit code.
func exitStatus(err error) (int, error) {
	if err == nil {
		return rserrors.ExitSuccess, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(waitStatus); ok && ws.Signaled() {
			return signalExitBase + int(ws.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}

	return rserrors.ExitRuntimeError, rserrors.Wrap(eris.Wrap(err, "wait"), "build tool did not finish cleanly")
}

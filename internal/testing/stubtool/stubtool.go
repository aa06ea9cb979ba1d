// Package stubtool turns a test binary into a stand-in for the build tool.
//
// A package's TestMain calls RunIfActive first. When the test binary is then
// launched with the variables from Stub.Env, it records its argv, writes a
// line to stdout and stderr, optionally echoes stdin or sleeps, and exits
// with the requested code instead of running tests.
package stubtool

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

// Environment variables understood by the stub process.
const (
	EnvExitCode = "RSBUILD_STUBTOOL_EXIT"
	EnvArgsFile = "RSBUILD_STUBTOOL_ARGS"
	EnvEcho     = "RSBUILD_STUBTOOL_ECHO"
	EnvSelfKill = "RSBUILD_STUBTOOL_SELFKILL"
	EnvSleep    = "RSBUILD_STUBTOOL_SLEEP"
)

// RunIfActive exits the process after acting as the stub build tool when
// EnvExitCode is set. It returns normally otherwise.
func RunIfActive() {
	raw, ok := os.LookupEnv(EnvExitCode)
	if !ok {
		return
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stubtool: bad exit code %q\n", raw)
		os.Exit(250)
	}

	args := os.Args[1:]
	if path := os.Getenv(EnvArgsFile); path != "" {
		data, _ := json.Marshal(args)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "stubtool: %v\n", err)
			os.Exit(251)
		}
	}

	fmt.Fprintf(os.Stdout, "stub stdout %d\n", len(args))
	fmt.Fprintln(os.Stderr, "stub stderr")

	if os.Getenv(EnvEcho) == "1" {
		_, _ = io.Copy(os.Stdout, os.Stdin)
	}
	if os.Getenv(EnvSelfKill) == "1" {
		selfKill()
	}
	if d, err := time.ParseDuration(os.Getenv(EnvSleep)); err == nil {
		time.Sleep(d)
	}

	os.Exit(code)
}

// Stub describes one configured stub invocation.
type Stub struct {
	// Path is the executable to launch (the running test binary).
	Path     string
	argsFile string
	env      []string
}

// New prepares a stub that exits with code.
func New(t testing.TB, code int) *Stub {
	t.Helper()
	path, err := os.Executable()
	if err != nil {
		t.Fatalf("stubtool: resolve test binary: %v", err)
	}
	argsFile := filepath.Join(t.TempDir(), "args.json")
	return &Stub{
		Path:     path,
		argsFile: argsFile,
		env: []string{
			EnvExitCode + "=" + strconv.Itoa(code),
			EnvArgsFile + "=" + argsFile,
		},
	}
}

// WithEcho makes the stub copy its stdin to stdout before exiting.
func (s *Stub) WithEcho() *Stub {
	s.env = append(s.env, EnvEcho+"=1")
	return s
}

// WithSelfKill makes the stub terminate itself with SIGKILL.
func (s *Stub) WithSelfKill() *Stub {
	s.env = append(s.env, EnvSelfKill+"=1")
	return s
}

// WithSleep makes the stub sleep for d after recording its argv, so tests
// can signal or cancel it while it runs.
func (s *Stub) WithSleep(d time.Duration) *Stub {
	s.env = append(s.env, EnvSleep+"="+d.String())
	return s
}

// WaitStarted polls until the stub has recorded its argv. It returns false
// if that does not happen within timeout. Safe to call from any goroutine.
func (s *Stub) WaitStarted(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for !s.Ran() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
	return true
}

// Env returns the child environment: the current process environment plus
// the stub's control variables.
func (s *Stub) Env() []string {
	env := os.Environ()
	return append(env, s.env...)
}

// Args returns the argv the stub recorded, or nil if it never ran.
func (s *Stub) Args(t testing.TB) []string {
	t.Helper()
	data, err := os.ReadFile(s.argsFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("stubtool: read args: %v", err)
	}
	var args []string
	if err := json.Unmarshal(data, &args); err != nil {
		t.Fatalf("stubtool: decode args: %v", err)
	}
	return args
}

// Ran reports whether the stub was launched.
func (s *Stub) Ran() bool {
	_, err := os.Stat(s.argsFile)
	return err == nil
}

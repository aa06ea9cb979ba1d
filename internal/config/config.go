// Package config resolves the per-invocation configuration from an
// environment snapshot.
//
// The environment is passed in explicitly as a map so callers (and tests)
// never have to mutate the process environment.
package config

import (
	"strings"
)

// Environment variable names recognized by rsbuild.
const (
	EnvVerbose = "VERBOSE"
	EnvFlags   = "FLAGS"
	EnvCargo   = "CARGO"
)

// DefaultTool is the build tool launched when CARGO is unset or empty.
const DefaultTool = "cargo"

// truthy is the only VERBOSE value that enables verbose builds.
// Other spellings such as "true" are not accepted.
const truthy = "1"

// Config is an immutable configuration snapshot for one invocation.
type Config struct {
	verbose bool
	flags   []string
	tool    string
}

// Load builds a Config from env. Missing keys fall back to defaults.
func Load(env map[string]string) Config {
	tool := env[EnvCargo]
	if tool == "" {
		tool = DefaultTool
	}
	return Config{
		verbose: env[EnvVerbose] == truthy,
		flags:   SplitFlags(env[EnvFlags]),
		tool:    tool,
	}
}

// Verbose reports whether VERBOSE was set to "1".
func (c Config) Verbose() bool { return c.verbose }

// Tool returns the build tool executable name or path.
func (c Config) Tool() string {
	if c.tool == "" {
		return DefaultTool
	}
	return c.tool
}

// Flags returns a copy of the extra arguments from FLAGS, in order.
// Always returns a non-nil slice.
func (c Config) Flags() []string {
	result := make([]string, len(c.flags))
	copy(result, c.flags)
	return result
}

// SplitFlags splits s into words separated by ASCII whitespace, the way a
// shell splits an unquoted variable. Non-ASCII spaces such as U+00A0 stay
// inside a word. Always returns a non-nil slice.
func SplitFlags(s string) []string {
	return strings.FieldsFunc(s, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// FromEnviron converts os.Environ-style "KEY=value" entries into a map.
// Entries without "=" are ignored; a later duplicate key wins.
func FromEnviron(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

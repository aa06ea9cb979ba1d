// Package rsbuild provides public constants for scripts and tools that wrap
// the rsbuild CLI.
package rsbuild

// Exit codes reserved by the rsbuild CLI. Every other code, and these same
// values when no diagnostic was printed, comes from cargo itself.
const (
	// ExitSuccess indicates cargo completed successfully.
	ExitSuccess = 0

	// ExitUsageError indicates invalid flags or more than one operation.
	ExitUsageError = 2

	// ExitUnknownOperation indicates an operation name other than
	// default, release or clean. Cargo was not started.
	ExitUnknownOperation = 64

	// ExitLaunchFailure indicates cargo could not be found or started.
	ExitLaunchFailure = 127
)

// Package main tests for the rsbuild CLI entry point.
package main

import (
	"os/exec"
	"testing"
)

// TestMain_BuildVerification verifies the binary builds successfully.
func TestMain_BuildVerification(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "build", "-o", "/dev/null", ".")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build main package: %v", err)
	}
}

// TestMain_HelpFlag verifies the --help flag exits 0 with output.
func TestMain_HelpFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--help")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--help failed: %v\noutput: %s", err, out)
	}
	if len(out) == 0 {
		t.Error("--help produced empty output")
	}
}

// TestMain_DryRun verifies an invocation plan is printed without running cargo.
func TestMain_DryRun(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--dry-run", "release")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--dry-run failed: %v\noutput: %s", err, out)
	}
}

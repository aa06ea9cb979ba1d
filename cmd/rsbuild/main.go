// Package main is the entry point for the rsbuild CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/rsbuild/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}

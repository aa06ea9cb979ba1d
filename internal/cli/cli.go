// Package cli provides the command-line interface for rsbuild.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/rsbuild/internal/config"
	"github.com/AndreyAkinshin/rsbuild/internal/dispatch"
	"github.com/AndreyAkinshin/rsbuild/internal/errors"
	"github.com/AndreyAkinshin/rsbuild/internal/output"
	"github.com/AndreyAkinshin/rsbuild/internal/runner"
)

// Version is set at build time.
var Version = "dev"

// streams are the standard streams handed to the CLI and the build tool.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// options holds parsed flags.
type options struct {
	dryRun bool
	debug  bool
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return run(args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}, os.Environ())
}

func run(args []string, s streams, environ []string) int {
	// The environment is snapshotted once here and never re-read.
	env := config.FromEnviron(environ)
	logger := output.NewLogger(s.err, output.UseColor(s.err, env), false)

	cmd := newRootCmd(s, environ, env, &logger)
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd.SetArgs(args)

	// A tool failure has already been reported by the tool itself.
	err := cmd.Execute()
	if err != nil && !errors.IsToolFailure(err) {
		logger.Error().Msg(err.Error())
		logger.Debug().Err(err).Msg("error detail")
	}
	return errors.GetExitCode(err)
}

func newRootCmd(s streams, environ []string, env map[string]string, logger *zerolog.Logger) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "rsbuild [flags] [" + strings.Join(dispatch.OperationNames(), "|") + "]",
		Short: "Build, release or clean the Rust workspace with cargo",
		Long:  longHelp(),
		Example: strings.Join([]string{
			"  rsbuild",
			"  rsbuild release",
			"  VERBOSE=1 FLAGS=\"--locked --offline\" rsbuild",
			"  rsbuild --dry-run clean",
		}, "\n"),
		Version:       Version,
		ValidArgs:     dispatch.OperationNames(),
		Args:          maxOneOperation,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				*logger = logger.Level(zerolog.DebugLevel)
			}

			var operation string
			if len(args) == 1 {
				// Only a missing operation means default; an explicit "" does not.
				if args[0] == "" {
					return errors.UnknownOperation(args[0], dispatch.OperationNames())
				}
				operation = args[0]
			}

			exec := runner.New(*logger)
			exec.Stdin = s.in
			exec.Stdout = s.out
			exec.Stderr = s.err
			exec.Env = environ
			d := dispatch.New(exec, *logger)

			if opts.dryRun {
				return printPlan(s.out, d, operation, env)
			}

			_, err := d.Run(context.Background(), operation, env)
			return err
		},
	}

	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)
	cmd.SetVersionTemplate("rsbuild {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Usage(err.Error())
	})

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the composed cargo invocation as YAML instead of running it")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log the composed cargo invocation before running it")

	return cmd
}

func maxOneOperation(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.Usagef("expected at most one operation, got %d: %s", len(args), strings.Join(args, " "))
	}
	return nil
}

func printPlan(w io.Writer, d *dispatch.Dispatcher, operation string, env map[string]string) error {
	plan, err := d.Plan(operation, env)
	if err != nil {
		return err
	}
	return output.WritePlan(w, output.PlanDocument{
		Operation: string(plan.Operation),
		Tool:      plan.Tool,
		Args:      plan.Args,
	})
}

func longHelp() string {
	titleCase := cases.Title(language.English)

	var b strings.Builder
	b.WriteString("rsbuild runs exactly one cargo command and exits with cargo's own status.\n\n")
	b.WriteString("Operations:\n")
	for _, op := range dispatch.Operations() {
		fmt.Fprintf(&b, "  %-8s %-24s cargo %s\n", op, titleCase.String(op.Description()), strings.Join(op.BaseArgs(), " "))
	}
	b.WriteString("\nEnvironment:\n")
	fmt.Fprintf(&b, "  %-8s set to 1 to pass --verbose to cargo\n", config.EnvVerbose)
	fmt.Fprintf(&b, "  %-8s extra whitespace-separated cargo arguments, appended last\n", config.EnvFlags)
	fmt.Fprintf(&b, "  %-8s cargo executable to run (default %q)\n", config.EnvCargo, config.DefaultTool)
	b.WriteString("\nExit status:\n")
	b.WriteString("  cargo's own exit status when it runs\n")
	fmt.Fprintf(&b, "  %d  unknown operation\n", errors.ExitUnknownOperation)
	fmt.Fprintf(&b, "  %d  cargo could not be started\n", errors.ExitLaunchFailure)
	fmt.Fprintf(&b, "  %d  invalid command-line usage", errors.ExitUsageError)
	return b.String()
}

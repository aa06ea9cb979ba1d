package dispatch

import (
	"github.com/AndreyAkinshin/rsbuild/internal/config"
)

// VerboseFlag is appended when VERBOSE is truthy.
const VerboseFlag = "--verbose"

// Compose builds the argument list for op from cfg: the operation's base
// arguments, then VerboseFlag if enabled, then the FLAGS tokens. User flags
// come last so they win against earlier ones in last-wins tools.
//
// Compose has no side effects and returns a fresh slice on every call.
func Compose(op Operation, cfg config.Config) []string {
	base := op.BaseArgs()
	flags := cfg.Flags()

	args := make([]string, 0, len(base)+1+len(flags))
	args = append(args, base...)
	if cfg.Verbose() {
		args = append(args, VerboseFlag)
	}
	return append(args, flags...)
}

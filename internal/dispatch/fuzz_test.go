package dispatch

import (
	"reflect"
	"testing"

	"github.com/AndreyAkinshin/rsbuild/internal/config"
)

// FuzzCompose checks argument composition invariants for arbitrary
// VERBOSE and FLAGS values.
// Run: go test -fuzz=FuzzCompose -fuzztime=30s ./internal/dispatch
func FuzzCompose(f *testing.F) {
	seeds := []struct {
		verbose string
		flags   string
	}{
		{"", ""},
		{"1", ""},
		{"1", "-x -y"},
		{"0", "--release"},
		{"true", "  --features\tserde  "},
		{"1\n", " -x"},
		{"", "--verbose"},
	}
	for _, s := range seeds {
		f.Add(s.verbose, s.flags)
	}

	f.Fuzz(func(t *testing.T, verbose, flags string) {
		cfg := config.Load(map[string]string{config.EnvVerbose: verbose, config.EnvFlags: flags})
		wantFlags := config.SplitFlags(flags)

		for _, op := range Operations() {
			args := Compose(op, cfg)
			base := op.BaseArgs()

			if !reflect.DeepEqual(args[:len(base)], base) {
				t.Fatalf("Compose(%s) = %q, want prefix %q", op, args, base)
			}

			rest := args[len(base):]
			if verbose == "1" {
				if len(rest) == 0 || rest[0] != VerboseFlag {
					t.Fatalf("Compose(%s) = %q, want %s after base args", op, args, VerboseFlag)
				}
				rest = rest[1:]
			}

			if len(rest) != len(wantFlags) {
				t.Fatalf("Compose(%s) = %q, want trailing %q", op, args, wantFlags)
			}
			for i := range rest {
				if rest[i] != wantFlags[i] {
					t.Fatalf("Compose(%s) = %q, want trailing %q", op, args, wantFlags)
				}
			}

			if again := Compose(op, cfg); !reflect.DeepEqual(args, again) {
				t.Fatalf("Compose(%s) not deterministic: %q vs %q", op, args, again)
			}
		}
	})
}

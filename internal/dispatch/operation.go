package dispatch

import (
	rserrors "github.com/AndreyAkinshin/rsbuild/internal/errors"
)

// Operation is one of the fixed actions rsbuild supports.
type Operation string

const (
	OpDefault Operation = "default"
	OpRelease Operation = "release"
	OpClean   Operation = "clean"
)

// baseArgs maps each operation to the leading build tool arguments.
var baseArgs = map[Operation][]string{
	OpDefault: {"build"},
	OpRelease: {"build", "--release"},
	OpClean:   {"clean"},
}

// Operations returns all operations in help order.
func Operations() []Operation {
	return []Operation{OpDefault, OpRelease, OpClean}
}

// OperationNames returns the names of all operations in help order.
func OperationNames() []string {
	ops := Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return names
}

// ParseOperation resolves an operation name. An empty name selects OpDefault.
// Names are case sensitive.
func ParseOperation(name string) (Operation, error) {
	if name == "" {
		return OpDefault, nil
	}
	op := Operation(name)
	if !op.IsValid() {
		return "", rserrors.UnknownOperation(name, OperationNames())
	}
	return op, nil
}

// IsValid returns true if op is one of the known operations.
func (op Operation) IsValid() bool {
	_, ok := baseArgs[op]
	return ok
}

// BaseArgs returns a copy of the leading arguments for op, or nil if op is
// not valid.
func (op Operation) BaseArgs() []string {
	base, ok := baseArgs[op]
	if !ok {
		return nil
	}
	result := make([]string, len(base))
	copy(result, base)
	return result
}

// Description returns a short summary for help output.
func (op Operation) Description() string {
	switch op {
	case OpDefault:
		return "debug build"
	case OpRelease:
		return "optimized release build"
	case OpClean:
		return "remove build artifacts"
	default:
		return ""
	}
}

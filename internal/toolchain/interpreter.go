// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"fmt"
	"strings"
)

// Interpreter is a Python interpreter reachable as Command.
type Interpreter struct {
	Command string
	Runner  Runner
}

// NewInterpreter creates an Interpreter for command (e.g. "python3").
func NewInterpreter(command string, runner Runner) *Interpreter {
	return &Interpreter{Command: command, Runner: runner}
}

// Version runs `<command> --version` and parses the result. Python 2 printed
// its version on stderr, so both streams are inspected.
func (i *Interpreter) Version(ctx context.Context) (Version, error) {
	res := i.Runner.Run(ctx, Invocation{
		Path:    i.Command,
		Args:    []string{"--version"},
		Capture: true,
	})
	if res.Failed() {
		return Version{}, &ToolError{Tool: i.Command, Args: []string{"--version"}, Result: res}
	}
	return ParseVersion(strings.TrimSpace(res.Output + "\n" + res.ErrOutput))
}

// String implements fmt.Stringer.
func (i *Interpreter) String() string {
	return fmt.Sprintf("interpreter(%s)", i.Command)
}

// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"

	"github.com/pyprov/pyprov/internal/toolchain"
	"github.com/pyprov/pyprov/pkg/types"
)

var (
	// ErrUnsupportedRuntime is the sentinel wrapped by UnsupportedRuntimeError.
	ErrUnsupportedRuntime = errors.New("unsupported runtime")

	// ErrExternalToolFailure is the sentinel wrapped by ExternalToolFailureError.
	ErrExternalToolFailure = errors.New("external tool failure")
)

type (
	// UnsupportedRuntimeError is returned when the interpreter is older than the
	// minimum version, or when its version cannot be determined at all.
	UnsupportedRuntimeError struct {
		Interpreter string
		Required    string
		// Found is empty when the version could not be determined.
		Found string
		Cause error
	}

	// ExternalToolFailureError is returned when the interpreter, the venv module
	// or pip exits non-zero.
	ExternalToolFailureError struct {
		Step StepName
		Tool *toolchain.ToolError
	}

	// exitCoder is implemented by errors that carry a process exit code.
	exitCoder interface {
		ExitCode() types.ExitCode
	}
)

// Error implements the error interface.
func (e *UnsupportedRuntimeError) Error() string {
	if e.Found != "" {
		return fmt.Sprintf("Python %s or higher is required, found %s", e.Required, e.Found)
	}
	return fmt.Sprintf("Python %s or higher is required, could not determine the version of %s: %v",
		e.Required, e.Interpreter, e.Cause)
}

// ExitCode is always 1.
func (e *UnsupportedRuntimeError) ExitCode() types.ExitCode { return types.ExitFailure }

// Unwrap returns ErrUnsupportedRuntime and the cause, if any.
func (e *UnsupportedRuntimeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUnsupportedRuntime}
	}
	return []error{ErrUnsupportedRuntime, e.Cause}
}

// Error implements the error interface.
func (e *ExternalToolFailureError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Tool)
}

// ExitCode returns the tool's exit code. A tool that could not be started at
// all yields 1.
func (e *ExternalToolFailureError) ExitCode() types.ExitCode {
	if e.Tool == nil || e.Tool.Result == nil || e.Tool.Result.Error != nil {
		return types.ExitFailure
	}
	return e.Tool.ExitCode()
}

// Unwrap returns ErrExternalToolFailure and the underlying tool error.
func (e *ExternalToolFailureError) Unwrap() []error {
	return []error{ErrExternalToolFailure, e.Tool}
}

// ExitCodeOf maps a run error to the process exit code.
func ExitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return types.ExitFailure
}

func toolFailure(step StepName, err error) error {
	var toolErr *toolchain.ToolError
	if errors.As(err, &toolErr) {
		return &ExternalToolFailureError{Step: step, Tool: toolErr}
	}
	return err
}

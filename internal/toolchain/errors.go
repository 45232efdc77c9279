// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"

	"github.com/pyprov/pyprov/pkg/types"
)

// ErrToolFailed is the sentinel wrapped by ToolError.
var ErrToolFailed = errors.New("external tool failed")

// ToolError reports a non-zero exit (or a failure to start) of an external tool.
type ToolError struct {
	Tool   string
	Args   []string
	Result *Result
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	cmdline := FormatCommand(e.Tool, e.Args...)
	if e.Result != nil && e.Result.Error != nil {
		return fmt.Sprintf("%s: %v", cmdline, e.Result.Error)
	}
	return fmt.Sprintf("%s: exit status %d", cmdline, e.ExitCode())
}

// ExitCode returns the tool's exit code, or ExitFailure when unknown.
func (e *ToolError) ExitCode() types.ExitCode {
	if e.Result == nil {
		return types.ExitFailure
	}
	if e.Result.ExitCode.IsSuccess() {
		return types.ExitFailure
	}
	return e.Result.ExitCode
}

// Unwrap returns ErrToolFailed and the start error, if any.
func (e *ToolError) Unwrap() []error {
	errs := []error{ErrToolFailed}
	if e.Result != nil && e.Result.Error != nil {
		errs = append(errs, e.Result.Error)
	}
	return errs
}

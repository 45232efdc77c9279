// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is returned when every provisioning step completed.
	ExitSuccess ExitCode = 0
	// ExitFailure is the generic failure code. An unsupported interpreter
	// version always exits with this code.
	ExitFailure ExitCode = 1
	// ExitNotExecutable is the POSIX shell convention for "found but not executable".
	ExitNotExecutable ExitCode = 126
	// ExitNotFound is the POSIX shell convention for "command not found".
	ExitNotFound ExitCode = 127
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// IsCommandMissing returns true if the exit code is one a POSIX shell uses
// when the requested program could not be located or executed (126, 127).
func (c ExitCode) IsCommandMissing() bool { return c == ExitNotExecutable || c == ExitNotFound }

// Normalize maps out-of-range codes onto ExitFailure so the value can be
// handed to os.Exit. Signals reported as -1 by os/exec end up here too.
func (c ExitCode) Normalize() ExitCode {
	if c.Validate() != nil {
		return ExitFailure
	}
	return c
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

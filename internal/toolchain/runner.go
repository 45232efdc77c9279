// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pyprov/pyprov/pkg/types"
)

type (
	// Invocation describes a single external tool call.
	Invocation struct {
		// Path is the program to run. Bare names are looked up in the PATH
		// entry of Env (or the process PATH when Env is nil).
		Path string
		// Args are the program arguments, excluding Path.
		Args []string
		// Dir is the working directory. Empty means the current directory.
		Dir string
		// Env is the complete child environment. Nil inherits os.Environ().
		Env []string
		// Capture buffers stdout/stderr into the Result instead of streaming them.
		Capture bool
	}

	// Result contains the outcome of an Invocation.
	Result struct {
		// ExitCode is the exit code of the program.
		ExitCode types.ExitCode
		// Error is set when the program could not be started at all.
		Error error
		// Output contains captured stdout (if captured).
		Output string
		// ErrOutput contains captured stderr (if captured).
		ErrOutput string
	}

	// Runner executes invocations. Implementations block until the program exits.
	Runner interface {
		Run(ctx context.Context, inv Invocation) *Result
	}

	// NativeRunner runs programs on the host with os/exec.
	NativeRunner struct {
		// Stdout receives streamed standard output. Defaults to os.Stdout.
		Stdout io.Writer
		// Stderr receives streamed standard error. Defaults to os.Stderr.
		Stderr io.Writer
	}
)

// NewNativeRunner creates a runner streaming to the given writers.
func NewNativeRunner(stdout, stderr io.Writer) *NativeRunner {
	return &NativeRunner{Stdout: stdout, Stderr: stderr}
}

// Failed reports whether the invocation did not exit cleanly.
func (r *Result) Failed() bool {
	return r.Error != nil || !r.ExitCode.IsSuccess()
}

// Err converts a failed result into an error, or nil on success.
func (r *Result) Err() error {
	if r.Error != nil {
		return r.Error
	}
	if !r.ExitCode.IsSuccess() {
		return fmt.Errorf("exit status %d", r.ExitCode)
	}
	return nil
}

// Run executes the invocation and waits for it to finish.
func (n *NativeRunner) Run(ctx context.Context, inv Invocation) *Result {
	path, err := lookPath(inv.Path, inv.Env)
	if err != nil {
		return &Result{ExitCode: types.ExitNotFound, Error: err}
	}

	cmd := exec.CommandContext(ctx, path, inv.Args...)
	cmd.Dir = inv.Dir
	if inv.Env != nil {
		cmd.Env = inv.Env
	}

	var stdout, stderr bytes.Buffer
	if inv.Capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = writerOr(n.Stdout, os.Stdout)
		cmd.Stderr = writerOr(n.Stderr, os.Stderr)
	}

	err = cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = types.ExitCode(exitErr.ExitCode()).Normalize()
		} else {
			result.ExitCode = types.ExitFailure
			result.Error = fmt.Errorf("failed to execute %s: %w", inv.Path, err)
		}
	}

	return result
}

// lookPath resolves a bare program name against the PATH carried by env,
// so that an activated Context selects the environment's own executables.
func lookPath(name string, env []string) (string, error) {
	if env == nil || containsSeparator(name) {
		return exec.LookPath(name)
	}
	pathVar, ok := lookupEnv(env, "PATH")
	if !ok {
		return exec.LookPath(name)
	}
	return lookPathIn(name, pathVar)
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

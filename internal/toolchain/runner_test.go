// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pyprov/pyprov/pkg/types"
)

func writeExecutable(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestNativeRunner_Capture(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	t.Parallel()

	dir := t.TempDir()
	writeExecutable(t, dir, "fakepy", `echo "Python 3.11.2"; echo oops >&2`)

	res := NewNativeRunner(nil, nil).Run(context.Background(), Invocation{
		Path:    "fakepy",
		Env:     []string{"PATH=" + dir},
		Capture: true,
	})
	if res.Failed() {
		t.Fatalf("Run() failed: %v", res.Err())
	}
	if strings.TrimSpace(res.Output) != "Python 3.11.2" {
		t.Errorf("Output = %q", res.Output)
	}
	if strings.TrimSpace(res.ErrOutput) != "oops" {
		t.Errorf("ErrOutput = %q", res.ErrOutput)
	}
}

func TestNativeRunner_StreamsAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	t.Parallel()

	dir := t.TempDir()
	tool := writeExecutable(t, dir, "tool", `echo streaming; exit 4`)

	var stdout bytes.Buffer
	res := NewNativeRunner(&stdout, &bytes.Buffer{}).Run(context.Background(), Invocation{Path: tool})

	if res.ExitCode != 4 {
		t.Errorf("ExitCode = %d, want 4", res.ExitCode)
	}
	if res.Error != nil {
		t.Errorf("Error = %v, want nil for a non-zero exit", res.Error)
	}
	if !res.Failed() {
		t.Error("Failed() = false for exit 4")
	}
	if strings.TrimSpace(stdout.String()) != "streaming" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestNativeRunner_NotFound(t *testing.T) {
	t.Parallel()

	res := NewNativeRunner(nil, nil).Run(context.Background(), Invocation{
		Path: "definitely-not-a-python",
		Env:  []string{"PATH=" + t.TempDir()},
	})
	if res.ExitCode != types.ExitNotFound {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, types.ExitNotFound)
	}
	if !errors.Is(res.Error, exec.ErrNotFound) {
		t.Errorf("Error = %v, want exec.ErrNotFound", res.Error)
	}
}

func TestLookupEnv_LastWins(t *testing.T) {
	t.Parallel()

	v, ok := lookupEnv([]string{"PATH=/a", "HOME=/h", "PATH=/b"}, "PATH")
	if !ok || v != "/b" {
		t.Errorf("lookupEnv() = %q, %v; want /b, true", v, ok)
	}
	if _, ok := lookupEnv([]string{"PATHX=/a"}, "PATH"); ok {
		t.Error("lookupEnv() matched a key prefix")
	}
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	if err := (&Result{}).Err(); err != nil {
		t.Errorf("Err() = %v for success", err)
	}
	if err := (&Result{ExitCode: 2}).Err(); err == nil || err.Error() != "exit status 2" {
		t.Errorf("Err() = %v, want exit status 2", err)
	}
	startErr := errors.New("boom")
	if err := (&Result{ExitCode: 1, Error: startErr}).Err(); !errors.Is(err, startErr) {
		t.Errorf("Err() = %v, want start error", err)
	}
}

// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pyprov/pyprov/pkg/platform"
)

// fakePythonScript answers --version, creates a minimal environment for
// `-m venv DIR` (with a python that accepts pip calls) and logs pip calls.
const fakePythonScript = `#!/bin/sh
case "$1" in
--version)
	echo "Python %[1]s"
	exit 0
	;;
esac
if [ "$1" = "-m" ] && [ "$2" = "venv" ]; then
	mkdir -p "$3/bin" || exit 1
	cp "$0" "$3/bin/python"
	exit 0
fi
if [ "$1" = "-m" ] && [ "$2" = "pip" ]; then
	shift 2
	echo "pip $*" >> "%[2]s"
	exit %[3]d
fi
echo "unexpected invocation: $*" >&2
exit 2
`

// FakePython describes a shell-script interpreter written by WriteFakePython.
type FakePython struct {
	// Dir holds the python3 script; put it on PATH.
	Dir string
	// PipLog collects one line per pip invocation.
	PipLog string
}

// WriteFakePython writes a python3 stand-in reporting version into a temp dir.
// pip invocations made through environments it creates exit with pipExit.
// Tests using it are skipped on Windows.
func WriteFakePython(t testing.TB, version string, pipExit int) FakePython {
	t.Helper()
	if platform.IsWindows() {
		t.Skip("fake interpreter is a POSIX shell script")
	}

	dir := t.TempDir()
	logPath := filepath.Join(dir, "pip.log")
	body := fmt.Sprintf(fakePythonScript, version, logPath, pipExit)
	MustWriteFile(t, filepath.Join(dir, "python3"), []byte(body), 0o755)
	return FakePython{Dir: dir, PipLog: logPath}
}

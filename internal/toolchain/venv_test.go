// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestVirtualEnv_Paths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX layout")
	}
	t.Parallel()

	v := NewVirtualEnv("/work/venv")
	if got := v.BinDir(); got != "/work/venv/bin" {
		t.Errorf("BinDir() = %q", got)
	}
	if got := v.ActivateScript(); got != "/work/venv/bin/activate" {
		t.Errorf("ActivateScript() = %q", got)
	}
	if got := v.Python(); got != "/work/venv/bin/python" {
		t.Errorf("Python() = %q", got)
	}
}

func TestVirtualEnv_Exists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	v := NewVirtualEnv(filepath.Join(dir, "venv"))
	if v.Exists() {
		t.Fatal("Exists() = true before creation")
	}

	// An empty directory counts as an existing environment.
	if err := os.Mkdir(v.Dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if !v.Exists() {
		t.Error("Exists() = false for an existing directory")
	}

	file := NewVirtualEnv(filepath.Join(dir, "file"))
	if err := os.WriteFile(file.Dir, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if file.Exists() {
		t.Error("Exists() = true for a regular file")
	}
}

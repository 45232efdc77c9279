// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pyprov/pyprov/pkg/platform"
)

// VirtualEnv is an isolated Python environment rooted at Dir.
type VirtualEnv struct {
	Dir string
}

// NewVirtualEnv returns a VirtualEnv rooted at dir. The directory need not exist.
func NewVirtualEnv(dir string) *VirtualEnv {
	return &VirtualEnv{Dir: dir}
}

// Exists reports whether Dir is present. Any directory at that path counts,
// whether or not it holds a complete environment.
func (v *VirtualEnv) Exists() bool {
	info, err := os.Stat(v.Dir)
	return err == nil && info.IsDir()
}

// BinDir returns the directory holding the environment's executables.
func (v *VirtualEnv) BinDir() string {
	return filepath.Join(v.Dir, platform.VenvBinDir(runtime.GOOS))
}

// ActivateScript returns the path of the POSIX activation script.
func (v *VirtualEnv) ActivateScript() string {
	return filepath.Join(v.BinDir(), "activate")
}

// Python returns the path of the environment's interpreter.
func (v *VirtualEnv) Python() string {
	return filepath.Join(v.BinDir(), platform.ExecutableName(runtime.GOOS, "python"))
}

// Create runs `<interpreter> -m venv <Dir>` in workDir. Callers check Exists first;
// Create itself does not guard against an existing directory.
func (v *VirtualEnv) Create(ctx context.Context, py *Interpreter, workDir string) error {
	args := []string{"-m", "venv", v.Dir}
	res := py.Runner.Run(ctx, Invocation{Path: py.Command, Args: args, Dir: workDir})
	if res.Failed() {
		return &ToolError{Tool: py.Command, Args: args, Result: res}
	}
	return nil
}

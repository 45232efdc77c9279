// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrActivationFailed is returned when the activation script cannot be evaluated.
var ErrActivationFailed = errors.New("virtual environment activation failed")

// Context is an activated environment: the variables a shell would hold after
// sourcing the venv's activate script.
type Context struct {
	VirtualEnv *VirtualEnv
	// Sourced is true when the variables came from the activate script itself
	// rather than being computed.
	Sourced bool
	env     []string
}

// Activate evaluates the venv's activate script on top of baseEnv with an
// embedded POSIX shell and returns the resulting environment. External programs
// are not started while sourcing. When the script is absent the conventional
// variables are computed instead.
func Activate(ctx context.Context, venv *VirtualEnv, baseEnv []string) (*Context, error) {
	absDir, err := filepath.Abs(venv.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrActivationFailed, err)
	}
	venv = NewVirtualEnv(absDir)

	script := venv.ActivateScript()
	if _, err := os.Stat(script); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Context{VirtualEnv: venv, env: computedEnv(venv, baseEnv)}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrActivationFailed, err)
	}

	env, err := sourceScript(ctx, script, venv.Dir, baseEnv)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrActivationFailed, script, err)
	}
	return &Context{VirtualEnv: venv, Sourced: true, env: env}, nil
}

func sourceScript(ctx context.Context, script, dir string, baseEnv []string) ([]string, error) {
	f, err := os.Open(script)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Parsed here rather than through the `.` builtin, which reports syntax
	// errors only as an exit status.
	file, err := syntax.NewParser().Parse(f, script)
	if err != nil {
		return nil, err
	}

	pairs := append(slices.Clone(baseEnv), "VIRTUAL_ENV_DISABLE_PROMPT=1")
	runner, err := interp.New(
		interp.Env(expand.ListEnviron(pairs...)),
		interp.Dir(dir),
		interp.StdIO(nil, io.Discard, io.Discard),
		interp.ExecHandlers(noExternalPrograms),
	)
	if err != nil {
		return nil, err
	}
	if err := runner.Run(ctx, file); err != nil {
		var status interp.ExitStatus
		if !errors.As(err, &status) {
			return nil, err
		}
		// A trailing `hash -r` or similar miss sets a non-zero status but
		// leaves the exported variables in place.
	}

	env := make([]string, 0, len(runner.Vars))
	for name, vr := range runner.Vars {
		if !vr.Exported || !vr.IsSet() || name == "VIRTUAL_ENV_DISABLE_PROMPT" {
			continue
		}
		env = append(env, name+"="+vr.String())
	}
	slices.Sort(env)
	return env, nil
}

// noExternalPrograms makes every external command a silent "not found".
func noExternalPrograms(interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(context.Context, []string) error {
		return interp.ExitStatus(127)
	}
}

func computedEnv(venv *VirtualEnv, baseEnv []string) []string {
	path, _ := lookupEnv(baseEnv, "PATH")
	if path == "" {
		path = venv.BinDir()
	} else {
		path = venv.BinDir() + string(os.PathListSeparator) + path
	}

	env := make([]string, 0, len(baseEnv)+2)
	for _, kv := range baseEnv {
		switch {
		case strings.HasPrefix(kv, "PATH="),
			strings.HasPrefix(kv, "VIRTUAL_ENV="),
			strings.HasPrefix(kv, "PYTHONHOME="):
			continue
		}
		env = append(env, kv)
	}
	env = append(env, "VIRTUAL_ENV="+venv.Dir, "PATH="+path)
	slices.Sort(env)
	return env
}

// Environ returns a copy of the activated environment as KEY=value pairs.
func (c *Context) Environ() []string {
	return slices.Clone(c.env)
}

// Getenv returns the value of key in the activated environment.
func (c *Context) Getenv(key string) string {
	v, _ := lookupEnv(c.env, key)
	return v
}

// Python returns the environment's interpreter path.
func (c *Context) Python() string {
	return c.VirtualEnv.Python()
}

// CheckInterpreter fails with ErrActivationFailed when the environment has no
// python executable, as left behind by an interrupted creation.
func (c *Context) CheckInterpreter() error {
	info, err := os.Stat(c.Python())
	switch {
	case err != nil:
		return fmt.Errorf("%w: %w", ErrActivationFailed, err)
	case info.IsDir():
		return fmt.Errorf("%w: %s is a directory", ErrActivationFailed, c.Python())
	}
	return nil
}

// Command builds an Invocation that runs name inside the activated environment.
func (c *Context) Command(name string, args ...string) Invocation {
	return Invocation{Path: name, Args: args, Env: c.Environ()}
}

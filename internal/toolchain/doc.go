// SPDX-License-Identifier: MPL-2.0

// Package toolchain wraps the three external tools a provisioning run relies on:
// the Python interpreter, its venv module and pip.
//
// The activated environment is modelled as an explicit *Context value rather
// than a mutation of the provisioner's own process environment:
//
//	venv := toolchain.NewVirtualEnv("/work/venv")
//	tc, err := toolchain.Activate(ctx, venv, os.Environ())
//	res := runner.Run(ctx, tc.Command(tc.Python(), "-m", "pip", "install", "-r", "requirements.txt"))
//
// Only processes started through the Context see the activated PATH and
// VIRTUAL_ENV; the invoking shell is never affected.
package toolchain

// SPDX-License-Identifier: MPL-2.0

// Package provision brings a working directory into a runnable state for the
// Python query tool.
//
// A Provisioner runs a fixed chain of steps in order:
//
//	version-check -> environment-setup -> activation -> dependency-install
//	  -> credentials-scaffold -> summary
//
// The chain stops at the first failing step. Each step reports succeeded,
// skipped or failed in the returned Report:
//
//	p := provision.New(runner, logger, provision.DefaultConfig(), provision.WithWorkDir(dir))
//	report, err := p.Run(ctx)
//	os.Exit(int(report.ExitCode))
//
// The activated virtual environment is carried as an explicit *toolchain.Context
// in the run State. Nothing is exported into the provisioner's own process.
package provision

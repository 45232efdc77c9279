// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/pyprov/pyprov/internal/provision"
	"github.com/pyprov/pyprov/pkg/types"

	"github.com/spf13/cobra"
)

// runProvision loads the configuration and runs every provisioning step.
// A failed step's exit code becomes the process exit code.
func runProvision(cmd *cobra.Command, app *App, flags *rootFlags) error {
	ctx := cmd.Context()

	cfg, cfgPath, err := app.loadConfig(ctx, flags)
	if err != nil {
		silence(cmd)
		renderError(app.stderr, err, flags.verbose, glamourStyle(app.stderr, nil))
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
	verbose := flags.verbose || cfg.UI.Verbose

	logger := app.newLogger(verbose)
	if cfgPath != "" {
		logger.Debug("loaded configuration", "path", cfgPath)
	}

	pc := provisionConfig(cfg, flags.workDir)
	report, err := provision.New(app.Runner, logger, pc).Run(ctx)
	if err != nil {
		silence(cmd)
		renderSteps(app.stderr, report)
		renderError(app.stderr, explainProvisionError(err, report, pc), verbose, glamourStyle(app.stderr, cfg))
		return &ExitError{Code: report.ExitCode, Err: err}
	}

	renderSteps(app.stdout, report)
	renderSummary(app.stdout, report.Summary)
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/pyprov/pyprov/internal/doctor"
	"github.com/pyprov/pyprov/internal/issue"
	"github.com/pyprov/pyprov/pkg/types"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// newDoctorCommand creates the `pyprov doctor` command.
func newDoctorCommand(app *App, flags *rootFlags) *cobra.Command {
	var skipCache bool

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the query tool is ready to run",
		Long: `Check that the query tool is ready to run.

Verifies the interpreter version, the virtual environment, the dependency
manifest and the API keys (from the credentials file or the environment),
then pings the Redis response cache. An unreachable cache is only a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, app, flags, skipCache)
		},
	}
	doctorCmd.Flags().BoolVar(&skipCache, "skip-cache", false, "do not check the Redis cache")
	return doctorCmd
}

func runDoctor(cmd *cobra.Command, app *App, flags *rootFlags, skipCache bool) error {
	ctx := cmd.Context()

	cfg, _, err := app.loadConfig(ctx, flags)
	if err != nil {
		silence(cmd)
		renderError(app.stderr, err, flags.verbose, glamourStyle(app.stderr, nil))
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	dcfg := doctor.Config{
		Provision: provisionConfig(cfg, flags.workDir),
		RedisURL:  cfg.Doctor.RedisURL.String(),
	}
	if skipCache {
		dcfg.RedisURL = ""
	}

	d := doctor.New(dcfg, app.Runner, app.newLogger(flags.verbose || cfg.UI.Verbose),
		doctor.WithLookup(app.Lookup),
		doctor.WithCacheProbe(app.Cache),
	)
	report := d.Run(ctx)
	renderChecks(app.stdout, report)
	renderDoctorIssues(app.stderr, report, dcfg.Provision.Template.Names(), glamourStyle(app.stderr, cfg))

	if !report.Failed() {
		return nil
	}
	silence(cmd)
	return &ExitError{Code: report.ExitCode()}
}

// renderDoctorIssues prints the catalogue entry for each kind of problem found:
// a missing required API key, or a cache that could not be reached.
func renderDoctorIssues(w io.Writer, report *doctor.Report, keys []string, style string) {
	var ids []issue.Id
	if slices.ContainsFunc(report.Checks, func(c doctor.Check) bool {
		return c.Severity == doctor.SeverityFail && slices.Contains(keys, c.Name)
	}) {
		ids = append(ids, issue.CredentialsMissingId)
	}
	if c, ok := report.Check(doctor.CheckCache); ok && c.Severity == doctor.SeverityWarn {
		ids = append(ids, issue.CacheUnreachableId)
	}

	for _, id := range ids {
		if rendered, err := issue.Get(id).Render(style); err == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// renderChecks prints one line per check followed by a tally.
func renderChecks(w io.Writer, report *doctor.Report) {
	for _, c := range report.Checks {
		fmt.Fprintf(w, "%s %s: %s\n", severityMarker(c.Severity), c.Name, c.Message)
		if c.Hint != "" {
			fmt.Fprintln(w, hintStyle.Render(c.Hint))
		}
	}

	tally := fmt.Sprintf("%d ok, %d warnings, %d failed",
		report.Count(doctor.SeverityOK), report.Count(doctor.SeverityWarn), report.Count(doctor.SeverityFail))
	if report.Failed() {
		fmt.Fprintln(w, "\n"+ErrorStyle.Render(tally))
	} else {
		fmt.Fprintln(w, "\n"+SuccessStyle.Render(tally))
	}
}

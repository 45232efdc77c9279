// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pyprov/pyprov/internal/issue"
	"github.com/pyprov/pyprov/internal/provision"
	"github.com/pyprov/pyprov/internal/toolchain"

	"github.com/charmbracelet/log"
)

// renderError prints err for the user. ActionableErrors get their suggestions,
// and a catalogued issue, if any, is rendered as markdown below them.
func renderError(w io.Writer, err error, verbose bool, style string) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	entry := ae.Issue()
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(style)
	if renderErr != nil {
		log.Warn("failed to render issue catalog entry", "issueID", ae.IssueId, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// explainProvisionError attaches the operation, the artifact involved and fix
// suggestions to a failed provisioning run.
func explainProvisionError(err error, report *provision.Report, cfg *provision.Config) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}

	b := issue.NewErrorContext().Wrap(err)

	var runtimeErr *provision.UnsupportedRuntimeError
	if errors.As(err, &runtimeErr) {
		b.WithOperation("check the Python interpreter").WithResource(runtimeErr.Interpreter)
		if runtimeErr.Found == "" {
			return b.WithIssue(issue.InterpreterNotFoundId).
				WithSuggestion(fmt.Sprintf("Install Python %s or newer and make sure %s is on your PATH", runtimeErr.Required, runtimeErr.Interpreter)).
				BuildError()
		}
		return b.WithIssue(issue.UnsupportedRuntimeId).
			WithSuggestions(
				fmt.Sprintf("Install Python %s or newer", runtimeErr.Required),
				"Point python.interpreter at a newer interpreter in pyprov.cue",
			).
			BuildError()
	}

	if errors.Is(err, provision.ErrInvalidConfig) {
		return b.WithOperation("validate the configuration").
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Run 'pyprov config show' to inspect the effective settings").
			BuildError()
	}

	if errors.Is(err, toolchain.ErrActivationFailed) {
		return b.WithOperation("activate the virtual environment").
			WithResource(cfg.VenvDir.Resolve(cfg.WorkDir)).
			WithIssue(issue.ActivationFailedId).
			WithSuggestion("Remove the directory and run pyprov again").
			BuildError()
	}

	switch failedStep(report) {
	case provision.StepEnvironmentSetup:
		return b.WithOperation("create the virtual environment").
			WithResource(cfg.VenvDir.Resolve(cfg.WorkDir)).
			WithIssue(issue.EnvironmentCreateFailedId).
			WithSuggestion("On Debian and Ubuntu, install the python3-venv package").
			BuildError()
	case provision.StepDependencyInstall:
		manifest := cfg.Manifest.Resolve(cfg.WorkDir)
		if _, statErr := os.Stat(manifest); errors.Is(statErr, os.ErrNotExist) {
			return b.WithOperation("install dependencies").
				WithResource(manifest).
				WithIssue(issue.ManifestNotFoundId).
				WithSuggestion("Create the requirements file or set install.manifest").
				BuildError()
		}
		return b.WithOperation("install dependencies").
			WithResource(manifest).
			WithIssue(issue.DependencyInstallFailedId).
			WithSuggestion("Re-run with --verbose and read pip's output above").
			BuildError()
	case provision.StepCredentialsScaffold:
		return b.WithOperation("write the credentials template").
			WithResource(cfg.CredentialsFile.Resolve(cfg.WorkDir)).
			WithIssue(issue.CredentialsWriteFailedId).
			BuildError()
	}

	return b.WithOperation("provision the Python environment").BuildError()
}

func failedStep(report *provision.Report) provision.StepName {
	if report == nil {
		return ""
	}
	for _, o := range report.Steps {
		if o.Status == provision.StatusFailed {
			return o.Name
		}
	}
	return ""
}

// renderSteps prints one line per finished step.
func renderSteps(w io.Writer, report *provision.Report) {
	for _, o := range report.Steps {
		line := fmt.Sprintf("%s %s", stepMarker(o.Status), o.Name)
		if o.Detail != "" && o.Status != provision.StatusFailed {
			line += " " + VerboseStyle.Render("("+o.Detail+")")
		}
		fmt.Fprintln(w, line)
	}
}

// renderSummary prints the next-steps guidance.
func renderSummary(w io.Writer, s *provision.Summary) {
	if s == nil {
		return
	}
	fmt.Fprintln(w)
	_ = s.Render(w, provision.SummaryStyles{Title: TitleStyle, Command: CmdStyle, Note: SubtitleStyle})
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pyprov/pyprov/internal/issue"
	"github.com/pyprov/pyprov/internal/provision"
	"github.com/pyprov/pyprov/internal/toolchain"
)

func TestExplainProvisionError(t *testing.T) {
	t.Parallel()

	cfg := provision.DefaultConfig()
	cfg.WorkDir = t.TempDir()
	failedAt := func(step provision.StepName) *provision.Report {
		return &provision.Report{Steps: []provision.StepOutcome{
			{Name: provision.StepVersionCheck, Status: provision.StatusSucceeded},
			{Name: step, Status: provision.StatusFailed},
		}}
	}
	toolErr := &toolchain.ToolError{Tool: "python3", Result: &toolchain.Result{ExitCode: 3}}

	tests := []struct {
		name   string
		err    error
		report *provision.Report
		want   issue.Id
	}{
		{
			name: "too old",
			err:  &provision.UnsupportedRuntimeError{Interpreter: "python3", Required: "3.7", Found: "3.6.9"},
			want: issue.UnsupportedRuntimeId,
		},
		{
			name: "interpreter missing",
			err:  &provision.UnsupportedRuntimeError{Interpreter: "python3", Required: "3.7", Cause: errors.New("not found")},
			want: issue.InterpreterNotFoundId,
		},
		{
			name:   "venv creation",
			err:    &provision.ExternalToolFailureError{Step: provision.StepEnvironmentSetup, Tool: toolErr},
			report: failedAt(provision.StepEnvironmentSetup),
			want:   issue.EnvironmentCreateFailedId,
		},
		{
			name:   "manifest missing",
			err:    &provision.ExternalToolFailureError{Step: provision.StepDependencyInstall, Tool: toolErr},
			report: failedAt(provision.StepDependencyInstall),
			want:   issue.ManifestNotFoundId,
		},
		{
			name:   "activation",
			err:    toolchain.ErrActivationFailed,
			report: failedAt(provision.StepActivation),
			want:   issue.ActivationFailedId,
		},
		{
			name: "invalid config",
			err:  provision.ErrInvalidConfig,
			want: issue.ConfigLoadFailedId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := explainProvisionError(tt.err, tt.report, cfg)
			var ae *issue.ActionableError
			if !errors.As(got, &ae) {
				t.Fatalf("explainProvisionError() = %T, want *issue.ActionableError", got)
			}
			if ae.IssueId != tt.want {
				t.Errorf("IssueId = %d, want %d", ae.IssueId, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("explained error does not wrap the original")
			}
		})
	}
}

func TestExplainProvisionError_KeepsActionableErrors(t *testing.T) {
	t.Parallel()

	orig := issue.NewErrorContext().WithOperation("load configuration").Wrap(errors.New("bad")).BuildError()
	if got := explainProvisionError(orig, nil, provision.DefaultConfig()); got != orig {
		t.Errorf("explainProvisionError() = %v, want the original error", got)
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	err := issue.NewErrorContext().
		WithOperation("install dependencies").
		WithSuggestion("Re-run with --verbose").
		Wrap(errors.New("exit status 2")).
		BuildError()

	var buf bytes.Buffer
	renderError(&buf, err, false, "notty")
	out := buf.String()
	if !strings.Contains(out, "failed to install dependencies: exit status 2") {
		t.Errorf("missing message:\n%s", out)
	}
	if !strings.Contains(out, "Re-run with --verbose") {
		t.Errorf("missing suggestion:\n%s", out)
	}
}

// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"time"

	"github.com/pyprov/pyprov/internal/credentials"
	"github.com/pyprov/pyprov/internal/toolchain"
	"github.com/pyprov/pyprov/pkg/types"
)

const (
	StatusSucceeded StepStatus = "succeeded"
	StatusSkipped   StepStatus = "skipped"
	StatusFailed    StepStatus = "failed"
)

type (
	// StepStatus is the terminal state of one step.
	StepStatus string

	// StepOutcome records how one step ended.
	StepOutcome struct {
		Name     StepName
		Status   StepStatus
		Detail   string
		Duration time.Duration
	}

	// Report is the result of a provisioning run.
	Report struct {
		Steps    []StepOutcome
		ExitCode types.ExitCode
		// Summary is nil when the run stopped before the summary step.
		Summary *Summary
	}

	// State is carried from step to step during one run.
	State struct {
		Config *Config

		Version         toolchain.Version
		Interpreter     *toolchain.Interpreter
		VirtualEnv      *toolchain.VirtualEnv
		EnvCreated      bool
		Toolchain       *toolchain.Context
		CredentialsPath string
		Credentials     credentials.Outcome
		Summary         *Summary

		current *StepOutcome
	}
)

// Skip marks the running step as skipped with a reason.
func (s *State) Skip(detail string) {
	if s.current == nil {
		return
	}
	s.current.Status = StatusSkipped
	s.current.Detail = detail
}

// Note attaches a detail to the running step without changing its status.
func (s *State) Note(detail string) {
	if s.current == nil {
		return
	}
	s.current.Detail = detail
}

// Step returns the outcome recorded for name.
func (r *Report) Step(name StepName) (StepOutcome, bool) {
	for _, o := range r.Steps {
		if o.Name == name {
			return o, true
		}
	}
	return StepOutcome{}, false
}

// Succeeded reports whether the run completed without a failing step.
func (r *Report) Succeeded() bool {
	return r.ExitCode.IsSuccess()
}

// IsValid reports whether s is a known status.
func (s StepStatus) IsValid() bool {
	switch s {
	case StatusSucceeded, StatusSkipped, StatusFailed:
		return true
	}
	return false
}

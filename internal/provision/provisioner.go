// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pyprov/pyprov/internal/toolchain"
	"github.com/pyprov/pyprov/pkg/types"
)

type (
	// Provisioner runs the provisioning chain for one working directory.
	Provisioner struct {
		config *Config
		logger *log.Logger
		steps  []Step
	}
)

// New creates a Provisioner running DefaultSteps with runner. A nil cfg uses
// DefaultConfig; opts are applied on top.
func New(runner toolchain.Runner, logger *log.Logger, cfg *Config, opts ...Option) *Provisioner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Apply(opts...)
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Provisioner{
		config: cfg,
		logger: logger,
		steps:  DefaultSteps(runner, logger),
	}
}

// WithSteps replaces the step chain. It is intended for tests and embedding.
func (p *Provisioner) WithSteps(steps ...Step) *Provisioner {
	p.steps = steps
	return p
}

// Config returns the provisioner's configuration.
func (p *Provisioner) Config() *Config {
	return p.config
}

// Run executes the steps in order and stops at the first failure. The returned
// Report is never nil; its ExitCode matches the returned error.
func (p *Provisioner) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	if err := p.config.Validate(); err != nil {
		report.ExitCode = ExitCodeOf(err)
		return report, err
	}

	cfg, err := p.config.absolute()
	if err != nil {
		report.ExitCode = ExitCodeOf(err)
		return report, err
	}

	st := &State{Config: cfg}
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			report.ExitCode = ExitCodeOf(err)
			return report, err
		}

		outcome := StepOutcome{Name: step.Name(), Status: StatusSucceeded}
		st.current = &outcome
		start := time.Now()
		p.logger.Debug("step started", "step", outcome.Name)

		err := step.Run(ctx, st)
		outcome.Duration = time.Since(start)
		st.current = nil

		if err != nil {
			outcome.Status = StatusFailed
			outcome.Detail = err.Error()
			report.Steps = append(report.Steps, outcome)
			report.ExitCode = ExitCodeOf(err)
			p.logger.Error("step failed", "step", outcome.Name, "err", err)
			return report, err
		}

		report.Steps = append(report.Steps, outcome)
		p.logger.Debug("step finished", "step", outcome.Name, "status", outcome.Status, "duration", outcome.Duration)
	}

	report.Summary = st.Summary
	report.ExitCode = types.ExitSuccess
	return report, nil
}

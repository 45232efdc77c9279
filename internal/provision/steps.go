// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/pyprov/pyprov/internal/credentials"
	"github.com/pyprov/pyprov/internal/toolchain"
)

const (
	StepVersionCheck        StepName = "version-check"
	StepEnvironmentSetup    StepName = "environment-setup"
	StepActivation          StepName = "activation"
	StepDependencyInstall   StepName = "dependency-install"
	StepCredentialsScaffold StepName = "credentials-scaffold"
	StepSummary             StepName = "summary"
)

type (
	// StepName identifies a provisioning step.
	StepName string

	// Step is one link of the provisioning chain. A step that returns an error
	// stops the chain.
	Step interface {
		Name() StepName
		Run(ctx context.Context, st *State) error
	}

	versionCheckStep struct {
		runner toolchain.Runner
		logger *log.Logger
	}

	environmentSetupStep struct {
		logger *log.Logger
	}

	activationStep struct {
		logger *log.Logger
	}

	dependencyInstallStep struct {
		runner toolchain.Runner
		logger *log.Logger
	}

	credentialsScaffoldStep struct {
		logger *log.Logger
	}

	summaryStep struct{}
)

// DefaultSteps returns the provisioning chain in execution order.
func DefaultSteps(runner toolchain.Runner, logger *log.Logger) []Step {
	return []Step{
		&versionCheckStep{runner: runner, logger: logger},
		&environmentSetupStep{logger: logger},
		&activationStep{logger: logger},
		&dependencyInstallStep{runner: runner, logger: logger},
		&credentialsScaffoldStep{logger: logger},
		summaryStep{},
	}
}

func (*versionCheckStep) Name() StepName { return StepVersionCheck }

func (s *versionCheckStep) Run(ctx context.Context, st *State) error {
	cfg := st.Config
	minimum, err := toolchain.ParseMinimum(cfg.MinVersion)
	if err != nil {
		return fmt.Errorf("%w: min version: %w", ErrInvalidConfig, err)
	}

	st.Interpreter = toolchain.NewInterpreter(cfg.Interpreter, s.runner)
	s.logger.Info("checking interpreter version", "interpreter", cfg.Interpreter, "minimum", minimum)

	found, err := st.Interpreter.Version(ctx)
	if err != nil {
		return &UnsupportedRuntimeError{Interpreter: cfg.Interpreter, Required: minimum.String(), Cause: err}
	}
	st.Version = found

	if !found.AtLeast(minimum) {
		return &UnsupportedRuntimeError{Interpreter: cfg.Interpreter, Required: minimum.String(), Found: found.String()}
	}

	st.Note("Python " + found.String())
	s.logger.Info("interpreter ok", "version", found)
	return nil
}

func (*environmentSetupStep) Name() StepName { return StepEnvironmentSetup }

func (s *environmentSetupStep) Run(ctx context.Context, st *State) error {
	st.VirtualEnv = toolchain.NewVirtualEnv(st.Config.resolve(st.Config.VenvDir))

	if st.VirtualEnv.Exists() {
		s.logger.Info("environment already exists", "dir", st.VirtualEnv.Dir)
		st.Skip("already exists")
		return nil
	}

	s.logger.Info("creating environment", "dir", st.VirtualEnv.Dir)
	if err := st.VirtualEnv.Create(ctx, st.Interpreter, st.Config.WorkDir); err != nil {
		// A partially created directory is left in place for inspection.
		return toolFailure(StepEnvironmentSetup, err)
	}
	st.EnvCreated = true
	st.Note("created " + st.VirtualEnv.Dir)
	return nil
}

func (*activationStep) Name() StepName { return StepActivation }

func (s *activationStep) Run(ctx context.Context, st *State) error {
	base := st.Config.Environ
	if base == nil {
		base = os.Environ()
	}

	tc, err := toolchain.Activate(ctx, st.VirtualEnv, base)
	if err != nil {
		return err
	}
	if err := tc.CheckInterpreter(); err != nil {
		return err
	}
	st.Toolchain = tc

	if tc.Sourced {
		st.Note("sourced " + tc.VirtualEnv.ActivateScript())
	} else {
		st.Note("computed (no activate script)")
	}
	s.logger.Debug("environment activated", "VIRTUAL_ENV", tc.Getenv("VIRTUAL_ENV"), "sourced", tc.Sourced)
	return nil
}

func (*dependencyInstallStep) Name() StepName { return StepDependencyInstall }

func (s *dependencyInstallStep) Run(ctx context.Context, st *State) error {
	cfg := st.Config
	manifest := cfg.resolve(cfg.Manifest)

	if cfg.UpgradeInstaller {
		s.logger.Info("upgrading pip")
		if err := s.pip(ctx, st, "install", "--upgrade", "pip"); err != nil {
			return err
		}
	}

	if _, err := os.Stat(manifest); errors.Is(err, os.ErrNotExist) {
		// pip reports the missing file itself and its exit code is what we return.
		s.logger.Warn("dependency manifest not found", "path", manifest)
	}

	s.logger.Info("installing dependencies", "manifest", manifest)
	if err := s.pip(ctx, st, "install", "-r", manifest); err != nil {
		return err
	}
	st.Note("installed " + cfg.Manifest.String())
	return nil
}

func (s *dependencyInstallStep) pip(ctx context.Context, st *State, args ...string) error {
	python := st.Toolchain.Python()
	pipArgs := append([]string{"-m", "pip"}, args...)
	inv := st.Toolchain.Command(python, pipArgs...)
	inv.Dir = st.Config.WorkDir

	res := s.runner.Run(ctx, inv)
	if res.Failed() {
		return &ExternalToolFailureError{
			Step: StepDependencyInstall,
			Tool: &toolchain.ToolError{Tool: python, Args: pipArgs, Result: res},
		}
	}
	return nil
}

func (*credentialsScaffoldStep) Name() StepName { return StepCredentialsScaffold }

func (s *credentialsScaffoldStep) Run(_ context.Context, st *State) error {
	st.CredentialsPath = st.Config.resolve(st.Config.CredentialsFile)

	outcome, err := credentials.Scaffold(st.CredentialsPath, st.Config.Template)
	if err != nil {
		return err
	}
	st.Credentials = outcome

	if outcome == credentials.Preserved {
		s.logger.Info("credentials file already exists", "path", st.CredentialsPath)
		st.Skip("already exists")
		return nil
	}
	s.logger.Info("created credentials template", "path", st.CredentialsPath)
	st.Note("created " + st.CredentialsPath)
	return nil
}

func (summaryStep) Name() StepName { return StepSummary }

func (summaryStep) Run(_ context.Context, st *State) error {
	st.Summary = NewSummary(st)
	return nil
}

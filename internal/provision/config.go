// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pyprov/pyprov/internal/credentials"
	"github.com/pyprov/pyprov/internal/toolchain"
	"github.com/pyprov/pyprov/pkg/types"
)

const (
	// DefaultInterpreter is the interpreter used for the version check and venv creation.
	DefaultInterpreter = "python3"
	// DefaultMinVersion is the oldest supported interpreter.
	DefaultMinVersion = "3.7"
	// DefaultVenvDir is the environment directory, relative to the work dir.
	DefaultVenvDir types.FilesystemPath = "venv"
	// DefaultManifest is the pip requirements file, relative to the work dir.
	DefaultManifest types.FilesystemPath = "requirements.txt"
	// DefaultCredentialsFile is the dotenv file, relative to the work dir.
	DefaultCredentialsFile types.FilesystemPath = ".env"
)

// ErrInvalidConfig is the sentinel wrapped by config validation failures.
var ErrInvalidConfig = errors.New("invalid provisioning config")

type (
	// Config holds the inputs of a provisioning run.
	Config struct {
		// WorkDir is the directory all relative paths are resolved against.
		// Empty means the current directory.
		WorkDir string

		// Interpreter is the command used for the version check and venv creation.
		Interpreter string

		// MinVersion is the minimum interpreter version, e.g. "3.7".
		MinVersion string

		VenvDir         types.FilesystemPath
		Manifest        types.FilesystemPath
		CredentialsFile types.FilesystemPath

		// UpgradeInstaller runs `pip install --upgrade pip` before the manifest install.
		UpgradeInstaller bool

		// Template is written to CredentialsFile when it does not exist.
		Template credentials.Template

		// Environ is the base environment activation starts from.
		// Nil means os.Environ().
		Environ []string
	}

	// Option is a functional option for configuring a Config.
	Option func(*Config)
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Interpreter:      DefaultInterpreter,
		MinVersion:       DefaultMinVersion,
		VenvDir:          DefaultVenvDir,
		Manifest:         DefaultManifest,
		CredentialsFile:  DefaultCredentialsFile,
		UpgradeInstaller: true,
		Template:         credentials.DefaultTemplate(),
	}
}

// WithWorkDir returns an Option that sets WorkDir on the config.
func WithWorkDir(dir string) Option {
	return func(c *Config) {
		c.WorkDir = dir
	}
}

// WithInterpreter returns an Option that sets Interpreter on the config.
func WithInterpreter(cmd string) Option {
	return func(c *Config) {
		c.Interpreter = cmd
	}
}

// WithMinVersion returns an Option that sets MinVersion on the config.
func WithMinVersion(v string) Option {
	return func(c *Config) {
		c.MinVersion = v
	}
}

// WithVenvDir returns an Option that sets VenvDir on the config.
func WithVenvDir(dir types.FilesystemPath) Option {
	return func(c *Config) {
		c.VenvDir = dir
	}
}

// WithManifest returns an Option that sets Manifest on the config.
func WithManifest(path types.FilesystemPath) Option {
	return func(c *Config) {
		c.Manifest = path
	}
}

// WithCredentialsFile returns an Option that sets CredentialsFile on the config.
func WithCredentialsFile(path types.FilesystemPath) Option {
	return func(c *Config) {
		c.CredentialsFile = path
	}
}

// WithUpgradeInstaller returns an Option that sets UpgradeInstaller on the config.
func WithUpgradeInstaller(upgrade bool) Option {
	return func(c *Config) {
		c.UpgradeInstaller = upgrade
	}
}

// WithEnviron returns an Option that sets the base environment for activation.
func WithEnviron(env []string) Option {
	return func(c *Config) {
		c.Environ = env
	}
}

// Apply applies the given options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks every field and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Interpreter == "" {
		errs = append(errs, errors.New("interpreter must not be empty"))
	}
	if _, err := toolchain.ParseMinimum(c.MinVersion); err != nil {
		errs = append(errs, fmt.Errorf("min version: %w", err))
	}
	for _, p := range []types.FilesystemPath{c.VenvDir, c.Manifest, c.CredentialsFile} {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// absolute returns a copy of c with WorkDir made absolute. Children run with
// WorkDir as their directory, so relative paths joined with it would be
// resolved a second time.
func (c *Config) absolute() (*Config, error) {
	wd, err := filepath.Abs(c.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("%w: work dir: %w", ErrInvalidConfig, err)
	}
	out := *c
	out.WorkDir = wd
	return &out, nil
}

func (c *Config) resolve(p types.FilesystemPath) string {
	return p.Resolve(c.WorkDir)
}

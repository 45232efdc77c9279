// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/pyprov/pyprov/internal/toolchain"
	"github.com/pyprov/pyprov/pkg/platform"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidInterpreterCommand is returned when an InterpreterCommand is empty or contains whitespace.
	ErrInvalidInterpreterCommand = errors.New("invalid interpreter command")
	// ErrInvalidVersionConstraint is returned when a VersionConstraint does not parse.
	ErrInvalidVersionConstraint = errors.New("invalid version constraint")
	// ErrInvalidPath is returned when a path setting is empty, whitespace-only or
	// names a Windows device such as "nul".
	ErrInvalidPath = errors.New("invalid path")
	// ErrInvalidRedisURL is returned when a RedisURL does not parse.
	ErrInvalidRedisURL = errors.New("invalid redis url")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InterpreterCommand is the Python interpreter to invoke, a bare name or a path.
	InterpreterCommand string

	// VersionConstraint is a minimum interpreter version such as "3.7".
	VersionConstraint string

	// PathSetting is a path from the config file, relative to the working directory
	// unless absolute.
	PathSetting string

	// RedisURL locates the query tool's response cache. Empty disables the check.
	RedisURL string

	// ValueError reports one invalid setting. It wraps the sentinel for its kind.
	ValueError struct {
		Field    string
		Value    string
		Sentinel error
		Cause    error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Python      PythonConfig      `json:"python" mapstructure:"python" toml:"python"`
		Venv        VenvConfig        `json:"venv" mapstructure:"venv" toml:"venv"`
		Install     InstallConfig     `json:"install" mapstructure:"install" toml:"install"`
		Credentials CredentialsConfig `json:"credentials" mapstructure:"credentials" toml:"credentials"`
		Doctor      DoctorConfig      `json:"doctor" mapstructure:"doctor" toml:"doctor"`
		UI          UIConfig          `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// PythonConfig selects and constrains the interpreter.
	PythonConfig struct {
		Interpreter InterpreterCommand `json:"interpreter" mapstructure:"interpreter" toml:"interpreter"`
		MinVersion  VersionConstraint  `json:"min_version" mapstructure:"min_version" toml:"min_version"`
	}

	// VenvConfig locates the virtual environment.
	VenvConfig struct {
		Dir PathSetting `json:"dir" mapstructure:"dir" toml:"dir"`
	}

	// InstallConfig controls dependency installation.
	InstallConfig struct {
		Manifest PathSetting `json:"manifest" mapstructure:"manifest" toml:"manifest"`
		// UpgradeInstaller upgrades pip before installing the manifest.
		UpgradeInstaller bool `json:"upgrade_installer" mapstructure:"upgrade_installer" toml:"upgrade_installer"`
	}

	// CredentialsConfig locates the dotenv file.
	CredentialsConfig struct {
		File PathSetting `json:"file" mapstructure:"file" toml:"file"`
	}

	// DoctorConfig configures `pyprov doctor`.
	DoctorConfig struct {
		RedisURL RedisURL `json:"redis_url" mapstructure:"redis_url" toml:"redis_url"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Python: PythonConfig{
			Interpreter: "python3",
			MinVersion:  "3.7",
		},
		Venv:    VenvConfig{Dir: "venv"},
		Install: InstallConfig{Manifest: "requirements.txt", UpgradeInstaller: true},
		Credentials: CredentialsConfig{
			File: ".env",
		},
		Doctor: DoctorConfig{RedisURL: "redis://localhost:6379/0"},
		UI:     UIConfig{ColorScheme: ColorSchemeAuto},
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{newValueError("ui.color_scheme", string(c), ErrInvalidColorScheme, nil)}
	}
}

// String returns the string representation of the InterpreterCommand.
func (c InterpreterCommand) String() string { return string(c) }

// IsValid returns whether the command is non-empty and free of whitespace.
func (c InterpreterCommand) IsValid() (bool, []error) {
	if c == "" || strings.ContainsAny(string(c), " \t\r\n") {
		return false, []error{newValueError("python.interpreter", string(c), ErrInvalidInterpreterCommand, nil)}
	}
	return true, nil
}

// String returns the string representation of the VersionConstraint.
func (v VersionConstraint) String() string { return string(v) }

// IsValid returns whether the constraint parses as a version.
func (v VersionConstraint) IsValid() (bool, []error) {
	if _, err := toolchain.ParseMinimum(string(v)); err != nil {
		return false, []error{newValueError("python.min_version", string(v), ErrInvalidVersionConstraint, err)}
	}
	return true, nil
}

// String returns the string representation of the PathSetting.
func (p PathSetting) String() string { return string(p) }

func (p PathSetting) validate(field string) []error {
	if strings.TrimSpace(string(p)) == "" {
		return []error{newValueError(field, string(p), ErrInvalidPath, nil)}
	}
	if elem, reserved := platform.ReservedComponent(string(p)); reserved {
		return []error{newValueError(field, string(p), ErrInvalidPath, fmt.Errorf("%q is a reserved device name on Windows", elem))}
	}
	return nil
}

// String returns the string representation of the RedisURL.
func (u RedisURL) String() string { return string(u) }

// IsValid returns whether the URL is empty or parses as a redis:// or rediss:// URL.
func (u RedisURL) IsValid() (bool, []error) {
	if u == "" {
		return true, nil
	}
	if _, err := redis.ParseURL(string(u)); err != nil {
		return false, []error{newValueError("doctor.redis_url", string(u), ErrInvalidRedisURL, err)}
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields, collecting every field error.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.Python.Interpreter.IsValid,
		c.Python.MinVersion.IsValid,
		c.Doctor.RedisURL.IsValid,
		c.UI.ColorScheme.IsValid,
	} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	errs = append(errs, c.Venv.Dir.validate("venv.dir")...)
	errs = append(errs, c.Install.Manifest.validate("install.manifest")...)
	errs = append(errs, c.Credentials.File.validate("credentials.file")...)

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func newValueError(field, value string, sentinel, cause error) *ValueError {
	return &ValueError{Field: field, Value: value, Sentinel: sentinel, Cause: cause}
}

// Error implements the error interface for ValueError.
func (e *ValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v %q: %v", e.Field, e.Sentinel, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: %v %q", e.Field, e.Sentinel, e.Value)
}

// Unwrap returns the sentinel and the cause.
func (e *ValueError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Sentinel}
	}
	return []error{e.Sentinel, e.Cause}
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

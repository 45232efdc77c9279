// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"github.com/pyprov/pyprov/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "pyprov"
	// LocalConfigFileName is looked up in the working directory.
	LocalConfigFileName = "pyprov.cue"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. PYPROV_VENV_DIR.
	EnvPrefix = "PYPROV"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the pyprov user configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// SearchPaths returns the candidate config files in precedence order.
func SearchPaths(opts LoadOptions) ([]string, error) {
	if opts.ConfigFilePath != "" {
		return []string{opts.ConfigFilePath}, nil
	}

	paths := []string{filepath.Join(opts.WorkDir, LocalConfigFileName)}
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return nil, err
	}
	return append(paths, filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)), nil
}

// newViper returns a Viper instance carrying the defaults and env bindings.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("python.interpreter", defaults.Python.Interpreter.String())
	v.SetDefault("python.min_version", defaults.Python.MinVersion.String())
	v.SetDefault("venv.dir", defaults.Venv.Dir.String())
	v.SetDefault("install.manifest", defaults.Install.Manifest.String())
	v.SetDefault("install.upgrade_installer", defaults.Install.UpgradeInstaller)
	v.SetDefault("credentials.file", defaults.Credentials.File.String())
	v.SetDefault("doctor.redis_url", defaults.Doctor.RedisURL.String())
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme.String())
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadWithOptions performs option-driven config loading.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	if opts.ConfigFilePath != "" && !fileExists(opts.ConfigFilePath) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Use 'pyprov config show' to see the default configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	paths, err := SearchPaths(opts)
	if err != nil {
		return nil, "", err
	}

	resolvedPath := ""
	for _, path := range paths {
		if !fileExists(path) {
			continue
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'pyprov config dump' for a valid starting point").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
		resolvedPath = path
		break
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so validate the merged result.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check PYPROV_* environment variables and the config file").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := checkFileSize(data, maxConfigFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Fields are optional, so only structural validity is required.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	// Merge keeps defaults for absent keys and lets env overrides win.
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// WriteDefault writes the default configuration as CUE to path. An existing
// file is left untouched and reported with created=false.
func WriteDefault(path string) (created bool, err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	if _, err := f.WriteString(GenerateCUE(DefaultConfig())); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// pyprov configuration file\n")
	sb.WriteString("// Every field is optional; omitted fields keep their defaults.\n\n")

	sb.WriteString("python: {\n")
	sb.WriteString(fmt.Sprintf("\tinterpreter: %q\n", cfg.Python.Interpreter))
	sb.WriteString(fmt.Sprintf("\tmin_version: %q\n", cfg.Python.MinVersion))
	sb.WriteString("}\n")

	sb.WriteString("\nvenv: {\n")
	sb.WriteString(fmt.Sprintf("\tdir: %q\n", cfg.Venv.Dir))
	sb.WriteString("}\n")

	sb.WriteString("\ninstall: {\n")
	sb.WriteString(fmt.Sprintf("\tmanifest: %q\n", cfg.Install.Manifest))
	sb.WriteString(fmt.Sprintf("\tupgrade_installer: %v\n", cfg.Install.UpgradeInstaller))
	sb.WriteString("}\n")

	sb.WriteString("\ncredentials: {\n")
	sb.WriteString(fmt.Sprintf("\tfile: %q\n", cfg.Credentials.File))
	sb.WriteString("}\n")

	sb.WriteString("\ndoctor: {\n")
	sb.WriteString(fmt.Sprintf("\tredis_url: %q\n", cfg.Doctor.RedisURL))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}

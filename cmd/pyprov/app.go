// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/pyprov/pyprov/internal/config"
	"github.com/pyprov/pyprov/internal/credentials"
	"github.com/pyprov/pyprov/internal/doctor"
	"github.com/pyprov/pyprov/internal/provision"
	"github.com/pyprov/pyprov/internal/toolchain"
	"github.com/pyprov/pyprov/pkg/types"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler receives
	// an App reference and delegates to the provision, doctor and config packages.
	App struct {
		Config config.Provider
		Runner toolchain.Runner
		Cache  doctor.CacheProbe
		Lookup credentials.LookupFunc
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Runner toolchain.Runner
		Cache  doctor.CacheProbe
		Lookup credentials.LookupFunc
		Stdout io.Writer
		Stderr io.Writer
	}

	// rootFlags holds the persistent flags shared by every command.
	rootFlags struct {
		verbose    bool
		configFile string
		workDir    string
	}
)

// NewApp builds an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		Runner: deps.Runner,
		Cache:  deps.Cache,
		Lookup: deps.Lookup,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Runner == nil {
		// Child output goes to stderr; stdout is reserved for the summary.
		app.Runner = toolchain.NewNativeRunner(app.stderr, app.stderr)
	}
	if app.Cache == nil {
		app.Cache = doctor.RedisProbe{}
	}
	if app.Lookup == nil {
		app.Lookup = os.LookupEnv
	}
	return app
}

// loadConfig loads the configuration selected by the global flags.
func (a *App) loadConfig(ctx context.Context, flags *rootFlags) (*config.Config, string, error) {
	return a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: flags.configFile,
		WorkDir:        flags.workDir,
	})
}

// newLogger creates the logger injected into the provisioner and the doctor.
func (a *App) newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// provisionConfig maps loaded settings onto a provisioning run in workDir.
func provisionConfig(cfg *config.Config, workDir string) *provision.Config {
	pc := provision.DefaultConfig()
	pc.Apply(
		provision.WithWorkDir(workDir),
		provision.WithInterpreter(cfg.Python.Interpreter.String()),
		provision.WithMinVersion(cfg.Python.MinVersion.String()),
		provision.WithVenvDir(types.FilesystemPath(cfg.Venv.Dir)),
		provision.WithManifest(types.FilesystemPath(cfg.Install.Manifest)),
		provision.WithCredentialsFile(types.FilesystemPath(cfg.Credentials.File)),
		provision.WithUpgradeInstaller(cfg.Install.UpgradeInstaller),
	)
	return pc
}

// glamourStyle picks the issue rendering style for w and the configured color
// scheme. Writers that are not terminals get plain text.
func glamourStyle(w io.Writer, cfg *config.Config) string {
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return "notty"
	}
	if cfg != nil && cfg.UI.ColorScheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

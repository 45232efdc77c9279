// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pyprov/pyprov/internal/config"
	"github.com/pyprov/pyprov/internal/issue"
	"github.com/pyprov/pyprov/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `pyprov config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pyprov configuration",
		Long: `Manage pyprov configuration.

Configuration is read from the first file found of:
  - the --config flag
  - pyprov.cue in the working directory
  - the user config file:
      Linux: ~/.config/pyprov/config.cue
      macOS: ~/Library/Application Support/pyprov/config.cue
      Windows: %APPDATA%\pyprov\config.cue

Every key can be overridden with a PYPROV_ environment variable,
for example PYPROV_VENV_DIR=.venv.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var asTOML bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, flags, asTOML)
		},
	}
	showCmd.Flags().BoolVar(&asTOML, "toml", false, "print the configuration as TOML")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return configLoadFailed(cmd, app, flags, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app, flags)
		},
	})

	var local bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(app.stdout, flags, local); err != nil {
				return configLoadFailed(cmd, app, flags, err)
			}
			return nil
		},
	}
	initCmd.Flags().BoolVar(&local, "local", false, "write pyprov.cue in the working directory instead of the user config dir")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

func configLoadFailed(cmd *cobra.Command, app *App, flags *rootFlags, err error) error {
	silence(cmd)
	renderError(app.stderr, err, flags.verbose, glamourStyle(app.stderr, nil))
	return &ExitError{Code: types.ExitFailure, Err: err}
}

func showConfig(cmd *cobra.Command, app *App, flags *rootFlags, asTOML bool) error {
	cfg, cfgPath, err := app.loadConfig(cmd.Context(), flags)
	if err != nil {
		return configLoadFailed(cmd, app, flags, err)
	}

	if asTOML {
		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(app.stdout, out)
		return nil
	}

	w := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if cfgPath != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	sections := []struct {
		name   string
		values [][2]string
	}{
		{"python", [][2]string{
			{"interpreter", cfg.Python.Interpreter.String()},
			{"min_version", cfg.Python.MinVersion.String()},
		}},
		{"venv", [][2]string{{"dir", cfg.Venv.Dir.String()}}},
		{"install", [][2]string{
			{"manifest", cfg.Install.Manifest.String()},
			{"upgrade_installer", fmt.Sprint(cfg.Install.UpgradeInstaller)},
		}},
		{"credentials", [][2]string{{"file", cfg.Credentials.File.String()}}},
		{"doctor", [][2]string{{"redis_url", cfg.Doctor.RedisURL.String()}}},
		{"ui", [][2]string{
			{"color_scheme", cfg.UI.ColorScheme.String()},
			{"verbose", fmt.Sprint(cfg.UI.Verbose)},
		}},
	}
	for _, s := range sections {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", keyStyle.Render(s.name))
		for _, kv := range s.values {
			value := kv[1]
			if value == "" {
				value = SubtitleStyle.Render("(empty)")
			} else {
				value = valueStyle.Render(value)
			}
			fmt.Fprintf(w, "  %s: %s\n", kv[0], value)
		}
	}
	return nil
}

func showConfigPath(cmd *cobra.Command, app *App, flags *rootFlags) error {
	paths, err := config.SearchPaths(config.LoadOptions{ConfigFilePath: flags.configFile, WorkDir: flags.workDir})
	if err != nil {
		return err
	}
	_, loaded, err := app.loadConfig(cmd.Context(), flags)
	if err != nil {
		return configLoadFailed(cmd, app, flags, err)
	}

	for _, p := range paths {
		if p == loaded {
			fmt.Fprintf(app.stdout, "%s %s\n", p, SuccessStyle.Render("(loaded)"))
		} else {
			fmt.Fprintln(app.stdout, p)
		}
	}
	return nil
}

func initConfig(w io.Writer, flags *rootFlags, local bool) error {
	var path string
	if local {
		path = filepath.Join(flags.workDir, config.LocalConfigFileName)
	} else {
		cfgDir, err := config.ConfigDir()
		if err != nil {
			return issue.WrapWithContext(err, "locate the user config directory", "")
		}
		path = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	}

	created, err := config.WriteDefault(path)
	if err != nil {
		return issue.WrapWithContext(err, "write default configuration", path)
	}
	if !created {
		fmt.Fprintf(w, "%s Config file already exists: %s\n", WarningStyle.Render("•"), path)
		return nil
	}
	fmt.Fprintf(w, "%s Created config file: %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pyprov.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree. Running the root command with no
// subcommand provisions the working directory.
func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "pyprov",
		Short: "Provision the Python environment for the query tool",
		Long: TitleStyle.Render("pyprov") + SubtitleStyle.Render(" - Python environment provisioner") + `

pyprov prepares a working directory for the multi-model query tool:
it checks the Python interpreter, creates a virtual environment, installs
the dependencies from requirements.txt and writes a credentials template.
Running it again is safe; existing environments and credentials are kept.

` + SubtitleStyle.Render("Examples:") + `
  pyprov                    Provision the current directory
  pyprov -C ./query-tool    Provision another directory
  pyprov doctor             Check that everything is ready
  pyprov config show        Show the effective configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd, app, flags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default is ./pyprov.cue, then $HOME/.config/pyprov/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&flags.workDir, "dir", "C", "", "directory to provision (default is the current directory)")

	rootCmd.AddCommand(newDoctorCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the code of the failed step, if any.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// handleError prints errors that reached fang unreported. An *ExitError has
// already been rendered by the command that returned it.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// silence stops cobra from printing err and the usage text; the caller has
// already rendered it.
func silence(cmd *cobra.Command) {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
}

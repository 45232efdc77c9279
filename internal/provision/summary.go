// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyprov/pyprov/internal/credentials"
	"github.com/pyprov/pyprov/internal/toolchain"
)

// activationCaveat is shown with every summary: the environment was only active
// for the provisioner's own child processes.
const activationCaveat = "The environment was activated only for this run; it is not active in your shell."

type (
	// Summary is the next-steps guidance printed at the end of a run.
	Summary struct {
		// ActivateCommand is the line the user runs to activate the environment.
		ActivateCommand string
		Caveat          string
		CredentialsPath string
		Credentials     credentials.Outcome
		// CredentialKeys are the keys the user is expected to fill in.
		CredentialKeys []string
		// Usage lists example invocations of the query tool.
		Usage []string
	}

	// Styler decorates one part of a rendered summary. lipgloss.Style satisfies it.
	Styler interface {
		Render(strs ...string) string
	}

	// SummaryStyles holds the decoration per part. Nil fields leave text plain.
	SummaryStyles struct {
		Title   Styler
		Command Styler
		Note    Styler
	}
)

// NewSummary builds the guidance from the state of a completed run.
func NewSummary(st *State) *Summary {
	venvDir := displayPath(st.Config.resolve(st.Config.VenvDir))
	credPath := displayPath(st.Config.resolve(st.Config.CredentialsFile))
	script := filepath.ToSlash(filepath.Join(venvDir, "bin", "activate"))

	return &Summary{
		ActivateCommand: toolchain.FormatCommand("source", script),
		Caveat:          activationCaveat,
		CredentialsPath: credPath,
		Credentials:     st.Credentials,
		CredentialKeys:  st.Config.Template.Names(),
		Usage: []string{
			toolchain.FormatCommand("python", "cli.py", "--query", "Your question here"),
			toolchain.FormatCommand("python", "cli.py", "--interactive"),
		},
	}
}

// displayPath shortens path to be relative to the current directory when it
// lies below it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// String renders the summary as plain text.
func (s *Summary) String() string {
	var b strings.Builder
	_ = s.Render(&b, SummaryStyles{})
	return b.String()
}

// Render writes the summary to w, decorating each part with styles.
func (s *Summary) Render(w io.Writer, styles SummaryStyles) error {
	title, command, note := styled(styles.Title), styled(styles.Command), styled(styles.Note)
	keys := strings.Join(s.CredentialKeys, ", ")

	lines := []string{
		title("Setup complete."),
		"",
		"To activate the virtual environment, run:",
		"  " + command(s.ActivateCommand),
		note(s.Caveat),
		"",
	}
	if s.Credentials == credentials.Created {
		lines = append(lines, fmt.Sprintf("Edit %s and set your API keys (%s).", command(s.CredentialsPath), keys))
	} else {
		lines = append(lines, fmt.Sprintf("Make sure %s contains your API keys (%s).", command(s.CredentialsPath), keys))
	}
	lines = append(lines, "", "Then run the query tool:")
	for _, u := range s.Usage {
		lines = append(lines, "  "+command(u))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func styled(st Styler) func(string) string {
	if st == nil {
		return func(s string) string { return s }
	}
	return func(s string) string { return st.Render(s) }
}

// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyprov/pyprov/internal/credentials"
	"github.com/pyprov/pyprov/internal/testutil"
)

type bracketStyle struct{}

func (bracketStyle) Render(strs ...string) string {
	return "[" + strings.Join(strs, " ") + "]"
}

func testSummary(outcome credentials.Outcome) *Summary {
	return &Summary{
		ActivateCommand: "source venv/bin/activate",
		Caveat:          activationCaveat,
		CredentialsPath: ".env",
		Credentials:     outcome,
		CredentialKeys:  []string{credentials.AnthropicAPIKey},
		Usage:           []string{"python cli.py --interactive"},
	}
}

func TestSummary_RenderStyles(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	styles := SummaryStyles{Title: bracketStyle{}, Command: bracketStyle{}}
	if err := testSummary(credentials.Created).Render(&b, styles); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"[Setup complete.]",
		"  [source venv/bin/activate]",
		"Edit [.env] and set your API keys (ANTHROPIC_API_KEY).",
		"  [python cli.py --interactive]",
		"\n" + activationCaveat + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_StringIsUnstyled(t *testing.T) {
	t.Parallel()

	text := testSummary(credentials.Preserved).String()
	if strings.ContainsAny(text, "[]") {
		t.Errorf("String() should be plain:\n%s", text)
	}
	if !strings.Contains(text, "Make sure .env contains your API keys") {
		t.Errorf("String() should ask to check the existing file:\n%s", text)
	}
}

// Not parallel: changes the process working directory.
func TestNewSummary_PathsRelativeToCurrentDir(t *testing.T) {
	base := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, base))
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.WorkDir = filepath.Join(cwd, "proj")
	s := NewSummary(&State{Config: cfg, Credentials: credentials.Created})
	if want := "source proj/venv/bin/activate"; s.ActivateCommand != want {
		t.Errorf("ActivateCommand = %q, want %q", s.ActivateCommand, want)
	}
	if want := filepath.Join("proj", ".env"); s.CredentialsPath != want {
		t.Errorf("CredentialsPath = %q, want %q", s.CredentialsPath, want)
	}

	cfg.WorkDir = cwd
	if s := NewSummary(&State{Config: cfg}); s.ActivateCommand != "source venv/bin/activate" {
		t.Errorf("ActivateCommand = %q, want the plain relative form", s.ActivateCommand)
	}

	outside := t.TempDir()
	cfg.WorkDir = outside
	if s := NewSummary(&State{Config: cfg}); !strings.Contains(s.ActivateCommand, filepath.ToSlash(outside)) {
		t.Errorf("ActivateCommand = %q, want an absolute path outside the current dir", s.ActivateCommand)
	}
}

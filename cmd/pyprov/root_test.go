// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pyprov/pyprov/internal/config"

	"github.com/charmbracelet/fang"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got, want := getVersionString(), "dev (built from source)"; got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("pip failed")
	withCause := &ExitError{Code: 2, Err: cause}
	if withCause.Error() != "pip failed" {
		t.Errorf("Error() = %q", withCause.Error())
	}
	if !errors.Is(withCause, cause) {
		t.Error("errors.Is should find the cause via Unwrap")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 3")
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handleError(&buf, fang.Styles{}, &ExitError{Code: 2, Err: errors.New("pip failed")})
	if buf.Len() != 0 {
		t.Errorf("an already reported error was printed again:\n%s", buf.String())
	}

	handleError(&buf, fang.Styles{}, errors.New(`unknown command "frob"`))
	if !bytes.Contains(buf.Bytes(), []byte("frob")) {
		t.Errorf("unreported error not printed:\n%s", buf.String())
	}
}

func TestGlamourStyle_NotATerminal(t *testing.T) {
	t.Parallel()

	light := config.DefaultConfig()
	light.UI.ColorScheme = config.ColorSchemeLight
	if got := glamourStyle(&bytes.Buffer{}, light); got != "notty" {
		t.Errorf("glamourStyle(buffer) = %q, want notty", got)
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := glamourStyle(f, nil); got != "notty" {
		t.Errorf("glamourStyle(regular file) = %q, want notty", got)
	}
}

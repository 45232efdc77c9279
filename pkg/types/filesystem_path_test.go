// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"environment dir", FilesystemPath("venv"), false},
		{"dotfile", FilesystemPath(".env"), false},
		{"absolute path", FilesystemPath("/srv/app/requirements.txt"), false},
		{"dot path", FilesystemPath("."), false},
		{"empty is invalid", FilesystemPath(""), true},
		{"whitespace only is invalid", FilesystemPath("   "), true},
		{"tab only is invalid", FilesystemPath("\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("FilesystemPath(%q).Validate() returned unexpected error: %v", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("FilesystemPath(%q).Validate() returned nil, want error", tt.path)
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(err, &fpErr) {
				t.Errorf("error should be *InvalidFilesystemPathError, got: %T", err)
			}
		})
	}
}

func TestFilesystemPath_Resolve(t *testing.T) {
	t.Parallel()

	base := filepath.Join(string(filepath.Separator), "work")
	abs := filepath.Join(string(filepath.Separator), "opt", "venv")

	tests := []struct {
		name string
		path FilesystemPath
		base string
		want string
	}{
		{"relative joined", "venv", base, filepath.Join(base, "venv")},
		{"nested relative", "config/.env", base, filepath.Join(base, "config", ".env")},
		{"absolute kept", FilesystemPath(abs), base, abs},
		{"empty base", "venv", "", "venv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.path.Resolve(tt.base); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestFilesystemPath_String(t *testing.T) {
	t.Parallel()
	p := FilesystemPath("requirements.txt")
	if p.String() != "requirements.txt" {
		t.Errorf("FilesystemPath.String() = %q, want %q", p.String(), "requirements.txt")
	}
}

// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestIsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"con", true},
		{"CON", true},
		{"Nul", true},
		{"com9", true},
		{"lpt1", true},
		{"nul.txt", true},
		{"aux.tar.gz", true},
		{"venv", false},
		{".venv", false},
		{"console", false},
		{"com10", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := IsReservedName(tt.input); got != tt.want {
				t.Errorf("IsReservedName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReservedComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		wantElem string
		wantOK   bool
	}{
		{"venv", "", false},
		{"envs/py311", "", false},
		{"envs/con/venv", "con", true},
		{`envs\aux`, "aux", true},
		{"/tmp/NUL.env", "NUL.env", true},
	}

	for _, tt := range tests {
		elem, ok := ReservedComponent(tt.path)
		if elem != tt.wantElem || ok != tt.wantOK {
			t.Errorf("ReservedComponent(%q) = (%q, %v), want (%q, %v)", tt.path, elem, ok, tt.wantElem, tt.wantOK)
		}
	}
}

func TestVenvLayout(t *testing.T) {
	t.Parallel()

	if got := VenvBinDir("linux"); got != "bin" {
		t.Errorf("VenvBinDir(linux) = %q", got)
	}
	if got := VenvBinDir(Windows); got != "Scripts" {
		t.Errorf("VenvBinDir(windows) = %q", got)
	}
	if got := ExecutableName(Windows, "python"); got != "python.exe" {
		t.Errorf("ExecutableName(windows) = %q", got)
	}
	if got := ExecutableName("darwin", "python"); got != "python" {
		t.Errorf("ExecutableName(darwin) = %q", got)
	}
}

// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	if valid, errs := DefaultConfig().IsValid(); !valid {
		t.Fatalf("defaults invalid: %v", errs)
	}

	cfg := DefaultConfig()
	cfg.Python.Interpreter = "python 3"
	cfg.Python.MinVersion = "x"
	cfg.Venv.Dir = " "
	cfg.Doctor.RedisURL = "mysql://db"
	cfg.UI.ColorScheme = "neon"

	valid, errs := cfg.IsValid()
	if valid || len(errs) != 1 {
		t.Fatalf("IsValid() = %v, %v", valid, errs)
	}
	err := errs[0]
	for _, sentinel := range []error{
		ErrInvalidConfig,
		ErrInvalidInterpreterCommand,
		ErrInvalidVersionConstraint,
		ErrInvalidPath,
		ErrInvalidRedisURL,
		ErrInvalidColorScheme,
	} {
		if !errors.Is(err, sentinel) {
			t.Errorf("errors.Is(%v) = false", sentinel)
		}
	}

	var icErr *InvalidConfigError
	if !errors.As(err, &icErr) || len(icErr.FieldErrors) != 5 {
		t.Errorf("expected 5 field errors, got %v", err)
	}
}

func TestPathSetting_ReservedNames(t *testing.T) {
	t.Parallel()

	for _, dir := range []string{"nul", "envs/con", "aux.venv"} {
		cfg := DefaultConfig()
		cfg.Venv.Dir = PathSetting(dir)
		valid, errs := cfg.IsValid()
		if valid {
			t.Errorf("venv.dir %q accepted", dir)
			continue
		}
		if !errors.Is(errs[0], ErrInvalidPath) {
			t.Errorf("venv.dir %q: error %v does not wrap ErrInvalidPath", dir, errs[0])
		}
	}
}

func TestRedisURL_EmptyIsValid(t *testing.T) {
	t.Parallel()

	if valid, _ := RedisURL("").IsValid(); !valid {
		t.Error("empty RedisURL disables the cache check and must be valid")
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"ui"}, "ui"},
		{[]string{"install", "manifest"}, "install.manifest"},
		{[]string{"a", "0", "b"}, "a[0].b"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := checkFileSize(make([]byte, 10), 10, "x.cue"); err != nil {
		t.Errorf("at limit: %v", err)
	}
	if err := checkFileSize(make([]byte, 11), 10, "x.cue"); err == nil {
		t.Error("over limit should fail")
	}
	if err := formatCUEError(errors.New("plain"), "x.cue"); err == nil || err.Error() != "x.cue: plain" {
		t.Errorf("formatCUEError(non-CUE) = %v", err)
	}
}

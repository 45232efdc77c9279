// SPDX-License-Identifier: MPL-2.0

package credentials

import (
	"os"
	"path/filepath"
	"testing"
)

func envLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "****"},
		{"12345678", "****"},
		{"sk-abcdef1234", "sk-a...1234"},
		{"sk-ant-REDACTED", "sk-a...yyyy"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInspect_FreshTemplateHasNoKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	if _, err := Scaffold(path, DefaultTemplate()); err != nil {
		t.Fatal(err)
	}

	statuses, err := InspectWith(path, DefaultTemplate().Keys, envLookup(nil))
	if err != nil {
		t.Fatalf("InspectWith() unexpected error: %v", err)
	}
	for _, st := range statuses {
		if st.Present {
			t.Errorf("%s reported present from a commented-out placeholder", st.Name)
		}
	}
	if !statuses[0].Required {
		t.Error("ANTHROPIC_API_KEY should be required")
	}
}

func TestInspect_FileOverridesEnvironment(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	body := "ANTHROPIC_API_KEY=sk-ant-fromfile-0001\n# OPENAI_API_KEY=commented\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	env := map[string]string{
		AnthropicAPIKey: "sk-ant-fromenv-9999",
		OpenAIAPIKey:    "sk-openai-fromenv-42",
	}

	statuses, err := InspectWith(path, DefaultTemplate().Keys, envLookup(env))
	if err != nil {
		t.Fatalf("InspectWith() unexpected error: %v", err)
	}

	byName := map[string]KeyStatus{}
	for _, st := range statuses {
		byName[st.Name] = st
	}

	if st := byName[AnthropicAPIKey]; st.Source != SourceFile || st.Masked != "sk-a...0001" {
		t.Errorf("ANTHROPIC_API_KEY = %+v, want file value", st)
	}
	if st := byName[OpenAIAPIKey]; st.Source != SourceEnvironment || st.Masked != "sk-o...v-42" {
		t.Errorf("OPENAI_API_KEY = %+v, want environment value", st)
	}
	if st := byName[GeminiAPIKey]; st.Present || st.Source != SourceNone {
		t.Errorf("GEMINI_API_KEY = %+v, want absent", st)
	}
}

func TestInspect_EmptyFileValueShadowsEnvironment(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ANTHROPIC_API_KEY=\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	statuses, err := InspectWith(path, DefaultTemplate().Keys,
		envLookup(map[string]string{AnthropicAPIKey: "sk-ant-fromenv-9999"}))
	if err != nil {
		t.Fatalf("InspectWith() unexpected error: %v", err)
	}
	if st := statuses[0]; st.Present || st.Source != SourceFile || st.Masked != "" {
		t.Errorf("ANTHROPIC_API_KEY = %+v, want unset by the file", st)
	}
}

func TestInspect_MissingFile(t *testing.T) {
	t.Parallel()

	statuses, err := InspectWith(filepath.Join(t.TempDir(), ".env"), DefaultTemplate().Keys,
		envLookup(map[string]string{GeminiAPIKey: "AIzaSyExample1234"}))
	if err != nil {
		t.Fatalf("InspectWith() unexpected error: %v", err)
	}
	if !statuses[2].Present || statuses[2].Source != SourceEnvironment {
		t.Errorf("GEMINI_API_KEY = %+v, want environment value", statuses[2])
	}
}

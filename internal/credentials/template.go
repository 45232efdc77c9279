// SPDX-License-Identifier: MPL-2.0

package credentials

import "strings"

const (
	// AnthropicAPIKey is required by the query tool.
	AnthropicAPIKey = "ANTHROPIC_API_KEY"
	// OpenAIAPIKey is optional.
	OpenAIAPIKey = "OPENAI_API_KEY"
	// GeminiAPIKey is optional.
	GeminiAPIKey = "GEMINI_API_KEY"
)

type (
	// Key is one placeholder entry of a Template.
	Key struct {
		Name        string
		Description string
		Required    bool
	}

	// Template is the ordered list of keys written to a fresh credentials file.
	Template struct {
		Header []string
		Keys   []Key
	}
)

// DefaultTemplate returns the template for the query tool's three services.
func DefaultTemplate() Template {
	return Template{
		Header: []string{
			"API keys for the query tool.",
			"Uncomment the lines below and replace the placeholders with your keys.",
		},
		Keys: []Key{
			{Name: AnthropicAPIKey, Description: "Anthropic (required)", Required: true},
			{Name: OpenAIAPIKey, Description: "OpenAI (optional)"},
			{Name: GeminiAPIKey, Description: "Google Gemini (optional)"},
		},
	}
}

// Render returns the file body. Every key is commented out so that a fresh
// file never shadows values already present in the environment.
func (t Template) Render() string {
	var b strings.Builder
	for _, line := range t.Header {
		b.WriteString("# " + line + "\n")
	}
	for _, k := range t.Keys {
		b.WriteString("\n")
		if k.Description != "" {
			b.WriteString("# " + k.Description + "\n")
		}
		b.WriteString("# " + k.Name + "=" + placeholder(k.Name) + "\n")
	}
	return b.String()
}

// Names returns the key names in template order.
func (t Template) Names() []string {
	names := make([]string, len(t.Keys))
	for i, k := range t.Keys {
		names[i] = k.Name
	}
	return names
}

func placeholder(name string) string {
	return "your_" + strings.ToLower(name) + "_here"
}

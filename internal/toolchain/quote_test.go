// SPDX-License-Identifier: MPL-2.0

package toolchain

import "testing"

func TestFormatCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"python", []string{"-m", "pip", "install", "-r", "requirements.txt"}, "python -m pip install -r requirements.txt"},
		{"python", []string{"cli.py", "--query", "What is RAG?"}, "python cli.py --query 'What is RAG?'"},
		{"python", []string{""}, "python ''"},
	}

	for _, tt := range tests {
		if got := FormatCommand(tt.name, tt.args...); got != tt.want {
			t.Errorf("FormatCommand(%q, %q) = %q, want %q", tt.name, tt.args, got, tt.want)
		}
	}
}

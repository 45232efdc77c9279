// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "check interpreter version"},
			expected: "failed to check interpreter version",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "create virtual environment",
				Resource:  "venv",
			},
			expected: "failed to create virtual environment: venv",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "install dependencies",
				Cause:     errors.New("exit status 1"),
			},
			expected: "failed to install dependencies: exit status 1",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "install dependencies",
				Resource:  "requirements.txt",
				Cause:     errors.New("exit status 1"),
			},
			expected: "failed to install dependencies: requirements.txt: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	inner := errors.New("exit status 2")
	err := &ActionableError{
		Operation:   "create virtual environment",
		Resource:    "venv",
		Suggestions: []string{"Install python3-venv", "Remove the partial directory"},
		Cause:       WrapWithContext(inner, "run python3", "venv/bin/python"),
	}

	short := err.Format(false)
	if !strings.Contains(short, "  • Install python3-venv") {
		t.Errorf("Format(false) missing suggestion bullet:\n%s", short)
	}
	if strings.Contains(short, "Error chain:") {
		t.Error("Format(false) should not include the error chain")
	}

	long := err.Format(true)
	if !strings.Contains(long, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", long)
	}
	if !strings.Contains(long, "2. exit status 2") {
		t.Errorf("Format(true) should list nested causes:\n%s", long)
	}
}

func TestActionableError_Issue(t *testing.T) {
	err := &ActionableError{Operation: "x", IssueId: ManifestNotFoundId}
	if is := err.Issue(); is == nil || is.Id() != ManifestNotFoundId {
		t.Errorf("Issue() = %v, want catalogue entry %d", is, ManifestNotFoundId)
	}

	if (&ActionableError{Operation: "x"}).Issue() != nil {
		t.Error("Issue() should be nil when no IssueId is set")
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("write credentials template").
		WithResource(".env").
		WithIssue(CredentialsWriteFailedId).
		WithSuggestion("check permissions").
		WithSuggestions("a", "b").
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "write credentials template" || ae.Resource != ".env" {
		t.Errorf("unexpected operation/resource: %+v", ae)
	}
	if len(ae.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3 entries", ae.Suggestions)
	}
	if ae.IssueId != CredentialsWriteFailedId {
		t.Errorf("IssueId = %d, want %d", ae.IssueId, CredentialsWriteFailedId)
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestWrapWithContext(t *testing.T) {
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
	if got := WrapWithContext(errors.New("e"), "op", "res"); got.Resource != "res" {
		t.Errorf("WrapWithContext resource = %q", got.Resource)
	}
}

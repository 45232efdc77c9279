// SPDX-License-Identifier: MPL-2.0

package doctor

import "github.com/pyprov/pyprov/pkg/types"

// Names of the fixed checks. Credential checks are named after their key.
const (
	CheckInterpreter = "interpreter"
	CheckEnvironment = "environment"
	CheckManifest    = "manifest"
	CheckCredentials = "credentials"
	CheckCache       = "cache"
)

const (
	SeverityOK   Severity = "ok"
	SeverityWarn Severity = "warn"
	SeverityFail Severity = "fail"
)

type (
	// Severity grades a single check.
	Severity string

	// Check is the result of one diagnostic.
	Check struct {
		Name     string
		Severity Severity
		Message  string
		// Hint suggests a fix; empty for passing checks.
		Hint string
	}

	// Report collects the checks of one doctor run in execution order.
	Report struct {
		Checks []Check
	}
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityOK, SeverityWarn, SeverityFail:
		return true
	}
	return false
}

// Failed reports whether any check failed. Warnings do not count.
func (r *Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Severity == SeverityFail {
			return true
		}
	}
	return false
}

// ExitCode is 0 when no check failed and 1 otherwise.
func (r *Report) ExitCode() types.ExitCode {
	if r.Failed() {
		return types.ExitFailure
	}
	return types.ExitSuccess
}

// Check returns the first check called name.
func (r *Report) Check(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Count returns how many checks have severity s.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, c := range r.Checks {
		if c.Severity == s {
			n++
		}
	}
	return n
}

func (r *Report) add(c Check) {
	r.Checks = append(r.Checks, c)
}

// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrUnparseableVersion is returned when interpreter output carries no version number.
var ErrUnparseableVersion = errors.New("unparseable interpreter version")

// pythonVersionRe matches "Python 3.11.2", "Python 3.7" and pre-releases like "Python 3.13.0rc1".
var pythonVersionRe = regexp.MustCompile(`(?i)python\s+(\d+)\.(\d+)(?:\.(\d+))?((?:a|b|rc)\d+)?`)

// Version is an interpreter version. Raw keeps the text as reported.
type Version struct {
	Raw string
	v   *semver.Version
}

// ParseVersion extracts the version from `python --version` output.
func ParseVersion(output string) (Version, error) {
	m := pythonVersionRe.FindStringSubmatch(output)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrUnparseableVersion, strings.TrimSpace(output))
	}

	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	normalized := m[1] + "." + m[2] + "." + patch
	if m[4] != "" {
		normalized += "-" + m[4]
	}

	v, err := semver.NewVersion(normalized)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %v", ErrUnparseableVersion, err)
	}

	raw := m[1] + "." + m[2]
	if m[3] != "" {
		raw += "." + m[3]
	}
	return Version{Raw: raw + m[4], v: v}, nil
}

// MustParseMinimum parses a bare "X.Y[.Z]" minimum version. It panics on bad input
// and is meant for compile-time constants.
func MustParseMinimum(s string) Version {
	v, err := ParseMinimum(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseMinimum parses a bare "X.Y[.Z]" version as written in configuration.
func ParseMinimum(s string) (Version, error) {
	return ParseVersion("Python " + strings.TrimSpace(s))
}

// AtLeast reports whether v is greater than or equal to minimum.
// Ordering is numeric per component, so 3.10 sorts after 3.7.
func (v Version) AtLeast(minimum Version) bool {
	if v.v == nil || minimum.v == nil {
		return false
	}
	return !v.v.LessThan(minimum.v)
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool { return v.v == nil }

// String returns the version as reported by the interpreter.
func (v Version) String() string { return v.Raw }

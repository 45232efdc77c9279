// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// FormatCommand renders a command line that can be pasted into a POSIX shell.
func FormatCommand(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, s := range append([]string{name}, args...) {
		parts = append(parts, quoteWord(s))
	}
	return strings.Join(parts, " ")
}

func quoteWord(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// Only non-printable bytes fail to quote for POSIX; fall back to bash $'..'.
		if q, err = syntax.Quote(s, syntax.LangBash); err != nil {
			return s
		}
	}
	return q
}

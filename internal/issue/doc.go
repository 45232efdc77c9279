// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the artifact involved and
// remediation hints. The issue catalogue holds Markdown guidance for the
// failure modes of a provisioning run (unsupported interpreter, environment
// creation, dependency installation, configuration) and renders it with glamour.
package issue

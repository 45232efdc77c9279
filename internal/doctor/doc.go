// SPDX-License-Identifier: MPL-2.0

// Package doctor runs read-only readiness checks against a provisioned working
// directory: interpreter version, environment, manifest, API keys and the
// optional Redis response cache used by the query tool.
package doctor

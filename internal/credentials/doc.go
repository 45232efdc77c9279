// SPDX-License-Identifier: MPL-2.0

// Package credentials scaffolds and inspects the dotenv file that holds the API
// keys of the downstream query tool.
//
// The file is write-once: Scaffold never overwrites or merges an existing file,
// and any existing file counts as configured regardless of its content.
package credentials

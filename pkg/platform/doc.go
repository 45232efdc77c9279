// SPDX-License-Identifier: MPL-2.0

// Package platform holds the operating-system facts the provisioner depends on:
// where a virtual environment keeps its executables and which file names
// Windows refuses to create.
package platform

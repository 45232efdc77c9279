// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// Windows is the runtime.GOOS value for Windows.
const Windows = "windows"

// VenvBinDir returns the name of the directory holding a virtual environment's
// executables on goos: "Scripts" on Windows, "bin" elsewhere.
func VenvBinDir(goos string) string {
	if goos == Windows {
		return "Scripts"
	}
	return "bin"
}

// ExecutableName appends ".exe" to name on Windows.
func ExecutableName(goos, name string) string {
	if goos == Windows {
		return name + ".exe"
	}
	return name
}

// IsWindows reports whether the current process runs on Windows.
func IsWindows() bool { return runtime.GOOS == Windows }

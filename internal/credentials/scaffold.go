// SPDX-License-Identifier: MPL-2.0

package credentials

import (
	"errors"
	"fmt"
	"os"
)

// Outcome reports what Scaffold did.
type Outcome string

const (
	// Created means the template was written.
	Created Outcome = "created"
	// Preserved means a file already existed and was left untouched.
	Preserved Outcome = "preserved"
)

// Scaffold writes tmpl to path unless something already exists there.
// The file is opened with O_EXCL, so a file created concurrently is never clobbered.
func Scaffold(path string, tmpl Template) (Outcome, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return Preserved, nil
		}
		return "", fmt.Errorf("failed to create credentials file %s: %w", path, err)
	}

	if _, err := f.WriteString(tmpl.Render()); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write credentials file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write credentials file %s: %w", path, err)
	}
	return Created, nil
}

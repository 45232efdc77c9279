// SPDX-License-Identifier: MPL-2.0

package credentials

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Source tells where a key's value was found.
type Source string

const (
	SourceNone        Source = ""
	SourceFile        Source = "file"
	SourceEnvironment Source = "environment"
)

// KeyStatus is the inspection result for one key.
type KeyStatus struct {
	Name     string
	Required bool
	Present  bool
	// Masked is the value with its middle hidden; empty when not present.
	Masked string
	// Source is SourceFile for a key assigned in the file even when the
	// assignment is empty.
	Source Source
}

// LookupFunc resolves a key from the process environment.
type LookupFunc func(key string) (string, bool)

// Inspect reports which keys are set, consulting the process environment and
// the dotenv file at path. Values in the file override the environment, which
// is how the query tool itself loads them. A missing file is not an error.
func Inspect(path string, keys []Key) ([]KeyStatus, error) {
	return InspectWith(path, keys, os.LookupEnv)
}

// InspectWith is Inspect with an explicit environment lookup.
func InspectWith(path string, keys []Key, lookup LookupFunc) ([]KeyStatus, error) {
	fileValues, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
		}
		fileValues = map[string]string{}
	}

	statuses := make([]KeyStatus, 0, len(keys))
	for _, k := range keys {
		st := KeyStatus{Name: k.Name, Required: k.Required}
		if v, ok := fileValues[k.Name]; ok {
			// An empty assignment in the file still shadows the environment.
			st.Source = SourceFile
			if v != "" {
				st.Present, st.Masked = true, Mask(v)
			}
		} else if v, ok := lookup(k.Name); ok && v != "" {
			st.Present, st.Masked, st.Source = true, Mask(v), SourceEnvironment
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// Mask hides all but the first and last four characters of a secret.
// Values too short to hide anything are masked entirely.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "..." + value[len(value)-4:]
}

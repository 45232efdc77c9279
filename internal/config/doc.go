// SPDX-License-Identifier: MPL-2.0

// Package config handles pyprov configuration using Viper with CUE as the file format.
//
// Configuration is optional. When present it is read from, in order of precedence:
// the file given with --config, pyprov.cue in the working directory, or
// config.cue in the user config directory ($XDG_CONFIG_HOME/pyprov on Linux).
// Only the first file found is used. Environment variables prefixed with PYPROV_
// override file values (PYPROV_PYTHON_INTERPRETER for python.interpreter).
//
// Files are validated against an embedded CUE schema (config_schema.cue) before
// their values reach Viper.
package config

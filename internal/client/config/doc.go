// Package config resolves portal client settings from three sources, in
// order of increasing precedence: built-in defaults, an optional JSON file
// (-c/-config), and command-line flags.
package config

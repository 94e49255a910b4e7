//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version of the module embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, default config paths, and the prefix
	// of environment variables.
	Name = "kaleido"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Kaleidoscope language front end"
)

// EnvPrefix returns the prefix of environment variables read by the CLI.
func EnvPrefix() string { return strings.ToUpper(Name) + "_" }

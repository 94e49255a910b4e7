// Package cmd implements the kaleido subcommands: parse, tokens, prec, init,
// and repl.
//
// Commands receive their parser configuration through the context
// ([WithSettings]) and the kong context through [WithContext].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the YAML configuration file.
	ConfigIdentifier = "config"
)

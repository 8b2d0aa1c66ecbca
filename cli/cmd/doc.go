// Package cmd implements the nestkit subcommands: eval, fmt, init and repl.
//
// Every command builds its structure from the script sources stored in the
// command context by [WithSourceFiles], using the key form and base structure
// stored by [WithBuildConfig].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file. It is also the name of the block in that file
	// holding flag values.
	ConfigIdentifier = "config"
)

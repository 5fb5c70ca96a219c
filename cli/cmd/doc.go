// Package cmd implements the spawnc subcommands for generating, checking,
// formatting, and interpreting spawn constructs.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file, without extension.
	ConfigIdentifier = "config"
)

// Package cli contains the command line interface for spawnc.
//
// # Usage
//
// Each subcommand reads spawn constructs from a source file or stdin:
//
//	spawnc gen --package ui widgets.spawn
//	spawnc check widgets.spawn
//	spawnc fmt yaml widgets.spawn
//	spawnc apply widgets.spawn
//	spawnc repl
//
// The source parser caches parsed constructs by content hash, so identical
// content is parsed only once even when accessed from multiple goroutines.
// [lang.ClearCache] clears all cached constructs (useful for testing).
//
// # Configuration
//
// Flag defaults may be provided in a config file under the user config
// directory (typically ~/.config/spawnc/config.yaml or config.json).
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof ./...
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/spawnc/pprof)
package cli

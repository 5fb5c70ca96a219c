// Package log provides a concurrency-safe logging interface based on
// [log/slog], extended with a Trace level below Debug and a colorized
// terminal handler.
//
// Create loggers with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// The zero Logger discards all output, so library types can embed one
// unconditionally and log only when wired by the caller.
//
// A package-level default logger writes to standard error; [Config]
// reconfigures it in place, which the command line layer uses to apply
// logging flags as early as parsing allows.
package log

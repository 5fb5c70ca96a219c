// Package profile provides optional runtime profiling for spawnc.
//
// Profiling support is compiled in only when building with the pprof tag:
//
//	go build -tags pprof ./...
//
// Without the tag, every exported entry point remains callable and does
// nothing. With the tag, [Config.Start] hands off to [github.com/pkg/profile]
// using one of the modes reported by [Modes], and the standard net/http/pprof
// handlers are registered for any HTTP server the process may run.
//
// A profiler is configured through functional options and stopped via the
// value returned from Start:
//
//	var cfg profile.Config = func() (string, string, bool) { return "", "", false }
//	cfg = profile.WithMode("cpu")(cfg)
//	defer cfg.Start().Stop()
package profile

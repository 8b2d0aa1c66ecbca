// Package profile provides optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//	nestkit --pprof-mode=cpu --pprof-dir=/tmp/profiles fmt json -s in.nest
//
// Without the tag [Modes] is empty and [Profiler.Start] does nothing. The
// tagged build also registers the [net/http/pprof] handlers.
//
// Profiles are written to the configured directory as <mode>.pprof and can be
// inspected with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

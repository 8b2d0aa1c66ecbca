// Package cli contains the command line interface for nestkit.
//
// # Usage
//
//	nestkit [flags] [path...]          # eval (default)
//	nestkit [flags] fmt native|json|yaml
//	nestkit [flags] repl
//	nestkit [flags] init [--force]
//
// Source files are given with --source (or -s), repeated, with "-" for
// standard input. With no sources, standard input is read. A YAML file given
// with --base seeds the structure before the sources are evaluated, and
// --no-symbolize writes and looks up keys as text instead of symbols.
//
// # Configuration
//
// Flag defaults are read from two files in the user configuration directory:
// config.json (kong's JSON loader) and config, a script file whose config
// block holds one entry per flag:
//
//	config: {
//	  log-level: "debug"
//	  symbolize: false
//	}
//
// The init command writes the second file from the current flag values.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn, error
//   - --log-format: json, text
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, ...)
//   - --[no-]log-caller, --[no-]log-pretty
//
// # Profiling Options
//
// Available only when built with the pprof tag:
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread, trace
//   - --pprof-dir: output directory (default <cache dir>/pprof)
package cli

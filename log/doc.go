// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is configured with functional options when it is made:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("structure built", slog.Int("keys", 3))
//
// [Logger.Wrap] derives a logger with some options overridden and
// [Logger.With] derives one that adds attributes to every record.
//
// The zero Logger discards everything, so types may embed one without
// checking whether logging was configured.
//
// # Levels
//
// In addition to the four [log/slog] levels, [LevelTrace] sits below
// [LevelDebug] for high-volume diagnostics such as per-key builder events.
//
// # Package-level Logger
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default logger that writes to [os.Stderr]. [Config] reconfigures it.
//
// # Output
//
// [FormatJSON] (default) and [FormatText] are supported. With [WithPretty]
// enabled, text output is colorized and unquoted for terminals.
package log

// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is a small value: the zero value discards everything, and
// every derived logger ([Logger.Wrap], [Logger.With]) is independent of the
// logger it came from. Configuration is applied at creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parsed item", slog.String("kind", "definition"))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// # Package Logger
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default logger that targets [os.Stderr]. It is reconfigured with [Config],
// which is safe to call from any goroutine.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's debug level and is
// used for per-token parser diagnostics.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled both
// formats are colorized for terminals.
package log

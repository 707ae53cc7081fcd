// Package logger constructs log/slog loggers with a small set of
// functional options covering level, output format and destination.
//
// Every component in this module accepts an optional *slog.Logger and
// falls back to slog.Default(); this package exists so callers can
// build one consistently:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel(slog.LevelDebug),
//	)
package logger

// Package observability provides structured logging and metrics for the
// X-ray pipeline stages.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import "log/slog"

// EnrichLogger adds pipeline context to a logger.
// Returns a new logger with a stage field.
func EnrichLogger(logger *slog.Logger, stage string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("stage", stage))
}

// LogCycleComplete logs the completion of one notification cycle of a stage.
func LogCycleComplete(logger *slog.Logger, stage string, consumed, produced int) {
	if logger == nil {
		return
	}
	logger.Debug("cycle completed",
		slog.String("stage", stage),
		slog.Int("events_consumed", consumed),
		slog.Int("events_produced", produced),
	)
}

// LogEventError logs a per-event physics failure. The event is skipped, not
// the cycle.
func LogEventError(logger *slog.Logger, stage string, index int, err error) {
	if logger == nil {
		return
	}
	logger.Warn("event skipped",
		slog.String("stage", stage),
		slog.Int("event_index", index),
		slog.String("error", err.Error()),
	)
}

// LogMarchAborted logs a ray march terminated by the maximum-travel bound.
func LogMarchAborted(logger *slog.Logger, stage string, traveled float64) {
	if logger == nil {
		return
	}
	logger.Debug("march aborted at travel bound",
		slog.String("stage", stage),
		slog.Float64("traveled_m", traveled),
	)
}

// LogShellOverflow logs a shell-selection call whose summed acceptance
// probability exceeded one, which indicates a quirk in the tabulated
// ionization fractions.
func LogShellOverflow(logger *slog.Logger, stage string, z int, probSum float64) {
	if logger == nil {
		return
	}
	logger.Warn("shell selection probabilities exceed one",
		slog.String("stage", stage),
		slog.Int("z", z),
		slog.Float64("prob_sum", probSum),
	)
}

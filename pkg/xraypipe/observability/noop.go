package observability

import "context"

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordCycle does nothing.
func (NoopMetrics) RecordCycle(_ context.Context, _ string, _, _ int) {}

// RecordMarchSteps does nothing.
func (NoopMetrics) RecordMarchSteps(_ context.Context, _ string, _ int) {}

// RecordEventError does nothing.
func (NoopMetrics) RecordEventError(_ context.Context, _ string) {}

package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records pipeline metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCycle records one notification cycle of a stage: how many
	// upstream events it consumed and how many it emitted.
	RecordCycle(ctx context.Context, stage string, consumed, produced int)

	// RecordMarchSteps records the number of ray-march steps one photon took.
	RecordMarchSteps(ctx context.Context, stage string, steps int)

	// RecordEventError records a per-event physics failure.
	RecordEventError(ctx context.Context, stage string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	eventsConsumed metric.Int64Counter
	eventsProduced metric.Int64Counter
	marchSteps     metric.Int64Histogram
	eventErrors    metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("xraypipe")

	eventsConsumed, err := meter.Int64Counter("xraypipe.stage.events_consumed",
		metric.WithDescription("Number of upstream events consumed per stage"),
	)
	if err != nil {
		return nil, err
	}

	eventsProduced, err := meter.Int64Counter("xraypipe.stage.events_produced",
		metric.WithDescription("Number of events emitted per stage"),
	)
	if err != nil {
		return nil, err
	}

	marchSteps, err := meter.Int64Histogram("xraypipe.stage.march_steps",
		metric.WithDescription("Ray-march steps taken per sampled photon"),
	)
	if err != nil {
		return nil, err
	}

	eventErrors, err := meter.Int64Counter("xraypipe.stage.event_errors",
		metric.WithDescription("Per-event physics lookup failures"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		eventsConsumed: eventsConsumed,
		eventsProduced: eventsProduced,
		marchSteps:     marchSteps,
		eventErrors:    eventErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

func stageAttr(stage string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("stage", stage))
}

// RecordCycle records one notification cycle of a stage.
func (m *otelMetrics) RecordCycle(ctx context.Context, stage string, consumed, produced int) {
	attrs := stageAttr(stage)
	m.eventsConsumed.Add(ctx, int64(consumed), attrs)
	m.eventsProduced.Add(ctx, int64(produced), attrs)
}

// RecordMarchSteps records the number of ray-march steps one photon took.
func (m *otelMetrics) RecordMarchSteps(ctx context.Context, stage string, steps int) {
	m.marchSteps.Record(ctx, int64(steps), stageAttr(stage))
}

// RecordEventError records a per-event physics failure.
func (m *otelMetrics) RecordEventError(ctx context.Context, stage string) {
	m.eventErrors.Add(ctx, 1, stageAttr(stage))
}

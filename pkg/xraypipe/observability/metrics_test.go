package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordCycle(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("records consumed and produced counts", func(t *testing.T) {
		m.RecordCycle(ctx, "fluorescence", 3, 7)

		rm := collectMetrics(t, reader)

		for _, name := range []string{"xraypipe.stage.events_consumed", "xraypipe.stage.events_produced"} {
			metric := findMetric(rm, name)
			require.NotNil(t, metric, name)

			sum, ok := metric.Data.(metricdata.Sum[int64])
			require.True(t, ok, "Expected Sum type for %s", name)
			require.NotEmpty(t, sum.DataPoints)
		}
	})

	t.Run("tags datapoints with the stage", func(t *testing.T) {
		m.RecordCycle(ctx, "transport", 1, 1)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "xraypipe.stage.events_consumed")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok)

		found := false
		for _, dp := range sum.DataPoints {
			for _, attr := range dp.Attributes.ToSlice() {
				if attr.Key == "stage" && attr.Value.AsString() == "transport" {
					found = true
					assert.GreaterOrEqual(t, dp.Value, int64(1))
				}
			}
		}
		assert.True(t, found, "Expected to find datapoint for stage=transport")
	})
}

func TestRecordMarchSteps(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordMarchSteps(context.Background(), "compton", 12)

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "xraypipe.stage.march_steps")
	require.NotNil(t, metric)

	hist, ok := metric.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "Expected Histogram[int64] type")
	require.NotEmpty(t, hist.DataPoints)

	found := false
	for _, dp := range hist.DataPoints {
		for _, attr := range dp.Attributes.ToSlice() {
			if attr.Key == "stage" && attr.Value.AsString() == "compton" {
				found = true
				assert.Greater(t, dp.Count, uint64(0))
			}
		}
	}
	assert.True(t, found, "Expected to find datapoint for stage=compton")
}

func TestRecordEventError(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordEventError(context.Background(), "fluorescence")
	m.RecordEventError(context.Background(), "fluorescence")

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "xraypipe.stage.event_errors")
	require.NotNil(t, metric)

	sum, ok := metric.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")

	found := false
	for _, dp := range sum.DataPoints {
		for _, attr := range dp.Attributes.ToSlice() {
			if attr.Key == "stage" && attr.Value.AsString() == "fluorescence" {
				found = true
				assert.Equal(t, int64(2), dp.Value)
			}
		}
	}
	assert.True(t, found, "Expected to find error datapoint")
}

func TestOtelMetrics_AllMethods(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	ctx := context.Background()

	m.RecordCycle(ctx, "fluorescence", 2, 10)
	m.RecordMarchSteps(ctx, "fluorescence", 3)
	m.RecordEventError(ctx, "transport")

	rm := collectMetrics(t, reader)

	assert.NotNil(t, findMetric(rm, "xraypipe.stage.events_consumed"))
	assert.NotNil(t, findMetric(rm, "xraypipe.stage.events_produced"))
	assert.NotNil(t, findMetric(rm, "xraypipe.stage.march_steps"))
	assert.NotNil(t, findMetric(rm, "xraypipe.stage.event_errors"))
}

func TestNewOtelMetrics_Creation(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotNil(t, m.eventsConsumed)
	assert.NotNil(t, m.eventsProduced)
	assert.NotNil(t, m.marchSteps)
	assert.NotNil(t, m.eventErrors)
}

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}

	ctx := context.Background()
	m.RecordCycle(ctx, "any", 1, 2)
	m.RecordMarchSteps(ctx, "any", 5)
	m.RecordEventError(ctx, "any")
}

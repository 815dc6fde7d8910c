package infrastructure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"dwellcli/internal/config"
)

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{Enabled: false}, nil)
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RowsRead.Add(context.Background(), 3)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_WritesTraceAndMetricsFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.TelemetryConfig{
		Enabled:     true,
		Environment: "test",
		TraceFile:   filepath.Join(dir, "traces", "trace.json"),
		MetricsFile: filepath.Join(dir, "metrics", "dwellings.prom"),
		SampleRatio: 1.0,
	}

	providers, err := InitializeOTel(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)
	require.NotNil(t, providers.Registry)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx, span := providers.Tracer.Start(context.Background(), "load")
	metrics.RowsRead.Add(ctx, 7)
	metrics.RowsRejected.Add(ctx, 2, metric.WithAttributes(attribute.String("reason", "period_pattern")))
	metrics.StageDuration.Record(ctx, 0.01, metric.WithAttributes(attribute.String("stage", "load")))
	RecordError(span, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))

	traces, err := os.ReadFile(cfg.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(traces), `"Name":"load"`)

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	text := string(prom)
	assert.True(t, strings.Contains(text, "dwellings_rows_read_total"), text)
	assert.Contains(t, text, `reason="period_pattern"`)
}

func TestRecordError_NilIsNoop(t *testing.T) {
	_, span := NoopProviders().Tracer.Start(context.Background(), "noop")
	RecordError(span, nil)
	span.End()
}

package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"dwellcli/internal/config"
)

const (
	ServiceName = "dwellings"
	MeterName   = "dwellcli"
)

// OTelProviders holds the OpenTelemetry providers for one run.
// Tracer and Meter are always usable; they are no-ops when telemetry is off.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prom.Registry
	Logger         *slog.Logger

	traceFile   *os.File
	metricsFile string
}

// NoopProviders returns providers that record nothing
func NoopProviders() *OTelProviders {
	return &OTelProviders{
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
		Logger: slog.Default(),
	}
}

// InitializeOTel sets up tracing to cfg.TraceFile and metrics into a private
// Prometheus registry that Shutdown writes to cfg.MetricsFile.
func InitializeOTel(cfg config.TelemetryConfig, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Enabled {
		providers := NoopProviders()
		providers.Logger = logger
		return providers, nil
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("trace_file", cfg.TraceFile),
		slog.String("metrics_file", cfg.MetricsFile))

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", GenerateTraceID()),
	)

	providers := NoopProviders()
	providers.Logger = logger
	providers.metricsFile = cfg.MetricsFile

	if cfg.TraceFile != "" {
		if err := initializeTracing(cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if err := initializeMetrics(res, providers); err != nil {
		providers.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return providers, nil
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.traceFile = file
	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// initializeMetrics sets up OpenTelemetry metrics backed by a Prometheus registry
func initializeMetrics(res *resource.Resource, providers *OTelProviders) error {
	registry := prom.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// Shutdown flushes spans, writes the metrics textfile and releases resources
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if p.TracerProvider != nil {
		keep(p.TracerProvider.Shutdown(ctx))
	}
	if p.traceFile != nil {
		keep(p.traceFile.Close())
		p.traceFile = nil
	}

	if p.Registry != nil && p.metricsFile != "" {
		if err := os.MkdirAll(filepath.Dir(p.metricsFile), 0755); err != nil {
			keep(err)
		} else {
			keep(prom.WriteToTextfile(p.metricsFile, p.Registry))
		}
	}
	if p.MeterProvider != nil {
		keep(p.MeterProvider.Shutdown(ctx))
	}

	if firstErr != nil {
		p.Logger.ErrorContext(ctx, "Telemetry shutdown failed", slog.String("error", firstErr.Error()))
	}
	return firstErr
}

// PipelineMetrics holds the instruments recorded by the load/derive pipeline
type PipelineMetrics struct {
	RowsRead           metric.Int64Counter
	RowsRejected       metric.Int64Counter
	ObservationsLoaded metric.Int64Counter
	StageDuration      metric.Float64Histogram
	ArtifactsWritten   metric.Int64Counter
}

// CreatePipelineMetrics creates application-specific metrics
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"dwellings_rows_read_total",
		metric.WithDescription("Raw rows read from the input table"),
	)
	if err != nil {
		return nil, err
	}

	rowsRejected, err := meter.Int64Counter(
		"dwellings_rows_rejected_total",
		metric.WithDescription("Raw rows excluded by filtering or coercion"),
	)
	if err != nil {
		return nil, err
	}

	observations, err := meter.Int64Counter(
		"dwellings_observations_loaded_total",
		metric.WithDescription("Observations that survived cleaning"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"dwellings_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	artifacts, err := meter.Int64Counter(
		"dwellings_artifacts_written_total",
		metric.WithDescription("Charts and exports written to disk"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsRead:           rowsRead,
		RowsRejected:       rowsRejected,
		ObservationsLoaded: observations,
		StageDuration:      stageDuration,
		ArtifactsWritten:   artifacts,
	}, nil
}

// RecordError marks the span as failed
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"dwellcli/internal/config"
	"dwellcli/internal/infrastructure"
	"dwellcli/pkg/contracts/domain"
)

// Result carries every stage output of one pipeline run
type Result struct {
	Series      domain.Series
	Derived     domain.DerivedSeries
	Summary     domain.Summary
	Diagnostics Diagnostics
}

// Pipeline runs load -> derive -> summarize for the configured input.
type Pipeline struct {
	inputPath string
	loader    *Loader
	tracer    trace.Tracer
	metrics   *infrastructure.PipelineMetrics
	logger    *slog.Logger
}

// NewPipeline wires a pipeline from configuration. providers may be nil,
// in which case nothing is traced or measured.
func NewPipeline(cfg *config.Config, providers *infrastructure.OTelProviders, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if providers == nil {
		providers = infrastructure.NoopProviders()
	}

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		inputPath: cfg.Input.Path,
		loader:    NewLoader(LoaderConfigFromInput(cfg.Input), logger),
		tracer:    providers.Tracer,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "pipeline")),
	}, nil
}

// Run processes the configured input file.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	return p.RunFile(ctx, p.inputPath)
}

// RunFile processes path instead of the configured input.
func (p *Pipeline) RunFile(ctx context.Context, path string) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("input.path", path)))
	defer span.End()

	start := time.Now()
	loaded, err := p.load(ctx, path)
	if err != nil {
		infrastructure.RecordError(span, err)
		return nil, err
	}
	p.observeStage(ctx, "load", start)

	start = time.Now()
	_, deriveSpan := p.tracer.Start(ctx, "pipeline.derive")
	derived := Derive(loaded.Series)
	deriveSpan.End()
	p.observeStage(ctx, "derive", start)

	start = time.Now()
	_, summarySpan := p.tracer.Start(ctx, "pipeline.summarize")
	summary, err := Summarize(derived)
	if err != nil {
		infrastructure.RecordError(summarySpan, err)
		summarySpan.End()
		infrastructure.RecordError(span, err)
		return nil, err
	}
	summarySpan.End()
	p.observeStage(ctx, "summarize", start)

	p.logger.DebugContext(ctx, "Pipeline complete",
		slog.Int("observations", summary.Observations),
		slog.String("latest_period", summary.LatestPeriod))

	return &Result{
		Series:      loaded.Series,
		Derived:     derived,
		Summary:     summary,
		Diagnostics: loaded.Diagnostics,
	}, nil
}

func (p *Pipeline) load(ctx context.Context, path string) (*LoadResult, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.load")
	defer span.End()

	loaded, err := p.loader.LoadFile(ctx, path)
	if err != nil {
		infrastructure.RecordError(span, err)
		return nil, err
	}

	diag := loaded.Diagnostics
	p.metrics.RowsRead.Add(ctx, int64(diag.RowsRead))
	p.metrics.ObservationsLoaded.Add(ctx, int64(diag.Observations))
	for reason, n := range diag.ByReason {
		p.metrics.RowsRejected.Add(ctx, int64(n), metric.WithAttributes(attribute.String("reason", string(reason))))
	}

	span.SetAttributes(
		attribute.Int("rows.read", diag.RowsRead),
		attribute.Int("rows.rejected", diag.RejectedCount()),
		attribute.Int("observations", diag.Observations),
	)
	return loaded, nil
}

func (p *Pipeline) observeStage(ctx context.Context, stage string, start time.Time) {
	p.metrics.StageDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordArtifact counts a chart or export written by a downstream consumer.
func (p *Pipeline) RecordArtifact(ctx context.Context, kind string) {
	p.metrics.ArtifactsWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

package cli

import (
	"context"
	"io"
	"log/slog"

	"dwellcli/internal/charts"
	"dwellcli/internal/config"
	"dwellcli/internal/dataprocessing"
	"dwellcli/internal/errors"
	"dwellcli/internal/exporter"
	"dwellcli/internal/infrastructure"
)

// options are the persistent flags shared by every command
type options struct {
	configFile string
	input      string
	sheet      string
	strict     bool
	logLevel   string
}

// app holds the state of one CLI invocation. The series is loaded at most
// once and shared by every action, so the menu can run several of them.
type app struct {
	opts options

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg       *config.Config
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	pipeline  *dataprocessing.Pipeline
	result    *dataprocessing.Result
}

// setup loads configuration, applies flag overrides and starts logging and
// telemetry
func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.opts.configFile)
	if err != nil {
		return err
	}

	if a.opts.input != "" {
		cfg.Input.Path = a.opts.input
	}
	if a.opts.sheet != "" {
		cfg.Input.Sheet = a.opts.sheet
	}
	if a.opts.strict {
		cfg.Input.Strict = true
	}
	if a.opts.logLevel != "" {
		cfg.Logging.Level = a.opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return errors.NewConfigError("invalid configuration", err)
	}
	return a.start(ctx, cfg)
}

func (a *app) start(ctx context.Context, cfg *config.Config) error {
	a.cfg = cfg

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return errors.NewConfigError("failed to initialize logger", err)
	}
	a.logger = logger
	cfg.Paths().LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		logger.WarnContext(ctx, "Telemetry disabled", slog.String("error", err.Error()))
		providers = infrastructure.NoopProviders()
	}
	a.providers = providers

	pipeline, err := dataprocessing.NewPipeline(cfg, providers, logger)
	if err != nil {
		return err
	}
	a.pipeline = pipeline
	return nil
}

// close flushes telemetry and the log file. Safe to call when setup failed.
func (a *app) close(ctx context.Context) {
	if a.providers != nil {
		a.providers.Shutdown(ctx)
		a.providers = nil
	}
	infrastructure.CloseLogFile()
}

// load runs the pipeline on first use
func (a *app) load(ctx context.Context) (*dataprocessing.Result, error) {
	if a.result != nil {
		return a.result, nil
	}
	result, err := a.pipeline.Run(ctx)
	if err != nil {
		return nil, err
	}
	a.result = result
	if a.cfg.Input.Strict {
		writeDiagnostics(a.out, result.Diagnostics)
	}
	return result, nil
}

func (a *app) summary(ctx context.Context, asJSON bool) error {
	result, err := a.load(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return writeSummaryJSON(a.out, result.Summary)
	}
	writeSummary(a.out, result.Summary)
	return nil
}

func (a *app) peaks(ctx context.Context) error {
	result, err := a.load(ctx)
	if err != nil {
		return err
	}
	writePeaks(a.out, result.Summary)
	return nil
}

// charts renders into outDir, or the configured output directory when empty
func (a *app) charts(ctx context.Context, outDir string) ([]string, error) {
	result, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	paths := a.cfg.Paths()
	if outDir != "" {
		paths.OutputDir = outDir
	}

	renderer := charts.NewRenderer(charts.OptionsFromConfig(a.cfg.Charts, paths), a.logger)
	written, err := renderer.RenderAll(ctx, result.Derived)
	if err != nil {
		return nil, err
	}
	for _, path := range written {
		a.pipeline.RecordArtifact(ctx, "chart")
		writeLine(a.out, "Saved chart: %s", path)
	}
	return written, nil
}

// export writes the derived dataset to file, or the configured export file
func (a *app) export(ctx context.Context, file string) (string, error) {
	result, err := a.load(ctx)
	if err != nil {
		return "", err
	}
	if file == "" {
		file = a.cfg.Output.ExportFile
	}

	paths := a.cfg.Paths()
	if err := paths.EnsureDirectories(); err != nil {
		return "", errors.NewStorageError("failed to prepare output directory", err)
	}

	exp := exporter.NewDatasetExporter(paths, exporter.DatasetOptionsFromOutput(a.cfg.Output), a.logger)
	written, err := exp.Export(ctx, result.Derived, file)
	if err != nil {
		return "", err
	}
	a.pipeline.RecordArtifact(ctx, "export")
	writeLine(a.out, "Exported dataset: %s", written)
	return written, nil
}

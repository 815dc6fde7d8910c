package charts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"dwellcli/internal/config"
	"dwellcli/internal/errors"
	"dwellcli/pkg/contracts/domain"
)

// DPI of the written images
const DPI = 150

// Options holds output paths and page sizes. An empty path disables a chart.
type Options struct {
	TrendVsSAPath   string
	SAQoQPath       string
	SAMovingAvgPath string

	Width     vg.Length
	Height    vg.Length
	BarHeight vg.Length
}

// OptionsFromConfig resolves chart paths under paths.OutputDir
func OptionsFromConfig(cfg config.ChartsConfig, paths *config.Paths) Options {
	return Options{
		TrendVsSAPath:   paths.GetOutputPath(cfg.TrendVsSA),
		SAQoQPath:       paths.GetOutputPath(cfg.SAQoQ),
		SAMovingAvgPath: paths.GetOutputPath(cfg.SAMovingAvg),
		Width:           vg.Length(cfg.Width) * vg.Inch,
		Height:          vg.Length(cfg.Height) * vg.Inch,
		BarHeight:       vg.Length(cfg.BarHeight) * vg.Inch,
	}
}

// Renderer writes the three dwellings charts as PNG images
type Renderer struct {
	opts   Options
	logger *slog.Logger
}

// NewRenderer creates a chart renderer
func NewRenderer(opts Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Width <= 0 {
		opts.Width = 12 * vg.Inch
	}
	if opts.Height <= 0 {
		opts.Height = 6 * vg.Inch
	}
	if opts.BarHeight <= 0 {
		opts.BarHeight = 5 * vg.Inch
	}
	return &Renderer{opts: opts, logger: logger}
}

type chartJob struct {
	name   string
	path   string
	height vg.Length
	build  func(domain.DerivedSeries) (*plot.Plot, error)
}

func (r *Renderer) jobs() []chartJob {
	all := []chartJob{
		{"trend_vs_sa", r.opts.TrendVsSAPath, r.opts.Height, TrendVsSAPlot},
		{"sa_qoq", r.opts.SAQoQPath, r.opts.BarHeight, SAQoQPlot},
		{"sa_moving_avg", r.opts.SAMovingAvgPath, r.opts.Height, SAMovingAvgPlot},
	}
	enabled := all[:0]
	for _, j := range all {
		if j.path != "" {
			enabled = append(enabled, j)
		}
	}
	return enabled
}

// RenderAll draws every enabled chart concurrently and returns the written
// paths in chart order. Each chart only reads derived.
func (r *Renderer) RenderAll(ctx context.Context, derived domain.DerivedSeries) ([]string, error) {
	if len(derived) == 0 {
		return nil, errors.NewRenderError("cannot chart an empty series", errors.ErrEmptySeries)
	}

	jobs := r.jobs()
	written := make([]string, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.render(job, derived); err != nil {
				return errors.NewRenderError(fmt.Sprintf("failed to render %s chart", job.name), err).
					WithContext("path", job.path)
			}
			written[i] = job.path
			r.logger.InfoContext(ctx, "Chart written",
				slog.String("chart", job.name),
				slog.String("path", job.path))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.ErrorContext(ctx, "Chart rendering failed", slog.String("error", err.Error()))
		return nil, err
	}
	return written, nil
}

func (r *Renderer) render(job chartJob, derived domain.DerivedSeries) error {
	p, err := job.build(derived)
	if err != nil {
		return err
	}
	return savePNG(p, r.opts.Width, job.height, job.path)
}

// savePNG draws p at DPI and writes it to path
func savePNG(p *plot.Plot, width, height vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(DPI))
	p.Draw(draw.New(canvas))

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"dwellcli/internal/config"
	"dwellcli/internal/errors"
	"dwellcli/internal/validation"
	"dwellcli/pkg/contracts/domain"
)

// LoaderConfig controls how a table is read and cleaned
type LoaderConfig struct {
	Delimiter          rune
	ThousandsSeparator rune
	SkipRows           int    // leading title rows dropped before filtering
	Sheet              string // worksheet for .xlsx input, empty for the first
	Strict             bool   // keep every rejected row in Diagnostics
}

// LoaderConfigFromInput maps the input section of the application config.
func LoaderConfigFromInput(cfg config.InputConfig) LoaderConfig {
	return LoaderConfig{
		Delimiter:          cfg.DelimiterRune(),
		ThousandsSeparator: cfg.SeparatorRune(),
		SkipRows:           cfg.SkipRows,
		Sheet:              cfg.Sheet,
		Strict:             cfg.Strict,
	}
}

// Diagnostics describes what happened to the raw rows of one load
type Diagnostics struct {
	RowsRead     int                  `json:"rows_read"`
	RowsSkipped  int                  `json:"rows_skipped"`
	Observations int                  `json:"observations"`
	ByReason     map[RejectReason]int `json:"by_reason"`

	// Rejected lists every excluded row; populated in strict mode only
	Rejected []RejectedRow `json:"rejected,omitempty"`
}

// RejectedCount is the number of rows excluded by filtering or coercion.
func (d Diagnostics) RejectedCount() int {
	total := 0
	for _, n := range d.ByReason {
		total += n
	}
	return total
}

// LoadResult is the cleaned series plus diagnostics about the raw input
type LoadResult struct {
	Series      domain.Series
	Diagnostics Diagnostics
}

// Loader orchestrates filter, coercion and ordering into a Series.
type Loader struct {
	cfg       LoaderConfig
	parser    *RowParser
	validator *validation.FileValidator
	logger    *slog.Logger
}

// NewLoader creates a loader
func NewLoader(cfg LoaderConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SkipRows < 0 {
		cfg.SkipRows = 0
	}
	return &Loader{
		cfg:       cfg,
		parser:    NewRowParser(cfg.ThousandsSeparator),
		validator: validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// LoadFile loads a .csv/.txt or .xlsx table from disk.
func (l *Loader) LoadFile(ctx context.Context, path string) (*LoadResult, error) {
	if err := l.validator.ValidateInputFile(path); err != nil {
		return nil, err
	}

	format, _ := validation.InputFormat(path)
	l.logger.InfoContext(ctx, "Loading dwellings series",
		slog.String("path", path),
		slog.String("format", format))

	var source RowSource
	if format == validation.FormatXLSX {
		source = NewXLSXFileSource(path, l.cfg.Sheet)
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.NewDataLoadError(fmt.Sprintf("failed to open %s", path), err)
		}
		defer file.Close()
		source = NewCSVSource(file, l.cfg.Delimiter)
	}

	result, err := l.load(ctx, source)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			appErr.WithContext("path", path)
		}
		return nil, err
	}
	return result, nil
}

// LoadReader loads delimited text from r.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader) (*LoadResult, error) {
	return l.load(ctx, NewCSVSource(r, l.cfg.Delimiter))
}

// LoadSource loads rows from any RowSource.
func (l *Loader) LoadSource(ctx context.Context, source RowSource) (*LoadResult, error) {
	return l.load(ctx, source)
}

func (l *Loader) load(ctx context.Context, source RowSource) (*LoadResult, error) {
	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, errors.NewDataLoadError("failed to read input", err)
	}
	return l.LoadRows(ctx, rows)
}

// LoadRows runs skip, filter, coercion and a stable sort by period over
// rows that have already been read. Zero surviving observations is a
// DataLoadError.
func (l *Loader) LoadRows(ctx context.Context, rows []domain.RawRow) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDataLoadError("load cancelled", err)
	}

	diag := Diagnostics{
		RowsRead: len(rows),
		ByReason: make(map[RejectReason]int),
	}

	skip := min(l.cfg.SkipRows, len(rows))
	diag.RowsSkipped = skip

	observations, rejected := l.parser.ParseRows(rows[skip:])
	for _, r := range rejected {
		diag.ByReason[r.Reason]++
		if l.cfg.Strict {
			l.logger.WarnContext(ctx, "Row rejected",
				slog.Int("line", r.Line),
				slog.String("reason", string(r.Reason)),
				slog.String("detail", r.Detail))
		}
	}
	if l.cfg.Strict {
		diag.Rejected = rejected
	}

	if len(observations) == 0 {
		l.logger.ErrorContext(ctx, "No valid observations in input",
			slog.Int("rows_read", diag.RowsRead),
			slog.Int("rows_rejected", diag.RejectedCount()))
		return nil, errors.NewDataLoadError("input yielded zero observations", errors.ErrNoObservations).
			WithContext("rows_read", diag.RowsRead)
	}

	series := domain.Series(observations)
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Period.Before(series[j].Period)
	})
	diag.Observations = len(series)

	l.logger.InfoContext(ctx, "Series loaded",
		slog.Int("rows_read", diag.RowsRead),
		slog.Int("observations", diag.Observations),
		slog.Int("rows_rejected", diag.RejectedCount()),
		slog.String("first_period", series[0].Label),
		slog.String("last_period", series[len(series)-1].Label))

	return &LoadResult{Series: series, Diagnostics: diag}, nil
}

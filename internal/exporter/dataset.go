package exporter

import (
	"context"
	"log/slog"

	"dwellcli/internal/config"
	"dwellcli/internal/validation"
	"dwellcli/pkg/contracts/domain"
)

// DatasetHeaders are the columns of an exported derived series. The first
// three match the source table so an export can be loaded again.
var DatasetHeaders = []string{
	"Period",
	"Trend",
	"Seasonally adjusted",
	"Date",
	"Year",
	"Quarter",
	"Trend_qoq_pct",
	"SA_qoq_pct",
	"Trend_yoy_pct",
	"SA_yoy_pct",
	"Trend_4q_ma",
	"SA_4q_ma",
}

const dateLayout = "2006-01-02"

// DatasetOptions controls the layout of an exported series
type DatasetOptions struct {
	Title     string
	BOMPrefix bool
	Precision int32
}

// DatasetOptionsFromOutput maps the output section of the application config
func DatasetOptionsFromOutput(cfg config.OutputConfig) DatasetOptions {
	return DatasetOptions{
		Title:     cfg.Title,
		BOMPrefix: cfg.BOMPrefix,
		Precision: cfg.Precision,
	}
}

// DatasetExporter writes a derived series as CSV or XLSX
type DatasetExporter struct {
	options   DatasetOptions
	csv       *CSVWriter
	xlsx      *XLSXWriter
	validator *validation.FileValidator
	logger    *slog.Logger
}

// NewDatasetExporter creates an exporter that resolves relative paths under
// paths.OutputDir
func NewDatasetExporter(paths *config.Paths, options DatasetOptions, logger *slog.Logger) *DatasetExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetExporter{
		options:   options,
		csv:       NewCSVWriter(paths, logger),
		xlsx:      NewXLSXWriter(paths, logger),
		validator: validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// Export writes derived to path, choosing the format from the extension,
// and returns the path written.
func (e *DatasetExporter) Export(ctx context.Context, derived domain.DerivedSeries, path string) (string, error) {
	full := e.csv.resolvePath(path)
	format, err := e.validator.ValidateExportFile(full)
	if err != nil {
		return "", err
	}

	var written string
	switch format {
	case validation.FormatXLSX:
		written, err = e.xlsx.WriteXLSX(path, SheetData{
			Name:     DefaultSheet,
			Preamble: e.xlsxPreamble(),
			Headers:  DatasetHeaders,
			Rows:     e.XLSXRows(derived),
		})
	default:
		written, err = e.csv.WriteCSV(path, WriteOptions{
			Preamble:  e.csvPreamble(),
			Headers:   DatasetHeaders,
			Records:   e.CSVRows(derived),
			BOMPrefix: e.options.BOMPrefix,
		})
	}
	if err != nil {
		return "", err
	}

	e.logger.InfoContext(ctx, "Exported derived series",
		slog.String("path", written),
		slog.String("format", format),
		slog.Int("rows", len(derived)))
	return written, nil
}

// The loader skips one leading row, so an export always has exactly one
// row before the header, even without a title.
func (e *DatasetExporter) csvPreamble() [][]string {
	return [][]string{{e.options.Title}}
}

func (e *DatasetExporter) xlsxPreamble() [][]interface{} {
	return [][]interface{}{{e.options.Title}}
}

// CSVRows renders every point as text. Undefined growth becomes an empty cell.
func (e *DatasetExporter) CSVRows(derived domain.DerivedSeries) [][]string {
	precision := e.options.Precision
	rows := make([][]string, len(derived))
	for i, p := range derived {
		rows[i] = []string{
			p.Label,
			formatInt(p.Trend),
			formatInt(p.SeasonallyAdjusted),
			p.Date().Format(dateLayout),
			formatInt(p.Period.Year),
			formatInt(p.Period.Quarter()),
			formatNullFloat(p.TrendQoQPct, precision),
			formatNullFloat(p.SAQoQPct, precision),
			formatNullFloat(p.TrendYoYPct, precision),
			formatNullFloat(p.SAYoYPct, precision),
			formatFloat(p.Trend4QMA, precision),
			formatFloat(p.SA4QMA, precision),
		}
	}
	return rows
}

// XLSXRows renders every point as typed cells. Undefined growth is nil.
func (e *DatasetExporter) XLSXRows(derived domain.DerivedSeries) [][]interface{} {
	precision := e.options.Precision
	rows := make([][]interface{}, len(derived))
	for i, p := range derived {
		rows[i] = []interface{}{
			p.Label,
			p.Trend,
			p.SeasonallyAdjusted,
			p.Date().Format(dateLayout),
			p.Period.Year,
			p.Period.Quarter(),
			nullableCell(p.TrendQoQPct, precision),
			nullableCell(p.SAQoQPct, precision),
			nullableCell(p.TrendYoYPct, precision),
			nullableCell(p.SAYoYPct, precision),
			roundFloat(p.Trend4QMA, precision),
			roundFloat(p.SA4QMA, precision),
		}
	}
	return rows
}

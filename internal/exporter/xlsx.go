package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"dwellcli/internal/config"
	"dwellcli/internal/errors"
)

// DefaultSheet is the worksheet written by XLSXWriter
const DefaultSheet = "Dwellings"

// XLSXWriter writes rows to a single-sheet workbook
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger}
}

// SheetData is the content of one worksheet. A nil cell is left blank.
type SheetData struct {
	Name     string
	Preamble [][]interface{}
	Headers  []string
	Rows     [][]interface{}
}

// WriteXLSX saves data to filePath and returns the resolved path
func (w *XLSXWriter) WriteXLSX(filePath string, data SheetData) (string, error) {
	fullPath := filePath
	if w.paths != nil {
		fullPath = w.paths.GetOutputPath(filePath)
	}
	sheet := data.Name
	if sheet == "" {
		sheet = DefaultSheet
	}

	w.logger.Info("Writing XLSX file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.String("sheet", sheet),
		slog.Int("record_count", len(data.Rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", errors.NewStorageError("failed to create directory for XLSX output", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return "", errors.NewStorageError("failed to name worksheet", err)
	}

	row := 1
	writeRow := func(values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(sheet, cell, &values)
	}

	for _, values := range data.Preamble {
		if err := writeRow(values); err != nil {
			return "", errors.NewStorageError("failed to write XLSX preamble", err)
		}
	}

	if len(data.Headers) > 0 {
		headers := make([]interface{}, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		headerRow := row
		if err := writeRow(headers); err != nil {
			return "", errors.NewStorageError("failed to write XLSX header row", err)
		}
		if err := w.styleHeader(f, sheet, headerRow, len(headers)); err != nil {
			w.logger.Warn("Failed to style XLSX header", slog.String("error", err.Error()))
		}
	}

	for i, values := range data.Rows {
		if err := writeRow(values); err != nil {
			return "", errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to save %s", fullPath), err)
	}
	return fullPath, nil
}

func (w *XLSXWriter) styleHeader(f *excelize.File, sheet string, row, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 14)
}

package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dwellcli/internal/config"
	"dwellcli/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. Relative paths are resolved
// under paths.OutputDir; paths may be nil to use them as given.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Preamble  [][]string // rows written before the header, e.g. a title
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options and returns the
// resolved path
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", errors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to create %s", fullPath), err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return "", errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)

	for _, row := range options.Preamble {
		if err := writer.Write(row); err != nil {
			return "", errors.NewStorageError("failed to write CSV preamble", err)
		}
	}

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", errors.NewStorageError("failed to write CSV header row", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errors.NewStorageError("failed to flush CSV output", err)
	}
	if err := file.Close(); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to close %s", fullPath), err)
	}

	return fullPath, nil
}

// WriteSimpleCSV writes a header and records with a BOM
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) (string, error) {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

func (w *CSVWriter) resolvePath(filePath string) string {
	if w.paths == nil {
		return filePath
	}
	return w.paths.GetOutputPath(filePath)
}

package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dwellcli/internal/errors"
)

// Supported table formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// inputExtensions maps accepted input extensions to their format.
// Delimited text exported from spreadsheets often ends in .txt.
var inputExtensions = map[string]string{
	".csv":  FormatCSV,
	".txt":  FormatCSV,
	".xlsx": FormatXLSX,
}

var exportExtensions = map[string]string{
	".csv":  FormatCSV,
	".xlsx": FormatXLSX,
}

// FileValidator checks input and output paths before the pipeline touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// InputFormat returns the table format for an input path, or an error for an
// unsupported extension.
func InputFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := inputExtensions[ext]; ok {
		return format, nil
	}
	return "", errors.NewAppValidationError(fmt.Sprintf("unsupported input extension %q", ext)).
		WithContext("path", path)
}

// ExportFormat returns the table format for an export path.
func ExportFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := exportExtensions[ext]; ok {
		return format, nil
	}
	return "", errors.NewAppValidationError(fmt.Sprintf("unsupported export extension %q (want .csv or .xlsx)", ext)).
		WithContext("path", path)
}

// ValidateInputFile checks that the source table exists, is a readable regular
// file and has a supported extension. A missing file is a DataLoadError
// wrapping ErrInputNotFound.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("file", path))
		return errors.NewDataLoadError(fmt.Sprintf("input file %s does not exist", path), errors.ErrInputNotFound).
			WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewDataLoadError(fmt.Sprintf("failed to stat input file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("path", path))
		return errors.NewDataLoadError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel lock file",
			slog.String("file", path))
		return errors.NewDataLoadError(fmt.Sprintf("file %s is a temporary Excel file", path), nil)
	}

	if _, err := InputFormat(path); err != nil {
		v.logger.Error("Input file has unsupported extension",
			slog.String("file", path))
		return errors.NewDataLoadError("unsupported input file", err)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewDataLoadError(fmt.Sprintf("input file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateExportFile checks the export extension and prepares its directory.
func (v *FileValidator) ValidateExportFile(path string) (string, error) {
	format, err := ExportFormat(path)
	if err != nil {
		v.logger.Error("Export file has unsupported extension",
			slog.String("file", path))
		return "", err
	}
	if err := v.ValidateOutputDirectory(filepath.Dir(path)); err != nil {
		return "", err
	}
	return format, nil
}

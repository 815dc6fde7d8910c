package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations for one run.
// Relative output names are placed under OutputDir; absolute ones are kept.
type Paths struct {
	InputFile  string
	OutputDir  string
	ExportFile string
	LogsDir    string

	TrendVsSAChart   string
	SAQoQChart       string
	SAMovingAvgChart string
}

// Paths resolves every configured location
func (c *Config) Paths() *Paths {
	p := &Paths{
		InputFile: c.Input.Path,
		OutputDir: c.Output.Dir,
	}
	p.ExportFile = p.GetOutputPath(c.Output.ExportFile)
	p.TrendVsSAChart = p.GetOutputPath(c.Charts.TrendVsSA)
	p.SAQoQChart = p.GetOutputPath(c.Charts.SAQoQ)
	p.SAMovingAvgChart = p.GetOutputPath(c.Charts.SAMovingAvg)
	if c.Logging.FilePath != "" {
		p.LogsDir = filepath.Dir(c.Logging.FilePath)
	}
	return p
}

// GetOutputPath returns name under the output directory. An empty name stays
// empty so disabled outputs remain disabled.
func (p *Paths) GetOutputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.OutputDir, name)
}

// EnsureDirectories creates the output directory and the directory of the
// export file if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{p.OutputDir}
	if p.ExportFile != "" {
		directories = append(directories, filepath.Dir(p.ExportFile))
	}

	logger := slog.Default()
	for _, dir := range directories {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// ChartFiles returns the enabled chart paths in rendering order
func (p *Paths) ChartFiles() []string {
	var files []string
	for _, f := range []string{p.TrendVsSAChart, p.SAQoQChart, p.SAMovingAvgChart} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.String("input", p.InputFile),
		slog.String("output_dir", p.OutputDir),
		slog.String("export", p.ExportFile),
		slog.Group("charts",
			slog.String("trend_vs_sa", p.TrendVsSAChart),
			slog.String("sa_qoq", p.SAQoQChart),
			slog.String("sa_moving_avg", p.SAMovingAvgChart),
		))
}

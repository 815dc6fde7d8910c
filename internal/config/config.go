package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig describes where the raw table comes from and how it is shaped
type InputConfig struct {
	Path               string `yaml:"path" split_words:"true" validate:"required"`
	Sheet              string `yaml:"sheet" split_words:"true"`
	Delimiter          string `yaml:"delimiter" split_words:"true" validate:"len=1"`
	ThousandsSeparator string `yaml:"thousands_separator" split_words:"true" validate:"len=1"`
	SkipRows           int    `yaml:"skip_rows" split_words:"true" validate:"min=0"`
	Strict             bool   `yaml:"strict" split_words:"true"`
}

// OutputConfig contains export configuration
type OutputConfig struct {
	Dir        string `yaml:"dir" split_words:"true" validate:"required"`
	ExportFile string `yaml:"export_file" split_words:"true" validate:"required"`
	Title      string `yaml:"title" split_words:"true"`
	BOMPrefix  bool   `yaml:"bom_prefix" split_words:"true"`
	Precision  int32  `yaml:"precision" split_words:"true" validate:"min=0,max=10"`
}

// ChartsConfig contains chart file names and page sizes in inches.
// An empty file name disables that chart.
type ChartsConfig struct {
	TrendVsSA   string  `yaml:"trend_vs_sa" split_words:"true"`
	SAQoQ       string  `yaml:"sa_qoq" split_words:"true"`
	SAMovingAvg string  `yaml:"sa_moving_avg" split_words:"true"`
	Width       float64 `yaml:"width" split_words:"true" validate:"gt=0"`
	Height      float64 `yaml:"height" split_words:"true" validate:"gt=0"`
	BarHeight   float64 `yaml:"bar_height" split_words:"true" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true" validate:"oneof=json text"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled" split_words:"true"`
	Environment string  `yaml:"environment" split_words:"true"`
	TraceFile   string  `yaml:"trace_file" split_words:"true"`
	MetricsFile string  `yaml:"metrics_file" split_words:"true"`
	SampleRatio float64 `yaml:"sample_ratio" split_words:"true" validate:"min=0,max=1"`
}

// Load builds the configuration from defaults, then the YAML file at
// configFile (if non-empty or found in a well-known location), then DWELL_*
// environment variables. Later sources win.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields have no default tags, so unset variables leave the file values alone
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalizes a few values
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// DelimiterRune returns the field delimiter as a rune
func (c InputConfig) DelimiterRune() rune {
	return firstRune(c.Delimiter, ',')
}

// SeparatorRune returns the thousands separator as a rune
func (c InputConfig) SeparatorRune() rune {
	return firstRune(c.ThousandsSeparator, ',')
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"dwellings.yaml",
		"configs/dwellings.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

var validate = validator.New()

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:               DefaultInputFile,
			Delimiter:          ",",
			ThousandsSeparator: ",",
			SkipRows:           1,
		},
		Output: OutputConfig{
			Dir:        ".",
			ExportFile: DefaultExportFile,
			Title:      DefaultTitle,
			BOMPrefix:  true,
			Precision:  4,
		},
		Charts: ChartsConfig{
			TrendVsSA:   ChartTrendVsSA,
			SAQoQ:       ChartSAQoQ,
			SAMovingAvg: ChartSAMovingAvg,
			Width:       12,
			Height:      6,
			BarHeight:   5,
		},
		Logging: LoggingConfig{
			Level:    "warn",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Environment: "development",
			TraceFile:   "logs/traces.json",
			MetricsFile: "logs/dwellings.prom",
			SampleRatio: 1.0,
		},
	}
}

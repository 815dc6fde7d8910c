package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultInputFile, cfg.Input.Path)
				assert.Equal(t, ",", cfg.Input.Delimiter)
				assert.Equal(t, ",", cfg.Input.ThousandsSeparator)
				assert.Equal(t, 1, cfg.Input.SkipRows)
				assert.False(t, cfg.Input.Strict)

				assert.Equal(t, ".", cfg.Output.Dir)
				assert.Equal(t, DefaultExportFile, cfg.Output.ExportFile)
				assert.True(t, cfg.Output.BOMPrefix)
				assert.Equal(t, int32(4), cfg.Output.Precision)

				assert.Equal(t, ChartTrendVsSA, cfg.Charts.TrendVsSA)
				assert.Equal(t, 12.0, cfg.Charts.Width)

				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.False(t, cfg.Telemetry.Enabled)
			},
		},
		{
			name: "yaml file overrides defaults",
			fileContent: `
input:
  path: data/dwellings.csv
  strict: true
output:
  dir: out
  precision: 2
charts:
  sa_qoq: ""
logging:
  level: DEBUG
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data/dwellings.csv", cfg.Input.Path)
				assert.True(t, cfg.Input.Strict)
				assert.Equal(t, "out", cfg.Output.Dir)
				assert.Equal(t, int32(2), cfg.Output.Precision)
				assert.Equal(t, "", cfg.Charts.SAQoQ)
				assert.Equal(t, ChartTrendVsSA, cfg.Charts.TrendVsSA)
				assert.Equal(t, "debug", cfg.Logging.Level)
				// untouched keys keep their defaults
				assert.Equal(t, ",", cfg.Input.Delimiter)
			},
		},
		{
			name: "env vars override the file",
			env: map[string]string{
				"DWELL_INPUT_PATH":                "from-env.csv",
				"DWELL_INPUT_THOUSANDS_SEPARATOR": ".",
				"DWELL_INPUT_DELIMITER":           ";",
				"DWELL_TELEMETRY_ENABLED":         "true",
			},
			fileContent: `
input:
  path: from-file.csv
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env.csv", cfg.Input.Path)
				assert.Equal(t, ".", cfg.Input.ThousandsSeparator)
				assert.Equal(t, ';', cfg.Input.DelimiterRune())
				assert.Equal(t, '.', cfg.Input.SeparatorRune())
				assert.True(t, cfg.Telemetry.Enabled)
			},
		},
		{
			name:        "invalid log level fails validation",
			fileContent: "logging:\n  level: chatty\n",
			wantErr:     true,
		},
		{
			name:        "multi character delimiter fails validation",
			fileContent: "input:\n  delimiter: ';;'\n",
			wantErr:     true,
		},
		{
			name:        "malformed yaml",
			fileContent: "input: [unterminated",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.fileContent != "" {
				configFile = filepath.Join(t.TempDir(), "dwellings.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0644))
			}

			cfg, err := Load(configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "empty input path", mutate: func(c *Config) { c.Input.Path = "" }, wantErr: true},
		{name: "negative skip rows", mutate: func(c *Config) { c.Input.SkipRows = -1 }, wantErr: true},
		{name: "empty output dir", mutate: func(c *Config) { c.Output.Dir = "" }, wantErr: true},
		{name: "precision too high", mutate: func(c *Config) { c.Output.Precision = 11 }, wantErr: true},
		{name: "zero chart width", mutate: func(c *Config) { c.Charts.Width = 0 }, wantErr: true},
		{name: "unknown log output", mutate: func(c *Config) { c.Logging.Output = "syslog" }, wantErr: true},
		{name: "sample ratio above one", mutate: func(c *Config) { c.Telemetry.SampleRatio = 1.5 }, wantErr: true},
		{name: "disabled chart is valid", mutate: func(c *Config) { c.Charts.SAMovingAvg = "" }},
		{
			name: "file output without path gets default",
			mutate: func(c *Config) {
				c.Logging.Output = "FILE"
				c.Logging.FilePath = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if cfg.Logging.Output == "file" {
				assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
			}
		})
	}
}

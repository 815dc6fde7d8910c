package config

import "dwellcli/pkg/contracts"

// Application constants
const (
	AppName    = "dwellings"
	AppVersion = contracts.Version

	// EnvPrefix namespaces environment variables, e.g. DWELL_INPUT_PATH
	EnvPrefix = "DWELL"

	DefaultInputFile  = "Total dwellings commenced.csv"
	DefaultExportFile = "dwellings_derived.csv"
	DefaultLogFile    = "logs/dwellings.log"
	DefaultTitle      = "Total dwellings commenced"

	// Chart file names
	ChartTrendVsSA   = "dwellings_trend_vs_sa.png"
	ChartSAQoQ       = "dwellings_sa_qoq.png"
	ChartSAMovingAvg = "dwellings_sa_moving_avg.png"
)

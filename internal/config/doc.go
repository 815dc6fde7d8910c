// Package config provides configuration management for the dwellings tool.
// It replaces hard-coded input and output paths with a value that is built
// once at startup and passed to the loader, exporter and chart renderer.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Command line flags (applied by the CLI after Load)
//  2. Environment variables
//  3. YAML configuration file
//  4. Default values
//
// # Environment Variables
//
// All environment variables follow the pattern DWELL_<SECTION>_<FIELD>:
//
//	DWELL_INPUT_PATH="Total dwellings commenced.csv"
//	DWELL_INPUT_THOUSANDS_SEPARATOR=,
//	DWELL_OUTPUT_DIR=out
//	DWELL_LOGGING_LEVEL=debug
//	DWELL_TELEMETRY_ENABLED=true
//
// # Validation
//
// Configuration is validated with go-playground/validator struct tags at
// load time. Tests should start from Default() and mutate what they need.
package config

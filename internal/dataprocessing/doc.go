// Package dataprocessing turns the raw dwellings-commenced table into a typed
// quarterly series and derives growth and smoothing metrics from it.
//
// # Architecture
//
// The package is organized into four stages:
//
// 1. Source: reads raw rows from delimited text or an .xlsx sheet
// 2. Parser: drops non-data rows and coerces period labels and counts
// 3. Loader: skips title rows, collects diagnostics and orders by period
// 4. Analytics: growth rates, moving averages and the summary reducer
//
// # Usage
//
//	loader := dataprocessing.NewLoader(dataprocessing.LoaderConfigFromInput(cfg.Input), logger)
//	result, err := loader.LoadFile(ctx, cfg.Input.Path)
//	if err != nil {
//	    return err
//	}
//	derived := dataprocessing.Derive(result.Series)
//	summary, err := dataprocessing.Summarize(derived)
//
// Pipeline bundles the three calls with tracing and metrics.
//
// # Data Flow
//
//	Table → RawRows → Parser → Observations → Loader (sorted Series) → Derive → Summarize
//
// # Error Handling
//
// Problems with individual rows never fail a load. The row is rejected and
// counted in Diagnostics (listed individually in strict mode). Only a missing
// or unreadable input, or an input with zero valid rows, fails with a
// DataLoadError. Summarize fails only on an empty series.
package dataprocessing

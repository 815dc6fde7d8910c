// Package exporter writes a derived dwellings series back to disk.
//
// CSVWriter: core CSV writing with an optional preamble and UTF-8 BOM for
// Excel compatibility.
//
// XLSXWriter: single-sheet workbooks through excelize with typed cells.
//
// DatasetExporter: lays out a DerivedSeries (title row, header, one row per
// quarter) and picks CSV or XLSX from the file extension. The first three
// columns match the source table, so an export can be loaded again.
//
// Example usage:
//
//	exp := exporter.NewDatasetExporter(cfg.Paths(), exporter.DatasetOptionsFromOutput(cfg.Output), logger)
//	path, err := exp.Export(ctx, derived, "dwellings_derived.xlsx")
package exporter

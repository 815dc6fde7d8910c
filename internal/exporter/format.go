package exporter

import (
	"strconv"

	"github.com/shopspring/decimal"

	"dwellcli/pkg/contracts/domain"
)

// formatFloat formats f with exactly precision decimal places.
// decimal avoids the binary noise of values like 30.000000000000004.
func formatFloat(f float64, precision int32) string {
	return decimal.NewFromFloat(f).StringFixed(precision)
}

// formatNullFloat formats a defined value, or returns an empty cell
func formatNullFloat(n domain.NullFloat, precision int32) string {
	if !n.Valid {
		return ""
	}
	return formatFloat(n.Float64, precision)
}

// formatInt formats an integer without grouping so it reloads unchanged
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// roundFloat rounds f to precision places for numeric spreadsheet cells
func roundFloat(f float64, precision int32) float64 {
	return decimal.NewFromFloat(f).Round(precision).InexactFloat64()
}

// nullableCell returns a rounded value or nil so the cell stays blank
func nullableCell(n domain.NullFloat, precision int32) interface{} {
	if !n.Valid {
		return nil
	}
	return roundFloat(n.Float64, precision)
}

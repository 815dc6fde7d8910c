package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"dwellcli/internal/dataprocessing"
	"dwellcli/pkg/contracts/domain"
)

const notAvailable = "n/a"

func writeLine(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// formatCount groups thousands: 12345 -> "12,345"
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

// formatPct renders a signed percentage, or n/a when undefined
func formatPct(n domain.NullFloat) string {
	if !n.Valid {
		return notAvailable
	}
	return fmt.Sprintf("%+.2f%%", n.Float64)
}

func formatExtremum(e domain.Extremum) string {
	return fmt.Sprintf("%s (%s)", formatCount(e.Value), e.Period)
}

func writeSummary(w io.Writer, s domain.Summary) {
	writeLine(w, "Latest period: %s", s.LatestPeriod)
	writeLine(w, "Latest Trend: %s", formatCount(s.LatestTrend))
	writeLine(w, "Latest Seasonally adjusted: %s", formatCount(s.LatestSA))
	writeLine(w, "Trend QoQ: %s", formatPct(s.TrendQoQPct))
	writeLine(w, "Seasonally adjusted QoQ: %s", formatPct(s.SAQoQPct))
	writeLine(w, "Trend YoY: %s", formatPct(s.TrendYoYPct))
	writeLine(w, "Seasonally adjusted YoY: %s", formatPct(s.SAYoYPct))
}

func writePeaks(w io.Writer, s domain.Summary) {
	writeLine(w, "Peak Trend: %s", formatExtremum(s.TrendPeak))
	writeLine(w, "Peak Seasonally adjusted: %s", formatExtremum(s.SAPeak))
	writeLine(w, "Trough Trend: %s", formatExtremum(s.TrendTrough))
	writeLine(w, "Trough Seasonally adjusted: %s", formatExtremum(s.SATrough))
}

func writeSummaryJSON(w io.Writer, s domain.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func writeDiagnostics(w io.Writer, d dataprocessing.Diagnostics) {
	writeLine(w, "Rows read: %s, observations: %s, rejected: %s",
		formatCount(d.RowsRead), formatCount(d.Observations), formatCount(d.RejectedCount()))
	for _, r := range d.Rejected {
		writeLine(w, "  %s", r)
	}
}

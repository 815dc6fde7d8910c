package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"dwellcli/pkg/contracts/domain"
)

// MinCells is the number of leading cells a data row must carry:
// period label, trend count, seasonally adjusted count.
const MinCells = 3

// RejectReason classifies why a raw row did not become an observation
type RejectReason string

const (
	ReasonTooFewCells   RejectReason = "too_few_cells"
	ReasonPeriodPattern RejectReason = "period_pattern"
	ReasonPeriodMonth   RejectReason = "period_month"
	ReasonTrendValue    RejectReason = "trend_value"
	ReasonSAValue       RejectReason = "sa_value"
)

// RejectedRow is a raw row excluded by filtering or coercion.
type RejectedRow struct {
	Line   int          `json:"line"`
	Cells  []string     `json:"cells"`
	Reason RejectReason `json:"reason"`
	Detail string       `json:"detail,omitempty"`
}

func (r RejectedRow) String() string {
	if r.Detail == "" {
		return fmt.Sprintf("line %d: %s %q", r.Line, r.Reason, r.Cells)
	}
	return fmt.Sprintf("line %d: %s (%s) %q", r.Line, r.Reason, r.Detail, r.Cells)
}

// RowParser turns raw rows into observations. Row-level problems are never
// returned as errors; the row is rejected instead.
type RowParser struct {
	separator string
}

// NewRowParser creates a parser that strips sep from numeric cells.
// A zero rune falls back to ','.
func NewRowParser(sep rune) *RowParser {
	if sep == 0 {
		sep = ','
	}
	return &RowParser{separator: string(sep)}
}

// IsDataRow reports whether a row looks like a data row: at least three cells
// and a first cell matching MMM-YY. Title, header, footnote and blank rows
// fail this check.
func IsDataRow(row domain.RawRow) bool {
	_, ok := checkShape(row)
	return ok
}

// FilterRows keeps the rows that pass IsDataRow, in input order.
func FilterRows(rows []domain.RawRow) []domain.RawRow {
	out := make([]domain.RawRow, 0, len(rows))
	for _, row := range rows {
		if IsDataRow(row) {
			out = append(out, row)
		}
	}
	return out
}

func checkShape(row domain.RawRow) (RejectReason, bool) {
	if len(row.Cells) < MinCells {
		return ReasonTooFewCells, false
	}
	if !domain.PeriodPattern.MatchString(strings.TrimSpace(row.Cells[0])) {
		return ReasonPeriodPattern, false
	}
	return "", true
}

// ParseCount converts a locale formatted count such as "1,234" to an int.
// Every separator rune is removed and surrounding whitespace trimmed.
// Negative counts are rejected.
func (p *RowParser) ParseCount(text string) (int, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, p.separator, ""))
	if cleaned == "" {
		return 0, fmt.Errorf("empty count")
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("count %q is not an integer", text)
	}
	if n < 0 {
		return 0, fmt.Errorf("count %q is negative", text)
	}
	return n, nil
}

// ParseRow filters and coerces a single row. Exactly one of the results is
// non-nil.
func (p *RowParser) ParseRow(row domain.RawRow) (*domain.Observation, *RejectedRow) {
	reject := func(reason RejectReason, detail string) *RejectedRow {
		return &RejectedRow{Line: row.Line, Cells: row.Cells, Reason: reason, Detail: detail}
	}

	if reason, ok := checkShape(row); !ok {
		return nil, reject(reason, "")
	}

	label := strings.TrimSpace(row.Cells[0])
	period, err := domain.ParsePeriod(label)
	if err != nil {
		return nil, reject(ReasonPeriodMonth, err.Error())
	}

	trend, err := p.ParseCount(row.Cells[1])
	if err != nil {
		return nil, reject(ReasonTrendValue, err.Error())
	}

	sa, err := p.ParseCount(row.Cells[2])
	if err != nil {
		return nil, reject(ReasonSAValue, err.Error())
	}

	return &domain.Observation{
		Label:              label,
		Period:             period,
		Trend:              trend,
		SeasonallyAdjusted: sa,
	}, nil
}

// ParseRows coerces every row, returning the observations in input order and
// the rows that were rejected.
func (p *RowParser) ParseRows(rows []domain.RawRow) ([]domain.Observation, []RejectedRow) {
	observations := make([]domain.Observation, 0, len(rows))
	var rejected []RejectedRow

	for _, row := range rows {
		obs, rej := p.ParseRow(row)
		if rej != nil {
			rejected = append(rejected, *rej)
			continue
		}
		observations = append(observations, *obs)
	}

	return observations, rejected
}

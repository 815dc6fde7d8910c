package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PeriodPattern matches a period label such as "Mar-17": three letters, a
// hyphen and a two digit year. Letters are matched case-insensitively.
var PeriodPattern = regexp.MustCompile(`^[A-Za-z]{3}-\d{2}$`)

// CenturyBase is added to every two digit year. The dwellings series starts
// after 2000, so "17" is always 2017.
const CenturyBase = 2000

var monthAbbreviations = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Period identifies one observation of the quarterly series. Month is the
// month named in the source label (the reference month of the quarter), so
// "Mar-17" is {2017, March}.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ParsePeriod parses a "MMM-YY" label. Surrounding whitespace is ignored.
func ParsePeriod(label string) (Period, error) {
	label = strings.TrimSpace(label)
	if !PeriodPattern.MatchString(label) {
		return Period{}, fmt.Errorf("period %q does not match MMM-YY", label)
	}

	month, ok := monthAbbreviations[strings.ToLower(label[:3])]
	if !ok {
		return Period{}, fmt.Errorf("period %q has unknown month %q", label, label[:3])
	}

	yy, err := strconv.Atoi(label[4:])
	if err != nil {
		return Period{}, fmt.Errorf("period %q has invalid year: %w", label, err)
	}

	return Period{Year: CenturyBase + yy, Month: month}, nil
}

// Date returns the first day of the labelled month in UTC.
func (p Period) Date() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Quarter returns the calendar quarter (1-4) containing the period.
func (p Period) Quarter() int {
	return (int(p.Month)-1)/3 + 1
}

// QuarterStart returns the first day of the calendar quarter, so the month
// is always January, April, July or October.
func (p Period) QuarterStart() time.Time {
	month := time.Month((p.Quarter()-1)*3 + 1)
	return time.Date(p.Year, month, 1, 0, 0, 0, 0, time.UTC)
}

// QuarterLabel formats the period as "2017Q1".
func (p Period) QuarterLabel() string {
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter())
}

// Label formats the period back into the canonical "Mar-17" form.
func (p Period) Label() string {
	return fmt.Sprintf("%s-%02d", p.Month.String()[:3], p.Year%100)
}

// Before reports whether p is strictly earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

func (p Period) String() string {
	return p.Label()
}

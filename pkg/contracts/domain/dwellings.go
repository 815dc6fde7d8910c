package domain

import (
	"encoding/json"
	"math"
	"time"
)

// RawRow is one row of the source table before any cleaning.
// Line is the 1-based position of the row in the source, used for diagnostics.
// The period label, trend text and seasonally adjusted text are the first
// three cells; anything after them is ignored.
type RawRow struct {
	Line  int
	Cells []string
}

// Observation is a single cleaned quarter of the dwellings-commenced series.
//
// Invariants:
//   - Trend and SeasonallyAdjusted are >= 0 and were parsed from text with
//     the thousands separators removed
//   - Period was derived from Label
type Observation struct {
	// Label is the period text as it appeared in the source, e.g. "Mar-17"
	Label string `json:"period"`

	Period Period `json:"-"`

	// Trend is the smoothed count with irregular and seasonal variation removed
	Trend int `json:"trend" validate:"min=0"`

	// SeasonallyAdjusted keeps irregular variation but removes seasonality
	SeasonallyAdjusted int `json:"seasonally_adjusted" validate:"min=0"`
}

// Date is the first day of the labelled month.
func (o Observation) Date() time.Time {
	return o.Period.Date()
}

// Series is the cleaned series ordered by ascending period. Rows that share a
// period are kept in source order.
type Series []Observation

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s)
}

// TrendValues returns the trend column.
func (s Series) TrendValues() []int {
	out := make([]int, len(s))
	for i, o := range s {
		out[i] = o.Trend
	}
	return out
}

// SeasonallyAdjustedValues returns the seasonally adjusted column.
func (s Series) SeasonallyAdjustedValues() []int {
	out := make([]int, len(s))
	for i, o := range s {
		out[i] = o.SeasonallyAdjusted
	}
	return out
}

// NullFloat is a float64 that may be undefined. A growth rate is undefined
// at the start of the series or when its base value is zero.
// Float64 is never NaN or infinite when Valid is true.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// NewNullFloat returns a valid NullFloat unless f is NaN or infinite.
func NewNullFloat(f float64) NullFloat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NullFloat{}
	}
	return NullFloat{Float64: f, Valid: true}
}

// Ptr returns nil for undefined values.
func (n NullFloat) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// MarshalJSON encodes undefined values as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts null or a number.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = NewNullFloat(f)
	return nil
}

// DerivedPoint is an Observation together with its growth rates and
// moving averages. Percentages are expressed as percent (30.0 means +30%).
type DerivedPoint struct {
	Observation

	TrendQoQPct NullFloat `json:"trend_qoq_pct"`
	SAQoQPct    NullFloat `json:"sa_qoq_pct"`
	TrendYoYPct NullFloat `json:"trend_yoy_pct"`
	SAYoYPct    NullFloat `json:"sa_yoy_pct"`

	// Trailing mean over up to four quarters; fewer only at the series start
	Trend4QMA float64 `json:"trend_4q_ma"`
	SA4QMA    float64 `json:"sa_4q_ma"`
}

// DerivedSeries is aligned index-for-index with the Series it came from.
type DerivedSeries []DerivedPoint

// Series returns the base observations.
func (d DerivedSeries) Series() Series {
	out := make(Series, len(d))
	for i, p := range d {
		out[i] = p.Observation
	}
	return out
}

// Extremum is a peak or trough of one column together with the period at
// which it first occurs.
type Extremum struct {
	Value  int    `json:"value"`
	Period string `json:"period"`
	Index  int    `json:"index"`
}

// Summary is a snapshot of the latest quarter plus the series-wide extrema.
// It holds no references back into the series.
type Summary struct {
	Observations int `json:"observations"`

	LatestPeriod string    `json:"latest_period"`
	LatestDate   time.Time `json:"latest_date"`
	LatestTrend  int       `json:"latest_trend"`
	LatestSA     int       `json:"latest_sa"`

	TrendQoQPct NullFloat `json:"trend_qoq_pct"`
	SAQoQPct    NullFloat `json:"sa_qoq_pct"`
	TrendYoYPct NullFloat `json:"trend_yoy_pct"`
	SAYoYPct    NullFloat `json:"sa_yoy_pct"`

	TrendPeak   Extremum `json:"trend_peak"`
	SAPeak      Extremum `json:"sa_peak"`
	TrendTrough Extremum `json:"trend_trough"`
	SATrough    Extremum `json:"sa_trough"`
}

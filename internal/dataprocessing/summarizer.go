package dataprocessing

import (
	"dwellcli/internal/errors"
	"dwellcli/pkg/contracts/domain"
)

// Summarize reduces a derived series to its latest quarter and the peaks and
// troughs of both columns. Ties resolve to the earliest period. An empty
// series is an EmptySeriesError.
func Summarize(derived domain.DerivedSeries) (domain.Summary, error) {
	if len(derived) == 0 {
		return domain.Summary{}, errors.NewEmptySeriesError()
	}

	latest := derived[len(derived)-1]
	series := derived.Series()
	trend := series.TrendValues()
	sa := series.SeasonallyAdjustedValues()

	return domain.Summary{
		Observations: len(derived),

		LatestPeriod: latest.Label,
		LatestDate:   latest.Date(),
		LatestTrend:  latest.Trend,
		LatestSA:     latest.SeasonallyAdjusted,

		TrendQoQPct: latest.TrendQoQPct,
		SAQoQPct:    latest.SAQoQPct,
		TrendYoYPct: latest.TrendYoYPct,
		SAYoYPct:    latest.SAYoYPct,

		TrendPeak:   extremum(series, trend, func(a, b int) bool { return a > b }),
		SAPeak:      extremum(series, sa, func(a, b int) bool { return a > b }),
		TrendTrough: extremum(series, trend, func(a, b int) bool { return a < b }),
		SATrough:    extremum(series, sa, func(a, b int) bool { return a < b }),
	}, nil
}

// extremum scans for the first index whose value beats every earlier one.
// values must be non-empty.
func extremum(series domain.Series, values []int, better func(a, b int) bool) domain.Extremum {
	best := 0
	for i := 1; i < len(values); i++ {
		if better(values[i], values[best]) {
			best = i
		}
	}
	return domain.Extremum{
		Value:  values[best],
		Period: series[best].Label,
		Index:  best,
	}
}

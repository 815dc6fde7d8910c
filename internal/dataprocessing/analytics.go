package dataprocessing

import (
	"dwellcli/pkg/contracts/domain"
)

// Lags and windows, in quarters
const (
	QuarterOverQuarterLag = 1
	YearOverYearLag       = 4
	MovingAverageWindow   = 4
)

// Derive computes growth rates and trailing moving averages for both columns.
// The input is not modified. It never fails: growth that has no base (the
// first lag positions, or a zero base) is left undefined.
func Derive(series domain.Series) domain.DerivedSeries {
	trend := series.TrendValues()
	sa := series.SeasonallyAdjustedValues()

	trendQoQ := PercentChange(trend, QuarterOverQuarterLag)
	saQoQ := PercentChange(sa, QuarterOverQuarterLag)
	trendYoY := PercentChange(trend, YearOverYearLag)
	saYoY := PercentChange(sa, YearOverYearLag)
	trendMA := TrailingMean(trend, MovingAverageWindow)
	saMA := TrailingMean(sa, MovingAverageWindow)

	derived := make(domain.DerivedSeries, len(series))
	for i, obs := range series {
		derived[i] = domain.DerivedPoint{
			Observation: obs,
			TrendQoQPct: trendQoQ[i],
			SAQoQPct:    saQoQ[i],
			TrendYoYPct: trendYoY[i],
			SAYoYPct:    saYoY[i],
			Trend4QMA:   trendMA[i],
			SA4QMA:      saMA[i],
		}
	}
	return derived
}

// PercentChange returns (v[i]/v[i-lag] - 1) * 100 for every i >= lag.
// Earlier positions and zero bases are undefined.
func PercentChange(values []int, lag int) []domain.NullFloat {
	out := make([]domain.NullFloat, len(values))
	if lag <= 0 {
		return out
	}
	for i := lag; i < len(values); i++ {
		base := values[i-lag]
		if base == 0 {
			continue
		}
		out[i] = domain.NewNullFloat((float64(values[i])/float64(base) - 1) * 100)
	}
	return out
}

// TrailingMean returns the mean of values[max(0, i-window+1) .. i] for every
// i, so the window shrinks at the start of the series instead of leaving gaps.
func TrailingMean(values []int, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		window = 1
	}

	sum := 0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := min(i+1, window)
		out[i] = float64(sum) / float64(n)
	}
	return out
}

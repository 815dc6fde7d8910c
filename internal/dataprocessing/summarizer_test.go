package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwellcli/internal/errors"
	"dwellcli/pkg/contracts/domain"
)

func TestSummarize_Example(t *testing.T) {
	summary, err := Summarize(Derive(exampleSeries()))
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Observations)
	assert.Equal(t, "Mar-18", summary.LatestPeriod)
	assert.Equal(t, time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC), summary.LatestDate)
	assert.Equal(t, 1300, summary.LatestTrend)
	assert.Equal(t, 1150, summary.LatestSA)

	require.True(t, summary.TrendYoYPct.Valid)
	assert.InDelta(t, 30.0, summary.TrendYoYPct.Float64, 1e-9)
	require.True(t, summary.SAQoQPct.Valid)
	assert.InDelta(t, (1150.0/1080.0-1)*100, summary.SAQoQPct.Float64, 1e-9)

	assert.Equal(t, domain.Extremum{Value: 1300, Period: "Mar-18", Index: 4}, summary.TrendPeak)
	assert.Equal(t, domain.Extremum{Value: 1000, Period: "Mar-17", Index: 0}, summary.TrendTrough)
	assert.Equal(t, domain.Extremum{Value: 1150, Period: "Mar-18", Index: 4}, summary.SAPeak)
	assert.Equal(t, domain.Extremum{Value: 950, Period: "Mar-17", Index: 0}, summary.SATrough)
}

func TestSummarize_TiesResolveToFirstOccurrence(t *testing.T) {
	derived := Derive(seriesOf(
		[]int{100, 150, 150, 120},
		[]int{9, 3, 3, 9},
	))

	summary, err := Summarize(derived)
	require.NoError(t, err)

	assert.Equal(t, domain.Extremum{Value: 150, Period: "Jun-17", Index: 1}, summary.TrendPeak)
	assert.Equal(t, domain.Extremum{Value: 100, Period: "Mar-17", Index: 0}, summary.TrendTrough)
	assert.Equal(t, domain.Extremum{Value: 9, Period: "Mar-17", Index: 0}, summary.SAPeak)
	assert.Equal(t, domain.Extremum{Value: 3, Period: "Jun-17", Index: 1}, summary.SATrough)
}

func TestSummarize_ShortSeriesHasUndefinedGrowth(t *testing.T) {
	summary, err := Summarize(Derive(seriesOf([]int{500}, []int{480})))
	require.NoError(t, err)

	assert.Equal(t, "Mar-17", summary.LatestPeriod)
	assert.False(t, summary.TrendQoQPct.Valid)
	assert.False(t, summary.SAQoQPct.Valid)
	assert.False(t, summary.TrendYoYPct.Valid)
	assert.False(t, summary.SAYoYPct.Valid)
	assert.Equal(t, summary.TrendPeak, summary.TrendTrough)
}

func TestSummarize_Empty(t *testing.T) {
	tests := []struct {
		name    string
		derived domain.DerivedSeries
	}{
		{"nil", nil},
		{"empty", domain.DerivedSeries{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize(tt.derived)
			require.Error(t, err)
			assert.True(t, errors.IsEmptySeries(err))
		})
	}
}

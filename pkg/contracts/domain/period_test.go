package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		want        Period
		wantErr     bool
		errContains string
	}{
		{name: "march 2017", label: "Mar-17", want: Period{Year: 2017, Month: time.March}},
		{name: "lowercase month", label: "dec-09", want: Period{Year: 2009, Month: time.December}},
		{name: "uppercase month", label: "JUN-21", want: Period{Year: 2021, Month: time.June}},
		{name: "year 00 maps to 2000", label: "Sep-00", want: Period{Year: 2000, Month: time.September}},
		{name: "year 99 maps to 2099", label: "Sep-99", want: Period{Year: 2099, Month: time.September}},
		{name: "surrounding whitespace", label: "  Mar-17 ", want: Period{Year: 2017, Month: time.March}},
		{name: "unknown month", label: "Abc-17", wantErr: true, errContains: "unknown month"},
		{name: "four digit year", label: "Mar-2017", wantErr: true, errContains: "MMM-YY"},
		{name: "full month name", label: "March-17", wantErr: true, errContains: "MMM-YY"},
		{name: "footnote text", label: "TOTAL", wantErr: true},
		{name: "empty", label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodAccessors(t *testing.T) {
	tests := []struct {
		label        string
		quarter      int
		quarterStart time.Time
		quarterLabel string
	}{
		{"Mar-17", 1, time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC), "2017Q1"},
		{"Jun-17", 2, time.Date(2017, time.April, 1, 0, 0, 0, 0, time.UTC), "2017Q2"},
		{"Sep-17", 3, time.Date(2017, time.July, 1, 0, 0, 0, 0, time.UTC), "2017Q3"},
		{"Dec-17", 4, time.Date(2017, time.October, 1, 0, 0, 0, 0, time.UTC), "2017Q4"},
		{"Oct-18", 4, time.Date(2018, time.October, 1, 0, 0, 0, 0, time.UTC), "2018Q4"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			p, err := ParsePeriod(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.quarter, p.Quarter())
			assert.Equal(t, tt.quarterStart, p.QuarterStart())
			assert.Equal(t, tt.quarterLabel, p.QuarterLabel())
			assert.Equal(t, tt.label, p.Label())
		})
	}

	p := Period{Year: 2017, Month: time.March}
	assert.Equal(t, time.Date(2017, time.March, 1, 0, 0, 0, 0, time.UTC), p.Date())
}

func TestPeriodBefore(t *testing.T) {
	mar17 := Period{Year: 2017, Month: time.March}
	jun17 := Period{Year: 2017, Month: time.June}
	mar18 := Period{Year: 2018, Month: time.March}

	assert.True(t, mar17.Before(jun17))
	assert.True(t, jun17.Before(mar18))
	assert.False(t, mar18.Before(mar17))
	assert.False(t, mar17.Before(mar17))
}

func TestNullFloat(t *testing.T) {
	assert.False(t, NewNullFloat(math.NaN()).Valid)
	assert.False(t, NewNullFloat(math.Inf(1)).Valid)
	assert.Nil(t, NullFloat{}.Ptr())

	v := NewNullFloat(12.5)
	require.True(t, v.Valid)
	require.NotNil(t, v.Ptr())
	assert.Equal(t, 12.5, *v.Ptr())

	data, err := json.Marshal(struct {
		A NullFloat `json:"a"`
		B NullFloat `json:"b"`
	}{A: v})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12.5,"b":null}`, string(data))

	var decoded struct {
		A NullFloat `json:"a"`
		B NullFloat `json:"b"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, v, decoded.A)
	assert.False(t, decoded.B.Valid)
}

func TestDerivedSeriesSeries(t *testing.T) {
	derived := DerivedSeries{
		{Observation: Observation{Label: "Mar-17", Period: Period{2017, time.March}, Trend: 1000, SeasonallyAdjusted: 950}},
		{Observation: Observation{Label: "Jun-17", Period: Period{2017, time.June}, Trend: 1100, SeasonallyAdjusted: 1000}},
	}

	series := derived.Series()
	require.Len(t, series, 2)
	assert.Equal(t, []int{1000, 1100}, series.TrendValues())
	assert.Equal(t, []int{950, 1000}, series.SeasonallyAdjustedValues())
}

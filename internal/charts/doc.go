// Package charts renders the dwellings series as PNG images with gonum/plot:
// trend against seasonally adjusted, seasonally adjusted quarter-on-quarter
// growth bars, and seasonally adjusted with its 4-quarter moving average.
package charts

package charts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwellcli/internal/config"
	"dwellcli/internal/errors"
	"dwellcli/pkg/contracts/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func derivedOf(trend, sa []int) domain.DerivedSeries {
	labels := []string{"Mar-17", "Jun-17", "Sep-17", "Dec-17", "Mar-18", "Jun-18"}
	derived := make(domain.DerivedSeries, len(trend))
	for i := range trend {
		period, _ := domain.ParsePeriod(labels[i])
		derived[i] = domain.DerivedPoint{
			Observation: domain.Observation{
				Label: labels[i], Period: period,
				Trend: trend[i], SeasonallyAdjusted: sa[i],
			},
			SA4QMA: float64(sa[i]),
		}
		if i > 0 {
			derived[i].SAQoQPct = domain.NewNullFloat((float64(sa[i])/float64(sa[i-1]) - 1) * 100)
		}
	}
	return derived
}

func testOptions(dir string) Options {
	cfg := config.Default()
	cfg.Output.Dir = dir
	cfg.Charts.Width = 4
	cfg.Charts.Height = 3
	cfg.Charts.BarHeight = 2
	return OptionsFromConfig(cfg.Charts, cfg.Paths())
}

func TestRenderer_RenderAll(t *testing.T) {
	tests := []struct {
		name    string
		derived domain.DerivedSeries
	}{
		{"single observation", derivedOf([]int{100}, []int{90})},
		{"mixed growth", derivedOf([]int{100, 120, 110, 130, 140}, []int{90, 80, 95, 95, 100})},
		{"zero base", derivedOf([]int{0, 10}, []int{0, 10})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			written, err := NewRenderer(testOptions(dir), nil).RenderAll(context.Background(), tt.derived)
			require.NoError(t, err)

			assert.Equal(t, []string{
				filepath.Join(dir, config.ChartTrendVsSA),
				filepath.Join(dir, config.ChartSAQoQ),
				filepath.Join(dir, config.ChartSAMovingAvg),
			}, written)

			for _, path := range written {
				content, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.True(t, bytes.HasPrefix(content, pngMagic), "%s is not a PNG", path)
			}
		})
	}
}

func TestRenderer_DisabledChartsAreSkipped(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)
	opts.SAQoQPath = ""
	opts.TrendVsSAPath = ""

	written, err := NewRenderer(opts, nil).RenderAll(context.Background(), derivedOf([]int{1, 2}, []int{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, config.ChartSAMovingAvg)}, written)
	assert.NoFileExists(t, filepath.Join(dir, config.ChartSAQoQ))
}

func TestRenderer_EmptySeries(t *testing.T) {
	_, err := NewRenderer(testOptions(t.TempDir()), nil).RenderAll(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeRender))
}

func TestRenderer_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewRenderer(testOptions(blocker), nil).RenderAll(context.Background(), derivedOf([]int{1}, []int{1}))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeRender))
}

func TestQuarterTicks(t *testing.T) {
	trend := make([]int, 6)
	ticks := newQuarterTicks(derivedOf(trend, trend))

	got := ticks.Ticks(-0.5, 5.5)
	require.Len(t, got, 6)
	assert.Equal(t, "Mar-17", got[0].Label)
	assert.Equal(t, "Jun-18", got[5].Label)

	labels := make([]string, 30)
	for i := range labels {
		labels[i] = "q"
	}
	long := quarterTicks{labels: labels, step: 3}
	all := long.Ticks(0, 29)
	require.Len(t, all, 30)
	labelled := 0
	for _, tick := range all {
		if tick.Label != "" {
			labelled++
		}
	}
	assert.Equal(t, 10, labelled)
	assert.Equal(t, 3, newQuarterTicks(make(domain.DerivedSeries, 30)).step)
}

func TestSAQoQPlot_UndefinedGrowth(t *testing.T) {
	derived := derivedOf([]int{1, 2, 3}, []int{10, 5, 10})
	derived[1].SAQoQPct = domain.NullFloat{}

	p, err := SAQoQPlot(derived)
	require.NoError(t, err)
	assert.Equal(t, titleSAQoQ, p.Title.Text)
}

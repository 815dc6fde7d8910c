package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"dwellcli/pkg/contracts/domain"
)

var (
	trendColor    = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	saColor       = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255}
	growthColor   = color.RGBA{R: 0x2b, G: 0x8c, B: 0xbe, A: 255}
	declineColor  = color.RGBA{R: 0xde, G: 0x2d, B: 0x26, A: 255}
	rawLineColor  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 153}
	averageColor  = color.RGBA{R: 0x08, G: 0x51, B: 0x9c, A: 255}
	zeroLineColor = color.Black
)

const (
	titleTrendVsSA   = "Total dwellings commenced: Trend vs Seasonally adjusted"
	titleSAQoQ       = "Quarter-over-quarter growth: Seasonally adjusted (%)"
	titleSAMovingAvg = "Seasonally adjusted with 4-quarter moving average"

	labelDwellings = "Number of dwellings"
	labelPercent   = "Percent"
	labelDate      = "Date"
)

// newPlot applies the layout shared by every chart
func newPlot(title, yLabel string, derived domain.DerivedSeries) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = labelDate
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = newQuarterTicks(derived)
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true
	return p
}

// points places observation i at x = i
func points(n int, y func(i int) float64) plotter.XYs {
	xys := make(plotter.XYs, n)
	for i := range xys {
		xys[i].X = float64(i)
		xys[i].Y = y(i)
	}
	return xys
}

// TrendVsSAPlot overlays both columns as lines with point markers.
func TrendVsSAPlot(derived domain.DerivedSeries) (*plot.Plot, error) {
	p := newPlot(titleTrendVsSA, labelDwellings, derived)

	trend := points(len(derived), func(i int) float64 { return float64(derived[i].Trend) })
	trendLine, trendPoints, err := plotter.NewLinePoints(trend)
	if err != nil {
		return nil, err
	}
	trendLine.Color = trendColor
	trendLine.Width = vg.Points(2)
	trendPoints.GlyphStyle.Shape = draw.CircleGlyph{}
	trendPoints.GlyphStyle.Color = trendColor

	sa := points(len(derived), func(i int) float64 { return float64(derived[i].SeasonallyAdjusted) })
	saLine, saPoints, err := plotter.NewLinePoints(sa)
	if err != nil {
		return nil, err
	}
	saLine.Color = saColor
	saLine.Width = vg.Points(2)
	saPoints.GlyphStyle.Shape = draw.BoxGlyph{}
	saPoints.GlyphStyle.Color = saColor

	p.Add(trendLine, trendPoints, saLine, saPoints)
	p.Legend.Add("Trend", trendLine, trendPoints)
	p.Legend.Add("Seasonally adjusted", saLine, saPoints)
	return p, nil
}

// SAQoQPlot draws seasonally adjusted growth as bars coloured by sign with a
// zero line. Undefined growth is drawn as an empty bar.
func SAQoQPlot(derived domain.DerivedSeries) (*plot.Plot, error) {
	p := newPlot(titleSAQoQ, labelPercent, derived)
	p.Legend.Top = false

	positive := make(plotter.Values, len(derived))
	negative := make(plotter.Values, len(derived))
	for i, pt := range derived {
		v := 0.0
		if pt.SAQoQPct.Valid {
			v = pt.SAQoQPct.Float64
		}
		if v >= 0 {
			positive[i] = v
		} else {
			negative[i] = v
		}
	}

	width := vg.Points(barWidth(len(derived)))
	for _, series := range []struct {
		values plotter.Values
		color  color.Color
	}{
		{positive, growthColor},
		{negative, declineColor},
	} {
		bars, err := plotter.NewBarChart(series.values, width)
		if err != nil {
			return nil, err
		}
		bars.Color = series.color
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
	}

	zero, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: 0}, {X: float64(len(derived)) - 0.5, Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.Color = zeroLineColor
	zero.Width = vg.Points(1)
	p.Add(zero)
	return p, nil
}

// SAMovingAvgPlot draws the seasonally adjusted line under its 4-quarter
// moving average.
func SAMovingAvgPlot(derived domain.DerivedSeries) (*plot.Plot, error) {
	p := newPlot(titleSAMovingAvg, labelDwellings, derived)

	raw, err := plotter.NewLine(points(len(derived), func(i int) float64 {
		return float64(derived[i].SeasonallyAdjusted)
	}))
	if err != nil {
		return nil, err
	}
	raw.Color = rawLineColor
	raw.Width = vg.Points(1.5)

	avg, err := plotter.NewLine(points(len(derived), func(i int) float64 {
		return derived[i].SA4QMA
	}))
	if err != nil {
		return nil, err
	}
	avg.Color = averageColor
	avg.Width = vg.Points(2.5)

	p.Add(raw, avg)
	p.Legend.Add("Seasonally adjusted", raw)
	p.Legend.Add("Seasonally adjusted (4-quarter MA)", avg)
	return p, nil
}

// barWidth shrinks bars as the series grows so neighbours don't overlap
func barWidth(n int) float64 {
	switch {
	case n <= 20:
		return 16
	case n <= 60:
		return 8
	default:
		return 4
	}
}

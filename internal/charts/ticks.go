package charts

import (
	"math"

	"gonum.org/v1/plot"

	"dwellcli/pkg/contracts/domain"
)

// maxTickLabels caps the labelled ticks on the date axis
const maxTickLabels = 12

// quarterTicks labels integer x positions with period labels. Every
// observation gets a tick mark; only every step-th is labelled.
type quarterTicks struct {
	labels []string
	step   int
}

func newQuarterTicks(derived domain.DerivedSeries) quarterTicks {
	labels := make([]string, len(derived))
	for i, p := range derived {
		labels[i] = p.Label
	}
	step := (len(labels) + maxTickLabels - 1) / maxTickLabels
	if step < 1 {
		step = 1
	}
	return quarterTicks{labels: labels, step: step}
}

// Ticks implements plot.Ticker
func (q quarterTicks) Ticks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	first := int(math.Max(0, math.Ceil(lo)))
	last := int(math.Min(float64(len(q.labels)-1), math.Floor(hi)))
	for i := first; i <= last; i++ {
		tick := plot.Tick{Value: float64(i)}
		if i%q.step == 0 {
			tick.Label = q.labels[i]
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

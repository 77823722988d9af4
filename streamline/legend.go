package streamline

import (
	"math"
	"strconv"
)

// Legend describes the color-scale bar that rides along with the tube.
// Ticks are chosen at a round step so at most MaxLabels labels appear
// inside the fixed pixel footprint.
type Legend struct {
	Title     string
	MaxLabels int
	WidthPx   int
	HeightPx  int
	Ramp      Ramp
}

func NewLegend(r Ramp) Legend {
	return Legend{
		Title:     "Wind Speed",
		MaxLabels: 7,
		WidthPx:   100,
		HeightPx:  266,
		Ramp:      r,
	}
}

// Ticks returns ascending tick values spanning the ramp range, never more
// than MaxLabels of them.
func (l Legend) Ticks() []float64 {
	span := l.Ramp.Max - l.Ramp.Min
	if span <= 0 || l.MaxLabels < 2 {
		return []float64{l.Ramp.Min}
	}
	step := niceStep(span / float64(l.MaxLabels-1))
	start := math.Ceil(l.Ramp.Min/step) * step
	out := []float64{}
	for v := start; v <= l.Ramp.Max+step*1e-9; v += step {
		out = append(out, v)
	}
	return out
}

// Labels formats the ticks with trailing zeros trimmed.
func (l Legend) Labels() []string {
	ticks := l.Ticks()
	out := make([]string, len(ticks))
	for i, v := range ticks {
		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return out
}

// niceStep rounds raw up to the nearest 1, 2, or 5 times a power of ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

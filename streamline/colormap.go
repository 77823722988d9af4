package streamline

// RampStop anchors a color at a value.
type RampStop struct {
	Value float64
	Color [3]float64
}

// Ramp is a piecewise-linear color map over a fixed lookup range. Values
// outside [Min, Max] clamp; values beyond the last stop keep its color.
type Ramp struct {
	Stops    []RampStop
	Min, Max float64
}

// WindSpeedRamp is the fixed speed map: blue at rest through white to red,
// looked up over [0, 25].
func WindSpeedRamp() Ramp {
	return Ramp{
		Stops: []RampStop{
			{Value: 0, Color: [3]float64{0, 0, 1}},
			{Value: 11, Color: [3]float64{1, 1, 1}},
			{Value: 22, Color: [3]float64{1, 0, 0}},
		},
		Min: 0,
		Max: 25,
	}
}

// At returns the interpolated color for v.
func (r Ramp) At(v float64) [3]float64 {
	if len(r.Stops) == 0 {
		return [3]float64{}
	}
	if v < r.Min {
		v = r.Min
	} else if v > r.Max {
		v = r.Max
	}
	if v <= r.Stops[0].Value {
		return r.Stops[0].Color
	}
	last := r.Stops[len(r.Stops)-1]
	if v >= last.Value {
		return last.Color
	}
	for i := 1; i < len(r.Stops); i++ {
		lo, hi := r.Stops[i-1], r.Stops[i]
		if v > hi.Value {
			continue
		}
		t := (v - lo.Value) / (hi.Value - lo.Value)
		return [3]float64{
			lo.Color[0] + t*(hi.Color[0]-lo.Color[0]),
			lo.Color[1] + t*(hi.Color[1]-lo.Color[1]),
			lo.Color[2] + t*(hi.Color[2]-lo.Color[2]),
		}
	}
	return last.Color
}

// Bytes returns the color for v as 8-bit channels.
func (r Ramp) Bytes(v float64) [3]byte {
	c := r.At(v)
	return [3]byte{byte(c[0] * 255), byte(c[1] * 255), byte(c[2] * 255)}
}

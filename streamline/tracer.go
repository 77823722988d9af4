package streamline

import (
	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/flywave/go-simscene/field"
)

// Tracer defaults. Propagation is measured as arc length in world units.
const (
	DefaultMaxPropagation = 70.0
	DefaultStep           = 0.1
	DefaultMaxSteps       = 2000
	DefaultTerminalSpeed  = 1e-12
)

// Streamline is one integrated trace with the field speed at every point.
type Streamline struct {
	Points []vec3d.T
	Speeds []float64
}

// Tracer integrates seeds through the field with fixed-step midpoint RK2,
// forward direction only. A trace ends when it leaves the grid, exceeds
// MaxPropagation, hits the step cap, or the local speed drops below
// TerminalSpeed.
type Tracer struct {
	Field          *field.Grid
	MaxPropagation float64
	Step           float64
	MaxSteps       int
	TerminalSpeed  float64
}

func NewTracer(g *field.Grid) *Tracer {
	return &Tracer{
		Field:          g,
		MaxPropagation: DefaultMaxPropagation,
		Step:           DefaultStep,
		MaxSteps:       DefaultMaxSteps,
		TerminalSpeed:  DefaultTerminalSpeed,
	}
}

// Trace integrates one seed. Steps advance along the unit flow direction,
// so Step and MaxPropagation are spatial lengths; recorded speeds are the
// raw field magnitudes.
func (t *Tracer) Trace(seed vec3d.T) Streamline {
	v, ok := t.Field.Sample(seed)
	if !ok {
		return Streamline{}
	}
	line := Streamline{
		Points: []vec3d.T{seed},
		Speeds: []float64{v.Length()},
	}
	p := seed
	traveled := 0.0
	for n := 0; n < t.MaxSteps && traveled < t.MaxPropagation; n++ {
		v1, ok := t.Field.Sample(p)
		if !ok {
			break
		}
		s1 := v1.Length()
		if s1 < t.TerminalSpeed {
			break
		}
		mid := advance(p, v1, s1, t.Step/2)
		v2, ok := t.Field.Sample(mid)
		if !ok {
			break
		}
		s2 := v2.Length()
		if s2 < t.TerminalSpeed {
			break
		}
		p = advance(p, v2, s2, t.Step)
		v, ok = t.Field.Sample(p)
		if !ok {
			break
		}
		traveled += t.Step
		line.Points = append(line.Points, p)
		line.Speeds = append(line.Speeds, v.Length())
	}
	return line
}

// TraceAll integrates every seed and keeps the traces long enough to mesh.
func (t *Tracer) TraceAll(seeds []vec3d.T) []Streamline {
	out := make([]Streamline, 0, len(seeds))
	for _, seed := range seeds {
		line := t.Trace(seed)
		if len(line.Points) < 2 {
			continue
		}
		out = append(out, line)
	}
	return out
}

func advance(p, v vec3d.T, speed, h float64) vec3d.T {
	f := h / speed
	return vec3d.T{p[0] + f*v[0], p[1] + f*v[1], p[2] + f*v[2]}
}

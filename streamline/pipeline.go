package streamline

import (
	mst "github.com/flywave/go-mst"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/flywave/go-simscene/field"
	"github.com/flywave/go-simscene/render"
)

// Options bundles the stage-2 parameters: seed sampling, integration
// bounds and tube meshing.
type Options struct {
	Radius         float64
	Sides          int
	Buckets        int
	Resolution     int
	MaxPropagation float64
	Step           float64
	MaxSteps       int
	TerminalSpeed  float64
}

func DefaultOptions() Options {
	return Options{
		Radius:         ViewerTubeRadius,
		Sides:          DefaultTubeSides,
		Buckets:        DefaultTubeBuckets,
		Resolution:     DefaultSeedResolution,
		MaxPropagation: DefaultMaxPropagation,
		Step:           DefaultStep,
		MaxSteps:       DefaultMaxSteps,
		TerminalSpeed:  DefaultTerminalSpeed,
	}
}

// Pipeline owns a built field and rebuilds tube and legend on every
// parameter change. The field is stage 1 and must exist before the
// pipeline does; stage 2 is Update. An optional sink receives the tube,
// and each Update swaps the old handle for the new one.
type Pipeline struct {
	field  *field.Grid
	opts   Options
	ramp   Ramp
	legend Legend
	sink   render.Surface
	log    *zap.Logger

	kx, ky float64
	lines  []Streamline
	tube   *mst.Mesh
	handle render.Handle
}

// New wires a pipeline over an already-built field. A missing or empty
// field fails construction; there is no degraded mode.
func New(g *field.Grid, opts Options, sink render.Surface, log *zap.Logger) (*Pipeline, error) {
	if g == nil || g.Len() == 0 || len(g.Vectors) != g.Len() {
		return nil, errors.Wrap(field.ErrLoadFailure, "pipeline needs a built stream field")
	}
	if log == nil {
		log = zap.NewNop()
	}
	ramp := WindSpeedRamp()
	return &Pipeline{
		field:  g,
		opts:   opts,
		ramp:   ramp,
		legend: NewLegend(ramp),
		sink:   sink,
		log:    log,
		kx:     DefaultStartX,
		ky:     DefaultStartY,
	}, nil
}

// Update repositions the seed line at (kx, ky), retraces every seed and
// rebuilds the tube from scratch. Nothing is reused from the prior build;
// the sink's old handle is removed before the new tube is added.
func (p *Pipeline) Update(kx, ky float64) error {
	p.kx = clamp01(kx)
	p.ky = clamp01(ky)

	seeds := p.seedLine().Points()
	tracer := &Tracer{
		Field:          p.field,
		MaxPropagation: p.opts.MaxPropagation,
		Step:           p.opts.Step,
		MaxSteps:       p.opts.MaxSteps,
		TerminalSpeed:  p.opts.TerminalSpeed,
	}
	lines := tracer.TraceAll(seeds)

	builder := NewTubeBuilder(p.opts.Radius, p.ramp)
	if p.opts.Sides > 0 {
		builder.Sides = p.opts.Sides
	}
	if p.opts.Buckets > 0 {
		builder.Buckets = p.opts.Buckets
	}
	tube := builder.Build(lines)

	if p.sink != nil {
		if p.handle != nil {
			p.sink.RemoveGeometry(p.handle)
			p.handle = nil
		}
		h, err := p.sink.AddGeometry(tube, render.Style{
			Color:   [3]float64{1, 1, 1},
			Diffuse: 0.6,
			Ambient: 0.3,
		})
		if err != nil {
			return errors.Wrap(err, "render tube")
		}
		p.handle = h
	}

	p.lines = lines
	p.tube = tube
	p.log.Debug("streamlines rebuilt",
		zap.Float64("kx", p.kx), zap.Float64("ky", p.ky),
		zap.Int("lines", len(lines)))
	return nil
}

func (p *Pipeline) seedLine() SeedLine {
	line := NewSeedLine(p.field.Bounds(), p.kx, p.ky)
	if p.opts.Resolution > 0 {
		line.Resolution = p.opts.Resolution
	}
	return line
}

// Params returns the current normalized seed parameters.
func (p *Pipeline) Params() (float64, float64) {
	return p.kx, p.ky
}

// Lines returns the traces of the last Update.
func (p *Pipeline) Lines() []Streamline {
	return p.lines
}

// Tube returns the mesh of the last Update, nil before the first one.
func (p *Pipeline) Tube() *mst.Mesh {
	return p.tube
}

func (p *Pipeline) Legend() Legend {
	return p.legend
}

// Field exposes the stage-1 grid.
func (p *Pipeline) Field() *field.Grid {
	return p.field
}

// Handle returns the sink handle of the current tube, nil without a sink.
func (p *Pipeline) Handle() render.Handle {
	return p.handle
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

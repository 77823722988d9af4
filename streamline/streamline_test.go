package streamline

import (
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flywave/go-simscene/field"
)

func uniformGrid(dims [3]int, v vec3d.T) *field.Grid {
	g := &field.Grid{Dims: dims, Spacing: vec3d.T{1, 1, 1}}
	g.Vectors = make([]vec3d.T, g.Len())
	g.Speeds = make([]float64, g.Len())
	for i := range g.Vectors {
		g.Vectors[i] = v
		g.Speeds[i] = v.Length()
	}
	return g
}

func TestSeedEndpointsBoundary(t *testing.T) {
	bounds := vec3d.Box{Min: vec3d.T{-5, -3, -1}, Max: vec3d.T{5, 3, 1}}

	p1, p2 := SeedEndpoints(bounds, 0, 0)
	assert.Equal(t, vec3d.T{-5, -3, -1}, p1)
	assert.Equal(t, vec3d.T{-5, -3, 1}, p2)

	p1, p2 = SeedEndpoints(bounds, 1, 1)
	assert.Equal(t, vec3d.T{5, 3, -1}, p1)
	assert.Equal(t, vec3d.T{5, 3, 1}, p2)

	p1, _ = SeedEndpoints(bounds, 0.5, 0.5)
	assert.Equal(t, vec3d.T{0, 0, -1}, p1)
}

func TestSeedEndpointsDeterministic(t *testing.T) {
	cfg := field.DefaultSyntheticConfig()
	a := field.Synthesize(cfg)
	b := field.Synthesize(cfg)

	a1, a2 := SeedEndpoints(a.Bounds(), 0.3, 0.7)
	b1, b2 := SeedEndpoints(b.Bounds(), 0.3, 0.7)
	assert.Equal(t, a1, b1)
	assert.Equal(t, a2, b2)
}

func TestSeedLinePoints(t *testing.T) {
	line := SeedLine{P1: vec3d.T{0, 0, 0}, P2: vec3d.T{0, 0, 4}, Resolution: 4}
	pts := line.Points()

	require.Len(t, pts, 5)
	assert.Equal(t, vec3d.T{0, 0, 0}, pts[0])
	assert.Equal(t, vec3d.T{0, 0, 2}, pts[2])
	assert.Equal(t, vec3d.T{0, 0, 4}, pts[4])
}

func TestTracerUniformFlow(t *testing.T) {
	g := uniformGrid([3]int{12, 3, 3}, vec3d.T{2, 0, 0})
	tr := NewTracer(g)

	line := tr.Trace(vec3d.T{0, 1, 1})
	require.Greater(t, len(line.Points), 2)
	for i, p := range line.Points {
		assert.InDelta(t, 1.0, p[1], 1e-9)
		assert.InDelta(t, 1.0, p[2], 1e-9)
		if i > 0 {
			assert.Greater(t, p[0], line.Points[i-1][0])
		}
	}
	for _, s := range line.Speeds {
		assert.InDelta(t, 2.0, s, 1e-9)
	}
	// the trace ends by leaving the 11-unit x extent
	last := line.Points[len(line.Points)-1]
	assert.InDelta(t, 11.0, last[0], tr.Step+1e-9)
}

func TestTracerStepCap(t *testing.T) {
	g := uniformGrid([3]int{200, 3, 3}, vec3d.T{1, 0, 0})
	tr := NewTracer(g)
	tr.MaxSteps = 5

	line := tr.Trace(vec3d.T{0, 1, 1})
	assert.Len(t, line.Points, 6)
}

func TestTracerMaxPropagation(t *testing.T) {
	g := uniformGrid([3]int{200, 3, 3}, vec3d.T{1, 0, 0})
	tr := NewTracer(g)
	tr.MaxPropagation = 2

	line := tr.Trace(vec3d.T{0, 1, 1})
	arc := float64(len(line.Points)-1) * tr.Step
	assert.InDelta(t, 2.0, arc, tr.Step+1e-9)
}

func TestTracerStagnantField(t *testing.T) {
	g := uniformGrid([3]int{4, 4, 4}, vec3d.T{0, 0, 0})
	tr := NewTracer(g)

	line := tr.Trace(vec3d.T{1, 1, 1})
	assert.Len(t, line.Points, 1)

	lines := tr.TraceAll([]vec3d.T{{1, 1, 1}, {2, 2, 2}})
	assert.Empty(t, lines)
}

func TestTracerSeedOutsideField(t *testing.T) {
	g := uniformGrid([3]int{4, 4, 4}, vec3d.T{1, 0, 0})
	tr := NewTracer(g)

	line := tr.Trace(vec3d.T{-1, 0, 0})
	assert.Empty(t, line.Points)
}

func TestWindSpeedRampStops(t *testing.T) {
	r := WindSpeedRamp()

	assert.Equal(t, [3]float64{0, 0, 1}, r.At(0))
	assert.Equal(t, [3]float64{1, 1, 1}, r.At(11))
	assert.Equal(t, [3]float64{1, 0, 0}, r.At(22))
	assert.Equal(t, [3]float64{1, 0, 0}, r.At(25))
	assert.Equal(t, [3]float64{1, 0, 0}, r.At(40))
	assert.Equal(t, [3]float64{0, 0, 1}, r.At(-3))

	mid := r.At(5.5)
	assert.InDelta(t, 0.5, mid[0], 1e-12)
	assert.InDelta(t, 0.5, mid[1], 1e-12)
	assert.InDelta(t, 1.0, mid[2], 1e-12)
}

func TestLegendTicks(t *testing.T) {
	l := NewLegend(WindSpeedRamp())

	assert.Equal(t, "Wind Speed", l.Title)
	assert.Equal(t, 100, l.WidthPx)
	assert.Equal(t, 266, l.HeightPx)

	ticks := l.Ticks()
	assert.LessOrEqual(t, len(ticks), l.MaxLabels)
	assert.Equal(t, []float64{0, 5, 10, 15, 20, 25}, ticks)
	assert.Equal(t, []string{"0", "5", "10", "15", "20", "25"}, l.Labels())
}

func TestTubeCounts(t *testing.T) {
	line := Streamline{
		Points: []vec3d.T{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		Speeds: []float64{2, 2, 2},
	}
	tb := NewTubeBuilder(0.5, WindSpeedRamp())
	mesh := tb.Build([]Streamline{line})

	require.Len(t, mesh.Nodes, 1)
	node := mesh.Nodes[0]
	assert.Len(t, node.Vertices, 3*tb.Sides)
	assert.Len(t, node.Normals, 3*tb.Sides)

	require.Len(t, node.FaceGroup, 1)
	group := node.FaceGroup[0]
	assert.Len(t, group.Faces, 2*2*tb.Sides)
	assert.Equal(t, int32(tb.bucket(2)), group.Batchid)
	assert.Len(t, mesh.Materials, tb.Buckets)
}

func TestTubeRadius(t *testing.T) {
	line := Streamline{
		Points: []vec3d.T{{0, 0, 0}, {1, 0, 0}},
		Speeds: []float64{1, 1},
	}
	tb := NewTubeBuilder(0.25, WindSpeedRamp())
	mesh := tb.Build([]Streamline{line})

	node := mesh.Nodes[0]
	for s := 0; s < tb.Sides; s++ {
		v := node.Vertices[s]
		dy := float64(v[1])
		dz := float64(v[2])
		r := dy*dy + dz*dz
		assert.InDelta(t, 0.25*0.25, r, 1e-6)
		assert.InDelta(t, 0.0, float64(v[0]), 1e-6)
	}
}

func TestTubeSkipsShortLines(t *testing.T) {
	tb := NewTubeBuilder(0.1, WindSpeedRamp())
	mesh := tb.Build([]Streamline{
		{Points: []vec3d.T{{0, 0, 0}}, Speeds: []float64{1}},
	})

	node := mesh.Nodes[0]
	assert.Empty(t, node.Vertices)
	assert.Empty(t, node.FaceGroup)
	assert.Len(t, mesh.Materials, tb.Buckets)
}

package streamline

import (
	"errors"
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flywave/go-simscene/field"
	"github.com/flywave/go-simscene/render"
)

func smallConfig() field.SyntheticConfig {
	cfg := field.DefaultSyntheticConfig()
	cfg.Dims = [3]int{8, 6, 4}
	cfg.Origin = vec3d.T{0, 0, 0}
	cfg.Modes = 8
	return cfg
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Resolution = 16
	return opts
}

func TestPipelineNeedsField(t *testing.T) {
	_, err := New(nil, DefaultOptions(), nil, nil)
	assert.True(t, errors.Is(err, field.ErrLoadFailure))

	_, err = New(&field.Grid{Dims: [3]int{2, 2, 2}}, DefaultOptions(), nil, nil)
	assert.True(t, errors.Is(err, field.ErrLoadFailure))
}

func TestPipelineUpdateRebuilds(t *testing.T) {
	g := field.Synthesize(smallConfig())
	p, err := New(g, smallOptions(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, p.Tube())

	require.NoError(t, p.Update(0.2, 0.4))
	firstTube := p.Tube()
	require.NotNil(t, firstTube)
	assert.NotEmpty(t, p.Lines())

	kx, ky := p.Params()
	assert.Equal(t, 0.2, kx)
	assert.Equal(t, 0.4, ky)

	require.NoError(t, p.Update(0.9, 0.1))
	assert.NotSame(t, firstTube, p.Tube())
}

func TestPipelineClampsParams(t *testing.T) {
	g := field.Synthesize(smallConfig())
	p, err := New(g, smallOptions(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, p.Update(-0.5, 1.5))
	kx, ky := p.Params()
	assert.Equal(t, 0.0, kx)
	assert.Equal(t, 1.0, ky)
}

func TestPipelineSwapsSinkHandle(t *testing.T) {
	g := field.Synthesize(smallConfig())
	sink := render.NewOffscreen()
	p, err := New(g, smallOptions(), sink, nil)
	require.NoError(t, err)

	require.NoError(t, p.Update(0.3, 0.3))
	first := p.Handle()
	require.NotNil(t, first)
	assert.Len(t, sink.Handles(), 1)

	require.NoError(t, p.Update(0.7, 0.7))
	second := p.Handle()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Len(t, sink.Handles(), 1)
}

func TestPipelineDeterministicTraces(t *testing.T) {
	cfg := smallConfig()
	pa, err := New(field.Synthesize(cfg), smallOptions(), nil, nil)
	require.NoError(t, err)
	pb, err := New(field.Synthesize(cfg), smallOptions(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, pa.Update(0.5, 0.5))
	require.NoError(t, pb.Update(0.5, 0.5))

	la, lb := pa.Lines(), pb.Lines()
	require.Equal(t, len(la), len(lb))
	require.NotEmpty(t, la)
	assert.Equal(t, la[0].Points, lb[0].Points)
	assert.Equal(t, la[len(la)-1].Speeds, lb[len(lb)-1].Speeds)
}

func TestPipelineLegendMatchesRamp(t *testing.T) {
	g := field.Synthesize(smallConfig())
	p, err := New(g, smallOptions(), nil, nil)
	require.NoError(t, err)

	legend := p.Legend()
	assert.Equal(t, "Wind Speed", legend.Title)
	assert.Equal(t, 0.0, legend.Ramp.Min)
	assert.Equal(t, 25.0, legend.Ramp.Max)
}

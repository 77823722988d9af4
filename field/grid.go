// Package field provides the stream field sampled by the streamline
// tracer: a regular 3D vector grid, either synthesized or loaded from a
// legacy structured-points file.
package field

import (
	"math"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var ErrLoadFailure = errors.New("stream field load failure")

// Grid is a regular point grid with one vector per point, x-fastest order.
// Speeds caches the vector magnitudes.
type Grid struct {
	Dims    [3]int
	Spacing vec3d.T
	Origin  vec3d.T
	Vectors []vec3d.T
	Speeds  []float64
}

func (g *Grid) Len() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

func (g *Grid) Index(i, j, k int) int {
	return i + g.Dims[0]*(j+g.Dims[1]*k)
}

func (g *Grid) At(i, j, k int) vec3d.T {
	return g.Vectors[g.Index(i, j, k)]
}

// Point returns the world position of grid node (i, j, k).
func (g *Grid) Point(i, j, k int) vec3d.T {
	return vec3d.T{
		g.Origin[0] + float64(i)*g.Spacing[0],
		g.Origin[1] + float64(j)*g.Spacing[1],
		g.Origin[2] + float64(k)*g.Spacing[2],
	}
}

func (g *Grid) Bounds() vec3d.Box {
	max := g.Origin
	for d := 0; d < 3; d++ {
		max[d] += float64(g.Dims[d]-1) * g.Spacing[d]
	}
	return vec3d.Box{Min: g.Origin, Max: max}
}

// Sample interpolates the vector field at p with trilinear weights.
// Points outside the grid return false.
func (g *Grid) Sample(p vec3d.T) (vec3d.T, bool) {
	var cell [3]int
	var frac [3]float64
	for d := 0; d < 3; d++ {
		if g.Dims[d] == 1 {
			// a flat axis has no extent; tolerate drift up to half a spacing
			if math.Abs(p[d]-g.Origin[d]) > g.Spacing[d]/2 {
				return vec3d.T{}, false
			}
			continue
		}
		f := (p[d] - g.Origin[d]) / g.Spacing[d]
		last := float64(g.Dims[d] - 1)
		if f < 0 || f > last {
			return vec3d.T{}, false
		}
		i := int(f)
		if i > g.Dims[d]-2 {
			i = g.Dims[d] - 2
		}
		cell[d] = i
		frac[d] = f - float64(i)
	}
	var out vec3d.T
	for corner := 0; corner < 8; corner++ {
		w := 1.0
		var idx [3]int
		for d := 0; d < 3; d++ {
			if corner>>d&1 == 1 {
				w *= frac[d]
				idx[d] = cell[d] + 1
			} else {
				w *= 1 - frac[d]
				idx[d] = cell[d]
			}
			if idx[d] > g.Dims[d]-1 {
				idx[d] = g.Dims[d] - 1
			}
		}
		if w == 0 {
			continue
		}
		v := g.At(idx[0], idx[1], idx[2])
		out[0] += w * v[0]
		out[1] += w * v[1]
		out[2] += w * v[2]
	}
	return out, true
}

func (g *Grid) MaxSpeed() float64 {
	if len(g.Speeds) == 0 {
		return 0
	}
	return floats.Max(g.Speeds)
}

// Recenter shifts the grid so its centroid sits at the origin. For a
// regular grid the centroid is the bounds center, so the shift is closed
// form instead of a mean over every point.
func (g *Grid) Recenter() {
	for d := 0; d < 3; d++ {
		g.Origin[d] = -float64(g.Dims[d]-1) * g.Spacing[d] / 2
	}
}

func (g *Grid) refreshSpeeds() {
	g.Speeds = make([]float64, len(g.Vectors))
	for i, v := range g.Vectors {
		g.Speeds[i] = v.Length()
	}
}

// Package streamline traces seed lines through a stream field and meshes
// the result as a speed-colored tube with a matching legend.
package streamline

import (
	vec3d "github.com/flywave/go3d/float64/vec3"
)

// DefaultSeedResolution is the interval count of a seed line, so a line
// carries DefaultSeedResolution+1 seeds.
const DefaultSeedResolution = 1000

// Default seed-line parameters applied before the user touches a slider.
const (
	DefaultStartX = 0.5
	DefaultStartY = 0.0
)

// SeedEndpoints maps the normalized parameters kx, ky onto the field's
// x/y extents. Both endpoints share that (x, y); together they span the
// full z extent.
func SeedEndpoints(bounds vec3d.Box, kx, ky float64) (vec3d.T, vec3d.T) {
	x := bounds.Min[0] + kx*(bounds.Max[0]-bounds.Min[0])
	y := bounds.Min[1] + ky*(bounds.Max[1]-bounds.Min[1])
	return vec3d.T{x, y, bounds.Min[2]}, vec3d.T{x, y, bounds.Max[2]}
}

// SeedLine is an evenly sampled segment of seed points.
type SeedLine struct {
	P1, P2     vec3d.T
	Resolution int
}

func NewSeedLine(bounds vec3d.Box, kx, ky float64) SeedLine {
	p1, p2 := SeedEndpoints(bounds, kx, ky)
	return SeedLine{P1: p1, P2: p2, Resolution: DefaultSeedResolution}
}

// Points returns Resolution+1 seeds from P1 to P2 inclusive.
func (s SeedLine) Points() []vec3d.T {
	n := s.Resolution
	if n < 1 {
		n = 1
	}
	out := make([]vec3d.T, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, vec3d.T{
			s.P1[0] + t*(s.P2[0]-s.P1[0]),
			s.P1[1] + t*(s.P2[1]-s.P1[1]),
			s.P1[2] + t*(s.P2[2]-s.P1[2]),
		})
	}
	return out
}

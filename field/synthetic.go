package field

import (
	"math"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SyntheticConfig drives the Gaussian-correlated random field generator.
// Equal configs produce bit-identical grids.
type SyntheticConfig struct {
	Dims        [3]int
	Spacing     vec3d.T
	Origin      vec3d.T
	Variance    float64
	LengthScale float64
	Mean        vec3d.T
	Seed        uint64
	Modes       int
}

// DefaultSyntheticConfig is the wind field used when no structured-points
// file is configured: 40x30x10 grid centered on the origin, variance 3,
// correlation length 1.5, mean flow +x at 0.5.
func DefaultSyntheticConfig() SyntheticConfig {
	dims := [3]int{40, 30, 10}
	spacing := vec3d.T{1, 1, 1}
	return SyntheticConfig{
		Dims:        dims,
		Spacing:     spacing,
		Origin:      CenteredOrigin(dims, spacing),
		Variance:    3,
		LengthScale: 1.5,
		Mean:        vec3d.T{0.5, 0, 0},
		Seed:        198412031,
		Modes:       48,
	}
}

// CenteredOrigin places a grid so its bounds center on the world origin.
func CenteredOrigin(dims [3]int, spacing vec3d.T) vec3d.T {
	var o vec3d.T
	for d := 0; d < 3; d++ {
		o[d] = -float64(dims[d]-1) * spacing[d] / 2
	}
	return o
}

// Synthesize builds a stationary random vector field by superposing
// randomized spectral modes. Wave vectors are drawn from a normal with
// sigma 1/LengthScale, which approximates a squared-exponential
// covariance with that correlation length; phases are uniform. Each
// velocity component gets its own independent mode set, all drawn from
// one seeded source so the result is reproducible.
func Synthesize(cfg SyntheticConfig) *Grid {
	if cfg.Modes <= 0 {
		cfg.Modes = 48
	}
	src := rand.NewSource(cfg.Seed)
	wave := distuv.Normal{Mu: 0, Sigma: 1 / cfg.LengthScale, Src: src}
	phase := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}

	type mode struct {
		k     vec3d.T
		phase float64
	}
	modes := make([][]mode, 3)
	for c := 0; c < 3; c++ {
		modes[c] = make([]mode, cfg.Modes)
		for m := range modes[c] {
			modes[c][m] = mode{
				k:     vec3d.T{wave.Rand(), wave.Rand(), wave.Rand()},
				phase: phase.Rand(),
			}
		}
	}
	amp := math.Sqrt(2 * cfg.Variance / float64(cfg.Modes))

	g := &Grid{Dims: cfg.Dims, Spacing: cfg.Spacing, Origin: cfg.Origin}
	g.Vectors = make([]vec3d.T, g.Len())
	for k := 0; k < cfg.Dims[2]; k++ {
		for j := 0; j < cfg.Dims[1]; j++ {
			for i := 0; i < cfg.Dims[0]; i++ {
				p := g.Point(i, j, k)
				v := cfg.Mean
				for c := 0; c < 3; c++ {
					sum := 0.0
					for _, m := range modes[c] {
						sum += math.Cos(m.k[0]*p[0] + m.k[1]*p[1] + m.k[2]*p[2] + m.phase)
					}
					v[c] += amp * sum
				}
				g.Vectors[g.Index(i, j, k)] = v
			}
		}
	}
	g.refreshSpeeds()
	return g
}

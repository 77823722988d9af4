package scene

import (
	"math/rand"
	"time"

	"github.com/flywave/go-simscene/geom"
)

// Classify turns split bodies into labeled objects. Every body is first
// labeled by its position, then the body with the largest bounding-box
// volume is relabeled as ground; ties keep the first one seen. Colors are
// drawn from rng, one per body in order; a nil rng gets a time-seeded one.
func Classify(bodies []*geom.TriangleMesh, rng *rand.Rand) []*Object {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	objs := make([]*Object, 0, len(bodies))
	groundAt := -1
	groundVol := 0.0
	for i, body := range bodies {
		color := [3]float64{rng.Float64(), rng.Float64(), rng.Float64()}
		objs = append(objs, &Object{
			ID:       i,
			Label:    BodyLabel(i),
			Color:    color,
			Geometry: body.Mesh(colorBytes(color)),
		})
		vol := geom.BoxVolume(body.Bounds())
		if groundAt < 0 || vol > groundVol {
			groundAt = i
			groundVol = vol
		}
	}
	if groundAt >= 0 {
		objs[groundAt].Label = GroundLabel
	}
	return objs
}

func colorBytes(c [3]float64) [3]byte {
	var b [3]byte
	for i, v := range c {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		b[i] = byte(v * 255)
	}
	return b
}

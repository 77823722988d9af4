package streamline

import (
	"math"

	"github.com/chewxy/math32"
	mst "github.com/flywave/go-mst"
	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/flywave/go3d/vec3"
)

// Tube meshing defaults: ring vertex count and the number of speed buckets
// the ramp is quantized into for batch materials.
const (
	DefaultTubeSides   = 12
	DefaultTubeBuckets = 16
)

// Tube radii: the web viewer draws thin tubes, the editor thick ones.
const (
	ViewerTubeRadius = 0.1
	EditorTubeRadius = 0.5
)

// TubeBuilder wraps polylines in constant-radius tubes. Faces are grouped
// by quantized speed so each group picks up a ramp-colored material via
// its batch id.
type TubeBuilder struct {
	Radius  float64
	Sides   int
	Buckets int
	Ramp    Ramp
}

func NewTubeBuilder(radius float64, ramp Ramp) *TubeBuilder {
	return &TubeBuilder{
		Radius:  radius,
		Sides:   DefaultTubeSides,
		Buckets: DefaultTubeBuckets,
		Ramp:    ramp,
	}
}

// Build meshes every line into one node. Lines shorter than two points
// are skipped; an empty result still carries the bucket materials.
func (tb *TubeBuilder) Build(lines []Streamline) *mst.Mesh {
	mesh := mst.NewMesh()
	for b := 0; b < tb.Buckets; b++ {
		mesh.Materials = append(mesh.Materials, &mst.BaseMaterial{
			Color: tb.bucketColor(b),
		})
	}

	node := &mst.MeshNode{}
	groups := make([]*mst.MeshTriangle, tb.Buckets)
	for _, line := range lines {
		tb.appendTube(node, groups, line)
	}
	for _, g := range groups {
		if g != nil {
			node.FaceGroup = append(node.FaceGroup, g)
		}
	}
	mesh.Nodes = append(mesh.Nodes, node)
	return mesh
}

func (tb *TubeBuilder) appendTube(node *mst.MeshNode, groups []*mst.MeshTriangle, line Streamline) {
	if len(line.Points) < 2 {
		return
	}
	base := uint32(len(node.Vertices))
	sides := tb.Sides

	for i, p := range line.Points {
		tangent := tubeTangent(line.Points, i)
		n, bn := tubeFrame(tangent)
		for s := 0; s < sides; s++ {
			ang := 2 * math32.Pi * float32(s) / float32(sides)
			cos := float64(math32.Cos(ang))
			sin := float64(math32.Sin(ang))
			dir := vec3d.T{
				cos*n[0] + sin*bn[0],
				cos*n[1] + sin*bn[1],
				cos*n[2] + sin*bn[2],
			}
			node.Vertices = append(node.Vertices, vec3.T{
				float32(p[0] + tb.Radius*dir[0]),
				float32(p[1] + tb.Radius*dir[1]),
				float32(p[2] + tb.Radius*dir[2]),
			})
			node.Normals = append(node.Normals, vec3.T{
				float32(dir[0]), float32(dir[1]), float32(dir[2]),
			})
		}
	}

	for i := 0; i+1 < len(line.Points); i++ {
		bucket := tb.bucket(line.Speeds[i])
		if groups[bucket] == nil {
			groups[bucket] = &mst.MeshTriangle{Batchid: int32(bucket)}
		}
		g := groups[bucket]
		r0 := base + uint32(i*sides)
		r1 := base + uint32((i+1)*sides)
		for s := 0; s < sides; s++ {
			s1 := (s + 1) % sides
			a := r0 + uint32(s)
			b := r0 + uint32(s1)
			c := r1 + uint32(s)
			d := r1 + uint32(s1)
			g.Faces = append(g.Faces,
				&mst.Face{Vertex: [3]uint32{a, b, c}},
				&mst.Face{Vertex: [3]uint32{b, d, c}},
			)
		}
	}
}

func (tb *TubeBuilder) bucket(speed float64) int {
	span := tb.Ramp.Max - tb.Ramp.Min
	if span <= 0 {
		return 0
	}
	t := (speed - tb.Ramp.Min) / span
	b := int(t * float64(tb.Buckets))
	if b < 0 {
		b = 0
	} else if b > tb.Buckets-1 {
		b = tb.Buckets - 1
	}
	return b
}

func (tb *TubeBuilder) bucketColor(b int) [3]byte {
	span := tb.Ramp.Max - tb.Ramp.Min
	mid := tb.Ramp.Min + span*(float64(b)+0.5)/float64(tb.Buckets)
	return tb.Ramp.Bytes(mid)
}

func tubeTangent(points []vec3d.T, i int) vec3d.T {
	var d vec3d.T
	switch {
	case i == 0:
		d = vec3d.Sub(&points[1], &points[0])
	case i == len(points)-1:
		d = vec3d.Sub(&points[i], &points[i-1])
	default:
		d = vec3d.Sub(&points[i+1], &points[i-1])
	}
	if d.Length() == 0 {
		return vec3d.T{0, 0, 1}
	}
	return *d.Normalize()
}

// tubeFrame picks a stable normal/binormal pair around the tangent.
func tubeFrame(t vec3d.T) (vec3d.T, vec3d.T) {
	ref := vec3d.T{0, 0, 1}
	if math.Abs(t[2]) > 0.9 {
		ref = vec3d.T{0, 1, 0}
	}
	n := vec3d.Cross(&t, &ref)
	if n.Length() == 0 {
		ref = vec3d.T{1, 0, 0}
		n = vec3d.Cross(&t, &ref)
	}
	n.Normalize()
	bn := vec3d.Cross(&t, &n)
	bn.Normalize()
	return n, bn
}

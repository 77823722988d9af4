package geom

import (
	"testing"

	mst "github.com/flywave/go-mst"
	vec3d "github.com/flywave/go3d/float64/vec3"
	vec3 "github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
)

func quadAt(ox, oy, oz float32) *TriangleMesh {
	return &TriangleMesh{
		Vertices: []vec3.T{
			{ox, oy, oz}, {ox + 1, oy, oz}, {ox + 1, oy + 1, oz}, {ox, oy + 1, oz},
		},
		Faces: [][3]uint32{{0, 1, 2}, {0, 2, 3}},
	}
}

func merge(parts ...*TriangleMesh) *TriangleMesh {
	out := &TriangleMesh{}
	for _, p := range parts {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, p.Vertices...)
		for _, f := range p.Faces {
			out.Faces = append(out.Faces, [3]uint32{f[0] + base, f[1] + base, f[2] + base})
		}
	}
	return out
}

func TestSplitDisjointComponents(t *testing.T) {
	m := merge(quadAt(0, 0, 0), quadAt(10, 0, 0), quadAt(0, 10, 0))
	parts := Split(m)

	assert.Equal(t, 3, len(parts))
	for _, p := range parts {
		assert.Equal(t, 4, p.VertexCount())
		assert.Equal(t, 2, p.FaceCount())
	}
}

func TestSplitOrderFollowsFirstFace(t *testing.T) {
	m := merge(quadAt(10, 0, 0), quadAt(0, 0, 0))
	parts := Split(m)

	assert.Equal(t, 2, len(parts))
	assert.Equal(t, float32(10), parts[0].Vertices[0][0])
	assert.Equal(t, float32(0), parts[1].Vertices[0][0])
}

func TestSplitWeldsDuplicatePositions(t *testing.T) {
	// two triangles sharing an edge, stored with duplicated vertices
	m := &TriangleMesh{
		Vertices: []vec3.T{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
			{1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
		Faces: [][3]uint32{{0, 1, 2}, {3, 4, 5}},
	}
	parts := Split(m)

	assert.Equal(t, 1, len(parts))
	assert.Equal(t, 2, parts[0].FaceCount())
}

func TestSplitEmptyMesh(t *testing.T) {
	assert.Empty(t, Split(&TriangleMesh{}))
}

func TestComputeNormalsFlatTriangle(t *testing.T) {
	m := &TriangleMesh{
		Vertices: []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    [][3]uint32{{0, 1, 2}},
	}
	n := ComputeNormals(m)

	assert.Equal(t, 3, len(n.Normals))
	for _, nv := range n.Normals {
		assert.InDelta(t, 0, nv[0], 1e-6)
		assert.InDelta(t, 0, nv[1], 1e-6)
		assert.InDelta(t, 1, nv[2], 1e-6)
	}
}

func TestBoundsAndVolume(t *testing.T) {
	m := &TriangleMesh{
		Vertices: []vec3.T{{-1, -2, -3}, {1, 2, 3}},
	}
	b := m.Bounds()

	assert.Equal(t, float64(-1), b.Min[0])
	assert.Equal(t, float64(3), b.Max[2])
	assert.InDelta(t, 48, BoxVolume(b), 1e-9)
	assert.Equal(t, vec3d.T{0, 0, 0}, BoxCenter(b))
}

func TestMeshRoundTrip(t *testing.T) {
	m := ComputeNormals(quadAt(0, 0, 0))
	mh := m.Mesh([3]byte{10, 20, 30})

	assert.Equal(t, 1, len(mh.Nodes))
	assert.Equal(t, 1, len(mh.Materials))

	back := FromMST(mh)
	assert.Equal(t, m.VertexCount(), back.VertexCount())
	assert.Equal(t, m.FaceCount(), back.FaceCount())
	assert.Equal(t, m.Vertices, back.Vertices)
}

func TestFromMSTSkipsPartialNormals(t *testing.T) {
	nd := &mst.MeshNode{
		Vertices: []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	}
	nd.FaceGroup = append(nd.FaceGroup, &mst.MeshTriangle{
		Faces: []*mst.Face{{Vertex: [3]uint32{0, 1, 2}}},
	})
	mh := mst.NewMesh()
	mh.Nodes = append(mh.Nodes, nd)

	back := FromMST(mh)
	assert.Equal(t, 3, back.VertexCount())
	assert.Empty(t, back.Normals)
}

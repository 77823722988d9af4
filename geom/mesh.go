package geom

import (
	mst "github.com/flywave/go-mst"
	dmat "github.com/flywave/go3d/float64/mat4"
	vec3d "github.com/flywave/go3d/float64/vec3"
	vec3 "github.com/flywave/go3d/vec3"
)

// TriangleMesh is an indexed triangle surface. It is produced by a loader
// and treated as read-only afterwards; derived meshes are new values.
type TriangleMesh struct {
	Vertices []vec3.T
	Normals  []vec3.T
	Faces    [][3]uint32
}

func (m *TriangleMesh) FaceCount() int {
	return len(m.Faces)
}

func (m *TriangleMesh) VertexCount() int {
	return len(m.Vertices)
}

// Bounds accumulates the axis-aligned box of all vertices.
func (m *TriangleMesh) Bounds() vec3d.Box {
	bbox := vec3d.MinBox
	for i := range m.Vertices {
		v := &m.Vertices[i]
		p := vec3d.T{float64(v[0]), float64(v[1]), float64(v[2])}
		bbox.Extend(&p)
	}
	return bbox
}

func (m *TriangleMesh) Center() vec3d.T {
	return BoxCenter(m.Bounds())
}

func BoxCenter(b vec3d.Box) vec3d.T {
	return vec3d.T{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// BoxVolume is the product of the three box extents.
func BoxVolume(b vec3d.Box) float64 {
	return (b.Max[0] - b.Min[0]) * (b.Max[1] - b.Min[1]) * (b.Max[2] - b.Min[2])
}

// MeshNode converts the mesh into a single-material mst node.
func (m *TriangleMesh) MeshNode() *mst.MeshNode {
	nd := &mst.MeshNode{}
	nd.Vertices = append(nd.Vertices, m.Vertices...)
	if len(m.Normals) == len(m.Vertices) {
		nd.Normals = append(nd.Normals, m.Normals...)
	}
	fg := &mst.MeshTriangle{Batchid: 0}
	for _, f := range m.Faces {
		fg.Faces = append(fg.Faces, &mst.Face{Vertex: f})
	}
	nd.FaceGroup = append(nd.FaceGroup, fg)
	if len(nd.Normals) == 0 {
		nd.ReComputeNormal()
	}
	return nd
}

// Mesh wraps the node into an mst mesh with one base material.
func (m *TriangleMesh) Mesh(color [3]byte) *mst.Mesh {
	mh := mst.NewMesh()
	mh.Materials = append(mh.Materials, &mst.BaseMaterial{Color: color})
	mh.Nodes = append(mh.Nodes, m.MeshNode())
	return mh
}

// FromMST flattens an mst mesh, instance nodes included, into one triangle soup.
// Normals are carried only when every node provides them.
func FromMST(mh *mst.Mesh) *TriangleMesh {
	type flatNode struct {
		nd *mst.MeshNode
		tf *dmat.T
	}
	var nodes []flatNode
	for _, nd := range mh.Nodes {
		nodes = append(nodes, flatNode{nd: nd})
	}
	for _, inst := range mh.InstanceNode {
		for _, tf := range inst.Transfors {
			for _, nd := range inst.Mesh.Nodes {
				nodes = append(nodes, flatNode{nd: nd, tf: tf})
			}
		}
	}
	withNormals := true
	for _, fn := range nodes {
		// transformed instances would need their normals rotated; recompute instead
		if fn.tf != nil || len(fn.nd.Normals) != len(fn.nd.Vertices) {
			withNormals = false
			break
		}
	}
	out := &TriangleMesh{}
	for _, fn := range nodes {
		appendNode(out, fn.nd, fn.tf, withNormals)
	}
	return out
}

func appendNode(out *TriangleMesh, nd *mst.MeshNode, tf *dmat.T, withNormals bool) {
	base := uint32(len(out.Vertices))
	for i, v := range nd.Vertices {
		if tf != nil {
			dv := vec3d.T{float64(v[0]), float64(v[1]), float64(v[2])}
			dv = tf.MulVec3(&dv)
			v = vec3.T{float32(dv[0]), float32(dv[1]), float32(dv[2])}
		}
		out.Vertices = append(out.Vertices, v)
		if withNormals {
			out.Normals = append(out.Normals, nd.Normals[i])
		}
	}
	for _, fg := range nd.FaceGroup {
		for _, f := range fg.Faces {
			out.Faces = append(out.Faces, [3]uint32{
				f.Vertex[0] + base, f.Vertex[1] + base, f.Vertex[2] + base,
			})
		}
	}
}

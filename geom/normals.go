package geom

import (
	vec3 "github.com/flywave/go3d/vec3"
)

// ComputeNormals returns a copy of m with area-weighted per-vertex normals.
// Cross products are accumulated unnormalized so larger faces weigh more.
func ComputeNormals(m *TriangleMesh) *TriangleMesh {
	acc := make([]vec3.T, len(m.Vertices))
	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]]
		v1 := m.Vertices[f[1]]
		v2 := m.Vertices[f[2]]
		e1 := vec3.Sub(&v1, &v0)
		e2 := vec3.Sub(&v2, &v0)
		n := vec3.Cross(&e1, &e2)
		for _, vi := range f {
			a := &acc[vi]
			acc[vi] = vec3.Add(a, &n)
		}
	}
	for i := range acc {
		if acc[i].Length() > 0 {
			acc[i].Normalize()
		}
	}
	out := &TriangleMesh{
		Vertices: m.Vertices,
		Normals:  acc,
		Faces:    m.Faces,
	}
	return out
}

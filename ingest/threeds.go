package ingest

import (
	tds "github.com/flywave/go-3ds"
	dmat "github.com/flywave/go3d/float64/mat4"
	quat "github.com/flywave/go3d/float64/quaternion"
	dvec3 "github.com/flywave/go3d/float64/vec3"
	dvec4 "github.com/flywave/go3d/float64/vec4"
	vec3 "github.com/flywave/go3d/vec3"

	"github.com/flywave/go-simscene/geom"
)

type ThreeDsReader struct{}

func (rd *ThreeDsReader) Read(path string) (*geom.TriangleMesh, error) {
	f := tds.OpenFile(path)
	mhs := f.GetMeshs()

	ndMap := make(map[string][]*tds.MeshInstanceNode)
	for _, nd := range f.GetMeshInstanceNode() {
		ndMap[nd.InstanceName] = append(ndMap[nd.InstanceName], nd)
	}

	out := &geom.TriangleMesh{}
	for i := range mhs {
		m := &mhs[i]
		insts := ndMap[m.Name]
		if len(insts) == 0 {
			append3dsMesh(out, m, nil)
			continue
		}
		for _, nd := range insts {
			append3dsMesh(out, m, instanceMat(nd))
		}
	}
	return out, nil
}

func append3dsMesh(out *geom.TriangleMesh, m *tds.Mesh, inst *dmat.T) {
	mat := dmat.Ident
	for i, row := range m.Matrix {
		mat[i] = dvec4.T{float64(row[0]), float64(row[1]), float64(row[2]), float64(row[3])}
	}

	base := uint32(len(out.Vertices))
	for _, v := range m.Vertices {
		vt := dvec3.T{float64(v[0]), float64(v[1]), float64(v[2])}
		vt = mat.MulVec3(&vt)
		if inst != nil {
			vt = inst.MulVec3(&vt)
		}
		out.Vertices = append(out.Vertices, vec3.T{float32(vt[0]), float32(vt[1]), float32(vt[2])})
	}
	for _, f := range m.Faces {
		out.Faces = append(out.Faces, [3]uint32{
			base + uint32(f.Index[0]), base + uint32(f.Index[1]), base + uint32(f.Index[2]),
		})
	}
}

func instanceMat(nd *tds.MeshInstanceNode) *dmat.T {
	m := &dmat.T{}
	q := quat.FromVec4(&dvec4.T{float64(nd.Rot[0]), float64(nd.Rot[1]), float64(nd.Rot[2]), float64(nd.Rot[3])})
	t := &dvec3.T{float64(nd.Pos[0]), float64(nd.Pos[1]), float64(nd.Pos[2])}
	s := &dvec3.T{float64(nd.Scl[0]), float64(nd.Scl[1]), float64(nd.Scl[2])}
	m.AssignQuaternion(&q)
	m.ScaleVec3(s)
	m.Translate(t)
	return m
}

var _ Reader = (*ThreeDsReader)(nil)

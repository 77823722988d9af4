package ingest

import (
	stl "github.com/flywave/go-stl"
	vec3 "github.com/flywave/go3d/vec3"

	"github.com/flywave/go-simscene/geom"
)

// StlReader 读取STL文件并展开为三角网格
type StlReader struct{}

func (rd *StlReader) Read(path string) (*geom.TriangleMesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fromSolid(solid), nil
}

// fromSolid STL三角形自带法线，逐面展开顶点
func fromSolid(solid *stl.Solid) *geom.TriangleMesh {
	m := &geom.TriangleMesh{}
	for _, tri := range solid.Triangles {
		base := uint32(len(m.Vertices))
		for _, v := range tri.Vertices {
			m.Vertices = append(m.Vertices, v)
			m.Normals = append(m.Normals, tri.Normal)
		}
		m.Faces = append(m.Faces, [3]uint32{base, base + 1, base + 2})
	}
	if degenerateNormals(m.Normals) {
		m.Normals = nil
	}
	return m
}

func degenerateNormals(normals []vec3.T) bool {
	for i := range normals {
		if normals[i].Length() > 0 {
			return false
		}
	}
	return true
}

var _ Reader = (*StlReader)(nil)

package ingest

import (
	"os"

	gobj "github.com/flywave/go-obj"
	vec3 "github.com/flywave/go3d/vec3"

	"github.com/flywave/go-simscene/geom"
)

type ObjReader struct{}

func (rd *ObjReader) Read(path string) (*geom.TriangleMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := &gobj.ObjReader{}
	if err := reader.Read(file); err != nil {
		return nil, err
	}

	m := &geom.TriangleMesh{}

	// Process all faces, material grouping flattened away
	for _, face := range reader.F {
		if len(face.Corners) < 3 {
			continue
		}
		for _, tri := range triangulateFace(face) {
			appendObjTriangle(m, tri, reader)
		}
	}
	return m, nil
}

// Simple fan triangulation for convex polygons
func triangulateFace(face gobj.Face) [][]gobj.FaceCorner {
	if len(face.Corners) == 3 {
		return [][]gobj.FaceCorner{face.Corners}
	}
	var triangles [][]gobj.FaceCorner
	for i := 1; i < len(face.Corners)-1; i++ {
		triangles = append(triangles, []gobj.FaceCorner{
			face.Corners[0], face.Corners[i], face.Corners[i+1],
		})
	}
	return triangles
}

func appendObjTriangle(m *geom.TriangleMesh, triangle []gobj.FaceCorner, reader *gobj.ObjReader) {
	if len(triangle) != 3 {
		return
	}

	var positions [3]vec3.T
	var normals [3]vec3.T

	for i, corner := range triangle {
		if corner.VertexIndex >= 0 && corner.VertexIndex < len(reader.V) {
			positions[i] = reader.V[corner.VertexIndex]
		}
	}
	for i, corner := range triangle {
		if corner.NormalIndex >= 0 && corner.NormalIndex < len(reader.VN) {
			normals[i] = reader.VN[corner.NormalIndex]
		} else {
			// Fall back to the flat normal
			normals[i] = flatNormal(positions[0], positions[1], positions[2])
		}
	}

	base := uint32(len(m.Vertices))
	for i := 0; i < 3; i++ {
		m.Vertices = append(m.Vertices, positions[i])
		m.Normals = append(m.Normals, normals[i])
	}
	m.Faces = append(m.Faces, [3]uint32{base, base + 1, base + 2})
}

func flatNormal(v0, v1, v2 vec3.T) vec3.T {
	e1 := vec3.Sub(&v1, &v0)
	e2 := vec3.Sub(&v2, &v0)
	normal := vec3.Cross(&e1, &e2)
	if l := normal.Length(); l > 0 {
		return vec3.T{normal[0] / l, normal[1] / l, normal[2] / l}
	}
	return vec3.T{0, 1, 0}
}

var _ Reader = (*ObjReader)(nil)

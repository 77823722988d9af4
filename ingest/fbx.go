package ingest

import (
	"math"
	"os"

	mat4d "github.com/flywave/go3d/float64/mat4"
	vec3d "github.com/flywave/go3d/float64/vec3"
	vec3 "github.com/flywave/go3d/vec3"

	fbx "github.com/flywave/ofbx"

	"github.com/flywave/go-simscene/geom"
)

type FbxReader struct{}

func (rd *FbxReader) Read(path string) (*geom.TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scene, err := fbx.Load(f)
	if err != nil {
		return nil, err
	}

	out := &geom.TriangleMesh{}
	for _, mh := range scene.Meshes {
		appendFbxMesh(out, mh)
	}
	return out, nil
}

func appendFbxMesh(out *geom.TriangleMesh, mh *fbx.Mesh) {
	g := mh.Geometry
	mtx := fbx.GetGlobalMatrix(mh)
	matrix := mat4d.FromArray(mtx.ToArray())

	for _, face := range g.Faces {
		newFaces := [][]int{face}
		switch len(face) {
		case 3:
		case 4:
			pts := []*vec3d.T{}
			for _, f := range face {
				v := g.Vertices[f]
				pts = append(pts, &vec3d.T{float64(v[0]), float64(v[1]), float64(v[2])})
			}
			newFaces = quadToTriangles(face, pts)
		case 5:
			newFaces = pentagonToTriangles(face)
		default:
			continue
		}

		for _, fc := range newFaces {
			base := uint32(len(out.Vertices))
			for _, f := range fc {
				vt := g.Vertices[f]
				dvt := matrix.MulVec3(&vec3d.T{float64(vt[0]), float64(vt[1]), float64(vt[2])})
				out.Vertices = append(out.Vertices, vec3.T{float32(dvt[0]), float32(dvt[1]), float32(dvt[2])})
			}
			out.Faces = append(out.Faces, [3]uint32{base, base + 1, base + 2})
		}
	}
}

func pentagonToTriangles(pent []int) [][]int {
	return [][]int{
		{pent[0], pent[1], pent[2]}, // 三角形1
		{pent[0], pent[2], pent[4]}, // 三角形2
		{pent[2], pent[3], pent[4]}, // 三角形3
	}
}

// 按较短对角线切分四边形
func quadToTriangles(quad []int, vertices []*vec3d.T) [][]int {
	p0, p1, p2, p3 := vertices[0], vertices[1], vertices[2], vertices[3]

	diag1 := distance(p0, p2)
	diag2 := distance(p1, p3)

	if diag1 <= diag2 {
		return [][]int{
			{quad[0], quad[1], quad[2]},
			{quad[0], quad[2], quad[3]},
		}
	}
	return [][]int{
		{quad[0], quad[1], quad[3]},
		{quad[1], quad[2], quad[3]},
	}
}

func distance(a, b *vec3d.T) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

var _ Reader = (*FbxReader)(nil)

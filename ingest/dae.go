package ingest

import (
	"os"
	"strconv"
	"strings"

	dae "github.com/flywave/go-collada"
	dmat "github.com/flywave/go3d/float64/mat4"
	dvec3 "github.com/flywave/go3d/float64/vec3"
	dvec4 "github.com/flywave/go3d/float64/vec4"
	vec3 "github.com/flywave/go3d/vec3"

	"github.com/flywave/go-simscene/geom"
)

type DaeReader struct{}

func (rd *DaeReader) Read(path string) (*geom.TriangleMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	collada, err := dae.LoadDocumentFromReader(file)
	if err != nil {
		return nil, err
	}

	geoMap := make(map[string]*dae.Geometry)
	for _, g := range collada.LibraryGeometries {
		for _, geo := range g.Geometry {
			geoMap[string(geo.Id)] = geo
		}
	}

	out := &geom.TriangleMesh{}
	instanced := make(map[string]bool)

	for _, sce := range collada.LibraryVisualScenes {
		for _, vs := range sce.VisualScene {
			for _, nd := range vs.Node {
				for _, instNd := range nd.InstanceNode {
					ndId := instNd.Url.GetId()
					for _, vs2 := range sce.VisualScene {
						for _, nd2 := range vs2.Node {
							if string(nd2.Id) != ndId {
								continue
							}
							defMats := getNodeTransform(nd2)
							refMats := getNodeTransform(nd)
							for i, g := range nd2.InstanceGeometry {
								geoId := g.Url.GetId()
								instanced[geoId] = true
								def := matAt(defMats, i)
								if len(refMats) == 0 {
									appendDaeGeometry(out, geoMap[geoId], def)
									continue
								}
								for _, rm := range refMats {
									appendDaeGeometry(out, geoMap[geoId], mulMat(rm, def))
								}
							}
						}
					}
				}
			}
		}
	}

	for _, sce := range collada.LibraryVisualScenes {
		for _, vs := range sce.VisualScene {
			for _, nd := range vs.Node {
				mats := getNodeTransform(nd)
				for i, g := range nd.InstanceGeometry {
					geoId := g.Url.GetId()
					if instanced[geoId] {
						continue
					}
					appendDaeGeometry(out, geoMap[geoId], matAt(mats, i))
				}
			}
		}
	}
	return out, nil
}

func matAt(mats []*dmat.T, i int) *dmat.T {
	if i < len(mats) {
		return mats[i]
	}
	if len(mats) > 0 {
		return mats[0]
	}
	return nil
}

func mulMat(a, b *dmat.T) *dmat.T {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	m := dmat.Ident
	m.AssignMul(a, b)
	return &m
}

// appendDaeGeometry expands every face corner into its own vertex, the
// face indices in the document address the position source directly.
func appendDaeGeometry(out *geom.TriangleMesh, geo *dae.Geometry, mat *dmat.T) {
	if geo == nil {
		return
	}
	mh := geo.Mesh

	srcMap := make(map[string]*dae.Source)
	for _, src := range mh.Source {
		srcMap[string(src.Id)] = src
	}

	var corners [][3]int
	if len(mh.Polylist) > 0 {
		for _, p := range mh.Polylist {
			corners = append(corners, polylistCorners(p)...)
		}
	} else {
		var tgs []dae.Trig
		if mh.Triangles != nil {
			for _, t := range mh.Triangles {
				tgs = append(tgs, t)
			}
		} else if mh.Trifans != nil {
			for _, t := range mh.Trifans {
				tgs = append(tgs, t)
			}
		} else if mh.Tristrips != nil {
			for _, t := range mh.Tristrips {
				tgs = append(tgs, t)
			}
		}
		for _, t := range tgs {
			corners = append(corners, trigCorners(t)...)
		}
	}
	if len(corners) == 0 {
		return
	}

	var posSrc *dae.Source
	for _, input := range mh.Vertices.Input {
		if input.Semantic == "POSITION" {
			posSrc = srcMap[input.Source.GetId()]
		}
	}
	if posSrc == nil {
		return
	}
	ay := posSrc.FloatArray.ToSlice()
	stride := posSrc.TechniqueCommon.Accessor.Stride

	for _, tri := range corners {
		base := uint32(len(out.Vertices))
		for _, idx := range tri {
			vt := dvec3.T{}
			vt[0], _ = strconv.ParseFloat(ay[idx*stride], 64)
			vt[1], _ = strconv.ParseFloat(ay[idx*stride+1], 64)
			vt[2], _ = strconv.ParseFloat(ay[idx*stride+2], 64)
			if mat != nil {
				vt = mat.MulVec3(&vt)
			}
			out.Vertices = append(out.Vertices, vec3.T{float32(vt[0]), float32(vt[1]), float32(vt[2])})
		}
		out.Faces = append(out.Faces, [3]uint32{base, base + 1, base + 2})
	}
}

func polylistCorners(plist *dae.Polylist) [][3]int {
	var input *dae.InputShared
	for _, input = range plist.Input {
		if input.Semantic == "VERTEX" {
			break
		}
	}
	offset := input.Offset
	fc := plist.VCount.ToSlice()
	idxs := plist.P.ToSlice()
	inputCount := len(plist.Input)

	var tris [][3]int
	j := 0
	for i := 0; i < len(fc); i++ {
		count, _ := strconv.ParseInt(fc[i], 10, 32)
		fs := make([]int, count)
		for k := 0; k < int(count); k++ {
			v, _ := strconv.ParseInt(idxs[j+int(offset)], 10, 32)
			fs[k] = int(v)
			j += inputCount
		}
		// fan triangulation over the polygon corners
		for k := 1; k+1 < len(fs); k++ {
			tris = append(tris, [3]int{fs[0], fs[k], fs[k+1]})
		}
	}
	return tris
}

func trigCorners(trg dae.Trig) [][3]int {
	var input *dae.InputShared
	for _, input = range trg.GetSharedInput() {
		if input.Semantic == "VERTEX" {
			break
		}
	}
	offset := input.Offset
	idxs := trg.GetP().ToSlice()
	inputCount := len(trg.GetSharedInput())
	count := trg.GetCount()

	var tris [][3]int
	for k := 0; k < int(count); k++ {
		var f [3]int
		index := k * inputCount * 3
		for c := 0; c < 3; c++ {
			v, _ := strconv.ParseInt(idxs[index+int(offset)], 10, 32)
			f[c] = int(v)
			index += inputCount
		}
		tris = append(tris, f)
	}
	return tris
}

func getNodeTransform(nd *dae.Node) []*dmat.T {
	var mats []*dmat.T
	if len(nd.Matrix) > 0 {
		var ay [16]float64
		for _, m := range nd.Matrix {
			vs := m.ToSlice()
			for i, str := range vs {
				if i > 15 {
					break
				}
				s := strings.Trim(str, " ")
				ay[i], _ = strconv.ParseFloat(s, 64)
			}
			mat := arrayToMat(ay)
			mat = mat.Transpose()
			mats = append(mats, mat)
		}
		return mats
	}

	mt := &dmat.T{}
	for _, t := range nd.Rotate {
		vs := t.ToSlice()
		v := &dvec4.T{}
		for i, str := range vs {
			if i > 3 {
				break
			}
			s := strings.Trim(str, " ")
			v[i], _ = strconv.ParseFloat(s, 64)
		}
		if t.Sid == "rotationX" {
			mt.AssignXRotation(v[3])
		}
		if t.Sid == "rotationY" {
			mt.AssignYRotation(v[3])
		}
		if t.Sid == "rotationZ" {
			mt.AssignZRotation(v[3])
		}
	}
	scale := &dvec3.T{1, 1, 1}
	if len(nd.Scale) > 0 {
		vs := nd.Scale[0].ToSlice()
		for i, str := range vs {
			if i > 2 {
				break
			}
			st := strings.Trim(str, " ")
			scale[i], _ = strconv.ParseFloat(st, 64)
		}
	}
	mt.ScaleVec3(scale)
	for _, t := range nd.Translate {
		m := *mt
		vs := t.ToSlice()
		v := &dvec3.T{}
		for i, str := range vs {
			if i > 2 {
				break
			}
			s := strings.Trim(str, " ")
			v[i], _ = strconv.ParseFloat(s, 64)
		}
		m.Translate(v)
		mats = append(mats, &m)
	}
	return mats
}

func arrayToMat(mat [16]float64) *dmat.T {
	m := &dmat.T{}
	m[0] = dvec4.T{mat[0], mat[1], mat[2], mat[3]}
	m[1] = dvec4.T{mat[4], mat[5], mat[6], mat[7]}
	m[2] = dvec4.T{mat[8], mat[9], mat[10], mat[11]}
	m[3] = dvec4.T{mat[12], mat[13], mat[14], mat[15]}
	return m
}

var _ Reader = (*DaeReader)(nil)

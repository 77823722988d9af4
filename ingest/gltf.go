package ingest

import (
	"bytes"
	"encoding/binary"

	dmat "github.com/flywave/go3d/float64/mat4"
	"github.com/flywave/go3d/float64/quaternion"
	dvec3 "github.com/flywave/go3d/float64/vec3"
	vec3 "github.com/flywave/go3d/vec3"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/flywave/go-simscene/geom"
)

type GltfReader struct {
	doc       *gltf.Document
	parentMap map[uint32]uint32
}

func (g *GltfReader) Read(path string) (*geom.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	g.doc = doc
	g.parentMap = make(map[uint32]uint32)
	if len(doc.Scenes) > 0 {
		g.collectParents(doc.Scenes[0].Nodes)
	}

	out := &geom.TriangleMesh{}
	for i, nd := range doc.Nodes {
		if nd.Mesh == nil {
			continue
		}
		mat := g.nodeMatrix(uint32(i), nd)
		if err := g.appendMesh(out, *nd.Mesh, mat); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *GltfReader) collectParents(nds []uint32) {
	for _, n := range nds {
		nd := g.doc.Nodes[n]
		if len(nd.Children) == 0 {
			continue
		}
		for _, cn := range nd.Children {
			g.parentMap[cn] = n
		}
		g.collectParents(nd.Children)
	}
}

func (g *GltfReader) nodeMatrix(idx uint32, nd *gltf.Node) *dmat.T {
	mat := dmat.Ident
	if pid, ok := g.parentMap[idx]; ok {
		mat = *g.nodeMatrix(pid, g.doc.Nodes[pid])
	}
	sc := dvec3.T{float64(nd.Scale[0]), float64(nd.Scale[1]), float64(nd.Scale[2])}
	tra := dvec3.T{float64(nd.Translation[0]), float64(nd.Translation[1]), float64(nd.Translation[2])}
	rot := quaternion.T{float64(nd.Rotation[0]), float64(nd.Rotation[1]), float64(nd.Rotation[2]), float64(nd.Rotation[3])}
	mt := dmat.Compose(&tra, &rot, &sc)
	mat2 := dmat.Ident
	mat2.AssignMul(&mat, mt)
	return &mat2
}

func (g *GltfReader) appendMesh(out *geom.TriangleMesh, mhid uint32, mat *dmat.T) error {
	doc := g.doc
	mh := doc.Meshes[mhid]
	ident := mat == nil || *mat == dmat.Ident

	for _, ps := range mh.Primitives {
		if ps.Indices == nil {
			continue
		}
		base := uint32(len(out.Vertices))

		var fv []uint32
		err := readDataByAccessor(doc, doc.Accessors[int(*ps.Indices)], func(res interface{}) {
			switch fcs := res.(type) {
			case *uint16:
				fv = append(fv, uint32(*fcs))
			case *uint32:
				fv = append(fv, *fcs)
			}
		})
		if err != nil {
			return err
		}

		idx, ok := ps.Attributes["POSITION"]
		if !ok {
			continue
		}
		err = readDataByAccessor(doc, doc.Accessors[idx], func(res interface{}) {
			v := (*vec3.T)(res.(*[3]float32))
			if !ident {
				dv := dvec3.T{float64(v[0]), float64(v[1]), float64(v[2])}
				dv = mat.MulVec3(&dv)
				v = &vec3.T{float32(dv[0]), float32(dv[1]), float32(dv[2])}
			}
			out.Vertices = append(out.Vertices, *v)
		})
		if err != nil {
			return err
		}

		if nidx, ok := ps.Attributes["NORMAL"]; ok && ident {
			err = readDataByAccessor(doc, doc.Accessors[nidx], func(res interface{}) {
				v := (*vec3.T)(res.(*[3]float32))
				out.Normals = append(out.Normals, *v)
			})
			if err != nil {
				return err
			}
		}

		for i := 0; i+2 < len(fv); i += 3 {
			out.Faces = append(out.Faces, [3]uint32{
				base + fv[i], base + fv[i+1], base + fv[i+2],
			})
		}
	}
	if len(out.Normals) != len(out.Vertices) {
		out.Normals = nil
	}
	return nil
}

func readDataByAccessor(doc *gltf.Document, acc *gltf.Accessor, process func(interface{})) error {
	if acc.BufferView == nil {
		return errors.New("accessor without buffer view")
	}
	bv := doc.BufferViews[*acc.BufferView]
	buffer := doc.Buffers[bv.Buffer]
	bf := bytes.NewBuffer(buffer.Data[int(bv.ByteOffset+acc.ByteOffset):int(bv.ByteOffset+bv.ByteLength)])

	var fcs interface{}
	switch acc.Type {
	case gltf.AccessorVec2:
		switch acc.ComponentType {
		case gltf.ComponentUshort:
			fcs = &[2]uint16{}
		case gltf.ComponentUint:
			fcs = &[2]uint32{}
		case gltf.ComponentFloat:
			fcs = &[2]float32{}
		}
	case gltf.AccessorVec3:
		switch acc.ComponentType {
		case gltf.ComponentUshort:
			fcs = &[3]uint16{}
		case gltf.ComponentUint:
			fcs = &[3]uint32{}
		case gltf.ComponentFloat:
			fcs = &[3]float32{}
		}
	case gltf.AccessorVec4:
		switch acc.ComponentType {
		case gltf.ComponentUshort:
			fcs = &[4]uint16{}
		case gltf.ComponentUint:
			fcs = &[4]uint32{}
		case gltf.ComponentFloat:
			fcs = &[4]float32{}
		}
	case gltf.AccessorScalar:
		switch acc.ComponentType {
		case gltf.ComponentUshort:
			n := uint16(0)
			fcs = &n
		case gltf.ComponentUint:
			n := uint32(0)
			fcs = &n
		case gltf.ComponentFloat:
			n := float32(0)
			fcs = &n
		}
	}
	if fcs == nil {
		return errors.New("unsupported accessor layout")
	}

	for i := 0; i < int(acc.Count); i++ {
		if err := binary.Read(bf, binary.LittleEndian, fcs); err != nil {
			return err
		}
		process(fcs)
	}
	return nil
}

var _ Reader = (*GltfReader)(nil)

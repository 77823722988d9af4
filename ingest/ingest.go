package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/flywave/go-simscene/geom"
)

const (
	STL     = ".stl"
	OBJ     = ".obj"
	GLTF    = ".gltf"
	GLB     = ".glb"
	THREEDS = ".3ds"
	DAE     = ".dae"
	FBX     = ".fbx"
	RVM     = ".rvm"
	TBIN    = ".3js"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
	ErrEmptyGeometry     = errors.New("mesh has no faces")
)

// Reader parses one surface-mesh file into a flat triangle soup.
// Materials, textures and instancing are resolved or dropped; node
// transforms are applied.
type Reader interface {
	Read(path string) (*geom.TriangleMesh, error)
}

func ForFormat(format string) Reader {
	switch strings.ToLower(format) {
	case THREEDS:
		return &ThreeDsReader{}
	case DAE:
		return &DaeReader{}
	case FBX:
		return &FbxReader{}
	case GLTF, GLB:
		return &GltfReader{}
	case OBJ:
		return &ObjReader{}
	case TBIN:
		return &ThreejsBinReader{}
	case STL:
		return &StlReader{}
	case RVM:
		return &RvmReader{}
	}
	return nil
}

func ForPath(path string) (Reader, error) {
	ext := filepath.Ext(path)
	rd := ForFormat(ext)
	if rd == nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "no reader for %q", ext)
	}
	return rd, nil
}

// Load dispatches on the file extension and rejects faceless results.
// It never touches any state outside the returned mesh.
func Load(path string) (*geom.TriangleMesh, error) {
	rd, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	m, err := rd.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if m == nil || m.FaceCount() == 0 {
		return nil, errors.Wrapf(ErrEmptyGeometry, "load %s", path)
	}
	return m, nil
}

// Decompose loads a mesh, recomputes its normals and splits it into
// connected bodies, in that order.
func Decompose(path string) ([]*geom.TriangleMesh, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	m = geom.ComputeNormals(m)
	return geom.Split(m), nil
}

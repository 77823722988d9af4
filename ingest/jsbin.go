package ingest

import (
	jsbin "github.com/flywave/go-3jsbin"

	"github.com/flywave/go-simscene/geom"
)

type ThreejsBinReader struct{}

func (rd *ThreejsBinReader) Read(path string) (*geom.TriangleMesh, error) {
	mh, err := jsbin.ThreejsBin2Mst(path)
	if err != nil {
		return nil, err
	}
	return geom.FromMST(mh), nil
}

var _ Reader = (*ThreejsBinReader)(nil)

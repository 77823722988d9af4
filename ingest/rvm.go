package ingest

import (
	rvm "github.com/flywave/go-rvm"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/flywave/go-simscene/geom"
)

// RvmReader AVEVA RVM文件读取器
type RvmReader struct {
	Log *zap.Logger
}

func (rd *RvmReader) Read(path string) (*geom.TriangleMesh, error) {
	log := rd.Log
	if log == nil {
		log = zap.NewNop()
	}
	sugar := log.Sugar()
	logger := func(level int, format string, args ...interface{}) {
		switch level {
		case 2:
			sugar.Errorf(format, args...)
		case 1:
			sugar.Warnf(format, args...)
		default:
			sugar.Debugf(format, args...)
		}
	}

	store := rvm.NewStore()
	parsed, err := rvm.ParseFile(store, logger, path)
	if err != nil {
		return nil, err
	}
	if !parsed {
		return nil, errors.Errorf("unrecognized rvm file %s", path)
	}

	// 连接、对齐后细分（默认容差）
	rvm.Connect(store, logger, true)
	rvm.Align(store, logger)
	tessellator := rvm.NewTessellator(logger, 0.1, -1, -1, 100)
	store.Apply(tessellator)

	exporter := rvm.NewExportMST(logger)
	exporter.SetCenterModel(false)
	exporter.SetRotateZToY(false)
	exporter.SetIncludeAttributes(false)
	exporter.SetMergeGeometries(false)
	exporter.SetAnchors(true)
	exporter.SetPrimitiveBoundingBoxes(true)
	exporter.Init(store)
	store.Apply(exporter)

	return geom.FromMST(exporter.GetMesh()), nil
}

var _ Reader = (*RvmReader)(nil)

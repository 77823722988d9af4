// Package render defines the surface a scene draws into. The core never
// inspects a surface beyond the bounding boxes of the handles it returns.
package render

import (
	mst "github.com/flywave/go-mst"
	vec3d "github.com/flywave/go3d/float64/vec3"
)

// Style carries the few presentation knobs the scene layer sets.
type Style struct {
	Color   [3]float64
	Diffuse float64
	Ambient float64
}

// Handle is an opaque reference to geometry owned by a surface.
type Handle interface {
	Bounds() vec3d.Box
}

// Widget is an interactive transform control bound to one handle.
type Widget interface {
	Remove()
}

type Surface interface {
	AddGeometry(mesh *mst.Mesh, style Style) (Handle, error)
	RemoveGeometry(h Handle)
	AddTransformWidget(h Handle) (Widget, error)
	ResetCamera()
	SetFocus(p vec3d.T)
	Close() error
}

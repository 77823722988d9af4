package scene

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/flywave/go-simscene/geom"
	"github.com/flywave/go-simscene/render"
)

// Viewport drives one render surface. It tracks the handles it created and
// enforces the transform-widget singleton: at most one manipulator exists,
// and focusing a new object releases the old widget first.
type Viewport struct {
	surface render.Surface
	log     *zap.Logger

	handles  []render.Handle
	widget   render.Widget
	widgetOn render.Handle
	closed   bool
}

func NewViewport(surface render.Surface, log *zap.Logger) *Viewport {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewport{surface: surface, log: log}
}

// Render adds the object's geometry to the surface and stores the handle
// back on the object.
func (vp *Viewport) Render(obj *Object) error {
	style := render.Style{Color: obj.Color, Diffuse: 0.6, Ambient: 0.3}
	h, err := vp.surface.AddGeometry(obj.Geometry, style)
	if err != nil {
		return err
	}
	obj.Handle = h
	vp.handles = append(vp.handles, h)
	vp.log.Debug("object rendered", zap.Int("id", obj.ID), zap.String("label", obj.Label))
	return nil
}

// Remove drops a single handle from the surface. If the manipulator is
// bound to that handle it is released first.
func (vp *Viewport) Remove(h render.Handle) {
	if vp.closed || h == nil {
		return
	}
	if vp.widgetOn == h {
		vp.ReleaseManipulator()
	}
	for i, held := range vp.handles {
		if held == h {
			vp.handles = append(vp.handles[:i], vp.handles[i+1:]...)
			break
		}
	}
	vp.surface.RemoveGeometry(h)
}

// RemoveAll clears every handle this viewport created. The manipulator is
// released first, its target is about to go away.
func (vp *Viewport) RemoveAll() {
	if vp.closed {
		return
	}
	vp.ReleaseManipulator()
	for _, h := range vp.handles {
		vp.surface.RemoveGeometry(h)
	}
	vp.handles = nil
}

func (vp *Viewport) ResetCamera() {
	if vp.closed {
		return
	}
	vp.surface.ResetCamera()
}

// FocusManipulator attaches the transform widget to the object and moves
// the camera focus to the center of its bounds. Any widget bound to a
// previous object is removed before the new one is created.
func (vp *Viewport) FocusManipulator(obj *Object) error {
	if obj == nil || obj.Handle == nil {
		return errors.Wrap(ErrNotFound, "focus target has no render handle")
	}
	vp.ReleaseManipulator()
	w, err := vp.surface.AddTransformWidget(obj.Handle)
	if err != nil {
		return err
	}
	vp.widget = w
	vp.widgetOn = obj.Handle
	vp.surface.SetFocus(geom.BoxCenter(obj.Handle.Bounds()))
	vp.log.Debug("manipulator focused", zap.Int("id", obj.ID), zap.String("label", obj.Label))
	return nil
}

// ReleaseManipulator removes the transform widget if one exists.
func (vp *Viewport) ReleaseManipulator() {
	if vp.widget != nil {
		vp.widget.Remove()
		vp.widget = nil
		vp.widgetOn = nil
	}
}

func (vp *Viewport) HasManipulator() bool {
	return vp.widget != nil
}

// Close releases the widget and the surface. Calling it again is a no-op.
func (vp *Viewport) Close() error {
	if vp.closed {
		return nil
	}
	vp.ReleaseManipulator()
	vp.handles = nil
	vp.closed = true
	return vp.surface.Close()
}

package render

import (
	mst "github.com/flywave/go-mst"
	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/pkg/errors"

	"github.com/flywave/go-simscene/geom"
)

var (
	ErrClosed        = errors.New("render surface closed")
	ErrUnknownHandle = errors.New("handle not owned by surface")
)

// Offscreen is an in-process Surface. It retains what was added so tests
// and headless tools can inspect the scene state a real renderer would hold.
type Offscreen struct {
	handles []*OffscreenHandle
	widgets map[*offscreenWidget]*OffscreenHandle
	focus   vec3d.T
	resets  int
	closed  bool
}

type OffscreenHandle struct {
	mesh   *mst.Mesh
	style  Style
	bounds vec3d.Box
}

func (h *OffscreenHandle) Bounds() vec3d.Box { return h.bounds }
func (h *OffscreenHandle) Mesh() *mst.Mesh   { return h.mesh }
func (h *OffscreenHandle) Style() Style      { return h.style }

type offscreenWidget struct {
	surface *Offscreen
	target  *OffscreenHandle
}

func (w *offscreenWidget) Remove() {
	if w.surface == nil {
		return
	}
	delete(w.surface.widgets, w)
	w.surface = nil
}

func NewOffscreen() *Offscreen {
	return &Offscreen{widgets: make(map[*offscreenWidget]*OffscreenHandle)}
}

func (o *Offscreen) AddGeometry(mesh *mst.Mesh, style Style) (Handle, error) {
	if o.closed {
		return nil, ErrClosed
	}
	h := &OffscreenHandle{
		mesh:   mesh,
		style:  style,
		bounds: geom.FromMST(mesh).Bounds(),
	}
	o.handles = append(o.handles, h)
	return h, nil
}

func (o *Offscreen) RemoveGeometry(h Handle) {
	if o.closed {
		return
	}
	for i, held := range o.handles {
		if Handle(held) == h {
			o.handles = append(o.handles[:i], o.handles[i+1:]...)
			return
		}
	}
}

func (o *Offscreen) AddTransformWidget(h Handle) (Widget, error) {
	if o.closed {
		return nil, ErrClosed
	}
	oh, ok := h.(*OffscreenHandle)
	if !ok || !o.owns(oh) {
		return nil, ErrUnknownHandle
	}
	w := &offscreenWidget{surface: o, target: oh}
	o.widgets[w] = oh
	return w, nil
}

func (o *Offscreen) owns(h *OffscreenHandle) bool {
	for _, held := range o.handles {
		if held == h {
			return true
		}
	}
	return false
}

func (o *Offscreen) ResetCamera() {
	if o.closed {
		return
	}
	o.resets++
}

func (o *Offscreen) SetFocus(p vec3d.T) {
	if o.closed {
		return
	}
	o.focus = p
}

// Close is idempotent.
func (o *Offscreen) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	o.handles = nil
	o.widgets = make(map[*offscreenWidget]*OffscreenHandle)
	return nil
}

func (o *Offscreen) Handles() []*OffscreenHandle { return o.handles }
func (o *Offscreen) WidgetCount() int            { return len(o.widgets) }
func (o *Offscreen) Focus() vec3d.T              { return o.focus }
func (o *Offscreen) ResetCount() int             { return o.resets }
func (o *Offscreen) Closed() bool                { return o.closed }

// WidgetTarget reports the handle the single live widget is bound to,
// or nil when none exists.
func (o *Offscreen) WidgetTarget() *OffscreenHandle {
	for _, t := range o.widgets {
		return t
	}
	return nil
}

var _ Surface = (*Offscreen)(nil)

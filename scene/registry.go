package scene

import "github.com/pkg/errors"

// Registry owns the live object list. Ids are the slice positions and stay
// dense through every mutation; ReplaceAll and Remove renumber as needed.
type Registry struct {
	viewport *Viewport
	objects  []*Object
}

func NewRegistry(vp *Viewport) *Registry {
	return &Registry{viewport: vp}
}

// ReplaceAll renders the new batch, then releases the old one and installs
// the new list. A render failure rolls the partial batch back off the
// surface, so the prior scene stays fully intact.
func (rg *Registry) ReplaceAll(objs []*Object) error {
	for i, obj := range objs {
		obj.ID = i
		if err := rg.viewport.Render(obj); err != nil {
			for _, done := range objs[:i] {
				rg.viewport.Remove(done.Handle)
			}
			return errors.Wrapf(err, "render object %q", obj.Label)
		}
	}
	for _, old := range rg.objects {
		rg.viewport.Remove(old.Handle)
	}
	rg.objects = objs
	return nil
}

// Append renders one more object and gives it the next id.
func (rg *Registry) Append(obj *Object) error {
	obj.ID = len(rg.objects)
	if err := rg.viewport.Render(obj); err != nil {
		return errors.Wrapf(err, "render object %q", obj.Label)
	}
	rg.objects = append(rg.objects, obj)
	return nil
}

// Remove drops one object and renumbers the rest so ids stay dense.
func (rg *Registry) Remove(id int) error {
	if id < 0 || id >= len(rg.objects) {
		return errors.Wrapf(ErrNotFound, "id %d of %d", id, len(rg.objects))
	}
	rg.viewport.Remove(rg.objects[id].Handle)
	rg.objects = append(rg.objects[:id], rg.objects[id+1:]...)
	for i, obj := range rg.objects {
		obj.ID = i
	}
	return nil
}

// Clear removes everything and resets the id sequence.
func (rg *Registry) Clear() {
	rg.viewport.RemoveAll()
	rg.objects = nil
}

func (rg *Registry) Get(id int) (*Object, error) {
	if id < 0 || id >= len(rg.objects) {
		return nil, errors.Wrapf(ErrNotFound, "id %d of %d", id, len(rg.objects))
	}
	return rg.objects[id], nil
}

// Find returns the first object carrying the label, or nil.
func (rg *Registry) Find(label string) *Object {
	for _, obj := range rg.objects {
		if obj.Label == label {
			return obj
		}
	}
	return nil
}

// Objects returns the live list in id order. The slice is a copy.
func (rg *Registry) Objects() []*Object {
	out := make([]*Object, len(rg.objects))
	copy(out, rg.objects)
	return out
}

func (rg *Registry) Len() int {
	return len(rg.objects)
}

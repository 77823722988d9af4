package scene

import (
	"github.com/pkg/errors"

	"github.com/flywave/go-simscene/render"
)

// Delegate receives selection events from the navigator. It is the only
// channel the navigator talks through.
type Delegate interface {
	OnObjectSelected(id int, handle render.Handle)
}

// Row is one navigator entry, a snapshot of the object it was loaded from.
type Row struct {
	ID     int
	Label  string
	Handle render.Handle
}

// Navigator is the selectable object list. Rebuilding the list fires a
// selection change with nothing selected, so emission is guarded twice:
// the closing flag suppresses events while Clear tears the list down, and
// an empty selection never reaches the delegate.
type Navigator struct {
	delegate Delegate
	rows     []Row
	selected int
	closing  bool
}

func NewNavigator() *Navigator {
	return &Navigator{selected: -1}
}

func (nv *Navigator) SetDelegate(d Delegate) {
	nv.delegate = d
}

// LoadObjects rebuilds the rows from the object list. Any prior selection
// is dropped without notifying the delegate.
func (nv *Navigator) LoadObjects(objs []*Object) {
	nv.resetRows()
	for _, obj := range objs {
		nv.rows = append(nv.rows, Row{ID: obj.ID, Label: obj.Label, Handle: obj.Handle})
	}
}

// Clear empties the list. The closing flag stays up for the whole teardown
// so the selection reset cannot echo back into the delegate.
func (nv *Navigator) Clear() {
	nv.closing = true
	nv.resetRows()
	nv.closing = false
}

func (nv *Navigator) resetRows() {
	nv.rows = nil
	nv.selected = -1
	nv.selectionChanged()
}

// Select marks the row and forwards the event. Selecting the already
// selected row does nothing.
func (nv *Navigator) Select(i int) error {
	if i < 0 || i >= len(nv.rows) {
		return errors.Wrapf(ErrNotFound, "row %d of %d", i, len(nv.rows))
	}
	if i == nv.selected {
		return nil
	}
	nv.selected = i
	nv.selectionChanged()
	return nil
}

func (nv *Navigator) selectionChanged() {
	if nv.closing {
		return
	}
	if nv.selected < 0 || nv.selected >= len(nv.rows) {
		return
	}
	if nv.delegate == nil {
		return
	}
	row := nv.rows[nv.selected]
	nv.delegate.OnObjectSelected(row.ID, row.Handle)
}

func (nv *Navigator) Rows() []Row {
	out := make([]Row, len(nv.rows))
	copy(out, nv.rows)
	return out
}

func (nv *Navigator) Selected() int {
	return nv.selected
}

func (nv *Navigator) Len() int {
	return len(nv.rows)
}

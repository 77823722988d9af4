package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flywave/go-simscene/render"
)

type selection struct {
	id     int
	handle render.Handle
}

type recordingDelegate struct {
	calls []selection
}

func (d *recordingDelegate) OnObjectSelected(id int, handle render.Handle) {
	d.calls = append(d.calls, selection{id: id, handle: handle})
}

func loadedNavigator(d Delegate) (*Navigator, []*Object) {
	objs := []*Object{bodyObject("지면"), bodyObject("건물 2")}
	for i, o := range objs {
		o.ID = i
		o.Handle = &render.OffscreenHandle{}
	}
	nv := NewNavigator()
	nv.SetDelegate(d)
	nv.LoadObjects(objs)
	return nv, objs
}

func TestNavigatorSelectEmitsOnce(t *testing.T) {
	rec := &recordingDelegate{}
	nv, objs := loadedNavigator(rec)

	require.NoError(t, nv.Select(1))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, 1, rec.calls[0].id)
	assert.Same(t, objs[1].Handle, rec.calls[0].handle)
	assert.Equal(t, 1, nv.Selected())
}

func TestNavigatorReselectIsQuiet(t *testing.T) {
	rec := &recordingDelegate{}
	nv, _ := loadedNavigator(rec)

	require.NoError(t, nv.Select(0))
	require.NoError(t, nv.Select(0))

	assert.Len(t, rec.calls, 1)
}

func TestNavigatorLoadNeverEmits(t *testing.T) {
	rec := &recordingDelegate{}
	nv, objs := loadedNavigator(rec)

	nv.LoadObjects(objs)
	nv.LoadObjects(nil)

	assert.Empty(t, rec.calls)
	assert.Equal(t, -1, nv.Selected())
}

func TestNavigatorClearNeverEmits(t *testing.T) {
	rec := &recordingDelegate{}
	nv, _ := loadedNavigator(rec)

	require.NoError(t, nv.Select(1))
	nv.Clear()

	assert.Len(t, rec.calls, 1)
	assert.Equal(t, 0, nv.Len())
	assert.Equal(t, -1, nv.Selected())
}

func TestNavigatorPopulateClearCycleQuiet(t *testing.T) {
	rec := &recordingDelegate{}
	nv, objs := loadedNavigator(rec)

	nv.Clear()
	nv.LoadObjects(objs)
	nv.Clear()

	assert.Empty(t, rec.calls)
}

func TestNavigatorSelectOutOfRange(t *testing.T) {
	rec := &recordingDelegate{}
	nv, _ := loadedNavigator(rec)

	assert.True(t, errors.Is(nv.Select(5), ErrNotFound))
	assert.True(t, errors.Is(nv.Select(-1), ErrNotFound))
	assert.Empty(t, rec.calls)
}

func TestNavigatorWithoutDelegate(t *testing.T) {
	nv := NewNavigator()
	nv.LoadObjects([]*Object{bodyObject("a")})

	require.NoError(t, nv.Select(0))
	assert.Equal(t, 0, nv.Selected())
}

func TestNavigatorRowsSnapshot(t *testing.T) {
	nv, objs := loadedNavigator(&recordingDelegate{})

	rows := nv.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, objs[0].Label, rows[0].Label)
	assert.Equal(t, 1, rows[1].ID)

	rows[0].Label = "tampered"
	assert.Equal(t, objs[0].Label, nv.Rows()[0].Label)
}

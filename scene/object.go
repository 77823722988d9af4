// Package scene keeps a registry of labeled, selectable objects in sync
// with a render surface and a navigator list.
package scene

import (
	"fmt"

	mst "github.com/flywave/go-mst"
	"github.com/pkg/errors"

	"github.com/flywave/go-simscene/render"
)

const (
	// GroundLabel marks the body with the largest bounding volume.
	GroundLabel = "지면"
	// WindLabel marks the streamline tube object.
	WindLabel = "바람"
)

// BodyLabel names a body by its split position, 1-indexed. The position
// keeps counting over the ground body, so a batch whose first body became
// ground starts its building labels at 2.
func BodyLabel(position int) string {
	return fmt.Sprintf("건물 %d", position+1)
}

var ErrNotFound = errors.New("scene object not found")

// Object is one selectable, renderable entity. The registry owns it;
// every other component refers to it by id and render handle only.
type Object struct {
	ID       int
	Label    string
	Color    [3]float64
	Geometry *mst.Mesh
	Handle   render.Handle
}

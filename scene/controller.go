package scene

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/flywave/go-simscene/field"
	"github.com/flywave/go-simscene/ingest"
	"github.com/flywave/go-simscene/render"
	"github.com/flywave/go-simscene/streamline"
)

// Controller owns the registry, viewport and navigator, and is the
// navigator's delegate. Every mutation runs on the caller's goroutine to
// completion; a failed import leaves the prior scene untouched.
type Controller struct {
	viewport  *Viewport
	registry  *Registry
	navigator *Navigator
	log       *zap.Logger
	rng       *rand.Rand

	windField field.SyntheticConfig
	windTrace streamline.Options
}

var _ Delegate = (*Controller)(nil)

func NewController(surface render.Surface, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	vp := NewViewport(surface, log)
	trace := streamline.DefaultOptions()
	trace.Radius = streamline.EditorTubeRadius
	c := &Controller{
		viewport:  vp,
		registry:  NewRegistry(vp),
		navigator: NewNavigator(),
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		windField: field.DefaultSyntheticConfig(),
		windTrace: trace,
	}
	c.navigator.SetDelegate(c)
	return c
}

// Seed pins the color source so classification is reproducible.
func (c *Controller) Seed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

// ConfigureWind overrides the synthetic field and trace options used by
// GenerateWind.
func (c *Controller) ConfigureWind(cfg field.SyntheticConfig, opts streamline.Options) {
	c.windField = cfg
	c.windTrace = opts
}

// ImportMesh loads a mesh file, splits it into bodies, classifies them and
// replaces the whole scene: registry, navigator rows and camera. Load and
// split errors abort before any state changes.
func (c *Controller) ImportMesh(path string) error {
	bodies, err := ingest.Decompose(path)
	if err != nil {
		c.log.Warn("mesh import failed", zap.String("path", path), zap.Error(err))
		return err
	}
	objs := Classify(bodies, c.rng)
	if err := c.registry.ReplaceAll(objs); err != nil {
		return err
	}
	c.navigator.LoadObjects(c.registry.Objects())
	c.viewport.ResetCamera()
	c.log.Info("mesh imported", zap.String("path", path), zap.Int("bodies", len(objs)))
	return nil
}

// GenerateWind synthesizes the wind field, traces the default seed line
// and appends the tube as the wind object. A prior wind object is removed
// first so at most one exists.
func (c *Controller) GenerateWind() error {
	grid := field.Synthesize(c.windField)
	p, err := streamline.New(grid, c.windTrace, nil, c.log)
	if err != nil {
		return err
	}
	if err := p.Update(streamline.DefaultStartX, streamline.DefaultStartY); err != nil {
		return err
	}
	if prior := c.registry.Find(WindLabel); prior != nil {
		if err := c.registry.Remove(prior.ID); err != nil {
			return err
		}
	}
	obj := &Object{
		Label:    WindLabel,
		Color:    [3]float64{1, 1, 1},
		Geometry: p.Tube(),
	}
	if err := c.registry.Append(obj); err != nil {
		return err
	}
	c.navigator.LoadObjects(c.registry.Objects())
	c.log.Info("wind generated", zap.Int("lines", len(p.Lines())))
	return nil
}

// OnObjectSelected is the navigator delegate: move the manipulator and
// camera focus to the selected object.
func (c *Controller) OnObjectSelected(id int, _ render.Handle) {
	obj, err := c.registry.Get(id)
	if err != nil {
		c.log.Error("selection refers to unknown object", zap.Int("id", id), zap.Error(err))
		return
	}
	if err := c.viewport.FocusManipulator(obj); err != nil {
		c.log.Error("manipulator focus failed", zap.Int("id", id), zap.Error(err))
	}
}

// Clear empties the scene: manipulator, handles, registry and navigator.
func (c *Controller) Clear() {
	c.viewport.ReleaseManipulator()
	c.registry.Clear()
	c.navigator.Clear()
}

// Close clears the scene and releases the render surface. Idempotent.
func (c *Controller) Close() error {
	c.Clear()
	return c.viewport.Close()
}

func (c *Controller) Viewport() *Viewport {
	return c.viewport
}

func (c *Controller) Registry() *Registry {
	return c.registry
}

func (c *Controller) Navigator() *Navigator {
	return c.navigator
}

package system

import (
	"math"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/vmath"
)

const SystemPicking = "picking"

// PickingSystem is the pointer-over / pointer-press collaborator
// It owns the hover flag and raises the selection flag, nothing else in the frame writes them
type PickingSystem struct {
	world *engine.World
	res   engine.Resources

	pickStore      *engine.Store[component.PickableComponent]
	transformStore *engine.Store[component.TransformComponent]
	hoverStore     *engine.Store[component.HoverComponent]
	selectStore    *engine.Store[component.SelectionComponent]
}

// NewPickingSystem creates a new picking system
func NewPickingSystem(world *engine.World) engine.System {
	return &PickingSystem{
		world: world,
		res:   engine.GetResources(world),

		pickStore:      engine.GetStore[component.PickableComponent](world),
		transformStore: engine.GetStore[component.TransformComponent](world),
		hoverStore:     engine.GetStore[component.HoverComponent](world),
		selectStore:    engine.GetStore[component.SelectionComponent](world),
	}
}

func (s *PickingSystem) Name() string { return SystemPicking }

// Priority returns the system's priority, picking runs before everything that reads the flags
func (s *PickingSystem) Priority() int {
	return constant.PriorityPicking
}

// Update hovers the nearest pickable card under the cursor and selects it on press
func (s *PickingSystem) Update() {
	pickables := s.world.Query().With(s.pickStore).With(s.transformStore).Execute()

	target := core.NoEntity
	if s.res.Drag.Dragging() {
		// The dragged card keeps the hover so cards passed over stay down
		target = s.res.Drag.Active
	} else if ray, ok := s.cursorRay(); ok {
		target = s.nearestHit(ray, pickables)
	}

	for _, e := range pickables {
		s.hoverStore.Set(e, component.HoverComponent{Hovered: e == target})
	}

	if target != core.NoEntity && s.res.Pointer.State.Pressed {
		s.selectStore.Set(target, component.SelectionComponent{Selected: true})
	}
}

func (s *PickingSystem) nearestHit(ray vmath.Ray, pickables []core.Entity) core.Entity {
	best := core.NoEntity
	bestDistance := math.MaxFloat64
	for _, e := range pickables {
		tr, _ := s.transformStore.Get(e)
		d, ok := cardHit(ray, tr.Transform)

		// A lifted card also answers at its rest pose, otherwise lifting it moves it out from under the pointer
		rest := tr.Transform
		rest.Translation[1] = constant.RestHeight
		if rd, rok := cardHit(ray, rest); rok && (!ok || rd < d) {
			d, ok = rd, true
		}

		if !ok || d >= bestDistance {
			continue
		}
		best = e
		bestDistance = d
	}
	return best
}

func cardHit(ray vmath.Ray, pose vmath.Transform) (float64, bool) {
	quad := vmath.Quad{
		Pose:  pose,
		HalfW: constant.CardHalfWidth,
		HalfH: constant.CardHalfHeight,
	}
	hit, ok := quad.Intersect(ray)
	return hit.Distance, ok
}

func (s *PickingSystem) cursorRay() (vmath.Ray, bool) {
	cursor, ok := s.res.Pointer.State.CursorPosition()
	if !ok {
		return vmath.Ray{}, false
	}
	cam, err := engine.SingleCamera(s.world)
	if err != nil {
		engine.ReportPrecondition(s.world, SystemPicking, err)
		return vmath.Ray{}, false
	}
	vp, err := engine.ActiveViewport(s.world)
	if err != nil {
		engine.ReportPrecondition(s.world, SystemPicking, err)
		return vmath.Ray{}, false
	}
	engine.ClearPrecondition(s.world, SystemPicking)
	return cam.Projection.ViewportToWorld(cam.Pose, vp, cursor)
}

package system

import (
	"log/slog"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/event"
)

const SystemDrag = "drag"

// DragSystem moves selected cards onto the pointer's drag-plane point and drops them on release
// Must run after HoverSystem so the drag position wins over the hover height
type DragSystem struct {
	world *engine.World
	res   engine.Resources

	cardStore      *engine.Store[component.CardComponent]
	transformStore *engine.Store[component.TransformComponent]
	selectStore    *engine.Store[component.SelectionComponent]
}

// NewDragSystem creates a new pointer-follow system
func NewDragSystem(world *engine.World) engine.System {
	return &DragSystem{
		world: world,
		res:   engine.GetResources(world),

		cardStore:      engine.GetStore[component.CardComponent](world),
		transformStore: engine.GetStore[component.TransformComponent](world),
		selectStore:    engine.GetStore[component.SelectionComponent](world),
	}
}

func (s *DragSystem) Name() string { return SystemDrag }

func (s *DragSystem) Priority() int {
	return constant.PriorityDrag
}

// RunsAfter declares the hover dependency checked by World.CheckOrder
func (s *DragSystem) RunsAfter() []string {
	return []string{SystemHover}
}

func (s *DragSystem) Update() {
	// No pointer point this frame: cards hold position and the release edge is not consumed
	if !s.res.DragPoint.Valid {
		return
	}
	point := s.res.DragPoint.Point
	released := s.res.Pointer.State.Released

	cards := s.world.Query().With(s.cardStore).With(s.selectStore).With(s.transformStore).Execute()
	for _, e := range cards {
		sel, _ := s.selectStore.Get(e)
		if sel.Selected {
			s.transformStore.Mutate(e, func(tr *component.TransformComponent) {
				tr.Translation = point
			})
			if !s.res.Drag.Dragging() {
				s.res.Drag.Active = e
				slog.Debug("card picked", "entity", uint64(e))
				s.world.PushEvent(event.EventCardPicked, &event.CardPayload{Entity: e, Position: point})
			}
		}
		if released {
			s.selectStore.Set(e, component.SelectionComponent{Selected: false})
		}
	}

	if released && s.res.Drag.Dragging() {
		active := s.res.Drag.Active
		position := point
		if tr, ok := s.transformStore.Get(active); ok {
			position = tr.Translation
		}
		slog.Debug("card released", "entity", uint64(active), "x", position.X(), "z", position.Z())
		s.world.PushEvent(event.EventCardReleased, &event.CardPayload{Entity: active, Position: position})
		s.res.Drag.Active = core.NoEntity
	}
}

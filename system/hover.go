package system

import (
	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/engine"
)

const SystemHover = "hover"

// HoverSystem lifts hovered cards and rests all others
// Applies to every card regardless of owner
type HoverSystem struct {
	world *engine.World
	res   engine.Resources

	cardStore      *engine.Store[component.CardComponent]
	transformStore *engine.Store[component.TransformComponent]
	hoverStore     *engine.Store[component.HoverComponent]
}

// NewHoverSystem creates a new hover elevation system
func NewHoverSystem(world *engine.World) engine.System {
	return &HoverSystem{
		world: world,
		res:   engine.GetResources(world),

		cardStore:      engine.GetStore[component.CardComponent](world),
		transformStore: engine.GetStore[component.TransformComponent](world),
		hoverStore:     engine.GetStore[component.HoverComponent](world),
	}
}

func (s *HoverSystem) Name() string { return SystemHover }

func (s *HoverSystem) Priority() int {
	return constant.PriorityHover
}

func (s *HoverSystem) Update() {
	lift := s.res.Settings.HoverLift
	cards := s.world.Query().With(s.cardStore).With(s.transformStore).Execute()

	for _, e := range cards {
		height := constant.RestHeight
		if hover, ok := s.hoverStore.Get(e); ok && hover.Hovered {
			height = lift
		}
		s.transformStore.Mutate(e, func(tr *component.TransformComponent) {
			tr.Translation[1] = height
		})
	}
}

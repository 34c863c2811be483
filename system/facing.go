package system

import (
	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/engine"
)

const SystemFacing = "facing"

// FacingSystem turns cards about the vertical axis so their faces point at the camera
// Enemy cards are included only when SettingsResource.BillboardEnemyCards is set
type FacingSystem struct {
	world *engine.World
	res   engine.Resources

	cardStore      *engine.Store[component.CardComponent]
	ownerStore     *engine.Store[component.OwnerComponent]
	transformStore *engine.Store[component.TransformComponent]
}

// NewFacingSystem creates a new camera-facing system
func NewFacingSystem(world *engine.World) engine.System {
	return &FacingSystem{
		world: world,
		res:   engine.GetResources(world),

		cardStore:      engine.GetStore[component.CardComponent](world),
		ownerStore:     engine.GetStore[component.OwnerComponent](world),
		transformStore: engine.GetStore[component.TransformComponent](world),
	}
}

func (s *FacingSystem) Name() string { return SystemFacing }

func (s *FacingSystem) Priority() int {
	return constant.PriorityFacing
}

func (s *FacingSystem) Update() {
	cam, err := engine.SingleCamera(s.world)
	if err != nil {
		engine.ReportPrecondition(s.world, SystemFacing, err)
		return
	}
	engine.ClearPrecondition(s.world, SystemFacing)

	target := cam.Pose.Translation
	includeEnemy := s.res.Settings.BillboardEnemyCards

	cards := s.world.Query().With(s.cardStore).With(s.ownerStore).With(s.transformStore).Execute()
	for _, e := range cards {
		owner, _ := s.ownerStore.Get(e)
		if owner.Owner != component.OwnerPlayer && !includeEnemy {
			continue
		}
		s.transformStore.Mutate(e, func(tr *component.TransformComponent) {
			tr.FaceTowardsYaw(target)
		})
	}
}

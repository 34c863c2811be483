package system

import (
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/vmath"
)

const SystemRaycast = "raycast"

// RaycastSystem turns the frame's cursor into world points on the drag and board planes
// It keeps no state between frames: both points are invalidated before every attempt
type RaycastSystem struct {
	world *engine.World
	res   engine.Resources
}

// NewRaycastSystem creates a new pointer raycast system
func NewRaycastSystem(world *engine.World) engine.System {
	return &RaycastSystem{
		world: world,
		res:   engine.GetResources(world),
	}
}

func (s *RaycastSystem) Name() string { return SystemRaycast }

func (s *RaycastSystem) Priority() int {
	return constant.PriorityRaycast
}

func (s *RaycastSystem) Update() {
	s.res.DragPoint.Invalidate()
	s.res.BoardPoint.Invalidate()

	cam, err := engine.SingleCamera(s.world)
	if err != nil {
		engine.ReportPrecondition(s.world, SystemRaycast, err)
		return
	}
	vp, err := engine.ActiveViewport(s.world)
	if err != nil {
		engine.ReportPrecondition(s.world, SystemRaycast, err)
		return
	}
	engine.ClearPrecondition(s.world, SystemRaycast)

	cursor, ok := s.res.Pointer.State.CursorPosition()
	if !ok {
		return
	}
	ray, ok := cam.Projection.ViewportToWorld(cam.Pose, vp, cursor)
	if !ok {
		return
	}

	if p, ok := ray.HorizontalPlaneHit(s.res.Settings.DragPlaneY); ok {
		s.res.DragPoint.Set(p)
	}
	if p, ok := ray.HorizontalPlaneHit(vmath.BoardPlaneY); ok {
		s.res.BoardPoint.Set(p)
	}
}

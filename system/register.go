package system

import "github.com/lixenwraith/tabletop/engine"

// RegisterTableSystems adds the per-frame card manipulation schedule to the world
// Callers should follow with World.CheckOrder
func RegisterTableSystems(w *engine.World) {
	w.AddSystem(NewPickingSystem(w))
	w.AddSystem(NewRaycastSystem(w))
	w.AddSystem(NewHoverSystem(w))
	w.AddSystem(NewFacingSystem(w))
	w.AddSystem(NewDragSystem(w))
}

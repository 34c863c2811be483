package system

import (
	"log/slog"
	"math"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/event"
	"github.com/lixenwraith/tabletop/vmath"
)

// HandLayout deals both hands once when the session first enters the Game phase
type HandLayout struct {
	world *engine.World
	dealt bool

	player []core.Entity
	enemy  []core.Entity
}

// NewHandLayout subscribes the deal to Game phase entry
func NewHandLayout(w *engine.World, session *engine.Session) *HandLayout {
	h := &HandLayout{world: w}
	session.OnEnter(core.PhaseGame, func(from, to core.Phase) {
		h.Deal()
	})
	return h
}

// Dealt reports whether the hands exist
func (h *HandLayout) Dealt() bool {
	return h.dealt
}

// Player returns the player's cards in slot order
func (h *HandLayout) Player() []core.Entity {
	return h.player
}

// Enemy returns the enemy's cards in slot order
func (h *HandLayout) Enemy() []core.Entity {
	return h.enemy
}

// Deal spawns the two hands, later calls are no-ops
// Player cards face the player's side of the table and are pickable,
// enemy cards face away and carry no pick or selection state
func (h *HandLayout) Deal() {
	if h.dealt {
		return
	}
	h.dealt = true

	for i := 0; i < constant.HandSize; i++ {
		h.player = append(h.player, h.spawn(i, component.OwnerPlayer))
	}
	for i := 0; i < constant.HandSize; i++ {
		h.enemy = append(h.enemy, h.spawn(i, component.OwnerEnemy))
	}

	slog.Info("hands dealt", "player", len(h.player), "enemy", len(h.enemy))
	h.world.PushEvent(event.EventHandDealt, &event.HandDealtPayload{Player: h.player, Enemy: h.enemy})
}

func (h *HandLayout) spawn(slot int, owner component.Owner) core.Entity {
	w := h.world
	x := constant.HandStartX + float64(slot)*constant.HandSpacing

	z, yaw := constant.PlayerHandZ, math.Pi
	if owner == component.OwnerEnemy {
		z, yaw = constant.EnemyHandZ, 0
	}

	e := w.CreateEntity()
	engine.GetStore[component.CardComponent](w).Set(e, component.CardComponent{Slot: slot})
	engine.GetStore[component.OwnerComponent](w).Set(e, component.OwnerComponent{Owner: owner})
	engine.GetStore[component.TransformComponent](w).Set(e, component.TransformComponent{
		Transform: vmath.FromXYZ(x, constant.RestHeight, z).WithYaw(yaw),
	})
	engine.GetStore[component.HoverComponent](w).Set(e, component.HoverComponent{})

	if owner == component.OwnerPlayer {
		engine.GetStore[component.PickableComponent](w).Set(e, component.PickableComponent{})
		engine.GetStore[component.SelectionComponent](w).Set(e, component.SelectionComponent{})
	}
	return e
}

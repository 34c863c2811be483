package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tabletop/core"
)

// PhasePayload carries a session phase transition
type PhasePayload struct {
	From core.Phase
	To   core.Phase
}

// HandDealtPayload lists the spawned cards per side
type HandDealtPayload struct {
	Player []core.Entity
	Enemy  []core.Entity
}

// CardPayload identifies a card and where it is
type CardPayload struct {
	Entity   core.Entity
	Position mgl64.Vec3
}

// PreconditionPayload names the system that skipped its update and why
type PreconditionPayload struct {
	System string
	Err    error
}

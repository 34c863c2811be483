package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is never pushed
	EventNone EventType = iota

	// EventPhaseEntered signals a completed session phase transition
	// Trigger: Session.Apply | Consumer: logging | Payload: *PhasePayload
	EventPhaseEntered

	// EventHandDealt signals both hands were spawned
	// Trigger: HandLayout | Consumer: audio | Payload: *HandDealtPayload
	EventHandDealt

	// EventCardPicked signals a card started following the pointer
	// Trigger: DragSystem | Consumer: audio, status | Payload: *CardPayload
	EventCardPicked

	// EventCardReleased signals the dragged card was let go
	// Trigger: DragSystem | Consumer: audio, status | Payload: *CardPayload
	EventCardReleased

	// EventPrecondition reports a system update skipped for a missing camera or viewport
	// Trigger: camera/viewport lookups | Consumer: audio, status | Payload: *PreconditionPayload
	EventPrecondition
)

func (t EventType) String() string {
	switch t {
	case EventPhaseEntered:
		return "PhaseEntered"
	case EventHandDealt:
		return "HandDealt"
	case EventCardPicked:
		return "CardPicked"
	case EventCardReleased:
		return "CardReleased"
	case EventPrecondition:
		return "Precondition"
	default:
		return "None"
	}
}

// GameEvent is one queued event stamped with the frame that produced it
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}

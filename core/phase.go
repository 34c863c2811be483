package core

// Phase is the session-level game phase
type Phase uint8

const (
	PhaseSplash Phase = iota
	PhaseMenu
	PhaseGame
)

func (p Phase) String() string {
	switch p {
	case PhaseSplash:
		return "Splash"
	case PhaseMenu:
		return "Menu"
	case PhaseGame:
		return "Game"
	default:
		return "Unknown"
	}
}

package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/event"
)

// PhaseHook runs on a phase boundary
type PhaseHook func(from, to core.Phase)

// validTransitions is the session phase graph
var validTransitions = map[core.Phase][]core.Phase{
	core.PhaseSplash: {core.PhaseMenu, core.PhaseGame},
	core.PhaseMenu:   {core.PhaseGame},
	core.PhaseGame:   {core.PhaseMenu},
}

// Session owns the game phase
// Transitions are requested at any time and applied at the start of the next frame,
// so enter hooks never observe a half-finished frame
type Session struct {
	mu      sync.Mutex
	world   *World
	current core.Phase
	pending []core.Phase
	onEnter map[core.Phase][]PhaseHook
	onExit  map[core.Phase][]PhaseHook
}

// NewSession creates a session in the Splash phase and registers it as a world resource
func NewSession(w *World) *Session {
	s := &Session{
		world:   w,
		current: core.PhaseSplash,
		onEnter: make(map[core.Phase][]PhaseHook),
		onExit:  make(map[core.Phase][]PhaseHook),
	}
	AddResource(w.Resources, s)
	return s
}

// Phase returns the applied phase
func (s *Session) Phase() core.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnEnter subscribes hook to every entry into phase
func (s *Session) OnEnter(phase core.Phase, hook PhaseHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnter[phase] = append(s.onEnter[phase], hook)
}

// OnExit subscribes hook to every exit from phase
func (s *Session) OnExit(phase core.Phase, hook PhaseHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExit[phase] = append(s.onExit[phase], hook)
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to core.Phase) bool {
	for _, phase := range validTransitions[from] {
		if phase == to {
			return true
		}
	}
	return false
}

// Request queues a transition, validated against the phase the queue will have reached
func (s *Session) Request(to core.Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.current
	if n := len(s.pending); n > 0 {
		from = s.pending[n-1]
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	s.pending = append(s.pending, to)
	return nil
}

// Apply performs queued transitions in order and returns how many were applied
// Called by the frame loop before systems run
func (s *Session) Apply() int {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, to := range pending {
		s.mu.Lock()
		from := s.current
		exits := append([]PhaseHook(nil), s.onExit[from]...)
		enters := append([]PhaseHook(nil), s.onEnter[to]...)
		s.mu.Unlock()

		for _, hook := range exits {
			hook(from, to)
		}

		s.mu.Lock()
		s.current = to
		s.mu.Unlock()

		slog.Info("phase entered", "from", from.String(), "to", to.String())
		s.world.PushEvent(event.EventPhaseEntered, &event.PhasePayload{From: from, To: to})

		for _, hook := range enters {
			hook(from, to)
		}
	}
	return len(pending)
}

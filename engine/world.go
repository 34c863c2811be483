package engine

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/event"
)

// System is an interface that all systems must implement
type System interface {
	// Name identifies the system in diagnostics and ordering declarations
	Name() string
	// Priority orders execution, lower values run first
	Priority() int
	// Update runs one frame pass
	Update()
}

// Ordered is implemented by systems that must run after other named systems
// CheckOrder turns a violated declaration into an error instead of a silent race
type Ordered interface {
	RunsAfter() []string
}

// World is the entity arena: stable handles plus one typed store per component type
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	// Global ResourceStore
	Resources *ResourceStore

	stores     map[reflect.Type]AnyStore
	storeOrder []AnyStore

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a world with the core resources installed
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Resources:    NewResourceStore(),
		stores:       make(map[reflect.Type]AnyStore),
		systems:      make([]System, 0),
	}
	installCoreResources(w)
	return w
}

// GetStore returns the world's store for component type T, creating it on first use
// Pointers remain valid for the world's lifetime; fetch once in constructors
func GetStore[T any](w *World) *Store[T] {
	var zero T
	t := reflect.TypeOf(zero)

	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.stores[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.stores[t] = s
	w.storeOrder = append(w.storeOrder, s)
	return s
}

// CreateEntity reserves a new entity handle, handles are never reused
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	delete(w.alive, e)
	stores := make([]AnyStore, len(w.storeOrder))
	copy(stores, w.storeOrder)
	w.mu.Unlock()

	for _, s := range stores {
		s.Remove(e)
	}
}

// Alive reports whether the handle was created and not destroyed
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// Clear removes all entities and components, handles keep increasing
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alive = make(map[core.Entity]struct{})
	for _, s := range w.storeOrder {
		s.Clear()
	}
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N, stable for equal priorities)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems in execution order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// CheckOrder validates every Ordered declaration against the execution order
func (w *World) CheckOrder() error {
	systems := w.Systems()

	position := make(map[string]int, len(systems))
	for i, s := range systems {
		position[s.Name()] = i
	}

	for i, s := range systems {
		ordered, ok := s.(Ordered)
		if !ok {
			continue
		}
		for _, dep := range ordered.RunsAfter() {
			j, found := position[dep]
			if !found {
				return fmt.Errorf("%w: %s runs after unregistered system %s", ErrSystemOrder, s.Name(), dep)
			}
			if j >= i {
				return fmt.Errorf("%w: %s (priority %d) must run after %s (priority %d)",
					ErrSystemOrder, s.Name(), s.Priority(), dep, systems[j].Priority())
			}
		}
	}
	return nil
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs all systems sequentially in priority order
func (w *World) Update() {
	w.RunSafe(func() {
		for _, system := range w.Systems() {
			system.Update()
		}
	})
}

// PushEvent emits a game event stamped with the current frame
func (w *World) PushEvent(eventType event.EventType, payload any) {
	q, ok := GetResource[*EventQueueResource](w.Resources)
	if !ok || q.Queue == nil {
		return
	}
	var frame int64
	if tr, ok := GetResource[*TimeResource](w.Resources); ok {
		frame = tr.FrameNumber
	}
	q.Queue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   frame,
	})
}

package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tabletop/core"
)

type mockComponent struct {
	Value int
}

type otherComponent struct{}

func TestStore_SetGetRemove(t *testing.T) {
	s := NewStore[mockComponent]()
	s.Set(1, mockComponent{Value: 1})
	s.Set(2, mockComponent{Value: 2})
	s.Set(1, mockComponent{Value: 10})

	assert.Equal(t, 2, s.Count())
	v, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, v.Value)

	s.Remove(1)
	assert.False(t, s.Has(1))
	assert.Equal(t, []core.Entity{2}, s.All())

	s.Remove(99)
	assert.Equal(t, 1, s.Count())
}

func TestStore_InsertionOrder(t *testing.T) {
	s := NewStore[mockComponent]()
	for _, e := range []core.Entity{5, 3, 9, 1} {
		s.Set(e, mockComponent{})
	}
	s.Remove(3)
	assert.Equal(t, []core.Entity{5, 9, 1}, s.All())
}

func TestStore_Mutate(t *testing.T) {
	s := NewStore[mockComponent]()
	s.Set(1, mockComponent{Value: 1})

	assert.True(t, s.Mutate(1, func(c *mockComponent) { c.Value++ }))
	v, _ := s.Get(1)
	assert.Equal(t, 2, v.Value)

	assert.False(t, s.Mutate(2, func(c *mockComponent) { c.Value++ }))
	assert.False(t, s.Has(2))
}

func TestWorld_EntityLifecycle(t *testing.T) {
	w := NewWorld()
	mocks := GetStore[mockComponent](w)
	others := GetStore[otherComponent](w)
	assert.Same(t, mocks, GetStore[mockComponent](w))

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	assert.NotEqual(t, core.NoEntity, e1)
	assert.NotEqual(t, e1, e2)

	mocks.Set(e1, mockComponent{Value: 1})
	others.Set(e1, otherComponent{})
	mocks.Set(e2, mockComponent{Value: 2})

	w.DestroyEntity(e1)
	assert.False(t, w.Alive(e1))
	assert.False(t, mocks.Has(e1))
	assert.False(t, others.Has(e1))
	assert.True(t, mocks.Has(e2))
	assert.Equal(t, 1, w.EntityCount())

	// Handles are not reused
	e3 := w.CreateEntity()
	assert.Greater(t, uint64(e3), uint64(e2))

	w.Clear()
	assert.Equal(t, 0, w.EntityCount())
	assert.Equal(t, 0, mocks.Count())
}

func TestQuery_WithWithout(t *testing.T) {
	w := NewWorld()
	mocks := GetStore[mockComponent](w)
	others := GetStore[otherComponent](w)

	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	mocks.Set(a, mockComponent{})
	mocks.Set(b, mockComponent{})
	mocks.Set(c, mockComponent{})
	others.Set(b, otherComponent{})

	assert.Equal(t, []core.Entity{b}, w.Query().With(mocks).With(others).Execute())
	assert.Equal(t, []core.Entity{a, c}, w.Query().With(mocks).Without(others).Execute())
	assert.Empty(t, w.Query().Execute())

	q := w.Query().With(mocks)
	q.Execute()
	assert.Panics(t, func() { q.With(others) })
}

type stubSystem struct {
	name     string
	priority int
	after    []string
	log      *[]string
}

func (s *stubSystem) Name() string        { return s.name }
func (s *stubSystem) Priority() int       { return s.priority }
func (s *stubSystem) Update()             { *s.log = append(*s.log, s.name) }
func (s *stubSystem) RunsAfter() []string { return s.after }

func TestWorld_SystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld()
	var log []string
	w.AddSystem(&stubSystem{name: "drag", priority: 50, log: &log})
	w.AddSystem(&stubSystem{name: "hover", priority: 30, log: &log})
	w.AddSystem(&stubSystem{name: "raycast", priority: 20, log: &log})

	w.Update()
	assert.Equal(t, []string{"raycast", "hover", "drag"}, log)
}

func TestWorld_CheckOrder(t *testing.T) {
	var log []string

	ok := NewWorld()
	ok.AddSystem(&stubSystem{name: "hover", priority: 30, log: &log})
	ok.AddSystem(&stubSystem{name: "drag", priority: 50, after: []string{"hover"}, log: &log})
	assert.NoError(t, ok.CheckOrder())

	inverted := NewWorld()
	inverted.AddSystem(&stubSystem{name: "hover", priority: 60, log: &log})
	inverted.AddSystem(&stubSystem{name: "drag", priority: 50, after: []string{"hover"}, log: &log})
	err := inverted.CheckOrder()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSystemOrder))

	missing := NewWorld()
	missing.AddSystem(&stubSystem{name: "drag", priority: 50, after: []string{"hover"}, log: &log})
	assert.ErrorIs(t, missing.CheckOrder(), ErrSystemOrder)
}

func TestWorld_PushEventStampsFrame(t *testing.T) {
	w := NewWorld()
	res := GetResources(w)
	res.Time.FrameNumber = 7

	w.PushEvent(1, "payload")
	events := res.Events.Queue.Consume()
	require.Len(t, events, 1)
	assert.Equal(t, int64(7), events[0].Frame)
	assert.Equal(t, "payload", events[0].Payload)
}

func TestResources_MissingPanics(t *testing.T) {
	rs := NewResourceStore()
	_, ok := GetResource[*TimeResource](rs)
	assert.False(t, ok)
	assert.Panics(t, func() { MustGetResource[*TimeResource](rs) })
}

package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/event"
	"github.com/lixenwraith/tabletop/input"
	"github.com/lixenwraith/tabletop/vmath"
)

const tolerance = 1e-6

var testViewport = vmath.Viewport{Width: 160, Height: 96}

// newTable builds a world with the stock scene, a window and dealt hands
func newTable(t *testing.T) (*engine.World, *HandLayout) {
	t.Helper()
	w := engine.NewWorld()
	SetupScene(w, DefaultSceneConfig())

	res := engine.GetResources(w)
	res.Viewport.Viewport = testViewport
	res.Viewport.Present = true

	session := engine.NewSession(w)
	hand := NewHandLayout(w, session)
	require.NoError(t, session.Request(core.PhaseGame))
	require.Equal(t, 1, session.Apply())
	require.True(t, hand.Dealt())
	return w, hand
}

// pointAt puts the cursor on the pixel that projects onto world point p
func pointAt(t *testing.T, w *engine.World, p mgl64.Vec3, state input.PointerState) {
	t.Helper()
	cam, err := engine.SingleCamera(w)
	require.NoError(t, err)
	pixel, ok := cam.Projection.WorldToViewport(cam.Pose, testViewport, p)
	require.True(t, ok)
	require.True(t, testViewport.Contains(pixel))

	state.Cursor = pixel
	state.HasCursor = true
	engine.GetResources(w).Pointer.State = state
}

func translation(w *engine.World, e core.Entity) mgl64.Vec3 {
	tr, _ := engine.GetStore[component.TransformComponent](w).Get(e)
	return tr.Translation
}

func selected(w *engine.World, e core.Entity) bool {
	sel, _ := engine.GetStore[component.SelectionComponent](w).Get(e)
	return sel.Selected
}

func drainTypes(w *engine.World) []event.EventType {
	var types []event.EventType
	for _, ev := range engine.GetResources(w).Events.Queue.Consume() {
		types = append(types, ev.Type)
	}
	return types
}

func TestHandLayout_Positions(t *testing.T) {
	w, hand := newTable(t)
	pickables := engine.GetStore[component.PickableComponent](w)
	selections := engine.GetStore[component.SelectionComponent](w)
	owners := engine.GetStore[component.OwnerComponent](w)

	require.Len(t, hand.Player(), constant.HandSize)
	require.Len(t, hand.Enemy(), constant.HandSize)

	xs := []float64{-2, -1, 0, 1, 2}
	for i, e := range hand.Player() {
		p := translation(w, e)
		assert.InDelta(t, xs[i], p.X(), tolerance)
		assert.InDelta(t, 0.0, p.Y(), tolerance)
		assert.InDelta(t, 4.5, p.Z(), tolerance)
		assert.True(t, pickables.Has(e))
		assert.True(t, selections.Has(e))
		owner, _ := owners.Get(e)
		assert.Equal(t, component.OwnerPlayer, owner.Owner)
	}
	for i, e := range hand.Enemy() {
		p := translation(w, e)
		assert.InDelta(t, xs[i], p.X(), tolerance)
		assert.InDelta(t, -4.5, p.Z(), tolerance)
		assert.False(t, pickables.Has(e))
		assert.False(t, selections.Has(e))
		owner, _ := owners.Get(e)
		assert.Equal(t, component.OwnerEnemy, owner.Owner)
	}
}

func TestHandLayout_DealsOnce(t *testing.T) {
	w, hand := newTable(t)
	cards := engine.GetStore[component.CardComponent](w)
	assert.Equal(t, 2*constant.HandSize, cards.Count())
	assert.Contains(t, drainTypes(w), event.EventHandDealt)

	// Leaving and re-entering the game does not deal again
	session := engine.MustGetResource[*engine.Session](w.Resources)
	require.NoError(t, session.Request(core.PhaseMenu))
	require.NoError(t, session.Request(core.PhaseGame))
	assert.Equal(t, 2, session.Apply())

	hand.Deal()
	assert.Equal(t, 2*constant.HandSize, cards.Count())
	assert.NotContains(t, drainTypes(w), event.EventHandDealt)
}

func TestHoverSystem(t *testing.T) {
	w, hand := newTable(t)
	hovers := engine.GetStore[component.HoverComponent](w)

	lifted := hand.Player()[1]
	enemy := hand.Enemy()[3]
	hovers.Set(lifted, component.HoverComponent{Hovered: true})
	hovers.Set(enemy, component.HoverComponent{Hovered: true})

	NewHoverSystem(w).Update()

	for _, e := range append(hand.Player(), hand.Enemy()...) {
		want := constant.RestHeight
		if e == lifted || e == enemy {
			want = constant.HoverLift
		}
		assert.InDelta(t, want, translation(w, e).Y(), tolerance, "entity %d", e)
	}

	hovers.Set(lifted, component.HoverComponent{Hovered: false})
	NewHoverSystem(w).Update()
	assert.InDelta(t, 0.0, translation(w, lifted).Y(), tolerance)
}

func TestRaycastSystem_Points(t *testing.T) {
	w, _ := newTable(t)
	res := engine.GetResources(w)
	raycast := NewRaycastSystem(w)

	pointAt(t, w, mgl64.Vec3{1, 2, 0.5}, input.PointerState{})
	raycast.Update()
	require.True(t, res.DragPoint.Valid)
	assert.True(t, mgl64.Vec3{1, 2, 0.5}.ApproxEqualThreshold(res.DragPoint.Point, tolerance))
	require.True(t, res.BoardPoint.Valid)
	assert.InDelta(t, 0.0, res.BoardPoint.Point.Y(), tolerance)

	// Cursor leaves the window: both points are dropped for the frame
	res.Pointer.State = input.PointerState{}
	raycast.Update()
	assert.False(t, res.DragPoint.Valid)
	assert.False(t, res.BoardPoint.Valid)
}

func TestRaycastSystem_NoViewport(t *testing.T) {
	w, _ := newTable(t)
	res := engine.GetResources(w)
	pointAt(t, w, mgl64.Vec3{0, 2, 0}, input.PointerState{})
	drainTypes(w)

	res.Viewport.Present = false
	NewRaycastSystem(w).Update()

	assert.False(t, res.DragPoint.Valid)
	assert.ErrorIs(t, res.Diagnostics.Err(SystemRaycast), engine.ErrNoViewport)
	assert.Equal(t, []event.EventType{event.EventPrecondition}, drainTypes(w))

	// Repeated failure is reported once
	NewRaycastSystem(w).Update()
	assert.Empty(t, drainTypes(w))

	res.Viewport.Present = true
	NewRaycastSystem(w).Update()
	assert.NoError(t, res.Diagnostics.Err(SystemRaycast))
	assert.True(t, res.DragPoint.Valid)
}

func TestDragSystem_FollowsPointer(t *testing.T) {
	w, hand := newTable(t)
	res := engine.GetResources(w)
	card := hand.Player()[0]
	engine.GetStore[component.SelectionComponent](w).Set(card, component.SelectionComponent{Selected: true})

	target := mgl64.Vec3{1.0, 2.0, 0.5}
	pointAt(t, w, target, input.PointerState{Held: true})
	NewRaycastSystem(w).Update()
	NewDragSystem(w).Update()

	got := translation(w, card)
	assert.True(t, target.ApproxEqualThreshold(got, tolerance), "want %v, got %v", target, got)
	assert.True(t, selected(w, card))
	assert.Equal(t, card, res.Drag.Active)
	assert.Contains(t, drainTypes(w), event.EventCardPicked)

	// Unselected cards stay put
	assert.InDelta(t, -1.0, translation(w, hand.Player()[1]).X(), tolerance)
}

func TestDragSystem_HeightExactAcrossViewport(t *testing.T) {
	w, hand := newTable(t)
	RegisterTableSystems(w)
	res := engine.GetResources(w)
	card := hand.Player()[0]
	engine.GetStore[component.SelectionComponent](w).Set(card, component.SelectionComponent{Selected: true})

	frames := 0
	for px := 0.0; px < testViewport.Width; px += 7 {
		for py := 0.0; py < testViewport.Height; py += 5 {
			res.Pointer.State = input.PointerState{Cursor: mgl64.Vec2{px, py}, HasCursor: true, Held: true}
			w.Update()
			if !res.DragPoint.Valid {
				continue
			}
			frames++
			require.Equal(t, res.Settings.DragPlaneY, translation(w, card).Y(), "cursor (%v,%v)", px, py)
		}
	}
	assert.Positive(t, frames)
}

func TestDragSystem_ReleaseClearsAllSelected(t *testing.T) {
	w, hand := newTable(t)
	res := engine.GetResources(w)
	selections := engine.GetStore[component.SelectionComponent](w)
	a, b := hand.Player()[0], hand.Player()[4]
	selections.Set(a, component.SelectionComponent{Selected: true})
	selections.Set(b, component.SelectionComponent{Selected: true})

	pointAt(t, w, mgl64.Vec3{0, 2, 1}, input.PointerState{Held: true})
	NewRaycastSystem(w).Update()
	drag := NewDragSystem(w)
	drag.Update()
	require.True(t, res.Drag.Dragging())
	drainTypes(w)

	pointAt(t, w, mgl64.Vec3{0, 2, 1}, input.PointerState{Released: true})
	NewRaycastSystem(w).Update()
	drag.Update()

	assert.False(t, selected(w, a))
	assert.False(t, selected(w, b))
	assert.False(t, res.Drag.Dragging())
	assert.Equal(t, []event.EventType{event.EventCardReleased}, drainTypes(w))
}

func TestDragSystem_NoDragPoint(t *testing.T) {
	w, hand := newTable(t)
	res := engine.GetResources(w)
	card := hand.Player()[2]
	engine.GetStore[component.SelectionComponent](w).Set(card, component.SelectionComponent{Selected: true})
	before := translation(w, card)

	res.Pointer.State = input.PointerState{Released: true}
	NewRaycastSystem(w).Update()
	require.False(t, res.DragPoint.Valid)
	NewDragSystem(w).Update()

	assert.Equal(t, before, translation(w, card))
	assert.True(t, selected(w, card))
	assert.False(t, res.Drag.Dragging())
}

func TestFacingSystem_Idempotent(t *testing.T) {
	w, hand := newTable(t)
	rotations := engine.GetStore[component.TransformComponent](w)
	facing := NewFacingSystem(w)

	facing.Update()
	once := make(map[core.Entity]mgl64.Quat)
	for _, e := range hand.Player() {
		tr, _ := rotations.Get(e)
		once[e] = tr.Rotation
		// Upright and facing the camera side of the table
		assert.True(t, vmath.Up.ApproxEqualThreshold(tr.UpAxis(), tolerance))
		assert.Greater(t, tr.Forward().Z(), 0.0)
	}

	facing.Update()
	for _, e := range hand.Player() {
		tr, _ := rotations.Get(e)
		assert.True(t, once[e].ApproxEqualThreshold(tr.Rotation, tolerance))
	}

	// Enemy cards keep their spawn orientation by default
	for _, e := range hand.Enemy() {
		tr, _ := rotations.Get(e)
		assert.True(t, mgl64.QuatIdent().ApproxEqualThreshold(tr.Rotation, tolerance))
	}
}

func TestFacingSystem_BillboardEnemy(t *testing.T) {
	w, hand := newTable(t)
	engine.GetResources(w).Settings.BillboardEnemyCards = true
	NewFacingSystem(w).Update()

	for _, e := range hand.Enemy() {
		tr, _ := engine.GetStore[component.TransformComponent](w).Get(e)
		assert.Greater(t, tr.Forward().Z(), 0.0)
	}
}

func TestFacingSystem_NoCamera(t *testing.T) {
	w := engine.NewWorld()
	session := engine.NewSession(w)
	hand := NewHandLayout(w, session)
	hand.Deal()
	drainTypes(w)

	card := hand.Player()[0]
	before, _ := engine.GetStore[component.TransformComponent](w).Get(card)

	NewFacingSystem(w).Update()

	after, _ := engine.GetStore[component.TransformComponent](w).Get(card)
	assert.Equal(t, before, after)
	assert.ErrorIs(t, engine.GetResources(w).Diagnostics.Err(SystemFacing), engine.ErrNoCamera)
	assert.Equal(t, []event.EventType{event.EventPrecondition}, drainTypes(w))
}

func TestPickingSystem_HoverAndSelect(t *testing.T) {
	w, hand := newTable(t)
	hovers := engine.GetStore[component.HoverComponent](w)
	target := hand.Player()[2]

	pointAt(t, w, translation(w, target), input.PointerState{})
	picking := NewPickingSystem(w)
	picking.Update()

	for _, e := range hand.Player() {
		h, _ := hovers.Get(e)
		assert.Equal(t, e == target, h.Hovered, "entity %d", e)
	}
	assert.False(t, selected(w, target))

	pointAt(t, w, translation(w, target), input.PointerState{Pressed: true, Held: true})
	picking.Update()
	assert.True(t, selected(w, target))
}

func TestSchedule_Order(t *testing.T) {
	w := engine.NewWorld()
	RegisterTableSystems(w)
	require.NoError(t, w.CheckOrder())

	var names []string
	for _, s := range w.Systems() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{SystemPicking, SystemRaycast, SystemHover, SystemFacing, SystemDrag}, names)
}

func TestSchedule_PickDragRelease(t *testing.T) {
	w, hand := newTable(t)
	res := engine.GetResources(w)
	RegisterTableSystems(w)
	card := hand.Player()[2]
	start := translation(w, card)
	drainTypes(w)

	// Press over the card
	pointAt(t, w, start, input.PointerState{Pressed: true, Held: true})
	w.Update()
	require.Equal(t, card, res.Drag.Active)
	assert.InDelta(t, constant.HoverLift, translation(w, card).Y(), tolerance)

	// Move while held: the card tracks the drag plane
	dest := mgl64.Vec3{-1.5, 2, -1}
	pointAt(t, w, dest, input.PointerState{Held: true})
	w.Update()
	assert.True(t, dest.ApproxEqualThreshold(translation(w, card), tolerance))

	// Release: the card lands at rest height where it was dropped
	pointAt(t, w, dest, input.PointerState{Released: true})
	w.Update()
	assert.False(t, selected(w, card))
	assert.False(t, res.Drag.Dragging())

	res.Pointer.State = input.PointerState{}
	w.Update()
	got := translation(w, card)
	assert.InDelta(t, dest.X(), got.X(), tolerance)
	assert.InDelta(t, constant.RestHeight, got.Y(), tolerance)
	assert.InDelta(t, dest.Z(), got.Z(), tolerance)

	assert.Equal(t, []event.EventType{event.EventCardPicked, event.EventCardReleased}, drainTypes(w))
}

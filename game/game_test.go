package game

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/config"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/status"
)

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 26)

	cfg := config.Default()
	cfg.Audio = false
	g, err := New(screen, cfg)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g, screen
}

// cellOver returns the screen cell whose center looks at world point p
func cellOver(t *testing.T, g *Game, p mgl64.Vec3) (int, int) {
	t.Helper()
	cam, err := engine.SingleCamera(g.World())
	require.NoError(t, err)
	pixel, ok := cam.Projection.WorldToViewport(cam.Pose, g.sampler.Viewport(), p)
	require.True(t, ok)
	return g.sampler.ViewportToCell(pixel)
}

func TestNew_InvalidConfig(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	cfg := config.Default()
	cfg.FPS = 0
	_, err := New(screen, cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestFrame_DealsOnFirstFrame(t *testing.T) {
	g, _ := newTestGame(t)
	session := engine.MustGetResource[*engine.Session](g.World().Resources)
	assert.Equal(t, core.PhaseSplash, session.Phase())
	assert.False(t, g.Hand().Dealt())

	g.Frame(time.Now())
	assert.Equal(t, core.PhaseGame, session.Phase())
	assert.True(t, g.Hand().Dealt())
	assert.Equal(t, int64(1), g.res.Time.FrameNumber)
}

func TestFrame_PickDragRelease(t *testing.T) {
	g, _ := newTestGame(t)
	g.Frame(time.Now())

	card := g.Hand().Player()[2]
	x, y := cellOver(t, g, mgl64.Vec3{0, 0.5, 4.5})

	// Hover lifts the card, the pointer keeps it
	g.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	g.Frame(time.Now())
	hover, _ := engine.GetStore[component.HoverComponent](g.World()).Get(card)
	require.True(t, hover.Hovered)
	g.Frame(time.Now())
	hover, _ = engine.GetStore[component.HoverComponent](g.World()).Get(card)
	require.True(t, hover.Hovered)

	g.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	g.Frame(time.Now())
	require.Equal(t, card, g.res.Drag.Active)

	dx, dy := cellOver(t, g, mgl64.Vec3{-2, 2, 0})
	g.HandleEvent(tcell.NewEventMouse(dx, dy, tcell.Button1, tcell.ModNone))
	g.Frame(time.Now())
	tr, _ := engine.GetStore[component.TransformComponent](g.World()).Get(card)
	assert.InDelta(t, -2.0, tr.Translation.X(), 0.5)
	assert.InDelta(t, 0.0, tr.Translation.Z(), 0.5)

	g.HandleEvent(tcell.NewEventMouse(dx, dy, tcell.ButtonNone, tcell.ModNone))
	g.Frame(time.Now())
	assert.False(t, g.res.Drag.Dragging())
	sel, _ := engine.GetStore[component.SelectionComponent](g.World()).Get(card)
	assert.False(t, sel.Selected)

	assert.Equal(t, int64(1), g.stats.Counters.Get(status.CardsPicked).Load())
	assert.Equal(t, int64(1), g.stats.Counters.Get(status.CardsReleased).Load())
}

func TestHandleEvent_Keys(t *testing.T) {
	g, _ := newTestGame(t)

	assert.True(t, g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))

	rows := g.sampler.Viewport().Height
	assert.True(t, g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone)))
	assert.Greater(t, g.sampler.Viewport().Height, rows)

	assert.False(t, g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, g.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestHandleEvent_Resize(t *testing.T) {
	g, _ := newTestGame(t)
	g.HandleEvent(tcell.NewEventResize(40, 12))
	assert.Equal(t, 40.0, g.sampler.Viewport().Width)
	assert.Equal(t, 2.0*10, g.sampler.Viewport().Height)
}

func TestRun_QuitKey(t *testing.T) {
	g, screen := newTestGame(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- g.Run(ctx) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-errCh:
		assert.NoError(t, err)
		assert.NoError(t, ctx.Err())
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	g, _ := newTestGame(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, g.Run(ctx))
	assert.True(t, g.Hand().Dealt())
}

// Package game wires the world, terminal and audio into the frame loop
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tabletop/audio"
	"github.com/lixenwraith/tabletop/config"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/event"
	"github.com/lixenwraith/tabletop/input"
	"github.com/lixenwraith/tabletop/render"
	"github.com/lixenwraith/tabletop/status"
	"github.com/lixenwraith/tabletop/system"
)

const (
	inputQueueSize = 256
	frameSmoothing = 0.1
)

// Game owns one table session on one screen
// The screen is initialized and finalized by the caller
type Game struct {
	screen tcell.Screen

	world    *engine.World
	res      engine.Resources
	session  *engine.Session
	hand     *system.HandLayout
	sampler  *input.Sampler
	renderer *render.Renderer
	router   *event.Router[*engine.World]
	audio    *audio.Player
	stats    *status.Registry

	frameInterval time.Duration
	cols, rows    int
}

// New builds the world from cfg and queues the jump into the Game phase
func New(screen tcell.Screen, cfg *config.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world := engine.NewWorld()
	res := engine.GetResources(world)
	res.Settings.BillboardEnemyCards = cfg.BillboardEnemyCards
	res.Settings.HoverLift = cfg.HoverLift
	res.Settings.DragPlaneY = cfg.DragPlaneY

	session := engine.NewSession(world)
	hand := system.NewHandLayout(world, session)

	system.SetupScene(world, system.SceneConfig{
		CameraPosition: cfg.CameraPosition(),
		CameraTarget:   cfg.CameraTarget(),
		FovY:           cfg.FovY(),
		LightPosition:  system.DefaultSceneConfig().LightPosition,
	})
	system.RegisterTableSystems(world)
	if err := world.CheckOrder(); err != nil {
		return nil, fmt.Errorf("system schedule: %w", err)
	}

	sampler := input.NewSampler(cfg.CellAspect)
	g := &Game{
		screen:        screen,
		world:         world,
		res:           res,
		session:       session,
		hand:          hand,
		sampler:       sampler,
		renderer:      render.NewRenderer(world, sampler),
		router:        event.NewRouter[*engine.World](res.Events.Queue),
		audio:         audio.NewPlayer(cfg.Audio),
		stats:         status.NewRegistry(),
		frameInterval: time.Second / time.Duration(cfg.FPS),
	}

	engine.AddResource(world.Resources, g.stats)
	g.router.Register(g.audio)
	g.router.Register(event.HandlerFunc[*engine.World]{
		Types: []event.EventType{event.EventCardPicked, event.EventCardReleased, event.EventPrecondition},
		Fn:    g.countEvent,
	})
	g.router.Register(event.HandlerFunc[*engine.World]{
		Types: []event.EventType{event.EventPhaseEntered, event.EventHandDealt, event.EventCardPicked, event.EventCardReleased},
		Fn:    logEvent,
	})

	if err := session.Request(core.PhaseGame); err != nil {
		return nil, err
	}

	g.resize(screen.Size())
	return g, nil
}

// World exposes the ECS world
func (g *Game) World() *engine.World {
	return g.world
}

// Hand exposes the dealt hands
func (g *Game) Hand() *system.HandLayout {
	return g.hand
}

// Close releases audio, the screen stays with the caller
func (g *Game) Close() {
	g.audio.Close()
}

// Run polls the screen and ticks frames until quit or ctx is done
func (g *Game) Run(ctx context.Context) error {
	g.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents | tcell.MouseMotionEvents)
	g.screen.EnableFocus()
	defer g.screen.DisableMouse()

	done := make(chan struct{})
	defer close(done)
	events := g.startInputReader(done)

	ticker := time.NewTicker(g.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !g.HandleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			g.Frame(now)
		}
	}
}

// startInputReader forwards screen events until the screen is finalized or done closes
func (g *Game) startInputReader(done <-chan struct{}) <-chan tcell.Event {
	ch := make(chan tcell.Event, inputQueueSize)
	core.Go(func() {
		defer close(ch)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
			case <-done:
				return
			}
		}
	})
	return ch
}

// HandleEvent applies one terminal event, returns false to quit
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'i':
				g.renderer.ToggleHUD()
				g.resize(g.cols, g.rows)
			}
		}

	case *tcell.EventResize:
		g.resize(ev.Size())
		g.screen.Sync()

	default:
		g.sampler.Feed(ev)
	}
	return true
}

func (g *Game) resize(cols, rows int) {
	g.cols, g.rows = cols, rows
	g.sampler.Resize(cols, g.renderer.ViewRows(rows))
}

// Frame runs one tick: sample input, apply phase changes, update systems, dispatch events, draw
func (g *Game) Frame(now time.Time) {
	g.res.Time.Advance(now)
	g.res.Pointer.State = g.sampler.Sample()

	vp := g.sampler.Viewport()
	g.res.Viewport.Viewport = vp
	g.res.Viewport.Present = vp.Valid()

	g.session.Apply()
	g.world.Update()
	g.router.DispatchAll(g.world)

	g.renderer.Draw(g.cols, g.rows).FlushToScreen(g.screen)

	elapsed := float64(time.Since(now).Microseconds()) / 1000
	g.stats.Gauges.Get(status.FrameMillis).Smooth(elapsed, frameSmoothing)
}

func (g *Game) countEvent(_ *engine.World, ev event.GameEvent) {
	switch ev.Type {
	case event.EventCardPicked:
		g.stats.Counters.Get(status.CardsPicked).Add(1)
	case event.EventCardReleased:
		g.stats.Counters.Get(status.CardsReleased).Add(1)
	case event.EventPrecondition:
		g.stats.Counters.Get(status.Preconditions).Add(1)
	}
}

func logEvent(_ *engine.World, ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.CardPayload:
		slog.Debug("card event", "type", ev.Type.String(), "frame", ev.Frame, "entity", uint64(p.Entity), "position", formatVec(p.Position))
	case *event.PhasePayload:
		slog.Debug("phase entered", "from", p.From.String(), "to", p.To.String(), "frame", ev.Frame)
	case *event.HandDealtPayload:
		slog.Debug("hand event", "type", ev.Type.String(), "frame", ev.Frame, "player", len(p.Player), "enemy", len(p.Enemy))
	}
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}

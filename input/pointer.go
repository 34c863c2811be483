package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tabletop/vmath"
)

// DefaultCellAspect is the height of a terminal cell in units of its width
const DefaultCellAspect = 2.0

// PointerState is the pointer as seen by one frame
// Cursor is meaningful only when HasCursor is true
type PointerState struct {
	Cursor    mgl64.Vec2 // Viewport pixels, origin top-left
	HasCursor bool

	Pressed  bool // Left button went down since the previous frame
	Released bool // Left button went up since the previous frame
	Held     bool // Left button is down at sample time
}

// CursorPosition returns the cursor if it is inside the viewport
func (p PointerState) CursorPosition() (mgl64.Vec2, bool) {
	return p.Cursor, p.HasCursor
}

// Sampler accumulates terminal mouse events between frames
// Feed and Sample must be called from the same goroutine
type Sampler struct {
	cellAspect float64
	cols, rows int // Viewport size in cells

	cellX, cellY int
	seen         bool
	focused      bool

	held     bool
	pressed  bool
	released bool
	deferred bool // Press that followed a release in the same frame
}

// NewSampler creates a sampler for cells cellAspect times taller than wide
func NewSampler(cellAspect float64) *Sampler {
	if cellAspect <= 0 {
		cellAspect = DefaultCellAspect
	}
	return &Sampler{cellAspect: cellAspect, focused: true}
}

// Resize sets the viewport area in cells, rows below it are HUD
func (s *Sampler) Resize(cols, rows int) {
	s.cols = cols
	s.rows = rows
}

// CellAspect returns the cell height in units of cell width
func (s *Sampler) CellAspect() float64 {
	return s.cellAspect
}

// Viewport returns the pixel-space viewport matching the cell area
func (s *Sampler) Viewport() vmath.Viewport {
	return vmath.Viewport{
		Width:  float64(s.cols),
		Height: float64(s.rows) * s.cellAspect,
	}
}

// CellToViewport maps the center of a cell to viewport pixels
func (s *Sampler) CellToViewport(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(x) + 0.5,
		(float64(y) + 0.5) * s.cellAspect,
	}
}

// ViewportToCell maps viewport pixels to the containing cell
func (s *Sampler) ViewportToCell(p mgl64.Vec2) (int, int) {
	return int(p.X()), int(p.Y() / s.cellAspect)
}

// Feed consumes one terminal event, returns true if it was pointer related
func (s *Sampler) Feed(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		s.cellX, s.cellY = ev.Position()
		s.seen = true

		down := ev.Buttons()&tcell.Button1 != 0
		switch {
		case down && !s.held && s.released:
			// Reported next frame so this frame's release does not swallow it
			s.deferred = true
		case down && !s.held:
			s.pressed = true
		case !down && s.held && s.deferred:
			// A whole click after a click within one frame is dropped
			s.deferred = false
		case !down && s.held:
			s.released = true
		}
		s.held = down
		return true

	case *tcell.EventFocus:
		s.focused = ev.Focused
		if !ev.Focused && s.held {
			// Button-up is never delivered once focus is gone
			s.held = false
			if s.deferred {
				s.deferred = false
			} else {
				s.released = true
			}
		}
		return true
	}
	return false
}

// Sample returns the state for the frame about to run and resets edge flags
func (s *Sampler) Sample() PointerState {
	state := PointerState{
		Pressed:  s.pressed,
		Released: s.released,
		Held:     s.held && !s.deferred,
	}
	if s.seen && s.focused && s.inside(s.cellX, s.cellY) {
		state.Cursor = s.CellToViewport(s.cellX, s.cellY)
		state.HasCursor = true
	}

	s.pressed = s.deferred
	s.released = false
	s.deferred = false
	return state
}

func (s *Sampler) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.cols && y < s.rows
}

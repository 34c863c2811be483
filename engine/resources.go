package engine

import (
	"slices"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/event"
	"github.com/lixenwraith/tabletop/input"
	"github.com/lixenwraith/tabletop/vmath"
)

// Resources holds typed pointers to the singleton resources every world carries
// Fetch once in a system constructor with GetResources
type Resources struct {
	Time        *TimeResource
	Pointer     *PointerResource
	Viewport    *ViewportResource
	DragPoint   *DragPointResource
	BoardPoint  *BoardPointResource
	Drag        *DragResource
	Settings    *SettingsResource
	Diagnostics *DiagnosticsResource
	Events      *EventQueueResource
}

// GetResources populates Resources from the world
func GetResources(w *World) Resources {
	rs := w.Resources
	return Resources{
		Time:        MustGetResource[*TimeResource](rs),
		Pointer:     MustGetResource[*PointerResource](rs),
		Viewport:    MustGetResource[*ViewportResource](rs),
		DragPoint:   MustGetResource[*DragPointResource](rs),
		BoardPoint:  MustGetResource[*BoardPointResource](rs),
		Drag:        MustGetResource[*DragResource](rs),
		Settings:    MustGetResource[*SettingsResource](rs),
		Diagnostics: MustGetResource[*DiagnosticsResource](rs),
		Events:      MustGetResource[*EventQueueResource](rs),
	}
}

func installCoreResources(w *World) {
	rs := w.Resources
	AddResource(rs, &TimeResource{})
	AddResource(rs, &PointerResource{})
	AddResource(rs, &ViewportResource{})
	AddResource(rs, &DragPointResource{})
	AddResource(rs, &BoardPointResource{})
	AddResource(rs, &DragResource{})
	AddResource(rs, DefaultSettings())
	AddResource(rs, NewDiagnosticsResource())
	AddResource(rs, &EventQueueResource{Queue: event.NewEventQueue()})
}

// TimeResource is advanced by the frame loop before systems run
type TimeResource struct {
	RealTime    time.Time
	DeltaTime   time.Duration
	FrameNumber int64
}

// Advance moves to the next frame
func (tr *TimeResource) Advance(now time.Time) {
	if !tr.RealTime.IsZero() {
		tr.DeltaTime = now.Sub(tr.RealTime)
	}
	tr.RealTime = now
	tr.FrameNumber++
}

// PointerResource is the pointer snapshot for the current frame, immutable while systems run
type PointerResource struct {
	State input.PointerState
}

// ViewportResource describes the window the camera renders into
// Present is false when no window exists (headless, minimized, not yet sized)
type ViewportResource struct {
	Viewport vmath.Viewport
	Present  bool
}

// PlaneHit is an optional world point on a reference plane
type PlaneHit struct {
	Point mgl64.Vec3
	Valid bool
}

// Set records a valid intersection
func (h *PlaneHit) Set(p mgl64.Vec3) {
	h.Point = p
	h.Valid = true
}

// Invalidate marks this frame as having no intersection
func (h *PlaneHit) Invalidate() {
	h.Point = mgl64.Vec3{}
	h.Valid = false
}

// DragPointResource is the pointer's drag-plane intersection for this frame
type DragPointResource struct {
	PlaneHit
}

// BoardPointResource is the pointer's board-plane intersection for this frame
type BoardPointResource struct {
	PlaneHit
}

// DragResource tracks the single card currently following the pointer
type DragResource struct {
	Active core.Entity // core.NoEntity when nothing is dragged
}

// Dragging reports whether a card is being dragged
func (d *DragResource) Dragging() bool {
	return d.Active != core.NoEntity
}

// SettingsResource holds table behavior chosen at startup
type SettingsResource struct {
	// BillboardEnemyCards makes Camera-Facing also turn enemy cards
	BillboardEnemyCards bool
	HoverLift           float64
	DragPlaneY          float64
}

// DefaultSettings returns the stock table behavior
func DefaultSettings() *SettingsResource {
	return &SettingsResource{
		BillboardEnemyCards: false,
		HoverLift:           constant.HoverLift,
		DragPlaneY:          vmath.DragPlaneY,
	}
}

// DiagnosticsResource keeps the latest precondition failure per system
type DiagnosticsResource struct {
	mu    sync.RWMutex
	errs  map[string]error
	order []string // Outstanding systems, most recent report last
}

func NewDiagnosticsResource() *DiagnosticsResource {
	return &DiagnosticsResource{errs: make(map[string]error)}
}

// Report records err for system, returns true if it differs from the previous report
func (d *DiagnosticsResource) Report(system string, err error) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev, had := d.errs[system]
	d.errs[system] = err
	d.order = append(slices.DeleteFunc(d.order, func(s string) bool { return s == system }), system)
	return !had || prev.Error() != err.Error()
}

// Clear drops the recorded failure for system, returns true if one existed
func (d *DiagnosticsResource) Clear(system string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.errs[system]; !ok {
		return false
	}
	delete(d.errs, system)
	d.order = slices.DeleteFunc(d.order, func(s string) bool { return s == system })
	return true
}

// Err returns the recorded failure for system, nil if none
func (d *DiagnosticsResource) Err(system string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.errs[system]
}

// Latest returns the most recently reported failure still outstanding
func (d *DiagnosticsResource) Latest() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.order) == 0 {
		return "", nil
	}
	latest := d.order[len(d.order)-1]
	return latest, d.errs[latest]
}

// EventQueueResource wraps the world's event queue
type EventQueueResource struct {
	Queue *event.EventQueue
}

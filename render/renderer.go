package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/input"
	"github.com/lixenwraith/tabletop/vmath"
)

// HUDRows is the number of status rows reserved below the table view
const HUDRows = 2

const (
	ambient       = 0.35
	diffuse       = 0.65
	slotGlyphHalf = 0.25 // Fraction of the card face showing the slot number
)

type surface uint8

const (
	surfaceNone surface = iota
	surfaceBoard
	surfaceProp
	surfaceCard
)

// hit is the nearest surface along one cell's ray
type hit struct {
	kind     surface
	distance float64
	point    mgl64.Vec3
	normal   mgl64.Vec3

	entity core.Entity
	shade  float64 // Board tiles
	front  bool    // Cards
	u, v   float64 // Cards
}

// Renderer ray-casts the world once per cell
// Cells map to viewport pixels through the same Sampler the pointer uses, so what is drawn under
// the mouse is what picking hits
type Renderer struct {
	world   *engine.World
	res     engine.Resources
	sampler *input.Sampler
	buf     *Buffer
	showHUD bool

	transformStore *engine.Store[component.TransformComponent]
	cardStore      *engine.Store[component.CardComponent]
	ownerStore     *engine.Store[component.OwnerComponent]
	hoverStore     *engine.Store[component.HoverComponent]
	selectStore    *engine.Store[component.SelectionComponent]
	tileStore      *engine.Store[component.TileComponent]
	propStore      *engine.Store[component.PropComponent]
	lightStore     *engine.Store[component.LightComponent]

	// Per-frame caches
	cards  []core.Entity
	props  []vmath.Box
	tiles  map[[2]int]float64
	light  mgl64.Vec3
	hasLit bool
}

// NewRenderer creates a renderer sharing the pointer's cell mapping
func NewRenderer(world *engine.World, sampler *input.Sampler) *Renderer {
	return &Renderer{
		world:   world,
		res:     engine.GetResources(world),
		sampler: sampler,
		buf:     NewBuffer(0, 0),
		showHUD: true,

		transformStore: engine.GetStore[component.TransformComponent](world),
		cardStore:      engine.GetStore[component.CardComponent](world),
		ownerStore:     engine.GetStore[component.OwnerComponent](world),
		hoverStore:     engine.GetStore[component.HoverComponent](world),
		selectStore:    engine.GetStore[component.SelectionComponent](world),
		tileStore:      engine.GetStore[component.TileComponent](world),
		propStore:      engine.GetStore[component.PropComponent](world),
		lightStore:     engine.GetStore[component.LightComponent](world),
		tiles:          make(map[[2]int]float64),
	}
}

// ToggleHUD shows or hides the status rows
func (r *Renderer) ToggleHUD() {
	r.showHUD = !r.showHUD
}

// HUDVisible reports whether the status rows are drawn
func (r *Renderer) HUDVisible() bool {
	return r.showHUD
}

// ViewRows returns how many screen rows belong to the table view
func (r *Renderer) ViewRows(screenRows int) int {
	if r.showHUD {
		return max(0, screenRows-HUDRows)
	}
	return screenRows
}

// Buffer returns the last drawn frame
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}

// Draw renders the table and HUD into the buffer for a cols x rows screen
func (r *Renderer) Draw(cols, rows int) *Buffer {
	if w, h := r.buf.Bounds(); w != cols || h != rows {
		r.buf.Resize(cols, rows)
	} else {
		r.buf.Clear()
	}

	viewRows := r.ViewRows(rows)
	if cam, err := engine.SingleCamera(r.world); err == nil {
		r.collect()
		r.drawTable(cam, cols, viewRows)
	}

	if r.showHUD {
		r.drawHUD(cols, rows)
	}
	return r.buf
}

// collect caches the entities that do not change shape within a frame
func (r *Renderer) collect() {
	r.cards = r.world.Query().With(r.cardStore).With(r.transformStore).Execute()

	r.props = r.props[:0]
	for _, e := range r.world.Query().With(r.propStore).With(r.transformStore).Execute() {
		prop, _ := r.propStore.Get(e)
		tr, _ := r.transformStore.Get(e)
		half := prop.Size / 2
		r.props = append(r.props, vmath.Box{Center: tr.Translation, Half: mgl64.Vec3{half, half, half}})
	}

	clear(r.tiles)
	for _, e := range r.world.Query().With(r.tileStore).With(r.transformStore).Execute() {
		tile, _ := r.tileStore.Get(e)
		tr, _ := r.transformStore.Get(e)
		r.tiles[tileKey(tr.Translation)] = tile.Shade
	}

	r.hasLit = false
	for _, e := range r.world.Query().With(r.lightStore).With(r.transformStore).Execute() {
		tr, _ := r.transformStore.Get(e)
		r.light = tr.Translation
		r.hasLit = true
		break
	}
}

func (r *Renderer) drawTable(cam engine.CameraView, cols, viewRows int) {
	if cols <= 0 || viewRows <= 0 {
		return
	}
	vp := vmath.Viewport{Width: float64(cols), Height: float64(viewRows) * r.sampler.CellAspect()}

	for y := 0; y < viewRows; y++ {
		for x := 0; x < cols; x++ {
			ray, ok := cam.Projection.ViewportToWorld(cam.Pose, vp, r.sampler.CellToViewport(x, y))
			if !ok {
				continue
			}
			h := r.trace(ray)
			if h.kind == surfaceNone {
				continue
			}
			ch, fg, bg := r.shade(h)
			r.buf.SetWithBg(x, y, ch, fg, bg)
		}
	}
}

// trace finds the nearest surface, cards win ties against the board they rest on
func (r *Renderer) trace(ray vmath.Ray) hit {
	best := hit{distance: math.MaxFloat64}

	if p, ok := ray.HorizontalPlaneHit(vmath.BoardPlaneY); ok {
		if shade, on := r.tiles[tileKey(p)]; on {
			best = hit{kind: surfaceBoard, distance: p.Sub(ray.Origin).Len(), point: p, normal: vmath.Up, shade: shade}
		}
	}

	for _, box := range r.props {
		if d, n, ok := box.Intersect(ray); ok && d < best.distance {
			best = hit{kind: surfaceProp, distance: d, point: ray.Point(d), normal: n}
		}
	}

	for _, e := range r.cards {
		tr, _ := r.transformStore.Get(e)
		quad := vmath.Quad{Pose: tr.Transform, HalfW: constant.CardHalfWidth, HalfH: constant.CardHalfHeight}
		qh, ok := quad.Intersect(ray)
		if !ok || qh.Distance > best.distance+vmath.Epsilon {
			continue
		}
		normal := tr.Forward()
		if !qh.Front {
			normal = normal.Mul(-1)
		}
		best = hit{
			kind: surfaceCard, distance: qh.Distance, point: ray.Point(qh.Distance), normal: normal,
			entity: e, front: qh.Front, u: qh.U, v: qh.V,
		}
	}
	return best
}

func (r *Renderer) shade(h hit) (rune, RGB, RGB) {
	light := r.lambert(h.point, h.normal)

	switch h.kind {
	case surfaceBoard:
		base := Lerp(RGBTileDark, RGBTileLight, h.shade)
		return ' ', RGBHUDText, Scale(base, light)

	case surfaceProp:
		return ' ', RGBHUDText, Scale(RGBProp, light)

	case surfaceCard:
		base := RGBCardBack
		glyph := ' '
		owner, _ := r.ownerStore.Get(h.entity)
		if h.front && owner.Owner == component.OwnerPlayer {
			base = RGBCardFace
			if math.Abs(h.u) < slotGlyphHalf && math.Abs(h.v) < slotGlyphHalf/2 {
				card, _ := r.cardStore.Get(h.entity)
				glyph = rune('1' + card.Slot)
			}
		}
		if hover, _ := r.hoverStore.Get(h.entity); hover.Hovered {
			base = Lerp(base, RGBHover, 0.35)
		}
		if sel, _ := r.selectStore.Get(h.entity); sel.Selected {
			base = Lerp(base, RGBDrag, 0.5)
		}
		return glyph, RGBCardInk, Scale(base, light)
	}
	return ' ', RGBHUDText, RGBSky
}

// lambert returns the light factor at p, flat ambient+diffuse when the scene has no light
func (r *Renderer) lambert(p, normal mgl64.Vec3) float64 {
	if !r.hasLit {
		return ambient + diffuse
	}
	toLight := r.light.Sub(p)
	if toLight.Len() < vmath.Epsilon {
		return ambient + diffuse
	}
	return ambient + diffuse*math.Max(0, normal.Dot(toLight.Normalize()))
}

// tileKey maps a board position to its tile's grid coordinates
func tileKey(p mgl64.Vec3) [2]int {
	return [2]int{
		int(math.Floor(p.X() + constant.BoardOffset + constant.TileSize/2)),
		int(math.Floor(p.Z() + constant.BoardOffset + constant.TileSize/2)),
	}
}

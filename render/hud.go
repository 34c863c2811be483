package render

import (
	"fmt"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/status"
)

const hudHelp = "drag cards with the left button  i:hud  q:quit"

func (r *Renderer) drawHUD(cols, rows int) {
	statusY := rows - 2
	infoY := rows - 1
	if statusY < 0 {
		return
	}
	for y := statusY; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r.buf.SetWithBg(x, y, ' ', RGBHUDText, RGBHUDBg)
		}
	}

	r.buf.WriteString(1, statusY, r.StatusLine(), RGBHUDText)

	if system, err := r.res.Diagnostics.Latest(); err != nil {
		r.buf.WriteString(1, infoY, fmt.Sprintf("%s: %v", system, err), RGBHUDWarning)
		return
	}
	end := r.buf.WriteString(1, infoY, hudHelp, RGBHUDDim)

	if stats, ok := engine.GetResource[*status.Registry](r.world.Resources); ok {
		summary := stats.Summary()
		if x := cols - len(summary) - 1; x > end+2 {
			r.buf.WriteString(x, infoY, summary, RGBHUDDim)
		}
	}
}

// StatusLine summarizes phase, frame and pointer interaction
func (r *Renderer) StatusLine() string {
	phase := "-"
	if session, ok := engine.GetResource[*engine.Session](r.world.Resources); ok {
		phase = session.Phase().String()
	}

	return fmt.Sprintf("%-6s frame %-6d hover %-3s drag %-3s square %s",
		phase,
		r.res.Time.FrameNumber,
		r.cardLabel(r.hoveredCard()),
		r.cardLabel(r.res.Drag.Active),
		r.boardSquare(),
	)
}

func (r *Renderer) hoveredCard() core.Entity {
	for _, e := range r.world.Query().With(r.cardStore).With(r.hoverStore).Execute() {
		if h, _ := r.hoverStore.Get(e); h.Hovered {
			return e
		}
	}
	return core.NoEntity
}

// cardLabel names a card by side and slot, P1..P5 and E1..E5
func (r *Renderer) cardLabel(e core.Entity) string {
	card, ok := r.cardStore.Get(e)
	if e == core.NoEntity || !ok {
		return "-"
	}
	owner, _ := r.ownerStore.Get(e)
	side := 'P'
	if owner.Owner == component.OwnerEnemy {
		side = 'E'
	}
	return fmt.Sprintf("%c%d", side, card.Slot+1)
}

// boardSquare names the tile under the pointer in chess notation, a1 nearest the player's left
func (r *Renderer) boardSquare() string {
	if !r.res.BoardPoint.Valid {
		return "-"
	}
	key := tileKey(r.res.BoardPoint.Point)
	col, row := key[0], key[1]
	if col < 0 || row < 0 || col >= constant.BoardSize || row >= constant.BoardSize {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+col, constant.BoardSize-row)
}

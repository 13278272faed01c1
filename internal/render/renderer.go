// Package render draws a run.Frame onto a tcell screen: the current room as
// emoji tiles, its occupants, a minimap and the status lines.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"medieval-rogue/assets"
	"medieval-rogue/internal/geom"
	"medieval-rogue/internal/run"
)

const glyphLocked = "🔒"

// Renderer draws frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	vp     Viewport
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize recomputes the viewport from the screen size. The bottom rows are
// reserved for the HUD.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.vp = Viewport{Cols: w, Rows: max(1, h-hudRows)}
}

// Viewport returns the current world viewport.
func (r *Renderer) Viewport() Viewport { return r.vp }

// DrawFrame renders the room, its entities, the minimap and the HUD.
func (r *Renderer) DrawFrame(f run.Frame, messages []string) {
	r.screen.Clear()
	r.drawRoom(f)
	r.drawEntities(f)
	r.drawMinimap(f)
	r.drawHUD(f, messages)
	if f.Paused {
		r.drawBanner("PAUSED  [p] resume  [esc] save & quit")
	}
	r.screen.Show()
}

// drawRoom fills every tile of the view with door, wall, obstacle or floor.
func (r *Renderer) drawRoom(f run.Frame) {
	if f.Room == nil {
		return
	}
	theme := themeFor(f.HUD.Floor)
	interior := f.Room.Interior()
	floorStyle := tcell.StyleDefault.Foreground(theme.Accent).Background(tcell.ColorBlack)
	style := tcell.StyleDefault.Background(tcell.ColorBlack)

	for row := 0; row < r.vp.Rows; row++ {
		for tx := 0; tx < r.vp.Tiles(); tx++ {
			tr := r.vp.TileRect(f.Camera, tx, row)
			glyph, st := "", style
			switch open, door := doorAt(f, tr); {
			case door && open:
				glyph = assets.GlyphDoor
			case door:
				glyph = glyphLocked
			default:
				if w, ok := wallAt(f.Walls, tr); ok {
					glyph = theme.Wall
					if interior.ContainsRect(w) {
						glyph = theme.Obstacle
					}
				} else if interior.ContainsPoint(tr.Center()) {
					glyph, st = theme.Floor, floorStyle
				}
			}
			if glyph != "" {
				r.putGlyph(tx*2, row, glyph, st)
			}
		}
	}
}

// doorAt reports whether a door covers tile and whether it is open.
func doorAt(f run.Frame, tile geom.Rect) (open, found bool) {
	for _, d := range f.Doors {
		if d.Rect.Overlaps(tile) {
			return d.Open, true
		}
	}
	return false, false
}

func wallAt(walls []geom.Rect, tile geom.Rect) (geom.Rect, bool) {
	for _, w := range walls {
		if w.Overlaps(tile) {
			return w, true
		}
	}
	return geom.Rect{}, false
}

// drawEntities renders occupants in frame order: pickups, hostiles, shots,
// then the player on top.
func (r *Renderer) drawEntities(f run.Frame) {
	for _, e := range f.Entities {
		v := e.Visual()
		col, row, onScreen := r.vp.ToCell(f.Camera, e.Center())
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Background(tcell.ColorBlack)
		switch v.ID {
		case "arrow":
			style = style.Foreground(color(assets.ColorFriendlyShot))
		case "bolt":
			style = style.Foreground(color(assets.ColorHostileShot))
		}
		if v.Flash {
			style = style.Reverse(true)
		}
		r.putGlyph(col, row, assets.Glyph(v.ID), style)
	}
}

// drawBanner writes a centred line in the middle of the view.
func (r *Renderer) drawBanner(text string) {
	w := runewidth.StringWidth(text)
	x := max(0, (r.vp.Cols-w)/2)
	r.drawText(x, r.vp.Rows/2, text, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow))
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

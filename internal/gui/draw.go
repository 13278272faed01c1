package gui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"medieval-rogue/assets"
	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/geom"
	"medieval-rogue/internal/run"
)

const (
	hudHeight   = 64
	miniCell    = 10
	miniMargin  = 12
	bossBarW    = 400
	messageLeft = 16
)

func rgba(c assets.RGB) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

func fillRect(dst *ebiten.Image, r geom.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// drawFrame draws the room, its occupants and the HUD.
func (a *App) drawFrame(screen *ebiten.Image, f run.Frame) {
	if f.Room == nil {
		return
	}
	cam := f.Camera
	fillRect(screen, cam.ApplyRect(f.Room.Interior()), rgba(assets.ColorFloor))

	interior := f.Room.Interior()
	for _, w := range f.Walls {
		clr := rgba(assets.ColorBorder)
		if interior.ContainsRect(w) {
			clr = rgba(assets.ColorObstacle)
		}
		fillRect(screen, cam.ApplyRect(w), clr)
	}
	for _, d := range f.Doors {
		clr := rgba(assets.ColorDoorClosed)
		if d.Open {
			clr = rgba(assets.ColorDoorOpen)
		}
		fillRect(screen, cam.ApplyRect(d.Rect), clr)
	}

	for _, e := range f.Entities {
		v := e.Visual()
		r := cam.ApplyRect(e.Rect())
		c := r.Center()
		switch v.ID {
		case "arrow":
			vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(r.W/2), rgba(assets.ColorFriendlyShot), true)
		case "bolt":
			vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(r.W/2), rgba(assets.ColorHostileShot), true)
		default:
			clr := rgba(assets.EntityColors[v.ID])
			if v.Flash {
				clr = rgba(assets.ColorWhite)
			}
			vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(min(r.W, r.H)/2), clr, true)
			if !v.Facing.IsZero() {
				tip := c.Add(v.Facing.Scale(min(r.W, r.H) / 2))
				vector.StrokeLine(screen, float32(c.X), float32(c.Y), float32(tip.X), float32(tip.Y), 2, rgba(assets.ColorWhite), true)
			}
		}
	}

	a.drawMinimap(screen, f.Minimap)
	a.drawHUD(screen, f.HUD)
}

func (a *App) drawHUD(screen *ebiten.Image, h run.HUD) {
	w := float64(screen.Bounds().Dx())
	top := float64(screen.Bounds().Dy() - hudHeight)
	fillRect(screen, geom.R(0, top, w, hudHeight), color.RGBA{0, 0, 0, 200})

	name := h.ClassID
	for _, c := range assets.Classes {
		if c.ID == h.ClassID {
			name = c.Name
		}
	}
	status := a.printer.Sprintf("%s   HP %d/%d   Score %d   Time %s   Floor %d/%d  %s",
		name, h.HP, h.MaxHP, h.Score, clock(h.Elapsed), h.Floor+1, h.Floors, h.FloorName)
	drawText(screen, status, a.regular, messageLeft, top+8, rgba(assets.ColorWhite))

	// hearts
	for i := range h.MaxHP {
		clr := rgba(assets.ColorGray)
		if i < h.HP {
			clr = rgba(assets.ColorRed)
		}
		fillRect(screen, geom.R(messageLeft+float64(i)*18, top+38, 14, 14), clr)
	}
	if len(h.Inventory) > 0 {
		names := make([]string, len(h.Inventory))
		for i, id := range h.Inventory {
			names[i] = assets.ItemName(id)
		}
		drawText(screen, "Items: "+strings.Join(names, ", "), a.small, messageLeft+float64(h.MaxHP)*18+16, top+36, rgba(assets.ColorGray))
	}

	switch {
	case h.BossKind != "":
		x := (w - bossBarW) / 2
		fillRect(screen, geom.R(x, 16, bossBarW, 14), rgba(assets.ColorGray))
		if h.BossMax > 0 {
			fillRect(screen, geom.R(x, 16, bossBarW*float64(h.BossHP)/float64(h.BossMax), 14), rgba(assets.ColorRed))
		}
		drawCentered(screen, assets.BossNames[h.BossKind], a.small, 34, rgba(assets.ColorWhite))
	case h.CanAdvance:
		drawCentered(screen, "The way down is open. Press [N] to descend.", a.regular, 16, rgba(assets.ColorYellow))
	}

	for i, msg := range a.messages {
		drawText(screen, msg, a.small, messageLeft, 16+float64(i)*20, rgba(assets.ColorWhite))
	}
}

func (a *App) drawMinimap(screen *ebiten.Image, cells []run.MapCell) {
	if len(cells) == 0 {
		return
	}
	minX, minY := cells[0].Pos.X, cells[0].Pos.Y
	maxX := minX
	for _, c := range cells {
		minX = min(minX, c.Pos.X)
		minY = min(minY, c.Pos.Y)
		maxX = max(maxX, c.Pos.X+c.W)
	}
	left := float64(screen.Bounds().Dx()) - miniMargin - float64(maxX-minX)*miniCell
	for _, c := range cells {
		clr := rgba(assets.ColorGray)
		switch {
		case c.Current:
			clr = rgba(assets.ColorYellow)
		case c.Kind == dungeon.KindBoss:
			clr = rgba(assets.ColorRed)
		case c.Visited:
			clr = rgba(assets.ColorWhite)
		}
		x := left + float64(c.Pos.X-minX)*miniCell
		y := miniMargin + float64(c.Pos.Y-minY)*miniCell
		fillRect(screen, geom.R(x+1, y+1, float64(c.W)*miniCell-2, float64(c.H)*miniCell-2), clr)
	}
}

// drawBanner dims the screen and shows a centred line.
func drawBanner(screen *ebiten.Image, a *App, msg string) {
	b := screen.Bounds()
	fillRect(screen, geom.R(0, 0, float64(b.Dx()), float64(b.Dy())), color.RGBA{0, 0, 0, 140})
	drawCentered(screen, msg, a.bold, float64(b.Dy())/2-20, rgba(assets.ColorWhite))
}

func clock(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

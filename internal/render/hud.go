package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"medieval-rogue/assets"
	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/run"
)

// hudRows is the number of rows reserved at the bottom of the screen.
const hudRows = 4

var printer = message.NewPrinter(language.English)

// FormatScore renders n with thousands separators.
func FormatScore(n int) string { return printer.Sprintf("%d", n) }

// FormatClock renders seconds as mm:ss.
func FormatClock(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// Hearts draws hp out of maxHP as filled and empty hearts.
func Hearts(hp, maxHP int) string {
	hp = min(max(hp, 0), maxHP)
	return strings.Repeat("♥", hp) + strings.Repeat("♡", maxHP-hp)
}

// Bar draws a proportional bar width cells wide.
func Bar(cur, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	n := min(max(cur*width/total, 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// drawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) drawHUD(f run.Frame, messages []string) {
	w, screenH := r.screen.Size()
	hudY := screenH - hudRows
	hud := f.HUD

	r.drawHLine(hudY, themeFor(hud.Floor).Accent)

	name := hud.ClassID
	if c, ok := classByID(hud.ClassID); ok {
		name = c.Emoji + " " + c.Name
	}
	status := fmt.Sprintf("[%s]  HP %s %d/%d  Score %s  Time %s  Floor %d/%d  %s",
		name, Hearts(hud.HP, hud.MaxHP), hud.HP, hud.MaxHP,
		FormatScore(hud.Score), FormatClock(hud.Elapsed), hud.Floor+1, hud.Floors, hud.FloorName)
	r.drawText(0, hudY+1, runewidth.Truncate(status, w, "…"), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	var second string
	style := tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	switch {
	case hud.BossKind != "":
		second = fmt.Sprintf("%s  %s %d/%d", bossName(hud.BossKind), Bar(hud.BossHP, hud.BossMax, 20), hud.BossHP, hud.BossMax)
		style = tcell.StyleDefault.Foreground(color(assets.ColorRed))
	case hud.CanAdvance:
		second = "The way down is open. Press [n] to descend."
		style = tcell.StyleDefault.Foreground(color(assets.ColorYellow))
	case len(hud.Inventory) > 0:
		names := make([]string, len(hud.Inventory))
		for i, id := range hud.Inventory {
			names[i] = assets.ItemName(id)
		}
		second = "Items: " + strings.Join(names, ", ")
	}
	r.drawText(0, hudY+2, runewidth.Truncate(second, w, "…"), style)

	if n := len(messages); n > 0 {
		r.drawText(0, hudY+3, runewidth.Truncate(messages[n-1], w, "…"), tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

// drawMinimap renders the discovered rooms in the top-right corner. Each grid
// cell is two columns by one row.
func (r *Renderer) drawMinimap(f run.Frame) {
	if len(f.Minimap) == 0 {
		return
	}
	minX, minY := f.Minimap[0].Pos.X, f.Minimap[0].Pos.Y
	maxX, maxY := minX, minY
	for _, c := range f.Minimap {
		minX, minY = min(minX, c.Pos.X), min(minY, c.Pos.Y)
		maxX, maxY = max(maxX, c.Pos.X+c.W-1), max(maxY, c.Pos.Y+c.H-1)
	}
	x0 := r.vp.Cols - (maxX-minX+1)*2 - 1
	if x0 < 0 || maxY-minY+1 > r.vp.Rows {
		return
	}
	for _, c := range f.Minimap {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		switch {
		case c.Current:
			style = tcell.StyleDefault.Foreground(color(assets.ColorYellow))
		case c.Kind == dungeon.KindBoss:
			style = tcell.StyleDefault.Foreground(color(assets.ColorRed))
		case c.Visited:
			style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
		}
		for dy := 0; dy < c.H; dy++ {
			for dx := 0; dx < c.W; dx++ {
				x := x0 + (c.Pos.X+dx-minX)*2
				y := c.Pos.Y + dy - minY
				r.screen.SetContent(x, y, '█', nil, style)
				r.screen.SetContent(x+1, y, '▌', nil, style)
			}
		}
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text advancing by each rune's display width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}

func classByID(id string) (assets.ClassDef, bool) {
	for _, c := range assets.Classes {
		if c.ID == id {
			return c, true
		}
	}
	return assets.ClassDef{}, false
}

func bossName(kind string) string {
	if n, ok := assets.BossNames[kind]; ok {
		return n
	}
	return kind
}

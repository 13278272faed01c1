package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"medieval-rogue/assets"
)

// runClassSelect shows the class selection screen and blocks until the player
// picks an unlocked class. ok is false if the player quits without selecting.
func (g *Game) runClassSelect(ctx context.Context) (classID string, ok bool, err error) {
	selected := 0
	status := ""
	n := len(assets.Classes)
	pick := func(i int) bool {
		c := assets.Classes[i]
		if g.locked(c) {
			status = fmt.Sprintf("%s is locked. %s.", c.Name, c.UnlockBy)
			return false
		}
		classID = c.ID
		return true
	}
	for {
		g.drawClassSelect(selected, status)
		ev, err := g.nextEvent(ctx)
		if err != nil {
			return "", false, err
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			status = ""
			switch ev.Key() {
			case tcell.KeyUp:
				selected = (selected - 1 + n) % n
			case tcell.KeyDown:
				selected = (selected + 1) % n
			case tcell.KeyEnter:
				if pick(selected) {
					return classID, true, nil
				}
			case tcell.KeyEscape:
				return "", false, nil
			case tcell.KeyRune:
				switch r := ev.Rune(); r {
				case 'k', 'K', 'w', 'W':
					selected = (selected - 1 + n) % n
				case 'j', 'J', 's', 'S':
					selected = (selected + 1) % n
				case 'q', 'Q':
					return "", false, nil
				default:
					if idx := int(r - '1'); idx >= 0 && idx < n {
						selected = idx
						if pick(idx) {
							return classID, true, nil
						}
					}
				}
			}
		}
	}
}

// locked reports whether c is still behind a profile unlock.
func (g *Game) locked(c assets.ClassDef) bool {
	return c.Locked && !g.profile.Unlocked(c.ID)
}

// drawClassSelect renders the full class selection UI to the screen.
func (g *Game) drawClassSelect(selected int, status string) {
	g.screen.Clear()
	w, _ := g.screen.Size()

	titleStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 160, 90)).Bold(true)
	normalStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlightStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(200, 160, 90))
	statStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 220, 255))
	lockedStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 90, 90))

	centerText := func(y int, text string, style tcell.Style) {
		x := max(0, (w-runewidth.StringWidth(text))/2)
		drawScreenText(g.screen, x, y, text, style)
	}

	centerText(1, "⚔ MEDIEVAL ROGUE ⚔", titleStyle)
	centerText(2, "Choose your hero", dimStyle)

	// Each class occupies 3 lines + 1 blank. Start at row 4.
	startY := 4
	for i, class := range assets.Classes {
		y := startY + i*4
		prefix := "  "
		lineStyle := normalStyle
		if i == selected {
			prefix = "► "
			lineStyle = highlightStyle
		}
		locked := g.locked(class)

		nameLine := fmt.Sprintf("%s[%d] %s %s", prefix, i+1, class.Emoji, class.Name)
		if locked {
			nameLine = fmt.Sprintf("%s[%d] %s %s  (locked)", prefix, i+1, class.Emoji, class.Name)
			if i != selected {
				lineStyle = lockedStyle
			}
		}
		drawScreenText(g.screen, 2, y, nameLine, lineStyle)

		if locked {
			drawScreenText(g.screen, 2, y+1, "      "+class.UnlockBy, lockedStyle)
			continue
		}
		drawScreenText(g.screen, 2, y+1, fmt.Sprintf("      %q", class.Lore), dimStyle)
		statsLine := fmt.Sprintf("      HP:%-2d DMG:%-2d SPD:%-4.0f RATE:%.1f/s SHOT:%-4.0f",
			class.HP, class.Damage, class.Speed, class.FireRate, class.ProjSpeed)
		drawScreenText(g.screen, 2, y+2, statsLine, statStyle)
	}

	y := startY + len(assets.Classes)*4
	if status != "" {
		centerText(y, status, tcell.StyleDefault.Foreground(tcell.ColorRed))
	}
	y += 2
	for _, line := range g.profileLines() {
		drawScreenText(g.screen, 4, y, line, dimStyle)
		y++
	}
	centerText(y+1, "[w/s or ↑/↓] Navigate   [1-4] Quick-select   [Enter] Confirm   [q] Quit", dimStyle)

	g.screen.Show()
}

// drawScreenText writes a string to the screen at (x, y) with the given style.
func drawScreenText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}

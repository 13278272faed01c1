package game

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"medieval-rogue/assets"
	"medieval-rogue/internal/render"
	"medieval-rogue/internal/run"
	"medieval-rogue/internal/save"
)

// showEndScreen records a qualifying highscore, then renders the run
// summary. It returns true if the player wants to try again, false to quit.
func (g *Game) showEndScreen(ctx context.Context, r *run.Run) (bool, error) {
	won := r.State() == run.Won
	final := r.FinalScore()

	table, err := g.opts.Store.Highscores()
	if err != nil {
		g.log.Warn("load highscores", "error", err)
	}
	rank := -1
	if err == nil && save.Qualifies(table, final) {
		name, err := g.enterName(ctx, final)
		if err != nil {
			return false, err
		}
		if t, err := g.opts.Store.AddHighscore(save.Highscore{Name: name, Score: final}); err != nil {
			g.log.Warn("add highscore", "error", err)
		} else {
			table = t
			rank = slices.IndexFunc(table, func(h save.Highscore) bool {
				return h.Name == save.NormalizeName(name) && h.Score == final
			})
		}
	}

	type killEntry struct {
		kind  string
		count int
	}
	var kills []killEntry
	for k, c := range g.runLog.EnemiesKilled {
		kills = append(kills, killEntry{k, c})
	}
	slices.SortFunc(kills, func(a, b killEntry) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return strings.Compare(a.kind, b.kind)
	})

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	class, _ := classByID(g.runLog.Class)
	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		// label prints a left-aligned key at column 2 and value at column 20.
		label := func(y int, l, v string) {
			drawScreenText(g.screen, 2, y, l, dim)
			drawScreenText(g.screen, 20, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		if won {
			drawScreenText(g.screen, 2, y, "YOU CLIMB INTO THE DAYLIGHT", gold)
			badge := "[VICTORY]"
			drawScreenText(g.screen, sw-len(badge)-1, y, badge, green)
		} else {
			drawScreenText(g.screen, 2, y, "THE ABBEY KEEPS YOU", gold)
			badge := "[DEFEAT]"
			drawScreenText(g.screen, sw-len(badge)-1, y, badge, red)
		}
		y += 2

		label(y, "Class:", class.Emoji+" "+class.Name)
		y++
		floor := g.runLog.FloorsReached
		label(y, "Floor Reached:", fmt.Sprintf("%d, %s", floor, assets.FloorName(floor-1)))
		y++
		label(y, "Time:", render.FormatClock(g.runLog.Elapsed))
		y += 2

		label(y, "Enemies Slain:", fmt.Sprintf("%d", g.runLog.Kills()))
		y++
		if len(kills) > 0 {
			var b strings.Builder
			for _, e := range kills {
				fmt.Fprintf(&b, "%s×%d  ", assets.Glyph(e.kind), e.count)
			}
			drawScreenText(g.screen, 4, y, b.String(), dim)
			y++
		}
		label(y, "Rooms Cleared:", fmt.Sprintf("%d", g.runLog.RoomsCleared))
		y++
		label(y, "Hits Taken:", fmt.Sprintf("%d", g.runLog.HitsTaken))
		y++
		items := make([]string, len(g.runLog.ItemsPicked))
		for i, id := range g.runLog.ItemsPicked {
			items[i] = assets.ItemName(id)
		}
		label(y, "Items:", strings.Join(items, ", "))
		y += 2

		label(y, "Score:", render.FormatScore(g.runLog.Score))
		y++
		label(y, "Final Score:", render.FormatScore(final))
		y += 2

		drawScreenText(g.screen, 2, y, "HIGHSCORES", gold)
		y++
		for i, h := range table {
			style := white
			if i == rank {
				style = green
			}
			drawScreenText(g.screen, 4, y, fmt.Sprintf("%2d. %-8s %10s", i+1, h.Name, render.FormatScore(h.Score)), style)
			y++
		}
		y++
		sep(y)
		y += 2

		drawScreenText(g.screen, 2, y, "[R] Try Again", green)
		drawScreenText(g.screen, 18, y, "[Q] Quit", red)
		g.screen.Show()

		ev, err := g.nextEvent(ctx)
		if err != nil {
			return false, err
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true, nil
				case 'q', 'Q':
					return false, nil
				}
			case tcell.KeyEscape:
				return false, nil
			}
		}
	}
}

// enterName asks for a highscore name, prefilled with the slot name.
func (g *Game) enterName(ctx context.Context, score int) (string, error) {
	name := []rune(save.NormalizeName(g.opts.Slot))
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for {
		g.screen.Clear()
		_, h := g.screen.Size()
		y := h/2 - 2
		drawScreenText(g.screen, 2, y, "NEW HIGHSCORE: "+render.FormatScore(score), gold)
		field := string(name) + strings.Repeat("_", save.MaxNameLen-len(name))
		drawScreenText(g.screen, 2, y+2, "Name: "+field, white)
		drawScreenText(g.screen, 2, y+4, "[Enter] Confirm   [Backspace] Delete", tcell.StyleDefault.Foreground(tcell.ColorGray))
		g.screen.Show()

		ev, err := g.nextEvent(ctx)
		if err != nil {
			return "", err
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				return save.NormalizeName(string(name)), nil
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(name) > 0 {
					name = name[:len(name)-1]
				}
			case tcell.KeyRune:
				r := unicode.ToUpper(ev.Rune())
				if len(name) < save.MaxNameLen && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
					name = append(name, r)
				}
			}
		}
	}
}

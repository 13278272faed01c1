package game

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"medieval-rogue/internal/entity"
	"medieval-rogue/internal/geom"
)

// Terminals only report presses, so a key counts as held for a short window
// after each press. The first window spans the terminal's repeat delay.
const (
	holdInitial = 0.55
	holdRepeat  = 0.12
)

// aimReach is how far ahead of the player arrow-key fire aims.
const aimReach = 100

// intent is a held input: a movement or a fire direction.
type intent uint8

const (
	moveUp intent = iota
	moveDown
	moveLeft
	moveRight
	fireUp
	fireDown
	fireLeft
	fireRight
	numIntents
)

// opposite returns the intent that cancels i.
func (i intent) opposite() intent {
	switch i {
	case moveUp, fireUp:
		return i + 1
	case moveDown, fireDown:
		return i - 1
	case moveLeft, fireLeft:
		return i + 1
	default:
		return i - 1
	}
}

// command is a one-shot input consumed by the next frame.
type command uint8

const (
	cmdNone command = iota
	cmdPause
	cmdAdvance
	cmdMenu
)

// keyIntent maps a tcell key event to a held intent.
func keyIntent(ev *tcell.EventKey) (intent, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return fireUp, true
	case tcell.KeyDown:
		return fireDown, true
	case tcell.KeyLeft:
		return fireLeft, true
	case tcell.KeyRight:
		return fireRight, true
	case tcell.KeyRune:
	default:
		return 0, false
	}
	switch unicode.ToLower(ev.Rune()) {
	case 'w':
		return moveUp, true
	case 's':
		return moveDown, true
	case 'a':
		return moveLeft, true
	case 'd':
		return moveRight, true
	case 'i':
		return fireUp, true
	case 'k':
		return fireDown, true
	case 'j':
		return fireLeft, true
	case 'l':
		return fireRight, true
	}
	return 0, false
}

// keyCommand maps a tcell key event to a one-shot command.
func keyCommand(ev *tcell.EventKey) command {
	if ev.Key() == tcell.KeyEscape {
		return cmdMenu
	}
	if ev.Key() != tcell.KeyRune {
		return cmdNone
	}
	switch unicode.ToLower(ev.Rune()) {
	case 'p':
		return cmdPause
	case 'n':
		return cmdAdvance
	case 'q':
		return cmdMenu
	}
	return cmdNone
}

// controls accumulates terminal events between frames and turns them into
// the per-frame input snapshot.
type controls struct {
	until [numIntents]float64 // held while until > now

	pause, advance, menu bool

	mouseDown          bool
	mouseCol, mouseRow int
}

// key records a key press at time now, in seconds.
func (c *controls) key(ev *tcell.EventKey, now float64) {
	if it, ok := keyIntent(ev); ok {
		if c.until[it] > now {
			c.until[it] = max(c.until[it], now+holdRepeat)
		} else {
			c.until[it] = now + holdInitial
		}
		c.until[it.opposite()] = 0
		return
	}
	switch keyCommand(ev) {
	case cmdPause:
		c.pause = true
	case cmdAdvance:
		c.advance = true
	case cmdMenu:
		c.menu = true
	}
}

// mouse records the pointer cell and whether the primary button is down.
func (c *controls) mouse(ev *tcell.EventMouse) {
	c.mouseCol, c.mouseRow = ev.Position()
	c.mouseDown = ev.Buttons()&tcell.Button1 != 0
}

// reset forgets held keys and pending commands, e.g. after a menu.
func (c *controls) reset() {
	*c = controls{mouseCol: c.mouseCol, mouseRow: c.mouseRow}
}

// snapshot builds the input for one frame. Arrow fire wins over the mouse.
// toWorld converts a screen cell to a world point for mouse aim.
func (c *controls) snapshot(now float64, player geom.Vec, toWorld func(col, row int) geom.Vec) entity.Input {
	held := func(i intent) bool { return c.until[i] > now }
	axis := func(neg, pos intent) float64 {
		switch {
		case held(neg):
			return -1
		case held(pos):
			return 1
		}
		return 0
	}

	var in entity.Input
	in.Move = geom.V(axis(moveLeft, moveRight), axis(moveUp, moveDown))
	fire := geom.V(axis(fireLeft, fireRight), axis(fireUp, fireDown))
	switch {
	case !fire.IsZero():
		in.Fire = true
		in.Aim = player.Add(fire.Normalize().Scale(aimReach))
	case c.mouseDown:
		in.Fire = true
		in.Aim = toWorld(c.mouseCol, c.mouseRow)
	}

	in.Pause, in.Advance, in.Menu = c.pause, c.advance, c.menu
	c.pause, c.advance, c.menu = false, false, false
	return in
}

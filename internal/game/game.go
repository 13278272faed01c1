// Package game is the terminal front-end: it owns a tcell screen, reads the
// keyboard and mouse, drives a run in real time and shows the menus around it.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"medieval-rogue/assets"
	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/config"
	"medieval-rogue/internal/geom"
	"medieval-rogue/internal/render"
	"medieval-rogue/internal/run"
	"medieval-rogue/internal/save"
)

// maxDelta caps a frame's dt so a stalled terminal does not teleport entities.
const maxDelta = 0.1

// Cues plays presentation feedback for frame events.
type Cues interface {
	Play(ev combat.Event)
}

// Options configures a Game. Store and Slot are required.
type Options struct {
	Settings config.Settings
	Store    save.Store
	Slot     string // save slot, usually the player name
	DataDir  string // run log location; save.DataDir when empty
	Cues     Cues
	Logger   *slog.Logger
}

// Game is the top-level orchestrator for one terminal.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	opts     Options
	log      *slog.Logger
	profile  *save.ProfileRecorder

	events   chan tcell.Event
	ctl      controls
	start    time.Time
	messages []string
	runLog   RunLog
}

// New creates a Game on an initialised screen. The game takes ownership of
// the screen and finalizes it when Run returns.
func New(screen tcell.Screen, opts Options) (*Game, error) {
	if opts.Store == nil {
		return nil, errors.New("game: no store")
	}
	if opts.Slot == "" {
		opts.Slot = "local"
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		opts:     opts,
		log:      log,
		profile:  &save.ProfileRecorder{Store: opts.Store, Slot: opts.Slot, Logger: log},
		events:   make(chan tcell.Event, 64),
		start:    time.Now(),
	}, nil
}

// Run is the main game loop. Supports multiple consecutive runs via Try Again.
// It returns when the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	quit := make(chan struct{})
	defer g.screen.Fini()
	defer close(quit)
	go g.pump(quit)

	if err := g.showTitle(ctx); err != nil {
		return ignoreCancel(err)
	}
	for {
		r, err := g.startRun(ctx)
		if err != nil || r == nil {
			return ignoreCancel(err)
		}
		quitMid, err := g.play(ctx, r)
		if err != nil || quitMid {
			return ignoreCancel(err)
		}

		g.runLog.finish(r, time.Now())
		if err := saveRunLog(g.dataDir(), g.runLog); err != nil {
			g.log.Warn("save run log", "run", r.ID(), "error", err)
		}
		again, err := g.showEndScreen(ctx, r)
		if err != nil || !again {
			return ignoreCancel(err)
		}
	}
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pump forwards screen events until the screen is finalized or quit closes.
func (g *Game) pump(quit <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case g.events <- ev:
		case <-quit:
			return
		}
	}
}

// nextEvent blocks for the next screen event.
func (g *Game) nextEvent(ctx context.Context) (tcell.Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev := <-g.events:
		return ev, nil
	}
}

// clock is the game's monotonic time in seconds.
func (g *Game) clock() float64 { return time.Since(g.start).Seconds() }

func (g *Game) dataDir() string {
	if g.opts.DataDir != "" {
		return g.opts.DataDir
	}
	dir, err := save.DataDir()
	if err != nil {
		return "."
	}
	return dir
}

// startRun resumes the slot's saved run when there is a usable one, else
// asks for a class and starts fresh. A nil run means the player quit.
func (g *Game) startRun(ctx context.Context) (*run.Run, error) {
	g.messages = nil
	g.ctl.reset()

	st, err := g.opts.Store.LoadRun(g.opts.Slot)
	if err == nil {
		r, rerr := run.Resume(g.runOptions(""), st)
		if rerr == nil {
			g.runLog = newRunLog(r, g.opts.Slot)
			g.addMessage(fmt.Sprintf("You return to %s.", assets.FloorName(r.Floor())))
			return r, nil
		}
		err = rerr
	}
	if !errors.Is(err, save.ErrNoSave) {
		g.log.Warn("discarding saved run", "slot", g.opts.Slot, "error", err)
		if cerr := g.opts.Store.ClearRun(g.opts.Slot); cerr != nil {
			g.log.Warn("clear saved run", "slot", g.opts.Slot, "error", cerr)
		}
	}

	classID, ok, err := g.runClassSelect(ctx)
	if err != nil || !ok {
		return nil, err
	}
	r, err := run.New(g.runOptions(classID))
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	g.runLog = newRunLog(r, g.opts.Slot)
	class, _ := classByID(classID)
	g.addMessage(fmt.Sprintf("You enter %s as the %s.", assets.FloorName(0), class.Name))
	g.addLore(0)
	g.addMessage("WASD to move, arrows or mouse to shoot, [p] pause, [esc] save & quit.")
	return r, nil
}

func (g *Game) runOptions(classID string) run.Options {
	seed := time.Now().UnixNano()
	if s := g.opts.Settings.Generation.Seed; s != nil {
		seed = *s
	}
	return run.Options{
		Settings: g.opts.Settings,
		ClassID:  classID,
		Seed:     seed,
		Saver:    save.Slot{Store: g.opts.Store, Name: g.opts.Slot},
		Profile:  g.profile,
		Logger:   g.log,
	}
}

// play drives r at the configured frame rate until it ends or the player
// saves and quits. quit reports the latter.
func (g *Game) play(ctx context.Context, r *run.Run) (quit bool, err error) {
	ticker := time.NewTicker(time.Second / time.Duration(g.opts.Settings.Display.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			r.Save()
			return true, ctx.Err()

		case ev := <-g.events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				g.screen.Sync()
				g.renderer.Resize()
			case *tcell.EventKey:
				g.ctl.key(ev, g.clock())
			case *tcell.EventMouse:
				g.ctl.mouse(ev)
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), maxDelta)
			last = now
			in := g.ctl.snapshot(g.clock(), r.Player().Pos, func(col, row int) geom.Vec {
				return g.renderer.Viewport().ToWorld(*r.Camera(), col, row)
			})
			if in.Menu {
				ok, err := g.confirm(ctx, "Save and quit? [y/n]")
				if err != nil || ok {
					r.Save()
					return true, err
				}
				g.ctl.reset()
				last = time.Now()
				continue
			}

			f := r.Update(dt, in)
			for _, ev := range f.Events {
				g.observe(ev)
			}
			g.renderer.DrawFrame(f, g.messages)
			if f.State != run.Playing {
				return false, nil
			}
		}
	}
}

// observe feeds one frame event to the run log, the audio cues and the
// message log.
func (g *Game) observe(ev combat.Event) {
	g.runLog.record(ev)
	if g.opts.Cues != nil {
		g.opts.Cues.Play(ev)
	}
	if msg := ev.Message(); msg != "" {
		g.addMessage(msg)
	}
	if ev.Kind == combat.FloorAdvanced {
		g.addLore(g.runLog.FloorsReached - 1)
	}
}

func (g *Game) addLore(floor int) {
	if floor < 0 || floor >= len(assets.FloorLore) {
		return
	}
	if lore := assets.FloorLore[floor]; len(lore) > 0 {
		g.addMessage(lore[rand.IntN(len(lore))])
	}
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}
}

func (g *Game) profileLines() []string {
	p, err := g.opts.Store.LoadProfile(g.opts.Slot)
	if err != nil {
		return nil
	}
	return p.Lines()
}

// showTitle displays the opening lore until a key is pressed.
func (g *Game) showTitle(ctx context.Context) error {
	for {
		g.screen.Clear()
		w, h := g.screen.Size()
		lines := strings.Split(assets.LoreOpening, "\n")
		y := max(0, (h-len(lines))/2)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 160, 90))
		for i, line := range lines {
			x := max(0, (w-runewidth.StringWidth(line))/2)
			drawScreenText(g.screen, x, y+i, line, style)
		}
		g.screen.Show()

		ev, err := g.nextEvent(ctx)
		if err != nil {
			return err
		}
		switch ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			return nil
		}
	}
}

// confirm overlays prompt and waits for y or n. Escape counts as no.
func (g *Game) confirm(ctx context.Context, prompt string) (bool, error) {
	w, h := g.screen.Size()
	x := max(0, (w-runewidth.StringWidth(prompt))/2)
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	for {
		drawScreenText(g.screen, x, h/2, prompt, style)
		g.screen.Show()
		ev, err := g.nextEvent(ctx)
		if err != nil {
			return false, err
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape {
				return false, nil
			}
			switch ev.Rune() {
			case 'y', 'Y':
				return true, nil
			case 'n', 'N':
				return false, nil
			}
		}
	}
}

func classByID(id string) (assets.ClassDef, bool) {
	for _, c := range assets.Classes {
		if c.ID == id {
			return c, true
		}
	}
	return assets.ClassDef{ID: id, Name: id}, false
}

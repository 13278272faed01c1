// Package gui is the windowed front-end: the same runs as the terminal
// build, drawn with ebiten shapes and text.
package gui

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/config"
	"medieval-rogue/internal/run"
	"medieval-rogue/internal/save"
)

// MaxDeltaTime caps a frame's dt after a stall.
const MaxDeltaTime = 0.1

// Cues plays presentation feedback for frame events.
type Cues interface {
	Play(ev combat.Event)
}

// Options configures the window. Store is required.
type Options struct {
	Settings config.Settings
	Store    save.Store
	Slot     string
	Cues     Cues
	Logger   *slog.Logger
}

// State is one screen of the application.
type State interface {
	Enter()
	Update(dt float64) error
	Draw(screen *ebiten.Image)
}

// App implements ebiten.Game.
type App struct {
	opts    Options
	log     *slog.Logger
	profile *save.ProfileRecorder
	printer *message.Printer

	regular *text.GoTextFace
	bold    *text.GoTextFace
	small   *text.GoTextFace

	current  State
	lastTime time.Time
	messages []string
}

// New loads the fonts and opens on the title screen.
func New(opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, errors.New("gui: no store")
	}
	if opts.Slot == "" {
		opts.Slot = "local"
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	regSrc, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	boldSrc, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	a := &App{
		opts:     opts,
		log:      log,
		profile:  &save.ProfileRecorder{Store: opts.Store, Slot: opts.Slot, Logger: log},
		printer:  message.NewPrinter(language.English),
		regular:  &text.GoTextFace{Source: regSrc, Size: 20},
		bold:     &text.GoTextFace{Source: boldSrc, Size: 36},
		small:    &text.GoTextFace{Source: regSrc, Size: 16},
		lastTime: time.Now(),
	}
	a.SetState(&titleState{app: a})
	return a, nil
}

// Run opens the window and blocks until it closes.
func (a *App) Run() error {
	d := a.opts.Settings.Display
	ebiten.SetWindowSize(d.Width, d.Height)
	ebiten.SetWindowTitle("Medieval Rogue")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(d.FPS)
	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// SetState switches screens.
func (a *App) SetState(s State) {
	a.current = s
	a.current.Enter()
}

func (a *App) Update() error {
	now := time.Now()
	dt := min(now.Sub(a.lastTime).Seconds(), MaxDeltaTime)
	a.lastTime = now
	return a.current.Update(dt)
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{12, 10, 16, 255})
	a.current.Draw(screen)
}

func (a *App) Layout(_, _ int) (int, int) {
	d := a.opts.Settings.Display
	return d.Width, d.Height
}

// startRun resumes the slot's saved run when possible. ok is false when the
// player must pick a class first.
func (a *App) startRun() (*run.Run, bool) {
	a.messages = nil
	st, err := a.opts.Store.LoadRun(a.opts.Slot)
	if err == nil {
		r, rerr := run.Resume(a.runOptions(""), st)
		if rerr == nil {
			return r, true
		}
		err = rerr
	}
	if !errors.Is(err, save.ErrNoSave) {
		a.log.Warn("discarding saved run", "slot", a.opts.Slot, "error", err)
		if cerr := a.opts.Store.ClearRun(a.opts.Slot); cerr != nil {
			a.log.Warn("clear saved run", "slot", a.opts.Slot, "error", cerr)
		}
	}
	return nil, false
}

func (a *App) runOptions(classID string) run.Options {
	seed := time.Now().UnixNano()
	if s := a.opts.Settings.Generation.Seed; s != nil {
		seed = *s
	}
	return run.Options{
		Settings: a.opts.Settings,
		ClassID:  classID,
		Seed:     seed,
		Saver:    save.Slot{Store: a.opts.Store, Name: a.opts.Slot},
		Profile:  a.profile,
		Logger:   a.log,
	}
}

func (a *App) addMessage(msg string) {
	a.messages = append(a.messages, msg)
	if len(a.messages) > 5 {
		a.messages = a.messages[len(a.messages)-5:]
	}
}

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = face.Metrics().HAscent + face.Metrics().HDescent + 4
	text.Draw(dst, s, face, op)
}

// drawCentered draws s horizontally centred at row y.
func drawCentered(dst *ebiten.Image, s string, face text.Face, y float64, clr color.Color) {
	w, _ := text.Measure(s, face, 0)
	drawText(dst, s, face, (float64(dst.Bounds().Dx())-w)/2, y, clr)
}

package gui

import (
	"fmt"
	"image/color"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"medieval-rogue/assets"
	"medieval-rogue/internal/run"
	"medieval-rogue/internal/save"
)

var (
	gold  = color.RGBA{200, 160, 90, 255}
	white = color.RGBA{235, 235, 235, 255}
	gray  = color.RGBA{120, 120, 120, 255}
	red   = color.RGBA{220, 70, 70, 255}
	green = color.RGBA{80, 200, 120, 255}
)

// titleState shows the opening lore until a key or click.
type titleState struct{ app *App }

func (s *titleState) Enter() {}

func (s *titleState) Update(float64) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if len(inpututil.AppendJustPressedKeys(nil)) > 0 || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if r, ok := s.app.startRun(); ok {
			s.app.addMessage(fmt.Sprintf("You return to %s.", assets.FloorName(r.Floor())))
			s.app.SetState(&playState{app: s.app, run: r})
		} else {
			s.app.SetState(&selectState{app: s.app})
		}
	}
	return nil
}

func (s *titleState) Draw(screen *ebiten.Image) {
	h := float64(screen.Bounds().Dy())
	drawCentered(screen, "MEDIEVAL ROGUE", s.app.bold, h/4, gold)
	for i, line := range strings.Split(assets.LoreOpening, "\n") {
		drawCentered(screen, line, s.app.regular, h/2+float64(i)*28, white)
	}
}

// selectState picks a class. Locked classes cannot be chosen.
type selectState struct {
	app      *App
	selected int
	status   string
}

func (s *selectState) Enter() {}

func (s *selectState) locked(c assets.ClassDef) bool {
	return c.Locked && !s.app.profile.Unlocked(c.ID)
}

func (s *selectState) Update(float64) error {
	n := len(assets.Classes)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		s.selected = (s.selected - 1 + n) % n
	case inpututil.IsKeyJustPressed(ebiten.KeyDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.selected = (s.selected + 1) % n
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		c := assets.Classes[s.selected]
		if s.locked(c) {
			s.status = fmt.Sprintf("%s is locked. %s.", c.Name, c.UnlockBy)
			return nil
		}
		r, err := run.New(s.app.runOptions(c.ID))
		if err != nil {
			return fmt.Errorf("start run: %w", err)
		}
		s.app.addMessage(fmt.Sprintf("You enter %s as the %s.", assets.FloorName(0), c.Name))
		s.app.SetState(&playState{app: s.app, run: r})
	}
	return nil
}

func (s *selectState) Draw(screen *ebiten.Image) {
	a := s.app
	drawCentered(screen, "Choose your hero", a.bold, 40, gold)
	y := 120.0
	for i, c := range assets.Classes {
		clr := color.Color(white)
		if s.locked(c) {
			clr = gray
		}
		prefix := "   "
		if i == s.selected {
			prefix = "> "
		}
		drawText(screen, fmt.Sprintf("%s%d. %s", prefix, i+1, c.Name), a.regular, 120, y, clr)
		detail := fmt.Sprintf("HP %d   DMG %d   SPD %.0f   RATE %.1f/s   %s", c.HP, c.Damage, c.Speed, c.FireRate, c.Lore)
		if s.locked(c) {
			detail = "Locked: " + c.UnlockBy
		}
		drawText(screen, detail, a.small, 160, y+28, gray)
		y += 80
	}
	if s.status != "" {
		drawCentered(screen, s.status, a.regular, y+10, red)
	}
	drawCentered(screen, "[W/S] choose   [Enter] start   [Esc] quit", a.small, float64(screen.Bounds().Dy())-40, gray)
}

// playState drives a run.
type playState struct {
	app        *App
	run        *run.Run
	frame      run.Frame
	confirming bool
}

func (s *playState) Enter() {
	s.frame = s.run.Frame()
}

func (s *playState) Update(dt float64) error {
	if s.confirming {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyY):
			s.run.Save()
			return ebiten.Termination
		case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			s.confirming = false
		}
		return nil
	}

	in := readInput(s.run.Camera(), s.run.Player().Pos)
	if in.Menu {
		s.confirming = true
		return nil
	}
	s.frame = s.run.Update(dt, in)
	for _, ev := range s.frame.Events {
		if s.app.opts.Cues != nil {
			s.app.opts.Cues.Play(ev)
		}
		if msg := ev.Message(); msg != "" {
			s.app.addMessage(msg)
		}
	}
	if s.frame.State != run.Playing {
		s.app.SetState(newEndState(s.app, s.run))
	}
	return nil
}

func (s *playState) Draw(screen *ebiten.Image) {
	s.app.drawFrame(screen, s.frame)
	switch {
	case s.confirming:
		drawBanner(screen, s.app, "Save and quit? [Y/N]")
	case s.frame.Paused:
		drawBanner(screen, s.app, "PAUSED   [P] resume   [Esc] save & quit")
	}
}

// endState records a qualifying highscore and shows the summary.
type endState struct {
	app   *App
	run   *run.Run
	table []save.Highscore
	rank  int

	naming bool
	name   []rune
}

func newEndState(a *App, r *run.Run) *endState {
	s := &endState{app: a, run: r, rank: -1}
	table, err := a.opts.Store.Highscores()
	if err != nil {
		a.log.Warn("load highscores", "error", err)
	}
	s.table = table
	s.naming = err == nil && save.Qualifies(table, r.FinalScore())
	s.name = []rune(save.NormalizeName(a.opts.Slot))
	return s
}

func (s *endState) Enter() {}

func (s *endState) Update(float64) error {
	if s.naming {
		s.updateName()
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if r, ok := s.app.startRun(); ok {
			s.app.SetState(&playState{app: s.app, run: r})
		} else {
			s.app.SetState(&selectState{app: s.app})
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	return nil
}

func (s *endState) updateName() {
	for _, r := range ebiten.AppendInputChars(nil) {
		r = unicode.ToUpper(r)
		if len(s.name) < save.MaxNameLen && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			s.name = append(s.name, r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(s.name) > 0 {
		s.name = s.name[:len(s.name)-1]
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return
	}
	s.naming = false
	h := save.Highscore{Name: save.NormalizeName(string(s.name)), Score: s.run.FinalScore()}
	table, err := s.app.opts.Store.AddHighscore(h)
	if err != nil {
		s.app.log.Warn("add highscore", "error", err)
		return
	}
	s.table = table
	for i, e := range table {
		if e == h {
			s.rank = i
			break
		}
	}
}

func (s *endState) Draw(screen *ebiten.Image) {
	a := s.app
	title, clr := "THE ABBEY KEEPS YOU", red
	if s.run.State() == run.Won {
		title, clr = "YOU CLIMB INTO THE DAYLIGHT", green
	}
	drawCentered(screen, title, a.bold, 60, clr)
	drawCentered(screen, a.printer.Sprintf("Score %d   Final score %d   Floor %d", s.run.Score(), s.run.FinalScore(), s.run.Floor()+1), a.regular, 130, white)

	if s.naming {
		field := string(s.name) + strings.Repeat("_", save.MaxNameLen-len(s.name))
		drawCentered(screen, "New highscore! Name: "+field, a.regular, 200, gold)
		drawCentered(screen, "[Enter] confirm", a.small, 240, gray)
		return
	}
	y := 200.0
	drawCentered(screen, "HIGHSCORES", a.regular, y, gold)
	for i, h := range s.table {
		y += 28
		c := color.Color(white)
		if i == s.rank {
			c = green
		}
		drawCentered(screen, a.printer.Sprintf("%2d. %-8s %8d", i+1, h.Name, h.Score), a.regular, y, c)
	}
	drawCentered(screen, "[R] try again   [Q] quit", a.small, float64(screen.Bounds().Dy())-40, gray)
}

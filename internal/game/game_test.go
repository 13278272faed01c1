package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"

	"medieval-rogue/internal/config"
	"medieval-rogue/internal/run"
	"medieval-rogue/internal/save"
)

// newTestGame builds a Game on a simulation screen backed by a JSON store in
// a temp dir. Events are fed straight into g.events; no pump runs.
func newTestGame(t *testing.T) (*Game, save.Store) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(100, 40)
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	t.Cleanup(ss.Fini)

	store, err := save.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	g, err := New(ss, Options{
		Settings: config.Default(),
		Store:    store,
		Slot:     "tester",
		DataDir:  t.TempDir(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, store
}

func feed(g *Game, evs ...tcell.Event) {
	for _, ev := range evs {
		g.events <- ev
	}
}

func enterKey() *tcell.EventKey { return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone) }

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(tcell.NewSimulationScreen("UTF-8"), Options{}); err == nil {
		t.Fatal("expected an error without a store")
	}
}

func TestStartRunResumesSavedRun(t *testing.T) {
	g, _ := newTestGame(t)
	first, err := run.New(g.runOptions("rogue"))
	if err != nil {
		t.Fatalf("run.New: %v", err)
	}

	r, err := g.startRun(context.Background())
	if err != nil || r == nil {
		t.Fatalf("startRun = %v, %v", r, err)
	}
	if r.ID() != first.ID() || r.Player().ClassID != "rogue" {
		t.Fatalf("resumed run %s (%s); want %s (rogue)", r.ID(), r.Player().ClassID, first.ID())
	}
}

func TestStartRunDiscardsUnusableSave(t *testing.T) {
	g, store := newTestGame(t)
	first, err := run.New(g.runOptions("archer"))
	if err != nil {
		t.Fatalf("run.New: %v", err)
	}
	st := first.Snapshot(false)
	st.FloorI = 99
	if err := store.SaveRun("tester", st); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	feed(g, enterKey())
	r, err := g.startRun(context.Background())
	if err != nil || r == nil {
		t.Fatalf("startRun = %v, %v", r, err)
	}
	if r.ID() == first.ID() || r.Floor() != 0 {
		t.Fatalf("got run %s on floor %d; want a fresh run", r.ID(), r.Floor())
	}
}

func TestClassSelectSkipsLockedClass(t *testing.T) {
	g, _ := newTestGame(t)
	feed(g, runeKey('4'), enterKey(), runeKey('2'))
	id, ok, err := g.runClassSelect(context.Background())
	if err != nil || !ok || id != "rogue" {
		t.Fatalf("runClassSelect = %q, %v, %v; want rogue", id, ok, err)
	}
}

func TestClassSelectQuit(t *testing.T) {
	g, _ := newTestGame(t)
	feed(g, runeKey('q'))
	if _, ok, err := g.runClassSelect(context.Background()); ok || err != nil {
		t.Fatalf("runClassSelect = %v, %v; want quit", ok, err)
	}
}

func TestClassSelectHonoursUnlock(t *testing.T) {
	g, store := newTestGame(t)
	p := save.NewProfile()
	p.RecordRunFinished(true, "archer")
	if err := store.SaveProfile("tester", p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	feed(g, runeKey('4'))
	if id, ok, _ := g.runClassSelect(context.Background()); !ok || id != "knight" {
		t.Fatalf("runClassSelect = %q, %v; want knight", id, ok)
	}
}

func TestPlayReturnsWhenRunEnds(t *testing.T) {
	g, store := newTestGame(t)
	r, err := run.New(g.runOptions("archer"))
	if err != nil {
		t.Fatalf("run.New: %v", err)
	}
	r.Abandon()

	quit, err := g.play(context.Background(), r)
	if err != nil || quit {
		t.Fatalf("play = %v, %v; want a finished run", quit, err)
	}
	if _, err := store.LoadRun("tester"); !errors.Is(err, save.ErrNoSave) {
		t.Fatalf("LoadRun after the run ended = %v; want ErrNoSave", err)
	}
}

func TestPlaySavesOnCancel(t *testing.T) {
	g, store := newTestGame(t)
	r, err := run.New(g.runOptions("archer"))
	if err != nil {
		t.Fatalf("run.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	quit, err := g.play(ctx, r)
	if !quit || !errors.Is(err, context.Canceled) {
		t.Fatalf("play = %v, %v; want quit with context.Canceled", quit, err)
	}
	st, err := store.LoadRun("tester")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if !st.MidRoom || st.PlayerPos == nil {
		t.Fatalf("saved state = %+v; want a mid-room save", st)
	}
}

func TestConfirm(t *testing.T) {
	g, _ := newTestGame(t)
	feed(g, runeKey('x'), runeKey('y'))
	if ok, err := g.confirm(context.Background(), "Sure?"); !ok || err != nil {
		t.Fatalf("confirm = %v, %v; want yes", ok, err)
	}
	feed(g, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if ok, _ := g.confirm(context.Background(), "Sure?"); ok {
		t.Fatal("escape confirmed")
	}
}

func TestEnterName(t *testing.T) {
	g, _ := newTestGame(t)
	backspace := tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	evs := []tcell.Event{}
	for range len("tester") {
		evs = append(evs, backspace)
	}
	evs = append(evs, runeKey('a'), runeKey('-'), runeKey('b'), enterKey())
	feed(g, evs...)

	name, err := g.enterName(context.Background(), 500)
	if err != nil || name != "AB" {
		t.Fatalf("enterName = %q, %v; want AB", name, err)
	}
}

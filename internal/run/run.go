// Package run drives one playthrough: it owns the current floor, room,
// encounter and score, moves the player between rooms and floors, and
// reports milestones to the save and profile collaborators.
package run

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"medieval-rogue/internal/camera"
	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/config"
	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/entity"
	"medieval-rogue/internal/geom"
	"medieval-rogue/internal/save"
)

// State is where the run stands.
type State uint8

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

var (
	// ErrLocked is returned when starting a run with a class not yet unlocked.
	ErrLocked = errors.New("class is locked")
	// ErrNoRoom is returned when entering a grid cell with no room.
	ErrNoRoom = errors.New("no room at position")
)

// Saver persists the run after each room entry and forgets it once the run ends.
type Saver interface {
	Save(save.RunState) error
	Clear() error
}

// Profile receives run milestones and answers unlock queries.
type Profile interface {
	RunStarted(classID string)
	RoomCleared()
	BossDefeated()
	RunFinished(win bool, classID string)
	Unlocked(classID string) bool
}

// Options configures a run. Saver, Profile and Logger are optional.
type Options struct {
	Settings config.Settings
	ClassID  string
	Seed     int64
	RunID    string // generated when empty

	Saver   Saver
	Profile Profile
	Logger  *slog.Logger
}

// Run is one playthrough. It is not safe for concurrent use.
type Run struct {
	opts Options
	log  *slog.Logger

	id    string
	seed  int64
	floor int

	plan   *dungeon.FloorPlan
	room   *dungeon.Room
	enc    *combat.Encounter
	player *entity.Player
	cam    *camera.Camera

	checkpoint entity.Checkpoint
	score      int
	elapsed    float64
	hitStop    float64
	paused     bool
	state      State

	events []combat.Event
}

func newRun(opts Options) *Run {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	d := opts.Settings.Display
	return &Run{
		opts: opts,
		log:  log,
		id:   opts.RunID,
		seed: opts.Seed,
		cam:  camera.New(float64(d.Width), float64(d.Height)),
	}
}

// New starts a fresh run on floor 0 in the start room.
func New(opts Options) (*Run, error) {
	class, err := entity.Classes.Lookup(opts.ClassID)
	if err != nil {
		return nil, fmt.Errorf("new run: %w", err)
	}
	if class.Locked && (opts.Profile == nil || !opts.Profile.Unlocked(class.ID)) {
		return nil, fmt.Errorf("new run: %s: %w", class.ID, ErrLocked)
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	r := newRun(opts)
	r.player = entity.NewPlayer(class.ID, class.Stats(), geom.Vec{})
	r.player.InvulnTime = opts.Settings.Player.Invulnerability

	if opts.Profile != nil {
		opts.Profile.RunStarted(class.ID)
	}
	r.log.Info("run started", "run", r.id, "class", class.ID, "seed", r.seed)
	r.startFloor(0)
	return r, nil
}

// startFloor generates floor i and drops the player in the start room.
func (r *Run) startFloor(i int) {
	r.floor = i
	r.plan = GenerateFloor(r.opts.Settings, r.seed, i)
	if err := r.enter(r.plan.Start, dungeon.North, true, nil); err != nil {
		panic(err) // the start room always exists
	}
}

// EnterRoom moves the player into the room occupying gp, arriving through
// its from side.
func (r *Run) EnterRoom(gp dungeon.GridPos, from dungeon.Direction) error {
	return r.enter(gp, from, false, nil)
}

// enter rebuilds the encounter for the room at gp. fresh places the player
// in the middle of the room; at, when set, is an exact position to restore.
func (r *Run) enter(gp dungeon.GridPos, from dungeon.Direction, fresh bool, at *geom.Vec) error {
	room := r.plan.Room(gp)
	if room == nil {
		return fmt.Errorf("enter %s: %w", gp, ErrNoRoom)
	}
	r.plan.ComputeDoors(room)
	r.room = room

	var pos geom.Vec
	switch {
	case at != nil:
		pos = *at
	case fresh:
		pos = room.Interior().Center()
	default:
		pos = room.EntryPoint(from)
	}
	walls := room.WallRects()
	pos = geom.Relocate(pos, pos, 0, entity.PlayerBox, walls, room.Interior())
	r.player.Pos = pos

	r.enc = combat.NewEncounter(room, r.player, scoringFor(r.opts.Settings))
	r.enc.Populate(combat.Spawn{
		RunSeed:    r.seed,
		Floor:      r.floor,
		Entry:      pos,
		SafeRadius: r.opts.Settings.Generation.SafeRadius,
	})
	r.plan.Reveal(room)
	r.checkpoint = r.player.Checkpoint()
	r.hitStop = 0

	r.cam.CenterOn(pos)
	r.clampCamera()
	r.events = append(r.events, combat.Event{Kind: combat.RoomEntered, Pos: pos, ID: string(room.Kind)})
	r.persist(at != nil)
	return nil
}

func (r *Run) persist(midRoom bool) {
	if r.opts.Saver == nil || r.state != Playing {
		return
	}
	if err := r.opts.Saver.Save(r.Snapshot(midRoom)); err != nil {
		r.log.Warn("save run", "run", r.id, "error", err)
	}
}

func (r *Run) clampCamera() {
	s := r.opts.Settings
	r.cam.ClampToRoom(r.room.WorldRect(), s.Room.Inset, s.Room.Wall, s.Display.ViewGutter)
}

// Update advances the run by dt seconds of wall time and returns the view
// of the resulting frame. Nothing moves while paused or after the run ended.
func (r *Run) Update(dt float64, in entity.Input) Frame {
	r.events = r.events[:0]
	if r.state != Playing {
		return r.Frame()
	}
	if in.Pause {
		r.paused = !r.paused
	}
	if r.paused {
		return r.Frame()
	}
	if in.Advance && r.CanAdvance() {
		r.AdvanceFloor()
		return r.Frame()
	}

	r.elapsed += dt
	sim := dt
	if r.hitStop > 0 {
		r.hitStop -= dt
		sim *= r.opts.Settings.Player.HitStopScale
	}

	for _, ev := range r.enc.Step(sim, in) {
		r.score += ev.Score
		switch ev.Kind {
		case combat.PlayerHurt:
			r.hitStop = r.opts.Settings.Player.HitStop
			r.cam.Shake(6, 0.2)
		case combat.BossDefeated:
			r.hitStop = r.opts.Settings.Player.HitStop
			r.cam.Shake(10, 0.4)
			if r.opts.Profile != nil {
				r.opts.Profile.BossDefeated()
			}
		case combat.RoomCleared:
			if r.opts.Profile != nil {
				r.opts.Profile.RoomCleared()
			}
		}
		r.events = append(r.events, ev)
	}

	if !r.player.Alive() {
		r.finish(false)
		return r.Frame()
	}

	if d := r.crossedDoor(); d != nil {
		if err := r.enter(d.Target, d.Dir.Opposite(), false, nil); err != nil {
			r.log.Error("door leads nowhere", "door", d.Dir, "target", d.Target, "error", err)
		}
	}

	r.cam.Follow(r.player.Pos, camera.FollowLerp)
	r.clampCamera()
	r.cam.Update(dt)
	return r.Frame()
}

// crossedDoor returns the open door the player is standing in, if any.
func (r *Run) crossedDoor() *dungeon.Door {
	pr := r.player.Rect()
	for _, d := range r.room.Doors {
		if d != nil && d.Open && pr.Overlaps(d.Rect) {
			return d
		}
	}
	return nil
}

// CanAdvance reports whether the player may descend: the current room is the
// boss room and it has been cleared.
func (r *Run) CanAdvance() bool {
	return r.state == Playing && r.room.Kind == dungeon.KindBoss && r.room.Cleared
}

// AdvanceFloor descends to the next floor, or wins the run after the last
// one. It reports false when descending is not allowed yet.
func (r *Run) AdvanceFloor() bool {
	if !r.CanAdvance() {
		return false
	}
	next := r.floor + 1
	if next >= r.opts.Settings.Generation.Floors {
		r.finish(true)
		return true
	}
	r.log.Info("floor advanced", "run", r.id, "floor", next)
	r.startFloor(next)
	r.events = append(r.events, combat.Event{Kind: combat.FloorAdvanced, Pos: r.player.Pos, ID: fmt.Sprint(next)})
	return true
}

func (r *Run) finish(win bool) {
	if win {
		r.state = Won
	} else {
		r.state = Lost
	}
	r.log.Info("run finished", "run", r.id, "state", r.state, "score", r.FinalScore(), "floor", r.floor)
	if r.opts.Profile != nil {
		r.opts.Profile.RunFinished(win, r.player.ClassID)
	}
	if r.opts.Saver != nil {
		if err := r.opts.Saver.Clear(); err != nil {
			r.log.Warn("clear run save", "run", r.id, "error", err)
		}
	}
	r.events = append(r.events, combat.Event{Kind: combat.RunEnded, Pos: r.player.Pos, ID: r.state.String()})
}

// Abandon ends the run as a loss, e.g. when the player quits from the menu.
func (r *Run) Abandon() {
	if r.state == Playing {
		r.finish(false)
	}
}

// FinalScore is the score less the per-second decay, never below zero.
func (r *Run) FinalScore() int {
	return max(0, r.score-int(r.elapsed*r.opts.Settings.Score.DecayPerSec))
}

// TimeScale is the current dt multiplier: below one during hit-stop.
func (r *Run) TimeScale() float64 {
	if r.hitStop > 0 {
		return r.opts.Settings.Player.HitStopScale
	}
	return 1
}

func (r *Run) ID() string                    { return r.id }
func (r *Run) Seed() int64                   { return r.seed }
func (r *Run) Floor() int                    { return r.floor }
func (r *Run) Plan() *dungeon.FloorPlan      { return r.plan }
func (r *Run) Room() *dungeon.Room           { return r.room }
func (r *Run) Encounter() *combat.Encounter  { return r.enc }
func (r *Run) Player() *entity.Player        { return r.player }
func (r *Run) Camera() *camera.Camera        { return r.cam }
func (r *Run) Score() int                    { return r.score }
func (r *Run) Elapsed() float64              { return r.elapsed }
func (r *Run) State() State                  { return r.state }
func (r *Run) Paused() bool                  { return r.paused }
func (r *Run) Checkpoint() entity.Checkpoint { return r.checkpoint }

// Save writes a mid-room snapshot, used when the player quits a live run.
func (r *Run) Save() {
	r.persist(true)
}

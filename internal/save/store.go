package save

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Store persists everything that outlives a process. Runs and profiles are
// kept per slot (one per player name); the highscore table is shared.
type Store interface {
	SaveRun(slot string, s RunState) error
	// LoadRun returns ErrNoSave when nothing is saved and an error wrapping
	// ErrCorrupt when the record is unusable.
	LoadRun(slot string) (RunState, error)
	ClearRun(slot string) error

	LoadProfile(slot string) (Profile, error)
	SaveProfile(slot string, p Profile) error

	Highscores() ([]Highscore, error)
	AddHighscore(h Highscore) ([]Highscore, error)

	Close() error
}

// Open returns a PostgresStore when dsn is set, else a JSONStore rooted at
// dir (DataDir when dir is empty).
func Open(dir, dsn string) (Store, error) {
	if dsn != "" {
		return NewPostgresStore(dsn)
	}
	if dir == "" {
		d, err := DataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return NewJSONStore(dir)
}

// DataDir returns $XDG_DATA_HOME/medieval-rogue, defaulting to
// ~/.local/share/medieval-rogue.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "medieval-rogue"), nil
}

var errBadSlot = errors.New("invalid save slot")

func checkSlot(slot string) error {
	if slot == "" || slot == "." || slot == ".." || strings.ContainsAny(slot, `/\`) {
		return fmt.Errorf("%w: %q", errBadSlot, slot)
	}
	return nil
}

// ProfileRecorder bumps profile counters as a run reports its milestones.
// Storage errors are logged and never reach the game.
type ProfileRecorder struct {
	Store  Store
	Slot   string
	Logger *slog.Logger
}

func (r *ProfileRecorder) update(fn func(p *Profile)) {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	p, err := r.Store.LoadProfile(r.Slot)
	if err != nil {
		log.Warn("load profile", "slot", r.Slot, "error", err)
		p = NewProfile()
	}
	fn(&p)
	if err := r.Store.SaveProfile(r.Slot, p); err != nil {
		log.Warn("save profile", "slot", r.Slot, "error", err)
	}
}

func (r *ProfileRecorder) RunStarted(string) {
	r.update(func(p *Profile) { p.Bump(StatRunsStarted, 1) })
}

func (r *ProfileRecorder) RoomCleared() {
	r.update(func(p *Profile) { p.Bump(StatRoomsCleared, 1) })
}

func (r *ProfileRecorder) BossDefeated() {
	r.update(func(p *Profile) { p.Bump(StatBossesDefeated, 1) })
}

func (r *ProfileRecorder) RunFinished(win bool, classID string) {
	r.update(func(p *Profile) { p.RecordRunFinished(win, classID) })
}

// Unlocked reports whether the slot's profile has unlocked classID. A
// profile that cannot be read counts as fresh.
func (r *ProfileRecorder) Unlocked(classID string) bool {
	p, err := r.Store.LoadProfile(r.Slot)
	if err != nil {
		return false
	}
	return p.Unlocked(classID)
}

// Slot binds a Store to one save slot for a single run.
type Slot struct {
	Store Store
	Name  string
}

func (s Slot) Save(st RunState) error { return s.Store.SaveRun(s.Name, st) }
func (s Slot) Clear() error           { return s.Store.ClearRun(s.Name) }

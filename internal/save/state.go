// Package save persists runs, the player profile and the highscore table.
package save

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSave means there is no run to resume.
	ErrNoSave = errors.New("no saved run")
	// ErrCorrupt means a saved run exists but cannot be used.
	ErrCorrupt = errors.New("corrupt saved run")
)

// Stats is the persisted player stat bundle.
type Stats struct {
	HP        int     `json:"hp"`
	Damage    int     `json:"damage"`
	Speed     float64 `json:"speed"`
	FireRate  float64 `json:"firerate"`
	ProjSpeed float64 `json:"proj_speed"`
}

// Checkpoint is the player snapshot taken on room entry.
type Checkpoint struct {
	ClassID   string   `json:"class_id"`
	HP        int      `json:"hp"`
	Stats     Stats    `json:"stats"`
	Inventory []string `json:"inventory"`
}

// RoomState is the per-room flag set that survives a reload.
type RoomState struct {
	Kind       string `json:"kind"`
	Visited    bool   `json:"visited"`
	Discovered bool   `json:"discovered"`
	Cleared    bool   `json:"cleared"`
	WCells     int    `json:"w_cells"`
	HCells     int    `json:"h_cells"`
}

// RunState is a resumable run. Rooms is keyed by "gx,gy".
type RunState struct {
	RunID      string               `json:"run_id"`
	RunSeed    int64                `json:"run_seed"`
	FloorI     int                  `json:"floor_i"`
	CurrentGP  [2]int               `json:"current_gp"`
	Rooms      map[string]RoomState `json:"rooms"`
	Checkpoint Checkpoint           `json:"checkpoint"`
	Score      int                  `json:"score"`
	ClassID    string               `json:"class_id"`
	MidRoom    bool                 `json:"mid_room"`
	PlayerPos  *[2]float64          `json:"player_pos,omitempty"` // only with MidRoom
	Elapsed    float64              `json:"elapsed"`
}

// RoomKey formats a grid position the way Rooms is keyed.
func RoomKey(gx, gy int) string { return fmt.Sprintf("%d,%d", gx, gy) }

// Validate reports ErrCorrupt when the record cannot describe a run.
func (s *RunState) Validate() error {
	switch {
	case len(s.Rooms) == 0:
		return fmt.Errorf("%w: no rooms", ErrCorrupt)
	case s.FloorI < 0:
		return fmt.Errorf("%w: floor %d", ErrCorrupt, s.FloorI)
	case s.Checkpoint.ClassID == "":
		return fmt.Errorf("%w: checkpoint has no class", ErrCorrupt)
	case s.Checkpoint.Stats.HP <= 0 || s.Checkpoint.HP <= 0:
		return fmt.Errorf("%w: checkpoint hp %d/%d", ErrCorrupt, s.Checkpoint.HP, s.Checkpoint.Stats.HP)
	case s.MidRoom && s.PlayerPos == nil:
		return fmt.Errorf("%w: mid-room save without a position", ErrCorrupt)
	}
	if _, ok := s.Rooms[RoomKey(s.CurrentGP[0], s.CurrentGP[1])]; !ok {
		return fmt.Errorf("%w: current room %v missing", ErrCorrupt, s.CurrentGP)
	}
	return nil
}

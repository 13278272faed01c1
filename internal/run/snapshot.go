package run

import (
	"fmt"
	"slices"

	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/entity"
	"medieval-rogue/internal/geom"
	"medieval-rogue/internal/save"
)

// Snapshot packs the run for saving. midRoom records the live player (stats,
// inventory, hp and exact position) so it matches the room flags written
// alongside it; otherwise the room-entry checkpoint is written and a reload
// re-places the player in the room.
func (r *Run) Snapshot(midRoom bool) save.RunState {
	rooms := make(map[string]save.RoomState, r.plan.Len())
	for _, rm := range r.plan.Ordered() {
		rooms[rm.Pos.String()] = save.RoomState{
			Kind:       string(rm.Kind),
			Visited:    rm.Visited,
			Discovered: rm.Discovered,
			Cleared:    rm.Cleared,
			WCells:     rm.WCells,
			HCells:     rm.HCells,
		}
	}
	cp := r.checkpoint
	if midRoom {
		cp = r.player.Checkpoint()
	}
	st := save.RunState{
		RunID:     r.id,
		RunSeed:   r.seed,
		FloorI:    r.floor,
		CurrentGP: [2]int{r.room.Pos.X, r.room.Pos.Y},
		Rooms:     rooms,
		Checkpoint: save.Checkpoint{
			ClassID: cp.ClassID,
			HP:      cp.HP,
			Stats: save.Stats{
				HP:        cp.Stats.HP,
				Damage:    cp.Stats.Damage,
				Speed:     cp.Stats.Speed,
				FireRate:  cp.Stats.FireRate,
				ProjSpeed: cp.Stats.ProjSpeed,
			},
			Inventory: slices.Clone(cp.Inventory),
		},
		Score:   r.score,
		ClassID: cp.ClassID,
		MidRoom: midRoom,
		Elapsed: r.elapsed,
	}
	if midRoom {
		st.PlayerPos = &[2]float64{r.player.Pos.X, r.player.Pos.Y}
	}
	return st
}

// Resume rebuilds a run from a saved state: the floor is regenerated from
// the seed and floor index, then the saved room flags are laid over it. Any
// mismatch between the two is reported as save.ErrCorrupt so the caller can
// start fresh instead.
func Resume(opts Options, st save.RunState) (*Run, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	if !entity.Classes.Has(st.Checkpoint.ClassID) {
		return nil, fmt.Errorf("%w: class %q", save.ErrCorrupt, st.Checkpoint.ClassID)
	}
	if st.FloorI >= opts.Settings.Generation.Floors {
		return nil, fmt.Errorf("%w: floor %d beyond the last", save.ErrCorrupt, st.FloorI)
	}

	opts.Seed = st.RunSeed
	opts.RunID = st.RunID
	opts.ClassID = st.Checkpoint.ClassID
	r := newRun(opts)
	r.floor = st.FloorI
	r.plan = GenerateFloor(opts.Settings, r.seed, r.floor)
	if err := overlayRooms(r.plan, st.Rooms); err != nil {
		return nil, err
	}

	cp := st.Checkpoint
	r.player = entity.Restore(entity.Checkpoint{
		ClassID: cp.ClassID,
		HP:      cp.HP,
		Stats: entity.Stats{
			HP:        cp.Stats.HP,
			Damage:    cp.Stats.Damage,
			Speed:     cp.Stats.Speed,
			FireRate:  cp.Stats.FireRate,
			ProjSpeed: cp.Stats.ProjSpeed,
		},
		Inventory: cp.Inventory,
	}, geom.Vec{})
	r.player.InvulnTime = opts.Settings.Player.Invulnerability
	r.score = st.Score
	r.elapsed = st.Elapsed

	gp := dungeon.GridPos{X: st.CurrentGP[0], Y: st.CurrentGP[1]}
	var at *geom.Vec
	if st.MidRoom {
		at = &geom.Vec{X: st.PlayerPos[0], Y: st.PlayerPos[1]}
	}
	if err := r.enter(gp, dungeon.North, true, at); err != nil {
		return nil, fmt.Errorf("%w: %v", save.ErrCorrupt, err)
	}
	r.log.Info("run resumed", "run", r.id, "floor", r.floor, "room", gp)
	return r, nil
}

// overlayRooms copies saved flags onto a regenerated floor. Every saved room
// must match the regenerated one in position, kind and size.
func overlayRooms(plan *dungeon.FloorPlan, rooms map[string]save.RoomState) error {
	if len(rooms) != plan.Len() {
		return fmt.Errorf("%w: %d saved rooms, floor has %d", save.ErrCorrupt, len(rooms), plan.Len())
	}
	for key, rs := range rooms {
		gp, err := dungeon.ParseGridPos(key)
		if err != nil {
			return fmt.Errorf("%w: %v", save.ErrCorrupt, err)
		}
		rm := plan.Room(gp)
		if rm == nil || rm.Pos != gp || string(rm.Kind) != rs.Kind || rm.WCells != rs.WCells || rm.HCells != rs.HCells {
			return fmt.Errorf("%w: room %s does not match the regenerated floor", save.ErrCorrupt, key)
		}
		rm.Visited = rs.Visited
		rm.Discovered = rs.Discovered
		rm.Cleared = rs.Cleared
	}
	return nil
}

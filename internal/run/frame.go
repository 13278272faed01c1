package run

import (
	"medieval-rogue/assets"
	"medieval-rogue/internal/camera"
	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/entity"
	"medieval-rogue/internal/geom"
)

// MapCell is one room as the minimap sees it.
type MapCell struct {
	Pos     dungeon.GridPos
	W, H    int
	Kind    dungeon.Kind
	Visited bool
	Current bool
}

// HUD carries the numbers a status line shows.
type HUD struct {
	ClassID   string
	HP, MaxHP int
	Score     int
	Elapsed   float64
	Floor     int // zero-based
	Floors    int
	FloorName string
	Inventory []string

	BossKind        string // empty without a living boss
	BossHP, BossMax int
	CanAdvance      bool
}

// Frame is a read-only view of the run after an update. Slices are rebuilt
// or reused every frame; presenters must not keep them.
type Frame struct {
	State  State
	Paused bool

	Room      *dungeon.Room
	Walls     []geom.Rect
	Doors     []dungeon.Door
	Entities  []entity.Entity
	Events    []combat.Event
	Minimap   []MapCell
	HUD       HUD
	Camera    camera.Camera
	TimeScale float64
}

// Frame builds the current view without advancing time.
func (r *Run) Frame() Frame {
	f := Frame{
		State:     r.state,
		Paused:    r.paused,
		Room:      r.room,
		Walls:     r.enc.Walls,
		Entities:  r.enc.Entities(),
		Events:    r.events,
		Minimap:   r.minimap(),
		Camera:    *r.cam,
		TimeScale: r.TimeScale(),
	}
	for _, d := range r.room.Doors {
		if d != nil {
			f.Doors = append(f.Doors, *d)
		}
	}
	p := r.player
	f.HUD = HUD{
		ClassID:    p.ClassID,
		HP:         p.HP,
		MaxHP:      p.Stats.HP,
		Score:      r.score,
		Elapsed:    r.elapsed,
		Floor:      r.floor,
		Floors:     r.opts.Settings.Generation.Floors,
		FloorName:  assets.FloorName(r.floor),
		Inventory:  p.Inventory,
		CanAdvance: r.CanAdvance(),
	}
	if b := r.enc.Boss; b != nil {
		f.HUD.BossKind = b.Kind()
		f.HUD.BossHP = b.HP()
		f.HUD.BossMax = b.MaxHP()
	}
	return f
}

// minimap lists the discovered rooms of the floor.
func (r *Run) minimap() []MapCell {
	var out []MapCell
	for _, rm := range r.plan.Ordered() {
		if !rm.Discovered {
			continue
		}
		out = append(out, MapCell{
			Pos:     rm.Pos,
			W:       rm.WCells,
			H:       rm.HCells,
			Kind:    rm.Kind,
			Visited: rm.Visited,
			Current: rm == r.room,
		})
	}
	return out
}

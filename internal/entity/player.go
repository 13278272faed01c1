package entity

import (
	"slices"

	"medieval-rogue/internal/geom"
)

// Stats is the player's numeric bundle. HP is the maximum.
type Stats struct {
	HP        int
	Damage    int
	Speed     float64
	FireRate  float64
	ProjSpeed float64
}

// Input is the normalised per-frame snapshot the simulation consumes.
type Input struct {
	Move    geom.Vec // movement intent, any length; normalised by the player
	Fire    bool
	Aim     geom.Vec // aim target in world coordinates
	Pause   bool
	Advance bool
	Menu    bool
}

// PlayerBox is the player hitbox, centered on its position.
var PlayerBox = geom.Centered(24, 48)

const playerShotRadius = 4

// Player is the live, mutable hero.
type Player struct {
	ClassID   string
	Pos       geom.Vec
	Stats     Stats
	HP        int
	Inventory []string

	// InvulnTime is the window after a hit during which damage is ignored.
	InvulnTime float64

	invuln float64
	fireCD float64
	facing geom.Vec
	moving bool
}

// NewPlayer creates a full-health player of class classID.
func NewPlayer(classID string, stats Stats, pos geom.Vec) *Player {
	return &Player{
		ClassID:    classID,
		Pos:        pos,
		Stats:      stats,
		HP:         stats.HP,
		InvulnTime: 1.0,
		facing:     geom.V(0, 1),
	}
}

func (p *Player) Rect() geom.Rect  { return PlayerBox.At(p.Pos.X, p.Pos.Y) }
func (p *Player) Center() geom.Vec { return p.Pos }
func (p *Player) Alive() bool      { return p.HP > 0 }

func (p *Player) Visual() Visual {
	state := "idle"
	if p.moving {
		state = "walk"
	}
	// blink at 10Hz while invulnerable
	blink := p.invuln > 0 && int(p.invuln*10)%2 == 0
	return Visual{ID: p.ClassID, State: state, Facing: p.facing, Flash: blink}
}

// Invulnerable reports whether the post-hit window is active.
func (p *Player) Invulnerable() bool { return p.invuln > 0 }

// Update moves the player, ticks timers and fires at in.Aim when allowed.
// It reports whether a shot was fired.
func (p *Player) Update(dt float64, in Input, walls []geom.Rect, sink Sink) bool {
	p.moving = false
	if !in.Move.IsZero() {
		step := in.Move.Normalize().Scale(p.Stats.Speed * dt)
		nx, ny, _ := geom.MoveAndCollide(p.Pos.X, p.Pos.Y, PlayerBox, step.X, step.Y, walls, false)
		p.Pos = geom.V(nx, ny)
		p.facing = in.Move.Normalize()
		p.moving = true
	}

	p.fireCD = max(0, p.fireCD-dt)
	fired := false
	if in.Fire && p.fireCD <= 0 {
		dir := in.Aim.Sub(p.Pos)
		if !dir.IsZero() && p.Stats.FireRate > 0 {
			vel := dir.Normalize().Scale(p.Stats.ProjSpeed)
			sink.Spawn(NewProjectile(p.Pos, vel, playerShotRadius, p.Stats.Damage, true))
			p.fireCD = 1 / p.Stats.FireRate
			p.facing = dir.Normalize()
			fired = true
		}
	}
	if p.invuln > 0 {
		p.invuln -= dt
	}
	return fired
}

// TakeDamage applies n damage unless invulnerable and reports whether it landed.
func (p *Player) TakeDamage(n int) bool {
	if p.invuln > 0 || n <= 0 {
		return false
	}
	p.HP -= n
	p.invuln = p.InvulnTime
	return true
}

// ApplyItem applies a registered item and records it in the inventory.
func (p *Player) ApplyItem(id string) error {
	it, err := Items.Lookup(id)
	if err != nil {
		return err
	}
	it.Apply(p)
	p.Inventory = append(p.Inventory, id)
	return nil
}

// Checkpoint is the stat, inventory and hp snapshot captured at room entry.
type Checkpoint struct {
	ClassID   string
	HP        int
	Stats     Stats
	Inventory []string
}

// Checkpoint captures the player's current state.
func (p *Player) Checkpoint() Checkpoint {
	return Checkpoint{
		ClassID:   p.ClassID,
		HP:        p.HP,
		Stats:     p.Stats,
		Inventory: slices.Clone(p.Inventory),
	}
}

// Restore rebuilds a player from a checkpoint. Items are not re-applied: the
// stats already include them.
func Restore(c Checkpoint, pos geom.Vec) *Player {
	p := NewPlayer(c.ClassID, c.Stats, pos)
	p.HP = c.HP
	p.Inventory = slices.Clone(c.Inventory)
	return p
}

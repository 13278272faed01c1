package entity

import "medieval-rogue/internal/geom"

// Projectile is a moving shot. Friendly shots come from the player.
type Projectile struct {
	Pos      geom.Vec
	Vel      geom.Vec
	Radius   float64
	Damage   int
	Friendly bool
	dead     bool
}

// NewProjectile creates a live projectile.
func NewProjectile(pos, vel geom.Vec, radius float64, damage int, friendly bool) *Projectile {
	return &Projectile{Pos: pos, Vel: vel, Radius: radius, Damage: damage, Friendly: friendly}
}

func (p *Projectile) box() geom.Box    { return geom.Centered(2*p.Radius, 2*p.Radius) }
func (p *Projectile) Rect() geom.Rect  { return p.box().At(p.Pos.X, p.Pos.Y) }
func (p *Projectile) Center() geom.Vec { return p.Pos }
func (p *Projectile) Alive() bool      { return !p.dead }

// Kill removes the projectile at the end of the frame.
func (p *Projectile) Kill() { p.dead = true }

func (p *Projectile) Visual() Visual {
	id := "bolt"
	if p.Friendly {
		id = "arrow"
	}
	return Visual{ID: id, State: "flying", Facing: p.Vel.Normalize()}
}

// Update moves the projectile by Vel*dt. Touching a wall or leaving bounds
// kills it.
func (p *Projectile) Update(dt float64, walls []geom.Rect, bounds geom.Rect) {
	if p.dead {
		return
	}
	nx, ny, hit := geom.MoveAndCollide(p.Pos.X, p.Pos.Y, p.box(), p.Vel.X*dt, p.Vel.Y*dt, walls, true)
	p.Pos = geom.V(nx, ny)
	if hit || !bounds.ContainsPoint(p.Pos) {
		p.dead = true
	}
}

// Projectiles is a list of shots that also acts as a Sink.
type Projectiles []*Projectile

// Spawn appends p.
func (ps *Projectiles) Spawn(p *Projectile) { *ps = append(*ps, p) }

// Update advances every projectile.
func (ps Projectiles) Update(dt float64, walls []geom.Rect, bounds geom.Rect) {
	for _, p := range ps {
		p.Update(dt, walls, bounds)
	}
}

// Compact drops dead projectiles in place.
func (ps *Projectiles) Compact() {
	live := (*ps)[:0]
	for _, p := range *ps {
		if p.Alive() {
			live = append(live, p)
		}
	}
	clear((*ps)[len(live):])
	*ps = live
}

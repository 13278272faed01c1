// Package entity holds the player, hostiles, projectiles and pickups that
// live inside a room, plus the registries that build them by name.
package entity

import "medieval-rogue/internal/geom"

// Visual is the presentation hint an entity exposes to renderers.
type Visual struct {
	ID     string   // sprite / glyph key, e.g. "slime"
	State  string   // animation state, e.g. "idle", "dashing"
	Facing geom.Vec // unit vector, zero when unknown
	Flash  bool     // hurt flash or invulnerability blink
}

// Entity is the capability set every room occupant provides.
type Entity interface {
	Rect() geom.Rect
	Center() geom.Vec
	Alive() bool
	Visual() Visual
}

// Sink receives projectiles fired during an update.
type Sink interface {
	Spawn(p *Projectile)
}

// Hostile is an enemy or boss. Every variant shares the same update contract
// so new kinds plug into the encounter loop through a registry.
type Hostile interface {
	Entity
	Kind() string
	Update(dt float64, player geom.Vec, walls []geom.Rect, sink Sink)
	// Damage applies n hit points and reports whether this hit killed it.
	Damage(n int) bool
	TouchDamage() int
	HP() int
	MaxHP() int
}

// body is the state shared by every hostile.
type body struct {
	kind  string
	pos   geom.Vec
	box   geom.Box
	hp    int
	maxHP int
	touch int
	dead  bool
	flash float64
	state string
	face  geom.Vec
}

func newBody(kind string, x, y float64, box geom.Box, hp int) body {
	return body{kind: kind, pos: geom.V(x, y), box: box, hp: hp, maxHP: hp, touch: 1, state: "idle"}
}

func (b *body) Kind() string     { return b.kind }
func (b *body) Rect() geom.Rect  { return b.box.At(b.pos.X, b.pos.Y) }
func (b *body) Center() geom.Vec { return b.Rect().Center() }
func (b *body) Alive() bool      { return !b.dead }
func (b *body) HP() int          { return b.hp }
func (b *body) MaxHP() int       { return b.maxHP }
func (b *body) TouchDamage() int { return b.touch }

// Pos returns the anchor position.
func (b *body) Pos() geom.Vec { return b.pos }

func (b *body) Visual() Visual {
	return Visual{ID: b.kind, State: b.state, Facing: b.face, Flash: b.flash > 0}
}

func (b *body) Damage(n int) bool {
	if b.dead || n <= 0 {
		return false
	}
	b.hp -= n
	b.flash = hurtFlash
	if b.hp <= 0 {
		b.hp = 0
		b.dead = true
		return true
	}
	return false
}

// tick advances timers shared by all hostiles.
func (b *body) tick(dt float64) {
	if b.flash > 0 {
		b.flash -= dt
	}
}

// move steps the body by v*dt, sliding along walls.
func (b *body) move(v geom.Vec, dt float64, walls []geom.Rect) (hitX, hitY bool) {
	dx, dy := v.X*dt, v.Y*dt
	nx, ny, _ := geom.MoveAndCollide(b.pos.X, b.pos.Y, b.box, dx, dy, walls, false)
	hitX = nx != b.pos.X+dx
	hitY = ny != b.pos.Y+dy
	b.pos = geom.V(nx, ny)
	if !v.IsZero() {
		b.face = v.Normalize()
	}
	return hitX, hitY
}

const hurtFlash = 0.1

// Package combat runs the fight inside one room: spawning, per-frame updates
// in a fixed order, hit resolution, pickups and room clearing.
package combat

import (
	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/entity"
	"medieval-rogue/internal/geom"
)

// Scoring holds the points granted per event.
type Scoring struct {
	Enemy int
	Room  int
	Boss  int
}

// DefaultScoring returns the stock point values.
func DefaultScoring() Scoring {
	return Scoring{Enemy: 10, Room: 25, Boss: 200}
}

// Encounter owns everything alive in the current room.
type Encounter struct {
	Room    *dungeon.Room
	Player  *entity.Player
	Enemies []entity.Hostile
	Boss    entity.Hostile // nil when absent or defeated

	PlayerShots entity.Projectiles
	EnemyShots  entity.Projectiles
	Pickups     []*entity.ItemPickup

	Walls  []geom.Rect
	Bounds geom.Rect

	scoring Scoring
	events  []Event
}

// NewEncounter prepares an empty encounter for room. Doors must already be
// computed so the walls have their gaps.
func NewEncounter(room *dungeon.Room, player *entity.Player, scoring Scoring) *Encounter {
	return &Encounter{
		Room:    room,
		Player:  player,
		Walls:   room.WallRects(),
		Bounds:  room.Bounds(),
		scoring: scoring,
	}
}

// RefreshWalls rebuilds wall geometry after door state changes.
func (e *Encounter) RefreshWalls() {
	e.Walls = e.Room.WallRects()
}

// Hostiles returns every living enemy plus the boss.
func (e *Encounter) Hostiles() []entity.Hostile {
	out := make([]entity.Hostile, 0, len(e.Enemies)+1)
	for _, h := range e.Enemies {
		if h.Alive() {
			out = append(out, h)
		}
	}
	if e.Boss != nil && e.Boss.Alive() {
		out = append(out, e.Boss)
	}
	return out
}

func (e *Encounter) emit(ev Event) { e.events = append(e.events, ev) }

// Step advances the room by dt:
//  1. player movement and firing
//  2. player shots
//  3. enemies
//  4. enemy shots
//  5. player shots against enemies
//  6. enemy shots and enemy contact against the player
//  7. boss update, boss hits and boss contact
//  8. item pickups
//  9. room clear check
//
// Door crossing is left to the caller. The returned slice is reused by the
// next Step.
func (e *Encounter) Step(dt float64, in entity.Input) []Event {
	e.events = e.events[:0]
	p := e.Player

	if p.Update(dt, in, e.Walls, &e.PlayerShots) {
		e.emit(Event{Kind: ShotFired, Pos: p.Center(), ID: p.ClassID})
	}

	e.PlayerShots.Update(dt, e.Walls, e.Bounds)

	for _, h := range e.Enemies {
		if h.Alive() {
			h.Update(dt, p.Center(), e.Walls, &e.EnemyShots)
		}
	}

	e.EnemyShots.Update(dt, e.Walls, e.Bounds)

	for _, s := range e.PlayerShots {
		if !s.Alive() {
			continue
		}
		for _, h := range e.Enemies {
			if h.Alive() && s.Rect().Overlaps(h.Rect()) {
				e.hit(s, h, EnemyKilled, e.scoring.Enemy)
				break
			}
		}
	}

	for _, s := range e.EnemyShots {
		if s.Alive() && s.Rect().Overlaps(p.Rect()) {
			s.Kill()
			e.hurt(s.Damage, s.Pos)
		}
	}
	for _, h := range e.Enemies {
		if h.Alive() && h.Rect().Overlaps(p.Rect()) {
			e.hurt(h.TouchDamage(), h.Center())
		}
	}

	if b := e.Boss; b != nil && b.Alive() {
		b.Update(dt, p.Center(), e.Walls, &e.EnemyShots)
		for _, s := range e.PlayerShots {
			if s.Alive() && b.Alive() && s.Rect().Overlaps(b.Rect()) {
				e.hit(s, b, BossDefeated, e.scoring.Boss)
			}
		}
		if b.Alive() && b.Rect().Overlaps(p.Rect()) {
			e.hurt(b.TouchDamage(), b.Center())
		}
		if !b.Alive() {
			e.Boss = nil
		}
	}

	for _, it := range e.Pickups {
		if it.Alive() && it.Rect().Overlaps(p.Rect()) {
			if err := p.ApplyItem(it.ItemID); err != nil {
				panic(err) // item ids come from the registry
			}
			it.Take()
			e.emit(Event{Kind: ItemPicked, Pos: it.Pos, ID: it.ItemID})
			if e.Room.Kind == dungeon.KindItem {
				e.Room.SetCleared()
			}
		}
	}

	e.checkCleared()
	e.compact()
	return e.events
}

func (e *Encounter) hit(s *entity.Projectile, h entity.Hostile, killKind EventKind, points int) {
	s.Kill()
	e.emit(Event{Kind: HitLanded, Pos: s.Pos, ID: h.Kind()})
	if h.Damage(s.Damage) {
		e.emit(Event{Kind: killKind, Pos: h.Center(), ID: h.Kind(), Score: points})
	}
}

func (e *Encounter) hurt(n int, from geom.Vec) {
	if e.Player.TakeDamage(n) {
		e.emit(Event{Kind: PlayerHurt, Pos: from, ID: e.Player.ClassID})
	}
}

// checkCleared marks a fighting room cleared once nothing hostile remains.
func (e *Encounter) checkCleared() {
	r := e.Room
	if r.Cleared || (r.Kind != dungeon.KindCombat && r.Kind != dungeon.KindBoss) {
		return
	}
	if len(e.Hostiles()) > 0 {
		return
	}
	if r.SetCleared() {
		e.RefreshWalls()
		e.emit(Event{Kind: RoomCleared, Pos: r.Interior().Center(), ID: string(r.Kind), Score: e.scoring.Room})
	}
}

func (e *Encounter) compact() {
	live := e.Enemies[:0]
	for _, h := range e.Enemies {
		if h.Alive() {
			live = append(live, h)
		}
	}
	clear(e.Enemies[len(live):])
	e.Enemies = live

	e.PlayerShots.Compact()
	e.EnemyShots.Compact()

	picks := e.Pickups[:0]
	for _, it := range e.Pickups {
		if it.Alive() {
			picks = append(picks, it)
		}
	}
	clear(e.Pickups[len(picks):])
	e.Pickups = picks
}

// Entities lists every live occupant for drawing: pickups, enemies, boss,
// shots and finally the player.
func (e *Encounter) Entities() []entity.Entity {
	out := make([]entity.Entity, 0, len(e.Pickups)+len(e.Enemies)+len(e.PlayerShots)+len(e.EnemyShots)+2)
	for _, it := range e.Pickups {
		out = append(out, it)
	}
	for _, h := range e.Hostiles() {
		out = append(out, h)
	}
	for _, s := range e.PlayerShots {
		out = append(out, s)
	}
	for _, s := range e.EnemyShots {
		out = append(out, s)
	}
	return append(out, e.Player)
}

package entity

import (
	"math/rand"

	"medieval-rogue/internal/geom"
)

var (
	smallBox = geom.Centered(24, 24)
	tallBox  = geom.Centered(24, 48)
)

func init() {
	Enemies.Register("slime", NewSlime)
	Enemies.Register("bat", NewBat)
	Enemies.Register("skeleton", NewSkeleton)
}

// Slime crawls straight at the player.
type Slime struct {
	body
	speed float64
}

// NewSlime creates a slime at (x, y). It is registered as "slime".
func NewSlime(x, y float64, _ *rand.Rand) Hostile {
	return &Slime{body: newBody("slime", x, y, smallBox, 2), speed: 40}
}

// Update steps the slime toward the player, stopping at walls.
func (s *Slime) Update(dt float64, player geom.Vec, walls []geom.Rect, _ Sink) {
	s.tick(dt)
	v := player.Sub(s.Center())
	if v.LenSq() > 1 {
		s.move(v.Normalize().Scale(s.speed), dt, walls)
		s.state = "walk"
	}
}

// Bat flutters toward the player with a random wobble.
type Bat struct {
	body
	speed float64
	rng   *rand.Rand
}

// NewBat creates a bat whose wobble is drawn from rng.
func NewBat(x, y float64, rng *rand.Rand) Hostile {
	return &Bat{body: newBody("bat", x, y, smallBox, 1), speed: 90, rng: rng}
}

// Update flies toward the player with a jittered heading.
func (b *Bat) Update(dt float64, player geom.Vec, walls []geom.Rect, _ Sink) {
	b.tick(dt)
	v := player.Sub(b.Center())
	if v.LenSq() <= 1 {
		return
	}
	jitter := geom.V(b.rng.Float64()-0.5, b.rng.Float64()-0.5).Scale(0.3)
	dir := v.Normalize().Add(jitter).Normalize()
	b.move(dir.Scale(b.speed), dt, walls)
	b.state = "fly"
}

// Skeleton keeps its distance and throws bones.
type Skeleton struct {
	body
	speed   float64
	shootCD float64
}

const (
	skeletonNear      = 60
	skeletonFar       = 80
	skeletonReload    = 1.2
	skeletonShotSpeed = 120
)

// NewSkeleton creates a skeleton whose first throw is delayed by a time drawn from rng.
func NewSkeleton(x, y float64, rng *rand.Rand) Hostile {
	return &Skeleton{
		body:    newBody("skeleton", x, y, tallBox, 3),
		speed:   50,
		shootCD: 0.5 + rng.Float64()*0.7,
	}
}

// Update holds the skeleton at range and throws a bone into sink when its cooldown ends.
func (s *Skeleton) Update(dt float64, player geom.Vec, walls []geom.Rect, sink Sink) {
	s.tick(dt)
	c := s.Center()
	v := player.Sub(c)
	dist := v.Len()
	switch {
	case dist > skeletonFar:
		s.move(v.Normalize().Scale(s.speed), dt, walls)
		s.state = "walk"
	case dist < skeletonNear && dist > 0:
		s.move(v.Normalize().Scale(-s.speed), dt, walls)
		s.state = "walk"
	default:
		s.state = "idle"
	}
	s.shootCD -= dt
	if s.shootCD <= 0 && dist > 1 {
		s.shootCD = skeletonReload
		sink.Spawn(NewProjectile(c, v.Normalize().Scale(skeletonShotSpeed), 4, 1, false))
	}
}

package entity

import (
	"math"
	"math/rand"

	"medieval-rogue/internal/geom"
)

var bossBox = geom.Centered(64, 64)

const bossShotRadius = 6

func init() {
	Bosses.Register("warden", NewWarden)
	Bosses.Register("warlock", NewWarlock)
	Bosses.Register("knight_captain", NewKnightCaptain)
	Bosses.Register("ogre", NewOgre)
}

// ring emits n evenly spaced shots starting at angle base.
func ring(sink Sink, from geom.Vec, n int, base, speed float64) {
	for i := 0; i < n; i++ {
		a := base + float64(i)/float64(n)*2*math.Pi
		sink.Spawn(NewProjectile(from, geom.FromAngle(a, speed), bossShotRadius, 1, false))
	}
}

// Warden bounces off the walls and fires a five-way volley.
type Warden struct {
	body
	vel geom.Vec
	cd  float64
}

// NewWarden creates a warden moving diagonally from (x, y).
func NewWarden(x, y float64, _ *rand.Rand) Hostile {
	return &Warden{body: newBody("warden", x, y, bossBox, 30), vel: geom.V(60, 45), cd: 1.0}
}

// Update bounces the warden off walls and fires its volley on a timer.
func (w *Warden) Update(dt float64, _ geom.Vec, walls []geom.Rect, sink Sink) {
	w.tick(dt)
	hitX, hitY := w.move(w.vel, dt, walls)
	if hitX {
		w.vel.X = -w.vel.X
	}
	if hitY {
		w.vel.Y = -w.vel.Y
	}
	w.cd -= dt
	if w.cd <= 0 {
		w.cd = 1.0
		ring(sink, w.Center(), 5, 0, 130)
	}
}

// Warlock drifts back to where it spawned and bursts bullet rings.
type Warlock struct {
	body
	home geom.Vec
	t    float64
	rng  *rand.Rand
}

// NewWarlock creates a warlock anchored at (x, y); rng rotates each ring.
func NewWarlock(x, y float64, rng *rand.Rand) Hostile {
	return &Warlock{body: newBody("warlock", x, y, bossBox, 40), home: geom.V(x, y), rng: rng}
}

// Update drifts the warlock back toward its spawn point and fires bullet rings.
func (w *Warlock) Update(dt float64, _ geom.Vec, walls []geom.Rect, sink Sink) {
	w.tick(dt)
	w.t += dt
	w.move(w.home.Sub(w.pos).Scale(0.5), dt, walls)
	if w.t >= 1.2 {
		w.t = 0
		w.state = "cast"
		ring(sink, w.Center(), 10, w.rng.Float64()*2*math.Pi, 150)
	} else if w.t > 0.2 {
		w.state = "idle"
	}
}

// KnightCaptain winds up, then dashes at the player throwing lances sideways.
type KnightCaptain struct {
	body
	dashing bool
	cd      float64
	vel     geom.Vec
	lanceCD float64
}

const (
	captainWindup     = 0.8
	captainDashTime   = 0.6
	captainDashSpeed  = 260
	captainLanceEvery = 0.2
	captainLanceSpeed = 140
)

// NewKnightCaptain creates the captain in its charging state.
func NewKnightCaptain(x, y float64, _ *rand.Rand) Hostile {
	k := &KnightCaptain{body: newBody("knight_captain", x, y, bossBox, 50), cd: captainWindup}
	k.state = "charging"
	return k
}

// Dashing reports whether the captain is mid-dash.
func (k *KnightCaptain) Dashing() bool { return k.dashing }

// Update runs the charging/dashing cycle. A dash ends after its duration or on a wall hit.
func (k *KnightCaptain) Update(dt float64, player geom.Vec, walls []geom.Rect, sink Sink) {
	k.tick(dt)
	if !k.dashing {
		k.cd -= dt
		if k.cd >= 0 {
			return
		}
		d := player.Sub(k.Center())
		if d.LenSq() == 0 {
			return
		}
		k.vel = d.Normalize().Scale(captainDashSpeed)
		k.face = d.Normalize()
		k.cd = captainDashTime
		k.lanceCD = captainLanceEvery
		k.dashing = true
		k.state = "dashing"
		return
	}

	hitX, hitY := k.move(k.vel, dt, walls)
	k.cd -= dt
	k.lanceCD -= dt
	if k.lanceCD <= 0 {
		k.lanceCD = captainLanceEvery
		side := geom.V(-k.vel.Y, k.vel.X).Normalize().Scale(captainLanceSpeed)
		c := k.Center()
		sink.Spawn(NewProjectile(c, side, bossShotRadius, 1, false))
		sink.Spawn(NewProjectile(c, side.Scale(-1), bossShotRadius, 1, false))
	}
	if k.cd <= 0 || hitX || hitY {
		k.dashing = false
		k.cd = captainWindup
		k.state = "charging"
	}
}

// Ogre lumbers toward the player and telegraphs a stomp shockwave.
type Ogre struct {
	body
	speed     float64
	cd        float64
	telegraph float64
}

const (
	ogreStompEvery = 2.5
	ogreTelegraph  = 0.6
	ogreWaveShots  = 16
	ogreWaveSpeed  = 110
)

// NewOgre creates an ogre at (x, y). Its touch deals two damage.
func NewOgre(x, y float64, _ *rand.Rand) Hostile {
	o := &Ogre{body: newBody("ogre", x, y, bossBox, 60), speed: 35, cd: ogreStompEvery}
	o.touch = 2
	return o
}

// Update walks the ogre toward the player and releases a stomp ring after the wind-up.
func (o *Ogre) Update(dt float64, player geom.Vec, walls []geom.Rect, sink Sink) {
	o.tick(dt)
	if o.telegraph > 0 {
		o.telegraph -= dt
		if o.telegraph <= 0 {
			ring(sink, o.Center(), ogreWaveShots, 0, ogreWaveSpeed)
			o.cd = ogreStompEvery
			o.state = "walk"
		}
		return
	}
	v := player.Sub(o.Center())
	if v.LenSq() > 1 {
		o.move(v.Normalize().Scale(o.speed), dt, walls)
		o.state = "walk"
	}
	o.cd -= dt
	if o.cd <= 0 {
		o.telegraph = ogreTelegraph
		o.state = "telegraph"
	}
}

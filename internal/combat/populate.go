package combat

import (
	"errors"
	"fmt"
	"math/rand"

	"medieval-rogue/assets"
	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/entity"
	"medieval-rogue/internal/geom"
)

// Hitboxes used when searching for a safe spawn point.
var (
	enemySpawnBox = geom.Centered(24, 48)
	bossSpawnBox  = geom.Centered(64, 64)
	itemSpawnBox  = geom.Centered(32, 32)
)

// Spawn describes how a room is populated on entry.
type Spawn struct {
	RunSeed    int64
	Floor      int
	Entry      geom.Vec // where the player stands on arrival
	SafeRadius float64
}

// Populate fills the encounter with the room's contents. A room spawns only
// while it is not cleared: combat rooms get a spawn pattern, boss rooms the
// floor's boss, item rooms one pickup. The room seed makes the result the
// same however often and in whatever order the room is entered.
func (e *Encounter) Populate(s Spawn) {
	r := e.Room
	if r.Cleared {
		return
	}
	rng := dungeon.NewRand(dungeon.RoomSeed(s.RunSeed, s.Floor, r.Pos))
	in := r.Interior()

	switch r.Kind {
	case dungeon.KindCombat:
		name := PatternFor(r.WCells, r.HCells, rng)
		for _, sp := range assets.SpawnPatterns[name] {
			p := geom.V(in.X+sp.RX*in.W, in.Y+sp.RY*in.H)
			p = geom.Relocate(p, s.Entry, s.SafeRadius, enemySpawnBox, e.Walls, in)
			e.Enemies = append(e.Enemies, entity.MustCreate(entity.Enemies, sp.Kind, p.X, p.Y, childRand(rng)))
		}
	case dungeon.KindBoss:
		kind := entity.BossForFloor(s.Floor)
		p := geom.Relocate(in.Center(), s.Entry, s.SafeRadius, bossSpawnBox, e.Walls, in)
		e.Boss = entity.MustCreate(entity.Bosses, kind, p.X, p.Y, childRand(rng))
	case dungeon.KindItem:
		p := geom.Relocate(in.Center(), s.Entry, 0, itemSpawnBox, e.Walls, in)
		e.Pickups = append(e.Pickups, entity.NewItemPickup(entity.RandomItem(rng), p))
	}
}

// childRand gives each spawned entity its own generator, seeded from the room's.
func childRand(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(rng.Int63()))
}

// PatternFor picks a spawn pattern name for a combat room of w×h cells.
func PatternFor(w, h int, rng *rand.Rand) string {
	names := assets.SpawnTable[assets.SpawnSize{W: w, H: h}]
	if len(names) == 0 {
		names = assets.SpawnTable[assets.SpawnSize{W: 1, H: 1}]
	}
	return names[rng.Intn(len(names))]
}

// ValidateTables checks that every name in the spawn and boss tables resolves
// in the registries. Call once at startup.
func ValidateTables() error {
	var errs []error
	for size, names := range assets.SpawnTable {
		for _, n := range names {
			if _, ok := assets.SpawnPatterns[n]; !ok {
				errs = append(errs, fmt.Errorf("spawn table %dx%d: pattern %q: %w", size.W, size.H, n, entity.ErrUnknownKind))
			}
		}
	}
	for name, pattern := range assets.SpawnPatterns {
		for _, sp := range pattern {
			if _, err := entity.Enemies.Lookup(sp.Kind); err != nil {
				errs = append(errs, fmt.Errorf("spawn pattern %q: %w", name, err))
			}
		}
	}
	for floor := range 4 {
		if _, err := entity.Bosses.Lookup(entity.BossForFloor(floor)); err != nil {
			errs = append(errs, err)
		}
	}
	for _, it := range assets.Items {
		if _, err := entity.Items.Lookup(it.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

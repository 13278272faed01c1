package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medieval-rogue/assets"
	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/entity"
	"medieval-rogue/internal/geom"
)

// roomWithNeighbours builds a 1x1 room at the origin with a neighbour on every side.
func roomWithNeighbours(kind dungeon.Kind) *dungeon.Room {
	l := dungeon.DefaultLayout()
	r := dungeon.NewRoom(l, dungeon.GridPos{}, 1, 1, kind, 0)
	var n [4]*dungeon.Room
	for _, d := range dungeon.Directions {
		n[d] = dungeon.NewRoom(l, dungeon.GridPos{}.Step(d), 1, 1, dungeon.KindCombat, 0)
	}
	r.ComputeDoors(n)
	return r
}

func newTestPlayer(t *testing.T, pos geom.Vec) *entity.Player {
	t.Helper()
	p, err := entity.NewPlayerOfClass("archer", pos)
	require.NoError(t, err)
	return p
}

func count(events []Event, k EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == k {
			n++
		}
	}
	return n
}

func TestValidateTables(t *testing.T) {
	assert.NoError(t, ValidateTables())
}

func TestValidateTablesReportsUnknownNames(t *testing.T) {
	size := assets.SpawnSize{W: 9, H: 9}
	assets.SpawnTable[size] = []string{"no_such_pattern"}
	assets.SpawnPatterns["bad_pattern"] = []assets.Spawn{{Kind: "dragon", RX: 0.5, RY: 0.5}}
	t.Cleanup(func() {
		delete(assets.SpawnTable, size)
		delete(assets.SpawnPatterns, "bad_pattern")
	})

	err := ValidateTables()
	require.ErrorIs(t, err, entity.ErrUnknownKind)
	assert.Contains(t, err.Error(), "no_such_pattern")
	assert.Contains(t, err.Error(), "dragon")
}

func TestEmptyCombatRoomClearsOnce(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindCombat)
	for _, d := range r.Doors {
		require.False(t, d.Open)
	}
	e := NewEncounter(r, newTestPlayer(t, r.EntryPoint(dungeon.West)), DefaultScoring())
	wallsBefore := len(e.Walls)

	evs := e.Step(1.0/60, entity.Input{})
	require.Equal(t, 1, count(evs, RoomCleared))
	assert.Equal(t, 25, evs[0].Score)
	assert.True(t, r.Cleared)
	for _, d := range r.Doors {
		assert.True(t, d.Open, "door %s opens on the clearing frame", d.Dir)
	}
	assert.Greater(t, len(e.Walls), wallsBefore, "walls are re-carved around the open doors")

	for i := 0; i < 10; i++ {
		assert.Zero(t, count(e.Step(1.0/60, entity.Input{}), RoomCleared))
	}
}

func TestStartRoomIsNeverScored(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindStart)
	e := NewEncounter(r, newTestPlayer(t, r.Interior().Center()), DefaultScoring())
	assert.Zero(t, count(e.Step(1.0/60, entity.Input{}), RoomCleared))
	assert.False(t, r.Cleared)
}

func TestRoomStaysLockedWhileEnemiesLive(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindCombat)
	p := newTestPlayer(t, r.EntryPoint(dungeon.West))
	e := NewEncounter(r, p, DefaultScoring())
	c := r.Interior().Center()
	e.Enemies = append(e.Enemies, entity.MustCreate(entity.Enemies, "slime", c.X, c.Y, nil))

	e.Step(1.0/60, entity.Input{})
	assert.False(t, r.Cleared)
	assert.False(t, r.Doors[dungeon.North].Open)
}

func TestPlayerShotKillsEnemyAndScores(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindCombat)
	p := newTestPlayer(t, r.EntryPoint(dungeon.West))
	e := NewEncounter(r, p, DefaultScoring())
	e.Enemies = append(e.Enemies, entity.MustCreate(entity.Enemies, "slime", p.Pos.X+300, p.Pos.Y, nil))
	slime := e.Enemies[0]

	// a two-damage shot placed directly on the slime
	e.PlayerShots.Spawn(entity.NewProjectile(slime.Center(), geom.V(1, 0), 4, 2, true))
	evs := e.Step(1e-4, entity.Input{})
	assert.Equal(t, 1, count(evs, HitLanded))
	require.Equal(t, 1, count(evs, EnemyKilled))
	assert.Equal(t, 1, count(evs, RoomCleared))
	assert.Empty(t, e.Enemies)
	assert.Empty(t, e.PlayerShots)

	total := 0
	for _, ev := range evs {
		total += ev.Score
	}
	assert.Equal(t, 35, total)
}

func TestEnemyShotRespectsInvulnerability(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindStart)
	p := newTestPlayer(t, r.Interior().Center())
	e := NewEncounter(r, p, DefaultScoring())
	e.EnemyShots.Spawn(entity.NewProjectile(p.Pos, geom.V(0, 0), 4, 1, false))
	e.EnemyShots.Spawn(entity.NewProjectile(p.Pos, geom.V(0, 0), 4, 1, false))

	evs := e.Step(1e-4, entity.Input{})
	assert.Equal(t, 1, count(evs, PlayerHurt))
	assert.Equal(t, 4, p.HP)
	assert.Empty(t, e.EnemyShots, "both shots are consumed")
}

func TestBossKillClearsRoomAndScoresOnce(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindBoss)
	p := newTestPlayer(t, r.EntryPoint(dungeon.West))
	e := NewEncounter(r, p, DefaultScoring())
	e.Populate(Spawn{RunSeed: 1, Floor: 0, Entry: p.Pos, SafeRadius: 192})
	require.NotNil(t, e.Boss)
	assert.Equal(t, "warden", e.Boss.Kind())

	e.Boss.Damage(e.Boss.HP() - 1)
	e.PlayerShots.Spawn(entity.NewProjectile(e.Boss.Center(), geom.V(0, 0), 4, 1, true))
	evs := e.Step(1.0/60, entity.Input{})

	require.Equal(t, 1, count(evs, BossDefeated))
	assert.Equal(t, 1, count(evs, RoomCleared))
	assert.Nil(t, e.Boss)
	assert.True(t, r.Cleared)
	for _, ev := range evs {
		if ev.Kind == BossDefeated {
			assert.Equal(t, 200, ev.Score)
		}
	}

	for i := 0; i < 30; i++ {
		evs = e.Step(1.0/60, entity.Input{})
		assert.Zero(t, count(evs, BossDefeated))
		assert.Zero(t, count(evs, RoomCleared))
	}
}

func TestItemRoomPickupAndReentry(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindItem)
	entry := r.EntryPoint(dungeon.West)
	p := newTestPlayer(t, entry)
	e := NewEncounter(r, p, DefaultScoring())
	e.Populate(Spawn{RunSeed: 9, Floor: 1, Entry: entry, SafeRadius: 192})
	require.Len(t, e.Pickups, 1)
	item := e.Pickups[0]

	p.Pos = item.Pos
	evs := e.Step(1.0/60, entity.Input{})
	require.Equal(t, 1, count(evs, ItemPicked))
	assert.Equal(t, []string{item.ItemID}, p.Inventory)
	assert.True(t, r.Cleared)
	assert.Empty(t, e.Pickups)

	// entering again builds a fresh encounter for the same room
	again := NewEncounter(r, p, DefaultScoring())
	again.Populate(Spawn{RunSeed: 9, Floor: 1, Entry: entry, SafeRadius: 192})
	assert.Empty(t, again.Pickups)
}

func TestPopulateIsDeterministicAndSafe(t *testing.T) {
	l := dungeon.DefaultLayout()
	for _, size := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		r := dungeon.NewRoom(l, dungeon.GridPos{X: 3, Y: -2}, size[0], size[1], dungeon.KindCombat, 1)
		entry := r.Interior().Center()
		spawn := Spawn{RunSeed: 42, Floor: 2, Entry: entry, SafeRadius: 192}

		a := NewEncounter(r, newTestPlayer(t, entry), DefaultScoring())
		a.Populate(spawn)
		b := NewEncounter(r, newTestPlayer(t, entry), DefaultScoring())
		b.Populate(spawn)

		require.NotEmpty(t, a.Enemies)
		require.Len(t, b.Enemies, len(a.Enemies))
		for i := range a.Enemies {
			assert.Equal(t, a.Enemies[i].Kind(), b.Enemies[i].Kind())
			assert.Equal(t, a.Enemies[i].Center(), b.Enemies[i].Center())
			assert.GreaterOrEqual(t, a.Enemies[i].Center().Dist(entry), 192.0-1e-9, "%dx%d spawn too close", size[0], size[1])
			for _, w := range a.Walls {
				assert.False(t, w.Overlaps(a.Enemies[i].Rect()))
			}
		}
	}
}

func TestClearedRoomDoesNotRespawn(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindCombat)
	r.SetCleared()
	e := NewEncounter(r, newTestPlayer(t, r.Interior().Center()), DefaultScoring())
	e.Populate(Spawn{RunSeed: 1, Entry: r.Interior().Center(), SafeRadius: 192})
	assert.Empty(t, e.Enemies)
	assert.Nil(t, e.Boss)
}

func TestEntitiesEndsWithPlayer(t *testing.T) {
	r := roomWithNeighbours(dungeon.KindCombat)
	p := newTestPlayer(t, r.Interior().Center())
	e := NewEncounter(r, p, DefaultScoring())
	e.Populate(Spawn{RunSeed: 5, Entry: p.Pos, SafeRadius: 192})
	ents := e.Entities()
	require.NotEmpty(t, ents)
	assert.Same(t, p, ents[len(ents)-1])
	assert.Len(t, ents, len(e.Enemies)+1)
}

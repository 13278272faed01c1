package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medieval-rogue/internal/geom"
)

func TestCarveSpan(t *testing.T) {
	cases := []struct {
		name         string
		lo, hi       float64
		gapLo, gapHi float64
		want         [][2]float64
	}{
		{"middle gap leaves two", 0, 100, 40, 60, [][2]float64{{0, 40}, {60, 100}}},
		{"gap at start leaves one", 0, 100, 0, 30, [][2]float64{{30, 100}}},
		{"gap at end leaves one", 0, 100, 70, 100, [][2]float64{{0, 70}}},
		{"gap covers all leaves none", 0, 100, 0, 100, nil},
		{"gap outside carves nothing", 0, 100, 90, 120, [][2]float64{{0, 100}}},
		{"gap before span carves nothing", 0, 100, -10, 20, [][2]float64{{0, 100}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CarveSpan(c.lo, c.hi, c.gapLo, c.gapHi))
		})
	}
}

// cross builds a start room at the origin with a combat neighbour on every side.
func cross(kind Kind) (*Room, [4]*Room) {
	l := DefaultLayout()
	center := NewRoom(l, GridPos{0, 0}, 1, 1, kind, 0)
	var n [4]*Room
	for _, d := range Directions {
		n[d] = NewRoom(l, GridPos{}.Step(d), 1, 1, KindCombat, 0)
	}
	return center, n
}

func TestComputeDoorsOnlyForNeighbours(t *testing.T) {
	l := DefaultLayout()
	r := NewRoom(l, GridPos{0, 0}, 1, 1, KindCombat, 0)
	var n [4]*Room
	n[East] = NewRoom(l, GridPos{1, 0}, 1, 1, KindCombat, 0)
	r.ComputeDoors(n)
	assert.Nil(t, r.Doors[North])
	assert.Nil(t, r.Doors[South])
	assert.Nil(t, r.Doors[West])
	require.NotNil(t, r.Doors[East])
	assert.Equal(t, GridPos{1, 0}, r.Doors[East].Target)
	assert.False(t, r.Doors[East].Open)
}

func TestDoorOpenRule(t *testing.T) {
	for _, k := range []Kind{KindStart, KindItem} {
		r, n := cross(k)
		r.ComputeDoors(n)
		for _, d := range Directions {
			assert.True(t, r.Doors[d].Open, "%s door %s", k, d)
		}
	}
	for _, k := range []Kind{KindCombat, KindBoss} {
		r, n := cross(k)
		r.ComputeDoors(n)
		for _, d := range Directions {
			assert.False(t, r.Doors[d].Open, "%s door %s", k, d)
		}
		assert.True(t, r.SetCleared())
		for _, d := range Directions {
			assert.True(t, r.Doors[d].Open, "%s door %s after clear", k, d)
		}
		assert.False(t, r.SetCleared(), "second clear is a no-op")
	}
}

func TestWallsDoNotOverlapOpenDoors(t *testing.T) {
	for seed := int64(0); seed < 60; seed++ {
		p := Generate(Config{Layout: DefaultLayout(), TargetRooms: 12, Seed: seed})
		for _, r := range p.Ordered() {
			r.SetCleared()
			p.ComputeDoors(r)
			walls := r.WallRects()
			for _, door := range r.Doors {
				if door == nil {
					continue
				}
				require.True(t, door.Open)
				for _, w := range walls {
					assert.False(t, w.Overlaps(door.Rect), "seed=%d room=%v door=%s wall=%v", seed, r.Pos, door.Dir, w)
				}
			}
		}
	}
}

func TestClosedDoorsKeepFullWalls(t *testing.T) {
	r, n := cross(KindCombat)
	r.ComputeDoors(n)
	walls := r.WallRects()
	// four uncarved strips plus the pattern's obstacles
	assert.Len(t, walls, 4+len(r.ObstacleRects()))
	for _, door := range r.Doors {
		hit := false
		for _, w := range walls {
			hit = hit || w.Overlaps(door.Rect)
		}
		assert.True(t, hit, "closed %s door should sit on a wall", door.Dir)
	}
}

func TestDoorsOnAllSidesOfMultiCellNeighbours(t *testing.T) {
	for seed := int64(0); seed < 60; seed++ {
		p := Generate(Config{Layout: DefaultLayout(), TargetRooms: 12, Seed: seed})
		p.ComputeAllDoors()
		for _, r := range p.Ordered() {
			nb := p.Neighbours(r)
			for _, d := range Directions {
				if nb[d] == nil {
					assert.Nil(t, r.Doors[d])
					continue
				}
				require.NotNil(t, r.Doors[d])
				// the door must lie on a span shared with the neighbour
				nw := nb[d].WorldRect()
				c := r.Doors[d].Rect.Center()
				if d == North || d == South {
					assert.True(t, c.X > nw.Left() && c.X < nw.Right())
				} else {
					assert.True(t, c.Y > nw.Top() && c.Y < nw.Bottom())
				}
			}
		}
	}
}

func TestObstaclesScaleIntoInterior(t *testing.T) {
	l := DefaultLayout()
	// pattern 1 of a 1x1 combat room is the four pillars
	r := NewRoom(l, GridPos{0, 0}, 1, 1, KindCombat, 1)
	obs := r.ObstacleRects()
	require.Len(t, obs, 4)
	in := r.Interior()
	sx := in.W / 320
	sy := in.H / 180
	assert.InDelta(t, in.X+80*sx, obs[0].X, 1e-9)
	assert.InDelta(t, in.Y+40*sy, obs[0].Y, 1e-9)
	assert.InDelta(t, 8*sx, obs[0].W, 1e-9)
	for _, o := range obs {
		assert.True(t, in.ContainsRect(o))
	}
}

func TestEntryPointAlignsWithDoor(t *testing.T) {
	r, n := cross(KindStart)
	r.ComputeDoors(n)
	in := r.Interior()
	box := geom.Centered(24, 48)
	for _, d := range Directions {
		p := r.EntryPoint(d)
		assert.True(t, in.ContainsRect(box.At(p.X, p.Y)), "entry from %s inside interior", d)
		assert.False(t, box.At(p.X, p.Y).Overlaps(r.Doors[d].Rect), "entry from %s must not sit on the door", d)
	}
	assert.InDelta(t, in.Left()+48, r.EntryPoint(West).X, 1e-9)
	assert.InDelta(t, r.Doors[West].Rect.Center().Y, r.EntryPoint(West).Y, 1e-9)
	assert.InDelta(t, in.Top()+48, r.EntryPoint(North).Y, 1e-9)
}

func TestEntryPointWithoutDoorIsCenter(t *testing.T) {
	r := NewRoom(DefaultLayout(), GridPos{0, 0}, 2, 1, KindCombat, 0)
	assert.Equal(t, r.Interior().Center(), r.EntryPoint(East))
}

func TestPatternIndexWraps(t *testing.T) {
	r := NewRoom(DefaultLayout(), GridPos{0, 0}, 1, 1, KindStart, 5)
	assert.Equal(t, 0, r.PatternIndex)
	assert.Empty(t, r.ObstacleRects())
}

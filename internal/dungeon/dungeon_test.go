package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(seed int64, target int) *FloorPlan {
	return Generate(Config{Layout: DefaultLayout(), TargetRooms: target, Seed: seed})
}

type roomSummary struct {
	Pos     GridPos
	W, H    int
	Kind    Kind
	Pattern int
	Salt    uint32
}

func summarize(p *FloorPlan) []roomSummary {
	var out []roomSummary
	for _, r := range p.Ordered() {
		out = append(out, roomSummary{r.Pos, r.WCells, r.HCells, r.Kind, r.PatternIndex, r.VariantSalt})
	}
	return out
}

func TestGenerateDeterministic(t *testing.T) {
	seed := FloorSeed(42, 0)
	a := testPlan(seed, 8)
	b := testPlan(seed, 8)
	assert.Equal(t, summarize(a), summarize(b))
	assert.Equal(t, a.Start, b.Start)
	assert.Equal(t, a.Boss, b.Boss)
	assert.Equal(t, a.Item, b.Item)
}

func TestGenerateDiffersAcrossFloors(t *testing.T) {
	same := 0
	for run := int64(0); run < 10; run++ {
		a := summarize(testPlan(FloorSeed(run, 0), 10))
		b := summarize(testPlan(FloorSeed(run, 1), 10))
		if assert.ObjectsAreEqual(a, b) {
			same++
		}
	}
	assert.Less(t, same, 10)
}

func TestGenerateIsConnectedTree(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		p := testPlan(seed, 4+int(seed%9))
		require.GreaterOrEqual(t, p.Len(), 3, "seed=%d", seed)
		assert.Equal(t, p.Len(), p.Reachable(), "seed=%d: unreachable rooms", seed)
		assert.Equal(t, p.Len()-1, p.Edges(), "seed=%d: not a tree", seed)
	}
}

func TestGenerateNoOverlappingCells(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		p := testPlan(seed, 12)
		seen := map[GridPos]GridPos{}
		for _, r := range p.Ordered() {
			for _, c := range r.Cells() {
				prev, dup := seen[c]
				require.False(t, dup, "seed=%d cell %v owned by %v and %v", seed, c, prev, r.Pos)
				seen[c] = r.Pos
			}
		}
	}
}

func TestBossAndItemPlacement(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		p := testPlan(seed, 10)
		bosses := 0
		for _, r := range p.Ordered() {
			if r.Kind == KindBoss {
				bosses++
			}
		}
		assert.Equal(t, 1, bosses, "seed=%d", seed)
		assert.NotEqual(t, p.Start, p.Boss, "seed=%d", seed)
		assert.NotEqual(t, p.Start, p.Item, "seed=%d", seed)
		assert.NotEqual(t, p.Boss, p.Item, "seed=%d", seed)
		assert.Equal(t, KindStart, p.Room(p.Start).Kind)
		assert.Equal(t, KindItem, p.Room(p.Item).Kind)
	}
}

func TestBossIsFarthestRoom(t *testing.T) {
	p := testPlan(7, 12)
	depth := map[GridPos]int{p.Start: 0}
	queue := []*Room{p.Room(p.Start)}
	maxDepth := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range p.Neighbours(cur) {
			if n == nil {
				continue
			}
			if _, ok := depth[n.Pos]; ok {
				continue
			}
			depth[n.Pos] = depth[cur.Pos] + 1
			maxDepth = max(maxDepth, depth[n.Pos])
			queue = append(queue, n)
		}
	}
	assert.Equal(t, maxDepth, depth[p.Boss])
}

func TestStartRoomAtOriginAndRevealed(t *testing.T) {
	p := testPlan(3, 6)
	start := p.Room(GridPos{0, 0})
	require.NotNil(t, start)
	assert.Equal(t, KindStart, start.Kind)
	assert.Equal(t, 1, start.WCells)
	assert.Equal(t, 1, start.HCells)
	assert.True(t, start.Visited)
}

func TestRoomLookupByAnyCell(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		p := testPlan(seed, 12)
		for _, r := range p.Ordered() {
			for _, c := range r.Cells() {
				assert.Same(t, r, p.Room(c))
			}
		}
	}
}

func TestGridPosRoundTrip(t *testing.T) {
	gp := GridPos{-3, 12}
	assert.Equal(t, "-3,12", gp.String())
	got, err := ParseGridPos("-3,12")
	require.NoError(t, err)
	assert.Equal(t, gp, got)

	_, err = ParseGridPos("3")
	assert.Error(t, err)
	_, err = ParseGridPos("a,b")
	assert.Error(t, err)
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, West, East.Opposite())
	assert.Equal(t, North, South.Opposite())
	assert.Equal(t, East, West.Opposite())
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestRoomSeedStable(t *testing.T) {
	a := RoomSeed(42, 1, GridPos{2, -1})
	assert.Equal(t, a, RoomSeed(42, 1, GridPos{2, -1}))
	assert.NotEqual(t, a, RoomSeed(42, 1, GridPos{-1, 2}))
	assert.NotEqual(t, a, RoomSeed(42, 2, GridPos{2, -1}))
	assert.NotEqual(t, a, RoomSeed(43, 1, GridPos{2, -1}))
}

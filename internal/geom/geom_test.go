package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapsIsStrict(t *testing.T) {
	a := R(0, 0, 10, 10)
	assert.True(t, a.Overlaps(R(5, 5, 10, 10)))
	assert.False(t, a.Overlaps(R(10, 0, 10, 10)), "touching edges must not overlap")
	assert.False(t, a.Overlaps(R(0, 10, 10, 10)))
	assert.False(t, a.Overlaps(R(20, 20, 1, 1)))
}

func TestIntersect(t *testing.T) {
	got := R(0, 0, 10, 10).Intersect(R(5, -5, 10, 10))
	assert.Equal(t, R(5, 0, 5, 5), got)
	assert.True(t, R(0, 0, 10, 10).Intersect(R(10, 10, 5, 5)).Empty())
}

func TestMoveAndCollideZeroMove(t *testing.T) {
	walls := []Rect{R(20, 0, 10, 100)}
	box := Centered(8, 8)
	for _, stop := range []bool{true, false} {
		x, y, hit := MoveAndCollide(10, 10, box, 0, 0, walls, stop)
		assert.Equal(t, 10.0, x)
		assert.Equal(t, 10.0, y)
		assert.False(t, hit)
	}
}

func TestMoveAndCollideSlidesAlongWall(t *testing.T) {
	// wall to the right; moving diagonally should clamp X and keep Y motion
	walls := []Rect{R(20, -100, 10, 200)}
	box := Centered(8, 8)
	x, y, hit := MoveAndCollide(10, 0, box, 10, 5, walls, false)
	require.True(t, hit)
	assert.Equal(t, 16.0, x, "right edge of box flush with wall left edge")
	assert.Equal(t, 5.0, y)
}

func TestMoveAndCollideClampsNegativeDirections(t *testing.T) {
	walls := []Rect{R(-30, -100, 10, 200), R(-100, -30, 200, 10)}
	box := Centered(8, 8)
	x, y, hit := MoveAndCollide(0, 0, box, -20, -20, walls, false)
	require.True(t, hit)
	assert.Equal(t, -16.0, x)
	assert.Equal(t, -16.0, y)
}

func TestMoveAndCollideStopKeepsOldAxis(t *testing.T) {
	walls := []Rect{R(15, -100, 10, 200)}
	box := Centered(4, 4)
	x, y, hit := MoveAndCollide(10, 10, box, 5, 3, walls, true)
	require.True(t, hit)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 13.0, y)
}

func TestMoveAndCollideNoCornerCut(t *testing.T) {
	// thin wall block sitting diagonally ahead
	walls := []Rect{R(10, 10, 24, 24)}
	box := Centered(8, 8)
	x, y, _ := MoveAndCollide(4, 4, box, 8, 8, walls, false)
	assert.False(t, box.At(x, y).Overlaps(walls[0]))
}

func TestRelocateKeepsSafePoint(t *testing.T) {
	bounds := R(0, 0, 1000, 1000)
	p := V(800, 800)
	got := Relocate(p, V(100, 100), 192, Centered(24, 24), nil, bounds)
	assert.Equal(t, p, got)
}

func TestRelocateMovesOutOfRadius(t *testing.T) {
	bounds := R(0, 0, 1000, 1000)
	avoid := V(500, 500)
	box := Centered(24, 24)
	got := Relocate(V(510, 500), avoid, 192, box, nil, bounds)
	assert.GreaterOrEqual(t, got.Dist(avoid), 192.0-1e-9)
	assert.True(t, bounds.ContainsRect(box.At(got.X, got.Y)))
}

func TestRelocateAvoidsWalls(t *testing.T) {
	bounds := R(0, 0, 1000, 1000)
	avoid := V(500, 500)
	box := Centered(24, 24)
	// block the whole east half
	walls := []Rect{R(600, 0, 400, 1000)}
	got := Relocate(V(520, 500), avoid, 192, box, walls, bounds)
	assert.False(t, box.At(got.X, got.Y).Overlaps(walls[0]))
	assert.GreaterOrEqual(t, got.Dist(avoid), 192.0-1e-9)
}

func TestRelocateFallsBackToFarthestCorner(t *testing.T) {
	bounds := R(0, 0, 200, 200)
	box := Centered(10, 10)
	// radius bigger than the room: nothing fits
	got := Relocate(V(20, 20), V(10, 10), 5000, box, nil, bounds)
	assert.Equal(t, V(195, 195), got)
}

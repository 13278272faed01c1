package dungeon

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction is a compass side of a room.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every side in N, E, S, W order.
var Directions = [4]Direction{North, East, South, West}

var dirNames = [4]string{"N", "E", "S", "W"}

func (d Direction) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return "?"
}

// Opposite returns the facing side: N<->S, E<->W.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// Delta returns the grid step for d.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// ParseDirection parses "N", "E", "S" or "W".
func ParseDirection(s string) (Direction, error) {
	for i, n := range dirNames {
		if strings.EqualFold(s, n) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("dungeon: bad direction %q", s)
}

// GridPos is a room-grid coordinate, not pixels.
type GridPos struct {
	X, Y int
}

// Step returns the neighbouring cell in direction d.
func (p GridPos) Step(d Direction) GridPos {
	dx, dy := d.Delta()
	return GridPos{p.X + dx, p.Y + dy}
}

// String formats the position as "gx,gy", the key used in saved runs.
func (p GridPos) String() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// ParseGridPos parses a "gx,gy" key.
func ParseGridPos(s string) (GridPos, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return GridPos{}, fmt.Errorf("dungeon: bad grid position %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return GridPos{}, fmt.Errorf("dungeon: bad grid position %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return GridPos{}, fmt.Errorf("dungeon: bad grid position %q: %w", s, err)
	}
	return GridPos{x, y}, nil
}

// Kind is a room's role on the floor.
type Kind string

const (
	KindStart  Kind = "start"
	KindCombat Kind = "combat"
	KindItem   Kind = "item"
	KindBoss   Kind = "boss"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStart, KindCombat, KindItem, KindBoss:
		return true
	}
	return false
}

// DoorsOpenByDefault reports whether rooms of this kind never lock their doors.
func (k Kind) DoorsOpenByDefault() bool {
	return k == KindStart || k == KindItem
}

package dungeon

import (
	"medieval-rogue/assets"
	"medieval-rogue/internal/geom"
)

// Door is one side's connection to a neighbouring room.
type Door struct {
	Dir    Direction
	Rect   geom.Rect
	Open   bool
	Target GridPos // origin of the room on the other side
}

// Room is one traversable unit of a floor. Pos is the top-left occupied cell.
type Room struct {
	Pos          GridPos
	WCells       int
	HCells       int
	Kind         Kind
	PatternIndex int
	VariantSalt  uint32

	Visited    bool
	Discovered bool
	Cleared    bool

	Doors [4]*Door

	layout  Layout
	pattern []assets.Obstacle
}

// NewRoom builds a room at pos and selects its obstacle pattern by index.
// An out of range index wraps around the candidate list.
func NewRoom(layout Layout, pos GridPos, w, h int, kind Kind, patternIndex int) *Room {
	r := &Room{
		Pos:    pos,
		WCells: w,
		HCells: h,
		Kind:   kind,
		layout: layout,
	}
	r.SetPattern(patternIndex)
	r.VariantSalt = VariantSalt(kind, pos, w, h)
	return r
}

// SetPattern selects the obstacle layout for the room's kind and size.
func (r *Room) SetPattern(index int) {
	cands := PatternsFor(r.Kind, r.WCells, r.HCells)
	if index < 0 {
		index = -index
	}
	r.PatternIndex = index % len(cands)
	r.pattern = cands[r.PatternIndex]
}

// PatternsFor returns the candidate obstacle layouts for a room shape. The
// result always has at least one entry.
func PatternsFor(kind Kind, w, h int) [][]assets.Obstacle {
	if c := assets.RoomPatterns[assets.RoomShape{Kind: string(kind), W: w, H: h}]; len(c) > 0 {
		return c
	}
	return [][]assets.Obstacle{{}}
}

// Layout returns the dimensions the room was built with.
func (r *Room) Layout() Layout { return r.layout }

// Cells returns every grid cell the room occupies.
func (r *Room) Cells() []GridPos {
	out := make([]GridPos, 0, r.WCells*r.HCells)
	for dy := 0; dy < r.HCells; dy++ {
		for dx := 0; dx < r.WCells; dx++ {
			out = append(out, GridPos{r.Pos.X + dx, r.Pos.Y + dy})
		}
	}
	return out
}

// WorldRect is the room's full footprint in world pixels.
func (r *Room) WorldRect() geom.Rect {
	l := r.layout
	return geom.Rect{
		X: float64(r.Pos.X) * l.CellW,
		Y: float64(r.Pos.Y) * l.CellH,
		W: float64(r.WCells) * l.CellW,
		H: float64(r.HCells) * l.CellH,
	}
}

// Interior is the walkable floor area inside the walls.
func (r *Room) Interior() geom.Rect {
	return r.WorldRect().Inset(r.layout.Inset)
}

// Bounds is the interior grown by the wall thickness; projectiles leaving it die.
func (r *Room) Bounds() geom.Rect {
	return r.Interior().Inset(-r.layout.Wall)
}

// DoorOpen reports the open state a door of this room should have.
func (r *Room) DoorOpen() bool {
	return r.Cleared || r.Kind.DoorsOpenByDefault()
}

// ComputeDoors rebuilds the door slots from the given neighbours. A nil
// neighbour leaves that side without a door.
func (r *Room) ComputeDoors(neighbours [4]*Room) {
	in := r.Interior()
	l := r.layout
	open := r.DoorOpen()
	for _, d := range Directions {
		n := neighbours[d]
		if n == nil {
			r.Doors[d] = nil
			continue
		}
		nw := n.WorldRect()
		var rect geom.Rect
		switch d {
		case North, South:
			lo, hi := max(in.Left(), nw.Left()), min(in.Right(), nw.Right())
			mid := (lo + hi) / 2
			y := in.Top() - l.Wall/2 - l.DoorThickness/2
			if d == South {
				y = in.Bottom() + l.Wall/2 - l.DoorThickness/2
			}
			rect = geom.Rect{X: mid - l.DoorLength/2, Y: y, W: l.DoorLength, H: l.DoorThickness}
		case East, West:
			lo, hi := max(in.Top(), nw.Top()), min(in.Bottom(), nw.Bottom())
			mid := (lo + hi) / 2
			x := in.Left() - l.Wall/2 - l.DoorThickness/2
			if d == East {
				x = in.Right() + l.Wall/2 - l.DoorThickness/2
			}
			rect = geom.Rect{X: x, Y: mid - l.DoorLength/2, W: l.DoorThickness, H: l.DoorLength}
		}
		r.Doors[d] = &Door{Dir: d, Rect: rect, Open: open, Target: n.Pos}
	}
}

// SetCleared marks the room cleared and opens every door. It reports false
// when the room was already cleared.
func (r *Room) SetCleared() bool {
	if r.Cleared {
		return false
	}
	r.Cleared = true
	r.syncDoors()
	return true
}

func (r *Room) syncDoors() {
	open := r.DoorOpen()
	for _, d := range r.Doors {
		if d != nil {
			d.Open = open
		}
	}
}

// borderStrips returns the N, E, S, W wall strips around the interior.
// North and south strips cover the corners.
func (r *Room) borderStrips() [4]geom.Rect {
	in := r.Interior()
	w := r.layout.Wall
	return [4]geom.Rect{
		North: {X: in.X - w, Y: in.Y - w, W: in.W + 2*w, H: w},
		East:  {X: in.Right(), Y: in.Y, W: w, H: in.H},
		South: {X: in.X - w, Y: in.Bottom(), W: in.W + 2*w, H: w},
		West:  {X: in.X - w, Y: in.Y, W: w, H: in.H},
	}
}

// WallRects returns the border walls with gaps carved for open doors, followed
// by the scaled obstacle rectangles.
func (r *Room) WallRects() []geom.Rect {
	strips := r.borderStrips()
	out := make([]geom.Rect, 0, 8+len(r.pattern))
	for _, d := range Directions {
		s := strips[d]
		door := r.Doors[d]
		if door == nil || !door.Open {
			out = append(out, s)
			continue
		}
		if d == North || d == South {
			for _, seg := range CarveSpan(s.Left(), s.Right(), door.Rect.Left(), door.Rect.Right()) {
				out = append(out, geom.Rect{X: seg[0], Y: s.Y, W: seg[1] - seg[0], H: s.H})
			}
		} else {
			for _, seg := range CarveSpan(s.Top(), s.Bottom(), door.Rect.Top(), door.Rect.Bottom()) {
				out = append(out, geom.Rect{X: s.X, Y: seg[0], W: s.W, H: seg[1] - seg[0]})
			}
		}
	}
	return append(out, r.ObstacleRects()...)
}

// CarveSpan removes [gapLo, gapHi] from [lo, hi] and returns what is left:
// no segments when the gap covers everything, one when the gap touches an
// end, two when wall remains on both sides. A gap not fully inside the span
// carves nothing.
func CarveSpan(lo, hi, gapLo, gapHi float64) [][2]float64 {
	if gapLo < lo || gapHi > hi || gapHi <= gapLo {
		return [][2]float64{{lo, hi}}
	}
	var out [][2]float64
	if gapLo > lo {
		out = append(out, [2]float64{lo, gapLo})
	}
	if gapHi < hi {
		out = append(out, [2]float64{gapHi, hi})
	}
	return out
}

// ObstacleRects scales the room's obstacle pattern into the interior.
func (r *Room) ObstacleRects() []geom.Rect {
	if len(r.pattern) == 0 {
		return nil
	}
	in := r.Interior()
	sx := in.W / (r.layout.AuthorW * float64(r.WCells))
	sy := in.H / (r.layout.AuthorH * float64(r.HCells))
	out := make([]geom.Rect, 0, len(r.pattern))
	for _, o := range r.pattern {
		out = append(out, geom.Rect{X: in.X + o.X*sx, Y: in.Y + o.Y*sy, W: o.W * sx, H: o.H * sy})
	}
	return out
}

// EntryPoint returns where a player arriving from side from should stand:
// EntryInset inside that wall, lined up with the door on it. Without a door on
// that side the interior center is used.
func (r *Room) EntryPoint(from Direction) geom.Vec {
	in := r.Interior()
	door := r.Doors[from]
	if door == nil {
		return in.Center()
	}
	c := door.Rect.Center()
	inset := r.layout.EntryInset
	switch from {
	case North:
		return geom.Vec{X: c.X, Y: in.Top() + inset}
	case South:
		return geom.Vec{X: c.X, Y: in.Bottom() - inset}
	case West:
		return geom.Vec{X: in.Left() + inset, Y: c.Y}
	default:
		return geom.Vec{X: in.Right() - inset, Y: c.Y}
	}
}

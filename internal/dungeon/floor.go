package dungeon

import "github.com/zyedidia/generic/mapset"

// FloorPlan is one generated floor: its rooms keyed by origin cell, plus the
// start, boss and item positions. Membership never changes after Generate.
type FloorPlan struct {
	Layout Layout
	Seed   int64
	Start  GridPos
	Boss   GridPos
	Item   GridPos

	rooms map[GridPos]*Room
	order []GridPos           // placement order
	owner map[GridPos]GridPos // occupied cell -> room origin
}

// Room returns the room occupying cell gp, or nil.
func (p *FloorPlan) Room(gp GridPos) *Room {
	origin, ok := p.owner[gp]
	if !ok {
		return nil
	}
	return p.rooms[origin]
}

// Ordered returns the rooms in placement order. The start room is first.
func (p *FloorPlan) Ordered() []*Room {
	out := make([]*Room, 0, len(p.order))
	for _, gp := range p.order {
		out = append(out, p.rooms[gp])
	}
	return out
}

// Len is the number of rooms.
func (p *FloorPlan) Len() int { return len(p.order) }

// Neighbours returns the room adjacent to r on each side, scanning every cell
// on that side one step out.
func (p *FloorPlan) Neighbours(r *Room) [4]*Room {
	var out [4]*Room
	f := footprint{pos: r.Pos, w: r.WCells, h: r.HCells}
	for _, d := range Directions {
		for _, c := range f.side(d) {
			if n := p.Room(c); n != nil && n != r {
				out[d] = n
				break
			}
		}
	}
	return out
}

// Degree counts r's neighbours.
func (p *FloorPlan) Degree(r *Room) int {
	n := 0
	for _, nb := range p.Neighbours(r) {
		if nb != nil {
			n++
		}
	}
	return n
}

// Edges counts undirected adjacency edges.
func (p *FloorPlan) Edges() int {
	total := 0
	for _, r := range p.Ordered() {
		total += p.Degree(r)
	}
	return total / 2
}

// Reachable counts rooms reachable from the start room.
func (p *FloorPlan) Reachable() int {
	seen := mapset.New[GridPos]()
	seen.Put(p.Start)
	stack := []*Room{p.rooms[p.Start]}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range p.Neighbours(cur) {
			if n != nil && !seen.Has(n.Pos) {
				seen.Put(n.Pos)
				stack = append(stack, n)
			}
		}
	}
	return seen.Size()
}

// ComputeDoors derives the doors of r from its current neighbours.
func (p *FloorPlan) ComputeDoors(r *Room) {
	r.ComputeDoors(p.Neighbours(r))
}

// ComputeAllDoors derives doors for every room.
func (p *FloorPlan) ComputeAllDoors() {
	for _, r := range p.Ordered() {
		p.ComputeDoors(r)
	}
}

// Reveal marks r visited and its neighbours discovered.
func (p *FloorPlan) Reveal(r *Room) {
	r.Visited = true
	r.Discovered = true
	for _, n := range p.Neighbours(r) {
		if n != nil {
			n.Discovered = true
		}
	}
}

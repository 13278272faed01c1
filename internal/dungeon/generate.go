package dungeon

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Config drives procedural generation for one floor.
type Config struct {
	Layout      Layout
	TargetRooms int
	Seed        int64
}

// minRooms is the smallest floor Generate returns: start, boss and item.
const minRooms = 3

// footprint is a room candidate during tree growth.
type footprint struct {
	pos  GridPos
	w, h int
}

func (f footprint) cells() []GridPos {
	out := make([]GridPos, 0, f.w*f.h)
	for dy := 0; dy < f.h; dy++ {
		for dx := 0; dx < f.w; dx++ {
			out = append(out, GridPos{f.pos.X + dx, f.pos.Y + dy})
		}
	}
	return out
}

// side returns the cells just outside f on side d.
func (f footprint) side(d Direction) []GridPos {
	var out []GridPos
	switch d {
	case North, South:
		y := f.pos.Y - 1
		if d == South {
			y = f.pos.Y + f.h
		}
		for dx := 0; dx < f.w; dx++ {
			out = append(out, GridPos{f.pos.X + dx, y})
		}
	case East, West:
		x := f.pos.X - 1
		if d == East {
			x = f.pos.X + f.w
		}
		for dy := 0; dy < f.h; dy++ {
			out = append(out, GridPos{x, f.pos.Y + dy})
		}
	}
	return out
}

// grower places room footprints on the grid while keeping the floor a tree.
type grower struct {
	rng      *rand.Rand
	placed   []footprint
	occupied mapset.Set[GridPos]
	owner    map[GridPos]int
}

func newGrower(rng *rand.Rand) *grower {
	g := &grower{
		rng:      rng,
		occupied: mapset.New[GridPos](),
		owner:    make(map[GridPos]int),
	}
	g.add(footprint{pos: GridPos{0, 0}, w: 1, h: 1})
	return g
}

func (g *grower) add(f footprint) {
	idx := len(g.placed)
	g.placed = append(g.placed, f)
	for _, c := range f.cells() {
		g.occupied.Put(c)
		g.owner[c] = idx
	}
}

// randomSize picks 2x2 5%, 2x1 15%, 1x2 20%, otherwise 1x1.
func randomSize(rng *rand.Rand) (int, int) {
	r := rng.Float64()
	switch {
	case r < 0.05:
		return 2, 2
	case r < 0.20:
		return 2, 1
	case r < 0.40:
		return 1, 2
	default:
		return 1, 1
	}
}

// attach positions a w×h footprint against side d of parent so the two share
// at least one cell edge.
func attach(parent footprint, d Direction, w, h int, rng *rand.Rand) footprint {
	var pos GridPos
	switch d {
	case North, South:
		pos.X = parent.pos.X + rng.Intn(parent.w) - rng.Intn(w)
		if d == North {
			pos.Y = parent.pos.Y - h
		} else {
			pos.Y = parent.pos.Y + parent.h
		}
	case East, West:
		pos.Y = parent.pos.Y + rng.Intn(parent.h) - rng.Intn(h)
		if d == West {
			pos.X = parent.pos.X - w
		} else {
			pos.X = parent.pos.X + parent.w
		}
	}
	return footprint{pos: pos, w: w, h: h}
}

// fits reports whether cand can be attached to parent on side d: its cells
// are free, it touches no room but the parent, and the parent has no other
// neighbour on that side.
func (g *grower) fits(cand footprint, parent int, d Direction) bool {
	for _, c := range g.placed[parent].side(d) {
		if g.occupied.Has(c) {
			return false
		}
	}
	for _, c := range cand.cells() {
		if g.occupied.Has(c) {
			return false
		}
	}
	for _, dir := range Directions {
		for _, c := range cand.side(dir) {
			if g.occupied.Has(c) && g.owner[c] != parent {
				return false
			}
		}
	}
	return true
}

func (g *grower) grow(target, attempts int) {
	for i := 0; i < attempts && len(g.placed) < target; i++ {
		parent := g.rng.Intn(len(g.placed))
		d := Directions[g.rng.Intn(4)]
		w, h := randomSize(g.rng)
		cand := attach(g.placed[parent], d, w, h, g.rng)
		if g.fits(cand, parent, d) {
			g.add(cand)
		}
	}
}

// ensure adds 1x1 rooms by a fixed scan until the floor has n rooms.
func (g *grower) ensure(n int) {
	for len(g.placed) < n {
		added := false
		for parent := 0; parent < len(g.placed) && !added; parent++ {
			for _, d := range Directions {
				p := g.placed[parent]
				cand := footprint{pos: p.pos, w: 1, h: 1}
				switch d {
				case North:
					cand.pos.Y = p.pos.Y - 1
				case East:
					cand.pos.X = p.pos.X + p.w
				case South:
					cand.pos.Y = p.pos.Y + p.h
				case West:
					cand.pos.X = p.pos.X - 1
				}
				if g.fits(cand, parent, d) {
					g.add(cand)
					added = true
					break
				}
			}
		}
		if !added {
			return
		}
	}
}

// Generate builds a floor: tree growth from a 1x1 start room at the origin,
// boss at the BFS-farthest room, item at a random leaf, then seeded pattern
// selection. The same Config always yields the same floor.
func Generate(cfg Config) *FloorPlan {
	rng := NewRand(cfg.Seed)
	target := max(cfg.TargetRooms, minRooms)

	g := newGrower(rng)
	g.grow(target, target*40)
	g.ensure(minRooms)

	plan := &FloorPlan{
		Layout: cfg.Layout,
		Seed:   cfg.Seed,
		rooms:  make(map[GridPos]*Room, len(g.placed)),
		owner:  make(map[GridPos]GridPos, len(g.owner)),
	}
	for _, f := range g.placed {
		r := &Room{Pos: f.pos, WCells: f.w, HCells: f.h, Kind: KindCombat, layout: cfg.Layout}
		plan.rooms[f.pos] = r
		plan.order = append(plan.order, f.pos)
		for _, c := range f.cells() {
			plan.owner[c] = f.pos
		}
	}
	plan.Start = g.placed[0].pos
	plan.rooms[plan.Start].Kind = KindStart

	plan.Boss = plan.farthestFromStart()
	if plan.Boss != plan.Start {
		plan.rooms[plan.Boss].Kind = KindBoss
	}

	plan.Item = plan.pickItemRoom(rng)
	if plan.Item != plan.Start {
		plan.rooms[plan.Item].Kind = KindItem
	}

	for _, gp := range plan.order {
		r := plan.rooms[gp]
		r.SetPattern(rng.Intn(len(PatternsFor(r.Kind, r.WCells, r.HCells))))
		r.VariantSalt = VariantSalt(r.Kind, r.Pos, r.WCells, r.HCells)
	}
	plan.rooms[plan.Start].Visited = true
	plan.rooms[plan.Start].Discovered = true
	return plan
}

// farthestFromStart runs a BFS over the adjacency graph. Among rooms at the
// greatest depth the last one dequeued wins.
func (p *FloorPlan) farthestFromStart() GridPos {
	visited := mapset.New[GridPos]()
	depth := map[GridPos]int{p.Start: 0}
	queue := []GridPos{p.Start}
	visited.Put(p.Start)
	best, bestDepth := p.Start, 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= bestDepth {
			best, bestDepth = cur, depth[cur]
		}
		for _, n := range p.Neighbours(p.rooms[cur]) {
			if n == nil || visited.Has(n.Pos) {
				continue
			}
			visited.Put(n.Pos)
			depth[n.Pos] = depth[cur] + 1
			queue = append(queue, n.Pos)
		}
	}
	return best
}

func (p *FloorPlan) pickItemRoom(rng *rand.Rand) GridPos {
	var leaves, others []GridPos
	for _, gp := range p.order {
		if gp == p.Start || gp == p.Boss {
			continue
		}
		others = append(others, gp)
		if p.Degree(p.rooms[gp]) <= 1 {
			leaves = append(leaves, gp)
		}
	}
	switch {
	case len(leaves) > 0:
		return leaves[rng.Intn(len(leaves))]
	case len(others) > 0:
		return others[rng.Intn(len(others))]
	default:
		return p.Start
	}
}

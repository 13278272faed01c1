// floorgen prints the floors a seed generates, for checking layouts without
// playing them.
//
//	go run ./cmd/floorgen -seed 42 [-floor 1] [-config path]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"medieval-rogue/internal/config"
	"medieval-rogue/internal/dungeon"
	"medieval-rogue/internal/run"
)

func main() {
	defPath, _ := config.DefaultPath()
	cfgPath := flag.String("config", defPath, "path to the YAML config file")
	seed := flag.Int64("seed", 1, "run seed")
	floor := flag.Int("floor", -1, "floor to print; every floor when negative")
	flag.Parse()

	settings, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	floors := []int{*floor}
	if *floor < 0 {
		floors = floors[:0]
		for i := range settings.Generation.Floors {
			floors = append(floors, i)
		}
	}
	for _, f := range floors {
		plan := run.GenerateFloor(settings, *seed, f)
		fmt.Printf("floor %d (seed %d)\n", f, plan.Seed)
		printPlan(os.Stdout, plan)
		fmt.Println()
	}
}

var kindMark = map[dungeon.Kind]byte{
	dungeon.KindStart:  'S',
	dungeon.KindCombat: '#',
	dungeon.KindItem:   'I',
	dungeon.KindBoss:   'B',
}

// printPlan draws the occupied grid cells followed by one line per room.
func printPlan(w io.Writer, plan *dungeon.FloorPlan) {
	plan.ComputeAllDoors()
	rooms := plan.Ordered()

	minX, minY := rooms[0].Pos.X, rooms[0].Pos.Y
	maxX, maxY := minX, minY
	for _, r := range rooms {
		minX, minY = min(minX, r.Pos.X), min(minY, r.Pos.Y)
		maxX, maxY = max(maxX, r.Pos.X+r.WCells-1), max(maxY, r.Pos.Y+r.HCells-1)
	}
	for y := minY; y <= maxY; y++ {
		var line strings.Builder
		for x := minX; x <= maxX; x++ {
			mark := byte('.')
			if r := plan.Room(dungeon.GridPos{X: x, Y: y}); r != nil {
				mark = kindMark[r.Kind]
			}
			line.WriteByte(mark)
		}
		fmt.Fprintln(w, line.String())
	}

	for _, r := range rooms {
		var doors []string
		for _, d := range r.Doors {
			if d != nil {
				doors = append(doors, fmt.Sprintf("%s->%s", d.Dir, d.Target))
			}
		}
		fmt.Fprintf(w, "%-8s %-7s %dx%d  %s\n", r.Pos, r.Kind, r.WCells, r.HCells, strings.Join(doors, " "))
	}
}

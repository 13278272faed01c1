package run

import (
	"math"

	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/config"
	"medieval-rogue/internal/dungeon"
)

// layoutFor converts the configured room geometry.
func layoutFor(s config.Settings) dungeon.Layout {
	l := dungeon.DefaultLayout()
	l.CellW = s.Room.CellW
	l.CellH = s.Room.CellH
	l.Inset = s.Room.Inset
	l.Wall = s.Room.Wall
	l.DoorLength = s.Room.DoorLength
	l.DoorThickness = s.Room.DoorThickness
	l.EntryInset = s.Room.EntryInset
	return l
}

// levelConfig builds the generator config for a floor. Floors grow from
// MinRooms on the first floor to MaxRooms on the last.
func levelConfig(s config.Settings, runSeed int64, floor int) dungeon.Config {
	g := s.Generation
	t := 0.0
	if g.Floors > 1 {
		t = float64(floor) / float64(g.Floors-1)
	}
	return dungeon.Config{
		Layout:      layoutFor(s),
		TargetRooms: lerpi(g.MinRooms, g.MaxRooms, min(t, 1)),
		Seed:        dungeon.FloorSeed(runSeed, floor),
	}
}

func scoringFor(s config.Settings) combat.Scoring {
	return combat.Scoring{Enemy: s.Score.Enemy, Room: s.Score.Room, Boss: s.Score.Boss}
}

func lerpi(a, b int, t float64) int {
	return int(math.Round(float64(a) + t*float64(b-a)))
}

// GenerateFloor builds floor i of a run exactly as a run started with
// runSeed would see it.
func GenerateFloor(s config.Settings, runSeed int64, floor int) *dungeon.FloorPlan {
	return dungeon.Generate(levelConfig(s, runSeed, floor))
}

package render

import (
	"github.com/gdamore/tcell/v2"

	"medieval-rogue/assets"
)

// FloorTiles holds the glyphs used to draw one floor's terrain.
type FloorTiles struct {
	Wall     string
	Floor    string
	Obstacle string
	Accent   tcell.Color // tint for the floor dots and HUD rule
}

// TileThemes maps floor index to its tile set.
var TileThemes = []FloorTiles{
	{ // The Undercroft: damp stone cellars
		Wall:     "🧱",
		Floor:    "·",
		Obstacle: "🪨",
		Accent:   tcell.NewRGBColor(90, 110, 90),
	},
	{ // The Ossuary: bone and cold
		Wall:     "🪦",
		Floor:    "·",
		Obstacle: "🦴",
		Accent:   tcell.NewRGBColor(150, 150, 170),
	},
	{ // The Keep: banners and torchlight
		Wall:     "🏰",
		Floor:    "·",
		Obstacle: "🛢",
		Accent:   tcell.NewRGBColor(170, 120, 60),
	},
}

// themeFor returns the tile set for a floor, repeating the last for deeper floors.
func themeFor(floor int) FloorTiles {
	return TileThemes[min(max(floor, 0), len(TileThemes)-1)]
}

// color converts a palette entry to a tcell colour.
func color(c assets.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

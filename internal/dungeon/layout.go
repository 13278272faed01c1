package dungeon

import "medieval-rogue/assets"

// Layout holds the pixel dimensions shared by every room on a floor.
type Layout struct {
	CellW, CellH  float64 // world size of one grid cell
	Inset         float64 // margin between the cell edge and the interior
	Wall          float64 // thickness of the border wall strips
	DoorLength    float64
	DoorThickness float64
	EntryInset    float64 // distance from the entry wall when arriving through a door
	AuthorW       float64 // authoring canvas per cell for obstacle patterns
	AuthorH       float64
}

// DefaultLayout returns the stock room dimensions.
func DefaultLayout() Layout {
	return Layout{
		CellW:         1280,
		CellH:         736,
		Inset:         72,
		Wall:          24,
		DoorLength:    72,
		DoorThickness: 28,
		EntryInset:    48,
		AuthorW:       assets.AuthorW,
		AuthorH:       assets.AuthorH,
	}
}

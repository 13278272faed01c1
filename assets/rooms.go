package assets

// Obstacle is an interior block in authoring space. Each occupied room cell is
// AuthorW×AuthorH authoring units; the pattern is stretched to the room interior.
type Obstacle struct {
	X, Y, W, H float64
}

// Authoring canvas per room cell.
const (
	AuthorW = 320
	AuthorH = 180
)

// RoomShape keys the obstacle pattern table.
type RoomShape struct {
	Kind string
	W, H int
}

var (
	patternEmpty   = []Obstacle{}
	patternPillars = []Obstacle{{80, 40, 8, 30}, {232, 40, 8, 30}, {80, 110, 8, 30}, {232, 110, 8, 30}}
	patternBlock   = []Obstacle{{140, 70, 40, 40}}
	patternBars    = []Obstacle{{60, 84, 60, 12}, {200, 84, 60, 12}}
	patternPosts   = []Obstacle{{100, 60, 12, 12}, {208, 60, 12, 12}, {100, 108, 12, 12}, {208, 108, 12, 12}}

	// 2x1 canvas is 640x180
	patternWideTwin  = []Obstacle{{140, 70, 40, 40}, {460, 70, 40, 40}}
	patternWideColon = []Obstacle{{300, 40, 40, 24}, {300, 116, 40, 24}}
	patternWideRow   = []Obstacle{{120, 40, 8, 30}, {512, 40, 8, 30}, {120, 110, 8, 30}, {512, 110, 8, 30}, {316, 80, 8, 20}}

	// 1x2 canvas is 320x360
	patternTallTwin  = []Obstacle{{140, 70, 40, 40}, {140, 250, 40, 40}}
	patternTallWings = []Obstacle{{60, 170, 60, 20}, {200, 170, 60, 20}}

	// 2x2 canvas is 640x360
	patternBigQuad  = []Obstacle{{140, 70, 40, 40}, {460, 70, 40, 40}, {140, 250, 40, 40}, {460, 250, 40, 40}}
	patternBigPlus  = []Obstacle{{300, 120, 40, 120}, {240, 160, 160, 40}}
	patternBigRing  = []Obstacle{{200, 100, 240, 12}, {200, 248, 240, 12}, {200, 112, 12, 40}, {428, 208, 12, 40}}
	patternBossHall = []Obstacle{{100, 60, 16, 16}, {524, 60, 16, 16}, {100, 284, 16, 16}, {524, 284, 16, 16}}
)

// RoomPatterns lists the candidate obstacle layouts per room kind and size.
// Shapes missing from the table get an empty room.
var RoomPatterns = map[RoomShape][][]Obstacle{
	{"start", 1, 1}: {patternEmpty},
	{"item", 1, 1}:  {patternEmpty, patternPosts},
	{"item", 2, 1}:  {patternEmpty},
	{"item", 1, 2}:  {patternEmpty},
	{"item", 2, 2}:  {patternEmpty},

	{"combat", 1, 1}: {patternEmpty, patternPillars, patternBlock, patternBars, patternPosts},
	{"combat", 2, 1}: {patternEmpty, patternWideTwin, patternWideColon, patternWideRow},
	{"combat", 1, 2}: {patternEmpty, patternTallTwin, patternTallWings},
	{"combat", 2, 2}: {patternEmpty, patternBigQuad, patternBigPlus, patternBigRing},

	{"boss", 1, 1}: {patternEmpty, patternPillars},
	{"boss", 2, 1}: {patternEmpty, patternWideTwin},
	{"boss", 1, 2}: {patternEmpty, patternTallTwin},
	{"boss", 2, 2}: {patternEmpty, patternBossHall},
}

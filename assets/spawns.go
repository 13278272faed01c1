package assets

// Spawn places one enemy at a relative position inside a room interior.
type Spawn struct {
	Kind   string
	RX, RY float64 // 0..1 across the interior
}

// SpawnPatterns are the named enemy layouts for combat rooms.
var SpawnPatterns = map[string][]Spawn{
	"combat_small_center": {{"slime", 0.50, 0.50}, {"slime", 0.35, 0.55}, {"bat", 0.60, 0.45}},
	"combat_ring":         {{"skeleton", 0.50, 0.20}, {"skeleton", 0.20, 0.50}, {"skeleton", 0.80, 0.50}, {"bat", 0.50, 0.80}},
	"four_corners":        {{"slime", 0.20, 0.20}, {"slime", 0.80, 0.20}, {"slime", 0.20, 0.80}, {"slime", 0.80, 0.80}},
	"bats_swarm":          {{"bat", 0.30, 0.30}, {"bat", 0.70, 0.30}, {"bat", 0.30, 0.70}, {"bat", 0.70, 0.70}, {"bat", 0.50, 0.50}},
	"skeleton_line":       {{"skeleton", 0.25, 0.50}, {"skeleton", 0.40, 0.50}, {"skeleton", 0.60, 0.50}, {"skeleton", 0.75, 0.50}},
	"mixed_cross":         {{"slime", 0.50, 0.30}, {"bat", 0.30, 0.50}, {"skeleton", 0.50, 0.70}, {"bat", 0.70, 0.50}},
	"zigzag":              {{"bat", 0.2, 0.2}, {"slime", 0.4, 0.4}, {"bat", 0.6, 0.6}, {"slime", 0.8, 0.8}},
	"diamond":             {{"slime", 0.50, 0.25}, {"bat", 0.25, 0.50}, {"slime", 0.50, 0.75}, {"bat", 0.75, 0.50}},
	"arc_left": {
		{"skeleton", 0.20, 0.30},
		{"skeleton", 0.20, 0.50},
		{"skeleton", 0.20, 0.70},
		{"bat", 0.35, 0.40},
		{"bat", 0.35, 0.60},
	},
	"staggered_rows": {
		{"slime", 0.30, 0.35},
		{"slime", 0.50, 0.35},
		{"slime", 0.70, 0.35},
		{"bat", 0.40, 0.55},
		{"bat", 0.60, 0.55},
		{"skeleton", 0.50, 0.75},
	},
}

// SpawnSize keys SpawnTable by room size in cells.
type SpawnSize struct{ W, H int }

// SpawnTable lists the patterns eligible for each combat room size.
var SpawnTable = map[SpawnSize][]string{
	{1, 1}: {"combat_small_center", "four_corners", "bats_swarm", "mixed_cross", "diamond"},
	{2, 1}: {"skeleton_line", "combat_ring", "zigzag", "staggered_rows"},
	{1, 2}: {"arc_left", "combat_ring", "diamond", "zigzag"},
	{2, 2}: {"staggered_rows", "combat_ring", "bats_swarm", "arc_left", "mixed_cross"},
}

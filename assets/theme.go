package assets

// Emoji constants used as entity glyphs.
const (
	GlyphArcher   = "🏹"
	GlyphRogue    = "🥷"
	GlyphMage     = "🧙"
	GlyphKnight   = "🛡"
	GlyphSlime    = "🟢"
	GlyphBat      = "🦇"
	GlyphSkeleton = "💀"
	GlyphWarden   = "🗿"
	GlyphWarlock  = "🧛"
	GlyphCaptain  = "🤺"
	GlyphOgre     = "👹"
	GlyphArrow    = "•"
	GlyphBolt     = "∘"
	GlyphItem     = "🎁"
	GlyphDoor     = "🚪"
	GlyphWall     = "█"
	GlyphObstacle = "▓"
	GlyphFloor    = "·"
)

// ClassDef defines a selectable player class.
type ClassDef struct {
	ID        string
	Name      string
	Emoji     string
	Lore      string // one-liner shown on the class selection screen
	HP        int
	Damage    int
	Speed     float64 // pixels per second
	FireRate  float64 // shots per second
	ProjSpeed float64 // pixels per second
	Locked    bool    // hidden behind a profile unlock until earned
	UnlockBy  string  // human-readable unlock hint
}

// Classes is the ordered list of player classes.
var Classes = []ClassDef{
	{
		ID:        "archer",
		Name:      "Archer",
		Emoji:     GlyphArcher,
		Lore:      "Balanced class with strong DPS",
		HP:        5,
		Damage:    1,
		Speed:     220,
		FireRate:  3.0,
		ProjSpeed: 280,
	},
	{
		ID:        "rogue",
		Name:      "Rogue",
		Emoji:     GlyphRogue,
		Lore:      "Fast and agile, but fragile",
		HP:        4,
		Damage:    2,
		Speed:     250,
		FireRate:  2.0,
		ProjSpeed: 190,
	},
	{
		ID:        "mage",
		Name:      "Mage",
		Emoji:     GlyphMage,
		Lore:      "Powerful projectiles, but slow cast",
		HP:        3,
		Damage:    3,
		Speed:     190,
		FireRate:  1.3,
		ProjSpeed: 160,
	},
	{
		ID:        "knight",
		Name:      "Knight",
		Emoji:     GlyphKnight,
		Lore:      "Heavy armour and a heavier crossbow",
		HP:        7,
		Damage:    2,
		Speed:     180,
		FireRate:  1.6,
		ProjSpeed: 220,
		Locked:    true,
		UnlockBy:  "Win a run as the Archer",
	},
}

// EntityGlyphs maps an entity's visual id to the glyph drawn for it.
var EntityGlyphs = map[string]string{
	"archer":         GlyphArcher,
	"rogue":          GlyphRogue,
	"mage":           GlyphMage,
	"knight":         GlyphKnight,
	"slime":          GlyphSlime,
	"bat":            GlyphBat,
	"skeleton":       GlyphSkeleton,
	"warden":         GlyphWarden,
	"warlock":        GlyphWarlock,
	"knight_captain": GlyphCaptain,
	"ogre":           GlyphOgre,
	"arrow":          GlyphArrow,
	"bolt":           GlyphBolt,
	"item":           GlyphItem,
}

// Glyph returns the glyph for a visual id, falling back to "?".
func Glyph(id string) string {
	if g, ok := EntityGlyphs[id]; ok {
		return g
	}
	return "?"
}

// RGB is a plain 8-bit colour triple shared by the terminal and window renderers.
type RGB struct{ R, G, B uint8 }

// Palette colours.
var (
	ColorFloor        = RGB{26, 22, 32}
	ColorBorder       = RGB{50, 40, 60}
	ColorObstacle     = RGB{60, 50, 70}
	ColorDoorOpen     = RGB{160, 130, 40}
	ColorDoorClosed   = RGB{80, 50, 20}
	ColorFriendlyShot = RGB{240, 220, 120}
	ColorHostileShot  = RGB{220, 90, 90}
	ColorWhite        = RGB{255, 255, 255}
	ColorGray         = RGB{90, 90, 90}
	ColorRed          = RGB{220, 70, 70}
	ColorGreen        = RGB{80, 200, 120}
	ColorYellow       = RGB{240, 200, 80}
	ColorBlue         = RGB{80, 140, 220}
)

// EntityColors tints entities on renderers that draw shapes instead of glyphs.
var EntityColors = map[string]RGB{
	"archer":         {60, 120, 80},
	"rogue":          {70, 70, 90},
	"mage":           {90, 80, 200},
	"knight":         {170, 170, 190},
	"slime":          {90, 200, 120},
	"bat":            {120, 120, 220},
	"skeleton":       {220, 220, 220},
	"warden":         {50, 220, 150},
	"warlock":        {180, 100, 220},
	"knight_captain": {200, 180, 80},
	"ogre":           {160, 110, 70},
	"item":           {200, 180, 60},
}

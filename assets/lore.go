package assets

// FloorNames maps floor index (0-based) to its name.
var FloorNames = []string{
	"The Undercroft",
	"The Ossuary",
	"The Keep",
}

// FloorName returns the name for a floor index, repeating the last for deeper floors.
func FloorName(floor int) string {
	if floor < 0 {
		floor = 0
	}
	if floor >= len(FloorNames) {
		floor = len(FloorNames) - 1
	}
	return FloorNames[floor]
}

// FloorLore holds a few atmospheric snippets per floor. One is picked on entry.
var FloorLore = [][]string{
	{ // The Undercroft
		"Damp stone and the smell of old candles. Something slithers beyond the torchlight.",
		"The cellar stores were emptied long ago. The rats did not leave with them.",
		"A warden's keyring hangs on a nail. Every key is bent.",
	},
	{ // The Ossuary
		"Bones are stacked to the ceiling in neat rows. A few rows are less neat than the others.",
		"Someone scratched a tally into the wall. It stops at forty-one.",
		"The air is cold enough to see your breath. The skulls do not breathe, but the air moves anyway.",
	},
	{ // The Keep
		"Banners of a forgotten house hang in tatters. The guards still walk their rounds.",
		"A feast table is set for twelve. The food is centuries old and somehow still warm.",
		"The captain's chair faces the door. It has been waiting for you.",
	},
}

// BossNames maps boss ids to display names.
var BossNames = map[string]string{
	"warden":         "The Warden",
	"warlock":        "The Warlock",
	"knight_captain": "Knight Captain",
	"ogre":           "Cellar Ogre",
}

// LoreOpening is shown on the title screen.
const LoreOpening = `Beneath the old abbey the dead do not rest.
Three floors stand between you and daylight,
each held by something that would rather you stayed.
Press any key to begin...`

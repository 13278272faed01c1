package assets

// ItemDef is the display data for a passive item. The stat effect lives with
// the player model, keyed by ID.
type ItemDef struct {
	ID   string
	Name string
	Desc string
}

// Items lists every item that can appear in an item room.
var Items = []ItemDef{
	{ID: "better_darts", Name: "Better Darts", Desc: "+20% arrow speed"},
	{ID: "longbow", Name: "Longbow", Desc: "+1 damage"},
	{ID: "boots", Name: "Boots", Desc: "+10% move speed"},
	{ID: "quiver", Name: "Quiver", Desc: "+15% fire rate"},
	{ID: "chestplate", Name: "Chestplate", Desc: "+1 HP"},
	{ID: "heart_container", Name: "Heart Container", Desc: "+1 max HP, full heal"},
	{ID: "whetstone", Name: "Whetstone", Desc: "+10% fire rate and arrow speed"},
}

// ItemName returns the display name for an item id.
func ItemName(id string) string {
	for _, it := range Items {
		if it.ID == id {
			return it.Name
		}
	}
	return id // fallback
}

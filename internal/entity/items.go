package entity

import (
	"math/rand"

	"medieval-rogue/assets"
	"medieval-rogue/internal/geom"
)

// Item is a passive upgrade. Apply only ever improves the player's stats.
type Item struct {
	assets.ItemDef
	Apply func(p *Player)
}

// Items holds every item by id.
var Items = NewRegistry[Item]("item")

var itemEffects = map[string]func(p *Player){
	"better_darts": func(p *Player) { p.Stats.ProjSpeed *= 1.2 },
	"longbow":      func(p *Player) { p.Stats.Damage++ },
	"boots":        func(p *Player) { p.Stats.Speed *= 1.1 },
	"quiver":       func(p *Player) { p.Stats.FireRate *= 1.15 },
	"chestplate": func(p *Player) {
		p.Stats.HP++
		p.HP++
	},
	"heart_container": func(p *Player) {
		p.Stats.HP++
		p.HP = p.Stats.HP
	},
	"whetstone": func(p *Player) {
		p.Stats.FireRate *= 1.1
		p.Stats.ProjSpeed *= 1.1
	},
}

func init() {
	for _, def := range assets.Items {
		apply, ok := itemEffects[def.ID]
		if !ok {
			panic("entity: item " + def.ID + " has no effect")
		}
		Items.Register(def.ID, Item{ItemDef: def, Apply: apply})
	}
}

// RandomItem picks an item id uniformly from the registry.
func RandomItem(rng *rand.Rand) string {
	keys := Items.Keys()
	return keys[rng.Intn(len(keys))]
}

const pickupSize = 32

// ItemPickup is an item lying on the floor of an item room.
type ItemPickup struct {
	Pos    geom.Vec
	ItemID string
	dead   bool
}

// NewItemPickup places item id at pos.
func NewItemPickup(id string, pos geom.Vec) *ItemPickup {
	return &ItemPickup{Pos: pos, ItemID: id}
}

func (i *ItemPickup) Rect() geom.Rect {
	return geom.Centered(pickupSize, pickupSize).At(i.Pos.X, i.Pos.Y)
}
func (i *ItemPickup) Center() geom.Vec { return i.Pos }
func (i *ItemPickup) Alive() bool      { return !i.dead }
func (i *ItemPickup) Visual() Visual   { return Visual{ID: "item", State: i.ItemID} }

// Take marks the pickup collected.
func (i *ItemPickup) Take() { i.dead = true }

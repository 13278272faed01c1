package entity

import (
	"medieval-rogue/assets"
	"medieval-rogue/internal/geom"
)

// Class is a selectable hero with its starting stats.
type Class struct {
	assets.ClassDef
}

// Stats returns the class's starting stat bundle.
func (c Class) Stats() Stats {
	return Stats{
		HP:        c.HP,
		Damage:    c.Damage,
		Speed:     c.Speed,
		FireRate:  c.FireRate,
		ProjSpeed: c.ProjSpeed,
	}
}

// Classes holds every player class by id.
var Classes = NewRegistry[Class]("class")

// ClassOrder lists class ids in menu order.
var ClassOrder []string

func init() {
	for _, def := range assets.Classes {
		Classes.Register(def.ID, Class{ClassDef: def})
		ClassOrder = append(ClassOrder, def.ID)
	}
}

// NewPlayerOfClass creates a player with the stats of class id.
func NewPlayerOfClass(id string, pos geom.Vec) (*Player, error) {
	c, err := Classes.Lookup(id)
	if err != nil {
		return nil, err
	}
	return NewPlayer(id, c.Stats(), pos), nil
}

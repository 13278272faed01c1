package combat

import (
	"fmt"
	"strconv"
	"strings"

	"medieval-rogue/assets"
)

// Message is the log line for e, empty when it is not worth one.
func (e Event) Message() string {
	switch e.Kind {
	case EnemyKilled:
		return fmt.Sprintf("The %s falls.", strings.ReplaceAll(e.ID, "_", " "))
	case BossDefeated:
		name, ok := assets.BossNames[e.ID]
		if !ok {
			name = e.ID
		}
		return name + " is defeated! Press [n] to descend."
	case ItemPicked:
		for _, it := range assets.Items {
			if it.ID == e.ID {
				return fmt.Sprintf("You take the %s: %s.", it.Name, it.Desc)
			}
		}
		return "You take the " + e.ID + "."
	case RoomCleared:
		return "The doors grind open."
	case PlayerHurt:
		return "You are hit!"
	case FloorAdvanced:
		floor, _ := strconv.Atoi(e.ID)
		return fmt.Sprintf("You descend into %s.", assets.FloorName(floor))
	case RunEnded:
		if e.ID == "won" {
			return "Daylight at last."
		}
		return "You have fallen."
	}
	return ""
}

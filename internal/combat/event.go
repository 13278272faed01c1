package combat

import "medieval-rogue/internal/geom"

// EventKind names a discrete thing that happened during a frame.
type EventKind uint8

const (
	ShotFired EventKind = iota
	HitLanded
	EnemyKilled
	PlayerHurt
	BossDefeated
	ItemPicked
	RoomCleared
	RoomEntered
	FloorAdvanced
	RunEnded
)

var eventNames = [...]string{
	ShotFired:     "shot_fired",
	HitLanded:     "hit_landed",
	EnemyKilled:   "enemy_killed",
	PlayerHurt:    "player_hurt",
	BossDefeated:  "boss_defeated",
	ItemPicked:    "item_picked",
	RoomCleared:   "room_cleared",
	RoomEntered:   "room_entered",
	FloorAdvanced: "floor_advanced",
	RunEnded:      "run_ended",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a presentation trigger. Score is the points it awarded, if any.
type Event struct {
	Kind  EventKind
	Pos   geom.Vec
	ID    string // entity kind, item id, ...
	Score int
}

package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventMessage(t *testing.T) {
	cases := []struct {
		ev   Event
		want string
	}{
		{Event{Kind: EnemyKilled, ID: "skeleton"}, "The skeleton falls."},
		{Event{Kind: BossDefeated, ID: "warden"}, "The Warden is defeated! Press [n] to descend."},
		{Event{Kind: ItemPicked, ID: "boots"}, "You take the Boots: +10% move speed."},
		{Event{Kind: FloorAdvanced, ID: "1"}, "You descend into The Ossuary."},
		{Event{Kind: RunEnded, ID: "won"}, "Daylight at last."},
		{Event{Kind: RunEnded, ID: "lost"}, "You have fallen."},
		{Event{Kind: ShotFired}, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.ev.Message(), c.ev.Kind.String())
	}
}

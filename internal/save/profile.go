package save

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Profile counters.
const (
	StatRunsStarted    = "runs_started"
	StatRunsWon        = "runs_won"
	StatBossesDefeated = "bosses_defeated"
	StatRoomsCleared   = "rooms_cleared"
	StatArcherWins     = "archer_wins"
)

// Profile is the cumulative record of a player across runs.
type Profile struct {
	Stats   map[string]int  `json:"stats"`
	Unlocks map[string]bool `json:"unlocks"`
}

// NewProfile returns a profile with every counter at zero and the knight locked.
func NewProfile() Profile {
	return Profile{
		Stats: map[string]int{
			StatRunsStarted:    0,
			StatRunsWon:        0,
			StatBossesDefeated: 0,
			StatRoomsCleared:   0,
			StatArcherWins:     0,
		},
		Unlocks: map[string]bool{"knight": false},
	}
}

// withDefaults fills keys missing from an older or partial record.
func (p Profile) withDefaults() Profile {
	out := NewProfile()
	maps.Copy(out.Stats, p.Stats)
	maps.Copy(out.Unlocks, p.Unlocks)
	return out
}

// Bump adds delta to a counter.
func (p *Profile) Bump(key string, delta int) {
	if p.Stats == nil {
		p.Stats = map[string]int{}
	}
	p.Stats[key] += delta
}

// Unlocked reports whether classID has been unlocked.
func (p Profile) Unlocked(classID string) bool { return p.Unlocks[classID] }

// RecordRunFinished bumps the win counters. An archer win unlocks the knight.
func (p *Profile) RecordRunFinished(win bool, classID string) {
	if !win {
		return
	}
	p.Bump(StatRunsWon, 1)
	if classID == "archer" {
		p.Bump(StatArcherWins, 1)
		if p.Unlocks == nil {
			p.Unlocks = map[string]bool{}
		}
		p.Unlocks["knight"] = true
	}
}

// Lines renders the counters for a stats screen, sorted by key.
func (p Profile) Lines() []string {
	keys := slices.Sorted(maps.Keys(p.Stats))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.ReplaceAll(k, "_", " ")+": "+strconv.Itoa(p.Stats[k]))
	}
	return out
}

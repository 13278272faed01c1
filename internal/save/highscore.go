package save

import (
	"slices"
	"strings"
)

const (
	// MaxHighscores is the length of the highscore table.
	MaxHighscores = 10
	// MaxNameLen is the longest name kept in the table.
	MaxNameLen = 8
)

// Highscore is one table entry.
type Highscore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// NormalizeName upper-cases and truncates a name; empty names become "YOU".
func NormalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "YOU"
	}
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	return name
}

// InsertHighscore adds h to table and returns the sorted, truncated result.
// Earlier entries win ties.
func InsertHighscore(table []Highscore, h Highscore) []Highscore {
	h.Name = NormalizeName(h.Name)
	out := append(slices.Clone(table), h)
	slices.SortStableFunc(out, func(a, b Highscore) int { return b.Score - a.Score })
	if len(out) > MaxHighscores {
		out = out[:MaxHighscores]
	}
	return out
}

// Qualifies reports whether score would make it onto table.
func Qualifies(table []Highscore, score int) bool {
	if score <= 0 {
		return false
	}
	return len(table) < MaxHighscores || score > table[len(table)-1].Score
}

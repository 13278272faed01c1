package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/run"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	RunID         string         `json:"run_id"`
	Player        string         `json:"player"`
	Class         string         `json:"class"`
	Victory       bool           `json:"victory"`
	FloorsReached int            `json:"floors_reached"`
	Score         int            `json:"score"`
	FinalScore    int            `json:"final_score"`
	Elapsed       float64        `json:"elapsed"`
	EnemiesKilled map[string]int `json:"enemies_killed"` // kind → kill count
	ItemsPicked   []string       `json:"items_picked"`
	RoomsCleared  int            `json:"rooms_cleared"`
	HitsTaken     int            `json:"hits_taken"`
	ShotsFired    int            `json:"shots_fired"`
	EndedAt       time.Time      `json:"ended_at"`
}

func newRunLog(r *run.Run, player string) RunLog {
	return RunLog{
		RunID:         r.ID(),
		Player:        player,
		Class:         r.Player().ClassID,
		FloorsReached: r.Floor() + 1,
		EnemiesKilled: make(map[string]int),
	}
}

// record folds one frame event into the log.
func (l *RunLog) record(ev combat.Event) {
	switch ev.Kind {
	case combat.ShotFired:
		l.ShotsFired++
	case combat.EnemyKilled, combat.BossDefeated:
		l.EnemiesKilled[ev.ID]++
	case combat.ItemPicked:
		l.ItemsPicked = append(l.ItemsPicked, ev.ID)
	case combat.RoomCleared:
		l.RoomsCleared++
	case combat.PlayerHurt:
		l.HitsTaken++
	case combat.FloorAdvanced:
		l.FloorsReached++
	}
}

// finish copies the outcome of a run that has ended.
func (l *RunLog) finish(r *run.Run, now time.Time) {
	l.Victory = r.State() == run.Won
	l.Score = r.Score()
	l.FinalScore = r.FinalScore()
	l.Elapsed = r.Elapsed()
	l.EndedAt = now.UTC()
}

// Kills totals EnemiesKilled.
func (l RunLog) Kills() int {
	n := 0
	for _, c := range l.EnemiesKilled {
		n += c
	}
	return n
}

// saveRunLog appends the completed run as a single JSON line to runs.jsonl in dir.
func saveRunLog(dir string, log RunLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("run log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

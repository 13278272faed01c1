package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"medieval-rogue/internal/combat"
)

func TestSaveRunLog(t *testing.T) {
	tmp := t.TempDir()

	log := RunLog{
		RunID:         "run-1",
		Class:         "archer",
		FloorsReached: 2,
		EnemiesKilled: map[string]int{"slime": 2},
		ItemsPicked:   []string{"boots"},
	}
	if err := saveRunLog(tmp, log); err != nil {
		t.Fatalf("saveRunLog: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "runs.jsonl"))
	if err != nil {
		t.Fatalf("runs.jsonl not created: %v", err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		t.Errorf("log entry should end with newline; got: %q", content)
	}
	var got RunLog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if got.Class != "archer" || got.EnemiesKilled["slime"] != 2 || got.ItemsPicked[0] != "boots" {
		t.Errorf("decoded log = %+v", got)
	}
}

func TestSaveRunLogAppendsMultiple(t *testing.T) {
	tmp := t.TempDir()

	for i := range 3 {
		if err := saveRunLog(tmp, RunLog{Class: "mage", FloorsReached: i + 1}); err != nil {
			t.Fatalf("saveRunLog: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(tmp, "runs.jsonl"))
	if err != nil {
		t.Fatalf("runs.jsonl not found: %v", err)
	}
	// Each call appends one JSON line; count the newlines.
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 log lines, got %d", len(lines))
	}
}

func TestSaveRunLogReportsBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := saveRunLog(file, RunLog{}); err == nil {
		t.Fatal("expected an error when the log dir is a file")
	}
}

func TestRunLogRecord(t *testing.T) {
	log := RunLog{FloorsReached: 1, EnemiesKilled: map[string]int{}}
	for _, ev := range []combat.Event{
		{Kind: combat.ShotFired},
		{Kind: combat.EnemyKilled, ID: "bat"},
		{Kind: combat.EnemyKilled, ID: "bat"},
		{Kind: combat.BossDefeated, ID: "warden"},
		{Kind: combat.ItemPicked, ID: "quiver"},
		{Kind: combat.RoomCleared},
		{Kind: combat.PlayerHurt},
		{Kind: combat.FloorAdvanced, ID: "1"},
	} {
		log.record(ev)
	}
	if log.Kills() != 3 || log.EnemiesKilled["bat"] != 2 {
		t.Errorf("kills = %v", log.EnemiesKilled)
	}
	if log.ShotsFired != 1 || log.RoomsCleared != 1 || log.HitsTaken != 1 || log.FloorsReached != 2 {
		t.Errorf("counters = %+v", log)
	}
	if len(log.ItemsPicked) != 1 || log.ItemsPicked[0] != "quiver" {
		t.Errorf("items = %v", log.ItemsPicked)
	}
}

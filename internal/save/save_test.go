package save

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() RunState {
	return RunState{
		RunID:     "abc",
		RunSeed:   42,
		FloorI:    1,
		CurrentGP: [2]int{1, 0},
		Rooms: map[string]RoomState{
			"0,0": {Kind: "start", Visited: true, Discovered: true, WCells: 1, HCells: 1},
			"1,0": {Kind: "combat", Visited: true, Discovered: true, Cleared: true, WCells: 2, HCells: 1},
			"1,1": {Kind: "boss", Discovered: true, WCells: 1, HCells: 1},
		},
		Checkpoint: Checkpoint{
			ClassID:   "archer",
			HP:        3,
			Stats:     Stats{HP: 5, Damage: 2, Speed: 220, FireRate: 3, ProjSpeed: 280},
			Inventory: []string{"whetstone"},
		},
		Score:   135,
		ClassID: "archer",
		Elapsed: 61.5,
	}
}

func newStore(t *testing.T) *JSONStore {
	t.Helper()
	js, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)
	return js
}

func TestJSONStoreRunRoundTrip(t *testing.T) {
	js := newStore(t)
	want := sampleRun()
	require.NoError(t, js.SaveRun("local", want))

	got, err := js.LoadRun("local")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, js.ClearRun("local"))
	_, err = js.LoadRun("local")
	assert.ErrorIs(t, err, ErrNoSave)
	assert.NoError(t, js.ClearRun("local"), "clearing twice is fine")
}

func TestJSONStoreMissingAndCorruptRuns(t *testing.T) {
	js := newStore(t)
	_, err := js.LoadRun("nobody")
	assert.ErrorIs(t, err, ErrNoSave)

	path := filepath.Join(js.Root(), "broken", runFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = js.LoadRun("broken")
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, os.WriteFile(path, []byte(`{"run_seed": 1, "rooms": {}}`), 0o644))
	_, err = js.LoadRun("broken")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestRejectsPathLikeSlots(t *testing.T) {
	js := newStore(t)
	for _, slot := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, js.SaveRun(slot, sampleRun()), "slot %q", slot)
	}
}

func TestValidate(t *testing.T) {
	s := sampleRun()
	require.NoError(t, s.Validate())

	s.CurrentGP = [2]int{5, 5}
	assert.ErrorIs(t, s.Validate(), ErrCorrupt)

	s = sampleRun()
	s.MidRoom = true
	assert.ErrorIs(t, s.Validate(), ErrCorrupt)
	s.PlayerPos = &[2]float64{10, 20}
	assert.NoError(t, s.Validate())
}

func TestProfileDefaultsAndUnlock(t *testing.T) {
	js := newStore(t)
	p, err := js.LoadProfile("local")
	require.NoError(t, err)
	assert.False(t, p.Unlocked("knight"))
	assert.Equal(t, 0, p.Stats[StatRunsWon])

	p.RecordRunFinished(false, "archer")
	assert.Equal(t, 0, p.Stats[StatRunsWon])
	p.RecordRunFinished(true, "rogue")
	assert.False(t, p.Unlocked("knight"))
	p.RecordRunFinished(true, "archer")
	assert.True(t, p.Unlocked("knight"))
	assert.Equal(t, 2, p.Stats[StatRunsWon])
	assert.Equal(t, 1, p.Stats[StatArcherWins])

	require.NoError(t, js.SaveProfile("local", p))
	again, err := js.LoadProfile("local")
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestPartialProfileGetsDefaults(t *testing.T) {
	js := newStore(t)
	path := filepath.Join(js.Root(), "old", profileFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"stats": {"runs_won": 3}}`), 0o644))

	p, err := js.LoadProfile("old")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stats[StatRunsWon])
	assert.Contains(t, p.Stats, StatRoomsCleared)
	assert.Contains(t, p.Unlocks, "knight")
}

func TestProfileRecorder(t *testing.T) {
	js := newStore(t)
	rec := &ProfileRecorder{Store: js, Slot: "local"}
	rec.RunStarted("archer")
	rec.RoomCleared()
	rec.RoomCleared()
	rec.BossDefeated()
	rec.RunFinished(true, "archer")

	p, err := js.LoadProfile("local")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stats[StatRunsStarted])
	assert.Equal(t, 2, p.Stats[StatRoomsCleared])
	assert.Equal(t, 1, p.Stats[StatBossesDefeated])
	assert.True(t, rec.Unlocked("knight"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "YOU", NormalizeName("  "))
	assert.Equal(t, "ALICE", NormalizeName("alice"))
	assert.Equal(t, "ABCDEFGH", NormalizeName("abcdefghijk"))
}

func TestHighscoresKeepTopTen(t *testing.T) {
	js := newStore(t)
	table, err := js.Highscores()
	require.NoError(t, err)
	assert.Empty(t, table)

	for i := 1; i <= 12; i++ {
		table, err = js.AddHighscore(Highscore{Name: "p", Score: i * 10})
		require.NoError(t, err)
	}
	require.Len(t, table, MaxHighscores)
	assert.Equal(t, 120, table[0].Score)
	assert.Equal(t, 30, table[len(table)-1].Score)
	assert.Equal(t, "P", table[0].Name)

	reloaded, err := js.Highscores()
	require.NoError(t, err)
	assert.Equal(t, table, reloaded)
}

func TestInsertHighscoreTiesKeepOrder(t *testing.T) {
	table := InsertHighscore(nil, Highscore{Name: "first", Score: 50})
	table = InsertHighscore(table, Highscore{Name: "second", Score: 50})
	assert.Equal(t, "FIRST", table[0].Name)
	assert.Equal(t, "SECOND", table[1].Name)
}

func TestQualifies(t *testing.T) {
	assert.False(t, Qualifies(nil, 0))
	assert.True(t, Qualifies(nil, 1))

	var full []Highscore
	for i := range MaxHighscores {
		full = append(full, Highscore{Name: "A", Score: 100 - i})
	}
	assert.False(t, Qualifies(full, 91))
	assert.True(t, Qualifies(full, 92))
}

func TestOpenPicksJSONWithoutDSN(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "")
	require.NoError(t, err)
	defer s.Close()
	js, ok := s.(*JSONStore)
	require.True(t, ok)
	assert.Equal(t, dir, js.Root())
}

func TestDataDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/data", "medieval-rogue"), dir)
}

// TestPostgresStore runs against a live database named by ROGUE_TEST_PG_DSN.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("ROGUE_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("ROGUE_TEST_PG_DSN not set")
	}
	ps, err := NewPostgresStore(dsn)
	require.NoError(t, err)
	defer ps.Close()

	slot := "test-slot"
	require.NoError(t, ps.ClearRun(slot))
	_, err = ps.LoadRun(slot)
	assert.True(t, errors.Is(err, ErrNoSave))

	want := sampleRun()
	require.NoError(t, ps.SaveRun(slot, want))
	got, err := ps.LoadRun(slot)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.NoError(t, ps.ClearRun(slot))
}

// Every backend refuses bad slot names before touching storage.
func TestStoresRejectBadSlots(t *testing.T) {
	js, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)
	stores := map[string]Store{
		"json":     js,
		"postgres": &PostgresStore{}, // no connection: the guard must fire first
	}
	for name, st := range stores {
		for _, slot := range []string{"", ".", "..", "a/b", `a\b`} {
			assert.ErrorIs(t, st.ClearRun(slot), errBadSlot, "%s ClearRun(%q)", name, slot)
			_, err := st.LoadProfile(slot)
			assert.ErrorIs(t, err, errBadSlot, "%s LoadProfile(%q)", name, slot)
			_, err = st.LoadRun(slot)
			assert.ErrorIs(t, err, errBadSlot, "%s LoadRun(%q)", name, slot)
			assert.ErrorIs(t, st.SaveRun(slot, sampleRun()), errBadSlot, "%s SaveRun(%q)", name, slot)
			assert.ErrorIs(t, st.SaveProfile(slot, NewProfile()), errBadSlot, "%s SaveProfile(%q)", name, slot)
		}
	}
}

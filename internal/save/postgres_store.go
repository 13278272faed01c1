package save

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps runs and profiles as JSONB documents keyed by slot.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, pings and creates the schema if missing.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	ps := &PostgresStore{db: db}
	if err := ps.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) initSchema() error {
	_, err := ps.db.Exec(`
	CREATE TABLE IF NOT EXISTS rogue_runs (
		slot TEXT PRIMARY KEY,
		state JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS rogue_profiles (
		slot TEXT PRIMARY KEY,
		profile JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS rogue_highscores (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`)
	return err
}

func (ps *PostgresStore) SaveRun(slot string, s RunState) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	_, err = ps.db.Exec(`
	INSERT INTO rogue_runs (slot, state) VALUES ($1, $2)
	ON CONFLICT (slot) DO UPDATE SET state = $2, updated_at = NOW()`, slot, string(doc))
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func (ps *PostgresStore) LoadRun(slot string) (RunState, error) {
	var s RunState
	if err := checkSlot(slot); err != nil {
		return s, err
	}
	var doc string
	err := ps.db.QueryRow(`SELECT state FROM rogue_runs WHERE slot = $1`, slot).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNoSave
	}
	if err != nil {
		return s, fmt.Errorf("load run: %w", err)
	}
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (ps *PostgresStore) ClearRun(slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if _, err := ps.db.Exec(`DELETE FROM rogue_runs WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("clear run: %w", err)
	}
	return nil
}

func (ps *PostgresStore) LoadProfile(slot string) (Profile, error) {
	if err := checkSlot(slot); err != nil {
		return NewProfile(), err
	}
	var doc string
	err := ps.db.QueryRow(`SELECT profile FROM rogue_profiles WHERE slot = $1`, slot).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return NewProfile(), nil
	}
	if err != nil {
		return NewProfile(), fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return NewProfile(), fmt.Errorf("load profile: %w", err)
	}
	return p.withDefaults(), nil
}

func (ps *PostgresStore) SaveProfile(slot string, p Profile) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = ps.db.Exec(`
	INSERT INTO rogue_profiles (slot, profile) VALUES ($1, $2)
	ON CONFLICT (slot) DO UPDATE SET profile = $2, updated_at = NOW()`, slot, string(doc))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Highscores() ([]Highscore, error) {
	rows, err := ps.db.Query(`SELECT name, score FROM rogue_highscores ORDER BY score DESC, id ASC LIMIT $1`, MaxHighscores)
	if err != nil {
		return nil, fmt.Errorf("load highscores: %w", err)
	}
	defer rows.Close()
	var table []Highscore
	for rows.Next() {
		var h Highscore
		if err := rows.Scan(&h.Name, &h.Score); err != nil {
			return nil, fmt.Errorf("scan highscore: %w", err)
		}
		table = append(table, h)
	}
	return table, rows.Err()
}

// AddHighscore inserts h and prunes everything below the table length.
func (ps *PostgresStore) AddHighscore(h Highscore) ([]Highscore, error) {
	h.Name = NormalizeName(h.Name)
	if _, err := ps.db.Exec(`INSERT INTO rogue_highscores (name, score) VALUES ($1, $2)`, h.Name, h.Score); err != nil {
		return nil, fmt.Errorf("add highscore: %w", err)
	}
	_, err := ps.db.Exec(`
	DELETE FROM rogue_highscores WHERE id NOT IN (
		SELECT id FROM rogue_highscores ORDER BY score DESC, id ASC LIMIT $1
	)`, MaxHighscores)
	if err != nil {
		return nil, fmt.Errorf("prune highscores: %w", err)
	}
	return ps.Highscores()
}

func (ps *PostgresStore) Close() error { return ps.db.Close() }

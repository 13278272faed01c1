package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	runFile       = "run_state.json"
	profileFile   = "profile.json"
	highscoreFile = "highscores.json"
)

// JSONStore keeps each slot in its own directory under root:
//
//	root/highscores.json
//	root/<slot>/run_state.json
//	root/<slot>/profile.json
type JSONStore struct {
	root string
	mu   sync.Mutex
}

// NewJSONStore creates root if needed.
func NewJSONStore(root string) (*JSONStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &JSONStore{root: root}, nil
}

// Root is the directory the store writes to.
func (js *JSONStore) Root() string { return js.root }

func (js *JSONStore) slotPath(slot, name string) (string, error) {
	if err := checkSlot(slot); err != nil {
		return "", err
	}
	return filepath.Join(js.root, slot, name), nil
}

// writeJSON replaces path atomically via a temp file and rename.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readJSON reports os.ErrNotExist untouched so callers can tell "missing"
// from "unreadable".
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (js *JSONStore) SaveRun(slot string, s RunState) error {
	path, err := js.slotPath(slot, runFile)
	if err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	if err := writeJSON(path, s); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func (js *JSONStore) LoadRun(slot string) (RunState, error) {
	var s RunState
	path, err := js.slotPath(slot, runFile)
	if err != nil {
		return s, err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	err = readJSON(path, &s)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, ErrNoSave
	case err != nil:
		return s, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (js *JSONStore) ClearRun(slot string) error {
	path, err := js.slotPath(slot, runFile)
	if err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear run: %w", err)
	}
	return nil
}

func (js *JSONStore) LoadProfile(slot string) (Profile, error) {
	path, err := js.slotPath(slot, profileFile)
	if err != nil {
		return NewProfile(), err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	var p Profile
	err = readJSON(path, &p)
	if errors.Is(err, os.ErrNotExist) {
		return NewProfile(), nil
	}
	if err != nil {
		return NewProfile(), fmt.Errorf("load profile: %w", err)
	}
	return p.withDefaults(), nil
}

func (js *JSONStore) SaveProfile(slot string, p Profile) error {
	path, err := js.slotPath(slot, profileFile)
	if err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (js *JSONStore) highscores() ([]Highscore, error) {
	var table []Highscore
	err := readJSON(filepath.Join(js.root, highscoreFile), &table)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load highscores: %w", err)
	}
	return table, nil
}

func (js *JSONStore) Highscores() ([]Highscore, error) {
	js.mu.Lock()
	defer js.mu.Unlock()
	return js.highscores()
}

func (js *JSONStore) AddHighscore(h Highscore) ([]Highscore, error) {
	js.mu.Lock()
	defer js.mu.Unlock()
	table, err := js.highscores()
	if err != nil {
		// an unreadable table is replaced rather than blocking new scores
		table = nil
	}
	table = InsertHighscore(table, h)
	if err := writeJSON(filepath.Join(js.root, highscoreFile), table); err != nil {
		return table, fmt.Errorf("save highscores: %w", err)
	}
	return table, nil
}

func (js *JSONStore) Close() error { return nil }

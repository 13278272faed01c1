// Package config holds every tunable of the game. Defaults are built in; a
// YAML file may override any subset of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"medieval-rogue/internal/entity"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Display is the logical screen and frame pacing.
type Display struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	ViewGutter float64 `yaml:"view_gutter"`
}

// Room is the pixel geometry shared by every room.
type Room struct {
	CellW         float64 `yaml:"cell_w"`
	CellH         float64 `yaml:"cell_h"`
	Inset         float64 `yaml:"inset"`
	Wall          float64 `yaml:"wall"`
	DoorLength    float64 `yaml:"door_length"`
	DoorThickness float64 `yaml:"door_thickness"`
	EntryInset    float64 `yaml:"entry_inset"`
}

// Player holds the post-hit timings. Stat bundles come from the classes.
type Player struct {
	Invulnerability float64 `yaml:"invulnerability"` // seconds
	HitStop         float64 `yaml:"hit_stop"`        // seconds of slowed time after a hit
	HitStopScale    float64 `yaml:"hit_stop_scale"`  // dt multiplier during hit-stop
}

// Score is the points table.
type Score struct {
	Enemy       int     `yaml:"enemy"`
	Room        int     `yaml:"room"`
	Boss        int     `yaml:"boss"`
	DecayPerSec float64 `yaml:"decay_per_sec"`
}

// Generation controls floor count, size and seeding.
type Generation struct {
	Floors     int     `yaml:"floors"`
	MinRooms   int     `yaml:"min_rooms"`
	MaxRooms   int     `yaml:"max_rooms"`
	SafeRadius float64 `yaml:"safe_radius"`
	Seed       *int64  `yaml:"seed"` // nil picks a random seed per run
}

// Storage selects where runs, profile and highscores are kept. An empty
// PostgresDSN uses JSON files under Dir (or the XDG data dir when Dir is empty).
type Storage struct {
	Dir         string `yaml:"dir"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Audio toggles the sound cues.
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// Settings is the full configuration.
type Settings struct {
	Display    Display    `yaml:"display"`
	Room       Room       `yaml:"room"`
	Player     Player     `yaml:"player"`
	Score      Score      `yaml:"score"`
	Generation Generation `yaml:"generation"`
	Storage    Storage    `yaml:"storage"`
	Audio      Audio      `yaml:"audio"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Display: Display{Width: 1280, Height: 736, FPS: 60, ViewGutter: 80},
		Room: Room{
			CellW:         1280,
			CellH:         736,
			Inset:         72,
			Wall:          24,
			DoorLength:    72,
			DoorThickness: 28,
			EntryInset:    48,
		},
		Player: Player{
			Invulnerability: 1.0,
			HitStop:         0.08,
			HitStopScale:    0.2,
		},
		Score:      Score{Enemy: 10, Room: 25, Boss: 200, DecayPerSec: 1},
		Generation: Generation{Floors: 3, MinRooms: 6, MaxRooms: 12, SafeRadius: 192},
		Audio:      Audio{Enabled: true, Volume: 0.5},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/medieval-rogue/config.yaml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "medieval-rogue", "config.yaml"), nil
}

// Load returns the defaults overlaid with the YAML file at path. A missing
// file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// minEntryInset is how far from the interior edge an arriving player must
// stand so its hitbox misses the door it came through: half the player's
// larger side plus however far the door pokes past the wall into the room.
func (s Settings) minEntryInset() float64 {
	half := max(entity.PlayerBox.W, entity.PlayerBox.H) / 2
	reach := max(0, s.Room.DoorThickness/2-s.Room.Wall/2)
	return half + reach
}

// Validate rejects settings the game cannot run with.
func (s Settings) Validate() error {
	var errs []error
	check := func(ok bool, field string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, field))
		}
	}
	check(s.Display.Width > 0 && s.Display.Height > 0, "display size must be positive")
	check(s.Display.FPS > 0, "display.fps must be positive")
	check(s.Room.CellW > 0 && s.Room.CellH > 0, "room cell size must be positive")
	check(s.Room.Wall > 0, "room.wall must be positive")
	check(s.Room.DoorLength > 0 && s.Room.DoorThickness > 0, "door size must be positive")
	check(2*s.Room.Inset < s.Room.CellW && 2*s.Room.Inset < s.Room.CellH, "room.inset leaves no interior")
	check(s.Room.EntryInset > s.minEntryInset(), "room.entry_inset must clear the player off the door")
	check(s.Player.Invulnerability >= 0, "player.invulnerability must not be negative")
	check(s.Player.HitStopScale > 0 && s.Player.HitStopScale <= 1, "player.hit_stop_scale must be in (0,1]")
	check(s.Generation.Floors > 0, "generation.floors must be positive")
	check(s.Generation.SafeRadius >= 0, "generation.safe_radius must not be negative")
	check(s.Generation.MinRooms > 0 && s.Generation.MinRooms <= s.Generation.MaxRooms, "generation room range is empty")
	check(s.Audio.Volume >= 0 && s.Audio.Volume <= 1, "audio.volume must be in [0,1]")
	return errors.Join(errs...)
}

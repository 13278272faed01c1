package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, 3, s.Generation.Floors)
	assert.Equal(t, 192.0, s.Generation.SafeRadius)
	assert.Nil(t, s.Generation.Seed)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	s, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadOverlaysPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "generation:\n  floors: 5\n  seed: 42\nscore:\n  boss: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Generation.Floors)
	require.NotNil(t, s.Generation.Seed)
	assert.Equal(t, int64(42), *s.Generation.Seed)
	assert.Equal(t, 500, s.Score.Boss)
	assert.Equal(t, 10, s.Score.Enemy, "unset keys keep their defaults")
	assert.Equal(t, 12, s.Generation.MaxRooms)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  min_rooms: 20\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [1, 2"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	s := Default()
	s.Display.FPS = 0
	s.Player.HitStopScale = 2
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fps")
	assert.Contains(t, err.Error(), "hit_stop_scale")
}

func TestValidateEntryInsetAndSafeRadius(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Settings)
		field string
	}{
		{"negative entry inset", func(s *Settings) { s.Room.EntryInset = -1 }, "entry_inset"},
		{"entry inset inside the door", func(s *Settings) { s.Room.EntryInset = 20 }, "entry_inset"},
		{"thick door needs a deeper inset", func(s *Settings) { s.Room.DoorThickness = 80 }, "entry_inset"},
		{"negative safe radius", func(s *Settings) { s.Generation.SafeRadius = -5 }, "safe_radius"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.edit(&s)
			err := s.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tc.field)
		})
	}

	s := Default()
	s.Generation.SafeRadius = 0
	assert.NoError(t, s.Validate(), "a zero safe radius disables the check")
}

func TestDefaultPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "medieval-rogue", "config.yaml"), p)
}

// Package audio plays short synthesized cues for frame events through the
// system speaker.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// note is one sine tone of a cue.
type note struct {
	freq float64
	dur  time.Duration
}

func seq(freqs []float64, dur time.Duration) []note {
	out := make([]note, len(freqs))
	for i, f := range freqs {
		out[i] = note{f, dur}
	}
	return out
}

var cueNotes = map[combat.EventKind][]note{
	combat.ShotFired:     {{660, 25 * time.Millisecond}},
	combat.HitLanded:     {{440, 35 * time.Millisecond}},
	combat.EnemyKilled:   seq([]float64{220, 330}, 50*time.Millisecond),
	combat.PlayerHurt:    seq([]float64{147, 110}, 70*time.Millisecond),
	combat.BossDefeated:  seq([]float64{262, 330, 392, 523}, 90*time.Millisecond),
	combat.ItemPicked:    seq([]float64{784, 1047}, 70*time.Millisecond),
	combat.RoomCleared:   seq([]float64{523, 659}, 80*time.Millisecond),
	combat.FloorAdvanced: seq([]float64{196, 262, 330}, 110*time.Millisecond),
	combat.RunEnded:      seq([]float64{523, 659, 784}, 160*time.Millisecond),
}

var lostNotes = seq([]float64{220, 165, 110}, 180*time.Millisecond)

// minGap throttles cues that can fire every frame.
var minGap = map[combat.EventKind]time.Duration{
	combat.ShotFired: 60 * time.Millisecond,
	combat.HitLanded: 40 * time.Millisecond,
}

// Streamer builds the cue for ev at volume in [0, 1]. It returns nil for
// events without a cue.
func Streamer(ev combat.Event, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[ev.Kind]
	if !ok {
		return nil, nil
	}
	if ev.Kind == combat.RunEnded && ev.ID == "lost" {
		notes = lostNotes
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0f Hz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(rate.N(n.dur), sine))
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// newVolume scales s linearly; math.Log2(0) is -Inf so zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Player plays cues on the speaker. A disabled Player ignores every event.
type Player struct {
	log     *slog.Logger
	volume  float64
	enabled bool

	mu   sync.Mutex
	last map[combat.EventKind]time.Time
}

// New initialises the speaker when cfg enables audio. Failing to open the
// device is logged and leaves the player disabled; the game runs silent.
func New(cfg config.Audio, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	p := &Player{log: log, volume: cfg.Volume, last: make(map[combat.EventKind]time.Time)}
	if !cfg.Enabled {
		return p
	}
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		log.Warn("audio disabled", "error", speakerErr)
		return p
	}
	p.enabled = true
	return p
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool { return p.enabled }

// Play starts the cue for ev without blocking.
func (p *Player) Play(ev combat.Event) {
	if !p.enabled || !p.admit(ev.Kind, time.Now()) {
		return
	}
	s, err := Streamer(ev, sampleRate, p.volume)
	if err != nil {
		p.log.Warn("audio cue", "event", ev.Kind, "error", err)
		return
	}
	if s != nil {
		speaker.Play(s)
	}
}

// admit applies the per-kind throttle.
func (p *Player) admit(kind combat.EventKind, now time.Time) bool {
	gap, ok := minGap[kind]
	if !ok {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if now.Sub(p.last[kind]) < gap {
		return false
	}
	p.last[kind] = now
	return true
}

// Close stops whatever is playing.
func (p *Player) Close() {
	if p.enabled {
		speaker.Clear()
	}
}

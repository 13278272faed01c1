package entity

import (
	"errors"
	"fmt"
	"maps"
	"math/rand"
	"slices"
)

// ErrUnknownKind is returned when a registry has no entry for a name. It
// always means the data tables and the registered code disagree.
var ErrUnknownKind = errors.New("unknown kind")

// Registry maps string identifiers to values, usually constructors. It is
// filled during package initialisation and read-only afterwards.
type Registry[T any] struct {
	kind    string
	entries map[string]T
}

// NewRegistry creates an empty registry; kind names it in error messages.
func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, entries: make(map[string]T)}
}

// Register adds key. Registering the same key twice panics.
func (r *Registry[T]) Register(key string, v T) {
	if _, dup := r.entries[key]; dup {
		panic(fmt.Sprintf("entity: %s %q already registered", r.kind, key))
	}
	r.entries[key] = v
}

// Lookup returns the entry for key or an error wrapping ErrUnknownKind.
func (r *Registry[T]) Lookup(key string) (T, error) {
	v, ok := r.entries[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w (known: %v)", r.kind, key, ErrUnknownKind, r.Keys())
	}
	return v, nil
}

// Has reports whether key is registered.
func (r *Registry[T]) Has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

// Keys returns the registered keys sorted.
func (r *Registry[T]) Keys() []string {
	return slices.Sorted(maps.Keys(r.entries))
}

// Len is the number of entries.
func (r *Registry[T]) Len() int { return len(r.entries) }

// HostileFactory builds a hostile at (x, y). rng drives any per-entity
// randomness so spawns are reproducible.
type HostileFactory func(x, y float64, rng *rand.Rand) Hostile

// Enemies and Bosses hold every hostile kind.
var (
	Enemies = NewRegistry[HostileFactory]("enemy")
	Bosses  = NewRegistry[HostileFactory]("boss")
)

// Create builds a hostile from reg.
func Create(reg *Registry[HostileFactory], kind string, x, y float64, rng *rand.Rand) (Hostile, error) {
	f, err := reg.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return f(x, y, rng), nil
}

// MustCreate is Create for tables already checked at startup. It panics on
// an unknown kind.
func MustCreate(reg *Registry[HostileFactory], kind string, x, y float64, rng *rand.Rand) Hostile {
	h, err := Create(reg, kind, x, y, rng)
	if err != nil {
		panic(err)
	}
	return h
}

// bossOrder is the rotation of bosses across floors.
var bossOrder = []string{"warden", "warlock", "knight_captain", "ogre"}

// BossForFloor returns the boss kind guarding a floor.
func BossForFloor(floor int) string {
	if floor < 0 {
		floor = -floor
	}
	return bossOrder[floor%len(bossOrder)]
}

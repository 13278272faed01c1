package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medieval-rogue/internal/geom"
)

func archer(t *testing.T) *Player {
	t.Helper()
	p, err := NewPlayerOfClass("archer", geom.V(0, 0))
	require.NoError(t, err)
	return p
}

func TestNewPlayerOfClass(t *testing.T) {
	p := archer(t)
	assert.Equal(t, Stats{HP: 5, Damage: 1, Speed: 220, FireRate: 3, ProjSpeed: 280}, p.Stats)
	assert.Equal(t, 5, p.HP)

	_, err := NewPlayerOfClass("bard", geom.V(0, 0))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPlayerMovesAtSpeed(t *testing.T) {
	p := archer(t)
	var shots Projectiles
	p.Update(0.5, Input{Move: geom.V(3, 0)}, nil, &shots)
	assert.InDelta(t, 110, p.Pos.X, 1e-9)
	assert.InDelta(t, 0, p.Pos.Y, 1e-9)
}

func TestPlayerZeroMoveKeepsPosition(t *testing.T) {
	p := archer(t)
	var shots Projectiles
	p.Pos = geom.V(12.5, 40)
	p.Update(1.0/60, Input{}, []geom.Rect{geom.R(0, 0, 5, 5)}, &shots)
	assert.Equal(t, geom.V(12.5, 40), p.Pos)
}

func TestPlayerFireRate(t *testing.T) {
	p := archer(t)
	var shots Projectiles
	in := Input{Fire: true, Aim: geom.V(100, 0)}
	assert.True(t, p.Update(1.0/60, in, nil, &shots))
	assert.False(t, p.Update(1.0/60, in, nil, &shots), "cooldown blocks the second shot")
	require.Len(t, shots, 1)
	assert.True(t, shots[0].Friendly)
	assert.InDelta(t, 280, shots[0].Vel.Len(), 1e-9)

	// 1/3s later the next shot is allowed
	for i := 0; i < 20; i++ {
		p.Update(1.0/60, Input{}, nil, &shots)
	}
	assert.True(t, p.Update(1.0/60, in, nil, &shots))
}

func TestPlayerInvulnerabilityWindow(t *testing.T) {
	p := archer(t)
	var shots Projectiles
	assert.True(t, p.TakeDamage(1))
	assert.False(t, p.TakeDamage(1), "no damage during the window")
	assert.Equal(t, 4, p.HP)
	for i := 0; i < 61; i++ {
		p.Update(1.0/60, Input{}, nil, &shots)
	}
	assert.True(t, p.TakeDamage(1))
	assert.Equal(t, 3, p.HP)
}

func TestItemsOnlyImproveStats(t *testing.T) {
	for _, id := range Items.Keys() {
		p := archer(t)
		before, hp := p.Stats, p.HP
		require.NoError(t, p.ApplyItem(id))
		after := p.Stats
		assert.GreaterOrEqual(t, after.HP, before.HP, id)
		assert.GreaterOrEqual(t, after.Damage, before.Damage, id)
		assert.GreaterOrEqual(t, after.Speed, before.Speed, id)
		assert.GreaterOrEqual(t, after.FireRate, before.FireRate, id)
		assert.GreaterOrEqual(t, after.ProjSpeed, before.ProjSpeed, id)
		assert.GreaterOrEqual(t, p.HP, hp, id)
		assert.NotEqual(t, before, after, "%s changes something", id)
		assert.Equal(t, []string{id}, p.Inventory)
	}
}

func TestApplyUnknownItem(t *testing.T) {
	p := archer(t)
	assert.ErrorIs(t, p.ApplyItem("excalibur"), ErrUnknownKind)
	assert.Empty(t, p.Inventory)
}

func TestCheckpointRestore(t *testing.T) {
	p := archer(t)
	require.NoError(t, p.ApplyItem("longbow"))
	p.TakeDamage(2)
	c := p.Checkpoint()
	q := Restore(c, geom.V(5, 5))
	assert.Equal(t, p.Stats, q.Stats)
	assert.Equal(t, p.HP, q.HP)
	assert.Equal(t, p.Inventory, q.Inventory)
	assert.False(t, q.Invulnerable())

	c.Inventory[0] = "boots"
	assert.Equal(t, "longbow", p.Inventory[0], "checkpoint is a copy")
}

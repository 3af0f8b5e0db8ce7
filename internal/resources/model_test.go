package resources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/arpg-core/internal/domain/action"
	"github.com/KirkDiggler/arpg-core/internal/domain/class"
	"github.com/KirkDiggler/arpg-core/internal/resources"
)

func testClass() *class.ClassDef {
	return &class.ClassDef{
		ID:          "mage",
		MaxHealth:   100,
		MaxMana:     100,
		HealthRegen: 1,
		ManaRegen:   5,
	}
}

func TestModel_Tick_BaseRegen(t *testing.T) {
	model := resources.NewModel(testClass())

	// Drain below max so regen is observable
	require.True(t, model.TrySpend(action.Cost{Mana: 50, Health: 50}))

	// Base mana regen 5/s over 2 seconds of 100ms steps adds exactly 10
	for i := 0; i < 20; i++ {
		model.Tick(0.1, resources.TickModifiers{})
	}

	st := model.State()
	assert.InDelta(t, 60.0, st.Mana, 1e-9)
	assert.InDelta(t, 52.0, st.Health, 1e-9)
}

func TestModel_Tick_BuffModifiers(t *testing.T) {
	model := resources.NewModel(testClass())
	require.True(t, model.TrySpend(action.Cost{Mana: 50}))

	// 5 base + 5 buff = 10/s
	model.Tick(1.0, resources.TickModifiers{ManaRegen: 5})

	assert.InDelta(t, 60.0, model.State().Mana, 1e-9)
}

func TestModel_Tick_ChannelDrain(t *testing.T) {
	model := resources.NewModel(testClass())
	require.True(t, model.TrySpend(action.Cost{Mana: 50}))

	// Net mana = 5 base − 8 drain = −3/s
	model.SetChannelDrain(8)
	model.Tick(1.0, resources.TickModifiers{})
	assert.InDelta(t, 47.0, model.State().Mana, 1e-9)

	model.ClearChannelDrain()
	model.Tick(1.0, resources.TickModifiers{})
	assert.InDelta(t, 52.0, model.State().Mana, 1e-9)
}

func TestModel_Tick_DeltaClamp(t *testing.T) {
	model := resources.NewModel(testClass())
	require.True(t, model.TrySpend(action.Cost{Mana: 90}))

	// A dropped frame reporting 10s only integrates one second of regen
	model.Tick(10.0, resources.TickModifiers{})
	assert.InDelta(t, 15.0, model.State().Mana, 1e-9)

	// Negative deltas are ignored
	model.Tick(-1.0, resources.TickModifiers{})
	assert.InDelta(t, 15.0, model.State().Mana, 1e-9)
}

func TestModel_Tick_ClampsToMax(t *testing.T) {
	model := resources.NewModel(testClass())

	model.Tick(1.0, resources.TickModifiers{})

	st := model.State()
	assert.Equal(t, 100.0, st.Mana)
	assert.Equal(t, 100.0, st.Health)
}

func TestModel_Tick_MaxPoolBuffs(t *testing.T) {
	model := resources.NewModel(testClass())

	st := model.Tick(0, resources.TickModifiers{MaxHealth: 30})
	assert.Equal(t, 130.0, st.MaxHealth)
	// Current health does not jump, only the ceiling moves
	assert.Equal(t, 100.0, st.Health)

	// When the buff drops, the pool clamps back down on the next tick
	st = model.Tick(0, resources.TickModifiers{})
	assert.Equal(t, 100.0, st.MaxHealth)
	assert.Equal(t, 100.0, st.Health)
}

func TestModel_TrySpend(t *testing.T) {
	t.Run("success deducts both pools", func(t *testing.T) {
		model := resources.NewModel(testClass())
		assert.True(t, model.TrySpend(action.Cost{Mana: 20, Health: 15}))

		st := model.State()
		assert.Equal(t, 80.0, st.Mana)
		assert.Equal(t, 85.0, st.Health)
	})

	t.Run("insufficient mana mutates nothing", func(t *testing.T) {
		model := resources.NewModel(testClass())
		require.True(t, model.TrySpend(action.Cost{Mana: 85}))

		// 15 left, cost 20
		assert.False(t, model.TrySpend(action.Cost{Mana: 20}))
		assert.Equal(t, 15.0, model.State().Mana)
	})

	t.Run("insufficient health mutates nothing", func(t *testing.T) {
		model := resources.NewModel(testClass())
		assert.False(t, model.TrySpend(action.Cost{Mana: 10, Health: 150}))

		st := model.State()
		assert.Equal(t, 100.0, st.Mana)
		assert.Equal(t, 100.0, st.Health)
	})

	t.Run("spending to exactly zero succeeds", func(t *testing.T) {
		model := resources.NewModel(testClass())
		assert.True(t, model.TrySpend(action.Cost{Mana: 100}))
		assert.Equal(t, 0.0, model.State().Mana)
	})
}

func TestModel_ApplyGain(t *testing.T) {
	model := resources.NewModel(testClass())
	require.True(t, model.TrySpend(action.Cost{Mana: 50}))

	model.ApplyGain(30, resources.PoolMana)
	assert.Equal(t, 80.0, model.State().Mana)

	// Clamped to max
	model.ApplyGain(500, resources.PoolMana)
	assert.Equal(t, 100.0, model.State().Mana)

	// Non-positive amounts are ignored
	model.ApplyGain(-10, resources.PoolMana)
	assert.Equal(t, 100.0, model.State().Mana)
}

func TestModel_ApplyDamage(t *testing.T) {
	model := resources.NewModel(testClass())

	health := model.ApplyDamage(30)
	assert.Equal(t, 70.0, health)

	// Clamped at zero, never negative
	health = model.ApplyDamage(500)
	assert.Equal(t, 0.0, health)
}

func TestModel_Restore(t *testing.T) {
	model := resources.NewModel(testClass())

	model.Restore(resources.State{Health: 40, Mana: 250})

	st := model.State()
	assert.Equal(t, 40.0, st.Health)
	// Persisted values are clamped to the base maxima
	assert.Equal(t, 100.0, st.Mana)
}

// Package resources owns the health and mana pools and the spend gate.
package resources

import (
	"sync"

	"github.com/KirkDiggler/arpg-core/internal/domain/action"
	"github.com/KirkDiggler/arpg-core/internal/domain/class"
)

// maxTickDelta caps a single integration step. A dropped frame must not
// grant minutes of regen in one tick.
const maxTickDelta = 1.0

// Pool selects which resource pool an adjustment targets
type Pool string

const (
	PoolHealth Pool = "health"
	PoolMana   Pool = "mana"
)

// State is the serializable resource snapshot.
// MaxHealth/MaxMana are the effective maxima including buff contributions.
type State struct {
	Health    float64 `json:"health"`
	Mana      float64 `json:"mana"`
	MaxHealth float64 `json:"max_health"`
	MaxMana   float64 `json:"max_mana"`
}

// TickModifiers carries the per-tick buff contributions computed by the caller.
// Keeping the model free of buff bookkeeping makes Tick deterministic given
// (state, modifiers, delta).
type TickModifiers struct {
	HealthRegen float64
	ManaRegen   float64
	MaxHealth   float64
	MaxMana     float64
}

// Model mutates the pools. It is the only component that writes them.
type Model struct {
	mu sync.Mutex

	health float64
	mana   float64

	baseMaxHealth   float64
	baseMaxMana     float64
	baseHealthRegen float64
	baseManaRegen   float64

	// Buff contributions to the maxima from the most recent tick,
	// retained so State() reports effective maxima between ticks.
	bonusMaxHealth float64
	bonusMaxMana   float64

	channelDrain float64 // Mana per second while a channel action is active
}

// NewModel creates a model with full pools from class base stats
func NewModel(classDef *class.ClassDef) *Model {
	return &Model{
		health:          classDef.MaxHealth,
		mana:            classDef.MaxMana,
		baseMaxHealth:   classDef.MaxHealth,
		baseMaxMana:     classDef.MaxMana,
		baseHealthRegen: classDef.HealthRegen,
		baseManaRegen:   classDef.ManaRegen,
	}
}

// Tick integrates regen and channel drain over the elapsed interval.
// Net regen per pool = base + buff contribution − drain (mana only),
// applied as pool += net*delta, then clamped to [0, effective max].
func (m *Model) Tick(delta float64, mods TickModifiers) State {
	if delta < 0 {
		delta = 0
	}
	if delta > maxTickDelta {
		delta = maxTickDelta
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.bonusMaxHealth = mods.MaxHealth
	m.bonusMaxMana = mods.MaxMana

	healthNet := m.baseHealthRegen + mods.HealthRegen
	manaNet := m.baseManaRegen + mods.ManaRegen - m.channelDrain

	m.health = clamp(m.health+healthNet*delta, 0, m.effectiveMaxHealth())
	m.mana = clamp(m.mana+manaNet*delta, 0, m.effectiveMaxMana())

	return m.stateLocked()
}

// TrySpend atomically checks affordability and deducts the cost.
// Returns false and mutates nothing when either pool would go negative.
// This is the single gate every resource-consuming transition passes through.
func (m *Model) TrySpend(cost action.Cost) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mana-cost.Mana < 0 || m.health-cost.Health < 0 {
		return false
	}

	m.mana -= cost.Mana
	m.health -= cost.Health
	return true
}

// ApplyGain immediately adds a non-negative amount to a pool, clamped to max
func (m *Model) ApplyGain(amount float64, pool Pool) {
	if amount <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch pool {
	case PoolHealth:
		m.health = clamp(m.health+amount, 0, m.effectiveMaxHealth())
	case PoolMana:
		m.mana = clamp(m.mana+amount, 0, m.effectiveMaxMana())
	}
}

// ApplyDamage deducts health, clamped at zero. Returns the new health so the
// caller can detect death.
func (m *Model) ApplyDamage(amount float64) float64 {
	if amount <= 0 {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.health
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.health = clamp(m.health-amount, 0, m.effectiveMaxHealth())
	return m.health
}

// SetChannelDrain activates continuous mana drain for a channel action
func (m *Model) SetChannelDrain(perSecond float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channelDrain = perSecond
}

// ClearChannelDrain deactivates channel drain
func (m *Model) ClearChannelDrain() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channelDrain = 0
}

// ChannelDrain returns the currently active drain rate
func (m *Model) ChannelDrain() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channelDrain
}

// State returns the current snapshot with effective maxima
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Restore overwrites the pools from a persisted snapshot, clamped to the
// base maxima. Buff-derived max bonuses are not persisted.
func (m *Model) Restore(st State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bonusMaxHealth = 0
	m.bonusMaxMana = 0
	m.health = clamp(st.Health, 0, m.baseMaxHealth)
	m.mana = clamp(st.Mana, 0, m.baseMaxMana)
}

func (m *Model) stateLocked() State {
	return State{
		Health:    m.health,
		Mana:      m.mana,
		MaxHealth: m.effectiveMaxHealth(),
		MaxMana:   m.effectiveMaxMana(),
	}
}

func (m *Model) effectiveMaxHealth() float64 {
	max := m.baseMaxHealth + m.bonusMaxHealth
	if max < 0 {
		return 0
	}
	return max
}

func (m *Model) effectiveMaxMana() float64 {
	max := m.baseMaxMana + m.bonusMaxMana
	if max < 0 {
		return 0
	}
	return max
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

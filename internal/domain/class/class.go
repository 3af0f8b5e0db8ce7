package class

import (
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
)

// Baseline stats used when a class definition leaves a field at zero.
// Defaulting happens exactly once, at load time.
const (
	defaultMaxHealth   = 100.0
	defaultMaxMana     = 100.0
	defaultHealthRegen = 1.0
	defaultManaRegen   = 5.0
)

// ClassDef is the immutable definition of a playable class
type ClassDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	MaxHealth   float64 `json:"max_health"`
	MaxMana     float64 `json:"max_mana"`
	HealthRegen float64 `json:"health_regen"` // Per second
	ManaRegen   float64 `json:"mana_regen"`   // Per second

	// DefaultLoadout is the slot assignment restored by "reset to defaults"
	DefaultLoadout map[shared.SlotID]string `json:"default_loadout"`
}

// ApplyDefaults fills zero-valued stats with the baseline.
// The content format uses omitted fields for "use the default".
func (c *ClassDef) ApplyDefaults() {
	if c.MaxHealth == 0 {
		c.MaxHealth = defaultMaxHealth
	}
	if c.MaxMana == 0 {
		c.MaxMana = defaultMaxMana
	}
	if c.HealthRegen == 0 {
		c.HealthRegen = defaultHealthRegen
	}
	if c.ManaRegen == 0 {
		c.ManaRegen = defaultManaRegen
	}
	if c.DefaultLoadout == nil {
		c.DefaultLoadout = make(map[shared.SlotID]string)
	}
}

// Validate checks the definition invariants. Call after ApplyDefaults.
func (c *ClassDef) Validate() error {
	if c.ID == "" {
		return coreerr.InvalidArgument("class id is required")
	}
	if c.MaxHealth <= 0 || c.MaxMana <= 0 {
		return coreerr.InvalidArgumentf("class %q must have positive pools", c.ID)
	}
	if c.HealthRegen < 0 || c.ManaRegen < 0 {
		return coreerr.InvalidArgumentf("class %q has negative regen", c.ID)
	}
	for slotID := range c.DefaultLoadout {
		if !shared.IsValidSlot(slotID) {
			return coreerr.InvalidArgumentf("class %q default loadout references unknown slot %q", c.ID, slotID)
		}
	}
	return nil
}

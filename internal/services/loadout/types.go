package loadout

import (
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	"github.com/KirkDiggler/arpg-core/internal/events"
	"github.com/KirkDiggler/arpg-core/internal/registry"
)

// Service owns the slot-to-action bindings. A slot only ever holds an action
// whose drag type matches the slot's declared type, and an action occupies at
// most one slot at a time.
type Service interface {
	// GetActionForSlot returns the bound action id, empty when unbound
	// or the slot is unknown.
	GetActionForSlot(slotID shared.SlotID) string

	// AssignedSlot returns the slot currently holding the action, if any
	AssignedSlot(actionID string) (shared.SlotID, bool)

	// Assign binds an action to a slot. Move semantics: any slot
	// previously holding the action is cleared first. Type mismatches
	// are rejected as a no-op error.
	Assign(slotID shared.SlotID, actionID string) error

	// Clear unbinds a slot
	Clear(slotID shared.SlotID) error

	// ResetToDefaults restores the class's default loadout
	ResetToDefaults(classID string) error

	// SlotMap returns a copy of the full mapping; unbound slots map to ""
	SlotMap() map[shared.SlotID]string

	// Restore replaces the mapping from a persisted snapshot, dropping
	// entries that no longer validate.
	Restore(slotMap map[shared.SlotID]string)
}

// ServiceConfig holds the loadout service collaborators
type ServiceConfig struct {
	Registry *registry.Registry
	EventBus *events.Bus
}

package loadout

import (
	"github.com/KirkDiggler/arpg-core/internal/registry"
)

// RegistryLookup adapts the action registry to the drag controller's
// presentation-field lookup.
type RegistryLookup struct {
	Registry *registry.Registry
}

// LookupDragInfo resolves the payload fields a drag ghost renders
func (l *RegistryLookup) LookupDragInfo(actionID string) (DragPayload, bool) {
	def := l.Registry.GetActionByID(actionID)
	if def == nil {
		return DragPayload{}, false
	}
	return DragPayload{
		ID:       def.ID,
		Icon:     def.Icon,
		Label:    def.Name,
		DragType: def.DragType,
	}, true
}

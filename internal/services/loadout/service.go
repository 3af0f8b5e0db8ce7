// Package loadout binds UI slots to action ids and validates drag/drop
// reassignment against slot compatibility types.
package loadout

import (
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
	"github.com/KirkDiggler/arpg-core/internal/events"
	"github.com/KirkDiggler/arpg-core/internal/registry"
)

type service struct {
	mu sync.RWMutex

	registry *registry.Registry
	bus      *events.Bus

	slots map[shared.SlotID]string
}

// NewService creates a loadout service with every slot unbound
func NewService(cfg *ServiceConfig) Service {
	if cfg.Registry == nil {
		panic("registry is required")
	}

	svc := &service{
		registry: cfg.Registry,
		bus:      cfg.EventBus,
		slots:    make(map[shared.SlotID]string),
	}
	if svc.bus == nil {
		svc.bus = events.NewBus()
	}

	for _, slotID := range shared.AllSlots() {
		svc.slots[slotID] = ""
	}

	return svc
}

func (s *service) GetActionForSlot(slotID shared.SlotID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[slotID]
}

func (s *service) AssignedSlot(actionID string) (shared.SlotID, bool) {
	if actionID == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignedSlotLocked(actionID)
}

func (s *service) assignedSlotLocked(actionID string) (shared.SlotID, bool) {
	for _, slotID := range shared.AllSlots() {
		if s.slots[slotID] == actionID {
			return slotID, true
		}
	}
	return "", false
}

func (s *service) Assign(slotID shared.SlotID, actionID string) error {
	slotType, ok := shared.SlotTypeOf(slotID)
	if !ok {
		return coreerr.NotFoundf("unknown slot %q", slotID)
	}

	def := s.registry.GetActionByID(actionID)
	if def == nil {
		return coreerr.NotFoundf("unknown action %q", actionID)
	}

	if def.DragType != slotType {
		return coreerr.Incompatiblef("cannot drop %s action %q into %s slot %s",
			def.DragType, actionID, slotType, slotID)
	}

	s.mu.Lock()
	// Move, not duplicate: the previous slot holding this action is cleared.
	if prev, held := s.assignedSlotLocked(actionID); held && prev != slotID {
		s.slots[prev] = ""
	}
	s.slots[slotID] = actionID
	s.mu.Unlock()

	s.emit(events.NewEvent(events.EventSlotAssigned, time.Now()).
		WithData("slot_id", string(slotID)).
		WithData("action_id", actionID))
	return nil
}

func (s *service) Clear(slotID shared.SlotID) error {
	if !shared.IsValidSlot(slotID) {
		return coreerr.NotFoundf("unknown slot %q", slotID)
	}

	s.mu.Lock()
	s.slots[slotID] = ""
	s.mu.Unlock()

	s.emit(events.NewEvent(events.EventSlotCleared, time.Now()).
		WithData("slot_id", string(slotID)))
	return nil
}

func (s *service) ResetToDefaults(classID string) error {
	classDef := s.registry.GetClassByID(classID)
	if classDef == nil {
		return coreerr.NotFoundf("unknown class %q", classID)
	}

	s.mu.Lock()
	for _, slotID := range shared.AllSlots() {
		s.slots[slotID] = ""
	}
	for slotID, actionID := range classDef.DefaultLoadout {
		s.slots[slotID] = actionID
	}
	s.mu.Unlock()

	s.emit(events.NewEvent(events.EventLoadoutReset, time.Now()).
		WithData("class_id", classID))
	return nil
}

func (s *service) SlotMap() map[shared.SlotID]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[shared.SlotID]string, len(s.slots))
	for slotID, actionID := range s.slots {
		out[slotID] = actionID
	}
	return out
}

func (s *service) Restore(slotMap map[shared.SlotID]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slotID := range shared.AllSlots() {
		s.slots[slotID] = ""
	}

	for slotID := range slotMap {
		if !shared.IsValidSlot(slotID) {
			log.Printf("restore: dropping unknown slot %q", slotID)
		}
	}

	// Walk slots in display order so duplicate bindings resolve the same way
	// every restore.
	for _, slotID := range shared.AllSlots() {
		actionID := slotMap[slotID]
		if actionID == "" {
			continue
		}
		slotType, _ := shared.SlotTypeOf(slotID)
		def := s.registry.GetActionByID(actionID)
		if def == nil || def.DragType != slotType {
			log.Printf("restore: dropping invalid binding %s -> %q", slotID, actionID)
			continue
		}
		// First slot wins if a stale snapshot duplicated an action.
		if _, held := s.assignedSlotLocked(actionID); held {
			continue
		}
		s.slots[slotID] = actionID
	}
}

func (s *service) emit(event *events.Event) {
	if err := s.bus.Emit(event); err != nil {
		log.Printf("event emission failed: %v", err)
	}
}

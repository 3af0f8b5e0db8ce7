package shared

// SlotID names one of the fixed UI containers an action can be bound to
type SlotID string

const (
	SlotSkill1 SlotID = "slot_skill_1"
	SlotSkill2 SlotID = "slot_skill_2"
	SlotSkill3 SlotID = "slot_skill_3"
	SlotSkill4 SlotID = "slot_skill_4"

	SlotMouse1 SlotID = "slot_mouse_1"
	SlotMouse2 SlotID = "slot_mouse_2"

	SlotConsumable1 SlotID = "slot_consumable_1"
	SlotConsumable2 SlotID = "slot_consumable_2"

	SlotPixie1 SlotID = "slot_pixie_1"
	SlotPixie2 SlotID = "slot_pixie_2"
	SlotPixie3 SlotID = "slot_pixie_3"
)

// slotTypes declares the compatibility type of every slot.
// Mouse slots hold skills, same as the skill bar.
var slotTypes = map[SlotID]DragType{
	SlotSkill1:      DragTypeSkill,
	SlotSkill2:      DragTypeSkill,
	SlotSkill3:      DragTypeSkill,
	SlotSkill4:      DragTypeSkill,
	SlotMouse1:      DragTypeSkill,
	SlotMouse2:      DragTypeSkill,
	SlotConsumable1: DragTypeConsumable,
	SlotConsumable2: DragTypeConsumable,
	SlotPixie1:      DragTypePixie,
	SlotPixie2:      DragTypePixie,
	SlotPixie3:      DragTypePixie,
}

// slotOrder keeps listings deterministic for UI and persistence
var slotOrder = []SlotID{
	SlotSkill1, SlotSkill2, SlotSkill3, SlotSkill4,
	SlotMouse1, SlotMouse2,
	SlotConsumable1, SlotConsumable2,
	SlotPixie1, SlotPixie2, SlotPixie3,
}

// AllSlots returns every slot id in display order
func AllSlots() []SlotID {
	out := make([]SlotID, len(slotOrder))
	copy(out, slotOrder)
	return out
}

// SlotTypeOf returns the compatibility type of a slot, false for unknown slots
func SlotTypeOf(id SlotID) (DragType, bool) {
	t, ok := slotTypes[id]
	return t, ok
}

// IsValidSlot reports whether the slot id is part of the fixed set
func IsValidSlot(id SlotID) bool {
	_, ok := slotTypes[id]
	return ok
}

package shared

// ActionKind categorizes what an action does when executed
type ActionKind string

const (
	KindAttack     ActionKind = "attack"
	KindCast       ActionKind = "cast"
	KindMove       ActionKind = "move"
	KindChannel    ActionKind = "channel"
	KindConsumable ActionKind = "consumable"
	KindPassive    ActionKind = "passive"
)

// IsValid reports whether the kind is one of the known kinds
func (k ActionKind) IsValid() bool {
	switch k {
	case KindAttack, KindCast, KindMove, KindChannel, KindConsumable, KindPassive:
		return true
	}
	return false
}

// Executable reports whether the kind can be dispatched by input.
// Passive actions only exist to be slotted, never triggered.
func (k ActionKind) Executable() bool {
	return k.IsValid() && k != KindPassive
}

// DragType constrains which slots an action may be dropped into
type DragType string

const (
	DragTypeSkill      DragType = "skill"
	DragTypeConsumable DragType = "consumable"
	DragTypePixie      DragType = "pixie"
)

// IsValid reports whether the drag type is known
func (d DragType) IsValid() bool {
	switch d {
	case DragTypeSkill, DragTypeConsumable, DragTypePixie:
		return true
	}
	return false
}

// Element is an optional elemental tag used by the presentation layer
type Element string

const (
	ElementFire      Element = "fire"
	ElementIce       Element = "ice"
	ElementLightning Element = "lightning"
	ElementArcane    Element = "arcane"
	ElementNature    Element = "nature"
	ElementNone      Element = ""
)

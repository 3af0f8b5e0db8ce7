package shared

// BuffType represents what a timed buff modifies
type BuffType string

const (
	BuffHealthRegen       BuffType = "healthRegen"
	BuffManaRegen         BuffType = "manaRegen"
	BuffMaxHealth         BuffType = "maxHealth"
	BuffMaxMana           BuffType = "maxMana"
	BuffCastSpeed         BuffType = "castSpeed"
	BuffCooldownReduction BuffType = "cooldownReduction"
)

// IsValid reports whether the buff type is known
func (b BuffType) IsValid() bool {
	switch b {
	case BuffHealthRegen, BuffManaRegen, BuffMaxHealth, BuffMaxMana, BuffCastSpeed, BuffCooldownReduction:
		return true
	}
	return false
}

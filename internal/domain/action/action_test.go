package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/arpg-core/internal/domain/action"
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
)

func validDef() *action.ActionDef {
	return &action.ActionDef{
		ID:           "ice_shard",
		Name:         "Ice Shard",
		Kind:         shared.KindCast,
		DragType:     shared.DragTypeSkill,
		ManaCost:     12,
		CastDuration: 1.2,
	}
}

func TestActionDef_Validate(t *testing.T) {
	t.Run("valid definition passes", func(t *testing.T) {
		assert.NoError(t, validDef().Validate())
	})

	t.Run("missing id fails", func(t *testing.T) {
		def := validDef()
		def.ID = ""
		assert.Error(t, def.Validate())
	})

	t.Run("unknown kind fails", func(t *testing.T) {
		def := validDef()
		def.Kind = "summon"
		assert.Error(t, def.Validate())
	})

	t.Run("negative cost fails", func(t *testing.T) {
		def := validDef()
		def.ManaCost = -1
		assert.Error(t, def.Validate())
	})

	t.Run("negative cast duration fails", func(t *testing.T) {
		def := validDef()
		def.CastDuration = -0.5
		assert.Error(t, def.Validate())
	})

	t.Run("channel drain on non-channel fails", func(t *testing.T) {
		def := validDef()
		def.ManaPerSecond = 4
		err := def.Validate()
		assert.Error(t, err)
		assert.Equal(t, coreerr.CodeInvalidArgument, coreerr.GetCode(err))
	})

	t.Run("buff without positive duration fails", func(t *testing.T) {
		def := validDef()
		def.Buff = &action.BuffPayload{Type: shared.BuffManaRegen, Value: 5}
		assert.Error(t, def.Validate())
	})

	t.Run("buff with unknown type fails", func(t *testing.T) {
		def := validDef()
		def.Buff = &action.BuffPayload{Type: "luck", Value: 5, Duration: 10}
		assert.Error(t, def.Validate())
	})
}

func TestActionDef_Cost(t *testing.T) {
	def := validDef()
	def.HealthCost = 3

	cost := def.Cost()
	assert.Equal(t, 12.0, cost.Mana)
	assert.Equal(t, 3.0, cost.Health)
	assert.False(t, cost.IsZero())
	assert.True(t, action.Cost{}.IsZero())
}

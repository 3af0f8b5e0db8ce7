package loadout_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/arpg-core/internal/content"
	"github.com/KirkDiggler/arpg-core/internal/domain/action"
	"github.com/KirkDiggler/arpg-core/internal/domain/class"
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
	"github.com/KirkDiggler/arpg-core/internal/registry"
	"github.com/KirkDiggler/arpg-core/internal/services/loadout"
)

func testRegistry() *registry.Registry {
	return registry.New(&content.Catalog{
		Actions: []*action.ActionDef{
			{ID: "bolt", Name: "Bolt", Icon: "icons/bolt.png", Kind: shared.KindCast, DragType: shared.DragTypeSkill, ManaCost: 10, CastDuration: 1},
			{ID: "strike", Name: "Strike", Kind: shared.KindAttack, DragType: shared.DragTypeSkill, CastDuration: 0.6},
			{ID: "potion", Name: "Potion", Kind: shared.KindConsumable, DragType: shared.DragTypeConsumable, ManaGain: 40},
			{ID: "pixie_ember", Name: "Ember", Kind: shared.KindPassive, DragType: shared.DragTypePixie},
		},
		Classes: []*class.ClassDef{
			{
				ID: "mage", MaxHealth: 100, MaxMana: 100,
				DefaultLoadout: map[shared.SlotID]string{
					shared.SlotSkill1:      "bolt",
					shared.SlotMouse1:      "strike",
					shared.SlotConsumable1: "potion",
				},
			},
		},
	})
}

type LoadoutServiceTestSuite struct {
	suite.Suite
	svc loadout.Service
}

func (s *LoadoutServiceTestSuite) SetupTest() {
	s.svc = loadout.NewService(&loadout.ServiceConfig{Registry: testRegistry()})
}

func TestLoadoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoadoutServiceTestSuite))
}

func (s *LoadoutServiceTestSuite) TestSlotsStartUnbound() {
	for _, slotID := range shared.AllSlots() {
		s.Empty(s.svc.GetActionForSlot(slotID))
	}
}

func (s *LoadoutServiceTestSuite) TestAssign() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill1, "bolt"))
	s.Equal("bolt", s.svc.GetActionForSlot(shared.SlotSkill1))

	slotID, ok := s.svc.AssignedSlot("bolt")
	s.True(ok)
	s.Equal(shared.SlotSkill1, slotID)
}

func (s *LoadoutServiceTestSuite) TestAssignMovesBetweenSlots() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill1, "bolt"))
	s.Require().NoError(s.svc.Assign(shared.SlotSkill3, "bolt"))

	// The action occupies exactly one slot after the move
	s.Empty(s.svc.GetActionForSlot(shared.SlotSkill1))
	s.Equal("bolt", s.svc.GetActionForSlot(shared.SlotSkill3))
}

func (s *LoadoutServiceTestSuite) TestAssignSameSlotIsStable() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill2, "bolt"))
	s.Require().NoError(s.svc.Assign(shared.SlotSkill2, "bolt"))
	s.Equal("bolt", s.svc.GetActionForSlot(shared.SlotSkill2))
}

func (s *LoadoutServiceTestSuite) TestAssignReplacesOccupant() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill1, "bolt"))
	s.Require().NoError(s.svc.Assign(shared.SlotSkill1, "strike"))

	s.Equal("strike", s.svc.GetActionForSlot(shared.SlotSkill1))
	_, ok := s.svc.AssignedSlot("bolt")
	s.False(ok)
}

func (s *LoadoutServiceTestSuite) TestAssignRejectsTypeMismatch() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill1, "bolt"))

	// A consumable cannot land in a skill slot; the binding is untouched
	err := s.svc.Assign(shared.SlotSkill1, "potion")
	s.Require().Error(err)
	s.True(coreerr.IsIncompatible(err))
	s.Equal("bolt", s.svc.GetActionForSlot(shared.SlotSkill1))

	// And a skill cannot land in a pixie slot
	err = s.svc.Assign(shared.SlotPixie1, "strike")
	s.True(coreerr.IsIncompatible(err))
	s.Empty(s.svc.GetActionForSlot(shared.SlotPixie1))
}

func (s *LoadoutServiceTestSuite) TestAssignUnknownInputs() {
	s.True(coreerr.IsNotFound(s.svc.Assign("slot_bogus", "bolt")))
	s.True(coreerr.IsNotFound(s.svc.Assign(shared.SlotSkill1, "no_such_action")))
}

func (s *LoadoutServiceTestSuite) TestClear() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill1, "bolt"))
	s.Require().NoError(s.svc.Clear(shared.SlotSkill1))
	s.Empty(s.svc.GetActionForSlot(shared.SlotSkill1))

	s.True(coreerr.IsNotFound(s.svc.Clear("slot_bogus")))
}

func (s *LoadoutServiceTestSuite) TestResetToDefaults() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill4, "bolt"))

	s.Require().NoError(s.svc.ResetToDefaults("mage"))

	s.Equal("bolt", s.svc.GetActionForSlot(shared.SlotSkill1))
	s.Equal("strike", s.svc.GetActionForSlot(shared.SlotMouse1))
	s.Equal("potion", s.svc.GetActionForSlot(shared.SlotConsumable1))
	// Slots outside the default loadout are wiped
	s.Empty(s.svc.GetActionForSlot(shared.SlotSkill4))

	s.True(coreerr.IsNotFound(s.svc.ResetToDefaults("bard")))
}

func (s *LoadoutServiceTestSuite) TestSlotMapIsACopy() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill1, "bolt"))

	m := s.svc.SlotMap()
	s.Len(m, len(shared.AllSlots()))
	s.Equal("bolt", m[shared.SlotSkill1])

	m[shared.SlotSkill1] = "strike"
	s.Equal("bolt", s.svc.GetActionForSlot(shared.SlotSkill1))
}

func (s *LoadoutServiceTestSuite) TestRestoreDropsInvalidBindings() {
	s.svc.Restore(map[shared.SlotID]string{
		shared.SlotSkill1:      "bolt",
		shared.SlotSkill2:      "bolt", // Duplicate of slot 1
		shared.SlotSkill3:      "potion",
		shared.SlotConsumable1: "potion",
		shared.SlotPixie1:      "pixie_ember",
		"slot_bogus":           "strike",
		shared.SlotMouse1:      "no_such_action",
	})

	s.Equal("bolt", s.svc.GetActionForSlot(shared.SlotSkill1))
	// Duplicates resolve to a single slot
	s.Empty(s.svc.GetActionForSlot(shared.SlotSkill2))
	// potion's drag type does not match a skill slot
	s.Empty(s.svc.GetActionForSlot(shared.SlotSkill3))
	s.Equal("potion", s.svc.GetActionForSlot(shared.SlotConsumable1))
	s.Equal("pixie_ember", s.svc.GetActionForSlot(shared.SlotPixie1))
	s.Empty(s.svc.GetActionForSlot(shared.SlotMouse1))
}

func (s *LoadoutServiceTestSuite) TestRestoreWipesPreviousBindings() {
	s.Require().NoError(s.svc.Assign(shared.SlotSkill4, "strike"))

	s.svc.Restore(map[shared.SlotID]string{shared.SlotSkill1: "bolt"})

	s.Empty(s.svc.GetActionForSlot(shared.SlotSkill4))
	s.Equal("bolt", s.svc.GetActionForSlot(shared.SlotSkill1))
}

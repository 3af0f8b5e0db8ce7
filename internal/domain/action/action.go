package action

import (
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
)

// Cost is the one-time resource price of executing an action
type Cost struct {
	Mana   float64 `json:"mana"`
	Health float64 `json:"health"`
}

// IsZero reports whether the cost is free
func (c Cost) IsZero() bool {
	return c.Mana == 0 && c.Health == 0
}

// BuffPayload describes the timed modifier an action grants when it resolves
type BuffPayload struct {
	Type     shared.BuffType `json:"type"`
	Value    float64         `json:"value"`
	Duration float64         `json:"duration"` // seconds
}

// ActionDef is the immutable definition of a player-performable action.
// Loaded once from the content catalog; never mutated afterward.
type ActionDef struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Icon     string            `json:"icon"`
	Kind     shared.ActionKind `json:"kind"`
	DragType shared.DragType   `json:"drag_type"`
	Element  shared.Element    `json:"element,omitempty"`

	ManaCost      float64 `json:"mana_cost"`
	HealthCost    float64 `json:"health_cost"`
	ManaPerSecond float64 `json:"mana_per_second"` // Channel drain while active
	ManaGain      float64 `json:"mana_gain"`       // Granted at resolve, e.g. on attacks
	CastDuration  float64 `json:"cast_duration"`   // Seconds; 0 means instant

	Buff       *BuffPayload `json:"buff,omitempty"`
	Recastable bool         `json:"recastable"`
}

// Cost returns the one-time spend required to start this action
func (a *ActionDef) Cost() Cost {
	return Cost{Mana: a.ManaCost, Health: a.HealthCost}
}

// IsChannel reports whether the action drains mana continuously while active
func (a *ActionDef) IsChannel() bool {
	return a.Kind == shared.KindChannel
}

// Validate checks the definition invariants from the content schema
func (a *ActionDef) Validate() error {
	if a.ID == "" {
		return coreerr.InvalidArgument("action id is required")
	}
	if !a.Kind.IsValid() {
		return coreerr.InvalidArgumentf("action %q has unknown kind %q", a.ID, a.Kind)
	}
	if !a.DragType.IsValid() {
		return coreerr.InvalidArgumentf("action %q has unknown drag type %q", a.ID, a.DragType)
	}
	if a.ManaCost < 0 || a.HealthCost < 0 {
		return coreerr.InvalidArgumentf("action %q has negative cost", a.ID)
	}
	if a.ManaPerSecond < 0 {
		return coreerr.InvalidArgumentf("action %q has negative channel drain", a.ID)
	}
	if a.ManaGain < 0 {
		return coreerr.InvalidArgumentf("action %q has negative mana gain", a.ID)
	}
	if a.CastDuration < 0 {
		return coreerr.InvalidArgumentf("action %q has negative cast duration", a.ID)
	}
	if a.ManaPerSecond > 0 && a.Kind != shared.KindChannel {
		return coreerr.InvalidArgumentf("action %q declares channel drain but kind is %q", a.ID, a.Kind)
	}
	if a.Buff != nil {
		if !a.Buff.Type.IsValid() {
			return coreerr.InvalidArgumentf("action %q buff has unknown type %q", a.ID, a.Buff.Type)
		}
		if a.Buff.Duration <= 0 {
			return coreerr.InvalidArgumentf("action %q buff duration must be positive", a.ID)
		}
	}
	return nil
}

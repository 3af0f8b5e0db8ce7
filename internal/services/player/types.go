package player

import (
	"time"

	"github.com/KirkDiggler/arpg-core/internal/buffs"
	"github.com/KirkDiggler/arpg-core/internal/events"
	"github.com/KirkDiggler/arpg-core/internal/registry"
	"github.com/KirkDiggler/arpg-core/internal/resources"
)

// State is the player's coarse activity state
type State string

const (
	StateIdle      State = "IDLE"
	StateMoving    State = "MOVING"
	StateCasting   State = "CASTING"
	StateAttacking State = "ATTACKING"
	StateDead      State = "DEAD"
)

// Busy reports whether the state has an action in flight
func (s State) Busy() bool {
	return s == StateCasting || s == StateAttacking
}

// finishThreshold is the normalized animation progress at which an action
// resolves. Animation drivers rarely report exactly 1.0 on the final frame.
const finishThreshold = 0.99

// TimeProvider abstracts the wall clock for deterministic tests
type TimeProvider interface {
	Now() time.Time
}

// Service coordinates player actions: legality, affordability, cast progress,
// interruption and recast. All methods are synchronous and non-blocking;
// failures never escape as panics, the worst outcome is "did not execute".
type Service interface {
	// Dispatch requests execution of an action resolved from input.
	// pressed reflects the trigger's current held state; click marks a
	// discrete click, which always completes exactly once (no recast).
	Dispatch(input *DispatchInput) *DispatchResult

	// Tick advances cast progress and resource regen for one frame.
	// animationProgress is the presenting animation's normalized time.
	Tick(input *TickInput)

	// Interrupt forcibly terminates the in-flight action, if any.
	// This is the only path that changes the interrupted* fields.
	Interrupt()

	// TakeDamage applies damage, interrupting any in-flight action and
	// signaling death when health reaches zero.
	TakeDamage(amount float64)

	// SetMovementHeld records the movement trigger state. Movement is
	// independent of skill triggers; it takes effect immediately from
	// IDLE/MOVING and on completion while an action is in flight.
	SetMovementHeld(held bool)

	// Snapshot returns the read-only state consumers subscribe to
	Snapshot() *Snapshot
}

// DispatchInput identifies the requested action and its trigger semantics
type DispatchInput struct {
	ActionID string
	Pressed  bool
	Click    bool
}

// DispatchResult reports whether the action started and, if not, why.
// Reasons are informational; callers may ignore them.
type DispatchResult struct {
	Executed bool
	Reason   string
}

// TickInput carries per-frame timing
type TickInput struct {
	Delta             float64 // Seconds since the previous tick
	AnimationProgress float64 // [0,1] for the active cast/attack animation
}

// Snapshot is the read-only reactive state exposed to consumers.
// InterruptCounter is monotonic; consumers diff it with strictly-greater
// comparison to show the interrupted visual exactly once.
type Snapshot struct {
	State               State
	ActiveAction        string
	CastProgress        float64
	InterruptCounter    uint64
	InterruptedAction   string
	InterruptedProgress float64

	Health    float64
	Mana      float64
	MaxHealth float64
	MaxMana   float64

	Buffs []buffs.Buff

	MovementHeld bool
}

// ServiceConfig holds the collaborators the service coordinates
type ServiceConfig struct {
	Registry     *registry.Registry
	Resources    *resources.Model
	Buffs        *buffs.Tracker
	EventBus     *events.Bus
	TimeProvider TimeProvider
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

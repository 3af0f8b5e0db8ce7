package loadout

import (
	"math"
	"sync"
	"time"

	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
	"github.com/KirkDiggler/arpg-core/internal/uuid"
)

const (
	// DragThresholdPx is how far a pointer must travel before a press
	// becomes a drag rather than a click.
	DragThresholdPx = 5.0

	// LongPressDuration promotes a touch press to a drag. Touch has no
	// hover, so the move threshold alone cannot disambiguate scrolling.
	LongPressDuration = 300 * time.Millisecond
)

// DragPhase is the gesture lifecycle
type DragPhase string

const (
	PhaseIdle     DragPhase = "idle"
	PhasePending  DragPhase = "pending" // Pressed, threshold not yet crossed
	PhaseDragging DragPhase = "dragging"
)

// DragPayload is what a drag carries to its drop target
type DragPayload struct {
	ID       string
	Icon     string
	Label    string
	DragType shared.DragType

	// SourceSlot is set when dragging out of a slot rather than a
	// catalog card; a successful drop clears it.
	SourceSlot shared.SlotID
}

// DragSnapshot is the controller's read-only state for rendering the ghost
type DragSnapshot struct {
	SessionID string
	Phase     DragPhase
	Payload   DragPayload
	X         float64
	Y         float64
}

// DropResult reports how a press ended
type DropResult struct {
	// Committed is true when an assignment was performed
	Committed bool

	// Click is true when the press never became a drag; callers treat
	// it as a select/activate gesture instead.
	Click bool

	Slot     shared.SlotID
	ActionID string
}

// PressInput starts a gesture. Exactly one of SlotID or ActionID is set:
// SlotID for pressing a filled slot, ActionID for pressing a catalog card.
type PressInput struct {
	X     float64
	Y     float64
	Touch bool

	SlotID   shared.SlotID
	ActionID string
}

// DragController tracks one pointer gesture at a time. All state is local
// UI-thread bookkeeping; the only cross-component effect is the final
// Assign call on drop.
type DragController struct {
	mu sync.Mutex

	svc    Service
	lookup ActionLookup
	clock  TimeProvider
	ids    uuid.Generator

	phase     DragPhase
	sessionID string
	payload   DragPayload
	startX    float64
	startY    float64
	curX      float64
	curY      float64
	touch     bool
	pressedAt time.Time
}

// TimeProvider abstracts the wall clock for long-press timing
type TimeProvider interface {
	Now() time.Time
}

// DragControllerConfig wires the controller's collaborators
type DragControllerConfig struct {
	Service      Service
	Registry     ActionLookup
	TimeProvider TimeProvider
	UUIDs        uuid.Generator
}

// ActionLookup resolves the presentation fields a drag payload carries
type ActionLookup interface {
	LookupDragInfo(actionID string) (DragPayload, bool)
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewDragController creates an idle controller
func NewDragController(cfg *DragControllerConfig) *DragController {
	if cfg.Service == nil {
		panic("loadout service is required")
	}
	if cfg.Registry == nil {
		panic("action lookup is required")
	}

	c := &DragController{
		svc:    cfg.Service,
		lookup: cfg.Registry,
		clock:  cfg.TimeProvider,
		ids:    cfg.UUIDs,
		phase:  PhaseIdle,
	}
	if c.clock == nil {
		c.clock = realClock{}
	}
	if c.ids == nil {
		c.ids = uuid.NewGoogleUUIDGenerator()
	}
	return c
}

// Press begins a gesture on a filled slot or a catalog card.
// Pressing an empty slot or an unknown action is a no-op error.
func (c *DragController) Press(input *PressInput) error {
	if input == nil {
		return coreerr.InvalidArgument("press input cannot be nil")
	}

	actionID := input.ActionID
	sourceSlot := shared.SlotID("")
	if input.SlotID != "" {
		actionID = c.svc.GetActionForSlot(input.SlotID)
		if actionID == "" {
			return coreerr.NotFoundf("slot %q is empty", input.SlotID)
		}
		sourceSlot = input.SlotID
	}

	payload, ok := c.lookup.LookupDragInfo(actionID)
	if !ok {
		return coreerr.NotFoundf("unknown action %q", actionID)
	}
	payload.SourceSlot = sourceSlot

	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = PhasePending
	c.sessionID = c.ids.New()
	c.payload = payload
	c.startX, c.startY = input.X, input.Y
	c.curX, c.curY = input.X, input.Y
	c.touch = input.Touch
	c.pressedAt = c.clock.Now()
	return nil
}

// Move updates the pointer position and may promote the press to a drag
func (c *DragController) Move(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseIdle {
		return
	}

	c.curX, c.curY = x, y

	if c.phase == PhasePending {
		c.maybeStartDragLocked()
	}
}

// Update re-evaluates the long-press timer; the UI loop calls it each frame
// so a motionless touch still promotes to a drag.
func (c *DragController) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhasePending {
		c.maybeStartDragLocked()
	}
}

func (c *DragController) maybeStartDragLocked() {
	if c.touch {
		if c.clock.Now().Sub(c.pressedAt) >= LongPressDuration {
			c.phase = PhaseDragging
		}
		return
	}

	dx := c.curX - c.startX
	dy := c.curY - c.startY
	if math.Hypot(dx, dy) >= DragThresholdPx {
		c.phase = PhaseDragging
	}
}

// Release ends the gesture. A drop over a valid target commits the
// assignment; anywhere else cancels. A press that never became a drag is
// reported as a click.
func (c *DragController) Release(target shared.SlotID) (*DropResult, error) {
	c.mu.Lock()

	phase := c.phase
	payload := c.payload
	c.resetLocked()
	c.mu.Unlock()

	switch phase {
	case PhaseIdle:
		return &DropResult{}, nil
	case PhasePending:
		return &DropResult{Click: true, ActionID: payload.ID, Slot: payload.SourceSlot}, nil
	}

	if target == "" {
		// Released outside any drop target: cancel, bindings untouched.
		return &DropResult{ActionID: payload.ID}, nil
	}

	if err := c.svc.Assign(target, payload.ID); err != nil {
		// Type mismatch or unknown target: visually rejected, no-op.
		return &DropResult{ActionID: payload.ID}, err
	}

	return &DropResult{
		Committed: true,
		Slot:      target,
		ActionID:  payload.ID,
	}, nil
}

// Cancel aborts the gesture without a drop
func (c *DragController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Snapshot returns the current gesture state for rendering
func (c *DragController) Snapshot() DragSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return DragSnapshot{
		SessionID: c.sessionID,
		Phase:     c.phase,
		Payload:   c.payload,
		X:         c.curX,
		Y:         c.curY,
	}
}

func (c *DragController) resetLocked() {
	c.phase = PhaseIdle
	c.sessionID = ""
	c.payload = DragPayload{}
	c.touch = false
}

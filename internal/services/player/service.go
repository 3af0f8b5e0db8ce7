package player

import (
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/arpg-core/internal/buffs"
	"github.com/KirkDiggler/arpg-core/internal/domain/action"
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	"github.com/KirkDiggler/arpg-core/internal/events"
	"github.com/KirkDiggler/arpg-core/internal/registry"
	"github.com/KirkDiggler/arpg-core/internal/resources"
)

type service struct {
	mu sync.Mutex

	registry *registry.Registry
	res      *resources.Model
	buffs    *buffs.Tracker
	bus      *events.Bus
	clock    TimeProvider

	state        State
	active       *action.ActionDef
	castProgress float64
	finished     bool // FINISH already raised for the current execution

	interruptCounter    uint64
	interruptedAction   string
	interruptedProgress float64

	movementHeld bool
	triggerHeld  bool // The active action's trigger is still held
	activeClick  bool // The active action was started by a discrete click
}

// NewService creates the player action coordinator
func NewService(cfg *ServiceConfig) Service {
	if cfg.Registry == nil {
		panic("registry is required")
	}
	if cfg.Resources == nil {
		panic("resource model is required")
	}

	svc := &service{
		registry: cfg.Registry,
		res:      cfg.Resources,
		buffs:    cfg.Buffs,
		bus:      cfg.EventBus,
		clock:    cfg.TimeProvider,
		state:    StateIdle,
	}

	if svc.buffs == nil {
		svc.buffs = buffs.NewTracker()
	}
	if svc.bus == nil {
		svc.bus = events.NewBus()
	}
	if svc.clock == nil {
		svc.clock = realClock{}
	}

	return svc
}

func (s *service) Dispatch(input *DispatchInput) *DispatchResult {
	if input == nil {
		return &DispatchResult{Reason: "nil input"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDead {
		return &DispatchResult{Reason: "player is dead"}
	}

	def := s.registry.GetActionByID(input.ActionID)
	if def == nil {
		log.Printf("dispatch ignored: unknown action %q", input.ActionID)
		return &DispatchResult{Reason: "unknown action"}
	}

	// Trigger release. For skills this only suppresses recast at FINISH;
	// for move-kind actions it drops the movement hold.
	if !input.Pressed {
		if def.Kind == shared.KindMove {
			s.setMovementHeldLocked(false)
			return &DispatchResult{Executed: true}
		}
		if s.active != nil && s.active.ID == def.ID {
			s.triggerHeld = false
		}
		return &DispatchResult{Reason: "trigger released"}
	}

	if !def.Kind.Executable() {
		log.Printf("dispatch ignored: action %q kind %q is not executable", def.ID, def.Kind)
		return &DispatchResult{Reason: "not executable"}
	}

	switch def.Kind {
	case shared.KindMove:
		return s.dispatchMove()
	case shared.KindConsumable:
		return s.dispatchConsumable(def)
	default:
		return s.dispatchExecution(def, input)
	}
}

// dispatchMove handles move-kind actions as a movement trigger press
func (s *service) dispatchMove() *DispatchResult {
	if s.state.Busy() {
		return &DispatchResult{Reason: "busy"}
	}
	s.setMovementHeldLocked(true)
	return &DispatchResult{Executed: true}
}

// dispatchConsumable resolves instantly: spend, then effects, no state change
func (s *service) dispatchConsumable(def *action.ActionDef) *DispatchResult {
	if s.state.Busy() {
		log.Printf("dispatch ignored: cannot use %q while %s", def.ID, s.state)
		return &DispatchResult{Reason: "busy"}
	}

	if !s.res.TrySpend(def.Cost()) {
		log.Printf("dispatch ignored: cannot afford %q", def.ID)
		return &DispatchResult{Reason: "unaffordable"}
	}

	now := s.clock.Now()
	s.resolveEffects(def, now)
	s.emit(events.NewEvent(events.EventActionFinished, now).
		WithData("action_id", def.ID))
	return &DispatchResult{Executed: true}
}

// dispatchExecution starts a cast, attack or channel
func (s *service) dispatchExecution(def *action.ActionDef, input *DispatchInput) *DispatchResult {
	if s.state.Busy() {
		// Already executing; recast is decided at FINISH, not by re-dispatch.
		log.Printf("dispatch ignored: already %s with %q", s.state, s.activeID())
		return &DispatchResult{Reason: "busy"}
	}

	if !s.res.TrySpend(def.Cost()) {
		log.Printf("dispatch ignored: cannot afford %q", def.ID)
		return &DispatchResult{Reason: "unaffordable"}
	}

	now := s.clock.Now()
	s.active = def
	s.castProgress = 0
	s.finished = false
	s.triggerHeld = input.Pressed && !input.Click
	s.activeClick = input.Click

	if def.IsChannel() {
		s.res.SetChannelDrain(def.ManaPerSecond)
	}

	next := StateCasting
	if def.Kind == shared.KindAttack {
		next = StateAttacking
	}
	s.transition(next, now)

	s.emit(events.NewEvent(events.EventActionStarted, now).
		WithData("action_id", def.ID).
		WithData("kind", string(def.Kind)))

	return &DispatchResult{Executed: true}
}

func (s *service) Tick(input *TickInput) {
	if input == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDead {
		return
	}

	now := s.clock.Now()

	// Frame order: prune expired buffs, then regen, then progress. A buff
	// must stop contributing the same frame its countdown reaches zero.
	for _, expired := range s.buffs.Prune(now) {
		s.emit(events.NewEvent(events.EventBuffExpired, now).
			WithData("source_id", expired.SourceID).
			WithData("type", string(expired.Type)))
	}

	st := s.res.Tick(input.Delta, resources.TickModifiers{
		HealthRegen: s.buffs.Sum(shared.BuffHealthRegen, now),
		ManaRegen:   s.buffs.Sum(shared.BuffManaRegen, now),
		MaxHealth:   s.buffs.Sum(shared.BuffMaxHealth, now),
		MaxMana:     s.buffs.Sum(shared.BuffMaxMana, now),
	})

	if st.Health <= 0 {
		s.dieLocked(now)
		return
	}

	if s.state.Busy() && s.active != nil {
		s.castProgress = clamp01(input.AnimationProgress)
		if s.castProgress >= finishThreshold && !s.finished {
			s.finishLocked(now)
		}
	}
}

// finishLocked resolves the active action exactly once. Gains and buffs are
// applied here, never at cast start, so interrupted casts grant nothing.
func (s *service) finishLocked(now time.Time) {
	def := s.active
	s.finished = true

	s.resolveEffects(def, now)
	s.emit(events.NewEvent(events.EventActionFinished, now).
		WithData("action_id", def.ID))

	// Held-key recast: restart the same action without leaving the state.
	// A discrete click always completes exactly once. If the re-spend
	// fails, fall through to normal completion.
	if def.Recastable && s.triggerHeld && !s.activeClick && s.res.TrySpend(def.Cost()) {
		s.castProgress = 0
		s.finished = false
		s.emit(events.NewEvent(events.EventActionStarted, now).
			WithData("action_id", def.ID).
			WithData("kind", string(def.Kind)).
			WithData("recast", true))
		return
	}

	s.clearActiveLocked()
	s.transition(s.restState(), now)
}

// resolveEffects applies an action's resolve-time payloads
func (s *service) resolveEffects(def *action.ActionDef, now time.Time) {
	if def.ManaGain > 0 {
		s.res.ApplyGain(def.ManaGain, resources.PoolMana)
		s.emit(events.NewEvent(events.EventResourcesChanged, now).
			WithData("source", def.ID))
	}
	if applied := s.buffs.Apply(def, now); applied != nil {
		s.emit(events.NewEvent(events.EventBuffApplied, now).
			WithData("source_id", applied.SourceID).
			WithData("type", string(applied.Type)).
			WithData("value", applied.Value))
	}
}

func (s *service) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interruptLocked(s.clock.Now())
}

func (s *service) interruptLocked(now time.Time) {
	if !s.state.Busy() || s.active == nil {
		return
	}

	s.interruptedAction = s.active.ID
	s.interruptedProgress = s.castProgress
	s.interruptCounter++

	interrupted := s.active.ID
	progress := s.castProgress

	s.clearActiveLocked()
	s.transition(s.restState(), now)

	s.emit(events.NewEvent(events.EventActionInterrupted, now).
		WithData("action_id", interrupted).
		WithData("progress", progress).
		WithData("counter", s.interruptCounter))
}

func (s *service) TakeDamage(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDead {
		return
	}

	now := s.clock.Now()
	health := s.res.ApplyDamage(amount)

	s.interruptLocked(now)

	if health <= 0 {
		s.dieLocked(now)
	}
}

func (s *service) SetMovementHeld(held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDead {
		return
	}
	s.setMovementHeldLocked(held)
}

func (s *service) setMovementHeldLocked(held bool) {
	s.movementHeld = held

	// While an action is in flight the held flag only decides the state we
	// return to on completion. Channeling explicitly coexists with movement.
	if s.state.Busy() {
		return
	}

	now := s.clock.Now()
	if held && s.state == StateIdle {
		s.transition(StateMoving, now)
	} else if !held && s.state == StateMoving {
		s.transition(StateIdle, now)
	}
}

func (s *service) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	st := s.res.State()

	return &Snapshot{
		State:               s.state,
		ActiveAction:        s.activeID(),
		CastProgress:        s.castProgress,
		InterruptCounter:    s.interruptCounter,
		InterruptedAction:   s.interruptedAction,
		InterruptedProgress: s.interruptedProgress,
		Health:              st.Health,
		Mana:                st.Mana,
		MaxHealth:           st.MaxHealth,
		MaxMana:             st.MaxMana,
		Buffs:               s.buffs.Active(now),
		MovementHeld:        s.movementHeld,
	}
}

// dieLocked is the terminal transition. Consumers get a single died event;
// every later dispatch and tick is ignored.
func (s *service) dieLocked(now time.Time) {
	s.clearActiveLocked()
	s.buffs.Clear()
	s.transition(StateDead, now)
	s.emit(events.NewEvent(events.EventPlayerDied, now))
}

func (s *service) clearActiveLocked() {
	if s.active != nil && s.active.IsChannel() {
		s.res.ClearChannelDrain()
	}
	s.active = nil
	s.castProgress = 0
	s.finished = false
	s.triggerHeld = false
	s.activeClick = false
}

// restState is where the machine settles when nothing is executing
func (s *service) restState() State {
	if s.movementHeld {
		return StateMoving
	}
	return StateIdle
}

func (s *service) transition(next State, now time.Time) {
	if s.state == next {
		return
	}
	prev := s.state
	s.state = next
	s.emit(events.NewEvent(events.EventStateChanged, now).
		WithData("from", string(prev)).
		WithData("to", string(next)))
}

func (s *service) activeID() string {
	if s.active == nil {
		return ""
	}
	return s.active.ID
}

func (s *service) emit(event *events.Event) {
	if err := s.bus.Emit(event); err != nil {
		log.Printf("event emission failed: %v", err)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

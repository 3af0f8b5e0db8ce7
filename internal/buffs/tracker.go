// Package buffs tracks timed modifiers keyed by their originating action.
package buffs

import (
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/arpg-core/internal/domain/action"
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
)

// Buff is one active timed modifier
type Buff struct {
	SourceID  string          `json:"source_id"` // Action id that granted the buff
	Type      shared.BuffType `json:"type"`
	Value     float64         `json:"value"`
	AppliedAt time.Time       `json:"applied_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Remaining returns the time left before expiry, never negative
func (b Buff) Remaining(now time.Time) time.Duration {
	d := b.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Tracker manages the active buff set for one player.
// At most one buff per source action id exists at any time: re-applying
// replaces the entry and restarts its timer, it never stacks with itself.
// Distinct source ids sum additively per buff type.
type Tracker struct {
	mu    sync.RWMutex
	buffs map[string]*Buff
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		buffs: make(map[string]*Buff),
	}
}

// Apply inserts or replaces the buff granted by the action.
// Returns nil when the action carries no buff payload.
func (t *Tracker) Apply(def *action.ActionDef, now time.Time) *Buff {
	if def == nil || def.Buff == nil {
		return nil
	}

	buff := &Buff{
		SourceID:  def.ID,
		Type:      def.Buff.Type,
		Value:     def.Buff.Value,
		AppliedAt: now,
		ExpiresAt: now.Add(time.Duration(def.Buff.Duration * float64(time.Second))),
	}

	t.mu.Lock()
	t.buffs[def.ID] = buff
	t.mu.Unlock()

	copied := *buff
	return &copied
}

// Prune removes every buff with expiresAt <= now and returns the removed
// entries so callers can emit expiry notifications. Idempotent for a fixed now.
func (t *Tracker) Prune(now time.Time) []Buff {
	t.mu.Lock()
	defer t.mu.Unlock()

	var expired []Buff
	for id, buff := range t.buffs {
		if !buff.ExpiresAt.After(now) {
			expired = append(expired, *buff)
			delete(t.buffs, id)
		}
	}

	sort.Slice(expired, func(i, j int) bool { return expired[i].SourceID < expired[j].SourceID })
	return expired
}

// Active returns a snapshot of non-expired buffs ordered by expiry, soonest
// first, for countdown display. Does not mutate; callers poll independently.
func (t *Tracker) Active(now time.Time) []Buff {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Buff, 0, len(t.buffs))
	for _, buff := range t.buffs {
		if buff.ExpiresAt.After(now) {
			out = append(out, *buff)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ExpiresAt.Equal(out[j].ExpiresAt) {
			return out[i].SourceID < out[j].SourceID
		}
		return out[i].ExpiresAt.Before(out[j].ExpiresAt)
	})
	return out
}

// Sum returns the additive contribution of all active buffs of the given type
func (t *Tracker) Sum(buffType shared.BuffType, now time.Time) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := 0.0
	for _, buff := range t.buffs {
		if buff.Type == buffType && buff.ExpiresAt.After(now) {
			total += buff.Value
		}
	}
	return total
}

// Get returns the active buff for a source action id, nil when absent
func (t *Tracker) Get(sourceID string, now time.Time) *Buff {
	t.mu.RLock()
	defer t.mu.RUnlock()

	buff, ok := t.buffs[sourceID]
	if !ok || !buff.ExpiresAt.After(now) {
		return nil
	}
	copied := *buff
	return &copied
}

// Clear removes all buffs, used when restoring a snapshot or on death
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buffs = make(map[string]*Buff)
}

// Len returns the number of tracked buffs, including not-yet-pruned ones
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.buffs)
}

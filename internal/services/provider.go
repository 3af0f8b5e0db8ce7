package services

import (
	"context"
	"time"

	"github.com/KirkDiggler/arpg-core/internal/buffs"
	"github.com/KirkDiggler/arpg-core/internal/content"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
	"github.com/KirkDiggler/arpg-core/internal/events"
	"github.com/KirkDiggler/arpg-core/internal/registry"
	"github.com/KirkDiggler/arpg-core/internal/repositories/snapshots"
	"github.com/KirkDiggler/arpg-core/internal/resources"
	"github.com/KirkDiggler/arpg-core/internal/services/loadout"
	"github.com/KirkDiggler/arpg-core/internal/services/player"
	"github.com/KirkDiggler/arpg-core/internal/uuid"
)

// Provider wires the core's services around one player. All state objects are
// constructor-injected with single ownership; nothing lives in package scope.
type Provider struct {
	Registry *registry.Registry
	Bus      *events.Bus
	Player   player.Service
	Loadout  loadout.Service
	Drag     *loadout.DragController

	resources *resources.Model
	buffs     *buffs.Tracker
	repo      snapshots.Repository

	playerID string
	classID  string
}

// ProviderConfig holds configuration for creating the core
type ProviderConfig struct {
	PlayerID string
	ClassID  string

	// Catalog defaults to the embedded content when nil
	Catalog *content.Catalog

	// Repository defaults to in-memory when nil
	Repository snapshots.Repository

	TimeProvider  player.TimeProvider
	UUIDGenerator uuid.Generator
}

// NewProvider creates a fully wired core with the class's default loadout
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil {
		return nil, coreerr.InvalidArgument("config cannot be nil")
	}
	if cfg.PlayerID == "" {
		return nil, coreerr.InvalidArgument("player id is required")
	}

	catalog := cfg.Catalog
	if catalog == nil {
		loaded, err := content.Load()
		if err != nil {
			return nil, coreerr.Wrap(err, "failed to load content catalog")
		}
		catalog = loaded
	}

	reg := registry.New(catalog)

	classDef := reg.GetClassByID(cfg.ClassID)
	if classDef == nil {
		return nil, coreerr.NotFoundf("unknown class %q", cfg.ClassID)
	}

	repo := cfg.Repository
	if repo == nil {
		repo = snapshots.NewInMemory(&snapshots.InMemoryConfig{
			UUIDGenerator: cfg.UUIDGenerator,
		})
	}

	bus := events.NewBus()
	tracker := buffs.NewTracker()
	model := resources.NewModel(classDef)

	playerSvc := player.NewService(&player.ServiceConfig{
		Registry:     reg,
		Resources:    model,
		Buffs:        tracker,
		EventBus:     bus,
		TimeProvider: cfg.TimeProvider,
	})

	loadoutSvc := loadout.NewService(&loadout.ServiceConfig{
		Registry: reg,
		EventBus: bus,
	})
	if err := loadoutSvc.ResetToDefaults(cfg.ClassID); err != nil {
		return nil, coreerr.Wrap(err, "failed to apply default loadout")
	}

	var dragClock loadout.TimeProvider
	if cfg.TimeProvider != nil {
		dragClock = cfg.TimeProvider
	}
	drag := loadout.NewDragController(&loadout.DragControllerConfig{
		Service:      loadoutSvc,
		Registry:     &loadout.RegistryLookup{Registry: reg},
		TimeProvider: dragClock,
		UUIDs:        cfg.UUIDGenerator,
	})

	return &Provider{
		Registry:  reg,
		Bus:       bus,
		Player:    playerSvc,
		Loadout:   loadoutSvc,
		Drag:      drag,
		resources: model,
		buffs:     tracker,
		repo:      repo,
		playerID:  cfg.PlayerID,
		classID:   cfg.ClassID,
	}, nil
}

// Save persists the current snapshot
func (p *Provider) Save(ctx context.Context) error {
	return p.repo.Save(ctx, &snapshots.Data{
		PlayerID:      p.playerID,
		ActiveClassID: p.classID,
		Resources:     p.resources.State(),
		SlotMap:       p.Loadout.SlotMap(),
	})
}

// Restore loads the persisted snapshot and applies it. A missing snapshot is
// not an error; the defaults simply stand.
func (p *Provider) Restore(ctx context.Context) error {
	data, err := p.repo.Get(ctx, p.playerID)
	if err != nil {
		if coreerr.IsNotFound(err) {
			return nil
		}
		return coreerr.Wrap(err, "failed to restore snapshot")
	}

	p.resources.Restore(data.Resources)
	p.Loadout.Restore(data.SlotMap)
	if data.ActiveClassID != "" {
		p.classID = data.ActiveClassID
	}
	return nil
}

// ClassID returns the active class id
func (p *Provider) ClassID() string {
	return p.classID
}

// DebugState is a read-only introspection surface for tooling. Nothing in
// here is mutable; consumers that want live state subscribe to the bus.
func (p *Provider) DebugState() map[string]any {
	snap := p.Player.Snapshot()
	return map[string]any{
		"player_id":         p.playerID,
		"class_id":          p.classID,
		"state":             string(snap.State),
		"active_action":     snap.ActiveAction,
		"cast_progress":     snap.CastProgress,
		"interrupt_counter": snap.InterruptCounter,
		"health":            snap.Health,
		"mana":              snap.Mana,
		"buff_count":        len(snap.Buffs),
		"slot_map":          p.Loadout.SlotMap(),
		"updated_at":        time.Now(),
	}
}

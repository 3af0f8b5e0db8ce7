package snapshots

import (
	"context"
	"sync"

	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
	"github.com/KirkDiggler/arpg-core/internal/uuid"
)

// inMemoryRepo is the fallback used when no Redis is configured
type inMemoryRepo struct {
	mu            sync.RWMutex
	snapshots     map[string]*Data
	timeProvider  TimeProvider
	uuidGenerator uuid.Generator
}

// InMemoryConfig holds the in-memory repository dependencies
type InMemoryConfig struct {
	TimeProvider  TimeProvider
	UUIDGenerator uuid.Generator
}

// NewInMemory creates an in-memory snapshot repository
func NewInMemory(cfg *InMemoryConfig) Repository {
	if cfg == nil {
		cfg = &InMemoryConfig{}
	}
	repo := &inMemoryRepo{
		snapshots:     make(map[string]*Data),
		timeProvider:  cfg.TimeProvider,
		uuidGenerator: cfg.UUIDGenerator,
	}
	if repo.timeProvider == nil {
		repo.timeProvider = RealTimeProvider{}
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	return repo
}

func (r *inMemoryRepo) Save(_ context.Context, data *Data) error {
	if data == nil {
		return coreerr.InvalidArgument("snapshot cannot be nil")
	}
	if data.PlayerID == "" {
		return coreerr.InvalidArgument("snapshot player id is required")
	}

	now := r.timeProvider.Now()
	data.UpdatedAt = now
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.RevisionID = r.uuidGenerator.New()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[data.PlayerID] = copyData(data)
	return nil
}

func (r *inMemoryRepo) Get(_ context.Context, playerID string) (*Data, error) {
	if playerID == "" {
		return nil, coreerr.InvalidArgument("player id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.snapshots[playerID]
	if !ok {
		return nil, coreerr.NotFoundf("no snapshot for player %q", playerID)
	}
	return copyData(data), nil
}

func (r *inMemoryRepo) Delete(_ context.Context, playerID string) error {
	if playerID == "" {
		return coreerr.InvalidArgument("player id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.snapshots, playerID)
	return nil
}

func copyData(data *Data) *Data {
	copied := *data
	copied.SlotMap = make(map[shared.SlotID]string, len(data.SlotMap))
	for slotID, actionID := range data.SlotMap {
		copied.SlotMap[slotID] = actionID
	}
	return &copied
}

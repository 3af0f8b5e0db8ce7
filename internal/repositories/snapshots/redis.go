package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
	"github.com/KirkDiggler/arpg-core/internal/resources"
	"github.com/KirkDiggler/arpg-core/internal/uuid"
)

// metaData is the serialized header section of a snapshot
type metaData struct {
	PlayerID      string    `json:"player_id"`
	RevisionID    string    `json:"revision_id"`
	ActiveClassID string    `json:"active_class_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type redisRepo struct {
	client        redis.UniversalClient
	timeProvider  TimeProvider
	uuidGenerator uuid.Generator
}

// RedisConfig holds the redis repository dependencies
type RedisConfig struct {
	Client        redis.UniversalClient
	TimeProvider  TimeProvider
	UUIDGenerator uuid.Generator
}

// NewRedis creates a snapshot repository backed by Redis
func NewRedis(cfg *RedisConfig) Repository {
	repo := &redisRepo{
		client:        cfg.Client,
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

func metaKey(playerID string) string      { return fmt.Sprintf("player:%s:meta", playerID) }
func resourcesKey(playerID string) string { return fmt.Sprintf("player:%s:resources", playerID) }
func loadoutKey(playerID string) string   { return fmt.Sprintf("player:%s:loadout", playerID) }

func (r *redisRepo) Save(ctx context.Context, data *Data) error {
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

	meta, err := json.Marshal(metaData{
		PlayerID:      data.PlayerID,
		RevisionID:    data.RevisionID,
		ActiveClassID: data.ActiveClassID,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	})
	if err != nil {
		return coreerr.Wrap(err, "failed to marshal snapshot meta")
	}

	res, err := json.Marshal(data.Resources)
	if err != nil {
		return coreerr.Wrap(err, "failed to marshal resource state")
	}

	slots, err := json.Marshal(data.SlotMap)
	if err != nil {
		return coreerr.Wrap(err, "failed to marshal slot map")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, metaKey(data.PlayerID), string(meta), 0)
	pipe.Set(ctx, resourcesKey(data.PlayerID), string(res), 0)
	pipe.Set(ctx, loadoutKey(data.PlayerID), string(slots), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return coreerr.Wrap(err, "failed to save snapshot to Redis")
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, playerID string) (*Data, error) {
	if playerID == "" {
		return nil, coreerr.InvalidArgument("player id is required")
	}

	var metaRaw, resRaw, slotsRaw []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := r.client.Get(gctx, metaKey(playerID)).Bytes()
		if err != nil {
			return err
		}
		metaRaw = b
		return nil
	})
	g.Go(func() error {
		b, err := r.client.Get(gctx, resourcesKey(playerID)).Bytes()
		if err != nil {
			return err
		}
		resRaw = b
		return nil
	})
	g.Go(func() error {
		b, err := r.client.Get(gctx, loadoutKey(playerID)).Bytes()
		if err != nil {
			return err
		}
		slotsRaw = b
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, coreerr.NotFoundf("no snapshot for player %q", playerID)
		}
		return nil, coreerr.Wrap(err, "failed to load snapshot from Redis")
	}

	var meta metaData
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, coreerr.Wrap(err, "failed to unmarshal snapshot meta")
	}

	var res resources.State
	if err := json.Unmarshal(resRaw, &res); err != nil {
		return nil, coreerr.Wrap(err, "failed to unmarshal resource state")
	}

	var slots map[shared.SlotID]string
	if err := json.Unmarshal(slotsRaw, &slots); err != nil {
		return nil, coreerr.Wrap(err, "failed to unmarshal slot map")
	}

	return &Data{
		PlayerID:      meta.PlayerID,
		RevisionID:    meta.RevisionID,
		ActiveClassID: meta.ActiveClassID,
		Resources:     res,
		SlotMap:       slots,
		CreatedAt:     meta.CreatedAt,
		UpdatedAt:     meta.UpdatedAt,
	}, nil
}

func (r *redisRepo) Delete(ctx context.Context, playerID string) error {
	if playerID == "" {
		return coreerr.InvalidArgument("player id is required")
	}

	if err := r.client.Del(ctx, metaKey(playerID), resourcesKey(playerID), loadoutKey(playerID)).Err(); err != nil {
		return coreerr.Wrap(err, "failed to delete snapshot from Redis")
	}
	return nil
}

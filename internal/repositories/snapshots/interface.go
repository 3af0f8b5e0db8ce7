package snapshots

import (
	"context"
	"time"

	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	"github.com/KirkDiggler/arpg-core/internal/resources"
)

// Data is the persisted player snapshot. Shape must round-trip exactly:
// resource state, slot map, active class id.
type Data struct {
	PlayerID      string                   `json:"player_id"`
	RevisionID    string                   `json:"revision_id"`
	ActiveClassID string                   `json:"active_class_id"`
	Resources     resources.State          `json:"resources"`
	SlotMap       map[shared.SlotID]string `json:"slot_map"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// Repository defines the interface for snapshot storage operations
type Repository interface {
	Save(ctx context.Context, data *Data) error
	Get(ctx context.Context, playerID string) (*Data, error)
	Delete(ctx context.Context, playerID string) error
}

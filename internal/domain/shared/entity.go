package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by everything with identity and audit
// timestamps, from catalog aggregates down to resolved sales facts.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identity and timestamp columns shared by all
// persisted types. CreatedAt doubles as the refresh watermark source
// for order lines, so it is assigned here rather than by the database.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }

func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// NewBaseEntity assigns a fresh ID and stamps both timestamps
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

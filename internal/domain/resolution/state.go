package resolution

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshState tracks the progress of the sales fact store between
// refresh runs. Watermark is the creation time of the newest order line
// covered by the published batch; ConfigDirty is set by configuration
// edits and forces the next incremental request to run a full refresh.
type RefreshState struct {
	LastBatchID       uuid.UUID `json:"last_batch_id"`
	SnapshotVersion   int64     `json:"snapshot_version"`
	LastFullRefreshAt time.Time `json:"last_full_refresh_at"`
	Watermark         time.Time `json:"watermark"`
	ConfigDirty       bool      `json:"config_dirty"`
	LastLineCount     int64     `json:"last_line_count"`
	LastUnmappedCount int64     `json:"last_unmapped_count"`
	LastDuration      int64     `json:"last_duration_ms"`
	LastError         string    `json:"last_error,omitempty"`
}

// StateStore persists refresh state across runs. Implementations must
// be safe for concurrent use.
type StateStore interface {
	Get(ctx context.Context) (*RefreshState, error)
	Put(ctx context.Context, state *RefreshState) error
	MarkConfigDirty(ctx context.Context) error
}

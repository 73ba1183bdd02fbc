package refresh

import (
	"time"

	"github.com/google/uuid"
)

// Mode names how a refresh run was executed
type Mode string

const (
	ModeFull        Mode = "full"
	ModeIncremental Mode = "incremental"
)

// ResultResponse summarizes one refresh run
type ResultResponse struct {
	BatchID       uuid.UUID `json:"batch_id"`
	Mode          Mode      `json:"mode"`
	LineCount     int64     `json:"line_count"`
	UnmappedCount int64     `json:"unmapped_count"`
	DurationMs    int64     `json:"duration_ms"`
	Coalesced     bool      `json:"coalesced"`
}

// StatusResponse reports the refresh subsystem state
type StatusResponse struct {
	Running           bool      `json:"running"`
	CurrentBatchID    uuid.UUID `json:"current_batch_id"`
	SnapshotVersion   int64     `json:"snapshot_version"`
	LastFullRefreshAt time.Time `json:"last_full_refresh_at"`
	Watermark         time.Time `json:"watermark"`
	ConfigDirty       bool      `json:"config_dirty"`
	LastLineCount     int64     `json:"last_line_count"`
	LastUnmappedCount int64     `json:"last_unmapped_count"`
	LastDurationMs    int64     `json:"last_duration_ms"`
	LastError         string    `json:"last_error,omitempty"`
}

// PreviewRequest asks how one identifier would resolve right now
type PreviewRequest struct {
	RawIdentifier string `json:"raw_identifier" binding:"required,min=1,max=128"`
	Channel       string `json:"channel" binding:"max=64"`
	Quantity      int64  `json:"quantity" binding:"omitempty,min=1"`
}

// PreviewResponse shows the resolution outcome for one identifier
type PreviewResponse struct {
	RawIdentifier      string `json:"raw_identifier"`
	MatchType          string `json:"match_type"`
	CatalogSKU         string `json:"catalog_sku,omitempty"`
	SKUPrimario        string `json:"sku_primario,omitempty"`
	ProductName        string `json:"product_name,omitempty"`
	Category           string `json:"category,omitempty"`
	ConversionFactor   int64  `json:"conversion_factor"`
	QuantityMultiplier int64  `json:"quantity_multiplier"`
	UnitsSold          int64  `json:"units_sold"`
}

package refresh

import (
	"context"

	"go.uber.org/zap"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/resolution"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// configEventTypes are the catalog and mapping events that invalidate
// the published fact store.
var configEventTypes = []string{
	catalog.EventTypeProductCreated,
	catalog.EventTypeProductUpdated,
	catalog.EventTypeMasterBoxLinkCreated,
	catalog.EventTypeMasterBoxLinkUpdated,
	catalog.EventTypeMasterBoxLinkDeleted,
	mapping.EventTypeRuleCreated,
	mapping.EventTypeRuleUpdated,
	mapping.EventTypeRuleDeleted,
}

// ConfigDirtyHandler marks the refresh state dirty whenever the
// resolution configuration changes, forcing the next incremental
// refresh to run full.
type ConfigDirtyHandler struct {
	stateStore resolution.StateStore
	logger     *zap.Logger
}

// NewConfigDirtyHandler creates a new ConfigDirtyHandler
func NewConfigDirtyHandler(stateStore resolution.StateStore, logger *zap.Logger) *ConfigDirtyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigDirtyHandler{
		stateStore: stateStore,
		logger:     logger,
	}
}

// Handle marks the configuration dirty
func (h *ConfigDirtyHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.stateStore.MarkConfigDirty(ctx); err != nil {
		return err
	}
	h.logger.Debug("resolution configuration marked dirty",
		zap.String("event_type", event.GetEventType()))
	return nil
}

// CanHandle reports whether the event invalidates the configuration
func (h *ConfigDirtyHandler) CanHandle(eventType string) bool {
	for _, t := range configEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// Subscribe registers the handler for all configuration events
func (h *ConfigDirtyHandler) Subscribe(bus shared.EventSubscriber) error {
	for _, eventType := range configEventTypes {
		if err := bus.Subscribe(eventType, h); err != nil {
			return err
		}
	}
	return nil
}

var _ shared.EventHandler = (*ConfigDirtyHandler)(nil)

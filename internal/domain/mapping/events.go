package mapping

import (
	"github.com/salesbridge/backend/internal/domain/shared"
)

const (
	EventTypeRuleCreated = "mapping.rule.created"
	EventTypeRuleUpdated = "mapping.rule.updated"
	EventTypeRuleDeleted = "mapping.rule.deleted"
)

// RuleChangedEvent is emitted whenever a mapping rule changes
type RuleChangedEvent struct {
	shared.BaseDomainEvent
	SourcePattern string `json:"source_pattern"`
	TargetSKU     string `json:"target_sku"`
}

// NewRuleChangedEvent creates a rule change event
func NewRuleChangedEvent(eventType string, r *Rule) *RuleChangedEvent {
	return &RuleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, r.ID, r.Version),
		SourcePattern:   r.SourcePattern,
		TargetSKU:       r.TargetSKU,
	}
}

package mapping

import (
	"time"

	"github.com/google/uuid"

	"github.com/salesbridge/backend/internal/domain/mapping"
)

// CreateRuleRequest represents a request to create a mapping rule
type CreateRuleRequest struct {
	SourcePattern      string `json:"source_pattern" binding:"required,min=1,max=128"`
	PatternType        string `json:"pattern_type" binding:"omitempty,oneof=exact prefix suffix contains regex"`
	SourceFilter       string `json:"source_filter" binding:"max=64"`
	TargetSKU          string `json:"target_sku" binding:"required,sku,max=64"`
	QuantityMultiplier int64  `json:"quantity_multiplier" binding:"omitempty,min=1"`
	Priority           int    `json:"priority"`
}

// UpdateRuleRequest represents a request to update a mapping rule
type UpdateRuleRequest struct {
	TargetSKU          *string `json:"target_sku" binding:"omitempty,min=1,max=64"`
	QuantityMultiplier *int64  `json:"quantity_multiplier" binding:"omitempty,min=1"`
	Priority           *int    `json:"priority"`
}

// RuleResponse represents a mapping rule in API responses
type RuleResponse struct {
	ID                 uuid.UUID `json:"id"`
	SourcePattern      string    `json:"source_pattern"`
	PatternType        string    `json:"pattern_type"`
	SourceFilter       string    `json:"source_filter"`
	TargetSKU          string    `json:"target_sku"`
	QuantityMultiplier int64     `json:"quantity_multiplier"`
	Priority           int       `json:"priority"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Version            int       `json:"version"`
}

// ToRuleResponse converts a domain Rule to RuleResponse
func ToRuleResponse(r *mapping.Rule) RuleResponse {
	return RuleResponse{
		ID:                 r.ID,
		SourcePattern:      r.SourcePattern,
		PatternType:        string(r.PatternType),
		SourceFilter:       r.SourceFilter,
		TargetSKU:          r.TargetSKU,
		QuantityMultiplier: r.QuantityMultiplier,
		Priority:           r.Priority,
		Status:             string(r.Status),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		Version:            r.Version,
	}
}

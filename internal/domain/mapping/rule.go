package mapping

import (
	"regexp"
	"strings"

	"github.com/salesbridge/backend/internal/domain/shared"
)

// PatternType determines how a rule's source pattern is matched against
// a normalized raw identifier.
type PatternType string

const (
	PatternTypeExact    PatternType = "exact"
	PatternTypePrefix   PatternType = "prefix"
	PatternTypeSuffix   PatternType = "suffix"
	PatternTypeContains PatternType = "contains"
	PatternTypeRegex    PatternType = "regex"
)

// ValidPatternType reports whether t is a known pattern type
func ValidPatternType(t PatternType) bool {
	switch t {
	case PatternTypeExact, PatternTypePrefix, PatternTypeSuffix, PatternTypeContains, PatternTypeRegex:
		return true
	}
	return false
}

// RuleStatus represents the lifecycle state of a mapping rule
type RuleStatus string

const (
	RuleStatusActive   RuleStatus = "active"
	RuleStatusInactive RuleStatus = "inactive"
)

// Rule maps raw channel identifiers to a canonical catalog SKU or a
// master box code. SourceFilter scopes the rule to a single channel;
// empty means all channels. Matching is case-insensitive: patterns are
// stored uppercase and compared against normalized identifiers.
type Rule struct {
	shared.BaseAggregateRoot
	SourcePattern      string      `json:"source_pattern" gorm:"not null;size:128;index"`
	PatternType        PatternType `json:"pattern_type" gorm:"not null;size:20;default:'exact'"`
	SourceFilter       string      `json:"source_filter" gorm:"size:64;index"`
	TargetSKU          string      `json:"target_sku" gorm:"not null;size:64;index"`
	QuantityMultiplier int64       `json:"quantity_multiplier" gorm:"not null;default:1"`
	Priority           int         `json:"priority" gorm:"not null;default:0"`
	Status             RuleStatus  `json:"status" gorm:"not null;size:20;default:'active'"`

	compiled *regexp.Regexp `gorm:"-"`
}

// TableName returns the table name for GORM
func (Rule) TableName() string {
	return "mapping_rules"
}

// NewRule creates a new mapping rule
func NewRule(sourcePattern string, patternType PatternType, sourceFilter, targetSKU string, quantityMultiplier int64, priority int) (*Rule, error) {
	sourcePattern = strings.TrimSpace(sourcePattern)
	if sourcePattern == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE_PATTERN", "Rule source pattern cannot be empty")
	}
	if patternType == "" {
		patternType = PatternTypeExact
	}
	if !ValidPatternType(patternType) {
		return nil, shared.NewDomainError("INVALID_PATTERN_TYPE", "Unknown rule pattern type")
	}
	if patternType != PatternTypeRegex {
		sourcePattern = strings.ToUpper(sourcePattern)
	}
	targetSKU = strings.ToUpper(strings.TrimSpace(targetSKU))
	if targetSKU == "" {
		return nil, shared.NewDomainError("INVALID_TARGET_SKU", "Rule target SKU cannot be empty")
	}
	if quantityMultiplier <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY_MULTIPLIER", "Quantity multiplier must be positive")
	}

	rule := &Rule{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		SourcePattern:      sourcePattern,
		PatternType:        patternType,
		SourceFilter:       strings.TrimSpace(sourceFilter),
		TargetSKU:          targetSKU,
		QuantityMultiplier: quantityMultiplier,
		Priority:           priority,
		Status:             RuleStatusActive,
	}

	if patternType == PatternTypeRegex {
		if err := rule.compile(); err != nil {
			return nil, err
		}
	}

	rule.AddDomainEvent(NewRuleChangedEvent(EventTypeRuleCreated, rule))
	return rule, nil
}

func (r *Rule) compile() error {
	re, err := regexp.Compile("(?i)" + r.SourcePattern)
	if err != nil {
		return shared.NewDomainError("INVALID_SOURCE_PATTERN", "Rule source pattern is not a valid regular expression")
	}
	r.compiled = re
	return nil
}

// EnsureCompiled compiles a regex rule's pattern. Rules loaded from
// storage arrive uncompiled; snapshot construction calls this once so
// that Matches stays read-only and safe for concurrent use.
func (r *Rule) EnsureCompiled() error {
	if r.PatternType != PatternTypeRegex || r.compiled != nil {
		return nil
	}
	return r.compile()
}

// Matches reports whether the normalized identifier from the given
// channel is covered by this rule. identifier must already be
// trimmed and upper-cased by the caller. Matches never mutates the
// rule; regex rules must be compiled via EnsureCompiled first.
func (r *Rule) Matches(identifier, channel string) bool {
	if r.Status != RuleStatusActive {
		return false
	}
	if r.SourceFilter != "" && !strings.EqualFold(r.SourceFilter, channel) {
		return false
	}
	switch r.PatternType {
	case PatternTypeExact:
		return identifier == r.SourcePattern
	case PatternTypePrefix:
		return strings.HasPrefix(identifier, r.SourcePattern)
	case PatternTypeSuffix:
		return strings.HasSuffix(identifier, r.SourcePattern)
	case PatternTypeContains:
		return strings.Contains(identifier, r.SourcePattern)
	case PatternTypeRegex:
		return r.compiled != nil && r.compiled.MatchString(identifier)
	}
	return false
}

// Update replaces the rule's matching and target attributes
func (r *Rule) Update(targetSKU string, quantityMultiplier int64, priority int) error {
	targetSKU = strings.ToUpper(strings.TrimSpace(targetSKU))
	if targetSKU == "" {
		return shared.NewDomainError("INVALID_TARGET_SKU", "Rule target SKU cannot be empty")
	}
	if quantityMultiplier <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY_MULTIPLIER", "Quantity multiplier must be positive")
	}
	r.TargetSKU = targetSKU
	r.QuantityMultiplier = quantityMultiplier
	r.Priority = priority
	r.IncrementVersion()
	r.AddDomainEvent(NewRuleChangedEvent(EventTypeRuleUpdated, r))
	return nil
}

// Activate marks the rule as active
func (r *Rule) Activate() {
	if r.Status == RuleStatusActive {
		return
	}
	r.Status = RuleStatusActive
	r.IncrementVersion()
	r.AddDomainEvent(NewRuleChangedEvent(EventTypeRuleUpdated, r))
}

// Deactivate removes the rule from future resolution snapshots
func (r *Rule) Deactivate() {
	if r.Status == RuleStatusInactive {
		return
	}
	r.Status = RuleStatusInactive
	r.IncrementVersion()
	r.AddDomainEvent(NewRuleChangedEvent(EventTypeRuleUpdated, r))
}

// IsActive returns true when the rule participates in resolution
func (r *Rule) IsActive() bool {
	return r.Status == RuleStatusActive
}

package mapping

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// RuleService handles mapping rule operations. Two invariants are
// enforced at this write boundary: a rule's target must resolve to an
// existing catalog SKU or master box code, and at most one active
// exact rule may exist per pattern and source filter.
type RuleService struct {
	ruleRepo    mapping.RuleRepository
	productRepo catalog.ProductRepository
	linkRepo    catalog.MasterBoxLinkRepository
	eventBus    shared.EventPublisher
}

// NewRuleService creates a new RuleService
func NewRuleService(ruleRepo mapping.RuleRepository, productRepo catalog.ProductRepository, linkRepo catalog.MasterBoxLinkRepository, eventBus shared.EventPublisher) *RuleService {
	return &RuleService{
		ruleRepo:    ruleRepo,
		productRepo: productRepo,
		linkRepo:    linkRepo,
		eventBus:    eventBus,
	}
}

// Create creates a new mapping rule
func (s *RuleService) Create(ctx context.Context, req CreateRuleRequest) (*RuleResponse, error) {
	if err := s.checkTargetExists(ctx, req.TargetSKU); err != nil {
		return nil, err
	}

	patternType := mapping.PatternType(req.PatternType)
	if patternType == "" {
		patternType = mapping.PatternTypeExact
	}

	if patternType == mapping.PatternTypeExact {
		duplicates, err := s.ruleRepo.FindActiveExact(ctx, req.SourcePattern, req.SourceFilter)
		if err != nil {
			return nil, err
		}
		if len(duplicates) > 0 {
			return nil, shared.NewDomainError("DUPLICATE_MAPPING_RULE", "An active exact rule for this pattern and channel already exists")
		}
	}

	multiplier := req.QuantityMultiplier
	if multiplier == 0 {
		multiplier = 1
	}

	rule, err := mapping.NewRule(req.SourcePattern, patternType, req.SourceFilter, req.TargetSKU, multiplier, req.Priority)
	if err != nil {
		return nil, err
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, rule)

	resp := ToRuleResponse(rule)
	return &resp, nil
}

// Get returns a rule by ID
func (s *RuleService) Get(ctx context.Context, id uuid.UUID) (*RuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRuleResponse(rule)
	return &resp, nil
}

// List returns a page of rules
func (s *RuleService) List(ctx context.Context, filter shared.Filter) ([]RuleResponse, int64, error) {
	page, err := s.ruleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]RuleResponse, 0, len(page.Items))
	for _, rule := range page.Items {
		responses = append(responses, ToRuleResponse(rule))
	}
	return responses, page.Total, nil
}

// Update applies partial changes to a rule
func (s *RuleService) Update(ctx context.Context, id uuid.UUID, req UpdateRuleRequest) (*RuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	targetSKU := rule.TargetSKU
	if req.TargetSKU != nil {
		targetSKU = *req.TargetSKU
		if err := s.checkTargetExists(ctx, targetSKU); err != nil {
			return nil, err
		}
	}
	multiplier := rule.QuantityMultiplier
	if req.QuantityMultiplier != nil {
		multiplier = *req.QuantityMultiplier
	}
	priority := rule.Priority
	if req.Priority != nil {
		priority = *req.Priority
	}

	if err := rule.Update(targetSKU, multiplier, priority); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, rule)

	resp := ToRuleResponse(rule)
	return &resp, nil
}

// Activate re-enables a rule. The exact-duplicate invariant is checked
// again so a deactivated duplicate cannot sneak back in.
func (s *RuleService) Activate(ctx context.Context, id uuid.UUID) (*RuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rule.PatternType == mapping.PatternTypeExact && !rule.IsActive() {
		duplicates, err := s.ruleRepo.FindActiveExact(ctx, rule.SourcePattern, rule.SourceFilter)
		if err != nil {
			return nil, err
		}
		if len(duplicates) > 0 {
			return nil, shared.NewDomainError("DUPLICATE_MAPPING_RULE", "An active exact rule for this pattern and channel already exists")
		}
	}

	rule.Activate()
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, rule)

	resp := ToRuleResponse(rule)
	return &resp, nil
}

// Deactivate removes a rule from future resolution snapshots
func (s *RuleService) Deactivate(ctx context.Context, id uuid.UUID) (*RuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rule.Deactivate()
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, rule)

	resp := ToRuleResponse(rule)
	return &resp, nil
}

// Delete removes a rule
func (s *RuleService) Delete(ctx context.Context, id uuid.UUID) error {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, mapping.NewRuleChangedEvent(mapping.EventTypeRuleDeleted, rule))
	}
	return nil
}

// checkTargetExists verifies the target resolves to a catalog SKU or a
// master box code.
func (s *RuleService) checkTargetExists(ctx context.Context, targetSKU string) error {
	if _, err := s.productRepo.FindBySKU(ctx, targetSKU); err == nil {
		return nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if _, err := s.linkRepo.FindBySKUMaster(ctx, targetSKU); err == nil {
		return nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	return shared.NewDomainError("DANGLING_TARGET_SKU", "Rule target does not match any catalog SKU or master box code")
}

func (s *RuleService) publishEvents(ctx context.Context, rule *mapping.Rule) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, rule.GetDomainEvents()...)
	rule.ClearDomainEvents()
}

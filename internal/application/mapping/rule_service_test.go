package mapping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/shared"
)

func TestRuleService_Create(t *testing.T) {
	product, err := catalog.NewProduct("GRCA_U26010", "GRCA_U26010", "Grain Crackers", 1)
	require.NoError(t, err)

	t.Run("creates exact rule targeting a catalog SKU", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "GRCA_U26010").Return(product, nil)

		ruleRepo := new(MockRuleRepository)
		ruleRepo.On("FindActiveExact", mock.Anything, "PACKGRCA_U26010", "").Return([]*mapping.Rule{}, nil)
		ruleRepo.On("Save", mock.Anything, mock.AnythingOfType("*mapping.Rule")).Return(nil)

		service := NewRuleService(ruleRepo, productRepo, new(MockMasterBoxLinkRepository), nil)
		resp, err := service.Create(context.Background(), CreateRuleRequest{
			SourcePattern:      "PACKGRCA_U26010",
			TargetSKU:          "GRCA_U26010",
			QuantityMultiplier: 4,
		})

		require.NoError(t, err)
		assert.Equal(t, string(mapping.PatternTypeExact), resp.PatternType, "exact is the default pattern type")
		assert.Equal(t, int64(4), resp.QuantityMultiplier)
		ruleRepo.AssertExpectations(t)
	})

	t.Run("accepts a master box code target", func(t *testing.T) {
		link, err := catalog.NewMasterBoxLink("GRBE_C02010", product.ID, 20)
		require.NoError(t, err)

		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "GRBE_C02010").Return(nil, shared.ErrNotFound)

		linkRepo := new(MockMasterBoxLinkRepository)
		linkRepo.On("FindBySKUMaster", mock.Anything, "GRBE_C02010").Return(link, nil)

		ruleRepo := new(MockRuleRepository)
		ruleRepo.On("FindActiveExact", mock.Anything, "BOX_GRBE", "").Return([]*mapping.Rule{}, nil)
		ruleRepo.On("Save", mock.Anything, mock.AnythingOfType("*mapping.Rule")).Return(nil)

		service := NewRuleService(ruleRepo, productRepo, linkRepo, nil)
		resp, err := service.Create(context.Background(), CreateRuleRequest{
			SourcePattern: "BOX_GRBE",
			TargetSKU:     "GRBE_C02010",
		})

		require.NoError(t, err)
		assert.Equal(t, "GRBE_C02010", resp.TargetSKU)
		assert.Equal(t, int64(1), resp.QuantityMultiplier, "multiplier defaults to 1")
	})

	t.Run("rejects dangling target", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "NOWHERE").Return(nil, shared.ErrNotFound)

		linkRepo := new(MockMasterBoxLinkRepository)
		linkRepo.On("FindBySKUMaster", mock.Anything, "NOWHERE").Return(nil, shared.ErrNotFound)

		ruleRepo := new(MockRuleRepository)

		service := NewRuleService(ruleRepo, productRepo, linkRepo, nil)
		_, err := service.Create(context.Background(), CreateRuleRequest{
			SourcePattern: "PACKX",
			TargetSKU:     "NOWHERE",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DANGLING_TARGET_SKU", domainErr.Code)
		ruleRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects duplicate active exact rule", func(t *testing.T) {
		existing, err := mapping.NewRule("PACKGRCA_U26010", mapping.PatternTypeExact, "", "GRCA_U26010", 4, 0)
		require.NoError(t, err)

		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "GRCA_U26010").Return(product, nil)

		ruleRepo := new(MockRuleRepository)
		ruleRepo.On("FindActiveExact", mock.Anything, "PACKGRCA_U26010", "").Return([]*mapping.Rule{existing}, nil)

		service := NewRuleService(ruleRepo, productRepo, new(MockMasterBoxLinkRepository), nil)
		_, err = service.Create(context.Background(), CreateRuleRequest{
			SourcePattern: "PACKGRCA_U26010",
			TargetSKU:     "GRCA_U26010",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_MAPPING_RULE", domainErr.Code)
		ruleRepo.AssertNotCalled(t, "Save")
	})

	t.Run("prefix rules skip the duplicate check", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "GRCA_U26010").Return(product, nil)

		ruleRepo := new(MockRuleRepository)
		ruleRepo.On("Save", mock.Anything, mock.AnythingOfType("*mapping.Rule")).Return(nil)

		service := NewRuleService(ruleRepo, productRepo, new(MockMasterBoxLinkRepository), nil)
		_, err := service.Create(context.Background(), CreateRuleRequest{
			SourcePattern: "PACK",
			PatternType:   string(mapping.PatternTypePrefix),
			TargetSKU:     "GRCA_U26010",
		})

		require.NoError(t, err)
		ruleRepo.AssertNotCalled(t, "FindActiveExact")
	})
}

func TestRuleService_Activate(t *testing.T) {
	t.Run("rejects reactivation when a duplicate became active", func(t *testing.T) {
		rule, err := mapping.NewRule("PACKGRCA_U26010", mapping.PatternTypeExact, "", "GRCA_U26010", 4, 0)
		require.NoError(t, err)
		rule.Deactivate()
		rule.ClearDomainEvents()

		competitor, err := mapping.NewRule("PACKGRCA_U26010", mapping.PatternTypeExact, "", "GRCA_U26010", 2, 0)
		require.NoError(t, err)

		ruleRepo := new(MockRuleRepository)
		ruleRepo.On("FindByID", mock.Anything, rule.ID).Return(rule, nil)
		ruleRepo.On("FindActiveExact", mock.Anything, rule.SourcePattern, "").Return([]*mapping.Rule{competitor}, nil)

		service := NewRuleService(ruleRepo, new(MockProductRepository), new(MockMasterBoxLinkRepository), nil)
		_, err = service.Activate(context.Background(), rule.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_MAPPING_RULE", domainErr.Code)
		ruleRepo.AssertNotCalled(t, "Update")
	})

	t.Run("reactivates when the pattern is free", func(t *testing.T) {
		rule, err := mapping.NewRule("PACKGRCA_U26010", mapping.PatternTypeExact, "", "GRCA_U26010", 4, 0)
		require.NoError(t, err)
		rule.Deactivate()
		rule.ClearDomainEvents()

		ruleRepo := new(MockRuleRepository)
		ruleRepo.On("FindByID", mock.Anything, rule.ID).Return(rule, nil)
		ruleRepo.On("FindActiveExact", mock.Anything, rule.SourcePattern, "").Return([]*mapping.Rule{}, nil)
		ruleRepo.On("Update", mock.Anything, rule).Return(nil)

		service := NewRuleService(ruleRepo, new(MockProductRepository), new(MockMasterBoxLinkRepository), nil)
		resp, err := service.Activate(context.Background(), rule.ID)

		require.NoError(t, err)
		assert.Equal(t, string(mapping.RuleStatusActive), resp.Status)
	})
}

func TestRuleService_Update(t *testing.T) {
	rule, err := mapping.NewRule("PACKGRCA_U26010", mapping.PatternTypeExact, "", "GRCA_U26010", 4, 0)
	require.NoError(t, err)
	rule.ClearDomainEvents()

	ruleRepo := new(MockRuleRepository)
	ruleRepo.On("FindByID", mock.Anything, rule.ID).Return(rule, nil)
	ruleRepo.On("Update", mock.Anything, rule).Return(nil)

	productRepo := new(MockProductRepository)

	multiplier := int64(6)
	service := NewRuleService(ruleRepo, productRepo, new(MockMasterBoxLinkRepository), nil)
	resp, err := service.Update(context.Background(), rule.ID, UpdateRuleRequest{
		QuantityMultiplier: &multiplier,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.QuantityMultiplier)
	assert.Equal(t, "GRCA_U26010", resp.TargetSKU, "unset fields are kept")
	productRepo.AssertNotCalled(t, "FindBySKU")
}

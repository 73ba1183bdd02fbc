package mapping

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/shared"
)

type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) Save(ctx context.Context, rule *mapping.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*mapping.Rule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mapping.Rule), args.Error(1)
}

func (m *MockRuleRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*mapping.Rule], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*mapping.Rule]), args.Error(1)
}

func (m *MockRuleRepository) FindAllActive(ctx context.Context) ([]*mapping.Rule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mapping.Rule), args.Error(1)
}

func (m *MockRuleRepository) FindActiveExact(ctx context.Context, sourcePattern, sourceFilter string) ([]*mapping.Rule, error) {
	args := m.Called(ctx, sourcePattern, sourceFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mapping.Rule), args.Error(1)
}

func (m *MockRuleRepository) Update(ctx context.Context, rule *mapping.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKUPrimario(ctx context.Context, skuPrimario string) ([]*catalog.Product, error) {
	args := m.Called(ctx, skuPrimario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindAllActive(ctx context.Context) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMasterBoxLinkRepository struct {
	mock.Mock
}

func (m *MockMasterBoxLinkRepository) Save(ctx context.Context, link *catalog.MasterBoxLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockMasterBoxLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterBoxLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MasterBoxLink), args.Error(1)
}

func (m *MockMasterBoxLinkRepository) FindBySKUMaster(ctx context.Context, skuMaster string) (*catalog.MasterBoxLink, error) {
	args := m.Called(ctx, skuMaster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MasterBoxLink), args.Error(1)
}

func (m *MockMasterBoxLinkRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.MasterBoxLink], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.MasterBoxLink]), args.Error(1)
}

func (m *MockMasterBoxLinkRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*catalog.MasterBoxLink, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.MasterBoxLink), args.Error(1)
}

func (m *MockMasterBoxLinkRepository) FindAllLinks(ctx context.Context) ([]*catalog.MasterBoxLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.MasterBoxLink), args.Error(1)
}

func (m *MockMasterBoxLinkRepository) Update(ctx context.Context, link *catalog.MasterBoxLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockMasterBoxLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

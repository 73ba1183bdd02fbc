package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/shared"
)

func TestProductService_Create(t *testing.T) {
	t.Run("creates product with normalized SKU", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindBySKU", mock.Anything, " bakc_u04010 ").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		service := NewProductService(repo, nil)
		resp, err := service.Create(context.Background(), CreateProductRequest{
			SKU:             " bakc_u04010 ",
			Name:            "Classic Loaf",
			Category:        "breads",
			UnitsPerDisplay: 5,
		})

		require.NoError(t, err)
		assert.Equal(t, "BAKC_U04010", resp.SKU)
		assert.Equal(t, "BAKC_U04010", resp.SKUPrimario, "canonical SKU defaults to own SKU")
		assert.Equal(t, int64(5), resp.UnitsPerDisplay)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		existing, err := catalog.NewProduct("BAKC_U04010", "BAKC_U04010", "Classic Loaf", 1)
		require.NoError(t, err)

		repo := new(MockProductRepository)
		repo.On("FindBySKU", mock.Anything, "BAKC_U04010").Return(existing, nil)

		service := NewProductService(repo, nil)
		_, err = service.Create(context.Background(), CreateProductRequest{
			SKU:  "BAKC_U04010",
			Name: "Classic Loaf",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_Update(t *testing.T) {
	product, err := catalog.NewProduct("BAKC_U20010", "BAKC_U04010", "Classic Loaf Display", 5)
	require.NoError(t, err)

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Update", mock.Anything, product).Return(nil)

	units := int64(6)
	service := NewProductService(repo, nil)
	resp, err := service.Update(context.Background(), product.ID, UpdateProductRequest{
		UnitsPerDisplay: &units,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.UnitsPerDisplay)
	assert.Equal(t, "Classic Loaf Display", resp.Name, "unset fields are kept")
}

func TestProductService_Deactivate(t *testing.T) {
	product, err := catalog.NewProduct("BAKC_U04010", "BAKC_U04010", "Classic Loaf", 1)
	require.NoError(t, err)

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Update", mock.Anything, product).Return(nil)

	service := NewProductService(repo, nil)
	resp, err := service.Deactivate(context.Background(), product.ID)

	require.NoError(t, err)
	assert.Equal(t, string(catalog.ProductStatusInactive), resp.Status)
}

func TestMasterBoxService_Create(t *testing.T) {
	product, err := catalog.NewProduct("GRBE_U26010", "GRBE_U26010", "Grain Bites", 1)
	require.NoError(t, err)

	t.Run("creates link", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "GRBE_U26010").Return(product, nil)

		linkRepo := new(MockMasterBoxLinkRepository)
		linkRepo.On("FindBySKUMaster", mock.Anything, "GRBE_C02010").Return(nil, shared.ErrNotFound)
		linkRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.MasterBoxLink")).Return(nil)

		service := NewMasterBoxService(linkRepo, productRepo, nil)
		resp, err := service.Create(context.Background(), CreateMasterBoxLinkRequest{
			SKUMaster:         "GRBE_C02010",
			ProductSKU:        "GRBE_U26010",
			ItemsPerMasterBox: 20,
		})

		require.NoError(t, err)
		assert.Equal(t, "GRBE_C02010", resp.SKUMaster)
		assert.Equal(t, product.ID, resp.ProductID)
		assert.Equal(t, int64(20), resp.ItemsPerMasterBox)
	})

	t.Run("rejects master code linked to a different product", func(t *testing.T) {
		other, err := catalog.NewProduct("OTHER_SKU", "OTHER_SKU", "Other", 1)
		require.NoError(t, err)
		existing, err := catalog.NewMasterBoxLink("GRBE_C02010", other.ID, 10)
		require.NoError(t, err)

		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "GRBE_U26010").Return(product, nil)

		linkRepo := new(MockMasterBoxLinkRepository)
		linkRepo.On("FindBySKUMaster", mock.Anything, "GRBE_C02010").Return(existing, nil)

		service := NewMasterBoxService(linkRepo, productRepo, nil)
		_, err = service.Create(context.Background(), CreateMasterBoxLinkRequest{
			SKUMaster:         "GRBE_C02010",
			ProductSKU:        "GRBE_U26010",
			ItemsPerMasterBox: 20,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_MASTER_CODE", domainErr.Code)
		linkRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "MISSING").Return(nil, shared.ErrNotFound)

		linkRepo := new(MockMasterBoxLinkRepository)

		service := NewMasterBoxService(linkRepo, productRepo, nil)
		_, err := service.Create(context.Background(), CreateMasterBoxLinkRequest{
			SKUMaster:         "GRBE_C02010",
			ProductSKU:        "MISSING",
			ItemsPerMasterBox: 20,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DANGLING_TARGET_SKU", domainErr.Code)
	})
}

func TestMasterBoxService_DeactivateAndReactivate(t *testing.T) {
	product, err := catalog.NewProduct("GRBE_U26010", "GRBE_U26010", "Grain Bites", 1)
	require.NoError(t, err)
	link, err := catalog.NewMasterBoxLink("GRBE_C02010", product.ID, 20)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	linkRepo := new(MockMasterBoxLinkRepository)
	linkRepo.On("FindByID", mock.Anything, link.ID).Return(link, nil)
	linkRepo.On("Update", mock.Anything, mock.AnythingOfType("*catalog.MasterBoxLink")).Return(nil)

	service := NewMasterBoxService(linkRepo, productRepo, nil)

	resp, err := service.Deactivate(context.Background(), link.ID)
	require.NoError(t, err)
	assert.Equal(t, string(catalog.LinkStatusInactive), resp.Status)
	assert.False(t, link.IsActive())

	// Reactivation restores the stored conversion factor untouched
	resp, err = service.Activate(context.Background(), link.ID)
	require.NoError(t, err)
	assert.Equal(t, string(catalog.LinkStatusActive), resp.Status)
	assert.Equal(t, int64(20), resp.ItemsPerMasterBox)
	assert.True(t, link.IsActive())
}

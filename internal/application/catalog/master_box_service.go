package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// MasterBoxService handles master box link operations. A master code
// may exist on one product only; a second link to a different product
// is rejected at this write boundary.
type MasterBoxService struct {
	linkRepo    catalog.MasterBoxLinkRepository
	productRepo catalog.ProductRepository
	eventBus    shared.EventPublisher
}

// NewMasterBoxService creates a new MasterBoxService
func NewMasterBoxService(linkRepo catalog.MasterBoxLinkRepository, productRepo catalog.ProductRepository, eventBus shared.EventPublisher) *MasterBoxService {
	return &MasterBoxService{
		linkRepo:    linkRepo,
		productRepo: productRepo,
		eventBus:    eventBus,
	}
}

// Create links a master box code to a product
func (s *MasterBoxService) Create(ctx context.Context, req CreateMasterBoxLinkRequest) (*MasterBoxLinkResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, req.ProductSKU)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("DANGLING_TARGET_SKU", "Product for master box link does not exist")
		}
		return nil, err
	}

	existing, err := s.linkRepo.FindBySKUMaster(ctx, req.SKUMaster)
	if err == nil {
		if existing.ProductID != product.ID {
			return nil, shared.NewDomainError("DUPLICATE_MASTER_CODE", "Master box code is already linked to a different product")
		}
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Master box link already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	link, err := catalog.NewMasterBoxLink(req.SKUMaster, product.ID, req.ItemsPerMasterBox)
	if err != nil {
		return nil, err
	}

	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, link)

	resp := ToMasterBoxLinkResponse(link, product.SKU)
	return &resp, nil
}

// Get returns a master box link by ID
func (s *MasterBoxService) Get(ctx context.Context, id uuid.UUID) (*MasterBoxLinkResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, link)
}

// List returns a page of master box links
func (s *MasterBoxService) List(ctx context.Context, filter shared.Filter) ([]MasterBoxLinkResponse, int64, error) {
	page, err := s.linkRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MasterBoxLinkResponse, 0, len(page.Items))
	for _, link := range page.Items {
		resp, err := s.respond(ctx, link)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *resp)
	}
	return responses, page.Total, nil
}

// Update changes a link's product or item count
func (s *MasterBoxService) Update(ctx context.Context, id uuid.UUID, req UpdateMasterBoxLinkRequest) (*MasterBoxLinkResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProductSKU != nil {
		product, err := s.productRepo.FindBySKU(ctx, *req.ProductSKU)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("DANGLING_TARGET_SKU", "Product for master box link does not exist")
			}
			return nil, err
		}
		if err := link.Retarget(product.ID); err != nil {
			return nil, err
		}
	}
	if req.ItemsPerMasterBox != nil {
		if err := link.UpdateItemsPerMasterBox(*req.ItemsPerMasterBox); err != nil {
			return nil, err
		}
	}

	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, link)

	return s.respond(ctx, link)
}

// Activate returns a link to resolution
func (s *MasterBoxService) Activate(ctx context.Context, id uuid.UUID) (*MasterBoxLinkResponse, error) {
	return s.setStatus(ctx, id, true)
}

// Deactivate withdraws a link from resolution, keeping its conversion
// factor for later reactivation
func (s *MasterBoxService) Deactivate(ctx context.Context, id uuid.UUID) (*MasterBoxLinkResponse, error) {
	return s.setStatus(ctx, id, false)
}

func (s *MasterBoxService) setStatus(ctx context.Context, id uuid.UUID, active bool) (*MasterBoxLinkResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		link.Activate()
	} else {
		link.Deactivate()
	}
	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, link)

	return s.respond(ctx, link)
}

// Delete removes a master box link
func (s *MasterBoxService) Delete(ctx context.Context, id uuid.UUID) error {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.linkRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, catalog.NewMasterBoxLinkChangedEvent(catalog.EventTypeMasterBoxLinkDeleted, link))
	}
	return nil
}

func (s *MasterBoxService) respond(ctx context.Context, link *catalog.MasterBoxLink) (*MasterBoxLinkResponse, error) {
	productSKU := ""
	if product, err := s.productRepo.FindByID(ctx, link.ProductID); err == nil {
		productSKU = product.SKU
	}
	resp := ToMasterBoxLinkResponse(link, productSKU)
	return &resp, nil
}

func (s *MasterBoxService) publishEvents(ctx context.Context, link *catalog.MasterBoxLink) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, link.GetDomainEvents()...)
	link.ClearDomainEvents()
}

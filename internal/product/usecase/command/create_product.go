package command

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/logger"
	"github.com/connectchain/admin-api/pkg/media"
)

// CreateProductCommand represents the command to create a product with its
// initial children
type CreateProductCommand struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	MinStock    int
	CategoryID  uint
	SupplierID  *uint
	CustomerID  *uint
	Attributes  []domain.AttributeFields
	Variants    []domain.VariantFields
	Images      []media.File
	ActorID     uint
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo       domain.ProductRepository
	categories CategoryChecker
	partners   PartnerChecker
	storage    media.Storage
	events     EventPublisher
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, categories CategoryChecker, partners PartnerChecker, storage media.Storage, events EventPublisher) *CreateProductHandler {
	return &CreateProductHandler{
		repo:       repo,
		categories: categories,
		partners:   partners,
		storage:    storage,
		events:     events,
	}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	// Validation, before any mutation
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, apperr.Validation("name is required")
	}
	if cmd.Price < 0 {
		return nil, apperr.Validation("price must be >= 0")
	}
	if cmd.Stock < 0 {
		return nil, apperr.Validation("stock must be >= 0")
	}
	if cmd.MinStock < 0 {
		return nil, apperr.Validation("min stock must be >= 0")
	}
	if cmd.CategoryID == 0 {
		return nil, apperr.Validation("category is required")
	}
	for _, attr := range cmd.Attributes {
		if strings.TrimSpace(attr.Key) == "" {
			return nil, apperr.Validation("attribute key is required")
		}
	}
	for _, v := range cmd.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return nil, apperr.Validation("variant name is required")
		}
		if v.Price < 0 || v.Stock < 0 {
			return nil, apperr.Validation("variant price and stock must be >= 0")
		}
	}

	if err := h.checkReferences(ctx, &cmd.CategoryID, cmd.SupplierID, cmd.CustomerID); err != nil {
		return nil, err
	}

	// Optimistic upload phase
	refs, err := uploadImages(ctx, h.storage, cmd.Images)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(cmd.Name),
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		MinStock:    cmd.MinStock,
		SKU:         generateSKU(),
		CategoryID:  cmd.CategoryID,
		SupplierID:  cmd.SupplierID,
		CustomerID:  cmd.CustomerID,
		IsActive:    true,
	}
	for _, attr := range cmd.Attributes {
		product.Attributes = append(product.Attributes, domain.ProductAttribute{Key: attr.Key, Value: attr.Value})
	}
	for _, v := range cmd.Variants {
		product.Variants = append(product.Variants, domain.ProductVariant{Name: v.Name, Type: v.Type, Price: v.Price, Stock: v.Stock})
	}
	for _, ref := range refs {
		product.Images = append(product.Images, domain.ProductImage{URL: ref.URL, StorageID: ref.StorageID})
	}

	txCtx, cancel := context.WithTimeout(ctx, reconcileTimeout)
	defer cancel()

	if err := h.repo.Create(txCtx, product); err != nil {
		cleanupUploads(ctx, h.storage, refs)
		return nil, err
	}

	created, err := h.repo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		if err := h.events.PublishCatalogEvent(ctx, kafka.CatalogEvent{
			EventType:  kafka.EventTypeProductCreated,
			EntityID:   created.ID,
			EntityName: created.Name,
			ActorID:    cmd.ActorID,
		}); err != nil {
			logger.Warn(ctx).Err(err).Uint("product_id", created.ID).Msg("Failed to publish product created event")
		}
	}

	return created, nil
}

// checkReferences verifies referenced category, supplier and customer rows
// before the transaction opens, naming the reference that failed
func (h *CreateProductHandler) checkReferences(ctx context.Context, categoryID *uint, supplierID, customerID *uint) error {
	return checkReferences(ctx, h.categories, h.partners, categoryID, supplierID, customerID)
}

func checkReferences(ctx context.Context, categories CategoryChecker, partners PartnerChecker, categoryID, supplierID, customerID *uint) error {
	if categoryID != nil {
		ok, err := categories.CategoryExists(ctx, *categoryID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("category %d not found", *categoryID)
		}
	}
	if supplierID != nil {
		ok, err := partners.UserExistsWithRole(ctx, *supplierID, "supplier")
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("supplier %d not found", *supplierID)
		}
	}
	if customerID != nil {
		ok, err := partners.UserExistsWithRole(ctx, *customerID, "customer")
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("customer %d not found", *customerID)
		}
	}
	return nil
}

// generateSKU creates a unique, immutable stock keeping unit
func generateSKU() string {
	return "CC-" + strings.ToUpper(uuid.NewString()[:8])
}

package command

import (
	"context"
	"strings"
	"time"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/logger"
	"github.com/connectchain/admin-api/pkg/media"
)

// reconcileTimeout bounds the reconciliation transaction so a stuck
// connection cannot hold the request open indefinitely
const reconcileTimeout = 15 * time.Second

// UpdateProductCommand represents an aggregate update: a partial patch of
// the parent plus tagged operations on the child collections and media
// changes, applied as one unit of work
type UpdateProductCommand struct {
	ID             uint
	Patch          domain.ProductPatch
	AttributeOps   []domain.AttributeOp
	VariantOps     []domain.VariantOp
	NewImages      []media.File
	RemoveImageIDs []uint
	ActorID        uint
}

// UpdateProductHandler handles the aggregate update
type UpdateProductHandler struct {
	repo       domain.ProductRepository
	categories CategoryChecker
	partners   PartnerChecker
	storage    media.Storage
	events     EventPublisher
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, categories CategoryChecker, partners PartnerChecker, storage media.Storage, events EventPublisher) *UpdateProductHandler {
	return &UpdateProductHandler{
		repo:       repo,
		categories: categories,
		partners:   partners,
		storage:    storage,
		events:     events,
	}
}

// Handle executes the aggregate update. Phases: validate and check
// references, upload new media optimistically, run the database transaction,
// then purge removed media and publish the change event best-effort.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, apperr.Validation("invalid product id")
	}

	if err := validatePatch(cmd.Patch); err != nil {
		return nil, err
	}

	attributeOps, err := normalizeAttributeOps(cmd.AttributeOps)
	if err != nil {
		return nil, err
	}
	variantOps, err := normalizeVariantOps(cmd.VariantOps)
	if err != nil {
		return nil, err
	}

	// Fail fast: parent and references are verified before anything is
	// uploaded or mutated
	if _, err := h.repo.FindByID(ctx, cmd.ID); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, h.categories, h.partners, cmd.Patch.CategoryID, cmd.Patch.SupplierID, cmd.Patch.CustomerID); err != nil {
		return nil, err
	}

	// Phase 1: optimistic uploads, outside the transaction
	refs, err := uploadImages(ctx, h.storage, cmd.NewImages)
	if err != nil {
		return nil, err
	}

	// Phase 2: the transaction
	txCtx, cancel := context.WithTimeout(ctx, reconcileTimeout)
	defer cancel()

	product, removedStorageIDs, err := h.repo.Reconcile(txCtx, cmd.ID, domain.ReconcileSet{
		Patch:          cmd.Patch,
		AttributeOps:   attributeOps,
		VariantOps:     variantOps,
		NewImages:      refs,
		RemoveImageIDs: cmd.RemoveImageIDs,
	})
	if err != nil {
		// The database kept nothing; compensate the uploads
		cleanupUploads(ctx, h.storage, refs)
		return nil, err
	}

	// Phase 3: post-commit, best-effort only
	purgeWithRetry(ctx, h.storage, removedStorageIDs)

	if h.events != nil {
		if err := h.events.PublishCatalogEvent(ctx, kafka.CatalogEvent{
			EventType:  kafka.EventTypeProductUpdated,
			EntityID:   product.ID,
			EntityName: product.Name,
			ActorID:    cmd.ActorID,
		}); err != nil {
			logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish product updated event")
		}
	}

	return product, nil
}

func validatePatch(patch domain.ProductPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return apperr.Validation("name must not be empty")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return apperr.Validation("price must be >= 0")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return apperr.Validation("stock must be >= 0")
	}
	if patch.MinStock != nil && *patch.MinStock < 0 {
		return apperr.Validation("min stock must be >= 0")
	}
	if patch.CategoryID != nil && *patch.CategoryID == 0 {
		return apperr.Validation("category must not be zero")
	}
	return nil
}

// normalizeAttributeOps applies the op protocol: a missing action defaults
// to create, create ignores any supplied id, update and delete require one
func normalizeAttributeOps(ops []domain.AttributeOp) ([]domain.AttributeOp, error) {
	out := make([]domain.AttributeOp, 0, len(ops))
	for _, op := range ops {
		normalized, err := normalizeOp(op, "attribute")
		if err != nil {
			return nil, err
		}
		if normalized.Action != domain.ActionDelete && strings.TrimSpace(normalized.Fields.Key) == "" {
			return nil, apperr.Validation("attribute key is required")
		}
		out = append(out, normalized)
	}
	return out, nil
}

func normalizeVariantOps(ops []domain.VariantOp) ([]domain.VariantOp, error) {
	out := make([]domain.VariantOp, 0, len(ops))
	for _, op := range ops {
		normalized, err := normalizeOp(op, "variant")
		if err != nil {
			return nil, err
		}
		if normalized.Action != domain.ActionDelete {
			if strings.TrimSpace(normalized.Fields.Name) == "" {
				return nil, apperr.Validation("variant name is required")
			}
			if normalized.Fields.Price < 0 || normalized.Fields.Stock < 0 {
				return nil, apperr.Validation("variant price and stock must be >= 0")
			}
		}
		out = append(out, normalized)
	}
	return out, nil
}

func normalizeOp[F any](op domain.ChildOp[F], kind string) (domain.ChildOp[F], error) {
	switch op.Action {
	case "":
		// An untagged op is treated as a create; clients rely on this
		op.Action = domain.ActionCreate
		op.ID = 0
	case domain.ActionCreate:
		op.ID = 0
	case domain.ActionUpdate, domain.ActionDelete:
		if op.ID == 0 {
			return op, apperr.Validation("%s %s operation requires an id", kind, op.Action)
		}
	default:
		return op, apperr.Validation("unknown action %q for %s operation", op.Action, kind)
	}
	return op, nil
}

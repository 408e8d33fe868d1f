package command

import (
	"context"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/logger"
)

// DeleteProductCommand represents the command to soft-delete a product
type DeleteProductCommand struct {
	ID      uint
	ActorID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo   domain.ProductRepository
	events EventPublisher
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, events EventPublisher) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, events: events}
}

// Handle soft-deletes the product and cascades to its children. Stored
// media is kept; the rows still reference it.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return apperr.Validation("invalid product id")
	}

	if err := h.repo.SoftDelete(ctx, cmd.ID); err != nil {
		return err
	}

	if h.events != nil {
		if err := h.events.PublishCatalogEvent(ctx, kafka.CatalogEvent{
			EventType: kafka.EventTypeProductDeleted,
			EntityID:  cmd.ID,
			ActorID:   cmd.ActorID,
		}); err != nil {
			logger.Warn(ctx).Err(err).Uint("product_id", cmd.ID).Msg("Failed to publish product deleted event")
		}
	}

	return nil
}

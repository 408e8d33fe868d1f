package command

import (
	"context"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/logger"
)

// EventPublisher publishes catalog change events
type EventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event kafka.CatalogEvent) error
}

// SetCategoryStatusCommand represents the command to activate or deactivate
// a category together with its products
type SetCategoryStatusCommand struct {
	ID      uint
	Active  bool
	ActorID uint
}

// SetCategoryStatusHandler handles category status changes
type SetCategoryStatusHandler struct {
	repo   domain.CategoryRepository
	events EventPublisher
}

// NewSetCategoryStatusHandler creates a new set category status handler
func NewSetCategoryStatusHandler(repo domain.CategoryRepository, events EventPublisher) *SetCategoryStatusHandler {
	return &SetCategoryStatusHandler{repo: repo, events: events}
}

// Handle executes the status change. The cascade to the category's products
// happens in the same transaction as the category row update.
func (h *SetCategoryStatusHandler) Handle(ctx context.Context, cmd SetCategoryStatusCommand) (*domain.Category, error) {
	if cmd.ID == 0 {
		return nil, apperr.Validation("category id is required")
	}

	category, err := h.repo.SetStatus(ctx, cmd.ID, cmd.Active)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		if err := h.events.PublishCatalogEvent(ctx, kafka.CatalogEvent{
			EventType:  kafka.EventTypeCategoryStatusChanged,
			EntityID:   category.ID,
			EntityName: category.Name,
			ActorID:    cmd.ActorID,
		}); err != nil {
			logger.Warn(ctx).Err(err).Uint("category_id", category.ID).Msg("Failed to publish category status event")
		}
	}

	return category, nil
}

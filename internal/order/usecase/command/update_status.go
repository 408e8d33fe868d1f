package command

import (
	"context"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/order/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/logger"
)

// EventPublisher publishes catalog change events
type EventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event kafka.CatalogEvent) error
}

// UpdateOrderStatusCommand represents the command to move an order to a new
// status
type UpdateOrderStatusCommand struct {
	ID      uint
	Status  string
	ActorID uint
}

// UpdateOrderStatusHandler handles order status changes
type UpdateOrderStatusHandler struct {
	repo   domain.OrderRepository
	events EventPublisher
}

// NewUpdateOrderStatusHandler creates a new update order status handler
func NewUpdateOrderStatusHandler(repo domain.OrderRepository, events EventPublisher) *UpdateOrderStatusHandler {
	return &UpdateOrderStatusHandler{repo: repo, events: events}
}

// Handle executes the status change
func (h *UpdateOrderStatusHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error) {
	if cmd.ID == 0 {
		return nil, apperr.Validation("order id is required")
	}
	if !domain.ValidStatus(cmd.Status) {
		return nil, apperr.Validation("invalid order status %q", cmd.Status)
	}

	order, err := h.repo.UpdateStatus(ctx, cmd.ID, cmd.Status)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		if err := h.events.PublishCatalogEvent(ctx, kafka.CatalogEvent{
			EventType:  kafka.EventTypeOrderStatusChanged,
			EntityID:   order.ID,
			EntityName: order.OrderNumber,
			ActorID:    cmd.ActorID,
		}); err != nil {
			logger.Warn(ctx).Err(err).Uint("order_id", order.ID).Msg("Failed to publish order status event")
		}
	}

	return order, nil
}

package query

import (
	"context"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/order/domain"
)

// GetOrderQuery represents the query to get an order by ID
type GetOrderQuery struct {
	ID uint
}

// GetOrderHandler handles get order queries
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, q GetOrderQuery) (*domain.Order, error) {
	if q.ID == 0 {
		return nil, apperr.Validation("order id is required")
	}
	return h.repo.FindByID(ctx, q.ID)
}

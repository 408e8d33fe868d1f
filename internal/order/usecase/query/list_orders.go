package query

import (
	"context"

	"github.com/connectchain/admin-api/internal/order/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

// ListOrdersQuery represents the query to list orders
type ListOrdersQuery struct {
	Filter domain.OrderFilter
	Page   listing.Page
	Sort   listing.Sort
}

// ListOrdersResult is one page of orders
type ListOrdersResult struct {
	Items []domain.Order
	Total int64
	Page  listing.Page
}

// Pages returns the number of pages for the total
func (r ListOrdersResult) Pages() int {
	return r.Page.Pages(r.Total)
}

// ListOrdersHandler handles list orders queries
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) (*ListOrdersResult, error) {
	items, total, err := h.repo.List(ctx, q.Filter, q.Page, q.Sort)
	if err != nil {
		return nil, err
	}
	return &ListOrdersResult{Items: items, Total: total, Page: q.Page}, nil
}

package query

import (
	"context"

	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Filter domain.ProductFilter
	Page   listing.Page
	Sort   listing.Sort
}

// ListProductsResult is one page of products
type ListProductsResult struct {
	Items []domain.Product
	Total int64
	Page  listing.Page
}

// Pages returns the total page count
func (r ListProductsResult) Pages() int {
	return r.Page.Pages(r.Total)
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (ListProductsResult, error) {
	items, total, err := h.repo.List(ctx, q.Filter, q.Page, q.Sort)
	if err != nil {
		return ListProductsResult{}, err
	}
	return ListProductsResult{Items: items, Total: total, Page: q.Page}, nil
}

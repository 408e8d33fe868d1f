package query

import (
	"context"

	"github.com/connectchain/admin-api/internal/category/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

// ListCategoriesQuery represents the query to list categories
type ListCategoriesQuery struct {
	Filter domain.CategoryFilter
	Page   listing.Page
	Sort   listing.Sort
}

// ListCategoriesResult is one page of categories with counts
type ListCategoriesResult struct {
	Items []domain.CategoryWithCount
	Total int64
	Page  listing.Page
}

// Pages returns the number of pages for the total
func (r ListCategoriesResult) Pages() int {
	return r.Page.Pages(r.Total)
}

// ListCategoriesHandler handles list categories queries
type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(ctx context.Context, q ListCategoriesQuery) (*ListCategoriesResult, error) {
	items, total, err := h.repo.List(ctx, q.Filter, q.Page, q.Sort)
	if err != nil {
		return nil, err
	}
	return &ListCategoriesResult{Items: items, Total: total, Page: q.Page}, nil
}

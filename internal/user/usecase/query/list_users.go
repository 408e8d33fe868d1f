package query

import (
	"context"

	"github.com/connectchain/admin-api/internal/user/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

// ListUsersQuery represents the query to list users of one role
type ListUsersQuery struct {
	Filter domain.UserFilter
	Page   listing.Page
	Sort   listing.Sort
}

// ListUsersResult is one page of users
type ListUsersResult struct {
	Items []domain.User
	Total int64
	Page  listing.Page
}

// Pages returns the number of pages for the total
func (r ListUsersResult) Pages() int {
	return r.Page.Pages(r.Total)
}

// ListUsersHandler handles list users queries
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	items, total, err := h.repo.List(ctx, q.Filter, q.Page, q.Sort)
	if err != nil {
		return nil, err
	}
	return &ListUsersResult{Items: items, Total: total, Page: q.Page}, nil
}

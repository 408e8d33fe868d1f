package query

import (
	"context"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/user/domain"
)

// GetUserQuery represents the query to get a user by ID
type GetUserQuery struct {
	ID uint
}

// GetUserHandler handles get user queries
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*domain.User, error) {
	if q.ID == 0 {
		return nil, apperr.Validation("user id is required")
	}
	return h.repo.FindByID(ctx, q.ID)
}

// UserExistsWithRole reports whether a live user with the given ID and role
// exists. Product supplier and customer reference checks go through this.
func (h *GetUserHandler) UserExistsWithRole(ctx context.Context, id uint, role string) (bool, error) {
	return h.repo.ExistsWithRole(ctx, id, role)
}

package query

import (
	"context"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
)

// GetCategoryQuery represents the query to get a category by ID
type GetCategoryQuery struct {
	ID uint
}

// GetCategoryHandler handles get category queries
type GetCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewGetCategoryHandler creates a new get category handler
func NewGetCategoryHandler(repo domain.CategoryRepository) *GetCategoryHandler {
	return &GetCategoryHandler{repo: repo}
}

// Handle executes the get category query
func (h *GetCategoryHandler) Handle(ctx context.Context, q GetCategoryQuery) (*domain.Category, error) {
	if q.ID == 0 {
		return nil, apperr.Validation("category id is required")
	}
	return h.repo.FindByID(ctx, q.ID)
}

// CategoryExists reports whether a live category with the given ID exists.
// Product reference checks go through this.
func (h *GetCategoryHandler) CategoryExists(ctx context.Context, id uint) (bool, error) {
	_, err := h.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

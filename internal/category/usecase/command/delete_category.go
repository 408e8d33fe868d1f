package command

import (
	"context"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
)

// DeleteCategoryCommand represents the command to soft-delete a category
type DeleteCategoryCommand struct {
	ID uint
}

// DeleteCategoryHandler handles category deletion
type DeleteCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewDeleteCategoryHandler creates a new delete category handler
func NewDeleteCategoryHandler(repo domain.CategoryRepository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{repo: repo}
}

// Handle executes the delete category command. Products of the category keep
// their rows and their category reference.
func (h *DeleteCategoryHandler) Handle(ctx context.Context, cmd DeleteCategoryCommand) error {
	if cmd.ID == 0 {
		return apperr.Validation("category id is required")
	}
	return h.repo.SoftDelete(ctx, cmd.ID)
}

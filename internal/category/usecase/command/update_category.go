package command

import (
	"context"
	"strings"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
)

// UpdateCategoryCommand represents the command to update a category. Nil
// fields are left untouched.
type UpdateCategoryCommand struct {
	ID          uint
	Name        *string
	Description *string
}

// UpdateCategoryHandler handles category updates
type UpdateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewUpdateCategoryHandler creates a new update category handler
func NewUpdateCategoryHandler(repo domain.CategoryRepository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{repo: repo}
}

// Handle executes the update category command
func (h *UpdateCategoryHandler) Handle(ctx context.Context, cmd UpdateCategoryCommand) (*domain.Category, error) {
	if cmd.ID == 0 {
		return nil, apperr.Validation("category id is required")
	}

	category, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		category.Name = name
	}
	if cmd.Description != nil {
		category.Description = *cmd.Description
	}

	if err := h.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
